package ecolor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestLuma8(t *testing.T) {
	assert.Equal(t, uint8(0), Luma8(0, 0, 0))
	assert.Equal(t, uint8(255), Luma8(255, 255, 255))
	assert.Equal(t, uint8(76), Luma8(255, 0, 0))
	assert.Equal(t, uint8(150), Luma8(0, 255, 0))
	assert.Equal(t, uint8(29), Luma8(0, 0, 255))
}

func TestBrightness(t *testing.T) {
	src := flatRGBA(4, 4, color.RGBA{100, 50, 200, 0xff})

	half := Brightness(src, 50)
	assert.Equal(t, color.RGBA{50, 25, 100, 0xff}, half.RGBAAt(1, 1))

	double := Brightness(src, 190)
	assert.Equal(t, color.RGBA{190, 95, 255, 0xff}, double.RGBAAt(3, 3), "clipped at 255")

	// The source is never touched
	assert.Equal(t, color.RGBA{100, 50, 200, 0xff}, src.RGBAAt(0, 0))
}

func TestBrightnessTruncates(t *testing.T) {
	src := flatRGBA(1, 1, color.RGBA{3, 3, 3, 0xff})
	out := Brightness(src, 150) // 4.5 -> 4
	assert.Equal(t, uint8(4), out.RGBAAt(0, 0).R)
}

func TestMeanLuma(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 0xff})
	img.SetRGBA(1, 0, color.RGBA{200, 200, 200, 0xff})
	assert.InDelta(t, 100.0, MeanLuma(img), 0.001)

	assert.InDelta(t, 0.0, MeanLuma(image.NewRGBA(image.Rect(0, 0, 0, 0))), 0.001)
}

func TestLumaHistogram(t *testing.T) {
	img := flatRGBA(10, 10, color.RGBA{20, 20, 20, 0xff})
	img.SetRGBA(9, 9, color.RGBA{255, 255, 255, 0xff})

	h := LumaHistogram(img)
	assert.Equal(t, int64(100), h.TotalCount())
	assert.Equal(t, int64(20), h.ValueAtQuantile(50))
	assert.Equal(t, int64(20), h.ValueAtQuantile(99))
	assert.Equal(t, int64(255), h.ValueAtQuantile(100))
	assert.InDelta(t, (99*20.0+255)/100, h.Mean(), 0.001)
}

func TestContrast(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{50, 50, 50, 0xff})
	img.SetRGBA(1, 0, color.RGBA{150, 150, 150, 0xff})

	// Mean luma is 100, so doubling the contrast pushes each side 2x further out
	out := Contrast(img, 190)
	assert.Equal(t, color.RGBA{5, 5, 5, 0xff}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{195, 195, 195, 0xff}, out.RGBAAt(1, 0))

	flat := Contrast(img, 10)
	assert.Equal(t, uint8(95), flat.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(105), flat.RGBAAt(1, 0).R)
}

func TestContrastOfFlatImageIsUnchanged(t *testing.T) {
	src := flatRGBA(3, 3, color.RGBA{120, 120, 120, 0xff})
	out := Contrast(src, 170)
	require.Equal(t, src.Bounds(), out.Bounds())
	assert.Equal(t, src.Pix, out.Pix)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Red")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, c)

	c, err = ParseColor("#dfaa71")
	require.NoError(t, err)
	assert.Equal(t, SunSwatch, c)

	_, err = ParseColor("not-a-color")
	assert.Error(t, err)
}

func TestNewPalette(t *testing.T) {
	p, err := NewPalette("", "#00ff00", "")
	require.NoError(t, err)
	assert.Equal(t, SunSwatch, p.Swatch)
	assert.Equal(t, color.RGBA{0, 0xff, 0, 0xff}, p.Circle)
	assert.Equal(t, DefaultPalette().Line, p.Line)

	_, err = NewPalette("mauve-ish", "", "")
	assert.Error(t, err)
}
