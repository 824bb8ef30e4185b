package eclipse

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{0xff, 0, 0, 0xff}
	green = color.RGBA{0, 0xff, 0, 0xff}
	blue  = color.RGBA{0, 0, 0xff, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// solidPictures makes one flat 200x200 picture per color; every Best
// render of them is that same flat color.
func solidPictures(cols ...color.RGBA) []*Picture {
	pics := []*Picture{}
	for _, c := range cols {
		pics = append(pics, NewPicture("solid.png", newFilledRGBA(200, 200, c), testTime))
	}
	return pics
}

func placedAt(c Collage) []image.Point {
	pts := []image.Point{}
	for _, p := range c.Placements {
		pts = append(pts, p.At)
	}
	return pts
}

func TestCollageTiling(t *testing.T) {
	pics := solidPictures(red, green, blue, black)

	c := NewCollage(pics)
	c.Width, c.Height = 250, 300
	c.TileSize = 100
	c.CentralIndex = -1

	img, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 250, 300), img.Bounds())

	// Third tile overhangs the right edge, then the cursor wraps
	assert.Equal(t, []image.Point{{0, 0}, {100, 0}, {200, 0}, {0, 100}}, placedAt(c))

	assert.Equal(t, red, img.RGBAAt(50, 50))
	assert.Equal(t, green, img.RGBAAt(150, 50))
	assert.Equal(t, blue, img.RGBAAt(249, 99))
	assert.Equal(t, black, img.RGBAAt(50, 150))
	assert.Equal(t, white, img.RGBAAt(150, 150), "background")
	assert.Equal(t, white, img.RGBAAt(50, 250), "background")
}

func TestCollageCentralPicture(t *testing.T) {
	pics := solidPictures(red, green, blue)

	c := NewCollage(pics)
	c.Width, c.Height = 1000, 1200
	c.TileSize = 100
	c.CentralIndex = 1

	img, err := c.Render()
	require.NoError(t, err)

	require.Len(t, c.Placements, 3)
	assert.Equal(t, 100, c.Placements[0].Size)
	assert.Equal(t, 1000, c.Placements[1].Size)
	assert.Equal(t, 100, c.Placements[2].Size)
	assert.Equal(t, []image.Point{{0, 0}, {100, 0}, {0, 1000}}, placedAt(c))

	_, exists := pics[1].cache.rasters[renderKey{Best, 1000}]
	assert.True(t, exists, "central picture rendered at the canvas width")
	_, exists = pics[0].cache.rasters[renderKey{Best, 100}]
	assert.True(t, exists)

	assert.Equal(t, green, img.RGBAAt(999, 500), "central tile clipped at the right edge")
	assert.Equal(t, blue, img.RGBAAt(50, 1050))
	assert.Equal(t, white, img.RGBAAt(500, 1100))
}

func TestCollageSkipsExcluded(t *testing.T) {
	pics := solidPictures(red, green, blue, black)
	pics[1].SetIncluded(false)

	c := NewCollage(pics)
	c.Width, c.Height = 300, 500
	c.TileSize = 100
	c.CentralIndex = 1 // counted among the included pictures, so it's the blue one

	img, err := c.Render()
	require.NoError(t, err)

	require.Len(t, c.Placements, 3)
	assert.Same(t, pics[0], c.Placements[0].Picture)
	assert.Same(t, pics[2], c.Placements[1].Picture)
	assert.Same(t, pics[3], c.Placements[2].Picture)
	assert.Equal(t, 300, c.Placements[1].Size)
	assert.Equal(t, []image.Point{{0, 0}, {100, 0}, {0, 300}}, placedAt(c))

	assert.Equal(t, 0, pics[1].cache.len(), "excluded picture never rendered")
	assert.Equal(t, blue, img.RGBAAt(150, 50))
	assert.Equal(t, black, img.RGBAAt(50, 350))
}

func TestCollageParallelMatchesSequential(t *testing.T) {
	build := func(workers int) (*image.RGBA, []Placement) {
		pics := solidPictures(red, green, blue, black, red)
		pics = append(pics, pics[2]) // the same picture twice
		pics[3].SetIncluded(false)

		c := NewCollage(pics)
		c.Width, c.Height = 300, 400
		c.TileSize = 100
		c.CentralIndex = 2
		c.Workers = workers

		img, err := c.Render()
		require.NoError(t, err)
		return img, c.Placements
	}

	seqImg, seqPlaced := build(1)
	parImg, parPlaced := build(4)

	assert.Equal(t, seqImg.Pix, parImg.Pix)
	require.Len(t, parPlaced, len(seqPlaced))
	for i := range seqPlaced {
		assert.Equal(t, seqPlaced[i].At, parPlaced[i].At)
		assert.Equal(t, seqPlaced[i].Size, parPlaced[i].Size)
	}
}

func TestCollagePrerenderFillsCaches(t *testing.T) {
	pics := solidPictures(red, green)
	pics = append(pics, pics[0])

	c := NewCollage(pics)
	c.Width, c.Height = 300, 300
	c.TileSize = 100
	c.CentralIndex = 2
	c.Workers = 2

	require.NoError(t, c.prerender())
	assert.Equal(t, 2, pics[0].cache.len(), "both sizes for the repeated picture")
	assert.Equal(t, 1, pics[1].cache.len())
}

func TestCollageRenderError(t *testing.T) {
	pics := solidPictures(red, green)
	pics[1].SetZoom(0)

	for _, workers := range []int{1, 2} {
		c := NewCollage(pics)
		c.Width, c.Height = 200, 200
		c.TileSize = 100
		c.Workers = workers

		_, err := c.Render()
		require.Error(t, err)
		assert.True(t, IsGeometryError(err))
	}
}

func TestCollageBadSize(t *testing.T) {
	c := NewCollage(solidPictures(red))
	c.Width = 0
	_, err := c.Render()
	assert.Error(t, err)
}

func TestCollageBackground(t *testing.T) {
	c := NewCollage(nil)
	c.Width, c.Height = 10, 10
	c.Background = nil
	img, err := c.Render()
	require.NoError(t, err)
	assert.Equal(t, white, img.RGBAAt(5, 5))
	assert.Empty(t, c.Placements)

	c.Background = blue
	img, err = c.Render()
	require.NoError(t, err)
	assert.Equal(t, blue, img.RGBAAt(5, 5))
}

func TestComposite(t *testing.T) {
	img, err := Composite(solidPictures(red, green), 200, 100, 100, -1)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 100), img.Bounds())
	assert.Equal(t, red, img.RGBAAt(10, 10))
	assert.Equal(t, green, img.RGBAAt(110, 10))
}

func TestFitPreview(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		max  int
		want image.Rectangle
	}{
		{"landscape", 200, 100, 50, image.Rect(0, 0, 50, 25)},
		{"portrait", 100, 200, 50, image.Rect(0, 0, 25, 50)},
		{"square", 120, 120, 60, image.Rect(0, 0, 60, 60)},
		{"default size", 1280, 640, 0, image.Rect(0, 0, DefaultPreviewSize, DefaultPreviewSize/2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FitPreview(newFilledRGBA(tt.w, tt.h, red), tt.max)
			assert.Equal(t, tt.want, got.Bounds())
		})
	}
}
