package eclipse

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw" // replace by "image/draw" at some point

	"github.com/abworrall/eclipsifier/pkg/ecolor"
	"github.com/abworrall/eclipsifier/pkg/emath"
)

// All three flavors run the same staged pipeline over the source image:
//  1. crop a window around (cx,cy), sized by the output size and zoom
//  2. scale the crop to the render size
//  3. rotate about the middle, if there is any rotation
//  4. (Best only) trim the margin that was there to hide the rotated corners
//  5. brightness, then contrast
//  6. (Preview only) draw the alignment aids on top
//
// Preview and Thumbnail use nearest-neighbour so that dragging feels
// instant; Best uses Catmull-Rom (bicubic).

var (
	fastInterp    draw.Interpolator = draw.NearestNeighbor
	qualityInterp draw.Interpolator = draw.CatmullRom
)

// The crop window half-extent, as a percentage of the output size at zoom 100.
func cropPercent(f Flavor) float64 {
	switch f {
	case Best:
		return 200.0 // upsampled 2x, then the middle half is kept
	case Thumbnail:
		return 50.0
	}
	return 100.0 // Preview: twice the output size, gives headroom for rotation
}

// Render returns the picture rendered in the given flavor. For Best and
// Thumbnail, size is the edge of the square output (<= 0 picks the
// default); Preview ignores it and uses the picture's output size.
//
// Renders are cached until the params change; asking again returns the
// very same *image.RGBA, which callers must not modify.
func (p *Picture) Render(f Flavor, size int) (*image.RGBA, error) {
	key := newRenderKey(f, size)
	if img := p.cache.get(key); img != nil {
		return img, nil
	}

	log.Debugf("Configuring %s image %s (%s)", f, p.Filename(), p.params)

	var img *image.RGBA
	var err error
	switch f {
	case Preview:
		img, err = p.renderPreview()
	case Best:
		img, err = p.renderBest(key.Size)
	case Thumbnail:
		img, err = p.renderThumbnail(key.Size)
	default:
		err = fmt.Errorf("render '%s': no flavor %d", p.Filename(), int(f))
	}
	if err != nil {
		return nil, err
	}

	p.cache.put(key, img)
	return img, nil
}

// Configured is the fast preview, with alignment aids.
func (p *Picture) Configured() (*image.RGBA, error) { return p.Render(Preview, 0) }

// ConfiguredBest is the high quality render, size x size.
func (p *Picture) ConfiguredBest(size int) (*image.RGBA, error) { return p.Render(Best, size) }

// ConfiguredSmall is the thumbnail, size x size.
func (p *Picture) ConfiguredSmall(size int) (*image.RGBA, error) { return p.Render(Thumbnail, size) }

// CropWindow is the area of the source image that the flavor starts
// from. Each edge is truncated toward zero, then clipped to the source
// bounds independently, so near the edge of the frame the window
// shrinks (and stops being square) rather than failing. Only a window
// that misses the source entirely is an error.
func (p *Picture) CropWindow(f Flavor) (image.Rectangle, error) {
	if err := p.params.Validate(); err != nil {
		return image.Rectangle{}, &GeometryError{p.LoadFilename, err.Error()}
	}

	scale := cropPercent(f) / float64(p.params.Zoom)
	halfW := float64(p.params.Width) * scale
	halfH := float64(p.params.Height) * scale

	want := image.Rect(
		int(p.params.CX-halfW), int(p.params.CY-halfH),
		int(p.params.CX+halfW), int(p.params.CY+halfH))

	got := want.Intersect(p.Source.Bounds())
	if got.Empty() {
		return got, &GeometryError{p.LoadFilename,
			fmt.Sprintf("crop window %v is outside the picture %v", want, p.Source.Bounds())}
	}
	if got != want {
		log.Debugf("%s: crop window %v clipped to %v", p.Filename(), want, got)
	}

	return got, nil
}

func (p *Picture) renderPreview() (*image.RGBA, error) {
	crop, err := p.CropWindow(Preview)
	if err != nil {
		return nil, err
	}

	w, h := p.params.Width, p.params.Height
	img := scaleImage(p.Source, crop, w, h, fastInterp)
	if p.params.Rotate != 0 {
		img = rotateImage(img, p.params.Rotate, float64(w)/2.0, float64(h)/2.0, fastInterp)
	}
	img = p.adjustColor(img)

	DrawAlignmentAids(img, p.palette)

	return img, nil
}

func (p *Picture) renderBest(size int) (*image.RGBA, error) {
	crop, err := p.CropWindow(Best)
	if err != nil {
		return nil, err
	}

	img := scaleImage(p.Source, crop, size*2, size*2, qualityInterp)
	if p.params.Rotate != 0 {
		img = rotateImage(img, p.params.Rotate, float64(size), float64(size), qualityInterp)
	}

	// The 2x render has a quarter-size margin on every side; drop it.
	lo, hi := int(float64(size)*0.5), int(float64(size)*1.5)
	img = copyRect(img, image.Rect(lo, lo, hi, hi))

	return p.adjustColor(img), nil
}

func (p *Picture) renderThumbnail(size int) (*image.RGBA, error) {
	crop, err := p.CropWindow(Thumbnail)
	if err != nil {
		return nil, err
	}

	img := scaleImage(p.Source, crop, size, size, fastInterp)
	if p.params.Rotate != 0 {
		img = rotateImage(img, p.params.Rotate, float64(size)/2.0, float64(size)/2.0, fastInterp)
	}

	return p.adjustColor(img), nil
}

// adjustColor skips each step entirely at 100%, so untouched pictures
// come out byte-identical.
func (p *Picture) adjustColor(img *image.RGBA) *image.RGBA {
	if p.params.Brightness != 100 {
		img = ecolor.Brightness(img, p.params.Brightness)
	}
	if p.params.Contrast != 100 {
		img = ecolor.Contrast(img, p.params.Contrast)
	}
	return img
}

func scaleImage(src image.Image, sr image.Rectangle, w, h int, interp draw.Interpolator) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	interp.Scale(dst, dst.Bounds(), src, sr, draw.Src, nil)
	return dst
}

// rotateImage rotates counter-clockwise about (cx,cy), keeping the same
// bounds. Corners that come from outside the source are left black.
func rotateImage(src *image.RGBA, deg int, cx, cy float64, interp draw.Interpolator) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.Black), image.Point{}, draw.Src)

	m := emath.RotateAboutCCW(float64(deg), cx, cy)
	interp.Transform(dst, m.ToF64(), src, b, draw.Src, nil)
	return dst
}
