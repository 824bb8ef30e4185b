package eclipse

// A few helper routines for golang's image libraries

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

func RectCenter(b image.Rectangle) image.Point {
	return image.Point{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// GrowRectangle stretches r (inclusively) so that it covers p.
func GrowRectangle(r image.Rectangle, p image.Point) image.Rectangle {
	if p.X < r.Min.X {
		r.Min.X = p.X
	} else if p.X > r.Max.X {
		r.Max.X = p.X
	}

	if p.Y < r.Min.Y {
		r.Min.Y = p.Y
	} else if p.Y > r.Max.Y {
		r.Max.Y = p.Y
	}

	return r
}

// copyRect copies part of an image into a new image whose bounds start at (0,0).
func copyRect(src image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}

func newFilledRGBA(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// SaveImage writes the image, picking the encoding from the filename's
// extension (.png, .jpg, .tif, ...).
func SaveImage(img image.Image, filename string) error {
	if err := imaging.Save(img, filename); err != nil {
		return fmt.Errorf("save '%s': %v", filename, err)
	}
	return nil
}
