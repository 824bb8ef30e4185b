package ecolor

import (
	"image"

	"github.com/codahale/hdrhistogram"

	"github.com/abworrall/eclipsifier/pkg/emath"
)

// Brightness and Contrast both work the same way: blend the image
// against a "degenerate" image, using the factor as the blend weight.
//   out = degenerate + factor * (in - degenerate)
// For brightness the degenerate image is black; for contrast it is a
// flat gray at the image's mean luma. Results are truncated and then
// clipped into [0, 255], which is what photo editors have always done.
//
// All of this expects opaque 8 bit pixels; alpha passes through untouched.

// Luma8 is the ITU-R 601-2 luma transform, in fixed point with rounding.
func Luma8(r, g, b uint8) uint8 {
	return uint8((uint32(r)*19595 + uint32(g)*38470 + uint32(b)*7471 + 0x8000) >> 16)
}

// Brightness returns a new image, scaled towards black (pct < 100) or
// away from it (pct > 100). Callers that care about pct==100 being a
// byte-for-byte no-op should not call this at all.
func Brightness(src *image.RGBA, pct int) *image.RGBA {
	return blend(src, 0.0, emath.Percent(pct))
}

// Contrast returns a new image, with each channel pushed away from
// (pct > 100) or pulled towards (pct < 100) the mean luma.
func Contrast(src *image.RGBA, pct int) *image.RGBA {
	mean := float64(int(MeanLuma(src) + 0.5))
	return blend(src, mean, emath.Percent(pct))
}

// LumaHistogram records the luma of every pixel. Lumas are all below
// 2048, so at 3 significant figures every value gets its own bucket and
// the mean and quantiles come back exact.
func LumaHistogram(img *image.RGBA) *hdrhistogram.Histogram {
	h := hdrhistogram.New(1, 255, 3)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			h.RecordValue(int64(Luma8(row[4*x+0], row[4*x+1], row[4*x+2])))
		}
	}
	return h
}

// MeanLuma is the average luma over the image; zero if it is empty.
func MeanLuma(img *image.RGBA) float64 {
	return LumaHistogram(img).Mean()
}

func blend(src *image.RGBA, degenerate, factor float64) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		in := src.Pix[src.PixOffset(b.Min.X, y):]
		out := dst.Pix[dst.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			i := 4 * x
			out[i+0] = emath.ClampU8(degenerate + factor*(float64(in[i+0])-degenerate))
			out[i+1] = emath.ClampU8(degenerate + factor*(float64(in[i+1])-degenerate))
			out[i+2] = emath.ClampU8(degenerate + factor*(float64(in[i+2])-degenerate))
			out[i+3] = in[i+3]
		}
	}

	return dst
}
