package eclipse

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"
)

// The LunarLimb is the shadow/outline of the moon. During totality it
// sits right over the sun, so its center is a good first guess for
// where to center a picture.
type LunarLimb struct {
	LuminalCenter image.Point     // The luminance-weighted "center" of the image. Hopefully will be inside the limb.
	Brightness    uint16          // A rough average of the brightness of the pixels in the limb (floodfill needs to know this)
	Bounds        image.Rectangle // A box around the limb

	grown bool
}

func (ll LunarLimb) Radius() int         { return (ll.Bounds.Dx() + ll.Bounds.Dy()) / 4 }
func (ll LunarLimb) Center() image.Point { return RectCenter(ll.Bounds) }

func (ll *LunarLimb) grow(p image.Point) {
	if !ll.grown {
		ll.Bounds = image.Rectangle{p, p}
		ll.grown = true
	} else {
		ll.Bounds = GrowRectangle(ll.Bounds, p)
	}
}

// FindLunarLimb returns a Rectangle that bounds the lunar limb, the
// outline of the moon. This is a fairly dumb routine; it finds the
// centroid of all the luminance in the image, assumes that is inside
// the lunar limb, and then floodfills out until it sees some
// bright pixels. It only works on pictures taken during totality.
func FindLunarLimb(img image.Image) (LunarLimb, error) {
	ll := LunarLimb{}
	bounds := img.Bounds()

	if !ll.computeLuminalCenter(img) {
		return ll, fmt.Errorf("no corona found")
	}

	// Any pixel that is brighter than thresh is considered part of the
	// corona etc., i.e. outside the limb. We set this kinda high,
	// because some shots can have quite a lot of earthshine (luminance
	// inside the limb). But if the overall photo looks kinda dim,
	// reduce the thresh, else the corona will be so dim that the flood
	// will flow over it and cover the whole image.
	thresh := uint16(0x1000)
	if ll.Brightness < 0x0015 {
		thresh = uint16(0x0040)
	}

	seen := map[image.Point]bool{}

	// Floodfill out from the LuminalCenter
	toVisit := []image.Point{ll.LuminalCenter}
	for len(toVisit) > 0 {
		p := toVisit[0]
		toVisit = toVisit[1:]

		if seen[p] || !p.In(bounds) {
			continue
		}
		seen[p] = true

		// If we start seeing a bit of luminance, stop - this is the end of the lunar limb
		if colToGrayU16(img.At(p.X, p.Y)) > thresh {
			continue
		}

		ll.grow(p)
		toVisit = append(toVisit,
			image.Point{p.X - 1, p.Y}, image.Point{p.X + 1, p.Y},
			image.Point{p.X, p.Y - 1}, image.Point{p.X, p.Y + 1})
	}

	if ll.Radius() == 0 {
		return ll, fmt.Errorf("could not locate lunar limb")
	}

	// If the flood got out, there was no limb to hold it in
	if ll.Bounds.Dx() >= bounds.Dx()-1 || ll.Bounds.Dy() >= bounds.Dy()-1 {
		return ll, fmt.Errorf("lunar limb %v fills the picture, no corona around it", ll.Bounds)
	}

	return ll, nil
}

// computeLuminalCenter finds the 'centre of mass' for the image
// illumination. We expect this to be somewhere inside the lunar limb,
// so we can use it as a startpoint for the flood fill.
//
// It ignores dim pixels (img noise) and very bright
// pixels (they tend to pull too far one direction) - what we hope
// is left are the corona pixels.
//
// It also figures out a brightness value that is the average gray
// color of pixels in the lunar limb. The floodfiller uses this so it
// can handle images with a very bright (or very dim) initial corona
// boundary.
func (ll *LunarLimb) computeLuminalCenter(img image.Image) bool {
	xs, ys, weights := []float64{}, []float64{}, []float64{}
	b := img.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			gray := colToGrayU16(img.At(x, y))
			if gray > 0x0300 && gray < 0xfff0 {
				xs = append(xs, float64(x))
				ys = append(ys, float64(y))
				weights = append(weights, float64(gray))
			}
		}
	}
	if len(weights) == 0 {
		return false
	}

	ll.LuminalCenter.X = int(math.Round(stat.Mean(xs, weights)))
	ll.LuminalCenter.Y = int(math.Round(stat.Mean(ys, weights)))

	sum := 0
	for i := -5; i < 5; i++ {
		sum += int(colToGrayU16(img.At(ll.LuminalCenter.X+i, ll.LuminalCenter.Y))) // [0, 0xFFFF]
	}
	ll.Brightness = uint16(sum / 10)
	return true
}

// colToGrayU16 maps a color into a gray value in the range [0, 0xFFFF].
func colToGrayU16(c color.Color) uint16 {
	r, g, b, _ := c.RGBA() // channel values in range [0, 0xFFFF]
	gray := float64(r)*0.2989 + float64(g)*0.5870 + float64(b)*0.1140
	if gray > 0xFFFF {
		gray = 0xFFFF
	}
	return uint16(gray)
}

// AutoCenter moves the center onto the lunar limb, if one can be found.
func (p *Picture) AutoCenter() error {
	ll, err := FindLunarLimb(p.Source)
	if err != nil {
		return &GeometryError{p.LoadFilename, fmt.Sprintf("autocenter: %v", err)}
	}

	c := ll.Center()
	log.Debugf("%s: lunar limb %v, radius %d, centering on %v", p.Filename(), ll.Bounds, ll.Radius(), c)
	p.SetCenter(float64(c.X), float64(c.Y))
	return nil
}
