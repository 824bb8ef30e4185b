package eclipse

import (
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/abworrall/eclipsifier/pkg/ecolor"
)

const (
	DefaultOutputSize = 640

	MinZoom, MaxZoom               = 10, 1000
	MinRotate, MaxRotate           = -180, 180
	MinEnhancement, MaxEnhancement = 10, 190
)

// Params are the alignment and color settings for one picture. They are
// the only thing the renderer reads, apart from the source pixels.
type Params struct {
	CX, CY        float64 // The center of the sun, in source pixel coords
	Rotate        int     // Degrees, counter-clockwise; [-180, 180]
	Zoom          int     // Percent; 100 is no magnification
	Width, Height int     // Output size for previews, and scales the crop windows
	Brightness    int     // Percent; 100 is unchanged
	Contrast      int     // Percent; 100 is unchanged
	Included      bool    // Whether this picture goes into the collage
}

func DefaultParams(bounds image.Rectangle) Params {
	center := RectCenter(bounds)
	return Params{
		CX:         float64(center.X),
		CY:         float64(center.Y),
		Zoom:       100,
		Width:      DefaultOutputSize,
		Height:     DefaultOutputSize,
		Brightness: 100,
		Contrast:   100,
		Included:   true,
	}
}

func (p Params) String() string {
	str := fmt.Sprintf("c(%.0f,%.0f) %dx%d zoom %d%%", p.CX, p.CY, p.Width, p.Height, p.Zoom)
	if p.Rotate != 0 {
		str += fmt.Sprintf(", %ddeg", p.Rotate)
	}
	if p.Brightness != 100 || p.Contrast != 100 {
		str += fmt.Sprintf(", b%d%% c%d%%", p.Brightness, p.Contrast)
	}
	if !p.Included {
		str += ", excluded"
	}
	return str
}

// Validate checks the things the renderer divides by or allocates with.
// The editing ranges (zoom 10-1000 etc.) are not enforced here; see ClampToRanges.
func (p Params) Validate() error {
	if p.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %d", p.Zoom)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("output size must be positive, got %dx%d", p.Width, p.Height)
	}
	return nil
}

// ClampToRanges pulls values into the ranges an editor would offer.
// Rotation wraps around, the rest are clipped.
func (p Params) ClampToRanges() Params {
	clip := func(v, lo, hi int) int {
		if v < lo {
			return lo
		} else if v > hi {
			return hi
		}
		return v
	}

	for p.Rotate > MaxRotate {
		p.Rotate -= 360
	}
	for p.Rotate < MinRotate {
		p.Rotate += 360
	}
	p.Zoom = clip(p.Zoom, MinZoom, MaxZoom)
	p.Brightness = clip(p.Brightness, MinEnhancement, MaxEnhancement)
	p.Contrast = clip(p.Contrast, MinEnhancement, MaxEnhancement)
	return p
}

// sameRender reports whether two sets of params would render identical
// pixels; only inclusion is allowed to differ.
func (p Params) sameRender(p2 Params) bool {
	p2.Included = p.Included
	return p == p2
}

// A Picture is one eclipse photo: the decoded source image, when it was
// taken, the current Params, and the renders we've done with them.
//
// Any change to Params through the setters throws away the cached
// renders. A Picture is not safe for concurrent use.
type Picture struct {
	LoadFilename string
	CaptureTime  time.Time   // From EXIF; only used to put pictures in order
	Exposure     Exposure    // From EXIF, if it was there
	Source       image.Image // Never modified, shared by all the renders
	Loaded       bool        // Whether Params came from a saved sidecar

	palette ecolor.Palette
	params  Params
	cache   renderCache
}

func NewPicture(filename string, src image.Image, captureTime time.Time) *Picture {
	return &Picture{
		LoadFilename: filename,
		CaptureTime:  captureTime,
		Source:       src,
		palette:      ecolor.DefaultPalette(),
		params:       DefaultParams(src.Bounds()),
	}
}

func (p *Picture) String() string {
	return fmt.Sprintf("%s: %s, %s", p.Filename(), p.CaptureTime.Format("15:04:05"), p.params)
}

func (p *Picture) Filename() string {
	return filepath.Base(p.LoadFilename)
}

func (p *Picture) Params() Params          { return p.params }
func (p *Picture) Included() bool          { return p.params.Included }
func (p *Picture) Palette() ecolor.Palette { return p.palette }

// Invalidate drops every cached render.
func (p *Picture) Invalidate() {
	p.cache.invalidate()
}

// SetParams replaces all the settings at once. The cache survives only
// if nothing but Included changed.
func (p *Picture) SetParams(np Params) {
	if !p.params.sameRender(np) {
		p.Invalidate()
	}
	p.params = np
}

func (p *Picture) update(f func(*Params)) {
	np := p.params
	f(&np)
	p.SetParams(np)
}

func (p *Picture) SetCenter(cx, cy float64) { p.update(func(np *Params) { np.CX, np.CY = cx, cy }) }
func (p *Picture) SetRotate(deg int)        { p.update(func(np *Params) { np.Rotate = deg }) }
func (p *Picture) SetZoom(pct int)          { p.update(func(np *Params) { np.Zoom = pct }) }
func (p *Picture) SetOutputSize(w, h int)   { p.update(func(np *Params) { np.Width, np.Height = w, h }) }
func (p *Picture) SetBrightness(pct int)    { p.update(func(np *Params) { np.Brightness = pct }) }
func (p *Picture) SetContrast(pct int)      { p.update(func(np *Params) { np.Contrast = pct }) }
func (p *Picture) SetIncluded(inc bool)     { p.update(func(np *Params) { np.Included = inc }) }

// MoveBy drags the picture by a delta in displayed (preview) pixels.
// Dragging right moves the center left, and the delta is scaled back
// into source pixels by the zoom.
func (p *Picture) MoveBy(dx, dy int) {
	p.update(func(np *Params) {
		np.CX -= float64(dx) * (100.0 / float64(np.Zoom))
		np.CY -= float64(dy) * (100.0 / float64(np.Zoom))
	})
}

// SetPalette changes the alignment aid colors; only previews are affected.
func (p *Picture) SetPalette(pal ecolor.Palette) {
	if pal != p.palette {
		p.cache.invalidateFlavor(Preview)
	}
	p.palette = pal
}
