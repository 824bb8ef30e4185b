package eclipse

import (
	"fmt"

	"github.com/rwcarlsen/goexif/exif"
)

type rational [2]int64

// An Exposure records how the photograph was exposed. During an eclipse
// the exposures swing across many stops, so it is useful to see them
// alongside each picture when picking brightness/contrast settings.
//
// The EV rounds the shutterspeed & aperture-fnumber off to the values
// that are "whole" stops.
type Exposure struct {
	ISO          int      // 100, 800, etc.
	ApertureX10  int      // f/5.6 is the integer 56.
	ShutterSpeed rational // 1/500, 1/1000, etc.
	EV           int      // https://en.wikipedia.org/wiki/Exposure_value
	Known        bool     // False if the picture had no exposure info
}

var (
	// The sequence of "whole" f-stops from f/1.0 to f/32, as x10 int values
	apertureX10FStops = []int{10, 14, 20, 28, 40, 56, 80, 110, 160, 220, 320}

	// This sequence isn't quite mathematical
	shutterSpeeds = []rational{
		{1, 4000},
		{1, 2000},
		{1, 1000},
		{1, 500},
		{1, 250},
		{1, 125},
		{1, 60},
		{1, 30},
		{1, 15},
		{1, 8},
		{1, 4},
		{1, 2},
		{1, 1},
		{2, 1},
		{4, 1},
		{8, 1},
		{16, 1},
		{32, 1},
		{64, 1},
	}

	// How many stops less light is needed to fully expose, per ISO.
	isoStops = map[int]int{100: 0, 200: 1, 400: 2, 800: 3, 1600: 4, 3200: 5, 6400: 6, 12800: 7}
)

// An aperture index doesn't have meaning per se, but the distance
// between two of them does - e.g. differ by 2, then the respective
// apertures differ by 2 'stops'
func closestApertureIndex(apertureX10 int) int {
	ret := 0
	for i, fstop := range apertureX10FStops {
		if fstop <= apertureX10 {
			ret = i
		}
	}
	return ret
}

func closestShutterSpeedIndex(ssIn rational) int {
	ret := 0
	for i, ss := range shutterSpeeds {
		if ssIn[0] >= ss[0] && ss[1] >= ssIn[1] {
			ret = i
		}
	}
	return ret
}

func (e Exposure) String() string {
	if !e.Known {
		return "exposure unknown"
	}
	s := fmt.Sprintf("f/%.1f", float32(e.ApertureX10)/10.0)
	if e.ShutterSpeed[1] != 1 {
		s += fmt.Sprintf(", %d/%d", e.ShutterSpeed[0], e.ShutterSpeed[1])
	} else {
		s += fmt.Sprintf(", %ds", e.ShutterSpeed[0])
	}
	return s + fmt.Sprintf(", ISO%d, EV %d", e.ISO, e.EV)
}

// computeEV fills in the EV from the ISO/aperture/shutter triple.
func (e *Exposure) computeEV() error {
	// We know that f/5.6, at 1/4000, is EV=17; figure how we differ from
	// this in stops. Smaller apertures add stops, longer exposures lose them.
	apAdj := closestApertureIndex(e.ApertureX10) - closestApertureIndex(56)
	ssAdj := closestShutterSpeedIndex(e.ShutterSpeed) - closestShutterSpeedIndex(rational{1, 4000})

	// Adjust for ISO; the higher the ISO, the less physical light
	// needed to fully expose.
	isoAdj, exists := isoStops[e.ISO]
	if !exists {
		return fmt.Errorf("unhandled ISO %d", e.ISO)
	}

	e.EV = 17 + apAdj - ssAdj - isoAdj
	return nil
}

// readExposure pulls the ISO/FNumber/ExposureTime tags. Pictures
// without them (e.g. edited exports) just get an unknown exposure.
func readExposure(ex *exif.Exif) (Exposure, error) {
	e := Exposure{}

	if tag, err := ex.Get(exif.ISOSpeedRatings); err != nil {
		return e, fmt.Errorf("exif ISO: %w", err)
	} else if val, err := tag.Int(0); err != nil {
		return e, fmt.Errorf("exif ISO: %w", err)
	} else {
		e.ISO = val
	}

	if tag, err := ex.Get(exif.FNumber); err != nil {
		return e, fmt.Errorf("exif FNumber: %w", err)
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return e, fmt.Errorf("exif FNumber: %w", err)
	} else if denom == 0 {
		return e, fmt.Errorf("exif FNumber %d/%d", num, denom)
	} else {
		e.ApertureX10 = int(num * 10 / denom)
	}

	if tag, err := ex.Get(exif.ExposureTime); err != nil {
		return e, fmt.Errorf("exif ExposureTime: %w", err)
	} else if num, denom, err := tag.Rat2(0); err != nil {
		return e, fmt.Errorf("exif ExposureTime: %w", err)
	} else {
		e.ShutterSpeed = rational{num, denom}
	}

	if err := e.computeEV(); err != nil {
		return e, err
	}
	e.Known = true
	return e, nil
}
