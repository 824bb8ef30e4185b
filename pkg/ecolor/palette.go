package ecolor

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// A Palette holds the colors used for the alignment aids drawn onto
// preview renders.
type Palette struct {
	Swatch color.RGBA // Filled patch in the middle, to judge brightness/contrast by
	Circle color.RGBA // Outline that the solar disk should sit inside
	Line   color.RGBA // Diagonal that the moon's shadow path should follow
}

var (
	// A sun-ish orange; a well adjusted picture of the corona should
	// look about this bright next to it.
	SunSwatch = color.RGBA{223, 170, 113, 0xff}

	namedColors = map[string]color.RGBA{
		"black":  {0, 0, 0, 0xff},
		"white":  {0xff, 0xff, 0xff, 0xff},
		"red":    {0xff, 0, 0, 0xff},
		"green":  {0, 0x80, 0, 0xff},
		"blue":   {0, 0, 0xff, 0xff},
		"yellow": {0xff, 0xff, 0, 0xff},
	}
)

func DefaultPalette() Palette {
	return Palette{
		Swatch: SunSwatch,
		Circle: namedColors["red"],
		Line:   namedColors["blue"],
	}
}

// ParseColor accepts a handful of color names, or hex ("#dfaa71", "#f00").
func ParseColor(s string) (color.RGBA, error) {
	if c, exists := namedColors[strings.ToLower(strings.TrimSpace(s))]; exists {
		return c, nil
	}

	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color '%s': %v", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}, nil
}

// NewPalette builds a palette from color strings; empty strings keep the default.
func NewPalette(swatch, circle, line string) (Palette, error) {
	p := DefaultPalette()
	for _, f := range []struct {
		val string
		dst *color.RGBA
	}{
		{swatch, &p.Swatch},
		{circle, &p.Circle},
		{line, &p.Line},
	} {
		if f.val == "" {
			continue
		}
		c, err := ParseColor(f.val)
		if err != nil {
			return p, err
		}
		*f.dst = c
	}
	return p, nil
}
