package eclipse

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/abworrall/eclipsifier/pkg/ecolor"
)

// DrawAlignmentAids burns three guides into a preview, in this order:
//   - a filled swatch over the middle quarter (37.5%-62.5% on each axis),
//     the color a well adjusted corona should roughly match
//   - a circle inscribed in the 25%-75% square; the solar disk goes in it
//   - a line from (0, 30%) to (100%, 70%); the moon's shadow path follows it
func DrawAlignmentAids(img *image.RGBA, pal ecolor.Palette) {
	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())

	dc := gg.NewContextForRGBA(img)

	dc.SetColor(pal.Swatch)
	dc.DrawRectangle(w*0.375, h*0.375, w*0.25, h*0.25)
	dc.Fill()

	dc.SetLineWidth(1)
	dc.SetColor(pal.Circle)
	dc.DrawEllipse(w*0.5, h*0.5, w*0.25, h*0.25)
	dc.Stroke()

	dc.SetColor(pal.Line)
	dc.DrawLine(0, h*0.3, w, h*0.7)
	dc.Stroke()
}
