package eclipse

import (
	"image"
	"time"

	"github.com/fogleman/gg"

	"github.com/abworrall/eclipsifier/pkg/ecolor"
)

// The timeline lays pictures out vertically by capture time, one pixel
// per this much time, so gaps in the sequence show up as gaps.
const TimelineResolution = 5 * time.Second

// A TimelineEntry is one included picture, placed by when it was taken.
type TimelineEntry struct {
	Picture   *Picture
	Label     string      // Capture time, HH:MM:SS
	Offset    int         // Pixels down from the first picture
	Thumbnail *image.RGBA // The cached Thumbnail render
	MeanLuma  float64     // Of the thumbnail; shows the light dropping into totality
	PeakLuma  int64       // 99th percentile luma of the thumbnail
}

// BuildTimeline places the included pictures. Offsets are measured
// from the first picture in the list, whether or not it is included;
// the pictures are expected to be in capture order already.
func BuildTimeline(pics []*Picture, thumbSize int) ([]TimelineEntry, error) {
	entries := []TimelineEntry{}
	if len(pics) == 0 {
		return entries, nil
	}

	start := pics[0].CaptureTime
	for _, pic := range pics {
		if !pic.Included() {
			continue
		}

		thumb, err := pic.ConfiguredSmall(thumbSize)
		if err != nil {
			return nil, err
		}

		h := ecolor.LumaHistogram(thumb)
		entries = append(entries, TimelineEntry{
			Picture:   pic,
			Label:     pic.CaptureTime.Format("15:04:05"),
			Offset:    int(pic.CaptureTime.Sub(start) / TimelineResolution),
			Thumbnail: thumb,
			MeanLuma:  h.Mean(),
			PeakLuma:  h.ValueAtQuantile(99),
		})
	}

	return entries, nil
}

// RenderTimeline draws the entries onto a white strip: the time label
// at x=10, the thumbnail at x=100. If the pictures weren't in time
// order the whole strip is shifted down so nothing lands above the top.
func RenderTimeline(entries []TimelineEntry) *image.RGBA {
	const labelX, thumbX, margin = 10, 100, 10

	minOff, maxOff, thumbSize := 0, 0, 0
	for _, e := range entries {
		if e.Offset < minOff {
			minOff = e.Offset
		}
		if e.Offset > maxOff {
			maxOff = e.Offset
		}
		if s := e.Thumbnail.Bounds().Dy(); s > thumbSize {
			thumbSize = s
		}
	}

	dc := gg.NewContext(thumbX+thumbSize+margin, maxOff-minOff+thumbSize+2*margin)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	for _, e := range entries {
		y := e.Offset - minOff + margin
		dc.DrawStringAnchored(e.Label, labelX, float64(y), 0, 1)
		dc.DrawImage(e.Thumbnail, thumbX, y)
	}

	return dc.Image().(*image.RGBA)
}
