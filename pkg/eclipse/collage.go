package eclipse

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultCollageWidth  = 5760
	DefaultCollageHeight = 5760
	DefaultPreviewSize   = 640
)

// A Placement records where one tile went on the canvas.
type Placement struct {
	Picture *Picture
	Size    int         // The Best size that was asked for
	At      image.Point // Top left corner on the canvas
}

// A Collage tiles the Best renders of the included pictures onto one
// canvas, left to right, top to bottom. One of them (counted among the
// included pictures only) is the central picture, and is rendered as
// wide as the whole canvas.
type Collage struct {
	Pictures     []*Picture
	Width        int
	Height       int
	TileSize     int
	CentralIndex int // Position among the included pictures; -1 for none
	Workers      int // If >1, render tiles in parallel before pasting
	Background   color.Color

	Placements []Placement // Filled in by Render
}

func NewCollage(pics []*Picture) Collage {
	return Collage{
		Pictures:     pics,
		Width:        DefaultCollageWidth,
		Height:       DefaultCollageHeight,
		TileSize:     DefaultBestSize,
		CentralIndex: 0,
		Workers:      1,
		Background:   color.White,
	}
}

// Composite renders a collage with the default background, sequentially.
func Composite(pics []*Picture, width, height, tileSize, centralIndex int) (*image.RGBA, error) {
	c := NewCollage(pics)
	c.Width, c.Height = width, height
	c.TileSize = tileSize
	c.CentralIndex = centralIndex
	return c.Render()
}

func (c *Collage) String() string {
	return fmt.Sprintf("Collage[%dx%d, tile %d, central #%d, %d pictures]",
		c.Width, c.Height, c.TileSize, c.CentralIndex, len(c.Pictures))
}

func (c *Collage) sizeFor(i int) int {
	if i == c.CentralIndex {
		return c.Width
	}
	return c.TileSize
}

// Render builds the canvas. Each tile is pasted at the cursor, which
// then moves right by the tile's width; once it reaches the canvas
// width it wraps to the left, moving down by the height of the tile
// just pasted. Rows are not evened out, and tiles that run off the
// bottom are just clipped. Excluded pictures don't move the cursor.
func (c *Collage) Render() (*image.RGBA, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("collage size must be positive, got %dx%d", c.Width, c.Height)
	}

	bg := c.Background
	if bg == nil {
		bg = color.White
	}
	canvas := newFilledRGBA(c.Width, c.Height, bg)

	if c.Workers > 1 {
		if err := c.prerender(); err != nil {
			return nil, err
		}
	}

	log.Debugf("Rendering %s", c)
	c.Placements = []Placement{}

	x, y, i := 0, 0, 0
	for _, pic := range c.Pictures {
		if !pic.Included() {
			continue
		}

		size := c.sizeFor(i)
		img, err := pic.ConfiguredBest(size)
		if err != nil {
			return nil, fmt.Errorf("collage tile %d: %w", i, err)
		}

		at := image.Point{x, y}
		b := img.Bounds()
		draw.Draw(canvas, b.Sub(b.Min).Add(at), img, b.Min, draw.Src)
		c.Placements = append(c.Placements, Placement{Picture: pic, Size: size, At: at})

		x += b.Dx()
		if x >= c.Width {
			x = 0
			y += b.Dy()
		}
		i++
	}

	return canvas, nil
}

// prerender fills the render caches in parallel. Each picture gets
// exactly one goroutine, since a Picture's cache isn't safe to share,
// and a picture may appear more than once in the list.
func (c *Collage) prerender() error {
	sizes := map[*Picture][]int{}
	order := []*Picture{}

	i := 0
	for _, pic := range c.Pictures {
		if !pic.Included() {
			continue
		}
		if _, exists := sizes[pic]; !exists {
			order = append(order, pic)
		}
		sizes[pic] = append(sizes[pic], c.sizeFor(i))
		i++
	}

	log.Debugf("Prerendering %d pictures with %d workers", len(order), c.Workers)

	var g errgroup.Group
	g.SetLimit(c.Workers)
	for _, pic := range order {
		pic, want := pic, sizes[pic]
		g.Go(func() error {
			for _, size := range want {
				if _, err := pic.ConfiguredBest(size); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// FitPreview shrinks a (huge) collage so its long side is maxSize, for
// showing on screen.
func FitPreview(img image.Image, maxSize int) *image.NRGBA {
	if maxSize <= 0 {
		maxSize = DefaultPreviewSize
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	vw, vh := maxSize, maxSize*h/w
	if w < h {
		vw, vh = maxSize*w/h, maxSize
	}

	return imaging.Resize(img, vw, vh, imaging.CatmullRom)
}
