package eclipse

import (
	"image"
)

// A Flavor is one of the three ways of rendering a picture.
type Flavor int

const (
	Preview   Flavor = iota // Fast, at the picture's output size, with alignment aids drawn on
	Best                    // High quality, square, at any requested size
	Thumbnail               // Tiny and fast, for timelines
)

const (
	DefaultBestSize      = 640
	DefaultThumbnailSize = 20
)

func (f Flavor) String() string {
	switch f {
	case Preview:
		return "preview"
	case Best:
		return "best"
	case Thumbnail:
		return "thumbnail"
	}
	return "unknown"
}

// renderKey identifies one cached raster. Preview has a single slot
// (size is always zero); Best is keyed by the requested size, since a
// collage asks for both the tile size and the full canvas width.
type renderKey struct {
	Flavor Flavor
	Size   int
}

func newRenderKey(f Flavor, size int) renderKey {
	switch f {
	case Preview:
		size = 0
	case Best:
		if size <= 0 {
			size = DefaultBestSize
		}
	case Thumbnail:
		if size <= 0 {
			size = DefaultThumbnailSize
		}
	}
	return renderKey{f, size}
}

// renderCache holds the renders for a single Picture. It is
// read-through: a miss is not an error, the caller renders and calls
// put. Thumbnails get one slot; asking for a new size evicts the old one.
type renderCache struct {
	rasters map[renderKey]*image.RGBA

	Hits   int
	Misses int
}

func (rc *renderCache) get(k renderKey) *image.RGBA {
	if img, exists := rc.rasters[k]; exists {
		rc.Hits++
		return img
	}
	rc.Misses++
	return nil
}

func (rc *renderCache) put(k renderKey, img *image.RGBA) {
	if rc.rasters == nil {
		rc.rasters = map[renderKey]*image.RGBA{}
	}
	if k.Flavor != Best {
		rc.invalidateFlavor(k.Flavor)
	}
	rc.rasters[k] = img
}

// invalidate drops everything in one go, so nobody can see a half
// cleared cache.
func (rc *renderCache) invalidate() {
	rc.rasters = nil
}

func (rc *renderCache) invalidateFlavor(f Flavor) {
	for k := range rc.rasters {
		if k.Flavor == f {
			delete(rc.rasters, k)
		}
	}
}

func (rc *renderCache) len() int {
	return len(rc.rasters)
}
