package eclipse

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

// LoadPictures loads each file, and recurses into each directory (in
// name order). Sidecar files are skipped, but each picture is seeded
// from its sidecar if it has one. Files that aren't pictures are ignored.
func LoadPictures(args ...string) ([]*Picture, error) {
	pics := []*Picture{}

	for _, arg := range args {
		item, err := os.Stat(arg)

		switch {

		case err != nil:
			return nil, &LoadError{arg, err}

		case item.IsDir():
			// Is a dir, recurse into contents
			contents, err := os.ReadDir(arg)
			if err != nil {
				return nil, &LoadError{arg, fmt.Errorf("readdir: %w", err)}
			}
			for _, content := range contents {
				more, err := LoadPictures(filepath.Join(arg, content.Name()))
				if err != nil {
					return nil, err
				}
				pics = append(pics, more...)
			}

		case !IsPictureFile(arg):
			log.Debugf("Skipping %s", arg)

		default: // is a picture, load it
			log.Debugf("Opening image %s", arg)
			pic, err := LoadPicture(arg)
			if err != nil {
				return nil, err
			}
			log.Debugf("Loading image details %s", arg)
			if err := pic.LoadSidecar(); err != nil {
				return nil, err
			}
			pics = append(pics, pic)
		}
	}

	return pics, nil
}

func IsPictureFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".tif", ".tiff", ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// LoadPicture decodes the file and reads its capture time. The picture
// starts with default params; see LoadSidecar.
func LoadPicture(filename string) (*Picture, error) {
	img, err := decodeImage(filename)
	if err != nil {
		return nil, &LoadError{filename, err}
	}

	when, exposure, err := readMetadata(filename)
	if err != nil {
		return nil, &LoadError{filename, err}
	}

	pic := NewPicture(filename, img, when)
	pic.Exposure = exposure
	return pic, nil
}

func decodeImage(filename string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(filename)) {

	case ".tif", ".tiff":
		reader, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("open+r img '%s': %w", filename, err)
		}
		defer reader.Close()

		img, err := tiff.Decode(reader)
		if err != nil {
			return nil, fmt.Errorf("tiff loading '%s': %w", filename, err)
		}
		return img, nil

	default:
		img, err := imaging.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("image loading '%s': %w", filename, err)
		}
		return img, nil
	}
}

// readMetadata gets the capture time from EXIF DateTimeOriginal (or
// DateTime), and the exposure if it is there. Pictures without EXIF,
// e.g. PNG exports, fall back to the file's mtime so they can still be
// put in some kind of order.
func readMetadata(filename string) (time.Time, Exposure, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return time.Time{}, Exposure{}, fmt.Errorf("open+r exif '%s': %w", filename, err)
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if ex == nil || (err != nil && exif.IsCriticalError(err)) {
		log.Debugf("%s: no exif (%v), using mtime", filename, err)
		when, err := modTime(reader)
		return when, Exposure{}, err
	} else if err != nil {
		// A broken sub-IFD (GPS, Interop); the main IFD is still good
		log.Debugf("%s: partial exif: %v", filename, err)
	}

	exposure, err := readExposure(ex)
	if err != nil {
		log.Debugf("%s: %v", filename, err)
	}

	when, err := ex.DateTime()
	if err != nil {
		log.Debugf("%s: no exif DateTimeOriginal (%v), using mtime", filename, err)
		when, err = modTime(reader)
	}
	return when, exposure, err
}

func modTime(f *os.File) (time.Time, error) {
	info, err := f.Stat()
	if err != nil {
		return time.Time{}, fmt.Errorf("stat '%s': %w", f.Name(), err)
	}
	return info.ModTime(), nil
}
