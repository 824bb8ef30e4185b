package eclipse

import (
	"errors"
	"fmt"
)

// ErrNoSidecar means the picture has never had its settings saved; the
// defaults stand.
var ErrNoSidecar = errors.New("no saved configuration")

// A LoadError is returned when a source picture (or its sidecar) can't
// be read or decoded. Nothing retries these.
type LoadError struct {
	Filename string
	Err      error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load '%s': %v", e.Filename, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// A GeometryError is returned when the parameters don't describe a
// usable crop: zoom <= 0, a non-positive output size, or a crop window
// that misses the source picture entirely.
type GeometryError struct {
	Filename string
	Reason   string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("geometry '%s': %s", e.Filename, e.Reason)
}

func IsGeometryError(err error) bool {
	var ge *GeometryError
	return errors.As(err, &ge)
}

func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
