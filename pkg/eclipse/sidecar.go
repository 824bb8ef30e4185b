package eclipse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v2"
)

/* Example sidecar, saved next to the picture as DSC_1234.tif.yml ...

cx: 2231
cy: 1604
rotate: -12
zoom: 140
included: true
brightness: 100
contrast: 115

*/

// SavedParams is what gets written to a sidecar. The first four keys are
// required; the rest default to included, 100%, 100%.
type SavedParams struct {
	CX         *float64 `yaml:"cx"`
	CY         *float64 `yaml:"cy"`
	Rotate     *int     `yaml:"rotate"`
	Zoom       *int     `yaml:"zoom"`
	Included   *bool    `yaml:"included,omitempty"`
	Brightness *int     `yaml:"brightness,omitempty"`
	Contrast   *int     `yaml:"contrast,omitempty"`
}

func SidecarFilename(pictureFilename string) string {
	return pictureFilename + ".yml"
}

func NewSavedParams(p Params) SavedParams {
	return SavedParams{
		CX:         &p.CX,
		CY:         &p.CY,
		Rotate:     &p.Rotate,
		Zoom:       &p.Zoom,
		Included:   &p.Included,
		Brightness: &p.Brightness,
		Contrast:   &p.Contrast,
	}
}

// ApplyTo overlays the saved values onto some params; the output size
// is never saved, so it is left alone.
func (sp SavedParams) ApplyTo(p Params) (Params, error) {
	if sp.CX == nil || sp.CY == nil || sp.Rotate == nil || sp.Zoom == nil {
		return p, fmt.Errorf("sidecar needs all of cx, cy, rotate, zoom")
	}

	p.CX, p.CY = *sp.CX, *sp.CY
	p.Rotate = *sp.Rotate
	p.Zoom = *sp.Zoom
	p.Included = true
	p.Brightness = 100
	p.Contrast = 100

	if sp.Included != nil {
		p.Included = *sp.Included
	}
	if sp.Brightness != nil {
		p.Brightness = *sp.Brightness
	}
	if sp.Contrast != nil {
		p.Contrast = *sp.Contrast
	}

	return p, nil
}

func (sp SavedParams) AsYaml() (string, error) {
	b, err := yaml.Marshal(sp)
	return string(b), err
}

// ReadSidecar returns ErrNoSidecar if the picture was never saved.
func ReadSidecar(pictureFilename string) (SavedParams, error) {
	sp := SavedParams{}
	filename := SidecarFilename(pictureFilename)

	contents, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return sp, ErrNoSidecar
	} else if err != nil {
		return sp, &LoadError{filename, err}
	}

	if err := yaml.Unmarshal(contents, &sp); err != nil {
		return sp, &LoadError{filename, fmt.Errorf("yaml: %w", err)}
	}
	return sp, nil
}

func WriteSidecar(pictureFilename string, p Params) error {
	str, err := NewSavedParams(p).AsYaml()
	if err != nil {
		return fmt.Errorf("sidecar yaml: %v", err)
	}

	filename := SidecarFilename(pictureFilename)
	if err := os.WriteFile(filename, []byte(str), 0644); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	}
	return nil
}

// LoadSidecar seeds the params from the picture's sidecar, if there is
// one; otherwise the defaults stand and Loaded stays false.
func (p *Picture) LoadSidecar() error {
	sp, err := ReadSidecar(p.LoadFilename)
	if errors.Is(err, ErrNoSidecar) {
		return nil
	} else if err != nil {
		return err
	}

	np, err := sp.ApplyTo(p.params)
	if err != nil {
		return &LoadError{SidecarFilename(p.LoadFilename), err}
	}

	p.SetParams(np)
	p.Loaded = true
	return nil
}

func (p *Picture) SaveSidecar() error {
	if err := WriteSidecar(p.LoadFilename, p.params); err != nil {
		return err
	}
	p.Loaded = true
	return nil
}
