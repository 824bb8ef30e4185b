package eclipse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/eclipsifier/pkg/ecolor"
)

/* Example config.yml ...

base_dir: ~/photos/eclipse-2024
collage:
  width: 5760
  height: 5760
  tile_size: 640
  central_index: 12
  workers: 4
  output: collage.png
overlay:
  swatch: "#dfaa71"
  circle: red
  line: blue

*/

type CollageConfig struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	TileSize     int    `yaml:"tile_size"`
	CentralIndex int    `yaml:"central_index"`
	Workers      int    `yaml:"workers"`
	Output       string `yaml:"output"`
}

type OverlayConfig struct {
	Swatch string `yaml:"swatch"`
	Circle string `yaml:"circle"`
	Line   string `yaml:"line"`
}

type Config struct {
	BaseDir string        `yaml:"base_dir"`
	Collage CollageConfig `yaml:"collage"`
	Overlay OverlayConfig `yaml:"overlay"`
}

// Environment variables that override the config file.
const (
	EnvBaseDir = "ECLIPSIFIER_BASE_DIR"
	EnvOutput  = "ECLIPSIFIER_OUTPUT"
)

func NewConfig() Config {
	return Config{
		BaseDir: "./eclipse",
		Collage: CollageConfig{
			Width:    DefaultCollageWidth,
			Height:   DefaultCollageHeight,
			TileSize: DefaultBestSize,
			Workers:  1,
			Output:   "collage.png",
		},
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	err := yaml.Unmarshal(b, &c)
	return c, err
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Errorf("Can't marshal config yaml: %v", err)
	}
	return string(b)
}

// LoadConfig reads the config file if there is one (a missing file just
// means defaults), then applies any environment overrides.
func LoadConfig(filename string) (Config, error) {
	c := NewConfig()

	if filename != "" {
		contents, err := os.ReadFile(filename)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debugf("No config file %s, using defaults", filename)
		} else if err != nil {
			return c, fmt.Errorf("config read %s: %v", filename, err)
		} else if c, err = newConfigFromYaml(contents); err != nil {
			return c, fmt.Errorf("config parse %s: %v", filename, err)
		}
	}

	c.ApplyEnv(os.Getenv)

	return c, c.Finalize()
}

func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvBaseDir); v != "" {
		c.BaseDir = v
	}
	if v := getenv(EnvOutput); v != "" {
		c.Collage.Output = v
	}
}

// Finalize expands ~ in paths and sanity checks the collage setup.
func (c *Config) Finalize() error {
	dir, err := homedir.Expand(c.BaseDir)
	if err != nil {
		return fmt.Errorf("base_dir '%s': %v", c.BaseDir, err)
	}
	c.BaseDir = dir

	if c.Collage.Width <= 0 || c.Collage.Height <= 0 || c.Collage.TileSize <= 0 {
		return fmt.Errorf("collage sizes must be positive: %dx%d, tile %d",
			c.Collage.Width, c.Collage.Height, c.Collage.TileSize)
	}

	if _, err := c.Palette(); err != nil {
		return fmt.Errorf("overlay: %v", err)
	}

	return nil
}

func (c Config) Palette() (ecolor.Palette, error) {
	return ecolor.NewPalette(c.Overlay.Swatch, c.Overlay.Circle, c.Overlay.Line)
}

// NewCollage sets up a collage over the pictures, as configured.
func (c Config) NewCollage(pics []*Picture) Collage {
	col := NewCollage(pics)
	col.Width = c.Collage.Width
	col.Height = c.Collage.Height
	col.TileSize = c.Collage.TileSize
	col.CentralIndex = c.Collage.CentralIndex
	col.Workers = c.Collage.Workers
	return col
}
