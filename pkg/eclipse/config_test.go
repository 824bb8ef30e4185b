package eclipse

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/eclipsifier/pkg/ecolor"
)

func clearEnv(t *testing.T) {
	t.Setenv(EnvBaseDir, "")
	t.Setenv(EnvOutput, "")
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0644))
	return filename
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	c, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), c)
	assert.Equal(t, "./eclipse", c.BaseDir)
	assert.Equal(t, DefaultCollageWidth, c.Collage.Width)
	assert.Equal(t, DefaultBestSize, c.Collage.TileSize)
	assert.Equal(t, "collage.png", c.Collage.Output)

	pal, err := c.Palette()
	require.NoError(t, err)
	assert.Equal(t, ecolor.DefaultPalette(), pal)
}

func TestLoadConfigFile(t *testing.T) {
	clearEnv(t)

	filename := writeConfig(t, `
base_dir: /photos/eclipse
collage:
  width: 2000
  height: 1500
  tile_size: 200
  central_index: 3
  workers: 4
overlay:
  swatch: "#ff0000"
  line: yellow
`)

	c, err := LoadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, "/photos/eclipse", c.BaseDir)
	assert.Equal(t, CollageConfig{
		Width:        2000,
		Height:       1500,
		TileSize:     200,
		CentralIndex: 3,
		Workers:      4,
		Output:       "collage.png", // not in the file, so still the default
	}, c.Collage)

	pal, err := c.Palette()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, pal.Swatch)
	assert.Equal(t, ecolor.DefaultPalette().Circle, pal.Circle)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0, 0xff}, pal.Line)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv(EnvBaseDir, "/from/env")
	t.Setenv(EnvOutput, "env.png")

	filename := writeConfig(t, "base_dir: /from/file\n")
	c, err := LoadConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", c.BaseDir)
	assert.Equal(t, "env.png", c.Collage.Output)
}

func TestLoadConfigHomeDir(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	c, err := LoadConfig(writeConfig(t, "base_dir: ~/eclipse-2024\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "eclipse-2024"), c.BaseDir)
}

func TestLoadConfigErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name     string
		contents string
	}{
		{"bad yaml", "collage: [\n"},
		{"zero width", "collage:\n  width: 0\n"},
		{"negative tile", "collage:\n  tile_size: -5\n"},
		{"bad color", "overlay:\n  circle: not-a-color\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{EnvOutput: "out.png"}
	c := NewConfig()
	c.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "./eclipse", c.BaseDir, "unset vars change nothing")
	assert.Equal(t, "out.png", c.Collage.Output)
}

func TestConfigNewCollage(t *testing.T) {
	c := NewConfig()
	c.Collage.Width, c.Collage.Height = 800, 600
	c.Collage.TileSize = 100
	c.Collage.CentralIndex = 2
	c.Collage.Workers = 3

	pics := solidPictures(red, green)
	col := c.NewCollage(pics)
	assert.Equal(t, pics, col.Pictures)
	assert.Equal(t, 800, col.Width)
	assert.Equal(t, 600, col.Height)
	assert.Equal(t, 100, col.TileSize)
	assert.Equal(t, 2, col.CentralIndex)
	assert.Equal(t, 3, col.Workers)
}

func TestConfigAsYaml(t *testing.T) {
	c, err := newConfigFromYaml([]byte(NewConfig().AsYaml()))
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), c)
}
