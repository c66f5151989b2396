package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Pad.StrokeWidth)
	assert.Nil(t, cfg.Remote.Listen)

	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[pad]
stroke-width = 5.0
ms-per-unit = 1.5
easing = "linear"

[remote]
listen = 9911
advertise = false
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Pad.StrokeWidth)
	assert.Equal(t, 5.0, *cfg.Pad.StrokeWidth)
	assert.Equal(t, 1.5, *cfg.Pad.MsPerUnit)
	assert.Equal(t, "linear", *cfg.Pad.Easing)
	assert.Nil(t, cfg.Pad.FillScale)
	assert.Equal(t, 9911, *cfg.Remote.Listen)
	assert.False(t, *cfg.Remote.Advertise)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pad\nstroke-width = "), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "failed to decode config")
}

func TestTemplateDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(DefaultTemplate), 0o644))
	_, err := LoadConfig(path)
	assert.NoError(t, err)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "signpad", "config.toml"), DefaultConfigPath())
}

func TestSettingsValidate(t *testing.T) {
	require.NoError(t, Defaults().Validate())

	bad := []func(*Settings){
		func(s *Settings) { s.StrokeWidth = 0 },
		func(s *Settings) { s.StrokeColor = "blue" },
		func(s *Settings) { s.MsPerUnit = -1 },
		func(s *Settings) { s.MsPerUnit = 1e-7 },
		func(s *Settings) { s.FillScale = 0 },
		func(s *Settings) { s.Easing = "wobble" },
		func(s *Settings) { s.FrameRate = 0 },
		func(s *Settings) { s.Listen = 70000 },
	}
	for i, mutate := range bad {
		s := Defaults()
		mutate(&s)
		assert.Error(t, s.Validate(), "case %d", i)
	}

	fast := Defaults()
	fast.MsPerUnit = 0.001
	require.NoError(t, fast.Validate())
	assert.Positive(t, fast.Timing().PerUnit)
}

func TestSettingsTiming(t *testing.T) {
	s := Defaults()
	s.MsPerUnit = 0.5
	s.FillScale = 2
	tm := s.Timing()
	assert.Equal(t, 500*time.Microsecond, tm.PerUnit)
	assert.Equal(t, 2.0, tm.FillScale)
	assert.NotNil(t, tm.Reveal)
	assert.Equal(t, 100*time.Millisecond, tm.Full(200))
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1B7F3E")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0x1b, G: 0x7f, B: 0x3e, A: 0xff}, c)

	c, err = ParseColor("fff")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, err = ParseColor("#12")
	assert.Error(t, err)
	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)
}
