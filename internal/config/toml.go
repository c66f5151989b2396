// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Pad    PadConfig    `toml:"pad"`
	Remote RemoteConfig `toml:"remote"`
}

// PadConfig maps drawing and animation settings.
type PadConfig struct {
	StrokeWidth *float64 `toml:"stroke-width"`
	StrokeColor *string  `toml:"stroke-color"`
	MsPerUnit   *float64 `toml:"ms-per-unit"`
	FillScale   *float64 `toml:"fill-scale"`
	DrainScale  *float64 `toml:"drain-scale"`
	Easing      *string  `toml:"easing"`
	FrameRate   *int     `toml:"frame-rate"`
}

// RemoteConfig maps the remote tablet settings.
type RemoteConfig struct {
	Listen    *int  `toml:"listen"`
	Advertise *bool `toml:"advertise"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultTemplate is written by `signpad config` when no file exists yet.
const DefaultTemplate = `# signpad configuration

[pad]
# stroke-width = 3.5
# stroke-color = "#404040"
# ms-per-unit = 2.0
# fill-scale = 1.0
# drain-scale = 1.0
# easing = "bezier"    # bezier | ease-out | ease-in-out | ease-in | linear
# frame-rate = 60

[remote]
# listen = 0           # port for remote tablets, 0 disables
# advertise = true
`
