// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Input  InputConfig   `toml:"input"`
	Layers []LayerConfig `toml:"layer"`
}

// InputConfig maps runtime recognition settings.
type InputConfig struct {
	CenterThreshold  *float64 `toml:"center-threshold"`
	SectorCount      *int     `toml:"sector-count"`
	MaxGestureLength *int     `toml:"max-gesture-length"`
	SampleRateHz     *int     `toml:"sample-rate-hz"`
	FeedURL          *string  `toml:"feed-url"`
	TablePath        *string  `toml:"table-path"`
}

// LayerConfig declares an extra modifier layer for the offline builder: the
// modifier bitmask and the ordered key list to place on that layer. The base
// layer (mask 0) always comes from the frequency store and needs no entry.
type LayerConfig struct {
	Mods int      `toml:"mods"`
	Keys []string `toml:"keys"`
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
	for _, layer := range cfg.Layers {
		if layer.Mods <= 0 || layer.Mods > 255 {
			return FileConfig{}, fmt.Errorf("layer mods %d out of range (1-255)", layer.Mods)
		}
		if len(layer.Keys) == 0 {
			return FileConfig{}, fmt.Errorf("layer %d has no keys", layer.Mods)
		}
	}
	return cfg, nil
}
