// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	AI       AIConfig       `toml:"ai"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Words          *int     `toml:"words"`
	Difficulty     *string  `toml:"difficulty"`
	Source         *string  `toml:"source"`
	Lang           *string  `toml:"lang"`
	Highlight      *bool    `toml:"highlight"`
	FoldLineBreaks *bool    `toml:"fold-line-breaks"`
	FocusWeak      *bool    `toml:"focus-weak"`
	WeakTop        *int     `toml:"weak-top"`
	WeakFactor     *float64 `toml:"weak-factor"`
	WeakWindow     *int     `toml:"weak-window"`
}

// AIConfig maps passage generation settings.
type AIConfig struct {
	Model     *string `toml:"model"`
	APIKeyEnv *string `toml:"api-key-env"`
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
