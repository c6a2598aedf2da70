package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const billiardsFile = "billiards.yaml"

// LoadBilliards loads the table configuration.
// Search order: customPath -> ~/.billiards/configs/billiards.yaml -> ./configs/billiards.yaml -> embedded default
// Files are layered over the defaults, so partial files are fine.
func LoadBilliards(customPath string) (BilliardsConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BilliardsConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg := DefaultBilliardsConfig()
		if err := decode(customPath, data, &cfg); err != nil {
			return BilliardsConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return BilliardsConfig{}, err
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(billiardsFile); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", billiardsFile)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultBilliardsConfig()
	if err := yaml.Unmarshal(defaultBilliardsYAML, &cfg); err != nil {
		return DefaultBilliardsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, broken or invalid files are skipped.
func tryLoad(path string) (BilliardsConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BilliardsConfig{}, false
	}
	cfg := DefaultBilliardsConfig()
	if err := decode(path, data, &cfg); err != nil {
		return BilliardsConfig{}, false
	}
	if err := cfg.Validate(); err != nil {
		return BilliardsConfig{}, false
	}
	return cfg, true
}

// decode picks the format from the file extension. Anything but .toml is YAML.
func decode(path string, data []byte, cfg *BilliardsConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".billiards", "configs", filename)
}

// ApplyBilliardsPreset modifies the config based on a difficulty preset.
// Easy widens the pockets and lets balls roll further; hard does the opposite.
// Fixed pins the canonical table geometry and physics.
func ApplyBilliardsPreset(cfg *BilliardsConfig, preset DifficultyPreset) {
	def := DefaultBilliardsConfig()

	switch preset {
	case DifficultyEasy:
		cfg.Table.PocketRadius = 36
		cfg.Physics.Friction = 0.992
	case DifficultyNormal:
		cfg.Table.PocketRadius = def.Table.PocketRadius
		cfg.Physics.Friction = def.Physics.Friction
	case DifficultyHard:
		cfg.Table.PocketRadius = 24
		cfg.Physics.Friction = 0.985
	case DifficultyFixed:
		cfg.Table = def.Table
		cfg.Physics.Friction = def.Physics.Friction
		cfg.Physics.StrikeGain = def.Physics.StrikeGain
		cfg.Layout = def.Layout
	}
}
