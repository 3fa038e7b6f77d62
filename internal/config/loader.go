package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const platformerFile = "platformer.yaml"

// LoadPlatformer loads platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml -> ./configs/platformer.yaml -> embedded default
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	var cfg PlatformerConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		cfg.fillDefaults()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(platformerFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				cfg.fillDefaults()
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", platformerFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			cfg.fillDefaults()
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg = PlatformerConfig{}
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.fillDefaults()
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// fillDefaults replaces unusable zero values left by partial files.
func (c *PlatformerConfig) fillDefaults() {
	def := DefaultPlatformerConfig()

	if c.Player.MaxSpeed <= 0 {
		c.Player = def.Player
	}
	if c.Player.MaxJump < c.Player.MinJump {
		c.Player.MaxJump = c.Player.MinJump
	}
	if c.Input.HoldMs <= 0 {
		c.Input.HoldMs = def.Input.HoldMs
	}
	if c.Input.JumpHoldMs <= 0 {
		c.Input.JumpHoldMs = def.Input.JumpHoldMs
	}
	if c.View.CellCols <= 0 || c.View.CellRows <= 0 {
		c.View.CellCols, c.View.CellRows = def.View.CellCols, def.View.CellRows
	}
	if c.View.ViewportCols <= 0 || c.View.ViewportRows <= 0 {
		c.View.ViewportCols, c.View.ViewportRows = def.View.ViewportCols, def.View.ViewportRows
	}
	if c.Gameplay.Level == "" {
		c.Gameplay.Level = def.Gameplay.Level
	}
	if c.Gameplay.FPS <= 0 {
		c.Gameplay.FPS = def.Gameplay.FPS
	}
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Easy also gives the player a little more air.
	if preset == DifficultyEasy {
		cfg.Player.MaxJump *= 1.1
	}
}
