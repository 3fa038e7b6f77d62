// Package config provides YAML-based tuning for the platformer and the
// difficulty presets that scale it.
package config

// PlatformerConfig contains all tunable platformer parameters.
type PlatformerConfig struct {
	Player     PlayerConfig     `yaml:"player"`
	Input      InputConfig      `yaml:"input"`
	View       ViewConfig       `yaml:"view"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PlayerConfig defines the player's agility, in world units per second.
type PlayerConfig struct {
	Acceleration float64 `yaml:"acceleration"`
	Deceleration float64 `yaml:"deceleration"`
	MaxSpeed     float64 `yaml:"max_speed"`
	MinJump      float64 `yaml:"min_jump"`
	MaxJump      float64 `yaml:"max_jump"`
}

// InputConfig defines how key presses are turned into held controls.
// Terminals report presses only, so a key counts as held for a while after
// its last press.
type InputConfig struct {
	HoldMs     int `yaml:"hold_ms"`      // left/right stay held this long
	JumpHoldMs int `yaml:"jump_hold_ms"` // jump stays held this long
}

// ViewConfig defines how the world is projected onto the terminal.
type ViewConfig struct {
	CellCols      int  `yaml:"cell_cols"` // characters per tile horizontally
	CellRows      int  `yaml:"cell_rows"` // characters per tile vertically
	ViewportCols  int  `yaml:"viewport_cols"`
	ViewportRows  int  `yaml:"viewport_rows"`
	ShowWater     bool `yaml:"show_water"`
	ShowPowerGrid bool `yaml:"show_power_grid"`
}

// GameplayConfig defines session-level settings.
type GameplayConfig struct {
	Level string `yaml:"level"` // level played when none is chosen
	FPS   int    `yaml:"fps"`
}

// DifficultyConfig defines how hard a level plays.
type DifficultyConfig struct {
	Enabled      bool          `yaml:"enabled"`
	InitialLevel float64       `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Scaling      ScalingConfig `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	CountdownReduction float64 `yaml:"countdown_reduction"` // share of the countdown removed at max difficulty
	JumpReduction      float64 `yaml:"jump_reduction"`      // share of the jump ceiling removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset returns the preset named s. Empty selects normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	if s == "" {
		return DifficultyNormal, true
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
