package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the default platformer configuration.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Player: PlayerConfig{
			Acceleration: 8,
			Deceleration: 10,
			MaxSpeed:     260,
			MinJump:      76,
			MaxJump:      160,
		},
		Input: InputConfig{
			HoldMs:     150,
			JumpHoldMs: 120,
		},
		View: ViewConfig{
			CellCols:      4,
			CellRows:      2,
			ViewportCols:  20,
			ViewportRows:  10,
			ShowWater:     true,
			ShowPowerGrid: false,
		},
		Gameplay: GameplayConfig{
			Level: "meadow",
			FPS:   60,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Scaling: ScalingConfig{
				CountdownReduction: 0.5,
				JumpReduction:      0.2,
			},
		},
	}
}
