package config

import "math"

const (
	minCountdownMs = 10000 // shortest playable time limit
	minJumpCeiling = 0.5   // share of the jump ceiling always kept
)

// DifficultyManager scales level parameters by the configured difficulty.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables scaling.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level (0.0 to 1.0), 0 when disabled.
func (d *DifficultyManager) Level() float64 {
	if !d.cfg.Enabled {
		return 0
	}
	return d.initialLevel
}

// Countdown returns the scaled level time limit in milliseconds.
// A zero base means no limit and is returned unchanged.
func (d *DifficultyManager) Countdown(baseMs int64) int64 {
	if baseMs <= 0 {
		return baseMs
	}
	factor := 1.0 - d.Level()*d.cfg.Scaling.CountdownReduction
	result := int64(math.Round(float64(baseMs) * factor))
	if result < minCountdownMs {
		result = min(baseMs, minCountdownMs)
	}
	return result
}

// MaxJump returns the scaled jump ceiling. It never drops below minJump.
func (d *DifficultyManager) MaxJump(base, minJump float64) float64 {
	factor := math.Max(1.0-d.Level()*d.cfg.Scaling.JumpReduction, minJumpCeiling)
	return math.Max(base*factor, minJump)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
