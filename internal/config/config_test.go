package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the home and working directories at empty temp dirs so
// the search order only finds what the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home, work
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPlatformerEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := LoadPlatformer("")
	if err != nil {
		t.Fatalf("LoadPlatformer() error: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Errorf("embedded config differs from hardcoded defaults:\n%+v\n%+v", cfg, DefaultPlatformerConfig())
	}
}

func TestLoadPlatformerSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "platformer.yaml"), "gameplay:\n  level: local\n")
	cfg, err := LoadPlatformer("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gameplay.Level != "local" {
		t.Errorf("level = %q, expected local", cfg.Gameplay.Level)
	}

	writeFile(t, filepath.Join(home, ".platformer", "configs", "platformer.yaml"), "gameplay:\n  level: user\n")
	cfg, err = LoadPlatformer("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gameplay.Level != "user" {
		t.Errorf("level = %q, expected user", cfg.Gameplay.Level)
	}

	custom := filepath.Join(work, "custom.yaml")
	writeFile(t, custom, "gameplay:\n  level: custom\n  fps: 30\n")
	cfg, err = LoadPlatformer(custom)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gameplay.Level != "custom" || cfg.Gameplay.FPS != 30 {
		t.Errorf("gameplay = %+v, expected custom at 30 fps", cfg.Gameplay)
	}
	// Partial files keep usable defaults.
	if cfg.Player != DefaultPlatformerConfig().Player {
		t.Errorf("player = %+v, expected defaults", cfg.Player)
	}
}

func TestLoadPlatformerErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := LoadPlatformer(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "player: [")
	if _, err := LoadPlatformer(bad); err == nil {
		t.Error("expected error for malformed custom file")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		ok   bool
	}{
		{"", DifficultyNormal, true},
		{"easy", DifficultyEasy, true},
		{"hard", DifficultyHard, true},
		{"fixed", DifficultyFixed, true},
		{"nightmare", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePreset(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParsePreset(%q) = %q, %v; expected %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.3},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPlatformerPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.wantEnabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tt.wantLevel {
				t.Errorf("level = %v, expected %v", cfg.Difficulty.InitialLevel, tt.wantLevel)
			}
		})
	}

	cfg := DefaultPlatformerConfig()
	ApplyPlatformerPreset(&cfg, DifficultyEasy)
	if cfg.Player.MaxJump <= DefaultPlatformerConfig().Player.MaxJump {
		t.Error("easy preset should raise the jump ceiling")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 1.0,
		Scaling:      ScalingConfig{CountdownReduction: 0.5, JumpReduction: 0.25},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Countdown(120000); got != 60000 {
		t.Errorf("Countdown(120000) = %d, expected 60000", got)
	}
	if got := d.Countdown(0); got != 0 {
		t.Errorf("Countdown(0) = %d, expected no limit", got)
	}
	if got := d.Countdown(12000); got != 10000 {
		t.Errorf("Countdown(12000) = %d, expected floor of 10000", got)
	}
	if got := d.Countdown(5000); got != 5000 {
		t.Errorf("Countdown(5000) = %d, expected short limits kept", got)
	}
	if got := d.MaxJump(160, 76); got != 120 {
		t.Errorf("MaxJump(160, 76) = %v, expected 120", got)
	}
	if got := d.MaxJump(80, 76); got != 76 {
		t.Errorf("MaxJump(80, 76) = %v, expected floor at min jump", got)
	}

	d.SetEnabled(false)
	if d.IsEnabled() || d.Level() != 0 {
		t.Error("disabled manager should report level 0")
	}
	if got := d.Countdown(120000); got != 120000 {
		t.Errorf("disabled Countdown = %d, expected unchanged", got)
	}

	d.SetEnabled(true)
	d.SetInitialLevel(3)
	if d.Level() != 1 {
		t.Errorf("Level() = %v, expected clamp to 1", d.Level())
	}
}
