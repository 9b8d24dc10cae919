package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseRunner(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultRunnerConfig() {
		t.Errorf("embedded YAML and DefaultRunnerConfig differ:\n%+v\n%+v", cfg, DefaultRunnerConfig())
	}
}

func TestLoadRunnerCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("world:\n  initial_speed: 9\n  max_speed: 30\nobstacles:\n  despawn_x: -250\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.World.InitialSpeed != 9 || cfg.World.MaxSpeed != 30 {
		t.Errorf("world = %+v, expected overrides applied", cfg.World)
	}
	if cfg.Obstacles.DespawnX != -250 {
		t.Errorf("despawn_x = %v, expected -250", cfg.Obstacles.DespawnX)
	}
	// Fields absent from the file keep their defaults
	if cfg.Physics.JumpVelocity != 8.5 || cfg.Player.RunY != 280 {
		t.Errorf("partial file should keep defaults, got %+v %+v", cfg.Physics, cfg.Player)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("world:\n  initial_speed: -1\n"), 0o600)
	_, err := LoadRunner(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	os.WriteFile(path, []byte("world: [not, a, map"), 0o600)
	if _, err := LoadRunner(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
		valid  bool
	}{
		{"defaults", func(*RunnerConfig) {}, true},
		{"zero speed", func(c *RunnerConfig) { c.World.InitialSpeed = 0 }, false},
		{"cap below start", func(c *RunnerConfig) { c.World.MaxSpeed = 10 }, false},
		{"cap above start", func(c *RunnerConfig) { c.World.MaxSpeed = 40 }, true},
		{"no gravity", func(c *RunnerConfig) { c.Physics.Gravity = 0 }, false},
		{"zero anim period", func(c *RunnerConfig) { c.Player.AnimPeriod = 0 }, false},
		{"chance above one", func(c *RunnerConfig) { c.Obstacles.FlyingChance = 1.5 }, false},
		{"only flying", func(c *RunnerConfig) { c.Obstacles.FlyingChance = 1 }, true},
		{"zero milestone", func(c *RunnerConfig) { c.Difficulty.Milestone = 0 }, false},
		{"zero milestone when fixed", func(c *RunnerConfig) {
			c.Difficulty.Enabled = false
			c.Difficulty.Milestone = 0
		}, true},
		{"empty screen", func(c *RunnerConfig) { c.Screen.Width = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		speed   float64
		step    float64
		enabled bool
	}{
		{"", 15, 0.5, true},
		{DifficultyEasy, 12, 0.5, true},
		{DifficultyNormal, 15, 0.5, true},
		{DifficultyHard, 20, 1.0, true},
		{DifficultyFixed, 15, 0.5, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyRunnerPreset(&cfg, tc.preset)
			if cfg.World.InitialSpeed != tc.speed {
				t.Errorf("initial speed = %v, expected %v", cfg.World.InitialSpeed, tc.speed)
			}
			if cfg.Difficulty.SpeedStep != tc.step {
				t.Errorf("speed step = %v, expected %v", cfg.Difficulty.SpeedStep, tc.step)
			}
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("insane") != "" || ParsePreset("") != "" {
		t.Error("unknown presets should parse to empty")
	}
}
