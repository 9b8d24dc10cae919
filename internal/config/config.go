// Package config provides YAML-based game configuration loading and
// difficulty progression for the runner.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded configuration cannot drive a game.
var ErrInvalidConfig = errors.New("config: invalid runner config")

// RunnerConfig contains all configuration for the endless runner.
// Distances are world units: the logical canvas the game is laid out on.
type RunnerConfig struct {
	Screen     RunnerScreen     `yaml:"screen"`
	Physics    RunnerPhysics    `yaml:"physics"`
	Player     RunnerPlayer     `yaml:"player"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	World      RunnerWorld      `yaml:"world"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerScreen is the logical size of the playfield.
type RunnerScreen struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RunnerPhysics defines the fixed jump arc.
type RunnerPhysics struct {
	JumpVelocity float64 `yaml:"jump_velocity"` // Upward velocity when a jump starts; the jump ends below -JumpVelocity
	Gravity      float64 `yaml:"gravity"`       // Velocity lost per frame
	JumpScale    float64 `yaml:"jump_scale"`    // Vertical displacement per frame = velocity * JumpScale
}

// RunnerPlayer defines player placement and animation.
type RunnerPlayer struct {
	X          float64 `yaml:"x"`
	RunY       float64 `yaml:"run_y"`
	DuckY      float64 `yaml:"duck_y"`
	AnimPeriod int     `yaml:"anim_period"` // Step counter cycles 0..AnimPeriod-1
	FrameHold  int     `yaml:"frame_hold"`  // Ticks each animation frame is shown
}

// RunnerObstacles defines obstacle placement and the spawn mix.
type RunnerObstacles struct {
	SmallY       float64 `yaml:"small_y"`
	LargeY       float64 `yaml:"large_y"`
	FlyingY      float64 `yaml:"flying_y"`
	FlyingChance float64 `yaml:"flying_chance"` // Probability a spawn is a flying obstacle
	DespawnX     float64 `yaml:"despawn_x"`     // Obstacles left of this x are removed
}

// RunnerWorld defines scrolling and HUD placement.
type RunnerWorld struct {
	InitialSpeed float64 `yaml:"initial_speed"`
	MaxSpeed     float64 `yaml:"max_speed"` // 0 = uncapped
	BackgroundY  float64 `yaml:"background_y"`
	ScoreX       float64 `yaml:"score_x"`
	ScoreY       float64 `yaml:"score_y"`
}

// DifficultyConfig defines how score and speed progress.
type DifficultyConfig struct {
	Enabled       bool    `yaml:"enabled"`
	ScorePerFrame float64 `yaml:"score_per_frame"`
	Milestone     float64 `yaml:"milestone"` // Speed steps up each time the score crosses a multiple of this
	SpeedStep     float64 `yaml:"speed_step"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Empty or unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialSpeedForPreset returns the starting scroll speed for a preset.
func InitialSpeedForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 12
	case DifficultyHard:
		return 20
	default:
		return 15
	}
}

// Validate checks that the config describes a playable game.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size must be positive", ErrInvalidConfig)
	case c.World.InitialSpeed <= 0:
		return fmt.Errorf("%w: world.initial_speed must be positive", ErrInvalidConfig)
	case c.World.MaxSpeed < 0:
		return fmt.Errorf("%w: world.max_speed must not be negative", ErrInvalidConfig)
	case c.World.MaxSpeed > 0 && c.World.MaxSpeed < c.World.InitialSpeed:
		return fmt.Errorf("%w: world.max_speed below initial_speed", ErrInvalidConfig)
	case c.Physics.JumpVelocity <= 0 || c.Physics.Gravity <= 0 || c.Physics.JumpScale <= 0:
		return fmt.Errorf("%w: jump physics must be positive", ErrInvalidConfig)
	case c.Player.AnimPeriod <= 0 || c.Player.FrameHold <= 0:
		return fmt.Errorf("%w: player animation timing must be positive", ErrInvalidConfig)
	case c.Obstacles.FlyingChance < 0 || c.Obstacles.FlyingChance > 1:
		return fmt.Errorf("%w: obstacles.flying_chance must be in [0, 1]", ErrInvalidConfig)
	case c.Difficulty.ScorePerFrame <= 0:
		return fmt.Errorf("%w: difficulty.score_per_frame must be positive", ErrInvalidConfig)
	case c.Difficulty.Enabled && (c.Difficulty.Milestone <= 0 || c.Difficulty.SpeedStep < 0):
		return fmt.Errorf("%w: difficulty milestone must be positive and speed_step not negative", ErrInvalidConfig)
	}
	return nil
}
