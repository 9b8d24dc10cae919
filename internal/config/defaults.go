package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded copy cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Screen: RunnerScreen{
			Width:  1100,
			Height: 600,
		},
		Physics: RunnerPhysics{
			JumpVelocity: 8.5,
			Gravity:      0.8,
			JumpScale:    4,
		},
		Player: RunnerPlayer{
			X:          80,
			RunY:       280,
			DuckY:      310,
			AnimPeriod: 10,
			FrameHold:  5,
		},
		Obstacles: RunnerObstacles{
			SmallY:       295,
			LargeY:       270,
			FlyingY:      230,
			FlyingChance: 0.5,
			DespawnX:     -100,
		},
		World: RunnerWorld{
			InitialSpeed: 15,
			MaxSpeed:     0,
			BackgroundY:  350,
			ScoreX:       950,
			ScoreY:       30,
		},
		Difficulty: DifficultyConfig{
			Enabled:       true,
			ScorePerFrame: 0.5,
			Milestone:     100,
			SpeedStep:     0.5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
