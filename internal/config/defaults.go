package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Physics: RunnerPhysics{
			Gravity:      1200,
			JumpVelocity: -600,
			GroundOffset: 100,
		},
		Speed: RunnerSpeed{
			Initial:           400,
			Max:               800,
			Increment:         20,
			MilestoneInterval: 100,
			ScoreRate:         0.01,
		},
		Player: RunnerPlayer{
			X:                80,
			Width:            60,
			Height:           64,
			CrouchFactor:     0.6,
			AnimationFrameMs: 100,
			CrouchHoldMs:     400,
		},
		Hitbox: RunnerHitbox{
			Runner:   HitboxInset{X: 10},
			Obstacle: HitboxInset{X: 5},
		},
		Obstacles: RunnerObstacles{
			MinIntervalMs: 800,
			MaxIntervalMs: 2000,
			LargeWeight:   0.5,
			MinScale:      0.8,
			MaxScale:      1.2,
			Small:         ObstacleSize{Width: 24, Height: 50},
			Large:         ObstacleSize{Width: 34, Height: 70},
			Variants:      3,
			PatternChance: 0.3,
			Patterns: []ObstaclePattern{
				{Name: "triple", Members: []PatternMember{
					{Size: "small", Offset: 0, Scale: 0.8},
					{Size: "small", Offset: 50, Scale: 0.8},
					{Size: "small", Offset: 100, Scale: 0.8},
				}},
				{Name: "step", Members: []PatternMember{
					{Size: "small", Offset: 0, Scale: 0.7},
					{Size: "large", Offset: 80, Scale: 1},
				}},
				{Name: "wall", Members: []PatternMember{
					{Size: "large", Offset: 0, Scale: 1},
					{Size: "small", Offset: 100, Scale: 0.6},
					{Size: "small", Offset: 140, Scale: 0.7},
				}},
			},
		},
		Clouds: RunnerClouds{
			Limit:       5,
			SpawnChance: 0.05,
			MinSpeed:    20,
			MaxSpeed:    50,
			Width:       68,
			Height:      28,
		},
		Loop: LoopConfig{
			TickRate:         60,
			MaxFrameMs:       250,
			MaxStepsPerFrame: 15,
		},
		Render: RenderConfig{
			CellWidth:  12,
			CellHeight: 24,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// HardBoosts returns the one-off speed boosts added by the hard preset.
func HardBoosts() []SpeedBoost {
	return []SpeedBoost{
		{Score: 50, Boost: 3},
		{Score: 100, Boost: 5},
		{Score: 200, Boost: 8},
		{Score: 500, Boost: 10},
	}
}

// DefaultYAML returns the embedded default runner YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
