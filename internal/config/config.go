// Package config provides YAML-based runner configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all configuration for the runner.
type RunnerConfig struct {
	Physics    RunnerPhysics    `yaml:"physics"`
	Speed      RunnerSpeed      `yaml:"speed"`
	Player     RunnerPlayer     `yaml:"player"`
	Hitbox     RunnerHitbox     `yaml:"hitbox"`
	Obstacles  RunnerObstacles  `yaml:"obstacles"`
	Clouds     RunnerClouds     `yaml:"clouds"`
	Loop       LoopConfig       `yaml:"loop"`
	Render     RenderConfig     `yaml:"render"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerPhysics defines vertical motion in world units (pixels) per second.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"` // negative is up
	GroundOffset float64 `yaml:"ground_offset"`
}

// SpeedBoost is a one-off speed bonus at a score threshold.
type SpeedBoost struct {
	Score float64 `yaml:"score"`
	Boost float64 `yaml:"boost"`
}

// RunnerSpeed defines scrolling speed and score progression.
type RunnerSpeed struct {
	Initial           float64      `yaml:"initial"`
	Max               float64      `yaml:"max"`
	Increment         float64      `yaml:"increment"`
	MilestoneInterval float64      `yaml:"milestone_interval"`
	ScoreRate         float64      `yaml:"score_rate"`
	Boosts            []SpeedBoost `yaml:"boosts"`
}

// RunnerPlayer defines the runner's box and posture.
type RunnerPlayer struct {
	X                float64 `yaml:"x"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	CrouchFactor     float64 `yaml:"crouch_factor"`
	AnimationFrameMs float64 `yaml:"animation_frame_ms"`
	CrouchHoldMs     int     `yaml:"crouch_hold_ms"` // terminals have no key-up events
}

// HitboxInset shrinks a bounding box on each side.
type HitboxInset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RunnerHitbox defines collision insets.
type RunnerHitbox struct {
	Runner   HitboxInset `yaml:"runner"`
	Obstacle HitboxInset `yaml:"obstacle"`
}

// ObstacleSize is the unscaled size of an obstacle class.
type ObstacleSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PatternMember is one obstacle of a pattern.
type PatternMember struct {
	Size   string  `yaml:"size"` // "small" or "large"
	Offset float64 `yaml:"offset"`
	Scale  float64 `yaml:"scale"`
}

// ObstaclePattern is a group of obstacles spawned together.
type ObstaclePattern struct {
	Name    string          `yaml:"name"`
	Members []PatternMember `yaml:"members"`
}

// RunnerObstacles defines obstacle generation.
type RunnerObstacles struct {
	MinIntervalMs float64           `yaml:"min_interval_ms"`
	MaxIntervalMs float64           `yaml:"max_interval_ms"`
	LargeWeight   float64           `yaml:"large_weight"`
	MinScale      float64           `yaml:"min_scale"`
	MaxScale      float64           `yaml:"max_scale"`
	Small         ObstacleSize      `yaml:"small"`
	Large         ObstacleSize      `yaml:"large"`
	Variants      int               `yaml:"variants"`
	PatternChance float64           `yaml:"pattern_chance"`
	Patterns      []ObstaclePattern `yaml:"patterns"`
}

// RunnerClouds defines the decorative cloud layer.
type RunnerClouds struct {
	Limit       int     `yaml:"limit"`
	SpawnChance float64 `yaml:"spawn_chance"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
}

// LoopConfig defines the fixed-timestep loop.
type LoopConfig struct {
	TickRate         int `yaml:"tick_rate"`
	MaxFrameMs       int `yaml:"max_frame_ms"`
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"`
}

// RenderConfig maps world units onto terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// AudioConfig controls synthesized sound effects.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0 to 1.0
	SampleRate int     `yaml:"sample_rate"`
}

// DifficultyConfig defines the difficulty system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`       // false disables milestone speed-ups
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how the displayed level grows during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to initial speed at level 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Validate reports every inconsistent value in the config.
func (c RunnerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Physics.Gravity > 0, "physics.gravity must be positive, got %v", c.Physics.Gravity)
	check(c.Physics.JumpVelocity < 0, "physics.jump_velocity must be negative, got %v", c.Physics.JumpVelocity)
	check(c.Speed.Initial > 0, "speed.initial must be positive, got %v", c.Speed.Initial)
	check(c.Speed.Max >= c.Speed.Initial, "speed.max (%v) must be at least speed.initial (%v)", c.Speed.Max, c.Speed.Initial)
	check(c.Speed.MilestoneInterval > 0, "speed.milestone_interval must be positive, got %v", c.Speed.MilestoneInterval)
	check(c.Player.Width > 0 && c.Player.Height > 0, "player size must be positive, got %vx%v", c.Player.Width, c.Player.Height)
	check(c.Player.CrouchFactor > 0 && c.Player.CrouchFactor <= 1, "player.crouch_factor must be in (0, 1], got %v", c.Player.CrouchFactor)
	check(c.Obstacles.MinIntervalMs <= c.Obstacles.MaxIntervalMs, "obstacles.min_interval_ms (%v) exceeds max_interval_ms (%v)", c.Obstacles.MinIntervalMs, c.Obstacles.MaxIntervalMs)
	check(c.Obstacles.MinScale > 0 && c.Obstacles.MinScale <= c.Obstacles.MaxScale, "obstacles scale range [%v, %v] is invalid", c.Obstacles.MinScale, c.Obstacles.MaxScale)
	check(c.Obstacles.PatternChance >= 0 && c.Obstacles.PatternChance <= 1, "obstacles.pattern_chance must be in [0, 1], got %v", c.Obstacles.PatternChance)
	for _, p := range c.Obstacles.Patterns {
		check(len(p.Members) > 0, "obstacle pattern %q has no members", p.Name)
		for _, m := range p.Members {
			check(m.Size == "small" || m.Size == "large", "obstacle pattern %q: unknown size %q", p.Name, m.Size)
		}
	}
	check(c.Clouds.MinSpeed <= c.Clouds.MaxSpeed, "clouds.min_speed (%v) exceeds max_speed (%v)", c.Clouds.MinSpeed, c.Clouds.MaxSpeed)
	check(c.Loop.TickRate > 0, "loop.tick_rate must be positive, got %d", c.Loop.TickRate)
	check(c.Render.CellWidth > 0 && c.Render.CellHeight > 0, "render cell size must be positive")
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0, 1], got %v", c.Audio.Volume)

	return errors.Join(errs...)
}
