package config

import "github.com/go-gl/mathgl/mgl64"

// DifficultyManager derives run parameters from the difficulty level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: mgl64.Clamp(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether speed progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the difficulty level (0.0 to 1.0) reached at the given score.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.cfg.Enabled || d.cfg.Progression.Type != "score" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := mgl64.Clamp(float64(score)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// InitialSpeed returns the scroll speed a run starts with.
// Speed increases from base to base * (1 + speedMultiplier) at level 1.0.
func (d *DifficultyManager) InitialSpeed(baseSpeed float64) float64 {
	return baseSpeed * (1.0 + d.initialLevel*d.cfg.Scaling.SpeedMultiplier)
}
