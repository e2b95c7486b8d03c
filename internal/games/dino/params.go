package dino

import (
	"time"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
)

// ParamsFromConfig builds simulation parameters from a runner config.
// The difficulty manager sets the starting speed and whether milestones speed the run up.
func ParamsFromConfig(cfg config.RunnerConfig, dm *config.DifficultyManager) engine.Params {
	p := engine.Params{
		Physics: engine.PhysicsParams{
			Gravity:      cfg.Physics.Gravity,
			JumpVelocity: cfg.Physics.JumpVelocity,
			GroundOffset: cfg.Physics.GroundOffset,
		},
		Speed: engine.SpeedParams{
			Initial:           cfg.Speed.Initial,
			Max:               cfg.Speed.Max,
			Increment:         cfg.Speed.Increment,
			MilestoneInterval: cfg.Speed.MilestoneInterval,
			ScoreRate:         cfg.Speed.ScoreRate,
			Progression:       true,
		},
		Player: engine.PlayerParams{
			X:                cfg.Player.X,
			Width:            cfg.Player.Width,
			Height:           cfg.Player.Height,
			CrouchFactor:     cfg.Player.CrouchFactor,
			AnimationFrameMs: cfg.Player.AnimationFrameMs,
		},
		Hitbox: engine.HitboxParams{
			Runner:   engine.Hitbox{InsetX: cfg.Hitbox.Runner.X, InsetY: cfg.Hitbox.Runner.Y},
			Obstacle: engine.Hitbox{InsetX: cfg.Hitbox.Obstacle.X, InsetY: cfg.Hitbox.Obstacle.Y},
		},
		Obstacles: engine.ObstacleParams{
			MinIntervalMs: cfg.Obstacles.MinIntervalMs,
			MaxIntervalMs: cfg.Obstacles.MaxIntervalMs,
			LargeWeight:   cfg.Obstacles.LargeWeight,
			MinScale:      cfg.Obstacles.MinScale,
			MaxScale:      cfg.Obstacles.MaxScale,
			Small:         engine.SizeSpec{Width: cfg.Obstacles.Small.Width, Height: cfg.Obstacles.Small.Height},
			Large:         engine.SizeSpec{Width: cfg.Obstacles.Large.Width, Height: cfg.Obstacles.Large.Height},
			Variants:      cfg.Obstacles.Variants,
			PatternChance: cfg.Obstacles.PatternChance,
		},
		Clouds: engine.CloudParams{
			Limit:       cfg.Clouds.Limit,
			SpawnChance: cfg.Clouds.SpawnChance,
			MinSpeed:    cfg.Clouds.MinSpeed,
			MaxSpeed:    cfg.Clouds.MaxSpeed,
			Width:       cfg.Clouds.Width,
			Height:      cfg.Clouds.Height,
		},
	}

	for _, b := range cfg.Speed.Boosts {
		p.Speed.Boosts = append(p.Speed.Boosts, engine.Boost{Score: b.Score, Boost: b.Boost})
	}
	for _, pat := range cfg.Obstacles.Patterns {
		ep := engine.Pattern{Name: pat.Name}
		for _, m := range pat.Members {
			size := engine.SizeSmall
			if m.Size == "large" {
				size = engine.SizeLarge
			}
			ep.Members = append(ep.Members, engine.PatternMember{Size: size, OffsetX: m.Offset, Scale: m.Scale})
		}
		p.Obstacles.Patterns = append(p.Obstacles.Patterns, ep)
	}

	if dm != nil {
		p.Speed.Initial = min(dm.InitialSpeed(cfg.Speed.Initial), cfg.Speed.Max)
		p.Speed.Progression = dm.IsEnabled()
	}
	return p
}

// LoopFromConfig converts the loop section to driver settings.
func LoopFromConfig(c config.LoopConfig) engine.LoopConfig {
	return engine.LoopConfig{
		TickRate:         c.TickRate,
		MaxFrame:         time.Duration(c.MaxFrameMs) * time.Millisecond,
		MaxStepsPerFrame: c.MaxStepsPerFrame,
	}
}
