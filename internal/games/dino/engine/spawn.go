package engine

// DynamicInterval returns the minimum time in ms between obstacle spawns at
// the given scroll speed. Faster runs spawn more often, down to MinIntervalMs.
func DynamicInterval(p Params, speed float64) float64 {
	return max(p.Obstacles.MinIntervalMs, p.Obstacles.MaxIntervalMs-(speed-p.Speed.Initial))
}

func (e *Engine) spawnObstacles(s *State, worldWidth float64) {
	op := e.params.Obstacles
	if len(op.Patterns) > 0 && e.rng.Float64() < op.PatternChance {
		e.spawnPattern(s, worldWidth, op.Patterns[e.rng.Intn(len(op.Patterns))])
		return
	}

	size := SizeSmall
	if e.rng.Float64() < op.LargeWeight {
		size = SizeLarge
	}
	scale := op.MinScale + e.rng.Float64()*(op.MaxScale-op.MinScale)
	s.Obstacles = append(s.Obstacles, e.newObstacle(s, worldWidth, size, scale, 0))
}

func (e *Engine) spawnPattern(s *State, worldWidth float64, pat Pattern) {
	group := s.NextGroup
	s.NextGroup++
	for _, m := range pat.Members {
		s.Obstacles = append(s.Obstacles, e.newObstacle(s, worldWidth+m.OffsetX, m.Size, m.Scale, group))
	}
}

func (e *Engine) newObstacle(s *State, x float64, size Size, scale float64, group int) Obstacle {
	base := e.params.sizeOf(size)
	o := Obstacle{
		X:      x,
		Width:  base.Width * scale,
		Height: base.Height * scale,
		Size:   size,
		Group:  group,
	}
	o.Y = s.GroundY - o.Height
	if n := e.params.Obstacles.Variants; n > 0 {
		o.Variant = e.rng.Intn(n)
	}
	return o
}
