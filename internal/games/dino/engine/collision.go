package engine

import "github.com/vovakirdan/dinorun/internal/core"

// HasCollision reports whether the runner's hitbox overlaps any obstacle's.
// It never changes the state.
func (e *Engine) HasCollision(s *State) bool {
	return HasCollision(s, e.params)
}

// HasCollision is the parameter-driven form of (*Engine).HasCollision.
func HasCollision(s *State, p Params) bool {
	r := inset(s.Runner.Box(), p.Hitbox.Runner)
	for _, o := range s.Obstacles {
		ob := inset(o.Box(), p.Hitbox.Obstacle)
		// Cheap reject for obstacles fully ahead or behind.
		if ob.X >= r.Right() || ob.Right() <= r.X {
			continue
		}
		if r.Intersects(ob) {
			return true
		}
	}
	return false
}

func inset(b core.Box, h Hitbox) core.Box {
	return b.Inset(h.InsetX, h.InsetY)
}
