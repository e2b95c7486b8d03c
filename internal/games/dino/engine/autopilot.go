package engine

// ShouldJump reports whether a simple bot would jump now: an obstacle's
// leading edge is less than lookahead seconds away from the runner.
func ShouldJump(s *State, lookahead float64) bool {
	if s.Status != StatusPlaying || s.Runner.IsJumping {
		return false
	}
	front := s.Runner.X + s.Runner.Width
	for _, o := range s.Obstacles {
		if gap := o.X - front; gap > 0 && gap < s.ScrollSpeed*lookahead {
			return true
		}
	}
	return false
}
