package engine

// Start begins a fresh run from ready or over. Ground level, simulated
// clock and character are preserved.
func (e *Engine) Start(s *State) {
	if s.Status != StatusReady && s.Status != StatusOver {
		return
	}
	s.reinit(e.params, s.Runner.Character)
	s.Status = StatusPlaying
}

// Reset returns to the ready screen with fresh gameplay fields.
func (e *Engine) Reset(s *State) {
	s.reinit(e.params, s.Runner.Character)
	s.Status = StatusReady
}

// Jump launches the runner if it is playing, grounded and standing.
func (e *Engine) Jump(s *State) {
	r := &s.Runner
	if s.Status != StatusPlaying || r.IsJumping || r.Crouching {
		return
	}
	r.IsJumping = true
	r.VelocityY = e.params.Physics.JumpVelocity
	e.emit(SignalJump)
}

// Crouch sets the crouch posture. Ignored while airborne or not playing.
func (e *Engine) Crouch(s *State, on bool) {
	r := &s.Runner
	if s.Status != StatusPlaying || r.IsJumping || r.Crouching == on {
		return
	}
	r.Crouching = on
	if on {
		r.Height = e.params.Player.Height * e.params.Player.CrouchFactor
	} else {
		r.Height = e.params.Player.Height
	}
	r.Y = s.GroundY - r.Height
}

// TogglePause switches between playing and paused.
func (e *Engine) TogglePause(s *State) {
	switch s.Status {
	case StatusPlaying:
		s.Status = StatusPaused
	case StatusPaused:
		s.Status = StatusPlaying
	}
}

// SetCharacter changes the runner's skin in any status.
func (e *Engine) SetCharacter(s *State, c Character) {
	s.Runner.Character = c
}
