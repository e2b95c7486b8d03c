package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// LoopConfig bounds the fixed-timestep loop.
type LoopConfig struct {
	TickRate         int           // simulation steps per second
	MaxFrame         time.Duration // longest frame delta accepted
	MaxStepsPerFrame int           // catch-up bound; leftover time is dropped
}

// DefaultLoopConfig returns a 60 Hz loop clamped at 250ms per frame.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		TickRate:         60,
		MaxFrame:         250 * time.Millisecond,
		MaxStepsPerFrame: 15,
	}
}

// FrameResult reports what happened during one host frame.
type FrameResult struct {
	Steps      int
	Collided   bool
	Milestones int
}

// Driver converts variable host frames into fixed simulation steps and owns
// the State between frames.
type Driver struct {
	engine *Engine
	cfg    LoopConfig
	state  *State
	step   float64 // seconds
	acc    float64 // seconds

	worldW, worldH float64

	last    time.Time
	hasLast bool
}

// NewDriver creates a driver with a ready state for the given character.
func NewDriver(e *Engine, cfg LoopConfig, c Character) *Driver {
	def := DefaultLoopConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = def.TickRate
	}
	if cfg.MaxFrame <= 0 {
		cfg.MaxFrame = def.MaxFrame
	}
	if cfg.MaxStepsPerFrame <= 0 {
		cfg.MaxStepsPerFrame = def.MaxStepsPerFrame
	}
	return &Driver{
		engine: e,
		cfg:    cfg,
		state:  NewState(e.params, c),
		step:   1 / float64(cfg.TickRate),
	}
}

// State returns the current state. Callers must treat it as read-only.
func (d *Driver) State() *State {
	return d.state
}

// Engine returns the driver's engine.
func (d *Driver) Engine() *Engine {
	return d.engine
}

// StepSize returns the fixed step in seconds.
func (d *Driver) StepSize() float64 {
	return d.step
}

// WorldSize returns the current world dimensions.
func (d *Driver) WorldSize() (w, h float64) {
	return d.worldW, d.worldH
}

// Resize sets the world dimensions and moves the ground line.
func (d *Driver) Resize(worldW, worldH float64) {
	d.worldW, d.worldH = worldW, worldH
	SetGroundLevel(d.state, d.engine.params, worldH)
}

// Frame advances the simulation by a host frame of length delta.
func (d *Driver) Frame(delta time.Duration) FrameResult {
	var res FrameResult
	if d.state.Status != StatusPlaying {
		d.acc = 0
		return res
	}

	dt := mgl64.Clamp(delta.Seconds(), 0, d.cfg.MaxFrame.Seconds())
	d.acc += dt
	for d.acc >= d.step && res.Steps < d.cfg.MaxStepsPerFrame {
		res.Milestones += d.engine.Advance(d.state, d.step, d.worldW)
		d.acc -= d.step
		res.Steps++
		if d.engine.HasCollision(d.state) {
			d.state.Status = StatusOver
			d.engine.emit(SignalCollision)
			d.acc = 0
			res.Collided = true
			return res
		}
	}
	if d.acc >= d.step {
		d.acc = 0
	}
	return res
}

// FrameAt is Frame driven by timestamps. The first call only records now.
func (d *Driver) FrameAt(now time.Time) FrameResult {
	if !d.hasLast {
		d.last, d.hasLast = now, true
		return FrameResult{}
	}
	delta := now.Sub(d.last)
	d.last = now
	return d.Frame(delta)
}

func (d *Driver) resetClock() {
	d.acc = 0
	d.hasLast = false
}

// Start begins a run. See Engine.Start.
func (d *Driver) Start() {
	d.engine.Start(d.state)
	d.resetClock()
}

// Reset returns to the ready screen. See Engine.Reset.
func (d *Driver) Reset() {
	d.engine.Reset(d.state)
	d.resetClock()
}

// Jump forwards to Engine.Jump.
func (d *Driver) Jump() {
	d.engine.Jump(d.state)
}

// Crouch forwards to Engine.Crouch.
func (d *Driver) Crouch(on bool) {
	d.engine.Crouch(d.state, on)
}

// TogglePause pauses or resumes. Resuming does not count the paused time.
func (d *Driver) TogglePause() {
	d.engine.TogglePause(d.state)
	d.resetClock()
}

// SetCharacter forwards to Engine.SetCharacter.
func (d *Driver) SetCharacter(c Character) {
	d.engine.SetCharacter(d.state, c)
}
