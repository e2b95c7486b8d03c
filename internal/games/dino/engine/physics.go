package engine

import (
	"cmp"
	"math"
	"math/rand"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Engine advances a State with a fixed set of parameters and its own RNG.
// It is not safe for concurrent use.
type Engine struct {
	params   Params
	rng      *rand.Rand
	listener Listener
}

// NewEngine creates an engine. A nil listener discards signals.
func NewEngine(p Params, seed int64, l Listener) *Engine {
	if l == nil {
		l = nopListener{}
	}
	p.Speed.Boosts = slices.Clone(p.Speed.Boosts)
	slices.SortFunc(p.Speed.Boosts, func(a, b Boost) int { return cmp.Compare(a.Score, b.Score) })
	return &Engine{
		params:   p,
		rng:      rand.New(rand.NewSource(seed)),
		listener: l,
	}
}

// Params returns the engine's parameters.
func (e *Engine) Params() Params {
	return e.params
}

func (e *Engine) emit(sig Signal) {
	e.listener.Signal(sig)
}

// Advance runs one simulation step of dt seconds in a world worldWidth units
// wide and returns the number of milestones crossed. It does nothing unless
// the run is playing. Collision is not checked here.
func (e *Engine) Advance(s *State, dt, worldWidth float64) int {
	if s.Status != StatusPlaying {
		return 0
	}
	e.integrate(s, dt)
	e.animate(s, dt)
	s.Clock += dt * 1000
	if s.Clock-s.LastObstacleSpawnTime > DynamicInterval(e.params, s.ScrollSpeed) {
		e.spawnObstacles(s, worldWidth)
		s.LastObstacleSpawnTime = s.Clock
	}
	e.translate(s, dt)
	e.maybeSpawnCloud(s, worldWidth)
	return e.progress(s, dt)
}

func (e *Engine) integrate(s *State, dt float64) {
	r := &s.Runner
	if !r.IsJumping {
		return
	}
	r.VelocityY += e.params.Physics.Gravity * dt
	r.Y += r.VelocityY * dt
	if floor := s.GroundY - r.Height; r.Y >= floor {
		r.Y = floor
		r.IsJumping = false
		r.VelocityY = 0
	}
}

func (e *Engine) animate(s *State, dt float64) {
	r := &s.Runner
	if r.IsJumping {
		r.RunFrame = 1
		r.FrameTime = 0
		return
	}
	r.FrameTime += dt * 1000
	if r.FrameTime >= e.params.Player.AnimationFrameMs {
		if r.RunFrame == 1 {
			r.RunFrame = 2
		} else {
			r.RunFrame = 1
		}
		r.FrameTime = 0
	}
}

func (e *Engine) translate(s *State, dt float64) {
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		o.X -= s.ScrollSpeed * dt
		if o.X+o.Width >= 0 {
			kept = append(kept, o)
		}
	}
	s.Obstacles = kept

	clouds := s.Clouds[:0]
	for _, c := range s.Clouds {
		c.X -= c.Speed * dt
		if c.X+c.Width >= 0 {
			clouds = append(clouds, c)
		}
	}
	s.Clouds = clouds
}

// progress accrues score and applies milestone and boost speed-ups.
func (e *Engine) progress(s *State, dt float64) int {
	sp := e.params.Speed
	prev := s.Score
	s.Score += s.ScrollSpeed * dt * sp.ScoreRate

	crossed := 0
	if sp.MilestoneInterval > 0 {
		crossed = int(math.Floor(s.Score/sp.MilestoneInterval) - math.Floor(prev/sp.MilestoneInterval))
	}
	for i := 0; i < crossed; i++ {
		if sp.Progression {
			s.ScrollSpeed = mgl64.Clamp(s.ScrollSpeed+sp.Increment, 0, sp.Max)
		}
		e.emit(SignalMilestone)
	}

	for s.nextBoost < len(sp.Boosts) && s.Score >= sp.Boosts[s.nextBoost].Score {
		s.ScrollSpeed = mgl64.Clamp(s.ScrollSpeed+sp.Boosts[s.nextBoost].Boost, 0, sp.Max)
		s.nextBoost++
	}
	return crossed
}

func (e *Engine) maybeSpawnCloud(s *State, worldWidth float64) {
	cp := e.params.Clouds
	if e.rng.Float64() >= cp.SpawnChance || len(s.Clouds) >= cp.Limit {
		return
	}
	s.Clouds = append(s.Clouds, Cloud{
		X:      worldWidth,
		Y:      e.rng.Float64() * (s.GroundY / 3),
		Width:  cp.Width,
		Height: cp.Height,
		Speed:  cp.MinSpeed + e.rng.Float64()*(cp.MaxSpeed-cp.MinSpeed),
	})
}
