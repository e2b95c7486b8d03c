// Package engine is the fixed-timestep simulation behind the dino runner.
// It knows nothing about terminals: the host feeds it frame deltas and
// transitions, reads the State to draw, and listens for signals.
package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/dinorun/internal/core"
)

// Status is the lifecycle state of a run.
type Status int

const (
	StatusReady Status = iota
	StatusPlaying
	StatusPaused
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusOver:
		return "over"
	default:
		return "unknown"
	}
}

// Character is the cosmetic skin of the runner.
type Character int

const (
	CharacterDoux Character = iota
	CharacterMort
	CharacterTard
	CharacterVita
)

// Characters lists every skin in display order.
var Characters = []Character{CharacterDoux, CharacterMort, CharacterTard, CharacterVita}

func (c Character) String() string {
	switch c {
	case CharacterDoux:
		return "doux"
	case CharacterMort:
		return "mort"
	case CharacterTard:
		return "tard"
	case CharacterVita:
		return "vita"
	default:
		return fmt.Sprintf("character(%d)", int(c))
	}
}

// ParseCharacter resolves a skin by name, case-insensitively.
func ParseCharacter(name string) (Character, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Characters {
		if c.String() == name {
			return c, nil
		}
	}
	return CharacterDoux, fmt.Errorf("unknown character %q", name)
}

// Size is the obstacle class.
type Size int

const (
	SizeSmall Size = iota
	SizeLarge
)

func (s Size) String() string {
	if s == SizeLarge {
		return "large"
	}
	return "small"
}

// Runner is the player-controlled entity.
type Runner struct {
	X, Y          float64
	Width, Height float64
	VelocityY     float64
	IsJumping     bool
	Crouching     bool
	RunFrame      int     // 1 or 2
	FrameTime     float64 // ms since the last frame flip
	Character     Character
}

// Box returns the runner's nominal bounding box.
func (r Runner) Box() core.Box {
	return core.NewBox(r.X, r.Y, r.Width, r.Height)
}

// Obstacle is a ground hazard scrolling towards the runner.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Size          Size
	Variant       int
	Group         int // 0 for a single obstacle, otherwise the pattern group id
}

// Box returns the obstacle's nominal bounding box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// Right returns the x-coordinate of the obstacle's right edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// Cloud is decorative scenery with its own drift speed.
type Cloud struct {
	X, Y          float64
	Width, Height float64
	Speed         float64
}

// State is everything needed to render and advance one run.
type State struct {
	Status      Status
	Runner      Runner
	Obstacles   []Obstacle
	Clouds      []Cloud
	Score       float64
	ScrollSpeed float64
	GroundY     float64

	// Simulated clock in ms, advanced only by Advance.
	Clock                 float64
	LastObstacleSpawnTime float64
	GameStartTime         float64
	NextGroup             int

	// Index of the next boost in Params.Speed.Boosts not yet applied.
	nextBoost int
}

// NewState returns a ready state with the runner standing on the ground.
// GroundY is zero until SetGroundLevel is called.
func NewState(p Params, c Character) *State {
	s := &State{Status: StatusReady}
	s.reinit(p, c)
	return s
}

// reinit clears gameplay fields. Ground level, clock and character survive.
func (s *State) reinit(p Params, c Character) {
	s.Runner = Runner{
		X:         p.Player.X,
		Width:     p.Player.Width,
		Height:    p.Player.Height,
		RunFrame:  1,
		Character: c,
	}
	s.Runner.Y = s.GroundY - s.Runner.Height
	s.Obstacles = s.Obstacles[:0]
	s.Clouds = s.Clouds[:0]
	s.Score = 0
	s.ScrollSpeed = p.Speed.Initial
	s.LastObstacleSpawnTime = s.Clock
	s.GameStartTime = s.Clock
	s.NextGroup = 1
	s.nextBoost = 0
}

// SetGroundLevel places the ground line for a world of the given height.
// A grounded runner is moved onto the new ground; status and entities are untouched.
func SetGroundLevel(s *State, p Params, worldHeight float64) {
	s.GroundY = worldHeight - p.Physics.GroundOffset
	floor := s.GroundY - s.Runner.Height
	if !s.Runner.IsJumping || s.Runner.Y > floor {
		s.Runner.Y = floor
		s.Runner.IsJumping = false
		s.Runner.VelocityY = 0
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := *s
	c.Obstacles = append([]Obstacle(nil), s.Obstacles...)
	c.Clouds = append([]Cloud(nil), s.Clouds...)
	return &c
}

// DisplayScore is the score shown to players.
func (s *State) DisplayScore() int {
	return int(math.Floor(s.Score))
}

// Elapsed returns simulated milliseconds since the run started.
func (s *State) Elapsed() float64 {
	return s.Clock - s.GameStartTime
}
