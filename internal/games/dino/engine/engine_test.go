package engine

import (
	"math"
	"testing"
)

const (
	testWorldW = 960.0
	testWorldH = 576.0
	testStep   = 1.0 / 64
)

// newPlaying returns an engine and a playing state on a standard world.
func newPlaying(t *testing.T, p Params, l Listener) (*Engine, *State) {
	t.Helper()
	e := NewEngine(p, 42, l)
	s := NewState(p, CharacterDoux)
	SetGroundLevel(s, p, testWorldH)
	e.Start(s)
	if s.Status != StatusPlaying {
		t.Fatalf("Start: status = %v, expected playing", s.Status)
	}
	return e, s
}

func TestNewState(t *testing.T) {
	p := DefaultParams()
	s := NewState(p, CharacterMort)

	if s.Status != StatusReady {
		t.Errorf("Status = %v, expected ready", s.Status)
	}
	if s.ScrollSpeed != p.Speed.Initial {
		t.Errorf("ScrollSpeed = %v, expected %v", s.ScrollSpeed, p.Speed.Initial)
	}
	if s.Runner.X != p.Player.X || s.Runner.Y != -p.Player.Height {
		t.Errorf("Runner at (%v, %v), expected (%v, %v)", s.Runner.X, s.Runner.Y, p.Player.X, -p.Player.Height)
	}
	if s.Runner.Character != CharacterMort {
		t.Errorf("Character = %v, expected mort", s.Runner.Character)
	}
	if len(s.Obstacles) != 0 || len(s.Clouds) != 0 || s.Score != 0 {
		t.Error("new state should have no entities and zero score")
	}
}

func TestSetGroundLevel(t *testing.T) {
	p := DefaultParams()
	e, s := newPlaying(t, p, nil)
	s.Obstacles = append(s.Obstacles, Obstacle{X: 500, Width: 10, Height: 10})

	SetGroundLevel(s, p, 1000)

	if s.GroundY != 900 {
		t.Errorf("GroundY = %v, expected 900", s.GroundY)
	}
	if s.Runner.Y != 900-p.Player.Height {
		t.Errorf("Runner.Y = %v, expected %v", s.Runner.Y, 900-p.Player.Height)
	}
	if s.Status != StatusPlaying || len(s.Obstacles) != 1 {
		t.Error("SetGroundLevel must not change status or clear obstacles")
	}

	// An airborne runner keeps its height.
	e.Jump(s)
	s.Runner.Y = 500
	SetGroundLevel(s, p, 1000)
	if s.Runner.Y != 500 || !s.Runner.IsJumping {
		t.Errorf("airborne runner moved to %v (jumping=%v)", s.Runner.Y, s.Runner.IsJumping)
	}
}

func TestAdvanceOnlyWhilePlaying(t *testing.T) {
	p := DefaultParams()
	e := NewEngine(p, 1, nil)

	for _, status := range []Status{StatusReady, StatusPaused, StatusOver} {
		t.Run(status.String(), func(t *testing.T) {
			s := NewState(p, CharacterDoux)
			SetGroundLevel(s, p, testWorldH)
			s.Status = status
			before := Fingerprint(s)
			for range 100 {
				e.Advance(s, testStep, testWorldW)
			}
			if Fingerprint(s) != before {
				t.Errorf("Advance changed a %v state", status)
			}
		})
	}
}

func TestJumpArc(t *testing.T) {
	p := DefaultParams()
	var jumps int
	e, s := newPlaying(t, p, ListenerFunc(func(sig Signal) {
		if sig == SignalJump {
			jumps++
		}
	}))
	floor := s.GroundY - s.Runner.Height

	e.Jump(s)
	if !s.Runner.IsJumping || s.Runner.VelocityY != p.Physics.JumpVelocity {
		t.Fatalf("Jump: jumping=%v vy=%v", s.Runner.IsJumping, s.Runner.VelocityY)
	}
	e.Jump(s) // already airborne
	if jumps != 1 {
		t.Errorf("jump signals = %d, expected 1", jumps)
	}

	apex := floor
	steps := 0
	for s.Runner.IsJumping && steps < 1000 {
		e.Advance(s, testStep, testWorldW)
		apex = min(apex, s.Runner.Y)
		if s.Runner.Y > floor {
			t.Fatalf("runner below ground: y=%v floor=%v", s.Runner.Y, floor)
		}
		if s.Runner.IsJumping && s.Runner.RunFrame != 1 {
			t.Errorf("RunFrame = %d while airborne, expected 1", s.Runner.RunFrame)
		}
		steps++
	}

	if s.Runner.Y != floor || s.Runner.VelocityY != 0 {
		t.Errorf("after landing y=%v vy=%v, expected y=%v vy=0", s.Runner.Y, s.Runner.VelocityY, floor)
	}
	// v²/2g = 150 units; Euler with a 1/64s step lands close to it.
	if h := floor - apex; h < 140 || h > 155 {
		t.Errorf("jump height = %v, expected about 150", h)
	}
	// Time aloft is 2|v|/g = 1s.
	if steps < 62 || steps > 66 {
		t.Errorf("airborne for %d steps, expected about 64", steps)
	}
}

func TestJumpCrouchExclusive(t *testing.T) {
	p := DefaultParams()
	e, s := newPlaying(t, p, nil)

	e.Crouch(s, true)
	if !s.Runner.Crouching {
		t.Fatal("Crouch(true) should crouch a grounded runner")
	}
	wantH := p.Player.Height * p.Player.CrouchFactor
	if s.Runner.Height != wantH || s.Runner.Y != s.GroundY-wantH {
		t.Errorf("crouched box h=%v y=%v, expected h=%v y=%v", s.Runner.Height, s.Runner.Y, wantH, s.GroundY-wantH)
	}

	e.Jump(s)
	if s.Runner.IsJumping {
		t.Error("Jump while crouching should be ignored")
	}

	e.Crouch(s, false)
	if s.Runner.Crouching || s.Runner.Height != p.Player.Height {
		t.Error("Crouch(false) should stand the runner up")
	}

	e.Jump(s)
	e.Crouch(s, true)
	if s.Runner.Crouching {
		t.Error("Crouch while airborne should be ignored")
	}
	if s.Runner.IsJumping && s.Runner.Crouching {
		t.Error("runner is both jumping and crouching")
	}
}

func TestRunAnimation(t *testing.T) {
	p := DefaultParams()
	e, s := newPlaying(t, p, nil)

	// 100ms frames at 1/64s steps flip on the 7th step (109.375ms).
	for range 6 {
		e.Advance(s, testStep, testWorldW)
	}
	if s.Runner.RunFrame != 1 {
		t.Errorf("RunFrame = %d after 93.75ms, expected 1", s.Runner.RunFrame)
	}
	e.Advance(s, testStep, testWorldW)
	if s.Runner.RunFrame != 2 || s.Runner.FrameTime != 0 {
		t.Errorf("RunFrame = %d FrameTime = %v, expected 2 and 0", s.Runner.RunFrame, s.Runner.FrameTime)
	}
}

func TestDynamicInterval(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		speed, expected float64
	}{
		{400, 2000},
		{800, 1600},
		{1000, 1400},
		{5000, 800},
	}
	for _, tc := range tests {
		if got := DynamicInterval(p, tc.speed); got != tc.expected {
			t.Errorf("DynamicInterval(%v) = %v, expected %v", tc.speed, got, tc.expected)
		}
	}
}

func TestObstacleSpawn(t *testing.T) {
	p := DefaultParams()
	p.Obstacles.PatternChance = 0
	e, s := newPlaying(t, p, nil)

	for len(s.Obstacles) == 0 && s.Elapsed() < 5000 {
		e.Advance(s, testStep, testWorldW)
	}
	if len(s.Obstacles) != 1 {
		t.Fatalf("obstacles = %d, expected 1", len(s.Obstacles))
	}
	if s.Elapsed() <= 2000 {
		t.Errorf("first spawn at %vms, expected after the 2000ms interval", s.Elapsed())
	}

	o := s.Obstacles[0]
	base := p.sizeOf(o.Size)
	scale := o.Width / base.Width
	if scale < p.Obstacles.MinScale || scale > p.Obstacles.MaxScale {
		t.Errorf("scale = %v, outside [%v, %v]", scale, p.Obstacles.MinScale, p.Obstacles.MaxScale)
	}
	if math.Abs(o.Height-base.Height*scale) > 1e-9 {
		t.Errorf("height %v does not match scale %v", o.Height, scale)
	}
	if o.Y != s.GroundY-o.Height {
		t.Errorf("obstacle y = %v, expected on the ground at %v", o.Y, s.GroundY-o.Height)
	}
	if want := testWorldW - s.ScrollSpeed*testStep; math.Abs(o.X-want) > 1e-9 {
		t.Errorf("obstacle x = %v, expected %v", o.X, want)
	}
	if o.Group != 0 {
		t.Errorf("single obstacle group = %d, expected 0", o.Group)
	}
	if s.LastObstacleSpawnTime != s.Clock {
		t.Error("LastObstacleSpawnTime should be the spawn step's clock")
	}
}

func TestPatternSpawn(t *testing.T) {
	p := DefaultParams()
	p.Obstacles.PatternChance = 1
	p.Obstacles.Patterns = DefaultPatterns()[2:]
	e, s := newPlaying(t, p, nil)

	s.LastObstacleSpawnTime = s.Clock - 5000
	e.Advance(s, testStep, testWorldW)

	members := p.Obstacles.Patterns[0].Members
	if len(s.Obstacles) != len(members) {
		t.Fatalf("obstacles = %d, expected %d", len(s.Obstacles), len(members))
	}
	shift := s.ScrollSpeed * testStep
	for i, m := range members {
		o := s.Obstacles[i]
		if o.Group != 1 {
			t.Errorf("member %d group = %d, expected 1", i, o.Group)
		}
		if o.Size != m.Size {
			t.Errorf("member %d size = %v, expected %v", i, o.Size, m.Size)
		}
		if want := testWorldW + m.OffsetX - shift; math.Abs(o.X-want) > 1e-9 {
			t.Errorf("member %d x = %v, expected %v", i, o.X, want)
		}
		if want := p.sizeOf(m.Size).Width * m.Scale; math.Abs(o.Width-want) > 1e-9 {
			t.Errorf("member %d width = %v, expected %v", i, o.Width, want)
		}
	}
	if s.NextGroup != 2 {
		t.Errorf("NextGroup = %d, expected 2", s.NextGroup)
	}
}

func TestObstacleCulling(t *testing.T) {
	p := DefaultParams()
	p.Clouds.SpawnChance = 0
	e, s := newPlaying(t, p, nil)

	s.Obstacles = []Obstacle{
		{X: -20, Width: 10, Height: 10},
		{X: 100, Width: 10, Height: 10, Variant: 1},
		{X: -5, Width: 10, Height: 10, Variant: 2},
		{X: 300, Width: 10, Height: 10, Variant: 3},
	}
	s.Clouds = []Cloud{{X: -100, Width: 68, Speed: 30}, {X: 10, Width: 68, Speed: 30}}
	e.Advance(s, testStep, testWorldW)

	if len(s.Obstacles) != 2 || s.Obstacles[0].Variant != 1 || s.Obstacles[1].Variant != 3 {
		t.Errorf("after culling: %+v, expected variants 1 and 3 in order", s.Obstacles)
	}
	if len(s.Clouds) != 1 || s.Clouds[0].X >= 10 {
		t.Errorf("after culling clouds: %+v", s.Clouds)
	}
}

func TestCloudSpawn(t *testing.T) {
	p := DefaultParams()
	p.Clouds.SpawnChance = 1
	p.Clouds.Limit = 2
	e, s := newPlaying(t, p, nil)

	for range 5 {
		e.Advance(s, testStep, testWorldW)
	}
	if len(s.Clouds) != 2 {
		t.Fatalf("clouds = %d, expected limit 2", len(s.Clouds))
	}
	for _, c := range s.Clouds {
		if c.Y < 0 || c.Y > s.GroundY/3 {
			t.Errorf("cloud y = %v, expected within [0, %v]", c.Y, s.GroundY/3)
		}
		if c.Speed < p.Clouds.MinSpeed || c.Speed > p.Clouds.MaxSpeed {
			t.Errorf("cloud speed = %v, outside [%v, %v]", c.Speed, p.Clouds.MinSpeed, p.Clouds.MaxSpeed)
		}
	}
}

func TestMilestones(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Params)
		score       float64
		speed       float64
		dt          float64
		milestones  int
		expectSpeed float64
	}{
		{"single crossing", nil, 99.99, 400, testStep, 1, 420},
		{"no crossing", nil, 50, 400, testStep, 0, 400},
		{"two crossings in one step", func(p *Params) { p.Speed.ScoreRate = 1 }, 99, 400, 0.5, 2, 440},
		{"capped at max", nil, 99.99, 790, testStep, 1, 800},
		{"progression disabled", func(p *Params) { p.Speed.Progression = false }, 99.99, 400, testStep, 1, 400},
		{"boost on top of milestone", func(p *Params) {
			p.Speed.Boosts = []Boost{{Score: 100, Boost: 30}}
		}, 99.99, 400, testStep, 1, 450},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParams()
			if tc.mutate != nil {
				tc.mutate(&p)
			}
			var signals int
			e, s := newPlaying(t, p, ListenerFunc(func(sig Signal) {
				if sig == SignalMilestone {
					signals++
				}
			}))
			s.Score = tc.score
			s.ScrollSpeed = tc.speed

			got := e.Advance(s, tc.dt, testWorldW)
			if got != tc.milestones || signals != tc.milestones {
				t.Errorf("milestones = %d, signals = %d, expected %d", got, signals, tc.milestones)
			}
			if s.ScrollSpeed != tc.expectSpeed {
				t.Errorf("ScrollSpeed = %v, expected %v", s.ScrollSpeed, tc.expectSpeed)
			}
		})
	}
}

func TestBoostAppliesOnce(t *testing.T) {
	p := DefaultParams()
	p.Speed.Progression = false
	p.Speed.Boosts = []Boost{{Score: 60, Boost: 5}, {Score: 50, Boost: 3}}
	e, s := newPlaying(t, p, nil)
	s.Score = 49.99

	e.Advance(s, testStep, testWorldW)
	if s.ScrollSpeed != 403 {
		t.Fatalf("ScrollSpeed = %v after crossing 50, expected 403", s.ScrollSpeed)
	}
	for s.Score < 70 {
		e.Advance(s, testStep, testWorldW)
	}
	if s.ScrollSpeed != 408 {
		t.Errorf("ScrollSpeed = %v after both boosts, expected 408", s.ScrollSpeed)
	}
}

func TestScoreMonotonicAndSpeedCapped(t *testing.T) {
	p := DefaultParams()
	p.Speed.ScoreRate = 0.5
	e, s := newPlaying(t, p, nil)

	prev := s.Score
	for range 2000 {
		e.Advance(s, testStep, testWorldW)
		if s.Score < prev {
			t.Fatalf("score decreased from %v to %v", prev, s.Score)
		}
		if s.ScrollSpeed > p.Speed.Max {
			t.Fatalf("speed %v exceeds max %v", s.ScrollSpeed, p.Speed.Max)
		}
		prev = s.Score
	}
	if s.ScrollSpeed != p.Speed.Max {
		t.Errorf("speed = %v after a long run, expected max %v", s.ScrollSpeed, p.Speed.Max)
	}
}

func TestTransitions(t *testing.T) {
	p := DefaultParams()
	e := NewEngine(p, 7, nil)
	s := NewState(p, CharacterTard)
	SetGroundLevel(s, p, testWorldH)

	e.TogglePause(s)
	if s.Status != StatusReady {
		t.Errorf("TogglePause from ready: %v", s.Status)
	}

	e.Start(s)
	for range 200 {
		e.Advance(s, testStep, testWorldW)
	}
	clock := s.Clock
	e.Start(s) // no-op while playing
	if s.Score == 0 {
		t.Error("Start while playing should not reset the run")
	}

	e.TogglePause(s)
	if s.Status != StatusPaused {
		t.Errorf("TogglePause from playing: %v", s.Status)
	}
	e.Jump(s)
	if s.Runner.IsJumping {
		t.Error("Jump while paused should be ignored")
	}
	e.TogglePause(s)
	if s.Status != StatusPlaying {
		t.Errorf("TogglePause from paused: %v", s.Status)
	}

	s.Status = StatusOver
	e.SetCharacter(s, CharacterVita)
	e.Start(s)
	if s.Status != StatusPlaying || s.Score != 0 || len(s.Obstacles) != 0 {
		t.Errorf("Start from over should begin a fresh run, got status=%v score=%v", s.Status, s.Score)
	}
	if s.Runner.Character != CharacterVita || s.GroundY != testWorldH-p.Physics.GroundOffset {
		t.Error("Start should keep character and ground level")
	}
	if s.Clock != clock || s.GameStartTime != clock || s.LastObstacleSpawnTime != clock {
		t.Errorf("Start should stamp the simulated clock %v", clock)
	}

	e.Reset(s)
	if s.Status != StatusReady || s.Runner.Y != s.GroundY-s.Runner.Height {
		t.Errorf("Reset: status=%v y=%v", s.Status, s.Runner.Y)
	}
}

func TestParseCharacter(t *testing.T) {
	for _, c := range Characters {
		got, err := ParseCharacter(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCharacter(%q) = %v, %v", c.String(), got, err)
		}
	}
	if c, err := ParseCharacter(" VITA "); err != nil || c != CharacterVita {
		t.Errorf("ParseCharacter should ignore case and spaces, got %v, %v", c, err)
	}
	if _, err := ParseCharacter("rex"); err == nil {
		t.Error("ParseCharacter(\"rex\") should fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := DefaultParams()
	_, s := newPlaying(t, p, nil)
	s.Obstacles = append(s.Obstacles, Obstacle{X: 10, Width: 5})

	c := s.Clone()
	c.Obstacles[0].X = 99
	if s.Obstacles[0].X != 10 {
		t.Error("Clone shares obstacle storage")
	}
	if Fingerprint(s.Clone()) != Fingerprint(s) {
		t.Error("clone fingerprint differs")
	}
}

func TestFingerprintTracksAppliedBoosts(t *testing.T) {
	p := DefaultParams()
	s := NewState(p, CharacterDoux)
	applied := s.Clone()
	applied.nextBoost = 1

	if Fingerprint(s) == Fingerprint(applied) {
		t.Error("states with different applied boosts share a fingerprint")
	}
	if Fingerprint(s) != Fingerprint(s.Clone()) {
		t.Error("clone changed the fingerprint")
	}
}
