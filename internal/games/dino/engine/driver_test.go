package engine

import (
	"testing"
	"time"
)

// stepDur is exactly one 64 Hz step.
const stepDur = 15625 * time.Microsecond

func newTestDriver(p Params, seed int64, cfg LoopConfig, l Listener) *Driver {
	d := NewDriver(NewEngine(p, seed, l), cfg, CharacterDoux)
	d.Resize(testWorldW, testWorldH)
	return d
}

func testLoop() LoopConfig {
	return LoopConfig{TickRate: 64, MaxFrame: 250 * time.Millisecond, MaxStepsPerFrame: 100}
}

func TestDriverStepCounts(t *testing.T) {
	tests := []struct {
		name   string
		cfg    LoopConfig
		frames []time.Duration
		steps  []int
	}{
		{"exact steps", testLoop(), []time.Duration{3 * stepDur}, []int{3}},
		{"remainder carries over", testLoop(), []time.Duration{stepDur / 2, stepDur / 2, stepDur / 2}, []int{0, 1, 0}},
		{"frame clamp", testLoop(), []time.Duration{10 * time.Second}, []int{16}},
		{"negative delta", testLoop(), []time.Duration{-time.Second, stepDur}, []int{0, 1}},
		{
			"catch-up bound drops leftover",
			LoopConfig{TickRate: 64, MaxFrame: 250 * time.Millisecond, MaxStepsPerFrame: 5},
			[]time.Duration{250 * time.Millisecond, stepDur / 2},
			[]int{5, 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newTestDriver(DefaultParams(), 1, tc.cfg, nil)
			d.Start()
			for i, delta := range tc.frames {
				res := d.Frame(delta)
				if res.Steps != tc.steps[i] {
					t.Errorf("frame %d: steps = %d, expected %d", i, res.Steps, tc.steps[i])
				}
			}
		})
	}
}

func TestDriverIdleWhenNotPlaying(t *testing.T) {
	d := newTestDriver(DefaultParams(), 1, testLoop(), nil)

	if res := d.Frame(time.Second); res.Steps != 0 {
		t.Errorf("ready frame ran %d steps", res.Steps)
	}

	d.Start()
	d.Frame(stepDur / 2)
	before := Fingerprint(d.State())

	// Pause through the engine so only Frame can clear the accumulator.
	d.Engine().TogglePause(d.State())
	for range 10 {
		if res := d.Frame(100 * time.Millisecond); res.Steps != 0 {
			t.Fatalf("paused frame ran %d steps", res.Steps)
		}
	}
	paused := d.State().Clone()
	paused.Status = StatusPlaying
	if Fingerprint(paused) != before {
		t.Error("world changed while paused")
	}

	d.Engine().TogglePause(d.State())
	if res := d.Frame(stepDur / 2); res.Steps != 0 {
		t.Errorf("accumulator survived a pause: %d steps", res.Steps)
	}
}

func TestDriverFrameAt(t *testing.T) {
	d := newTestDriver(DefaultParams(), 1, testLoop(), nil)
	d.Start()

	t0 := time.Unix(1000, 0)
	if res := d.FrameAt(t0); res.Steps != 0 {
		t.Errorf("first FrameAt ran %d steps", res.Steps)
	}
	if res := d.FrameAt(t0.Add(2 * stepDur)); res.Steps != 2 {
		t.Errorf("FrameAt steps = %d, expected 2", res.Steps)
	}

	// Resuming from pause restarts the frame clock.
	d.TogglePause()
	d.TogglePause()
	if res := d.FrameAt(t0.Add(time.Hour)); res.Steps != 0 {
		t.Errorf("FrameAt after resume ran %d steps", res.Steps)
	}
}

func TestDriverCollisionEndsRun(t *testing.T) {
	var got []Signal
	d := newTestDriver(DefaultParams(), 1, testLoop(), ListenerFunc(func(sig Signal) {
		got = append(got, sig)
	}))
	d.Start()

	s := d.State()
	r := s.Runner
	s.Obstacles = append(s.Obstacles, Obstacle{X: r.X + 30, Y: s.GroundY - 50, Width: 24, Height: 50})

	res := d.Frame(5 * stepDur)
	if !res.Collided || res.Steps != 1 {
		t.Fatalf("Frame: collided=%v steps=%d, expected a collision on the first step", res.Collided, res.Steps)
	}
	if s.Status != StatusOver {
		t.Errorf("status = %v, expected over", s.Status)
	}
	if len(got) != 1 || got[0] != SignalCollision {
		t.Errorf("signals = %v, expected [collision]", got)
	}

	before := Fingerprint(s)
	d.Engine().Advance(s, testStep, testWorldW)
	d.Frame(time.Second)
	if Fingerprint(s) != before {
		t.Error("state changed after game over")
	}

	d.Start()
	if s.Status != StatusPlaying || len(s.Obstacles) != 0 {
		t.Error("Start after game over should begin a fresh run")
	}
}

func TestDriverMilestones(t *testing.T) {
	var signals int
	d := newTestDriver(DefaultParams(), 1, testLoop(), ListenerFunc(func(sig Signal) {
		if sig == SignalMilestone {
			signals++
		}
	}))
	d.Start()
	d.State().Score = 99.99

	res := d.Frame(stepDur)
	if res.Milestones != 1 || signals != 1 {
		t.Errorf("milestones = %d signals = %d, expected 1", res.Milestones, signals)
	}
}

// autopilot jumps whenever an obstacle is close.
func autopilot(d *Driver) {
	if ShouldJump(d.State(), 0.25) {
		d.Jump()
	}
}

func runScripted(seed int64, frames int) *State {
	d := newTestDriver(DefaultParams(), seed, DefaultLoopConfig(), nil)
	d.Start()
	for i := range frames {
		if d.State().Status != StatusPlaying {
			break
		}
		if i%97 == 50 {
			d.Crouch(true)
		}
		if i%97 == 60 {
			d.Crouch(false)
		}
		autopilot(d)
		d.Frame(time.Second / 60)
	}
	return d.State()
}

func TestDeterminism(t *testing.T) {
	a := runScripted(12345, 3000)
	b := runScripted(12345, 3000)

	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("same seed and inputs gave different states: %x vs %x", Fingerprint(a), Fingerprint(b))
	}
	if a.Score != b.Score || len(a.Obstacles) != len(b.Obstacles) {
		t.Errorf("runs diverged: score %v vs %v", a.Score, b.Score)
	}

	c := runScripted(54321, 3000)
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("different seeds produced identical runs")
	}
}

func TestInvariantsHoldDuringPlay(t *testing.T) {
	d := newTestDriver(DefaultParams(), 99, DefaultLoopConfig(), nil)
	d.Start()
	p := d.Engine().Params()
	prevScore := 0.0

	for i := range 5000 {
		s := d.State()
		if s.Status == StatusOver {
			d.Start()
			prevScore = 0
		}
		autopilot(d)
		if i%50 == 0 {
			d.Crouch(i%100 == 0)
		}
		d.Frame(time.Second / 60)

		r := s.Runner
		if r.Y > s.GroundY-r.Height+1e-9 {
			t.Fatalf("frame %d: runner below ground (y=%v ground=%v h=%v)", i, r.Y, s.GroundY, r.Height)
		}
		if r.IsJumping && r.Crouching {
			t.Fatalf("frame %d: jumping and crouching", i)
		}
		if s.ScrollSpeed > p.Speed.Max {
			t.Fatalf("frame %d: speed %v above max", i, s.ScrollSpeed)
		}
		if s.Status == StatusPlaying && s.Score < prevScore {
			t.Fatalf("frame %d: score went down", i)
		}
		for _, o := range s.Obstacles {
			if o.X+o.Width < 0 {
				t.Fatalf("frame %d: off-screen obstacle kept", i)
			}
		}
		prevScore = s.Score
	}
}
