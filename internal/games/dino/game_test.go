package dino

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
)

const frame = 20 * time.Millisecond

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}
}

func newTestGame(opts ...Option) *Game {
	opts = append([]Option{WithConfig(config.DefaultRunnerConfig())}, opts...)
	g := New(opts...)
	g.Reset(testRuntime())
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameReset(t *testing.T) {
	g := newTestGame()
	st := g.State()

	if st.Started || st.GameOver || st.Paused || st.Score != 0 {
		t.Errorf("fresh game state = %+v, expected ready", st)
	}
	if st.Character != "Doux" {
		t.Errorf("Character = %q, expected Doux", st.Character)
	}
	w, h := g.Driver().WorldSize()
	if w != 80*12 || h != 24*24 {
		t.Errorf("world = %vx%v, expected 960x576", w, h)
	}
	if gy := g.Driver().State().GroundY; gy != 476 {
		t.Errorf("GroundY = %v, expected 476", gy)
	}
}

func TestGameStartAndJump(t *testing.T) {
	var jumps int
	g := newTestGame(WithListener(engine.ListenerFunc(func(sig engine.Signal) {
		if sig == engine.SignalJump {
			jumps++
		}
	})))

	res := g.Update(frame, input(core.ActionJump))
	if !res.State.Started || res.State.GameOver {
		t.Fatalf("Jump on ready should start the run, got %+v", res.State)
	}
	if res.Steps == 0 {
		t.Error("first playing frame should simulate")
	}
	if jumps != 0 {
		t.Error("starting the run should not jump")
	}

	g.Update(frame, input(core.ActionConfirm))
	if !g.Driver().State().Runner.IsJumping || jumps != 1 {
		t.Errorf("Confirm while playing should jump (jumping=%v, signals=%d)", g.Driver().State().Runner.IsJumping, jumps)
	}
}

func TestGameCrouchHold(t *testing.T) {
	g := newTestGame()
	g.Update(frame, input(core.ActionJump))

	g.Update(frame, input(core.ActionDuck))
	r := g.Driver().State().Runner
	if !r.Crouching {
		t.Fatal("Duck should crouch")
	}

	for range 10 {
		g.Update(frame, core.NewInputFrame())
	}
	if !g.Driver().State().Runner.Crouching {
		t.Error("crouch released before the hold expired")
	}

	// Pressing again extends the hold.
	g.Update(frame, input(core.ActionDuck))
	for range 15 {
		g.Update(frame, core.NewInputFrame())
	}
	if !g.Driver().State().Runner.Crouching {
		t.Error("repeated Duck should extend the hold")
	}

	for range 10 {
		g.Update(frame, core.NewInputFrame())
	}
	if g.Driver().State().Runner.Crouching {
		t.Error("crouch should end after the hold expires")
	}
}

func TestGameJumpCancelsCrouch(t *testing.T) {
	g := newTestGame()
	g.Update(frame, input(core.ActionJump))
	g.Update(frame, input(core.ActionDuck))

	g.Update(frame, input(core.ActionJump))
	r := g.Driver().State().Runner
	if !r.IsJumping || r.Crouching {
		t.Errorf("jumping=%v crouching=%v, expected a jump out of the crouch", r.IsJumping, r.Crouching)
	}
}

func TestGameCharacterCycle(t *testing.T) {
	g := newTestGame()

	g.Update(frame, input(core.ActionNextCharacter))
	if g.Character() != engine.CharacterMort {
		t.Errorf("Character = %v, expected mort", g.Character())
	}
	g.Update(frame, input(core.ActionPrevCharacter))
	g.Update(frame, input(core.ActionPrevCharacter))
	if g.Character() != engine.CharacterVita {
		t.Errorf("Character = %v, expected vita after wrapping", g.Character())
	}

	g.Update(frame, input(core.ActionJump))
	g.Update(frame, input(core.ActionNextCharacter))
	if g.Character() != engine.CharacterVita {
		t.Error("character should not change while playing")
	}
	if g.State().Character != "Vita" {
		t.Errorf("State().Character = %q, expected Vita", g.State().Character)
	}
}

func TestGamePauseAndRestart(t *testing.T) {
	g := newTestGame()
	g.Update(frame, input(core.ActionJump))
	for range 60 {
		g.Update(frame, core.NewInputFrame())
	}

	res := g.Update(frame, input(core.ActionPause))
	if !res.State.Paused || res.Steps != 0 {
		t.Fatalf("pause: %+v steps=%d", res.State, res.Steps)
	}
	score := g.Driver().State().Score
	for range 30 {
		g.Update(time.Second, core.NewInputFrame())
	}
	if g.Driver().State().Score != score {
		t.Error("score changed while paused")
	}

	g.Update(frame, input(core.ActionPause))
	if g.State().Paused {
		t.Error("second Pause should resume")
	}

	g.Update(frame, input(core.ActionRestart))
	st := g.State()
	if st.Started || st.Score != 0 {
		t.Errorf("Restart should return to ready, got %+v", st)
	}
}

func TestGameOverAndRetry(t *testing.T) {
	var collisions int
	g := newTestGame(WithListener(engine.ListenerFunc(func(sig engine.Signal) {
		if sig == engine.SignalCollision {
			collisions++
		}
	})))
	g.Update(frame, input(core.ActionJump))
	for range 30 {
		g.Update(frame, core.NewInputFrame())
	}

	s := g.Driver().State()
	s.Obstacles = append(s.Obstacles, engine.Obstacle{
		X: s.Runner.X + 20, Y: s.GroundY - 50, Width: 24, Height: 50,
	})
	res := g.Update(frame, core.NewInputFrame())
	if !res.Collided || !res.State.GameOver || collisions != 1 {
		t.Fatalf("collision: %+v collided=%v signals=%d", res.State, res.Collided, collisions)
	}
	final := res.State.Score
	if g.HighScore() < final {
		t.Errorf("HighScore = %d, expected at least %d", g.HighScore(), final)
	}

	res = g.Update(frame, core.NewInputFrame())
	if res.Steps != 0 {
		t.Error("game over should not simulate")
	}

	res = g.Update(frame, input(core.ActionJump))
	if res.State.GameOver || !res.State.Started || len(g.Driver().State().Obstacles) != 0 {
		t.Errorf("Jump after game over should start a fresh run, got %+v", res.State)
	}
	if g.HighScore() < final {
		t.Error("high score lost on retry")
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() uint64 {
		g := newTestGame()
		for i := range 1500 {
			var in core.InputFrame
			switch {
			case i == 0 || g.State().GameOver:
				in = input(core.ActionJump)
			case i%45 == 0:
				in = input(core.ActionJump)
			case i%70 == 0:
				in = input(core.ActionDuck)
			default:
				in = core.NewInputFrame()
			}
			g.Update(frame, in)
		}
		return engine.Fingerprint(g.Driver().State())
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed and inputs diverged: %x vs %x", a, b)
	}
}

func TestGameResizeKeepsRun(t *testing.T) {
	g := newTestGame()
	g.Update(frame, input(core.ActionJump))
	for range 30 {
		g.Update(frame, core.NewInputFrame())
	}
	score := g.Driver().State().Score

	g.Resize(100, 30)
	s := g.Driver().State()
	if s.Status != engine.StatusPlaying || s.Score != score {
		t.Error("resize should not interrupt the run")
	}
	if s.GroundY != 30*24-100 {
		t.Errorf("GroundY = %v, expected %v", s.GroundY, 30*24-100)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame()
	g.SetHighScore(42)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	if !strings.Contains(out, "DINO RUN") {
		t.Error("ready screen should show the title")
	}
	if !strings.Contains(out, "HI 00042  00000") {
		t.Errorf("HUD missing, top row = %q", screen.Row(0))
	}
	if !strings.HasPrefix(screen.Row(20), "═══") {
		t.Errorf("ground row = %q", screen.Row(20))
	}

	// Runner sprite sits directly on the ground line, 5 cells wide starting at x=6.
	if c := screen.GetCell(6, 18); c.Rune != '▐' || c.Color != core.ColorSkinBlue {
		t.Errorf("runner body cell = %+v, expected '▐' in the Doux color", c)
	}

	g.Update(frame, input(core.ActionJump))
	s := g.Driver().State()
	s.Obstacles = []engine.Obstacle{{X: 600, Y: s.GroundY - 50, Width: 24, Height: 50}}
	g.Render(screen)
	if c := screen.GetCell(50, 19); c.Rune != CactusSmall || c.Color != core.ColorCactus {
		t.Errorf("cactus cell = %+v", c)
	}
	if strings.Contains(screen.String(), "DINO RUN") {
		t.Error("overlay should disappear while playing")
	}
}

func TestParamsFromConfig(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	config.ApplyRunnerPreset(&cfg, config.DifficultyNormal)
	p := ParamsFromConfig(cfg, config.NewDifficultyManager(cfg.Difficulty))

	if math.Abs(p.Speed.Initial-460) > 1e-9 {
		t.Errorf("normal initial speed = %v, expected 460", p.Speed.Initial)
	}
	if !p.Speed.Progression {
		t.Error("normal preset should keep progression")
	}
	if len(p.Obstacles.Patterns) != 3 || p.Obstacles.Patterns[1].Members[1].Size != engine.SizeLarge {
		t.Errorf("patterns not mapped: %+v", p.Obstacles.Patterns)
	}
	if p.Hitbox.Runner.InsetX != 10 || p.Hitbox.Obstacle.InsetX != 5 {
		t.Errorf("hitbox = %+v", p.Hitbox)
	}

	cfg = config.DefaultRunnerConfig()
	config.ApplyRunnerPreset(&cfg, config.DifficultyFixed)
	p = ParamsFromConfig(cfg, config.NewDifficultyManager(cfg.Difficulty))
	if p.Speed.Progression {
		t.Error("fixed preset should disable progression")
	}

	cfg = config.DefaultRunnerConfig()
	config.ApplyRunnerPreset(&cfg, config.DifficultyHard)
	p = ParamsFromConfig(cfg, config.NewDifficultyManager(cfg.Difficulty))
	if len(p.Speed.Boosts) != 4 || math.Abs(p.Speed.Initial-540) > 1e-9 {
		t.Errorf("hard: boosts=%d initial=%v", len(p.Speed.Boosts), p.Speed.Initial)
	}

	loop := LoopFromConfig(cfg.Loop)
	if loop.TickRate != 60 || loop.MaxFrame != 250*time.Millisecond || loop.MaxStepsPerFrame != 15 {
		t.Errorf("loop = %+v", loop)
	}
}

func TestSkins(t *testing.T) {
	if got := len(Skins()); got != len(engine.Characters) {
		t.Fatalf("skins = %d, expected %d", got, len(engine.Characters))
	}
	for _, c := range engine.Characters {
		if SkinFor(c).Name == "" {
			t.Errorf("character %v has no skin", c)
		}
	}
	if CycleCharacter(engine.CharacterVita, 1) != engine.CharacterDoux {
		t.Error("cycling forward should wrap")
	}
	if CycleCharacter(engine.CharacterDoux, -1) != engine.CharacterVita {
		t.Error("cycling backward should wrap")
	}

	skin := SkinFor(engine.CharacterDoux)
	tests := []struct {
		name   string
		runner engine.Runner
		frame  []string
	}{
		{"run 1", engine.Runner{RunFrame: 1}, skin.Run1},
		{"run 2", engine.Runner{RunFrame: 2}, skin.Run2},
		{"jump", engine.Runner{IsJumping: true, RunFrame: 2}, skin.Jump},
		{"crouch", engine.Runner{Crouching: true, RunFrame: 2}, skin.Crouch},
	}
	for _, tc := range tests {
		if got := skin.Frame(tc.runner); strings.Join(got, "\n") != strings.Join(tc.frame, "\n") {
			t.Errorf("%s: wrong frame", tc.name)
		}
	}
}
