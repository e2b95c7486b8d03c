// Package dino implements a Chrome Dino-style endless runner game.
// The player must jump over or crouch under obstacles while running automatically.
package dino

import (
	"math"
	"time"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names use the config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts the simulation engine to the terminal platform.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.RunnerConfig
	cfgErr     error
	fixedCfg   *config.RunnerConfig // set by WithConfig, skips loading
	configPath string
	preset     config.DifficultyPreset
	difficulty *config.DifficultyManager

	driver    *engine.Driver
	listener  engine.Listener
	character engine.Character

	crouchLeft time.Duration // remaining crouch hold
	highScore  int
}

// Option configures a Game.
type Option func(*Game)

// WithListener routes jump, milestone and collision signals to l.
func WithListener(l engine.Listener) Option {
	return func(g *Game) { g.listener = l }
}

// WithCharacter selects the starting skin.
func WithCharacter(c engine.Character) Option {
	return func(g *Game) { g.character = c }
}

// WithConfig uses cfg instead of loading from disk.
func WithConfig(cfg config.RunnerConfig) Option {
	return func(g *Game) { g.fixedCfg = &cfg }
}

// WithDifficulty overrides the package-level difficulty preset.
func WithDifficulty(preset config.DifficultyPreset) Option {
	return func(g *Game) { g.preset = preset }
}

// New creates a new runner game instance. Call Reset before use.
func New(opts ...Option) *Game {
	g := &Game{
		configPath: configPath,
		preset:     difficultyPreset,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "dino"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dino Run"
}

// Reset loads the config and prepares a fresh ready state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	var cfg config.RunnerConfig
	if g.fixedCfg != nil {
		cfg, g.cfgErr = *g.fixedCfg, nil
	} else {
		cfg, g.cfgErr = config.LoadRunner(g.configPath)
	}
	config.ApplyRunnerPreset(&cfg, g.preset)
	g.cfg = cfg

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	e := engine.NewEngine(ParamsFromConfig(cfg, g.difficulty), runtime.Seed, g.listener)
	g.driver = engine.NewDriver(e, LoopFromConfig(cfg.Loop), g.character)
	g.crouchLeft = 0
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// ConfigError returns the error from the last config load, if any.
// The game falls back to defaults when it is set.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Config returns the effective configuration.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Resize adapts the world to a new terminal size. The run continues.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.driver.Resize(float64(w)*g.cfg.Render.CellWidth, float64(h)*g.cfg.Render.CellHeight)
}

// SetHighScore sets the best score shown in the HUD.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
}

// HighScore returns the best score seen, including the current run.
func (g *Game) HighScore() int {
	return max(g.highScore, g.driver.State().DisplayScore())
}

// Character returns the selected skin.
func (g *Game) Character() engine.Character {
	return g.driver.State().Runner.Character
}

// Driver exposes the simulation driver.
func (g *Game) Driver() *engine.Driver {
	return g.driver
}

// Update applies one host frame of input and advances the simulation by delta.
func (g *Game) Update(delta time.Duration, in core.InputFrame) core.StepResult {
	d := g.driver
	s := d.State()
	jump := in.Has(core.ActionJump) || in.Has(core.ActionConfirm)

	if in.Has(core.ActionRestart) {
		g.highScore = g.HighScore()
		d.Reset()
		g.crouchLeft = 0
	}
	if in.Has(core.ActionPause) {
		d.TogglePause()
	}

	switch s.Status {
	case engine.StatusReady, engine.StatusOver:
		if in.Has(core.ActionNextCharacter) {
			d.SetCharacter(CycleCharacter(s.Runner.Character, 1))
		}
		if in.Has(core.ActionPrevCharacter) {
			d.SetCharacter(CycleCharacter(s.Runner.Character, -1))
		}
		if jump {
			g.highScore = g.HighScore()
			g.crouchLeft = 0
			d.Start()
		}
	case engine.StatusPlaying:
		if jump {
			// Jumping cancels a held crouch.
			if s.Runner.Crouching {
				d.Crouch(false)
				g.crouchLeft = 0
			}
			d.Jump()
		} else if in.Has(core.ActionDuck) {
			g.crouchLeft = time.Duration(g.cfg.Player.CrouchHoldMs) * time.Millisecond
			d.Crouch(true)
		}
	}

	res := d.Frame(delta)

	if s.Status == engine.StatusPlaying && s.Runner.Crouching {
		g.crouchLeft -= delta
		if g.crouchLeft <= 0 {
			g.crouchLeft = 0
			d.Crouch(false)
		}
	}

	return core.StepResult{
		State:      g.State(),
		Steps:      res.Steps,
		Collided:   res.Collided,
		Milestones: res.Milestones,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.driver.State()
	return core.GameState{
		Score:     s.DisplayScore(),
		Started:   s.Status != engine.StatusReady,
		GameOver:  s.Status == engine.StatusOver,
		Paused:    s.Status == engine.StatusPaused,
		Character: SkinFor(s.Runner.Character).Name,
	}
}

// Level returns the difficulty level reached by the current run.
func (g *Game) Level() float64 {
	return g.difficulty.Level(g.driver.State().DisplayScore())
}

// toCell converts a world coordinate to a cell index along one axis.
func toCell(v, cell float64) int {
	return int(math.Floor(v / cell))
}

// toCellRounded converts a world coordinate to the nearest cell boundary.
func toCellRounded(v, cell float64) int {
	return int(math.Round(v / cell))
}
