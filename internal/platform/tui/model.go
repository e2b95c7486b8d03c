package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
	"github.com/vovakirdan/dinorun/internal/storage"
)

// Model is the Bubble Tea model for a runner session.
type Model struct {
	game       *dino.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	logger     *log.Logger

	lastTick   time.Time
	character  engine.Character // character the high score was loaded for
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil logger discards output.
func NewModel(game *dino.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		logger:     logger,
		character:  -1,
	}
}

// Init initializes the model and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if err := m.game.ConfigError(); err != nil {
		m.logger.Warn("using default runner config", "error", err)
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Actions are buffered until the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.wantsMenu(msg) {
		m.backToMenu = true
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// wantsMenu reports whether msg leaves the run for the menu.
// Between runs both b and esc go back. Inside a run esc toggles pause,
// so only b leaves and only while paused.
func (m Model) wantsMenu(msg tea.KeyMsg) bool {
	if m.keyMapper.MapKeyToMenuAction(msg) != MenuActionBack {
		return false
	}
	if m.gameState.GameOver || !m.gameState.Started {
		return true
	}
	return m.gameState.Paused && msg.String() == "b"
}

// handleResize adapts the world to the new terminal size. The run continues.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick feeds one host frame to the game.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var delta time.Duration
	if !m.lastTick.IsZero() {
		delta = now.Sub(m.lastTick)
	}
	m.lastTick = now

	result := m.game.Update(delta, m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if !m.gameState.GameOver {
		m.scoreSaved = false
	}
	m.syncHighScore()

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// syncHighScore reloads the stored best whenever the selected character changes.
func (m *Model) syncHighScore() {
	c := m.game.Character()
	if c == m.character {
		return
	}
	m.character = c
	if m.store == nil {
		m.game.SetHighScore(0)
		return
	}
	best, err := m.store.HighScore(c.String())
	if err != nil {
		m.logger.Warn("could not load high score", "character", c, "error", err)
		return
	}
	m.game.SetHighScore(best)
}

func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	c := m.game.Character()
	if _, err := m.store.SaveScore(c.String(), m.gameState.Score); err != nil {
		m.logger.Error("could not save score", "character", c, "score", m.gameState.Score, "error", err)
		return
	}
	m.logger.Debug("score saved", "character", c, "score", m.gameState.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".dinorun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state observed on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// standaloneModel quits the program when the player asks for the menu.
type standaloneModel struct {
	Model
}

func (m standaloneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.Model.Update(msg)
	m.Model = next.(Model)
	if m.backToMenu {
		return m, tea.Quit
	}
	return m, cmd
}

// Run starts the Bubble Tea program for one game session.
func Run(game *dino.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := standaloneModel{NewModel(game, store, cfg, logger)}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
