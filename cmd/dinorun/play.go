package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dinorun/internal/audio"
	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/core"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
	"github.com/vovakirdan/dinorun/internal/platform/tui"
	"github.com/vovakirdan/dinorun/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagCharacter  string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run straight away.

Controls:
  Space/Up/W    - Jump (also starts the run)
  Down/S        - Duck
  Left/Right    - Change runner (before the run or after game over)
  P/Esc         - Pause or resume
  R             - Restart
  B             - Back to the menu (before the run, while paused, after game over)
  Esc           - Back to the menu (before the run, after game over)
  Ctrl+S        - Save a screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start at lowest difficulty, fewer obstacle patterns
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty, more patterns and speed boosts
  fixed  - No progression, speed stays at its initial value

Examples:
  dinorun play
  dinorun play --character mort
  dinorun play --difficulty hard --mute
  dinorun play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagCharacter, "character", "doux", "Runner: doux, mort, tard, vita")
}

// addGameFlags registers the flags shared by play and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

func runPlay(_ *cobra.Command, _ []string) error {
	character, err := engine.ParseCharacter(flagCharacter)
	if err != nil {
		return err
	}

	logger, closeLog := newLogger()
	defer closeLog()

	dino.SetConfigPath(flagConfig)
	dino.SetDifficultyPreset(flagDifficulty)

	player := newAudio(logger)
	defer player.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game := dino.New(
		dino.WithCharacter(character),
		dino.WithListener(signalListener(player, logger)),
	)
	if err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. Runs still work without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newAudio opens the speaker unless sound is muted or disabled in the config.
func newAudio(logger *log.Logger) *audio.Player {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		logger.Warn("runner config", "error", err)
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	return audio.New(cfg.Audio, logger)
}

// signalListener plays sounds and logs gameplay events.
func signalListener(player *audio.Player, logger *log.Logger) engine.Listener {
	return engine.Listeners{
		player,
		engine.ListenerFunc(func(sig engine.Signal) {
			logger.Debug("signal", "kind", sig)
		}),
	}
}
