package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a runner and difficulty, then play",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a runner, left/right to pick a difficulty
and Enter to start. After a run, press B to return to the menu.

Controls:
  Up/Down/j/k    - Pick runner
  Left/Right     - Pick difficulty
  Enter/Space    - Start
  Tab            - High scores
  Q              - Quit

Examples:
  dinorun menu
  dinorun menu --fps 30
  dinorun menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	dino.SetConfigPath(flagConfig)

	player := newAudio(logger)
	defer player.Close()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return fmt.Errorf("scoreboard: %w", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		// --difficulty overrides the menu selection
		preset := menuResult.Difficulty
		if flagDifficulty != "" {
			dino.SetDifficultyPreset(flagDifficulty)
		} else {
			dino.SetDifficultyPreset(string(preset))
		}

		// Fresh seed for each run unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		game := dino.New(
			dino.WithCharacter(menuResult.Character),
			dino.WithListener(signalListener(player, logger)),
		)
		logger.Info("run started", "character", menuResult.Character, "difficulty", preset)
		if err := tui.Run(game, store, cfg, logger); err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		// Loop back to menu
	}
}
