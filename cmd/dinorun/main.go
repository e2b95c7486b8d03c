// dinorun is an endless runner for the terminal.
//
// Usage:
//
//	dinorun play             - Start a run
//	dinorun menu             - Pick a runner and difficulty interactively
//	dinorun serve            - Start SSH server for remote play
//	dinorun scores [runner]  - Show high scores
//	dinorun characters       - List the playable runners
//	dinorun simulate         - Run the simulation headless and print a fingerprint
//
// Global flags:
//
//	--fps <rate>       - Set frame rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.dinorun/scores.db)
//	--log-file <path>  - Write logs to a file
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dinorun",
	Short: "Dino Run - an endless runner in your terminal",
	Long: `Dino Run is a terminal endless runner. Jump over cacti, duck under
hazards and see how far you get.

Available commands:
  play        - Start a run directly
  menu        - Interactive runner picker
  serve       - Start SSH server for remote play
  scores      - View high scores
  characters  - List the playable runners
  simulate    - Headless run for testing determinism

Examples:
  dinorun play
  dinorun play --character vita --difficulty hard
  dinorun menu
  dinorun serve --ssh :2222
  dinorun scores mort
  dinorun simulate --seed 42 --steps 10000 --autopilot`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dinorun/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the TUI owns the terminal)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the logger for terminal commands. Output goes to --log-file,
// or nowhere when it is unset, so it never draws over the game.
// The returned func closes the log file.
func newLogger() (*log.Logger, func()) {
	var w io.Writer = io.Discard
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		} else {
			w = f
			closer = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dinorun",
	})
	logger.SetLevel(parseLevel(flagLogLevel))
	return logger, closer
}

func parseLevel(s string) log.Level {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
