package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagSentryDSN   string
	flagStatsAddr   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the runner picker menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.dinorun/host_key

Examples:
  dinorun serve                           # Listen on :23234 with auto-generated key
  dinorun serve --ssh :2222               # Listen on port 2222
  dinorun serve --host-key ./my_host_key  # Use specific host key
  dinorun serve --stats-addr localhost:18066   # Serve runtime charts
  dinorun serve --sentry-dsn $SENTRY_DSN  # Report session panics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagSentryDSN, "sentry-dsn", os.Getenv("SENTRY_DSN"), "Sentry DSN for panic reports")
	serveCmd.Flags().StringVar(&flagStatsAddr, "stats-addr", "", "Serve runtime charts on this address")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
}

func runServe(_ *cobra.Command, _ []string) error {
	dino.SetConfigPath(flagConfig)

	// The server owns its terminal, so it logs to stderr unless --log-file is set.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dinorun-ssh",
	})
	if flagLogFile != "" {
		var closeLog func()
		logger, closeLog = newLogger()
		defer closeLog()
	}
	logger.SetLevel(parseLevel(flagLogLevel))

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.SentryDSN = flagSentryDSN
	cfg.StatsAddr = flagStatsAddr
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Dino Run SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
