package main

import (
	"fmt"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/config"
	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
)

var (
	flagSteps     int
	flagAutopilot bool
	flagWorldW    float64
	flagWorldH    float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation headless and print its fingerprint",
	Long: `Run the simulation without a terminal, one fixed step per frame.

The same seed, config and flags always print the same fingerprint,
which makes this useful for checking determinism across builds.

Examples:
  dinorun simulate --seed 42
  dinorun simulate --seed 42 --steps 20000 --autopilot
  dinorun simulate --difficulty hard --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSteps, "steps", 3600, "Number of fixed steps to run")
	simulateCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Jump automatically when an obstacle is close")
	simulateCmd.Flags().Float64Var(&flagWorldW, "width", 960, "World width in units")
	simulateCmd.Flags().Float64Var(&flagWorldH, "height", 576, "World height in units")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simulateCmd.Flags().StringVar(&flagCharacter, "character", "doux", "Runner: doux, mort, tard, vita")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	character, err := engine.ParseCharacter(flagCharacter)
	if err != nil {
		return err
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyRunnerPreset(&cfg, config.ParsePreset(flagDifficulty))

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}

	var jumps, milestones int
	listener := engine.ListenerFunc(func(sig engine.Signal) {
		switch sig {
		case engine.SignalJump:
			jumps++
		case engine.SignalMilestone:
			milestones++
		}
	})

	dm := config.NewDifficultyManager(cfg.Difficulty)
	e := engine.NewEngine(dino.ParamsFromConfig(cfg, dm), seed, listener)
	d := engine.NewDriver(e, dino.LoopFromConfig(cfg.Loop), character)
	d.Resize(flagWorldW, flagWorldH)
	d.Start()

	// Round up so every frame covers exactly one step.
	step := time.Duration(math.Ceil(d.StepSize() * float64(time.Second)))
	steps := 0
	for steps < flagSteps && d.State().Status == engine.StatusPlaying {
		if flagAutopilot && engine.ShouldJump(d.State(), 0.25) {
			d.Jump()
		}
		steps += d.Frame(step).Steps
	}

	s := d.State()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "status:      %s\n", s.Status)
	fmt.Fprintf(out, "score:       %d\n", s.DisplayScore())
	fmt.Fprintf(out, "speed:       %.1f\n", s.ScrollSpeed)
	fmt.Fprintf(out, "steps:       %d\n", steps)
	fmt.Fprintf(out, "jumps:       %d\n", jumps)
	fmt.Fprintf(out, "milestones:  %d\n", milestones)
	fmt.Fprintf(out, "fingerprint: %016x\n", engine.Fingerprint(s))
	return nil
}
