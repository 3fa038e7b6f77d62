package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/telemetry"
)

var (
	flagScript string
	flagTicks  int
	flagOut    string
	flagRetry  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <level>",
	Short: "Run a level headless with scripted input",
	Long: `Run a level without a terminal on a fixed frame clock, pressing the
keys given by --script. With --out, every tick is written to trace.csv and
the outcome to summary.csv in that directory.

A script is a comma separated list of steps. A step names one or more
actions joined by '+' and an optional tick count after '*':

  right*90,right+jump*20,wait*30,use

Actions: wait, left, right, jump, use, pause, restart, confirm.

Examples:
  platformer simulate meadow --script "right*400"
  platformer simulate factory --script "right*60,right+jump*15" --out ./trace
  platformer simulate ./cave.yaml --ticks 3600 --retry`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Input script")
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Maximum ticks (0 = script length plus ten seconds)")
	simulateCmd.Flags().StringVar(&flagOut, "out", "", "Directory for trace.csv and summary.csv")
	simulateCmd.Flags().BoolVar(&flagRetry, "retry", false, "Keep going after a failed attempt")
}

func runSimulate(_ *cobra.Command, args []string) {
	cfg, preset, err := loadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	l, err := resolveLevel(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	script, err := platformer.ParseScript(flagScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fps := cfg.Gameplay.FPS
	if flagFPS > 0 {
		fps = flagFPS
	}
	maxTicks := flagTicks
	if maxTicks <= 0 {
		maxTicks = script.Len() + 10*fps
	}

	w, err := telemetry.NewWriter(flagOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer w.Close()

	sim := platformer.NewSimulation(l, platformer.Options{
		Config:     cfg,
		Difficulty: preset,
		Logger:     logger.With("level", l.ID),
	}, script, fps)

	deltas := make([]float64, 0, maxTicks)
	var writeErr error
	out := sim.Run(maxTicks, flagRetry, func(tick int, g *platformer.Game) {
		sample := telemetry.Capture(tick, g.Clock(), g.World())
		deltas = append(deltas, sample.DeltaMs)
		if writeErr == nil {
			writeErr = w.WriteSample(sample)
		}
	})
	if writeErr != nil {
		logger.Error("trace output stopped", "err", writeErr)
	}

	var meanDelta float64
	if len(deltas) > 0 {
		meanDelta = stat.Mean(deltas, nil)
	}
	if err := w.WriteSummary(telemetry.Summary{
		Level:     l.ID,
		Ticks:     out.Ticks,
		State:     out.State.String(),
		Score:     out.Score,
		TimeMs:    out.TimeMs,
		Completed: out.Completed,
		MeanDelta: meanDelta,
	}); err != nil {
		logger.Error("writing summary", "err", err)
	}

	fmt.Printf("Level:     %s (%s)\n", l.Title, l.ID)
	fmt.Printf("Ticks:     %d\n", out.Ticks)
	fmt.Printf("State:     %s\n", out.State)
	fmt.Printf("Completed: %v\n", out.Completed)
	fmt.Printf("Time:      %s\n", formatMs(out.TimeMs))
	fmt.Printf("Score:     %d\n", out.Score)
	fmt.Printf("Attempts:  %d\n", out.Attempts)
	if dir := w.Dir(); dir != "" {
		fmt.Printf("Trace:     %s\n", dir)
	}
}
