package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/pagesim/sim"
)

var (
	sweepFrames     []int    // Frame counts to evaluate
	sweepTrials     int      // Reference strings per frame count
	sweepAlgorithms []string // Engines to run
)

// sweepCmd runs every engine over many generated reference strings.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare engines over many generated reference strings",
	Run: func(cmd *cobra.Command, args []string) {
		algs, err := sim.ParseAlgorithms(sweepAlgorithms)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg := sim.SweepConfig{
			Seed:        seed,
			Trials:      sweepTrials,
			FrameCounts: sweepFrames,
			Generator:   generatorFromFlags(),
			Algorithms:  algs,
		}
		logrus.Infof("Starting sweep: %d trials over frames=%v", cfg.Trials, cfg.FrameCounts)
		result, err := sim.RunSweep(cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		printSweep(cmd.OutOrStdout(), result)
	},
}

// printSweep displays the aggregate fault counts per frame count and engine.
func printSweep(w io.Writer, r *sim.SweepResult) {
	fmt.Fprintf(w, "=== Sweep (%d trials) ===\n", r.Trials)
	fmt.Fprintf(w, "%-7s %-5s %8s %8s %5s %5s\n", "Frames", "Algo", "Mean", "StdDev", "Min", "Max")
	for _, p := range r.Points {
		fmt.Fprintf(w, "%-7d %-5s %8.2f %8.2f %5d %5d\n", p.Frames, p.Algorithm.DisplayName(), p.Mean, p.StdDev, p.Min, p.Max)
	}
	if r.BoundViolations > 0 {
		fmt.Fprintf(w, "WARNING: OPT exceeded another engine %d times\n", r.BoundViolations)
	}
}

func init() {
	sweepCmd.Flags().IntSliceVar(&sweepFrames, "frames", []int{1, 2, 3, 4, 5}, "Comma-separated frame counts")
	sweepCmd.Flags().IntVar(&sweepTrials, "trials", 100, "Reference strings to generate")
	sweepCmd.Flags().StringSliceVar(&sweepAlgorithms, "algorithms", []string{"all"}, "Engines to run: fifo, lru, opt, or all")
	addGeneratorFlags(sweepCmd)
}
