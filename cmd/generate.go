package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/pagesim/sim"
)

var generateCount int // Number of reference strings to print

// generateCmd prints generated reference strings in the form `run --refs` accepts.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate random reference strings",
	Run: func(cmd *cobra.Command, args []string) {
		if err := executeGenerate(cmd.OutOrStdout(), seed, generatorFromFlags(), generateCount); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func executeGenerate(out io.Writer, seed int64, cfg sim.GeneratorConfig, count int) error {
	if count <= 0 {
		return fmt.Errorf("count must be > 0, got %d", count)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	gen := sim.NewSeededReferenceGenerator(seed, cfg)
	for i := 0; i < count; i++ {
		pages, err := gen.Next()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, sim.FormatReferenceString(pages)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	generateCmd.Flags().IntVar(&generateCount, "count", 1, "Number of reference strings to generate")
	addGeneratorFlags(generateCmd)
}
