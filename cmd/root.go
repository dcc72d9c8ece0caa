package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/trace"
)

var (
	// Shared flags
	seed     int64  // Seed for reference-string generation
	logLevel string // Log verbosity level

	// Generator flags (run, generate)
	minLength   int // Shortest generated reference string
	maxLength   int // Longest generated reference string
	pageRange   int // Generated page IDs fall in [0, page-range)
	fixedLength int // If > 0, every generated string has exactly this length

	// run flags
	framesText       string        // Number of page frames (validated as a positive integer)
	referenceText    string        // Comma-separated reference string; empty generates one
	algorithmNames   []string      // Engines to run
	strictParse      bool          // Fail on an unparsable reference string instead of generating
	parallel         bool          // Run engines on separate goroutines
	traceLevel       string        // Trace verbosity
	traceOut         string        // File to export the trace to
	traceFormat      string        // Trace export encoding
	traceCompression string        // Trace export stream compression
	outputFormat     string        // Report format
	revealDelay      time.Duration // Delay between report lines (text output only)
	scenarioPath     string        // YAML scenario file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pagesim",
	Short: "Page-replacement simulator (FIFO, LRU, OPT)",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runOptions is the fully resolved configuration of one `run` invocation.
type runOptions struct {
	Frames           int
	Reference        string
	Pages            []int // set only from a scenario's pages list
	Strict           bool
	Algorithms       []sim.Algorithm
	Seed             int64
	Generator        sim.GeneratorConfig
	Parallel         bool
	TraceLevel       trace.TraceLevel
	TraceOut         string
	TraceFormat      trace.Format
	TraceCompression trace.Compression
	Output           string
	RevealDelay      time.Duration
}

// runCmd executes the simulation using parameters from CLI flags and an optional scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the page-replacement simulation",
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := resolveRunOptions(cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Starting simulation with %d frames, algorithms=%v, seed=%d", opts.Frames, opts.Algorithms, opts.Seed)

		if err := executeRun(opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// generatorFromFlags builds the generator bounds from the CLI flags.
func generatorFromFlags() sim.GeneratorConfig {
	if fixedLength > 0 {
		return sim.FixedLengthConfig(fixedLength, pageRange)
	}
	return sim.GeneratorConfig{MinLength: minLength, MaxLength: maxLength, PageRange: pageRange}
}

// resolveRunOptions merges flags with the optional scenario file.
// Scenario values apply only where the corresponding flag was not set on the
// command line; changed reports whether a flag was set.
func resolveRunOptions(changed func(name string) bool) (runOptions, error) {
	opts := runOptions{
		Reference:        referenceText,
		Strict:           strictParse,
		Seed:             seed,
		Generator:        generatorFromFlags(),
		Parallel:         parallel,
		TraceLevel:       trace.TraceLevel(traceLevel),
		TraceOut:         traceOut,
		TraceFormat:      trace.Format(traceFormat),
		TraceCompression: trace.Compression(traceCompression),
		Output:           outputFormat,
		RevealDelay:      revealDelay,
	}
	names := algorithmNames

	framesSet := changed("frames")
	if framesSet {
		frames, err := sim.ParseFrameCount(framesText)
		if err != nil {
			return opts, err
		}
		opts.Frames = frames
	}

	if scenarioPath != "" {
		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			return opts, err
		}
		if err := sc.Validate(); err != nil {
			return opts, fmt.Errorf("invalid scenario %s: %w", scenarioPath, err)
		}
		if !framesSet && sc.Frames > 0 {
			opts.Frames = sc.Frames
			framesSet = true
		}
		if !changed("refs") {
			opts.Reference = sc.Reference
			opts.Pages = sc.Pages
		}
		if !changed("strict") && sc.Strict {
			opts.Strict = true
		}
		if !changed("algorithms") && len(sc.Algorithms) > 0 {
			names = sc.Algorithms
		}
		if !changed("seed") && sc.Seed != nil {
			opts.Seed = *sc.Seed
		}
		generatorFlagSet := changed("min-length") || changed("max-length") || changed("page-range") || changed("fixed-length")
		if !generatorFlagSet && sc.Generator != nil {
			opts.Generator = *sc.Generator
		}
		if !changed("parallel") && sc.Parallel {
			opts.Parallel = true
		}
		if !changed("trace") && sc.Trace != "" {
			opts.TraceLevel = trace.TraceLevel(sc.Trace)
		}
	}

	if !framesSet {
		return opts, fmt.Errorf("%w: --frames is required", sim.ErrInvalidFrameCount)
	}
	algs, err := sim.ParseAlgorithms(names)
	if err != nil {
		return opts, err
	}
	opts.Algorithms = algs

	if err := opts.Generator.Validate(); err != nil {
		return opts, err
	}
	if !trace.IsValidTraceLevel(string(opts.TraceLevel)) {
		return opts, fmt.Errorf("unknown trace level %q", opts.TraceLevel)
	}
	if opts.TraceOut != "" {
		if !trace.ValidFormats[opts.TraceFormat] {
			return opts, fmt.Errorf("unknown trace format %q", opts.TraceFormat)
		}
		if !trace.ValidCompressions[opts.TraceCompression] {
			return opts, fmt.Errorf("unknown trace compression %q", opts.TraceCompression)
		}
		// exporting implies recording
		opts.TraceLevel = trace.TraceLevelSteps
	}
	if !validOutputFormats[opts.Output] {
		return opts, fmt.Errorf("unknown output format %q", opts.Output)
	}
	return opts, nil
}

// executeRun runs one simulation and writes the report to out.
func executeRun(opts runOptions, out io.Writer) error {
	s := sim.NewSimulator(sim.NewSeededReferenceGenerator(opts.Seed, opts.Generator))
	s.Parallel = opts.Parallel
	s.TraceConfig = trace.TraceConfig{Level: opts.TraceLevel}

	var (
		result *sim.Result
		err    error
	)
	if opts.Pages != nil {
		result, err = s.Run(opts.Pages, opts.Frames, opts.Algorithms...)
	} else {
		result, err = s.RunText(opts.Reference, opts.Frames, opts.Strict, opts.Algorithms...)
	}
	if err != nil {
		return err
	}

	if err := writeReport(out, result, opts.Output, opts.RevealDelay); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if opts.TraceOut != "" {
		if err := exportTrace(opts.TraceOut, result.Trace, opts.TraceFormat, opts.TraceCompression); err != nil {
			return err
		}
		logrus.Infof("Trace written to %s", opts.TraceOut)
	}
	return nil
}

func exportTrace(path string, st *trace.SimulationTrace, format trace.Format, compression trace.Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := trace.Export(f, st, format, compression); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addGeneratorFlags registers the reference-string generator flags on cmd.
func addGeneratorFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&minLength, "min-length", sim.DefaultMinLength, "Shortest generated reference string")
	cmd.Flags().IntVar(&maxLength, "max-length", sim.DefaultMaxLength, "Longest generated reference string")
	cmd.Flags().IntVar(&pageRange, "page-range", sim.DefaultPageRange, "Generated page numbers fall in [0, page-range)")
	cmd.Flags().IntVar(&fixedLength, "fixed-length", 0, "Generate exactly this many pages (overrides min/max length)")
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "Seed for random reference-string generation")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVar(&framesText, "frames", "", "Number of page frames (positive integer)")
	runCmd.Flags().StringVar(&referenceText, "refs", "", "Comma-separated reference string (empty generates one)")
	runCmd.Flags().StringSliceVar(&algorithmNames, "algorithms", []string{"all"}, "Engines to run: fifo, lru, opt, or all")
	runCmd.Flags().BoolVar(&strictParse, "strict", false, "Fail on a reference string with no valid pages instead of generating one")
	runCmd.Flags().BoolVar(&parallel, "parallel", false, "Run the selected engines concurrently")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trace level (none, steps)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Export the step trace to this file")
	runCmd.Flags().StringVar(&traceFormat, "trace-format", string(trace.FormatJSON), "Trace export format (json, yaml, msgpack)")
	runCmd.Flags().StringVar(&traceCompression, "trace-compression", string(trace.CompressionNone), "Trace export compression (none, lz4, snappy)")
	runCmd.Flags().StringVar(&outputFormat, "output", "text", "Report format (text, json, yaml)")
	runCmd.Flags().DurationVar(&revealDelay, "reveal-delay", 0, "Delay between report lines in text output, e.g. 500ms")
	runCmd.Flags().StringVar(&scenarioPath, "config", "", "YAML scenario file; explicit flags take precedence")
	addGeneratorFlags(runCmd)

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sweepCmd)
}
