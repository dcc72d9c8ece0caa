package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SweepConfig describes repeated randomized runs over several frame counts.
type SweepConfig struct {
	Seed        int64
	Trials      int             // reference strings to draw (must be > 0)
	FrameCounts []int           // each must be > 0
	Generator   GeneratorConfig // bounds for every drawn reference string
	Algorithms  []Algorithm     // empty = all
}

// SweepPoint aggregates fault counts of one engine at one frame count.
type SweepPoint struct {
	Frames    int
	Algorithm Algorithm
	Mean      float64
	StdDev    float64 // sample standard deviation; 0 for a single trial
	Min       int
	Max       int
}

// SweepResult is the outcome of RunSweep.
type SweepResult struct {
	Trials int
	Points []SweepPoint // ordered by frame count, then display order
	// BoundViolations counts (trial, frame count, engine) triples where OPT
	// faulted more than another engine. Always zero for a correct OPT.
	BoundViolations int
}

// Point returns the aggregate for (frames, a), if present.
func (r *SweepResult) Point(frames int, a Algorithm) (SweepPoint, bool) {
	for _, p := range r.Points {
		if p.Frames == frames && p.Algorithm == a {
			return p, true
		}
	}
	return SweepPoint{}, false
}

// Validate checks that the sweep can run.
func (c SweepConfig) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be > 0, got %d", c.Trials)
	}
	if len(c.FrameCounts) == 0 {
		return fmt.Errorf("%w: at least one frame count required", ErrInvalidFrameCount)
	}
	for _, f := range c.FrameCounts {
		if err := ValidateFrameCount(f); err != nil {
			return err
		}
	}
	if err := validateAlgorithms(c.Algorithms); err != nil {
		return err
	}
	return c.Generator.Validate()
}

// RunSweep draws cfg.Trials reference strings and runs every selected engine
// at every frame count against each of them. Deterministic given cfg.
func RunSweep(cfg SweepConfig) (*SweepResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep config: %w", err)
	}
	algs := NormalizeAlgorithms(cfg.Algorithms)
	gen := NewReferenceGenerator(
		NewPartitionedRNG(NewSimulationKey(cfg.Seed)).ForSubsystem(SubsystemSweep),
		cfg.Generator,
	)
	runner := NewSimulator(gen)

	// samples[frameIdx][algIdx][trial]
	samples := make([][][]float64, len(cfg.FrameCounts))
	for fi := range samples {
		samples[fi] = make([][]float64, len(algs))
		for ai := range algs {
			samples[fi][ai] = make([]float64, 0, cfg.Trials)
		}
	}

	result := &SweepResult{Trials: cfg.Trials}
	for t := 0; t < cfg.Trials; t++ {
		pages, err := gen.Next()
		if err != nil {
			return nil, err
		}
		for fi, frames := range cfg.FrameCounts {
			res, err := runner.Run(pages, frames, algs...)
			if err != nil {
				return nil, err
			}
			for ai, a := range algs {
				samples[fi][ai] = append(samples[fi][ai], float64(res.Faults[a]))
			}
			result.BoundViolations += boundViolations(res)
		}
	}

	for fi, frames := range cfg.FrameCounts {
		for ai, a := range algs {
			xs := samples[fi][ai]
			mean, std := stat.MeanStdDev(xs, nil)
			if len(xs) < 2 {
				std = 0
			}
			result.Points = append(result.Points, SweepPoint{
				Frames:    frames,
				Algorithm: a,
				Mean:      mean,
				StdDev:    std,
				Min:       int(floats.Min(xs)),
				Max:       int(floats.Max(xs)),
			})
		}
	}
	if result.BoundViolations > 0 {
		logrus.Errorf("sweep: OPT exceeded another engine %d times", result.BoundViolations)
	}
	return result, nil
}

func boundViolations(res *Result) int {
	opt, ok := res.Faults[AlgorithmOptimal]
	if !ok {
		return 0
	}
	n := 0
	for a, f := range res.Faults {
		if a != AlgorithmOptimal && f < opt {
			n++
		}
	}
	return n
}
