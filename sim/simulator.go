// sim/simulator.go
package sim

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/pagesim/sim/trace"
)

// Result is the read-only outcome of one simulation run.
type Result struct {
	Pages      []int                  // reference string every engine consumed
	Frames     int                    // frame count every engine used
	Generated  bool                   // true if Pages was synthesized rather than supplied
	Algorithms []Algorithm            // engines that ran, in display order
	Faults     map[Algorithm]int      // fault count per engine
	Trace      *trace.SimulationTrace // nil unless tracing is enabled
}

// FaultCount returns the fault count for a, and whether a ran.
func (r *Result) FaultCount(a Algorithm) (int, bool) {
	n, ok := r.Faults[a]
	return n, ok
}

// HitRatio returns the fraction of references that hit for a.
// Returns 0 for an empty reference string or an engine that did not run.
func (r *Result) HitRatio(a Algorithm) float64 {
	n, ok := r.Faults[a]
	if !ok || len(r.Pages) == 0 {
		return 0
	}
	return float64(len(r.Pages)-n) / float64(len(r.Pages))
}

// Simulator resolves a reference string and runs the selected engines against it.
type Simulator struct {
	Generator   *ReferenceGenerator // source for synthesized reference strings
	Parallel    bool                // run engines on separate goroutines
	TraceConfig trace.TraceConfig
}

// NewSimulator creates a Simulator that synthesizes reference strings from gen.
func NewSimulator(gen *ReferenceGenerator) *Simulator {
	return &Simulator{
		Generator:   gen,
		TraceConfig: trace.TraceConfig{Level: trace.TraceLevelNone},
	}
}

// ValidateFrameCount rejects zero and negative frame counts.
func ValidateFrameCount(frames int) error {
	if frames <= 0 {
		return fmt.Errorf("%w: must be a positive integer, got %d", ErrInvalidFrameCount, frames)
	}
	return nil
}

// ParseFrameCount converts a frame-count text field, rejecting non-numeric,
// zero, and negative values.
func ParseFrameCount(text string) (int, error) {
	frames, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidFrameCount, text)
	}
	if err := ValidateFrameCount(frames); err != nil {
		return 0, err
	}
	return frames, nil
}

// Run simulates algorithms over pages with the given frame count.
// A nil pages slice means "none supplied": a reference string is generated.
// An empty algorithm list runs every engine. pages is copied once; the copy
// is shared read-only by every engine and echoed in the Result.
func (s *Simulator) Run(pages []int, frames int, algorithms ...Algorithm) (*Result, error) {
	if err := ValidateFrameCount(frames); err != nil {
		return nil, err
	}
	if err := validateAlgorithms(algorithms); err != nil {
		return nil, err
	}
	generated := false
	if pages == nil {
		var err error
		if pages, err = s.generate(); err != nil {
			return nil, err
		}
		generated = true
	} else {
		pages = slices.Clone(pages)
	}
	return s.execute(pages, frames, generated, algorithms), nil
}

// RunText simulates algorithms over a comma-separated reference string.
//
// Fallback policy: if text is blank, or yields no valid page numbers
// (ErrInvalidInput), a generated reference string is substituted and the
// substitution is logged. With strict set, both cases fail with
// ErrInvalidInput instead. The frame count is validated first either way.
func (s *Simulator) RunText(text string, frames int, strict bool, algorithms ...Algorithm) (*Result, error) {
	if err := ValidateFrameCount(frames); err != nil {
		return nil, err
	}
	if err := validateAlgorithms(algorithms); err != nil {
		return nil, err
	}

	pages, err := ParseReferenceString(text)
	switch {
	case err == nil:
		return s.execute(pages, frames, false, algorithms), nil
	case strict || !errors.Is(err, ErrInvalidInput):
		return nil, err
	}

	if strings.TrimSpace(text) != "" {
		logrus.Warnf("reference string %q has no valid page numbers; substituting a generated one", text)
	}
	if pages, err = s.generate(); err != nil {
		return nil, err
	}
	return s.execute(pages, frames, true, algorithms), nil
}

func (s *Simulator) generate() ([]int, error) {
	if s.Generator == nil {
		return nil, fmt.Errorf("%w: no reference generator configured", ErrInvalidGeneratorConfig)
	}
	pages, err := s.Generator.Next()
	if err != nil {
		return nil, err
	}
	logrus.Debugf("generated reference string of %d pages: %v", len(pages), pages)
	return pages, nil
}

func (s *Simulator) execute(pages []int, frames int, generated bool, algorithms []Algorithm) *Result {
	algs := NormalizeAlgorithms(algorithms)
	faults := make([]int, len(algs))
	traces := make([]*trace.EngineTrace, len(algs))
	if s.TraceConfig.Level.Enabled() {
		for i, a := range algs {
			traces[i] = trace.NewEngineTrace(string(a), frames)
		}
	}

	startTime := time.Now()
	if s.Parallel && len(algs) > 1 {
		// Each goroutine writes only its own index; pages is shared read-only.
		var wg sync.WaitGroup
		for i, a := range algs {
			i, a := i, a
			wg.Add(1)
			go func() {
				defer wg.Done()
				faults[i] = engines[a](pages, frames, traces[i])
			}()
		}
		wg.Wait()
	} else {
		for i, a := range algs {
			faults[i] = engines[a](pages, frames, traces[i])
		}
	}

	result := &Result{
		Pages:      pages,
		Frames:     frames,
		Generated:  generated,
		Algorithms: algs,
		Faults:     make(map[Algorithm]int, len(algs)),
	}
	for i, a := range algs {
		result.Faults[a] = faults[i]
		logrus.Debugf("%s: %d faults over %d references with %d frames", a.DisplayName(), faults[i], len(pages), frames)
	}
	if s.TraceConfig.Level.Enabled() {
		result.Trace = trace.NewSimulationTrace(s.TraceConfig, pages)
		for _, et := range traces {
			result.Trace.AddEngine(et)
		}
	}
	logrus.Infof("simulated %d engines over %d references in %v", len(algs), len(pages), time.Since(startTime))
	return result
}

func validateAlgorithms(algorithms []Algorithm) error {
	for _, a := range algorithms {
		if _, ok := engines[a]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownAlgorithm, a)
		}
	}
	return nil
}

// RunSimulation runs algorithms over pages with a fresh Simulator. A nil pages
// slice is replaced by a reference string drawn with the default bounds from
// a time-seeded generator; use Simulator with a seeded generator for
// reproducible runs.
func RunSimulation(pages []int, frames int, algorithms ...Algorithm) (*Result, error) {
	gen := NewSeededReferenceGenerator(time.Now().UnixNano(), DefaultGeneratorConfig())
	return NewSimulator(gen).Run(pages, frames, algorithms...)
}
