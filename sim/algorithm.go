package sim

import (
	"fmt"
	"strings"

	"github.com/inference-sim/pagesim/sim/trace"
)

// Algorithm names a page-replacement policy.
type Algorithm string

const (
	AlgorithmFIFO    Algorithm = "fifo"
	AlgorithmLRU     Algorithm = "lru"
	AlgorithmOptimal Algorithm = "opt"
)

// AllAlgorithms lists every policy in display order.
var AllAlgorithms = []Algorithm{AlgorithmFIFO, AlgorithmLRU, AlgorithmOptimal}

// ValidAlgorithms maps accepted user-facing names (lower case) to policies.
var ValidAlgorithms = map[string]Algorithm{
	"fifo":    AlgorithmFIFO,
	"lru":     AlgorithmLRU,
	"opt":     AlgorithmOptimal,
	"optimal": AlgorithmOptimal,
	"belady":  AlgorithmOptimal,
}

// DisplayName returns the upper-case label used in reports.
func (a Algorithm) DisplayName() string {
	return strings.ToUpper(string(a))
}

// engineFunc computes the fault count of one policy. rec may be nil.
type engineFunc func(pages []int, frames int, rec *trace.EngineTrace) int

var engines = map[Algorithm]engineFunc{
	AlgorithmFIFO:    runFIFO,
	AlgorithmLRU:     runLRU,
	AlgorithmOptimal: runOptimal,
}

// ParseAlgorithms resolves user-supplied names (case-insensitive, trimmed).
// An empty list selects every policy. Duplicates collapse; the result is in
// display order.
func ParseAlgorithms(names []string) ([]Algorithm, error) {
	algs := make([]Algorithm, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if key == "all" {
			algs = append(algs, AllAlgorithms...)
			continue
		}
		a, ok := ValidAlgorithms[key]
		if !ok {
			return nil, fmt.Errorf("%w %q (valid: fifo, lru, opt)", ErrUnknownAlgorithm, name)
		}
		algs = append(algs, a)
	}
	return NormalizeAlgorithms(algs), nil
}

// NormalizeAlgorithms dedupes algs and orders them for display.
// Empty input selects every policy.
func NormalizeAlgorithms(algs []Algorithm) []Algorithm {
	if len(algs) == 0 {
		return append([]Algorithm(nil), AllAlgorithms...)
	}
	selected := make(map[Algorithm]bool, len(algs))
	for _, a := range algs {
		selected[a] = true
	}
	out := make([]Algorithm, 0, len(selected))
	for _, a := range AllAlgorithms {
		if selected[a] {
			out = append(out, a)
		}
	}
	return out
}

// Faults runs a single policy by name.
func Faults(a Algorithm, pages []int, frames int) (int, error) {
	engine, ok := engines[a]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownAlgorithm, a)
	}
	return engine(pages, frames, nil), nil
}
