// Package testutil provides shared test infrastructure for the page-replacement
// simulator. It holds the golden dataset types used across sim/ test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one reference string with pinned per-engine outcomes.
type GoldenTestCase struct {
	Name   string       `json:"name"`
	Pages  []int        `json:"pages"`
	Frames int          `json:"frames"`
	FIFO   GoldenEngine `json:"fifo"`
	LRU    GoldenEngine `json:"lru"`
	OPT    GoldenEngine `json:"opt"`
}

// GoldenEngine pins an engine's fault count and eviction order.
type GoldenEngine struct {
	Faults  int   `json:"faults"`
	Victims []int `json:"victims"`
}

// Engine returns the pinned outcome for an algorithm name ("fifo", "lru", "opt").
func (tc GoldenTestCase) Engine(name string) GoldenEngine {
	switch name {
	case "fifo":
		return tc.FIFO
	case "lru":
		return tc.LRU
	default:
		return tc.OPT
	}
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("golden dataset is empty")
	}
	return &dataset
}
