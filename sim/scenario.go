package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/pagesim/sim/trace"
)

// Scenario holds one simulation setup, loadable from a YAML file.
// Nil pointer fields mean "not set in YAML" and do not override CLI defaults.
type Scenario struct {
	Frames     int              `yaml:"frames"`
	Reference  string           `yaml:"reference"` // comma-separated page numbers; empty generates
	Pages      []int            `yaml:"pages"`     // alternative to reference
	Strict     bool             `yaml:"strict"`    // fail instead of substituting a generated string
	Algorithms []string         `yaml:"algorithms"`
	Seed       *int64           `yaml:"seed"`
	Generator  *GeneratorConfig `yaml:"generator"`
	Parallel   bool             `yaml:"parallel"`
	Trace      string           `yaml:"trace"`
}

// LoadScenario reads and parses a YAML scenario file.
// Unknown keys are rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &sc, nil
}

// Validate checks value ranges and names in the scenario.
// Frames of zero means "not set"; the caller supplies it.
func (sc *Scenario) Validate() error {
	if sc.Frames < 0 {
		return fmt.Errorf("%w: must be a positive integer, got %d", ErrInvalidFrameCount, sc.Frames)
	}
	if sc.Reference != "" && len(sc.Pages) > 0 {
		return fmt.Errorf("reference and pages are mutually exclusive")
	}
	for _, p := range sc.Pages {
		if p < 0 {
			return fmt.Errorf("%w: negative page %d", ErrInvalidInput, p)
		}
	}
	if _, err := ParseAlgorithms(sc.Algorithms); err != nil {
		return err
	}
	if sc.Generator != nil {
		if err := sc.Generator.Validate(); err != nil {
			return err
		}
	}
	if !trace.IsValidTraceLevel(sc.Trace) {
		return fmt.Errorf("unknown trace level %q", sc.Trace)
	}
	return nil
}
