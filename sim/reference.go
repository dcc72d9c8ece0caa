package sim

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// Default reference-string generation bounds.
const (
	DefaultMinLength = 7
	DefaultMaxLength = 20
	DefaultPageRange = 10
)

// GeneratorConfig bounds reference-string synthesis.
// Length is drawn uniformly from [MinLength, MaxLength] (inclusive); page IDs
// are drawn uniformly from [0, PageRange).
type GeneratorConfig struct {
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`
	PageRange int `yaml:"page_range"`
}

// DefaultGeneratorConfig returns the ranged-length defaults (7..20 pages over 0..9).
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
		PageRange: DefaultPageRange,
	}
}

// FixedLengthConfig returns a config that always produces exactly length pages.
func FixedLengthConfig(length, pageRange int) GeneratorConfig {
	return GeneratorConfig{MinLength: length, MaxLength: length, PageRange: pageRange}
}

// IsFixedLength reports whether every generated sequence has the same length.
func (c GeneratorConfig) IsFixedLength() bool {
	return c.MinLength == c.MaxLength
}

// Validate checks that the bounds describe a non-empty sampling space.
func (c GeneratorConfig) Validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("%w: min_length must be >= 1, got %d", ErrInvalidGeneratorConfig, c.MinLength)
	}
	if c.MaxLength < c.MinLength {
		return fmt.Errorf("%w: max_length (%d) must be >= min_length (%d)", ErrInvalidGeneratorConfig, c.MaxLength, c.MinLength)
	}
	if c.PageRange < 1 {
		return fmt.Errorf("%w: page_range must be >= 1, got %d", ErrInvalidGeneratorConfig, c.PageRange)
	}
	return nil
}

// GenerateReferenceString draws a reference string from rng.
// Deterministic given the same rng state and bounds.
func GenerateReferenceString(rng *rand.Rand, minLength, maxLength, pageRange int) ([]int, error) {
	cfg := GeneratorConfig{MinLength: minLength, MaxLength: maxLength, PageRange: pageRange}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	length := cfg.MinLength + rng.Intn(cfg.MaxLength-cfg.MinLength+1)
	pages := make([]int, length)
	for i := range pages {
		pages[i] = rng.Intn(cfg.PageRange)
	}
	return pages, nil
}

// ReferenceGenerator owns the only random source used by the simulator.
// Safe for concurrent use: draws are serialized on an internal mutex.
type ReferenceGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
	cfg GeneratorConfig
}

// NewReferenceGenerator wraps rng with the given bounds. rng must be non-nil.
func NewReferenceGenerator(rng *rand.Rand, cfg GeneratorConfig) *ReferenceGenerator {
	return &ReferenceGenerator{rng: rng, cfg: cfg}
}

// NewSeededReferenceGenerator derives the reference subsystem RNG from seed.
func NewSeededReferenceGenerator(seed int64, cfg GeneratorConfig) *ReferenceGenerator {
	rng := NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemReference)
	return NewReferenceGenerator(rng, cfg)
}

// Config returns the generator's default bounds.
func (g *ReferenceGenerator) Config() GeneratorConfig {
	return g.cfg
}

// Next generates a reference string using the generator's default bounds.
func (g *ReferenceGenerator) Next() ([]int, error) {
	return g.Generate(g.cfg)
}

// Generate draws a reference string within cfg.
func (g *ReferenceGenerator) Generate(cfg GeneratorConfig) ([]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GenerateReferenceString(g.rng, cfg.MinLength, cfg.MaxLength, cfg.PageRange)
}

// GenerateFixed draws exactly length pages from [0, pageRange).
func (g *ReferenceGenerator) GenerateFixed(length, pageRange int) ([]int, error) {
	return g.Generate(FixedLengthConfig(length, pageRange))
}

// ParseReferenceString parses comma-separated page numbers.
// Segments are trimmed; any segment that is not a plain non-negative decimal
// integer (signs, letters, overflow) is dropped. Returns ErrInvalidInput if
// nothing survives.
func ParseReferenceString(text string) ([]int, error) {
	var pages []int
	for _, segment := range strings.Split(text, ",") {
		segment = strings.TrimSpace(segment)
		if !isDigits(segment) {
			continue
		}
		page, err := strconv.Atoi(segment)
		if err != nil {
			continue
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no page numbers in %q", ErrInvalidInput, text)
	}
	return pages, nil
}

// FormatReferenceString renders pages in the comma-separated form ParseReferenceString accepts.
func FormatReferenceString(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
