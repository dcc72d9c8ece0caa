// Package trace provides per-reference decision recording for the replacement engines.
// This package has no dependencies on sim/; it stores pure data types.
package trace

const (
	// NoVictim marks a step that evicted nothing (hit, or fault into a free slot).
	NoVictim = -1
	// EmptySlot marks an unoccupied frame in a snapshot.
	EmptySlot = -1
)

// StepRecord captures one reference processed by an engine.
type StepRecord struct {
	Step   int   `json:"step" yaml:"step"`
	Page   int   `json:"page" yaml:"page"`
	Fault  bool  `json:"fault" yaml:"fault"`
	Victim int   `json:"victim" yaml:"victim"` // evicted page, NoVictim if none
	Slot   int   `json:"slot" yaml:"slot"`     // frame slot holding Page after the step
	Frames []int `json:"frames" yaml:"frames"` // slot snapshot after the step
}

// Evicted reports whether this step replaced a resident page.
func (r StepRecord) Evicted() bool {
	return r.Victim != NoVictim
}
