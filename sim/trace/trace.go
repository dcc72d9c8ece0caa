package trace

// TraceLevel controls the verbosity of engine tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSteps captures every reference: hit/fault, victim, and frame snapshot.
	TraceLevelSteps TraceLevel = "steps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelSteps: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// Enabled reports whether the level records anything.
func (l TraceLevel) Enabled() bool {
	return l == TraceLevelSteps
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel `json:"level" yaml:"level"`
}

// EngineTrace is the step-by-step record of one engine over one reference string.
type EngineTrace struct {
	Algorithm string       `json:"algorithm" yaml:"algorithm"`
	Frames    int          `json:"frames" yaml:"frames"`
	Steps     []StepRecord `json:"steps" yaml:"steps"`
}

// NewEngineTrace creates an EngineTrace ready for recording.
func NewEngineTrace(algorithm string, frames int) *EngineTrace {
	return &EngineTrace{
		Algorithm: algorithm,
		Frames:    frames,
		Steps:     make([]StepRecord, 0),
	}
}

// Record appends a step. Safe to call on a nil receiver (no-op), so engines
// can record unconditionally.
func (et *EngineTrace) Record(record StepRecord) {
	if et == nil {
		return
	}
	et.Steps = append(et.Steps, record)
}

// Victims returns evicted pages in eviction order.
func (et *EngineTrace) Victims() []int {
	victims := make([]int, 0)
	if et == nil {
		return victims
	}
	for _, s := range et.Steps {
		if s.Evicted() {
			victims = append(victims, s.Victim)
		}
	}
	return victims
}

// SimulationTrace collects the engine traces of one simulation run.
type SimulationTrace struct {
	Config  TraceConfig    `json:"config" yaml:"config"`
	Pages   []int          `json:"pages" yaml:"pages"`
	Engines []*EngineTrace `json:"engines" yaml:"engines"`
}

// NewSimulationTrace creates a SimulationTrace for the given reference string.
func NewSimulationTrace(config TraceConfig, pages []int) *SimulationTrace {
	return &SimulationTrace{
		Config:  config,
		Pages:   pages,
		Engines: make([]*EngineTrace, 0),
	}
}

// AddEngine appends an engine trace. Not safe for concurrent use.
func (st *SimulationTrace) AddEngine(et *EngineTrace) {
	st.Engines = append(st.Engines, et)
}

// Engine returns the trace recorded for algorithm, or nil.
func (st *SimulationTrace) Engine(algorithm string) *EngineTrace {
	if st == nil {
		return nil
	}
	for _, et := range st.Engines {
		if et.Algorithm == algorithm {
			return et
		}
	}
	return nil
}
