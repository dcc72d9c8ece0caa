package trace

// TraceSummary aggregates statistics from an EngineTrace.
type TraceSummary struct {
	Algorithm          string
	References         int
	Faults             int
	Hits               int
	Evictions          int
	CompulsoryMisses   int         // faults on a page's first-ever reference
	HitRatio           float64     // Hits / References; 0 for an empty trace
	VictimDistribution map[int]int // page → times evicted
}

// Summarize computes aggregate statistics from an EngineTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(et *EngineTrace) *TraceSummary {
	summary := &TraceSummary{
		VictimDistribution: make(map[int]int),
	}
	if et == nil {
		return summary
	}
	summary.Algorithm = et.Algorithm
	summary.References = len(et.Steps)

	seen := make(map[int]bool)
	for _, s := range et.Steps {
		if s.Fault {
			summary.Faults++
			if !seen[s.Page] {
				summary.CompulsoryMisses++
			}
		} else {
			summary.Hits++
		}
		if s.Evicted() {
			summary.Evictions++
			summary.VictimDistribution[s.Victim]++
		}
		seen[s.Page] = true
	}

	if summary.References > 0 {
		summary.HitRatio = float64(summary.Hits) / float64(summary.References)
	}
	return summary
}
