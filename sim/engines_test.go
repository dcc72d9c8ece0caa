package sim

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/pagesim/sim/internal/testutil"
	"github.com/inference-sim/pagesim/sim/trace"
)

// === Golden dataset ===

func TestEngines_GoldenDataset(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Tests {
		for _, a := range AllAlgorithms {
			t.Run(fmt.Sprintf("%s/%s", tc.Name, a), func(t *testing.T) {
				want := tc.Engine(string(a))
				et := trace.NewEngineTrace(string(a), tc.Frames)

				got := engines[a](tc.Pages, tc.Frames, et)

				assert.Equal(t, want.Faults, got, "fault count")
				assert.Equal(t, want.Victims, et.Victims(), "eviction order")
			})
		}
	}
}

func TestEngines_TextbookScenario(t *testing.T) {
	// GIVEN the 13-reference textbook string with 4 frames
	pages := []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2}

	// THEN the fault counts match the reference trace
	assert.Equal(t, 7, FIFO(pages, 4))
	assert.Equal(t, 6, LRU(pages, 4))
	assert.Equal(t, 6, Optimal(pages, 4))
}

func TestFIFO_CyclicChurn(t *testing.T) {
	// 1,2,3 fill; 4 evicts 1; 1 evicts 2; 2 evicts 3; 5 evicts 4
	pages := []int{1, 2, 3, 4, 1, 2, 5}
	assert.Equal(t, 7, FIFO(pages, 3))
}

// === Per-engine behavior ===

func TestFIFO_EvictsEarliestArrival_SlotSnapshots(t *testing.T) {
	et := trace.NewEngineTrace("fifo", 3)
	faults := runFIFO([]int{1, 2, 3, 1, 4, 5}, 3, et)

	require.Equal(t, 5, faults)
	require.Len(t, et.Steps, 6)

	// hit on 1 does not change arrival order
	assert.False(t, et.Steps[3].Fault)
	assert.Equal(t, trace.NoVictim, et.Steps[3].Victim)

	// 4 replaces 1 (oldest) in slot 0, 5 replaces 2 in slot 1
	assert.Equal(t, 1, et.Steps[4].Victim)
	assert.Equal(t, 0, et.Steps[4].Slot)
	assert.Equal(t, []int{4, 2, 3}, et.Steps[4].Frames)
	assert.Equal(t, 2, et.Steps[5].Victim)
	assert.Equal(t, 1, et.Steps[5].Slot)
	assert.Equal(t, []int{4, 5, 3}, et.Steps[5].Frames)
}

func TestLRU_HitRepositionsPage(t *testing.T) {
	// GIVEN a string where page 1 is re-referenced between misses
	pages := []int{1, 2, 1, 3, 1, 4}

	// WHEN LRU runs with 2 frames
	et := trace.NewEngineTrace("lru", 2)
	faults := runLRU(pages, 2, et)

	// THEN the hits on 1 keep it resident: 3 evicts 2, 4 evicts 3
	assert.Equal(t, 4, faults)
	assert.Equal(t, []int{2, 3}, et.Victims())

	// FIFO, which ignores hits, evicts 1 and faults more
	assert.Equal(t, 5, FIFO(pages, 2))
}

func TestLRU_PartialFillThenEvict(t *testing.T) {
	et := trace.NewEngineTrace("lru", 3)
	runLRU([]int{1, 2, 1, 3, 4}, 3, et)

	// recency before 4: 2, 1, 3 → 2 is evicted from slot 1
	last := et.Steps[4]
	assert.Equal(t, 2, last.Victim)
	assert.Equal(t, 1, last.Slot)
	assert.Equal(t, []int{1, 4, 3}, last.Frames)
}

func TestOptimal_NeverReusedShortCircuit(t *testing.T) {
	// GIVEN residents 1,2,3 and a future that only contains 5 and 3
	pages := []int{1, 2, 3, 4, 5, 3}

	et := trace.NewEngineTrace("opt", 3)
	faults := runOptimal(pages, 3, et)

	// THEN slot 0 is chosen both times: it is the first slot whose page is
	// never referenced again, even though slot 1 (page 2) also qualifies
	assert.Equal(t, 5, faults)
	assert.Equal(t, []int{1, 4}, et.Victims())
	assert.Equal(t, []int{4, 2, 3}, et.Steps[3].Frames)
	assert.Equal(t, []int{5, 2, 3}, et.Steps[4].Frames)
	assert.False(t, et.Steps[5].Fault)
	assert.Equal(t, 2, et.Steps[5].Slot)
}

func TestOptimal_NeverReusedBeatsFarthest(t *testing.T) {
	// slot 0 (page 1) is reused far ahead, slot 2 (page 3) is never reused.
	// The never-reused page wins even though it is scanned later.
	pages := []int{1, 2, 3, 4, 2, 1}
	et := trace.NewEngineTrace("opt", 3)
	runOptimal(pages, 3, et)

	assert.Equal(t, []int{3}, et.Victims())
	assert.Equal(t, []int{1, 2, 4}, et.Steps[3].Frames)
}

func TestOptimal_FarthestNextUse(t *testing.T) {
	// all residents reappear; page 1 is needed last
	pages := []int{1, 2, 3, 4, 3, 2, 1}
	et := trace.NewEngineTrace("opt", 3)
	faults := runOptimal(pages, 3, et)

	// 4 replaces 1; when 1 returns, 4 is never used again and goes
	assert.Equal(t, 5, faults)
	assert.Equal(t, []int{1, 4}, et.Victims())
	assert.Equal(t, []int{4, 2, 3}, et.Steps[3].Frames)
	assert.Equal(t, []int{1, 2, 3}, et.Steps[6].Frames)
}

func TestNextUses(t *testing.T) {
	got := nextUses([]int{1, 2, 1, 3, 2})
	assert.Equal(t, []int{2, 4, 5, 5, 5}, got)
	assert.Empty(t, nextUses(nil))
}

func TestFarthestSlot_TiesKeepFirstScanned(t *testing.T) {
	assert.Equal(t, 0, farthestSlot([]int{9, 9, 3}, 10))
	assert.Equal(t, 1, farthestSlot([]int{4, 10, 10}, 10))
	assert.Equal(t, 2, farthestSlot([]int{4, 5, 8}, 10))
}

// === Edge cases ===

func TestEngines_EmptyReferenceString_ZeroFaults(t *testing.T) {
	for _, a := range AllAlgorithms {
		assert.Equal(t, 0, engines[a](nil, 3, nil), a)
		assert.Equal(t, 0, engines[a]([]int{}, 3, nil), a)
	}
}

func TestEngines_ZeroFrames_EveryReferenceFaults(t *testing.T) {
	pages := []int{1, 1, 2}
	for _, a := range AllAlgorithms {
		et := trace.NewEngineTrace(string(a), 0)
		assert.Equal(t, 3, engines[a](pages, 0, et), a)
		assert.Empty(t, et.Victims(), a)
	}
}

func TestEngines_SingleFrame_FaultsOnEveryChange(t *testing.T) {
	pages := []int{1, 1, 2, 2, 1, 3}
	for _, a := range AllAlgorithms {
		assert.Equal(t, 4, engines[a](pages, 1, nil), a)
	}
}

func TestEngines_DoNotMutateInput(t *testing.T) {
	pages := []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2}
	orig := slices.Clone(pages)
	for _, a := range AllAlgorithms {
		engines[a](pages, 3, trace.NewEngineTrace(string(a), 3))
		require.Equal(t, orig, pages, "%s modified the reference string", a)
	}
}

func TestEngines_TraceDoesNotChangeFaults(t *testing.T) {
	pages := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}
	for _, a := range AllAlgorithms {
		et := trace.NewEngineTrace(string(a), 3)
		assert.Equal(t, engines[a](pages, 3, nil), engines[a](pages, 3, et), a)
		assert.Equal(t, engines[a](pages, 3, nil), trace.Summarize(et).Faults, a)
	}
}

// === Properties over random reference strings ===

func TestEngines_Properties_RandomStrings(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 300; trial++ {
		pages, err := GenerateReferenceString(rng, 1, 40, 1+rng.Intn(12))
		require.NoError(t, err)
		distinct := countDistinct(pages)

		for frames := 1; frames <= 8; frames++ {
			fifo, lru, opt := FIFO(pages, frames), LRU(pages, frames), Optimal(pages, frames)

			// OPT is a lower bound
			if opt > fifo || opt > lru {
				t.Fatalf("pages=%v frames=%d: OPT=%d exceeds FIFO=%d or LRU=%d", pages, frames, opt, fifo, lru)
			}
			for _, f := range []int{fifo, lru, opt} {
				// every first reference is a compulsory miss; no reference faults twice
				if f < distinct || f > len(pages) {
					t.Fatalf("pages=%v frames=%d: faults %d outside [%d, %d]", pages, frames, f, distinct, len(pages))
				}
				// enough frames: compulsory misses only
				if frames >= distinct && f != distinct {
					t.Fatalf("pages=%v frames=%d: faults %d, want %d distinct", pages, frames, f, distinct)
				}
			}
		}
	}
}

func TestEngines_MatchListOracle_RandomStrings(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 300; trial++ {
		pages, err := GenerateReferenceString(rng, 1, 30, 1+rng.Intn(8))
		require.NoError(t, err)
		for frames := 1; frames <= 5; frames++ {
			if got, want := FIFO(pages, frames), oracleFIFO(pages, frames); got != want {
				t.Fatalf("FIFO(%v, %d) = %d, oracle %d", pages, frames, got, want)
			}
			if got, want := LRU(pages, frames), oracleLRU(pages, frames); got != want {
				t.Fatalf("LRU(%v, %d) = %d, oracle %d", pages, frames, got, want)
			}
			if got, want := Optimal(pages, frames), oracleOptimal(pages, frames); got != want {
				t.Fatalf("Optimal(%v, %d) = %d, oracle %d", pages, frames, got, want)
			}
		}
	}
}

func TestEngines_FaultCountMonotonic(t *testing.T) {
	pages := []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1}
	for _, a := range AllAlgorithms {
		prev := 0
		for n := 0; n <= len(pages); n++ {
			f := engines[a](pages[:n], 3, nil)
			if f < prev {
				t.Fatalf("%s: faults decreased from %d to %d at prefix %d", a, prev, f, n)
			}
			prev = f
		}
	}
}

func countDistinct(pages []int) int {
	seen := make(map[int]bool)
	for _, p := range pages {
		seen[p] = true
	}
	return len(seen)
}

// === Linear-scan oracles ===
// Straightforward list-based versions used to cross-check the slot engines.

func oracleFIFO(pages []int, frames int) int {
	var memory []int
	faults := 0
	for _, p := range pages {
		if slices.Contains(memory, p) {
			continue
		}
		if len(memory) >= frames {
			memory = memory[1:]
		}
		memory = append(memory, p)
		faults++
	}
	return faults
}

func oracleLRU(pages []int, frames int) int {
	var memory, recent []int
	faults := 0
	for _, p := range pages {
		if !slices.Contains(memory, p) {
			if len(memory) >= frames {
				oldest := recent[0]
				recent = recent[1:]
				memory = slices.DeleteFunc(memory, func(x int) bool { return x == oldest })
			}
			memory = append(memory, p)
			faults++
		} else {
			recent = slices.DeleteFunc(recent, func(x int) bool { return x == p })
		}
		recent = append(recent, p)
	}
	return faults
}

func oracleOptimal(pages []int, frames int) int {
	var memory []int
	faults := 0
	for i, p := range pages {
		if slices.Contains(memory, p) {
			continue
		}
		faults++
		if len(memory) < frames {
			memory = append(memory, p)
			continue
		}
		future := pages[i+1:]
		replace, farthest := -1, -1
		for j, m := range memory {
			idx := slices.Index(future, m)
			if idx < 0 {
				replace = j
				break
			}
			if idx > farthest {
				farthest = idx
				replace = j
			}
		}
		memory[replace] = p
	}
	return faults
}
