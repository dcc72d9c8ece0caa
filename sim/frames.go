package sim

import "github.com/inference-sim/pagesim/sim/trace"

// frameTable is the resident set of one engine run: fixed slots indexed
// 0..capacity-1 plus a page → slot index for O(1) membership.
// Slots fill in ascending order and are only ever vacated by replacement,
// so the occupied slots are always [0, used).
type frameTable struct {
	slots []int       // page per slot, trace.EmptySlot when free
	index map[int]int // page → slot
	used  int
}

func newFrameTable(capacity int) *frameTable {
	slots := make([]int, capacity)
	for i := range slots {
		slots[i] = trace.EmptySlot
	}
	return &frameTable{
		slots: slots,
		index: make(map[int]int, capacity),
	}
}

// slotOf returns the slot holding page, if resident.
func (ft *frameTable) slotOf(page int) (int, bool) {
	slot, ok := ft.index[page]
	return slot, ok
}

func (ft *frameTable) full() bool {
	return ft.used >= len(ft.slots)
}

// insert places page in the lowest free slot. Caller guarantees !full().
func (ft *frameTable) insert(page int) int {
	slot := ft.used
	ft.slots[slot] = page
	ft.index[page] = slot
	ft.used++
	return slot
}

// replace evicts the page in slot and installs page there. Returns the victim.
func (ft *frameTable) replace(slot, page int) int {
	victim := ft.slots[slot]
	delete(ft.index, victim)
	ft.slots[slot] = page
	ft.index[page] = slot
	return victim
}

func (ft *frameTable) snapshot() []int {
	out := make([]int, len(ft.slots))
	copy(out, ft.slots)
	return out
}

// record appends a step to rec. Skips the snapshot copy when tracing is off.
func (ft *frameTable) record(rec *trace.EngineTrace, step, page int, fault bool, victim, slot int) {
	if rec == nil {
		return
	}
	rec.Record(trace.StepRecord{
		Step:   step,
		Page:   page,
		Fault:  fault,
		Victim: victim,
		Slot:   slot,
		Frames: ft.snapshot(),
	})
}

// missAll handles a memory with no frames: every reference faults and nothing
// becomes resident. The orchestrator rejects this case; the engines stay total.
func missAll(pages []int, rec *trace.EngineTrace) int {
	for i, page := range pages {
		rec.Record(trace.StepRecord{
			Step:   i,
			Page:   page,
			Fault:  true,
			Victim: trace.NoVictim,
			Slot:   trace.EmptySlot,
			Frames: []int{},
		})
	}
	return len(pages)
}
