package sim

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/inference-sim/pagesim/sim/trace"
)

// LRU returns the number of page faults incurred by least-recently-used
// replacement over pages with the given number of frames.
// pages is read, never modified.
func LRU(pages []int, frames int) int {
	return runLRU(pages, frames, nil)
}

// runLRU keeps a recency list (oldest first) alongside the frame table.
// Every reference, hit or miss, moves the page to the most-recent end;
// a miss at capacity evicts the oldest entry.
func runLRU(pages []int, frames int, rec *trace.EngineTrace) int {
	if frames <= 0 {
		return missAll(pages, rec)
	}
	// page → slot, ordered by recency
	recency, err := lru.New(frames)
	if err != nil {
		panic(err)
	}
	ft := newFrameTable(frames)
	faults := 0
	for i, page := range pages {
		victim := trace.NoVictim
		slot, hit := ft.slotOf(page)
		if hit {
			recency.Get(page)
		} else {
			faults++
			if ft.full() {
				_, oldestSlot, _ := recency.RemoveOldest()
				slot = oldestSlot.(int)
				victim = ft.replace(slot, page)
			} else {
				slot = ft.insert(page)
			}
			recency.Add(page, slot)
		}
		ft.record(rec, i, page, !hit, victim, slot)
	}
	return faults
}
