package sim

import "github.com/inference-sim/pagesim/sim/trace"

// Optimal returns the number of page faults incurred by Belady's optimal
// replacement over pages with the given number of frames. No policy can
// fault less on the same input, so FIFO and LRU are bounded below by it.
// pages is read, never modified.
func Optimal(pages []int, frames int) int {
	return runOptimal(pages, frames, nil)
}

// runOptimal evicts the resident whose next reference lies farthest ahead.
//
// Victim selection scans slots in index order:
//   - the first resident never referenced again is evicted immediately,
//     even if a later slot is also never referenced again;
//   - otherwise the first slot reaching the strictly greatest next-use
//     position is evicted.
//
// The new page takes the victim's slot.
func runOptimal(pages []int, frames int, rec *trace.EngineTrace) int {
	if frames <= 0 {
		return missAll(pages, rec)
	}
	next := nextUses(pages)
	never := len(pages)
	ft := newFrameTable(frames)
	slotNext := make([]int, frames) // next reference position of each slot's page
	faults := 0
	for i, page := range pages {
		victim := trace.NoVictim
		slot, hit := ft.slotOf(page)
		if !hit {
			faults++
			if ft.full() {
				slot = farthestSlot(slotNext, never)
				victim = ft.replace(slot, page)
			} else {
				slot = ft.insert(page)
			}
		}
		slotNext[slot] = next[i]
		ft.record(rec, i, page, !hit, victim, slot)
	}
	return faults
}

// nextUses returns, for each position i, the position of the next reference
// to pages[i] after i, or len(pages) if there is none.
//
// A resident page's next use after position i equals nextUses at its last
// reference: any occurrence in between would itself have been a reference.
func nextUses(pages []int) []int {
	next := make([]int, len(pages))
	seen := make(map[int]int)
	for i := len(pages) - 1; i >= 0; i-- {
		if j, ok := seen[pages[i]]; ok {
			next[i] = j
		} else {
			next[i] = len(pages)
		}
		seen[pages[i]] = i
	}
	return next
}

func farthestSlot(slotNext []int, never int) int {
	victim, farthest := 0, -1
	for slot, n := range slotNext {
		if n == never {
			return slot
		}
		if n > farthest {
			farthest = n
			victim = slot
		}
	}
	return victim
}
