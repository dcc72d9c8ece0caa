package sim

import "github.com/inference-sim/pagesim/sim/trace"

// FIFO returns the number of page faults incurred by first-in-first-out
// replacement over pages with the given number of frames.
// pages is read, never modified.
func FIFO(pages []int, frames int) int {
	return runFIFO(pages, frames, nil)
}

// runFIFO evicts the earliest-arrived resident on a miss at capacity.
// New pages take the victim's slot, so once every slot is filled the arrival
// order over slots is round-robin and the oldest resident is always at hand.
func runFIFO(pages []int, frames int, rec *trace.EngineTrace) int {
	if frames <= 0 {
		return missAll(pages, rec)
	}
	ft := newFrameTable(frames)
	hand := 0
	faults := 0
	for i, page := range pages {
		victim := trace.NoVictim
		slot, hit := ft.slotOf(page)
		if !hit {
			faults++
			if ft.full() {
				slot = hand
				victim = ft.replace(slot, page)
				hand = (hand + 1) % frames
			} else {
				slot = ft.insert(page)
			}
		}
		ft.record(rec, i, page, !hit, victim, slot)
	}
	return faults
}
