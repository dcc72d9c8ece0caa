// Package sim provides the page-replacement simulation engine.
//
// # Reading Guide
//
// Start with these files:
//   - reference.go: reference-string generation (seeded) and parsing
//   - fifo.go, lru.go, optimal.go: the three eviction engines
//   - simulator.go: the orchestrator that resolves a reference string once and
//     runs the selected engines against it
//
// # Architecture
//
// Every engine is a pure function of (pages, frames) returning a fault count.
// Engines share the slot-indexed frameTable (frames.go) and never modify the
// reference string, so the orchestrator may run them on separate goroutines.
// Randomness is confined to ReferenceGenerator, which is seeded through
// PartitionedRNG (rng.go).
//
// Sub-packages:
//   - sim/trace/: per-reference decision records, summaries, and export
//
// Additional entry points:
//   - sweep.go: repeated randomized runs with aggregate statistics
//   - scenario.go: YAML scenario files for the CLI
package sim
