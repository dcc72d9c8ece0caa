package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/trace"
)

var validOutputFormats = map[string]bool{"text": true, "json": true, "yaml": true}

// Report is the machine-readable form of a simulation result.
type Report struct {
	Reference []int              `json:"reference" yaml:"reference"`
	Frames    int                `json:"frames" yaml:"frames"`
	Generated bool               `json:"generated" yaml:"generated"`
	Faults    map[string]int     `json:"faults" yaml:"faults"`
	HitRatios map[string]float64 `json:"hit_ratios" yaml:"hit_ratios"`
}

// NewReport converts a Result, keyed by algorithm name.
func NewReport(r *sim.Result) *Report {
	rep := &Report{
		Reference: r.Pages,
		Frames:    r.Frames,
		Generated: r.Generated,
		Faults:    make(map[string]int, len(r.Algorithms)),
		HitRatios: make(map[string]float64, len(r.Algorithms)),
	}
	for _, a := range r.Algorithms {
		rep.Faults[string(a)] = r.Faults[a]
		rep.HitRatios[string(a)] = r.HitRatio(a)
	}
	return rep
}

// writeReport renders r to w in the requested format. Text output is written
// line by line, pausing delay between lines when delay > 0.
func writeReport(w io.Writer, r *sim.Result, format string, delay time.Duration) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(r))
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(NewReport(r)); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		for i, line := range textReportLines(r) {
			if i > 0 && delay > 0 {
				time.Sleep(delay)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func textReportLines(r *sim.Result) []string {
	lines := []string{"Reference String:", formatPageList(r.Pages)}
	if r.Generated {
		lines = append(lines, "(generated)")
	}
	lines = append(lines, "", fmt.Sprintf("Frames: %d", r.Frames))

	// pad labels so the counts line up
	width := 0
	for _, a := range r.Algorithms {
		width = max(width, len(a.DisplayName()))
	}
	for _, a := range r.Algorithms {
		lines = append(lines, fmt.Sprintf("%-*s Page Faults: %d", width, a.DisplayName(), r.Faults[a]))
	}

	if r.Trace != nil {
		for _, et := range r.Trace.Engines {
			lines = append(lines, "")
			lines = append(lines, traceTableLines(et)...)
		}
	}
	return lines
}

// traceTableLines renders an engine trace as a per-reference frame table.
func traceTableLines(et *trace.EngineTrace) []string {
	s := trace.Summarize(et)
	lines := []string{
		fmt.Sprintf("=== %s trace ===", strings.ToUpper(et.Algorithm)),
		fmt.Sprintf("%-5s %-5s %-6s %-7s %s", "Step", "Page", "Result", "Evicted", "Frames"),
	}
	for _, step := range et.Steps {
		result := "hit"
		if step.Fault {
			result = "FAULT"
		}
		evicted := "-"
		if step.Evicted() {
			evicted = strconv.Itoa(step.Victim)
		}
		lines = append(lines, fmt.Sprintf("%-5d %-5d %-6s %-7s %s", step.Step, step.Page, result, evicted, formatFrames(step.Frames)))
	}
	lines = append(lines, fmt.Sprintf("Faults: %d  Hits: %d  Evictions: %d  Compulsory: %d  Hit ratio: %.2f",
		s.Faults, s.Hits, s.Evictions, s.CompulsoryMisses, s.HitRatio))
	return lines
}

func formatPageList(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatFrames(frames []int) string {
	parts := make([]string, len(frames))
	for i, p := range frames {
		if p == trace.EmptySlot {
			parts[i] = "."
		} else {
			parts[i] = strconv.Itoa(p)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
