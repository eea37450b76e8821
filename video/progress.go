package video

import "fmt"

// ProgressReport is a single progress update of a run
type ProgressReport struct {
	Percent int
	Status  string
}

// ProgressSink receives progress updates synchronously from the worker.
// Implementations that drive a UI must marshal updates to their own loop.
type ProgressSink interface {
	Report(ProgressReport)
}

// ProgressFunc adapts a plain function to ProgressSink
type ProgressFunc func(ProgressReport)

// Report calls f(r)
func (f ProgressFunc) Report(r ProgressReport) {
	f(r)
}

type nopSink struct{}

func (nopSink) Report(ProgressReport) {}

// PhaseWeights partitions the 0-100 progress budget between run phases.
// Analysis always takes the first points; scaling belongs to the combine-all
// strategy and combination to the by-aspect-ratio strategy.
type PhaseWeights struct {
	Analysis    int
	Scaling     int
	Combination int
}

// cleanupPercent is reported before temporary files are removed
const cleanupPercent = 95

// DefaultPhaseWeights returns the default progress split
func DefaultPhaseWeights() PhaseWeights {
	return PhaseWeights{
		Analysis:    25,
		Scaling:     50,
		Combination: 75,
	}
}

// Validate checks that every phase fits in the progress budget
func (w PhaseWeights) Validate() error {
	if w.Analysis < 0 || w.Scaling < 0 || w.Combination < 0 {
		return fmt.Errorf("phase weights must not be negative")
	}
	if w.Analysis+w.Scaling > cleanupPercent {
		return fmt.Errorf("analysis and scaling weights must not exceed %d, got %d", cleanupPercent, w.Analysis+w.Scaling)
	}
	if w.Analysis+w.Combination > 100 {
		return fmt.Errorf("analysis and combination weights must not exceed 100, got %d", w.Analysis+w.Combination)
	}
	return nil
}

// phasePercent maps step done of total into a phase that starts at base and spans weight points
func phasePercent(base, weight, done, total int) int {
	if total <= 0 {
		return base
	}
	return base + done*weight/total
}
