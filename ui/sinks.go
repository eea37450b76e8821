package ui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/videocombiner/video"
)

// FailedStatus is reported when a run stops on a fatal error
const FailedStatus = "Processing failed."

// Sender is the part of tea.Program used to forward reports
type Sender interface {
	Send(msg tea.Msg)
}

// ProgramSink forwards progress reports to a running bubbletea program.
// Send is safe to call from the worker goroutine.
type ProgramSink struct {
	Program Sender
}

// Report implements video.ProgressSink
func (s ProgramSink) Report(r video.ProgressReport) {
	s.Program.Send(ProgressMsg(r))
}

// BarSink renders progress reports as a single terminal progress bar
type BarSink struct {
	bar *progressbar.ProgressBar
	out io.Writer
}

// NewBarSink returns a sink drawing a 0-100 bar on w
func NewBarSink(w io.Writer) *BarSink {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Starting..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &BarSink{bar: bar, out: w}
}

// Report implements video.ProgressSink. Failure statuses are also written
// on their own line so they stay visible after the bar moves on.
func (s *BarSink) Report(r video.ProgressReport) {
	if isFailureStatus(r.Status) {
		_, _ = fmt.Fprintf(s.out, "\n%s\n", r.Status)
	}
	s.bar.Describe(r.Status)
	_ = s.bar.Set(r.Percent)
}

// Finish completes the bar and moves the cursor to a fresh line
func (s *BarSink) Finish() {
	_ = s.bar.Finish()
	_, _ = fmt.Fprintln(s.out)
}

// Abort leaves the bar at its last reported percentage
func (s *BarSink) Abort() {
	_ = s.bar.Exit()
	_, _ = fmt.Fprintln(s.out)
}

// Percent returns the bar's current position in the 0-100 range
func (s *BarSink) Percent() int {
	return int(s.bar.State().CurrentPercent*100 + 0.5)
}
