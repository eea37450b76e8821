package ui

import "github.com/lepinkainen/videocombiner/video"

// ProgressMsg carries a progress report from the worker into the TUI
type ProgressMsg video.ProgressReport

// RunFinishedMsg is sent once when the worker returns
type RunFinishedMsg struct {
	Summary *video.Summary
	Err     error
}
