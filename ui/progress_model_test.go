package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videocombiner/video"
)

func TestProgressModel_TracksReports(t *testing.T) {
	var model tea.Model = NewProgressModel("/videos/holiday", video.ModeByAspectRatio, "v1.0.0")

	model, _ = model.Update(ProgressMsg{Percent: 0, Status: "Found 2 videos, analyzing..."})
	model, _ = model.Update(ProgressMsg{Percent: 25, Status: "Combining group 1 of 1 (16:9)..."})

	m := model.(ProgressModel)
	if m.Percent() != 25 {
		t.Errorf("Expected percent 25, got %d", m.Percent())
	}
	if len(m.entries) != 2 {
		t.Fatalf("Expected 2 status entries, got %d", len(m.entries))
	}
	if m.entries[1].Status != "Combining group 1 of 1 (16:9)..." {
		t.Errorf("Expected latest status to be recorded, got %q", m.entries[1].Status)
	}
	if m.Done() {
		t.Error("Expected run to be in progress")
	}

	view := m.View()
	if !strings.Contains(view, "VideoCombiner v1.0.0") {
		t.Errorf("Expected header in view, got:\n%s", view)
	}
	if !strings.Contains(view, " 25%") {
		t.Errorf("Expected percentage in view, got:\n%s", view)
	}
	if !strings.Contains(view, "by-aspect-ratio") {
		t.Errorf("Expected mode in view, got:\n%s", view)
	}
}

func TestProgressModel_MarksFailures(t *testing.T) {
	var model tea.Model = NewProgressModel("/videos", video.ModeCombineAll, "dev")
	model, _ = model.Update(ProgressMsg{Percent: 25, Status: "Failed to scale a.mp4."})
	model, _ = model.Update(ProgressMsg{Percent: 50, Status: "Processing video 2 of 2..."})
	model, _ = model.Update(ProgressMsg{Percent: 50, Status: FailedStatus})

	m := model.(ProgressModel)
	if !m.entries[2].Failed {
		t.Error("Expected the fatal error status to be marked as failed")
	}
	if !m.entries[0].Failed {
		t.Error("Expected failure status to be marked as failed")
	}
	if m.entries[1].Failed {
		t.Error("Expected regular status not to be marked as failed")
	}
	if !strings.HasPrefix(m.entries[0].Description(), "❌") {
		t.Errorf("Expected failure description, got %q", m.entries[0].Description())
	}
}

func TestProgressModel_FinishQuits(t *testing.T) {
	var model tea.Model = NewProgressModel("/videos", video.ModeByAspectRatio, "dev")
	model, _ = model.Update(ProgressMsg{Percent: 100, Status: "Processing complete!"})

	summary := &video.Summary{Found: 3, Analyzed: 2, Skipped: 1, Outputs: []string{"/videos/Combined/combined_16-9.mp4"}}
	model, cmd := model.Update(RunFinishedMsg{Summary: summary})

	if !isQuit(cmd) {
		t.Error("Expected the program to quit when the run finishes")
	}
	m := model.(ProgressModel)
	if !m.Done() {
		t.Error("Expected run to be done")
	}

	view := m.View()
	if !strings.Contains(view, "combined_16-9.mp4") {
		t.Errorf("Expected output path in summary view, got:\n%s", view)
	}
	if !strings.Contains(view, "skipped 1") {
		t.Errorf("Expected skip count in summary view, got:\n%s", view)
	}
}

func TestProgressModel_AbortedRun(t *testing.T) {
	var model tea.Model = NewProgressModel("/videos", video.ModeCombineAll, "dev")
	model, _ = model.Update(RunFinishedMsg{Err: errors.New("encoder unavailable")})

	view := model.View()
	if !strings.Contains(view, "Run aborted: encoder unavailable") {
		t.Errorf("Expected abort message in view, got:\n%s", view)
	}
}

func TestProgressModel_QuitKey(t *testing.T) {
	var model tea.Model = NewProgressModel("/videos", video.ModeByAspectRatio, "dev")
	model, cmd := model.Update(runeKey('q'))

	if !isQuit(cmd) {
		t.Error("Expected q to quit")
	}
	if !strings.Contains(model.View(), "waiting for the encoder") {
		t.Errorf("Expected detach message, got %q", model.View())
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(video.Summary{
		Found:    4,
		Analyzed: 4,
		Filtered: 1,
		Outputs:  []string{"combined_4-3.mp4"},
		Failed:   []string{"16:9"},
	})

	for _, want := range []string{"Found 4, analyzed 4, skipped 0", "filtered 1 similar", "combined_4-3.mp4", "16:9"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in summary, got:\n%s", want, out)
		}
	}
}
