package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videocombiner/video"
)

// StatusEntry is one line of the run's status log
type StatusEntry struct {
	Percent int
	Status  string
	Failed  bool
}

func (s StatusEntry) FilterValue() string { return s.Status }
func (s StatusEntry) Title() string       { return s.Status }
func (s StatusEntry) Description() string {
	if s.Failed {
		return fmt.Sprintf("❌ at %d%%", s.Percent)
	}
	return fmt.Sprintf("✓ %d%%", s.Percent)
}

// isFailureStatus reports whether a status line describes a failed step
func isFailureStatus(status string) bool {
	return status == FailedStatus ||
		strings.HasPrefix(status, "Failed") ||
		strings.HasPrefix(status, "No videos could")
}

// ProgressModel renders the progress of a single combine run
type ProgressModel struct {
	// Run state
	folder  string
	mode    video.Mode
	percent int
	status  string
	entries []StatusEntry
	summary *video.Summary
	err     error
	done    bool

	// UI components
	overallProgress progress.Model
	statusList      list.Model

	// Layout
	width  int
	height int

	quitting bool

	// Version for display
	Version string
}

// NewProgressModel creates the progress TUI for a run over folder
func NewProgressModel(folder string, mode video.Mode, version string) ProgressModel {
	statusList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	statusList.Title = "Status"
	statusList.SetShowHelp(false)
	statusList.SetFilteringEnabled(false)

	return ProgressModel{
		folder:          folder,
		mode:            mode,
		status:          "Starting...",
		overallProgress: progress.New(progress.WithDefaultGradient()),
		statusList:      statusList,
		Version:         version,
	}
}

// Init implements tea.Model
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overallProgress.Width = max(msg.Width-20, 10)
		m.statusList.SetSize(msg.Width-4, msg.Height/2)

	case ProgressMsg:
		m.percent = msg.Percent
		m.status = msg.Status
		m.entries = append(m.entries, StatusEntry{
			Percent: msg.Percent,
			Status:  msg.Status,
			Failed:  isFailureStatus(msg.Status),
		})

		items := make([]list.Item, len(m.entries))
		for i, entry := range m.entries {
			items[i] = entry
		}
		m.statusList.SetItems(items)
		m.statusList.Select(len(items) - 1)

	case RunFinishedMsg:
		m.done = true
		m.summary = msg.Summary
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// Percent returns the last reported percentage
func (m ProgressModel) Percent() int { return m.percent }

// Done reports whether the run has finished
func (m ProgressModel) Done() bool { return m.done }

// View implements tea.Model
func (m ProgressModel) View() string {
	if m.quitting && !m.done {
		return "Detached from progress view, waiting for the encoder to finish...\n"
	}

	header := HeaderStyle.Render(fmt.Sprintf("VideoCombiner %s", m.Version))
	info := InfoStyle.Render(fmt.Sprintf("Folder: %s  Mode: %s", filepath.Base(m.folder), m.mode))

	overallView := fmt.Sprintf("Progress: %s %3d%%",
		m.overallProgress.ViewAs(float64(m.percent)/100),
		m.percent)

	status := StatusStyle.Render(m.status)
	if isFailureStatus(m.status) {
		status = FailureStyle.Render(m.status)
	}

	sections := []string{header, info, overallView, status}

	if m.done {
		sections = append(sections, m.renderSummary())
	} else {
		sections = append(sections, m.statusList.View(), "Controls: [q] Quit")
	}

	return strings.Join(sections, "\n\n") + "\n"
}

func (m ProgressModel) renderSummary() string {
	if m.err != nil {
		return FailureStyle.Render(fmt.Sprintf("Run aborted: %v", m.err))
	}
	if m.summary == nil {
		return ""
	}
	return RenderSummary(*m.summary)
}

// RenderSummary formats the outcome of a run for terminal output
func RenderSummary(s video.Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Found %d, analyzed %d, skipped %d", s.Found, s.Analyzed, s.Skipped))
	if s.Filtered > 0 {
		b.WriteString(fmt.Sprintf(", filtered %d similar", s.Filtered))
	}
	b.WriteString("\n")

	for _, out := range s.Outputs {
		b.WriteString(SuccessStyle.Render("✓ "+out) + "\n")
	}
	for _, failed := range s.Failed {
		b.WriteString(FailureStyle.Render("❌ "+failed) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
