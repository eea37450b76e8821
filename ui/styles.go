package ui

import "github.com/charmbracelet/lipgloss"

// Shared styles of the progress and plan views
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1)

	// SuccessStyle marks written outputs and passed checks
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	// FailureStyle marks failed groups, failed steps and aborted runs
	FailureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	// StatusStyle renders the current step of a running combine
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	// ExcludedStyle renders videos left out of a plan
	ExcludedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Strikethrough(true)

	// CursorStyle highlights the video under the plan cursor
	CursorStyle = lipgloss.NewStyle().Reverse(true)
)
