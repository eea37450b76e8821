package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videocombiner/video"
)

// PlanGroup is one output of a combine plan and the videos feeding it
type PlanGroup struct {
	Key     string
	Entries []video.VideoEntry
}

// PlanModel lets the user review the groups of an analyzed folder and
// exclude single videos before combining
type PlanModel struct {
	// Data
	catalog      video.Catalog
	mode         video.Mode
	groups       []PlanGroup
	excluded     map[string]bool // path -> excluded from the plan
	currentGroup int
	currentFile  int

	// UI state
	width  int
	height int

	// Interaction state
	confirming bool
	confirmed  bool
	showHelp   bool

	// Control state
	quitting bool
}

// NewPlanModel builds the plan for catalog as mode would group it
func NewPlanModel(catalog video.Catalog, mode video.Mode) PlanModel {
	var groups []PlanGroup

	switch mode {
	case video.ModeCombineAll:
		if group, _, ok := video.CombineAll(catalog); ok {
			groups = append(groups, PlanGroup{Key: group.Key, Entries: group.Entries})
		}
	default:
		for _, group := range video.GroupByAspectRatio(catalog) {
			groups = append(groups, PlanGroup{Key: group.Key, Entries: group.Entries})
		}
	}

	return PlanModel{
		catalog:  catalog,
		mode:     mode,
		groups:   groups,
		excluded: make(map[string]bool),
		showHelp: true,
	}
}

// Confirmed reports whether the user accepted the plan
func (m PlanModel) Confirmed() bool { return m.confirmed }

// Plan returns the catalog entries still included, in catalog order
func (m PlanModel) Plan() video.Catalog {
	plan := make(video.Catalog, 0, len(m.catalog))
	for _, entry := range m.catalog {
		if !m.excluded[entry.Path] {
			plan = append(plan, entry)
		}
	}
	return plan
}

// Init implements tea.Model
func (m PlanModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirming {
			return m.handleConfirmationInput(msg)
		}
		return m.handleNormalInput(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m PlanModel) handleNormalInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.groups) == 0 {
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "h", "?":
		m.showHelp = !m.showHelp

	case "up", "k":
		if m.currentFile > 0 {
			m.currentFile--
		}

	case "down", "j":
		if m.currentFile < len(m.groups[m.currentGroup].Entries)-1 {
			m.currentFile++
		}

	case "left", "p":
		if m.currentGroup > 0 {
			m.currentGroup--
			m.currentFile = 0
		}

	case "right", "n":
		if m.currentGroup < len(m.groups)-1 {
			m.currentGroup++
			m.currentFile = 0
		}

	case " ": // toggle exclusion
		path := m.groups[m.currentGroup].Entries[m.currentFile].Path
		m.setExcluded(path, !m.excluded[path])

	case "a": // include the whole group
		for _, entry := range m.groups[m.currentGroup].Entries {
			m.setExcluded(entry.Path, false)
		}

	case "x": // exclude the whole group
		for _, entry := range m.groups[m.currentGroup].Entries {
			m.setExcluded(entry.Path, true)
		}

	case "enter":
		if len(m.Plan()) == 0 {
			return m, nil
		}
		m.confirming = true
	}

	return m, nil
}

func (m PlanModel) handleConfirmationInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.confirming = false
		m.confirmed = true
		return m, tea.Quit

	case "n", "N", "ctrl+c", "esc":
		m.confirming = false
	}

	return m, nil
}

// setExcluded copies the map before writing so earlier model values keep their state
func (m *PlanModel) setExcluded(path string, excluded bool) {
	next := make(map[string]bool, len(m.excluded)+1)
	for k, v := range m.excluded {
		next[k] = v
	}
	if excluded {
		next[path] = true
	} else {
		delete(next, path)
	}
	m.excluded = next
}

// includedOutputs counts the groups that still have at least one video
func (m PlanModel) includedOutputs() int {
	outputs := 0
	for _, group := range m.groups {
		for _, entry := range group.Entries {
			if !m.excluded[entry.Path] {
				outputs++
				break
			}
		}
	}
	return outputs
}

// View implements tea.Model
func (m PlanModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if len(m.groups) == 0 {
		return m.renderNoGroups()
	}

	if m.confirming {
		return m.renderConfirmationDialog()
	}

	return m.renderMainView()
}

func (m PlanModel) renderNoGroups() string {
	style := InfoStyle.MarginTop(2).MarginLeft(2)
	return style.Render("No videos with a known resolution were found.\n\nPress 'q' to quit.")
}

func (m PlanModel) renderConfirmationDialog() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render("Confirm Plan"))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("Combine %d video(s) into %d output(s) using %s?\n\n",
		len(m.Plan()), m.includedOutputs(), m.mode))

	if len(m.excluded) > 0 {
		content.WriteString("Excluded:\n")
		for _, entry := range m.catalog {
			if m.excluded[entry.Path] {
				content.WriteString(fmt.Sprintf("  • %s\n", entry.FileName()))
			}
		}
		content.WriteString("\n")
	}

	content.WriteString("Press 'y' to start, 'n' to go back")

	return content.String()
}

func (m PlanModel) renderMainView() string {
	var content strings.Builder

	header := fmt.Sprintf("VideoCombiner - Plan (Group %d of %d)", m.currentGroup+1, len(m.groups))
	content.WriteString(HeaderStyle.Render(header))
	content.WriteString("\n\n")

	group := m.groups[m.currentGroup]
	groupInfo := fmt.Sprintf("%s (%d files)", m.groupTitle(group), len(group.Entries))
	content.WriteString(InfoStyle.Render(groupInfo))
	content.WriteString("\n\n")

	content.WriteString(m.renderFileList(group))
	content.WriteString("\n")

	if m.showHelp {
		content.WriteString(m.renderHelp())
	} else {
		content.WriteString("Press 'h' for help")
	}

	return content.String()
}

// groupTitle names the output a group is written to
func (m PlanModel) groupTitle(group PlanGroup) string {
	output := fmt.Sprintf("combined_%s.mp4", video.SanitizeRatio(group.Key))
	if m.mode != video.ModeCombineAll {
		return fmt.Sprintf("Aspect ratio %s → %s", group.Key, output)
	}

	var included video.Catalog
	for _, entry := range group.Entries {
		if !m.excluded[entry.Path] {
			included = append(included, entry)
		}
	}
	if _, target, ok := video.CombineAll(included); ok {
		return fmt.Sprintf("All videos at %dx%d → %s", target.Width, target.Height, output)
	}
	return "All videos → " + output
}

func (m PlanModel) renderFileList(group PlanGroup) string {
	var content strings.Builder

	paths := make([]string, len(group.Entries))
	for i, entry := range group.Entries {
		paths[i] = entry.Path
	}
	optimizedPaths := optimizePaths(paths)

	for i, entry := range group.Entries {
		var line strings.Builder
		excluded := m.excluded[entry.Path]

		if excluded {
			line.WriteString("[ ] ")
		} else {
			line.WriteString("[✓] ")
		}

		fileName := filepath.Base(entry.Path)
		if i == m.currentFile {
			if excluded {
				line.WriteString(ExcludedStyle.Reverse(true).Render(fileName))
			} else {
				line.WriteString(CursorStyle.Render(fileName))
			}
		} else {
			if excluded {
				line.WriteString(ExcludedStyle.Render(fileName))
			} else {
				line.WriteString(fileName)
			}
		}

		line.WriteString(fmt.Sprintf(" %dx%d (%s)", entry.Width, entry.Height, optimizedPaths[i]))
		content.WriteString(line.String())
		content.WriteString("\n")
	}

	return content.String()
}

// optimizePaths finds the common path prefix and returns optimized display paths
// that show only the meaningful differences, keeping the topmost directory for context
func optimizePaths(paths []string) []string {
	if len(paths) <= 1 {
		return paths
	}

	pathComponents := make([][]string, len(paths))
	for i, path := range paths {
		pathComponents[i] = strings.Split(filepath.Clean(path), string(filepath.Separator))
	}

	commonPrefixLength := 0
	if len(pathComponents[0]) > 0 {
		maxLength := len(pathComponents[0])
		for _, components := range pathComponents[1:] {
			maxLength = min(maxLength, len(components))
		}

		for i := 0; i < maxLength; i++ {
			first := pathComponents[0][i]
			allMatch := true
			for j := 1; j < len(pathComponents); j++ {
				if pathComponents[j][i] != first {
					allMatch = false
					break
				}
			}
			if !allMatch {
				break
			}
			commonPrefixLength = i + 1
		}
	}

	result := make([]string, len(paths))
	for i, components := range pathComponents {
		// Keep one level of context above the differing part
		startIndex := commonPrefixLength
		if startIndex > 0 && len(components) > startIndex {
			startIndex = commonPrefixLength - 1
		}

		if startIndex < len(components) {
			result[i] = filepath.Join(components[startIndex:]...)
			if startIndex > 0 {
				result[i] = "..." + string(filepath.Separator) + result[i]
			}
		} else {
			result[i] = paths[i]
		}
	}

	return result
}

func (m PlanModel) renderHelp() string {
	help := []string{
		"",
		"Navigation:",
		"  ↑/↓ or j/k   Navigate videos in current group",
		"  ←/→ or p/n   Previous/Next group",
		"",
		"Selection:",
		"  Space        Toggle video in or out of the plan",
		"  a            Include every video in group",
		"  x            Exclude every video in group",
		"",
		"Actions:",
		"  Enter        Combine the plan (with confirmation)",
		"  h/?          Toggle this help",
		"  q            Quit without combining",
		"",
	}

	return strings.Join(help, "\n")
}
