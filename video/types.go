package video

import "path/filepath"

// VideoEntry is a probed video file with a known, positive resolution
type VideoEntry struct {
	Path   string
	Width  int
	Height int
}

// AspectRatio returns the canonical "W:H" ratio of the entry
func (e VideoEntry) AspectRatio() string {
	return CanonicalRatio(e.Width, e.Height)
}

// FileName returns the base name of the entry's path
func (e VideoEntry) FileName() string {
	return filepath.Base(e.Path)
}

// Catalog holds the probed entries of one run in discovery order
type Catalog []VideoEntry

// Paths returns the file paths of the catalog entries
func (c Catalog) Paths() []string {
	paths := make([]string, len(c))
	for i, e := range c {
		paths[i] = e.Path
	}
	return paths
}

// CombineAllKey is the group key used when every video is merged into one output
const CombineAllKey = "all"

// Group is an ordered subsequence of a catalog sharing one key
type Group struct {
	Key     string
	Entries []VideoEntry
}

// Resolution is a frame size in pixels
type Resolution struct {
	Width  int
	Height int
}

// Mode selects the combination strategy of a run
type Mode int

const (
	// ModeByAspectRatio merges each aspect ratio cohort into its own output
	ModeByAspectRatio Mode = iota
	// ModeCombineAll scales and pads every video to one resolution and merges them all
	ModeCombineAll
)

func (m Mode) String() string {
	switch m {
	case ModeByAspectRatio:
		return "by-aspect-ratio"
	case ModeCombineAll:
		return "combine-all"
	default:
		return "unknown"
	}
}

// Summary contains the outcome of a run
type Summary struct {
	Found    int      // matching files discovered in the folder
	Analyzed int      // files admitted into the catalog
	Skipped  int      // files whose resolution could not be determined
	Filtered int      // files dropped as perceptually similar to an earlier one
	Outputs  []string // combined files written
	Failed   []string // groups or files that could not be encoded
}
