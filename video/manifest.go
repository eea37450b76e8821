package video

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2/maybe"
)

// ManifestLine formats one member of a concat demuxer list. Backslashes become
// forward slashes and each single quote is closed, escaped and reopened
// ('\'') so the demuxer reads back the original path.
func ManifestLine(path string) string {
	p := strings.ReplaceAll(path, `\`, "/")
	p = strings.ReplaceAll(p, "'", `'\''`)
	return "file '" + p + "'"
}

// WriteManifest writes the concat list for paths to manifestPath. Relative
// member paths are made absolute since the demuxer resolves them against the
// manifest's directory.
func WriteManifest(manifestPath string, paths []string) error {
	var b strings.Builder
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		b.WriteString(ManifestLine(p))
		b.WriteString("\n")
	}

	if err := maybe.WriteFile(manifestPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", manifestPath, err)
	}
	return nil
}
