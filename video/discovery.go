package video

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindVideoFiles lists the files directly inside folder that carry one of
// the given extensions. Subdirectories are not scanned, so the Combined and
// TempScaledVideos folders of earlier runs are never picked up.
func FindVideoFiles(folder string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !entry.Type().IsRegular() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}

		if IsVideoFile(entry.Name(), extensions) {
			files = append(files, filepath.Join(folder, entry.Name()))
		}
	}

	return files, nil
}

// ExpandPaths replaces any directory in paths with the video files it contains
func ExpandPaths(paths []string, extensions []string) ([]string, error) {
	var expanded []string

	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", path, err)
		}

		if !fi.IsDir() {
			expanded = append(expanded, path)
			continue
		}

		files, err := FindVideoFiles(path, extensions)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, files...)
	}

	return expanded, nil
}
