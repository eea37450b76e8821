package video

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions lists the container formats picked up from a folder
var DefaultExtensions = []string{".mp4"}

// IsVideoFile checks if the path has one of the given extensions (case-insensitive)
func IsVideoFile(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path)) // handle cases where extension is upper case

	for _, v := range extensions {
		if strings.ToLower(v) == ext {
			return true
		}
	}
	return false
}

// ValidateOutput checks that an encoder output exists and is not empty
func ValidateOutput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("output not accessible: %w", err)
	}

	if fi.Size() == 0 {
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrEmptyOutput)
	}

	return nil
}
