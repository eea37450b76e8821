package utils

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ValidateEncoder checks that the encoder binary can be found. binary may be
// a bare name looked up in PATH or a path to an executable.
func ValidateEncoder(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH. %s", binary, getInstallationInstructions())
	}
	return path, nil
}

// EncoderVersion returns the first line of the encoder's -version output,
// e.g. "ffmpeg version 7.1 Copyright (c) 2000-2024 the FFmpeg developers"
func EncoderVersion(binary string) (string, error) {
	out, err := exec.Command(binary, "-version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s -version: %w", binary, err)
	}

	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

// getInstallationInstructions returns platform-specific installation instructions
func getInstallationInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return "Install with: brew install ffmpeg"
	case "linux":
		return "Install with: apt-get install ffmpeg (Ubuntu/Debian) or yum install ffmpeg (CentOS/RHEL)"
	case "windows":
		return "Download from https://ffmpeg.org/download.html and add to PATH"
	default:
		return "Download from https://ffmpeg.org/download.html"
	}
}
