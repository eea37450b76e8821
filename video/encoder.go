package video

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultEncoderBinary is the encoder looked up on PATH when none is configured
const DefaultEncoderBinary = "ffmpeg"

var (
	// ErrEncoderUnavailable is returned when the encoder process cannot be started
	ErrEncoderUnavailable = errors.New("encoder unavailable")

	// ErrEmptyOutput is returned when an encode finished but produced no data
	ErrEmptyOutput = errors.New("encoder produced an empty output file")
)

// ExitError reports an encoder run that exited with a non-zero status
type ExitError struct {
	Code        int
	Diagnostics string
}

func (e *ExitError) Error() string {
	if line := lastLine(e.Diagnostics); line != "" {
		return fmt.Sprintf("encoder exited with status %d: %s", e.Code, line)
	}
	return fmt.Sprintf("encoder exited with status %d", e.Code)
}

// Encoder runs the external media tool with a prepared argument list.
// Invoke blocks until the process exits. When captureDiagnostics is set the
// tool's diagnostic stream is returned, otherwise it is discarded.
type Encoder interface {
	Invoke(args []string, captureDiagnostics bool) (string, error)
}

// FFmpeg invokes an ffmpeg binary as a child process
type FFmpeg struct {
	Binary string
}

// NewFFmpeg returns an FFmpeg encoder for binary, defaulting to ffmpeg on PATH
func NewFFmpeg(binary string) *FFmpeg {
	if binary == "" {
		binary = DefaultEncoderBinary
	}
	return &FFmpeg{Binary: binary}
}

// Invoke runs the binary with args. Stderr is drained into memory while the
// process runs so a chatty encoder never blocks on a full pipe.
func (f *FFmpeg) Invoke(args []string, captureDiagnostics bool) (string, error) {
	cmd := exec.Command(f.Binary, args...)

	var stderr bytes.Buffer
	if captureDiagnostics {
		cmd.Stderr = &stderr
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrEncoderUnavailable, f.Binary, err)
	}

	err := cmd.Wait()
	output := stderr.String()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, &ExitError{Code: exitErr.ExitCode(), Diagnostics: output}
		}
		return output, fmt.Errorf("failed to run %s: %w", f.Binary, err)
	}

	return output, nil
}

// lastLine returns the last non-empty line of s
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
