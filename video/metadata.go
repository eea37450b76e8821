package video

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrUnresolved is returned when no video resolution could be read for a file
var ErrUnresolved = errors.New("resolution not found")

// videoStreamRegex matches the first video stream line of ffmpeg's input dump,
// e.g. "Stream #0:0(und): Video: h264 (High), yuv420p, 1920x1080 [SAR 1:1 DAR 16:9]"
var videoStreamRegex = regexp.MustCompile(`(?i)Stream #\d+:\d+.*Video:.*?(\d{2,5})x(\d{2,5})`)

// Prober reads video resolutions from the encoder's diagnostic output
type Prober struct {
	Encoder Encoder
}

// Probe returns the width and height of the first video stream in path.
// ffmpeg exits non-zero when given an input and no output, so the exit
// status of the inspect call is ignored and only its output is parsed.
func (p Prober) Probe(path string) (int, int, error) {
	output, err := p.Encoder.Invoke([]string{"-hide_banner", "-i", path}, true)
	if err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			return 0, 0, fmt.Errorf("failed to inspect %s: %w", path, err)
		}
	}

	width, height, ok := ParseResolution(output)
	if !ok {
		return 0, 0, fmt.Errorf("%s: %w", path, ErrUnresolved)
	}
	return width, height, nil
}

// ParseResolution extracts WIDTHxHEIGHT from the first video stream described
// in ffmpeg diagnostic output
func ParseResolution(output string) (int, int, bool) {
	match := videoStreamRegex.FindStringSubmatch(output)
	if match == nil {
		return 0, 0, false
	}

	width, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, 0, false
	}
	height, err := strconv.Atoi(match[2])
	if err != nil {
		return 0, 0, false
	}
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}

	return width, height, true
}
