package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lepinkainen/videocombiner/config"
	"github.com/lepinkainen/videocombiner/types"
)

// fakeFFmpeg writes a shell script that answers inspect calls with a stream
// line for the resolution encoded in the file name (e.g. clip_1280x720.mp4)
// and writes the last argument for every other call
func fakeFFmpeg(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake ffmpeg requires a POSIX shell")
	}

	script := `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffmpeg version 7.1-fake"
  exit 0
fi
if [ "$1" = "-hide_banner" ]; then
  res=$(echo "$3" | sed -n 's/.*_\([0-9]*x[0-9]*\)\.mp4$/\1/p')
  if [ -n "$res" ]; then
    echo "  Stream #0:0(und): Video: h264 (High), yuv420p, $res, 30 fps" >&2
  else
    echo "$3: Invalid data found when processing input" >&2
  fi
  exit 1
fi
for last; do :; done
echo encoded > "$last"
`
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write fake ffmpeg: %v", err)
	}
	return path
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("video"), 0o644); err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	return path
}

func testAppContext() *types.AppContext {
	return &types.AppContext{
		Version: "test",
		Logger:  zerolog.Nop(),
		Config:  config.Default(),
	}
}
