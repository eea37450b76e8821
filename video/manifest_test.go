package video

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readManifestPath parses one manifest line the way the concat demuxer
// tokenizes it: quoted sections are literal, a backslash outside quotes
// escapes the next character.
func readManifestPath(t *testing.T, line string) string {
	t.Helper()
	rest, ok := strings.CutPrefix(line, "file ")
	require.True(t, ok, "line %q must start with the file directive", line)

	var b strings.Builder
	quoted := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case c == '\'':
			quoted = !quoted
		case c == '\\' && !quoted && i+1 < len(rest):
			i++
			b.WriteByte(rest[i])
		default:
			b.WriteByte(c)
		}
	}
	require.False(t, quoted, "unterminated quote in %q", line)
	return b.String()
}

func TestManifestLine(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/videos/a.mp4", `file '/videos/a.mp4'`},
		{`C:\Users\me\clips\a.mp4`, `file 'C:/Users/me/clips/a.mp4'`},
		{"/videos/it's here.mp4", `file '/videos/it'\''s here.mp4'`},
		{`D:\it's\''.mp4`, `file 'D:/it'\''s/'\'''\''.mp4'`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ManifestLine(tt.path), tt.path)
	}
}

func TestManifestLine_RoundTrip(t *testing.T) {
	paths := []string{
		"/videos/plain.mp4",
		"/videos/with space.mp4",
		"/videos/it's.mp4",
		"/videos/''double''.mp4",
		`C:\Videos\Holiday 2024\beach's end.mp4`,
		"/videos/trailing'",
	}

	for _, p := range paths {
		want := strings.ReplaceAll(p, `\`, "/")
		assert.Equal(t, want, readManifestPath(t, ManifestLine(p)), p)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "concat_16-9.txt")
	members := []string{
		filepath.Join(dir, "a.mp4"),
		filepath.Join(dir, "b's.mp4"),
	}

	require.NoError(t, WriteManifest(manifest, members))

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	for i, line := range lines {
		assert.Equal(t, filepath.ToSlash(members[i]), readManifestPath(t, line))
	}
}

func TestWriteManifest_ReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "concat_4-3.txt")
	require.NoError(t, os.WriteFile(manifest, []byte("file '/stale/one.mp4'\nfile '/stale/two.mp4'\n"), 0o644))

	require.NoError(t, WriteManifest(manifest, []string{filepath.Join(dir, "fresh.mp4")}))

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Equal(t, filepath.ToSlash(filepath.Join(dir, "fresh.mp4")), readManifestPath(t, strings.TrimSpace(string(data))))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files may be left next to the manifest")
}

func TestWriteManifest_RelativePathsBecomeAbsolute(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "concat.txt")

	require.NoError(t, WriteManifest(manifest, []string{"relative/clip.mp4"}))

	data, err := os.ReadFile(manifest)
	require.NoError(t, err)

	got := readManifestPath(t, strings.TrimSpace(string(data)))
	assert.True(t, filepath.IsAbs(filepath.FromSlash(got)), "expected absolute path, got %s", got)
	assert.True(t, strings.HasSuffix(got, "relative/clip.mp4"))
}

func TestWriteManifest_MissingDirectory(t *testing.T) {
	err := WriteManifest(filepath.Join(t.TempDir(), "missing", "concat.txt"), []string{"/a.mp4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write manifest")
}
