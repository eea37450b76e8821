package video

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"os"
	"path/filepath"

	"github.com/corona10/goimagehash"
	"github.com/rs/zerolog"

	"github.com/lepinkainen/videocombiner/logging"
)

// frameOffsets are tried in order until one yields a frame; short clips
// have nothing at the later positions
var frameOffsets = []string{"00:00:30", "00:00:10", "00:00:00"}

// FrameHasher computes perceptual hashes of a representative video frame
type FrameHasher struct {
	Encoder Encoder
	TempDir string // where extracted frames are written, os.TempDir() when empty
}

// Hash extracts a single frame from videoFile and returns its perceptual hash
func (h FrameHasher) Hash(videoFile string) (*goimagehash.ImageHash, error) {
	dir := h.TempDir
	if dir == "" {
		dir = os.TempDir()
	}

	tempFrame := filepath.Join(dir, fmt.Sprintf("frame_%d.jpg", os.Getpid()))
	defer func() { _ = os.Remove(tempFrame) }()

	var lastErr error
	extracted := false
	for _, offset := range frameOffsets {
		_ = os.Remove(tempFrame)

		_, err := h.Encoder.Invoke([]string{"-ss", offset, "-i", videoFile, "-frames:v", "1", "-f", "image2", "-y", tempFrame}, false)
		if errors.Is(err, ErrEncoderUnavailable) {
			return nil, err
		}
		if err != nil {
			lastErr = err
			continue
		}

		// ffmpeg exits cleanly without writing a frame when seeking past the end
		if ValidateOutput(tempFrame) == nil {
			extracted = true
			break
		}
	}

	if !extracted {
		if lastErr == nil {
			lastErr = ErrEmptyOutput
		}
		return nil, fmt.Errorf("failed to extract frame: %w", lastErr)
	}

	file, err := os.Open(tempFrame)
	if err != nil {
		return nil, fmt.Errorf("failed to open extracted frame: %w", err)
	}
	defer func() { _ = file.Close() }()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate perceptual hash: %w", err)
	}

	return hash, nil
}

// FilterSimilar drops every entry whose frame hash lies within threshold
// (Hamming distance) of an entry kept earlier. Entries that cannot be hashed
// are kept. The returned catalog preserves the input order.
func FilterSimilar(catalog Catalog, hasher FrameHasher, threshold int, log zerolog.Logger) (Catalog, int) {
	type kept struct {
		entry VideoEntry
		hash  *goimagehash.ImageHash
	}

	var hashed []kept
	result := make(Catalog, 0, len(catalog))
	dropped := 0

	for _, entry := range catalog {
		hash, err := hasher.Hash(entry.Path)
		if err != nil {
			log.Warn().Str(logging.FieldPath, entry.Path).Err(err).Msg("could not hash video, keeping it")
			result = append(result, entry)
			continue
		}

		similarTo := ""
		for _, k := range hashed {
			distance, err := hash.Distance(k.hash)
			if err == nil && distance <= threshold {
				similarTo = k.entry.Path
				break
			}
		}

		if similarTo != "" {
			log.Info().Str(logging.FieldPath, entry.Path).Str("similar_to", similarTo).Msg("skipped similar video")
			dropped++
			continue
		}

		hashed = append(hashed, kept{entry: entry, hash: hash})
		result = append(result, entry)
	}

	return result, dropped
}

// SimilarPair is two videos whose frame hashes lie within a threshold
type SimilarPair struct {
	First    string
	Second   string
	Distance int
}

// FindSimilarPairs hashes every path and returns each pair within threshold,
// in input order. Files that cannot be hashed are logged and left out; only
// a missing encoder aborts the search.
func FindSimilarPairs(paths []string, hasher FrameHasher, threshold int, log zerolog.Logger) ([]SimilarPair, error) {
	type fileHash struct {
		path string
		hash *goimagehash.ImageHash
	}

	var hashes []fileHash
	for _, path := range paths {
		hash, err := hasher.Hash(path)
		if errors.Is(err, ErrEncoderUnavailable) {
			return nil, err
		}
		if err != nil {
			log.Warn().Str(logging.FieldPath, path).Err(err).Msg("could not hash video")
			continue
		}
		hashes = append(hashes, fileHash{path: path, hash: hash})
	}

	var pairs []SimilarPair
	for i := 0; i < len(hashes); i++ {
		for j := i + 1; j < len(hashes); j++ {
			distance, err := hashes[i].hash.Distance(hashes[j].hash)
			if err != nil {
				continue
			}
			if distance <= threshold {
				pairs = append(pairs, SimilarPair{First: hashes[i].path, Second: hashes[j].path, Distance: distance})
			}
		}
	}

	return pairs, nil
}
