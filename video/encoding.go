package video

import (
	"fmt"
	"strconv"
)

// EncodeOptions holds the encoder parameters used for scaling and re-encoding
type EncodeOptions struct {
	VideoCodec   string // codec for re-encoded concatenation (libx264)
	Preset       string // encoder speed preset
	CRF          int    // Constant Rate Factor (0-51, 23 is default)
	AudioCodec   string // audio codec for scaled and re-encoded outputs
	AudioBitrate string // audio bitrate, e.g. "128k"
	PadColor     string // fill color for scale-and-pad letterboxing
}

// DefaultEncodeOptions returns the parameters used by the combine strategies
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		VideoCodec:   "libx264",
		Preset:       "fast",
		CRF:          23,
		AudioCodec:   "aac",
		AudioBitrate: "128k",
		PadColor:     "black",
	}
}

// ScalePadArgs builds the arguments to scale src into the target box,
// preserving its aspect ratio, and pad the remainder to exactly target size
func ScalePadArgs(src, dst string, target Resolution, opts EncodeOptions) []string {
	filter := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:-1:-1:color=%s",
		target.Width, target.Height, target.Width, target.Height, opts.PadColor)

	return []string{
		"-i", src,
		"-vf", filter,
		"-c:a", opts.AudioCodec,
		"-b:a", opts.AudioBitrate,
		"-y", // Overwrite output file
		dst,
	}
}

// ConcatCopyArgs builds the arguments to join the manifest members without re-encoding
func ConcatCopyArgs(manifest, dst string) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c", "copy",
		"-y",
		dst,
	}
}

// ConcatReencodeArgs builds the arguments to join the manifest members with a
// full re-encode, which tolerates members whose codec parameters differ
func ConcatReencodeArgs(manifest, dst string, opts EncodeOptions) []string {
	return []string{
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-c:v", opts.VideoCodec,
		"-preset", opts.Preset,
		"-crf", strconv.Itoa(opts.CRF),
		"-c:a", opts.AudioCodec,
		"-b:a", opts.AudioBitrate,
		"-y",
		dst,
	}
}
