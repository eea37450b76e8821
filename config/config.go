package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/videocombiner/video"
)

// Presets accepted by libx264
var Presets = []string{"ultrafast", "superfast", "veryfast", "faster", "fast", "medium", "slow", "slower", "veryslow", "placebo"}

// Config is the on-disk configuration of videocombiner
type Config struct {
	FFmpeg     string           `yaml:"ffmpeg"`
	Extensions []string         `yaml:"extensions"`
	DeleteTemp bool             `yaml:"delete_temp"`
	Encode     EncodeConfig     `yaml:"encode"`
	Progress   ProgressConfig   `yaml:"progress"`
	Similarity SimilarityConfig `yaml:"similarity"`
	Log        LogConfig        `yaml:"log"`
}

// EncodeConfig holds encoder parameters
type EncodeConfig struct {
	VideoCodec   string `yaml:"video_codec"`
	Preset       string `yaml:"preset"`
	CRF          int    `yaml:"crf"`
	AudioCodec   string `yaml:"audio_codec"`
	AudioBitrate string `yaml:"audio_bitrate"`
	PadColor     string `yaml:"pad_color"`
}

// ProgressConfig splits the progress bar between phases
type ProgressConfig struct {
	Analysis    int `yaml:"analysis"`
	Scaling     int `yaml:"scaling"`
	Combination int `yaml:"combination"`
}

// SimilarityConfig controls the perceptual duplicate filter
type SimilarityConfig struct {
	Skip      bool `yaml:"skip"`
	Threshold int  `yaml:"threshold"`
}

// LogConfig controls logger output
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration
func Default() Config {
	opts := video.DefaultOptions()
	return Config{
		FFmpeg:     video.DefaultEncoderBinary,
		Extensions: slices.Clone(opts.Extensions),
		DeleteTemp: true,
		Encode: EncodeConfig{
			VideoCodec:   opts.Encode.VideoCodec,
			Preset:       opts.Encode.Preset,
			CRF:          opts.Encode.CRF,
			AudioCodec:   opts.Encode.AudioCodec,
			AudioBitrate: opts.Encode.AudioBitrate,
			PadColor:     opts.Encode.PadColor,
		},
		Progress: ProgressConfig{
			Analysis:    opts.Weights.Analysis,
			Scaling:     opts.Weights.Scaling,
			Combination: opts.Weights.Combination,
		},
		Similarity: SimilarityConfig{Threshold: opts.SimilarityThreshold},
		Log:        LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path on top of Default. Keys missing from the
// file keep their defaults; unknown keys are rejected. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	path = filepath.Clean(path)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return cfg, fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, cfg.Validate()
		}
		return cfg, fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config file contains multiple documents or trailing content")
	}

	return cfg, cfg.Validate()
}

// Validate checks every value for a usable range
func (c Config) Validate() error {
	var errs []error

	if c.FFmpeg == "" {
		errs = append(errs, errors.New("ffmpeg: must not be empty"))
	}
	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("extensions: at least one extension is required"))
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("extensions: %q must start with a dot", ext))
		}
	}
	if c.Encode.CRF < 0 || c.Encode.CRF > 51 {
		errs = append(errs, fmt.Errorf("encode.crf: %d is outside 0-51", c.Encode.CRF))
	}
	if !slices.Contains(Presets, c.Encode.Preset) {
		errs = append(errs, fmt.Errorf("encode.preset: unknown preset %q", c.Encode.Preset))
	}
	if c.Encode.VideoCodec == "" || c.Encode.AudioCodec == "" {
		errs = append(errs, errors.New("encode: codecs must not be empty"))
	}
	if c.Encode.AudioBitrate == "" {
		errs = append(errs, errors.New("encode.audio_bitrate: must not be empty"))
	}
	if c.Encode.PadColor == "" {
		errs = append(errs, errors.New("encode.pad_color: must not be empty"))
	}
	if err := c.weights().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("progress: %w", err))
	}
	if c.Similarity.Threshold < 0 || c.Similarity.Threshold > 64 {
		errs = append(errs, fmt.Errorf("similarity.threshold: %d is outside 0-64", c.Similarity.Threshold))
	}

	return errors.Join(errs...)
}

// Options converts the configuration into processor options
func (c Config) Options() video.Options {
	return video.Options{
		Extensions: slices.Clone(c.Extensions),
		Encode: video.EncodeOptions{
			VideoCodec:   c.Encode.VideoCodec,
			Preset:       c.Encode.Preset,
			CRF:          c.Encode.CRF,
			AudioCodec:   c.Encode.AudioCodec,
			AudioBitrate: c.Encode.AudioBitrate,
			PadColor:     c.Encode.PadColor,
		},
		Weights:             c.weights(),
		SkipSimilar:         c.Similarity.Skip,
		SimilarityThreshold: c.Similarity.Threshold,
	}
}

func (c Config) weights() video.PhaseWeights {
	return video.PhaseWeights{
		Analysis:    c.Progress.Analysis,
		Scaling:     c.Progress.Scaling,
		Combination: c.Progress.Combination,
	}
}
