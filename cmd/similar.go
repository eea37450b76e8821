package cmd

import (
	"fmt"

	"github.com/lepinkainen/videocombiner/types"
	"github.com/lepinkainen/videocombiner/ui"
	"github.com/lepinkainen/videocombiner/video"
)

// SimilarCmd finds perceptually similar videos using frame-based perceptual hashing.
// These are the videos combine --skip-similar would leave out.
type SimilarCmd struct {
	Files     []string `arg:"" name:"files" help:"Video files or folders to compare" type:"path"`
	Threshold int      `help:"Hamming distance threshold for similarity (0-64, -1 uses the config file)" default:"-1"`

	EncoderFlags `embed:""`
}

// Run compares all pairs of videos and reports any that fall within the
// similarity threshold (lower distance = more similar)
func (cmd *SimilarCmd) Run(appCtx *types.AppContext) error {
	cfg, err := resolveConfig(appCtx, cmd.EncoderFlags.apply)
	if err != nil {
		return err
	}

	threshold := cfg.Similarity.Threshold
	if cmd.Threshold >= 0 {
		threshold = cmd.Threshold
	}

	files, err := video.ExpandPaths(cmd.Files, cfg.Extensions)
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}

	if len(files) < 2 {
		fmt.Printf("%s\n", ui.FailureStyle.Render("❌ Need at least 2 files to compare"))
		return nil
	}

	fmt.Printf("%s\n", ui.InfoStyle.Render(fmt.Sprintf("Comparing %d files for similarity (threshold: %d):", len(files), threshold)))

	hasher := video.FrameHasher{Encoder: video.NewFFmpeg(cfg.FFmpeg)}
	pairs, err := video.FindSimilarPairs(files, hasher, threshold, appCtx.LoggerOrNop())
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ No similar files found within threshold"))
		return nil
	}

	for _, pair := range pairs {
		fmt.Printf("🎯 Similar (distance %d): %s ↔ %s\n", pair.Distance, pair.First, pair.Second)
	}
	return nil
}
