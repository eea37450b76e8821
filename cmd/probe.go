package cmd

import (
	"errors"
	"fmt"

	"github.com/lepinkainen/videocombiner/types"
	"github.com/lepinkainen/videocombiner/ui"
	"github.com/lepinkainen/videocombiner/video"
)

// ProbeCmd prints the resolution and aspect ratio group of each video
type ProbeCmd struct {
	Files []string `arg:"" name:"files" help:"Video files or folders to probe" type:"path"`

	EncoderFlags `embed:""`
}

func (cmd *ProbeCmd) Run(appCtx *types.AppContext) error {
	cfg, err := resolveConfig(appCtx, cmd.EncoderFlags.apply)
	if err != nil {
		return err
	}

	files, err := video.ExpandPaths(cmd.Files, cfg.Extensions)
	if err != nil {
		return fmt.Errorf("failed to expand paths: %w", err)
	}

	prober := video.Prober{Encoder: video.NewFFmpeg(cfg.FFmpeg)}
	failed := 0

	for _, file := range files {
		width, height, err := prober.Probe(file)
		if errors.Is(err, video.ErrEncoderUnavailable) {
			return err
		}
		if err != nil {
			fmt.Printf("%s\n", ui.FailureStyle.Render(fmt.Sprintf("❌ %s: %v", file, err)))
			failed++
			continue
		}

		fmt.Printf("%s  %dx%d  %s\n", ui.SuccessStyle.Render("✅ "+file), width, height, video.CanonicalRatio(width, height))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be probed", failed, len(files))
	}
	return nil
}
