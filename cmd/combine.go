package cmd

import (
	"fmt"

	"github.com/lepinkainen/videocombiner/config"
	"github.com/lepinkainen/videocombiner/logging"
	"github.com/lepinkainen/videocombiner/types"
	"github.com/lepinkainen/videocombiner/utils"
	"github.com/lepinkainen/videocombiner/video"
)

// CombineCmd combines every video of a folder, one output per aspect ratio
// or a single letterboxed output with --all
type CombineCmd struct {
	Folder              string `arg:"" name:"folder" help:"Folder containing the videos to combine" type:"existingdir"`
	All                 bool   `help:"Scale and pad every video to the largest width and height and combine them into one file"`
	KeepTemp            bool   `name:"keep-temp" help:"Keep the intermediate scaled videos of --all"`
	NoTUI               bool   `name:"no-tui" help:"Show a plain progress bar instead of the interactive view"`
	SkipSimilar         bool   `name:"skip-similar" help:"Leave out videos that look like an earlier video"`
	SimilarityThreshold int    `name:"similarity-threshold" help:"Hamming distance threshold for --skip-similar (0-64, -1 uses the config file)" default:"-1"`
	CRF                 int    `help:"Constant Rate Factor for re-encoding (0-51, lower=better, -1 uses the config file)" default:"-1"`
	Preset              string `help:"x264 encoding preset (overrides the config file)"`

	EncoderFlags `embed:""`
}

func (cmd *CombineCmd) apply(cfg *config.Config) {
	if cmd.SkipSimilar {
		cfg.Similarity.Skip = true
	}
	if cmd.SimilarityThreshold >= 0 {
		cfg.Similarity.Threshold = cmd.SimilarityThreshold
	}
	if cmd.CRF >= 0 {
		cfg.Encode.CRF = cmd.CRF
	}
	if cmd.Preset != "" {
		cfg.Encode.Preset = cmd.Preset
	}
	if cmd.KeepTemp {
		cfg.DeleteTemp = false
	}
}

func (cmd *CombineCmd) Run(appCtx *types.AppContext) error {
	cfg, err := resolveConfig(appCtx, cmd.EncoderFlags.apply, cmd.apply)
	if err != nil {
		return err
	}

	log := commandLogger(appCtx, !cmd.NoTUI).With().Str(logging.FieldFolder, cmd.Folder).Logger()
	warnNetworkFolder(log, cmd.Folder)

	if _, err := utils.ValidateEncoder(cfg.FFmpeg); err != nil {
		return err
	}

	mode := modeFor(cmd.All)
	proc := video.NewProcessor(video.NewFFmpeg(cfg.FFmpeg), log, cfg.Options())

	log.Info().Str(logging.FieldMode, mode.String()).Bool("delete_temp", cfg.DeleteTemp).Msg("combining folder")

	summary, err := runWithProgress(appCtx, cmd.Folder, mode, cmd.NoTUI, func(sink video.ProgressSink) (*video.Summary, error) {
		return proc.ProcessVideos(cmd.Folder, sink, mode, cfg.DeleteTemp)
	})
	if err != nil {
		return fmt.Errorf("failed to combine videos: %w", err)
	}

	return failureError(summary)
}
