package cmd

import (
	"fmt"

	"github.com/lepinkainen/videocombiner/types"
	"github.com/lepinkainen/videocombiner/ui"
	"github.com/lepinkainen/videocombiner/utils"
)

// CheckCmd verifies the configuration and that ffmpeg can be run
type CheckCmd struct {
	EncoderFlags `embed:""`
}

func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	cfg, err := resolveConfig(appCtx, cmd.EncoderFlags.apply)
	if err != nil {
		fmt.Printf("%s\n", ui.FailureStyle.Render("❌ Configuration is invalid"))
		return err
	}
	fmt.Printf("%s\n", ui.SuccessStyle.Render("✅ Configuration is valid"))

	path, err := utils.ValidateEncoder(cfg.FFmpeg)
	if err != nil {
		fmt.Printf("%s\n", ui.FailureStyle.Render("❌ "+err.Error()))
		return err
	}

	version, err := utils.EncoderVersion(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ %s", path)))
	fmt.Printf("%s\n", ui.InfoStyle.Render(version))
	return nil
}
