package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/videocombiner/config"
	"github.com/lepinkainen/videocombiner/logging"
	"github.com/lepinkainen/videocombiner/types"
	"github.com/lepinkainen/videocombiner/ui"
	"github.com/lepinkainen/videocombiner/utils"
	"github.com/lepinkainen/videocombiner/video"
)

// PlanCmd analyzes a folder and shows how it would be combined. The
// interactive planner can exclude videos and then combine what is left.
type PlanCmd struct {
	Folder   string `arg:"" name:"folder" help:"Folder containing the videos to plan" type:"existingdir"`
	All      bool   `help:"Plan a single combined output instead of one per aspect ratio"`
	KeepTemp bool   `name:"keep-temp" help:"Keep the intermediate scaled videos of --all"`
	NoTUI    bool   `name:"no-tui" help:"List the planned groups and exit"`

	EncoderFlags `embed:""`
}

func (cmd *PlanCmd) Run(appCtx *types.AppContext) error {
	cfg, err := resolveConfig(appCtx, cmd.EncoderFlags.apply, func(c *config.Config) {
		if cmd.KeepTemp {
			c.DeleteTemp = false
		}
	})
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

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("VideoCombiner %s", appCtx.VersionOrDefault())))
	fmt.Printf("Analyzing %s...\n", cmd.Folder)

	bar := ui.NewBarSink(os.Stderr)
	sink := &lastPercentSink{ProgressSink: bar}
	catalog, summary, err := proc.Analyze(cmd.Folder, sink)
	if err != nil {
		sink.fail()
		bar.Abort()
		return fmt.Errorf("failed to analyze folder: %w", err)
	}
	bar.Finish()

	if summary.Found == 0 {
		fmt.Printf("%s\n", ui.InfoStyle.Render("No videos found"))
		return nil
	}

	if cmd.NoTUI {
		printPlan(os.Stdout, catalog, mode)
		return nil
	}

	final, err := tea.NewProgram(ui.NewPlanModel(catalog, mode), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	planner, ok := final.(ui.PlanModel)
	if !ok || !planner.Confirmed() {
		fmt.Println("Plan discarded, nothing was combined.")
		return nil
	}

	plan := planner.Plan()
	log.Info().Int("videos", len(plan)).Int("excluded", len(catalog)-len(plan)).Msg("combining confirmed plan")

	result, err := runWithProgress(appCtx, cmd.Folder, mode, false, func(sink video.ProgressSink) (*video.Summary, error) {
		return proc.Combine(cmd.Folder, plan, sink, mode, cfg.DeleteTemp)
	})
	if err != nil {
		return fmt.Errorf("failed to combine videos: %w", err)
	}

	return failureError(result)
}

// printPlan lists the outputs the catalog would produce under mode
func printPlan(w io.Writer, catalog video.Catalog, mode video.Mode) {
	var groups []video.Group
	switch mode {
	case video.ModeCombineAll:
		group, target, ok := video.CombineAll(catalog)
		if ok {
			groups = append(groups, group)
			_, _ = fmt.Fprintf(w, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("Every video is scaled and padded to %dx%d", target.Width, target.Height)))
		}
	default:
		groups = video.GroupByAspectRatio(catalog)
	}

	if len(groups) == 0 {
		_, _ = fmt.Fprintf(w, "%s\n", ui.InfoStyle.Render("No videos with a known resolution"))
		return
	}

	_, _ = fmt.Fprintf(w, "%s\n", ui.InfoStyle.Render(fmt.Sprintf("%d output(s) planned:", len(groups))))
	for _, group := range groups {
		_, _ = fmt.Fprintf(w, "\n🔸 %s → combined_%s.mp4 (%d videos):\n", group.Key, video.SanitizeRatio(group.Key), len(group.Entries))
		for _, entry := range group.Entries {
			_, _ = fmt.Fprintf(w, "  %s (%dx%d)\n", entry.Path, entry.Width, entry.Height)
		}
	}
}
