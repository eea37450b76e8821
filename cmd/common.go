package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/lepinkainen/videocombiner/config"
	"github.com/lepinkainen/videocombiner/logging"
	"github.com/lepinkainen/videocombiner/types"
	"github.com/lepinkainen/videocombiner/ui"
	"github.com/lepinkainen/videocombiner/utils"
	"github.com/lepinkainen/videocombiner/video"
)

// EncoderFlags are shared by every command that runs ffmpeg
type EncoderFlags struct {
	FFmpeg string `name:"ffmpeg" help:"ffmpeg binary name or path (overrides the config file)" env:"VIDEOCOMBINER_FFMPEG"`
}

func (f EncoderFlags) apply(cfg *config.Config) {
	if f.FFmpeg != "" {
		cfg.FFmpeg = f.FFmpeg
	}
}

// resolveConfig applies command line overrides on top of the loaded configuration
func resolveConfig(appCtx *types.AppContext, overrides ...func(*config.Config)) (config.Config, error) {
	cfg := appCtx.ConfigOrDefault()
	for _, override := range overrides {
		override(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func modeFor(all bool) video.Mode {
	if all {
		return video.ModeCombineAll
	}
	return video.ModeByAspectRatio
}

// commandLogger silences terminal logging while an interactive view owns the screen
func commandLogger(appCtx *types.AppContext, interactive bool) zerolog.Logger {
	if interactive && appCtx != nil && appCtx.LogsOnTerminal {
		return zerolog.Nop()
	}
	return appCtx.LoggerOrNop()
}

// warnNetworkFolder tells the user that encoding over a network mount is slow
func warnNetworkFolder(log zerolog.Logger, folder string) {
	reason, ok := utils.NetworkMount(folder)
	if !ok {
		return
	}
	log.Warn().Str(logging.FieldFolder, folder).Str("reason", reason).Msg("folder looks like a network drive")
	fmt.Printf("⚠️  Network drive detected (%s), encoding may be slow\n", reason)
}

// lastPercentSink remembers the last reported percentage so a fatal error
// can be reported where the run stopped
type lastPercentSink struct {
	video.ProgressSink
	percent int
}

func (s *lastPercentSink) Report(r video.ProgressReport) {
	s.percent = r.Percent
	s.ProgressSink.Report(r)
}

// fail reports the generic failure status at the last percentage
func (s *lastPercentSink) fail() {
	s.ProgressSink.Report(video.ProgressReport{Percent: s.percent, Status: ui.FailedStatus})
}

// runFunc performs one processor run against the given sink
type runFunc func(sink video.ProgressSink) (*video.Summary, error)

// runWithProgress runs fn while rendering its progress, either in the
// interactive view or as a plain progress bar on stderr
func runWithProgress(appCtx *types.AppContext, folder string, mode video.Mode, noTUI bool, fn runFunc) (*video.Summary, error) {
	if noTUI {
		bar := ui.NewBarSink(os.Stderr)
		sink := &lastPercentSink{ProgressSink: bar}
		summary, err := fn(sink)
		if err != nil {
			sink.fail()
			bar.Abort()
			return summary, err
		}
		bar.Finish()
		if summary != nil {
			fmt.Println(ui.RenderSummary(*summary))
		}
		return summary, nil
	}

	return runWithTUI(appCtx.VersionOrDefault(), folder, mode, fn)
}

// runWithTUI runs fn on a worker goroutine and drives the progress view from
// the main goroutine until the worker reports back
func runWithTUI(version, folder string, mode video.Mode, fn runFunc) (*video.Summary, error) {
	type result struct {
		summary *video.Summary
		err     error
	}

	p := tea.NewProgram(ui.NewProgressModel(folder, mode, version))
	done := make(chan result, 1)

	go func() {
		sink := &lastPercentSink{ProgressSink: ui.ProgramSink{Program: p}}
		summary, err := fn(sink)
		if err != nil {
			sink.fail()
		}
		done <- result{summary: summary, err: err}
		// No-op when the user already left the view
		p.Send(ui.RunFinishedMsg{Summary: summary, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "progress view failed: %v\n", err)
	}

	res := <-done
	return res.summary, res.err
}

// failureError turns per-group failures into a non-zero exit
func failureError(summary *video.Summary) error {
	if summary == nil || len(summary.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d item(s) could not be combined: %s", len(summary.Failed), strings.Join(summary.Failed, ", "))
}
