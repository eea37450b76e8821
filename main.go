package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/videocombiner/cmd"
	"github.com/lepinkainen/videocombiner/config"
	"github.com/lepinkainen/videocombiner/logging"
	"github.com/lepinkainen/videocombiner/types"
)

var Version = "dev"

type CLI struct {
	Config   string           `help:"Path to a YAML config file" type:"path" env:"VIDEOCOMBINER_CONFIG"`
	LogLevel string           `name:"log-level" help:"Log level: trace, debug, info, warn, error (overrides the config file)"`
	LogJSON  bool             `name:"log-json" help:"Write logs as JSON lines"`
	LogFile  string           `name:"log-file" help:"Append logs to a file, keeps them visible while the interactive views run" type:"path"`
	Version  kong.VersionFlag `help:"Show version"`

	Combine cmd.CombineCmd `cmd:"" help:"Combine the videos of a folder, one output per aspect ratio or all in one"`
	Plan    cmd.PlanCmd    `cmd:"" help:"Review the groups of a folder, exclude videos and combine the rest"`
	Probe   cmd.ProbeCmd   `cmd:"" help:"Print resolution and aspect ratio of videos"`
	Similar cmd.SimilarCmd `cmd:"" help:"Find perceptually similar videos"`
	Check   cmd.CheckCmd   `cmd:"" help:"Verify the configuration and the ffmpeg installation"`
}

// appContext loads the configuration and builds the logger shared by every command.
// The returned function closes the log file, if any.
func (cli *CLI) appContext() (*types.AppContext, func(), error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if cli.LogLevel != "" {
		level = cli.LogLevel
	}

	var output io.Writer = os.Stderr
	closeLog := func() {}
	if cli.LogFile != "" {
		file, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
		closeLog = func() { _ = file.Close() }
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Output: output,
		JSON:   cli.LogJSON || cfg.Log.JSON,
	})

	return &types.AppContext{
		Version:        Version,
		Logger:         logger,
		Config:         cfg,
		LogsOnTerminal: cli.LogFile == "",
	}, closeLog, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("videocombiner"),
		kong.Description("Combine the MP4 videos of a folder with ffmpeg"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	appCtx, closeLog, err := cli.appContext()
	ctx.FatalIfErrorf(err)

	err = ctx.Run(appCtx)
	closeLog()
	ctx.FatalIfErrorf(err)
}
