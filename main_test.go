package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestKongParsing(t *testing.T) {
	var cli CLI

	parser := kong.Must(&cli)
	if parser == nil {
		t.Error("Kong parser should not be nil")
	}
}

func TestKongParsing_Commands(t *testing.T) {
	testDir := t.TempDir()
	testFile := filepath.Join(testDir, "video.mp4")
	_ = os.WriteFile(testFile, []byte("test"), 0o644)

	testCases := []struct {
		name        string
		args        []string
		command     string
		expectError bool
	}{
		{"combine folder", []string{"combine", testDir}, "combine", false},
		{"combine all without tui", []string{"combine", "--all", "--no-tui", "--keep-temp", testDir}, "combine", false},
		{"combine encode flags", []string{"combine", "--crf", "20", "--preset", "slow", "--skip-similar", "--similarity-threshold", "3", testDir}, "combine", false},
		{"combine missing folder", []string{"combine", filepath.Join(testDir, "missing")}, "", true},
		{"combine file instead of folder", []string{"combine", testFile}, "", true},
		{"combine no args", []string{"combine"}, "", true},
		{"plan folder", []string{"plan", "--no-tui", testDir}, "plan", false},
		{"probe file", []string{"probe", testFile}, "probe", false},
		{"probe no files", []string{"probe"}, "", true},
		{"similar with threshold", []string{"similar", "--threshold", "8", testFile, testFile}, "similar", false},
		{"check", []string{"check", "--ffmpeg", "/usr/bin/ffmpeg"}, "check", false},
		{"unknown command", []string{"tag", testFile}, "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var cli CLI
			parser := kong.Must(&cli)

			ctx, err := parser.Parse(tc.args)
			if tc.expectError {
				if err == nil {
					t.Errorf("Expected error for args %v, but parsing succeeded", tc.args)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for args %v: %v", tc.args, err)
			}
			if !strings.HasPrefix(ctx.Command(), tc.command) {
				t.Errorf("Expected %q command, got %q", tc.command, ctx.Command())
			}
		})
	}
}

func TestKongParsing_CombineDefaults(t *testing.T) {
	testDir := t.TempDir()

	var cli CLI
	parser := kong.Must(&cli)
	if _, err := parser.Parse([]string{"combine", testDir}); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if cli.Combine.Folder != testDir {
		t.Errorf("Expected folder %q, got %q", testDir, cli.Combine.Folder)
	}
	if cli.Combine.All || cli.Combine.KeepTemp || cli.Combine.NoTUI {
		t.Error("Expected boolean flags to default to false")
	}
	if cli.Combine.CRF != -1 || cli.Combine.SimilarityThreshold != -1 {
		t.Errorf("Expected -1 sentinels, got crf=%d threshold=%d", cli.Combine.CRF, cli.Combine.SimilarityThreshold)
	}
}

func TestKongParsing_FFmpegFromEnv(t *testing.T) {
	t.Setenv("VIDEOCOMBINER_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")

	var cli CLI
	parser := kong.Must(&cli)
	if _, err := parser.Parse([]string{"check"}); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if cli.Check.FFmpeg != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("Expected ffmpeg from environment, got %q", cli.Check.FFmpeg)
	}
}

func TestAppContext_Defaults(t *testing.T) {
	cli := CLI{}

	appCtx, closeLog, err := cli.appContext()
	if err != nil {
		t.Fatalf("Expected defaults to load, got %v", err)
	}
	defer closeLog()

	if appCtx.Version != Version {
		t.Errorf("Expected version %q, got %q", Version, appCtx.Version)
	}
	if appCtx.Config.FFmpeg != "ffmpeg" {
		t.Errorf("Expected default ffmpeg, got %q", appCtx.Config.FFmpeg)
	}
	if !appCtx.LogsOnTerminal {
		t.Error("Expected logs on the terminal without --log-file")
	}
}

func TestAppContext_ConfigAndLogFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "videocombiner.yaml")
	if err := os.WriteFile(configPath, []byte("ffmpeg: /opt/ffmpeg\nlog:\n  level: debug\n  json: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	logPath := filepath.Join(dir, "run.log")

	cli := CLI{Config: configPath, LogFile: logPath}
	appCtx, closeLog, err := cli.appContext()
	if err != nil {
		t.Fatalf("Expected config to load, got %v", err)
	}

	appCtx.Logger.Debug().Str("folder", "/videos").Msg("debug enabled")
	closeLog()

	if appCtx.Config.FFmpeg != "/opt/ffmpeg" {
		t.Errorf("Expected ffmpeg from config, got %q", appCtx.Config.FFmpeg)
	}
	if appCtx.LogsOnTerminal {
		t.Error("Expected logs to go to the file")
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"debug enabled"`) {
		t.Errorf("Expected JSON debug line in log file, got %q", string(data))
	}
}

func TestAppContext_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("workers: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cli := CLI{Config: configPath}
	if _, _, err := cli.appContext(); err == nil {
		t.Error("Expected unknown config keys to be rejected")
	}
}

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}
