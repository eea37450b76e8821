package types

import (
	"github.com/rs/zerolog"

	"github.com/lepinkainen/videocombiner/config"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Logger  zerolog.Logger
	Config  config.Config
	// LogsOnTerminal is set when logs go to the terminal, where they would
	// corrupt the interactive views
	LogsOnTerminal bool
}

// VersionOrDefault returns the application version, tolerating a nil context
func (a *AppContext) VersionOrDefault() string {
	if a == nil || a.Version == "" {
		return DefaultVersion
	}
	return a.Version
}

// LoggerOrNop returns the application logger, tolerating a nil context
func (a *AppContext) LoggerOrNop() zerolog.Logger {
	if a == nil {
		return zerolog.Nop()
	}
	return a.Logger
}

// ConfigOrDefault returns the loaded configuration, tolerating a nil context
func (a *AppContext) ConfigOrDefault() config.Config {
	if a == nil {
		return config.Default()
	}
	return a.Config
}
