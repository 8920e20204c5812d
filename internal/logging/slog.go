package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// swapped in tests
var osStdout io.Writer = os.Stdout

// SlogManager manages slog-based logging for the robot module.
type SlogManager struct {
	logger *slog.Logger

	// race reports the active race id and track name for every record
	race RaceProvider
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetRaceProvider installs the race context source. Call before Setup.
func (m *SlogManager) SetRaceProvider(p RaceProvider) {
	m.race = p
}

// Setup initializes the logging system. Records go to file at the given
// level; the host console only sees warnings and errors. With no file,
// everything goes to the console.
func (m *SlogManager) Setup(file io.Writer, level string) {
	lvl := parseLevel(level)

	handlerOpts := func(l slog.Level) *slog.HandlerOptions {
		return &slog.HandlerOptions{
			Level: l,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					if t, ok := a.Value.Any().(time.Time); ok {
						a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
					}
				}
				return a
			},
		}
	}

	var handlers []slog.Handler
	if file != nil {
		handlers = append(handlers,
			slog.NewTextHandler(file, handlerOpts(lvl)),
			slog.NewTextHandler(osStdout, handlerOpts(slog.LevelWarn)),
		)
	} else {
		handlers = append(handlers, slog.NewTextHandler(osStdout, handlerOpts(lvl)))
	}

	m.logger = slog.New(NewRaceHandler(NewMultiHandler(handlers...), m.race))
	m.logger.Debug("Logging initialized", "level", level)
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}
