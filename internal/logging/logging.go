// Package logging builds the zap logger shared by the CLI and the embedder.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Options controls logger construction.
type Options struct {
	Level   string    // debug, info, warn, error
	File    string    // optional JSON log file, appended to
	Verbose bool      // forces debug level
	Console io.Writer // human-readable sink; os.Stderr when nil
}

// ParseLevel maps a config level name to a zap level. Unknown names are an
// error; an empty name means warn.
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "", "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.WarnLevel, fmt.Errorf("logging: unknown level %q", name)
	}
}

// New returns a logger writing to the console sink and, if configured, a
// JSON file. The returned cleanup func syncs and closes the file.
func New(opts Options) (*zap.Logger, func(), error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleConfig := encoderConfig
	if isTerminal(console) {
		consoleConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		consoleConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleConfig), zapcore.AddSync(console), level),
	}

	var file *os.File
	if opts.File != "" {
		file, err = os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(file),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	cleanup := func() {
		_ = logger.Sync()
		if file != nil {
			_ = file.Close()
		}
	}
	return logger, cleanup, nil
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
