package main

import (
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"
)

var logLevels = map[string]log.Level{
	"trace":   log.TraceLevel,
	"debug":   log.DebugLevel,
	"info":    log.InfoLevel,
	"warn":    log.WarnLevel,
	"warning": log.WarnLevel,
	"error":   log.ErrorLevel,
}

// parseLogLevel converts string log level to log.Level
func parseLogLevel(levelStr string) log.Level {
	if level, ok := logLevels[strings.ToLower(levelStr)]; ok {
		return level
	}
	return log.WarnLevel
}

// newLogger builds the application logger. Console logs go to stderr, which
// the full-screen display owns in interactive mode, so they are discarded
// there unless a log file is configured.
func newLogger(cfg *Config) *log.Logger {
	logger := &log.Logger{
		Level: parseLogLevel(cfg.LogLevel),
	}

	switch {
	case cfg.LogFile != "":
		logger.Writer = &log.FileWriter{
			Filename:     cfg.LogFile,
			FileMode:     0644,
			MaxSize:      10 * 1024 * 1024,
			MaxBackups:   3,
			EnsureFolder: true,
		}
	case cfg.Batch:
		logger.Writer = &log.ConsoleWriter{
			Writer:         os.Stderr,
			EndWithMessage: true,
		}
	default:
		logger.Writer = &log.IOWriter{Writer: io.Discard}
	}
	return logger
}
