package logger

import (
	"io"
	"strings"
)

// Logger is the logging interface used across the codebase.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	Shutdown() error
}

// Level is a log severity level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a string into a Level (case-insensitive).
// Unknown strings default to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the log record encoding.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat parses a string into a Format (case-insensitive).
func ParseFormat(s string) Format {
	if strings.ToLower(s) == "json" {
		return FormatJSON
	}
	return FormatText
}

// Output is a log destination kind.
type Output int

const (
	OutputStdout Output = iota
	OutputStderr
	OutputFile
)

// Config configures the logger.
type Config struct {
	Level   Level
	Format  Format
	Outputs []OutputConfig
	File    FileConfig
}

// OutputConfig names one destination. Writer overrides the standard
// stream, mainly for tests.
type OutputConfig struct {
	Type   Output
	Writer io.Writer
}

// FileConfig configures the rotating file destination.
type FileConfig struct {
	Enabled    bool
	Path       string
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
	Compress   bool
}
