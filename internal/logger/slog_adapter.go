package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SlogLogger implements Logger on top of log/slog.
type SlogLogger struct {
	logger    *slog.Logger
	sanitizer *Sanitizer
	writers   []io.WriteCloser
}

// NewSlogLogger builds a logger writing to every configured output
// through a single multi-writer.
func NewSlogLogger(config Config) (*SlogLogger, error) {
	sanitizer := NewSanitizer()

	var writers []io.Writer
	var closeableWriters []io.WriteCloser

	for _, output := range config.Outputs {
		switch output.Type {
		case OutputStdout, OutputStderr:
			if output.Writer != nil {
				writers = append(writers, output.Writer)
				// Standard streams are never closed on shutdown.
				if wc, ok := output.Writer.(io.WriteCloser); ok {
					if wc != os.Stdout && wc != os.Stderr {
						closeableWriters = append(closeableWriters, wc)
					}
				}
			} else if output.Type == OutputStdout {
				writers = append(writers, os.Stdout)
			} else {
				writers = append(writers, os.Stderr)
			}
		case OutputFile:
			if config.File.Enabled {
				fileWriter, err := createFileWriter(config.File)
				if err != nil {
					return nil, fmt.Errorf("create file writer: %w", err)
				}
				writers = append(writers, fileWriter)
				closeableWriters = append(closeableWriters, fileWriter)
			}
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}

	multiWriter := io.MultiWriter(writers...)

	opts := &slog.HandlerOptions{
		Level: convertLevel(config.Level),
	}
	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(multiWriter, opts)
	} else {
		handler = slog.NewTextHandler(multiWriter, opts)
	}

	return &SlogLogger{
		logger:    slog.New(handler),
		sanitizer: sanitizer,
		writers:   closeableWriters,
	}, nil
}

// createFileWriter opens a rotating log file via lumberjack.
func createFileWriter(config FileConfig) (io.WriteCloser, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   config.Path,
		MaxSize:    config.MaxSizeMB,
		MaxAge:     config.MaxAgeDays,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}, nil
}

func convertLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(l.sanitizer.Sanitize(msg), l.sanitizer.SanitizeArgs(args)...)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(l.sanitizer.Sanitize(msg), l.sanitizer.SanitizeArgs(args)...)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(l.sanitizer.Sanitize(msg), l.sanitizer.SanitizeArgs(args)...)
}

func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(l.sanitizer.Sanitize(msg), l.sanitizer.SanitizeArgs(args)...)
}

// With creates a child logger. Children do not own the writers, so
// shutting a child down is a no-op.
func (l *SlogLogger) With(args ...any) Logger {
	return &childLogger{
		logger:    l.logger.With(l.sanitizer.SanitizeArgs(args)...),
		sanitizer: l.sanitizer,
	}
}

// Shutdown closes all owned writers.
func (l *SlogLogger) Shutdown() error {
	var lastErr error
	for _, w := range l.writers {
		if err := w.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

type childLogger struct {
	logger    *slog.Logger
	sanitizer *Sanitizer
}

func (c *childLogger) Debug(msg string, args ...any) {
	c.logger.Debug(c.sanitizer.Sanitize(msg), c.sanitizer.SanitizeArgs(args)...)
}

func (c *childLogger) Info(msg string, args ...any) {
	c.logger.Info(c.sanitizer.Sanitize(msg), c.sanitizer.SanitizeArgs(args)...)
}

func (c *childLogger) Warn(msg string, args ...any) {
	c.logger.Warn(c.sanitizer.Sanitize(msg), c.sanitizer.SanitizeArgs(args)...)
}

func (c *childLogger) Error(msg string, args ...any) {
	c.logger.Error(c.sanitizer.Sanitize(msg), c.sanitizer.SanitizeArgs(args)...)
}

func (c *childLogger) With(args ...any) Logger {
	return &childLogger{
		logger:    c.logger.With(c.sanitizer.SanitizeArgs(args)...),
		sanitizer: c.sanitizer,
	}
}

func (c *childLogger) Shutdown() error { return nil }
