// Package logger provides the process-wide structured logger. Records
// pass through a sanitizer that masks credentials and user paths
// before they reach any destination.
package logger

import (
	"fmt"
	"sync"
)

var (
	defaultLogger Logger
	mu            sync.RWMutex
	initialized   bool
)

// Init initializes the global logger. It must be called once; call
// Shutdown before re-initializing.
func Init(config Config) error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return fmt.Errorf("logger already initialized; call Shutdown() before re-initializing")
	}

	logger, err := NewSlogLogger(config)
	if err != nil {
		return fmt.Errorf("create slog logger: %w", err)
	}

	defaultLogger = logger
	initialized = true
	return nil
}

// Initialized reports whether Init has been called without a matching
// Shutdown.
func Initialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return initialized
}

// Get returns the global logger. Before Init it returns a logger that
// discards everything, so packages can log unconditionally.
func Get() Logger {
	mu.RLock()
	defer mu.RUnlock()

	if !initialized {
		return &NullLogger{}
	}
	return defaultLogger
}

// With creates a child logger with extra context attached.
func With(args ...any) Logger {
	return Get().With(args...)
}

// Shutdown flushes and closes all destinations.
func Shutdown() error {
	mu.Lock()
	if !initialized {
		mu.Unlock()
		return nil
	}
	logger := defaultLogger
	initialized = false
	mu.Unlock()

	return logger.Shutdown()
}

// NullLogger discards everything.
type NullLogger struct{}

func (n *NullLogger) Debug(msg string, args ...any) {}
func (n *NullLogger) Info(msg string, args ...any)  {}
func (n *NullLogger) Warn(msg string, args ...any)  {}
func (n *NullLogger) Error(msg string, args ...any) {}
func (n *NullLogger) With(args ...any) Logger       { return n }
func (n *NullLogger) Shutdown() error               { return nil }
