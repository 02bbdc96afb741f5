package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level Level, format Format) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := NewSlogLogger(Config{
		Level:   level,
		Format:  format,
		Outputs: []OutputConfig{{Type: OutputStdout, Writer: &buf}},
	})
	if err != nil {
		t.Fatalf("NewSlogLogger: %v", err)
	}
	return l, &buf
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	l, buf := newBufferLogger(t, LevelWarn, FormatText)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("low-severity records not filtered: %s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("high-severity records missing: %s", out)
	}
}

func TestSlogLogger_JSONFormat(t *testing.T) {
	l, buf := newBufferLogger(t, LevelInfo, FormatJSON)

	l.Info("hello", "endpoint", "photos")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if record["msg"] != "hello" || record["endpoint"] != "photos" {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestSlogLogger_With(t *testing.T) {
	l, buf := newBufferLogger(t, LevelInfo, FormatText)

	child := l.With("endpoint", "photos")
	child.Info("listing")

	if !strings.Contains(buf.String(), "endpoint=photos") {
		t.Errorf("context attribute missing: %s", buf.String())
	}
}

func TestSlogLogger_SanitizesSensitiveArgs(t *testing.T) {
	l, buf := newBufferLogger(t, LevelInfo, FormatText)

	l.Info("auth refresh", "token", "supersecretvalue")

	out := buf.String()
	if strings.Contains(out, "supersecretvalue") {
		t.Errorf("token value leaked: %s", out)
	}
}

func TestGet_BeforeInit(t *testing.T) {
	if _, ok := Get().(*NullLogger); !ok {
		t.Errorf("Get() before Init = %T, want *NullLogger", Get())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"Warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
