package logger

import (
	"strings"
	"testing"
)

func TestSanitize_Patterns(t *testing.T) {
	s := NewSanitizer()
	cases := []struct {
		in   string
		want string
	}{
		{"connect with password=hunter2", "connect with password=***"},
		{"header bearer eyJhbGci.rest", "header bearer ***"},
		{"api-key=abc123", "api_key=***"},
		{`copy from C:\Users\alice\docs`, `copy from ***:\Users\***\docs`},
		{"scan /home/alice/photos", "scan /home/***/photos"},
		{"owner alice@example.com", "owner ali***@example.com"},
		{"nothing sensitive here", "nothing sensitive here"},
	}
	for _, tc := range cases {
		if got := s.Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeArgs_MasksSensitiveKeys(t *testing.T) {
	s := NewSanitizer()

	args := s.SanitizeArgs([]any{
		"path", "/tmp/x",
		"token", "supersecretvalue",
		"count", 3,
	})

	if args[1] != "/tmp/x" {
		t.Errorf("non-sensitive value changed: %v", args[1])
	}
	masked, ok := args[3].(string)
	if !ok || strings.Contains(masked, "supersecret") {
		t.Errorf("token value not masked: %v", args[3])
	}
	if args[5] != 3 {
		t.Errorf("non-string value changed: %v", args[5])
	}
}

func TestMaskValue(t *testing.T) {
	s := NewSanitizer()
	cases := []struct {
		in   string
		want string
	}{
		{"ab", "***"},
		{"short", "s***"},
		{"averylongsecret", "a***t"},
	}
	for _, tc := range cases {
		if got := s.maskValue(tc.in); got != tc.want {
			t.Errorf("maskValue(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAddRule(t *testing.T) {
	s := NewSanitizer()
	if err := s.AddRule(`session=\S+`, "session=***"); err != nil {
		t.Fatalf("AddRule: %v", err)
	}
	if got := s.Sanitize("session=abc"); got != "session=***" {
		t.Errorf("custom rule not applied: %q", got)
	}
	if err := s.AddRule(`(unclosed`, "x"); err == nil {
		t.Error("AddRule with invalid pattern returned nil error")
	}
}
