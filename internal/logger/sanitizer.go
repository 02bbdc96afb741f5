package logger

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Sanitizer masks sensitive information in log output.
//
// SanitizeArgs only masks values whose key looks sensitive (password,
// token, and the like). Sensitive data embedded in the value of an
// unrelated key is only caught if one of the string patterns matches.
type Sanitizer struct {
	mu       sync.RWMutex
	patterns []SanitizeRule
}

// SanitizeRule is one pattern replacement.
type SanitizeRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewSanitizer builds a sanitizer with the default rule set.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: defaultSanitizeRules(),
	}
}

func defaultSanitizeRules() []SanitizeRule {
	return []SanitizeRule{
		{regexp.MustCompile(`(?i)password=\S+`), "password=***"},
		{regexp.MustCompile(`(?i)passwd=\S+`), "passwd=***"},
		{regexp.MustCompile(`(?i)pwd=\S+`), "pwd=***"},

		{regexp.MustCompile(`(?i)token=\S+`), "token=***"},
		{regexp.MustCompile(`(?i)bearer\s+\S+`), "bearer ***"},
		{regexp.MustCompile(`(?i)api[_-]?key=\S+`), "api_key=***"},

		// Windows user profile paths, drive letters and UNC shares.
		{regexp.MustCompile(`(?i)[A-Z]:\\Users\\[^\\]+`), "***:\\Users\\***"},
		{regexp.MustCompile(`(?i)\\\\[^\\]+\\[^\\]+\\Users\\[^\\]+`), "\\\\***\\***\\Users\\***"},

		// Unix home directories.
		{regexp.MustCompile(`/home/[^/]+`), "/home/***"},
		{regexp.MustCompile(`/Users/[^/]+`), "/Users/***"},

		{regexp.MustCompile(`([a-zA-Z0-9._%+-]{1,3})[a-zA-Z0-9._%+-]*@`), "$1***@"},
	}
}

// Sanitize applies every pattern to the input string.
func (s *Sanitizer) Sanitize(input string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := input
	for _, rule := range s.patterns {
		result = rule.Pattern.ReplaceAllString(result, rule.Replacement)
	}
	return result
}

// SanitizeArgs masks values of sensitive keys in key-value argument
// lists.
func (s *Sanitizer) SanitizeArgs(args []any) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i < len(result)-1; i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if s.isSensitiveKey(key) {
			switch v := result[i+1].(type) {
			case string:
				result[i+1] = s.maskValue(v)
			case error:
				result[i+1] = s.maskValue(v.Error())
			}
		}
	}
	return result
}

func (s *Sanitizer) isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	sensitiveKeys := []string{
		"password", "passwd", "pwd",
		"token", "secret", "api_key", "apikey",
		"credential", "auth",
	}
	for _, sk := range sensitiveKeys {
		if strings.Contains(lowerKey, sk) {
			return true
		}
	}
	return false
}

// maskValue keeps at most the first and last character.
func (s *Sanitizer) maskValue(value string) string {
	if len(value) <= 2 {
		return "***"
	}
	if len(value) <= 8 {
		return fmt.Sprintf("%s***", string(value[0]))
	}
	return fmt.Sprintf("%s***%s", string(value[0]), string(value[len(value)-1]))
}

// AddRule registers an extra pattern at runtime.
func (s *Sanitizer) AddRule(pattern string, replacement string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	s.patterns = append(s.patterns, SanitizeRule{
		Pattern:     re,
		Replacement: replacement,
	})
	return nil
}
