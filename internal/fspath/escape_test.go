package fspath

import (
	"fmt"
	"strings"
	"testing"
)

func TestEscape_ReservedCharacters(t *testing.T) {
	// Every character of the most restrictive set; percent itself is
	// not part of the set.
	name := `\/:?"<>|*`

	var want strings.Builder
	for i := 0; i < len(name); i++ {
		fmt.Fprintf(&want, "%%%02X", name[i])
	}

	if got := Escape(name, FilesystemUnknown); got != want.String() {
		t.Errorf("Escape(%q) = %q, want %q", name, got, want.String())
	}
}

func TestEscape_PassThrough(t *testing.T) {
	for _, name := range []string{"", "plain", "with space", "%41", "a.b"} {
		if got := Escape(name, FilesystemUnknown); got != name {
			t.Errorf("Escape(%q) = %q, want unchanged", name, got)
		}
	}
}

func TestEscape_PerFilesystemPolicy(t *testing.T) {
	name := `a:b?c`

	cases := []struct {
		fs   FilesystemType
		want string
	}{
		{FilesystemUnknown, "a%3Ab%3Fc"},
		{FilesystemFAT, "a%3Ab%3Fc"},
		{FilesystemExFAT, "a%3Ab%3Fc"},
		{FilesystemNTFS, "a%3Ab%3Fc"},
		{FilesystemHFS, "a%3Ab?c"},
		{FilesystemExt, "a:b?c"},
	}
	for _, tc := range cases {
		if got := Escape(name, tc.fs); got != tc.want {
			t.Errorf("Escape(%q, %s) = %q, want %q", name, tc.fs, got, tc.want)
		}
	}
}

func TestUnescape_RoundTrip(t *testing.T) {
	// Escaping then unescaping reproduces the original for any input
	// free of control characters, under every policy.
	inputs := []string{
		`%\/:?"<>|*`,
		"ordinary name",
		"q\xf0\x90\x80\x80r",
		"trailing.",
	}
	policies := []FilesystemType{
		FilesystemUnknown, FilesystemFAT, FilesystemExFAT,
		FilesystemNTFS, FilesystemHFS, FilesystemExt,
	}
	for _, input := range inputs {
		for _, fs := range policies {
			if got := Unescape(Escape(input, fs)); got != input {
				t.Errorf("Unescape(Escape(%q, %s)) = %q", input, fs, got)
			}
		}
	}
}

func TestUnescape_ControlCharactersStayEscaped(t *testing.T) {
	// Decoding must never resurrect a control byte.
	if got := Unescape("a%07b"); got != "a%07b" {
		t.Errorf("Unescape(%q) = %q, want unchanged", "a%07b", got)
	}
	if got := Unescape("%1F"); got != "%1F" {
		t.Errorf("Unescape(%q) = %q, want unchanged", "%1F", got)
	}
	// 0x20 is the first decodable value.
	if got := Unescape("%20"); got != " " {
		t.Errorf("Unescape(%q) = %q, want %q", "%20", got, " ")
	}
}

func TestUnescape_InvalidEscapes(t *testing.T) {
	cases := []struct{ input, want string }{
		{"a%qb%", "a%qb%"},   // non-hex first digit, bare trailing percent
		{"a%bqc", "a%bqc"},   // non-hex second digit
		{"a%", "a%"},         // no digits
		{"a%a", "a%a"},       // one digit
		{"a%4a%4Bc", "aJKc"}, // both hex cases accepted
	}
	for _, tc := range cases {
		if got := Unescape(tc.input); got != tc.want {
			t.Errorf("Unescape(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseFilesystemType(t *testing.T) {
	cases := []struct {
		in   string
		want FilesystemType
	}{
		{"ntfs", FilesystemNTFS},
		{"NTFS", FilesystemNTFS},
		{"ext4", FilesystemExt},
		{"apfs", FilesystemHFS},
		{"vfat", FilesystemFAT},
		{"exfat", FilesystemExFAT},
		{"", FilesystemUnknown},
		{"zfs", FilesystemUnknown},
	}
	for _, tc := range cases {
		if got := ParseFilesystemType(tc.in); got != tc.want {
			t.Errorf("ParseFilesystemType(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
