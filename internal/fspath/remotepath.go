package fspath

import "strings"

// RemotePath is a logical, already-decoded path in the cloud namespace.
// The separator is always a forward slash regardless of platform; a
// leading slash marks the path as absolute. No escaping is ever applied.
type RemotePath string

// IsEmpty reports whether the path has no content.
func (p RemotePath) IsEmpty() bool {
	return p == ""
}

// IsAbsolute reports whether the path starts at the namespace root.
func (p RemotePath) IsAbsolute() bool {
	return len(p) > 0 && p[0] == '/'
}

func (p RemotePath) String() string {
	return string(p)
}

// NextPathComponent extracts the next non-empty slash-delimited
// component at or after *index, advancing the cursor past the trailing
// separator. Leading separators are skipped without yielding an empty
// component, so absolute and relative paths iterate identically. Once
// no component remains it returns an empty component and false.
func (p RemotePath) NextPathComponent(index *int) (RemotePath, bool) {
	i := *index
	for i < len(p) && p[i] == '/' {
		i++
	}
	if i >= len(p) {
		*index = i
		return "", false
	}
	start := i
	for i < len(p) && p[i] != '/' {
		i++
	}
	component := p[start:i]
	if i < len(p) {
		i++
	}
	*index = i
	return component, true
}

// AppendComponent returns p extended with one more component, inserting
// a separator only when needed.
func (p RemotePath) AppendComponent(name string) RemotePath {
	if p == "" {
		return RemotePath(name)
	}
	if strings.HasSuffix(string(p), "/") {
		return p + RemotePath(name)
	}
	return p + "/" + RemotePath(name)
}

// Compare orders p against another remote path. Neither side carries
// escapes, so comparison is purely codepoint-wise.
func (p RemotePath) Compare(other RemotePath, caseInsensitive bool) int {
	return Compare(Decoded(string(p)), Decoded(string(other)), caseInsensitive)
}
