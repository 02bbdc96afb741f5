package fspath

// LocalPath is an owned path in the on-disk, platform-native
// representation. Names that originated in the remote namespace are
// stored percent-escaped; paths taken directly from the OS are assumed
// valid as-is. The zero value is an empty relative path on the native
// platform.
type LocalPath struct {
	native   string
	absolute bool
	ops      PlatformPathOps
}

// FromAbsolutePath wraps an absolute path already valid for the native
// platform. No escaping is applied.
func FromAbsolutePath(path string) LocalPath {
	return FromAbsolutePathOn(Native(), path)
}

// FromRelativePath wraps a relative path already valid for the native
// platform. No escaping is applied.
func FromRelativePath(path string) LocalPath {
	return FromRelativePathOn(Native(), path)
}

// FromRelativeName builds a single-component relative path from a name
// that originated in the decoded remote namespace, escaping every
// character the target filesystem cannot store.
func FromRelativeName(name string, t FilesystemType) LocalPath {
	return FromRelativeNameOn(Native(), name, t)
}

// FromAbsolutePathOn is FromAbsolutePath with explicit platform
// conventions.
func FromAbsolutePathOn(ops PlatformPathOps, path string) LocalPath {
	return LocalPath{native: path, absolute: true, ops: ops}
}

// FromRelativePathOn is FromRelativePath with explicit platform
// conventions.
func FromRelativePathOn(ops PlatformPathOps, path string) LocalPath {
	return LocalPath{native: path, ops: ops}
}

// FromRelativeNameOn is FromRelativeName with explicit platform
// conventions.
func FromRelativeNameOn(ops PlatformPathOps, name string, t FilesystemType) LocalPath {
	return LocalPath{native: Escape(name, t), ops: ops}
}

func (p LocalPath) platform() PlatformPathOps {
	if p.ops == nil {
		return Native()
	}
	return p.ops
}

// IsEmpty reports whether the path has no content.
func (p LocalPath) IsEmpty() bool {
	return p.native == ""
}

// IsAbsolute reports whether the path was constructed as absolute.
func (p LocalPath) IsAbsolute() bool {
	return p.absolute
}

// ToPath renders the native representation. When decodeEscapes is set,
// percent escapes are decoded back to the remote-namespace form;
// otherwise the on-disk spelling is returned untouched.
func (p LocalPath) ToPath(decodeEscapes bool) string {
	if decodeEscapes {
		return Unescape(p.native)
	}
	return p.native
}

// AppendWithSeparator concatenates other onto p. When ensureSeparator
// is set, a native separator is inserted between the two parts unless p
// is empty, p already ends with a separator, or other already begins
// with one; a double separator is never produced. With ensureSeparator
// unset the concatenation is plain, for callers that have already
// normalized the boundary.
func (p *LocalPath) AppendWithSeparator(other LocalPath, ensureSeparator bool) {
	if p.native == "" {
		p.native = other.native
		p.absolute = p.absolute || other.absolute
		if p.ops == nil {
			p.ops = other.ops
		}
		return
	}
	sep := p.platform().Separator()
	if ensureSeparator &&
		p.native[len(p.native)-1] != sep &&
		(other.native == "" || other.native[0] != sep) {
		p.native += string(sep)
	}
	p.native += other.native
}

// PrependWithSeparator inserts other in front of p, adding a native
// separator between the parts unless p is empty, p already begins with
// a separator, or other already ends with one.
func (p *LocalPath) PrependWithSeparator(other LocalPath) {
	sep := p.platform().Separator()
	if p.native != "" && p.native[0] != sep &&
		other.native != "" && other.native[len(other.native)-1] != sep {
		p.native = string(sep) + p.native
	}
	p.native = other.native + p.native
	p.absolute = p.absolute || other.absolute
	if p.ops == nil {
		p.ops = other.ops
	}
}

// IsContainingPathOf reports whether other lies at or below p. On
// success the returned boundary is the index in other's native
// representation where the relative remainder starts: one past the
// separator when p acts as an ancestor, or other's full length when the
// two paths are equal. Prefix matching follows the platform's case
// policy.
func (p LocalPath) IsContainingPathOf(other LocalPath) (int, bool) {
	ops := p.platform()
	n := len(p.native)
	if n > len(other.native) {
		return 0, false
	}
	if !prefixMatches(p.native, other.native[:n], ops.CaseInsensitive()) {
		return 0, false
	}
	sep := ops.Separator()
	switch {
	case n == len(other.native):
		return n, true
	case n > 0 && p.native[n-1] == sep:
		return n, true
	case other.native[n] == sep:
		return n + 1, true
	}
	// Shared prefix without a separator boundary ("a" vs "ab").
	return 0, false
}

// Compare orders p against another local path; both sides decode their
// percent escapes on the fly. See Compare for the ordering contract.
func (p LocalPath) Compare(other LocalPath, caseInsensitive bool) int {
	return Compare(Escaped(p), Escaped(other), caseInsensitive)
}

// CompareDecoded orders p against an already decoded string, such as a
// remote name.
func (p LocalPath) CompareDecoded(s string, caseInsensitive bool) int {
	return Compare(Escaped(p), Decoded(s), caseInsensitive)
}

func prefixMatches(a, b string, caseInsensitive bool) bool {
	if !caseInsensitive {
		return a == b
	}
	for i := 0; i < len(a); i++ {
		if foldByte(a[i]) != foldByte(b[i]) {
			return false
		}
	}
	return true
}

func foldByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 0x20
	}
	return c
}
