package fspath

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Utf8Iterator walks a UTF-8 encoded string one Unicode scalar value at
// a time. Multi-byte sequences are consumed whole, so a 4-byte sequence
// yields a single scalar >= 0x10000. The iterator is single-pass; build
// a new one to rescan.
type Utf8Iterator struct {
	s   string
	off int
}

// NewUtf8Iterator returns an iterator positioned at the start of s.
func NewUtf8Iterator(s string) Utf8Iterator {
	return Utf8Iterator{s: s}
}

// End reports whether every code unit has been consumed.
func (it *Utf8Iterator) End() bool {
	return it.off >= len(it.s)
}

// Get returns the next scalar value, or NUL once the input is
// exhausted. Calling Get at the end is idempotent. A malformed byte
// decodes to utf8.RuneError and consumes a single unit, keeping the
// walk total over arbitrary input.
func (it *Utf8Iterator) Get() rune {
	if it.End() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(it.s[it.off:])
	it.off += size
	return r
}

// Utf16Iterator walks a UTF-16 code-unit sequence one scalar value at a
// time, combining surrogate pairs. Lone surrogates pass through as raw
// units rather than failing.
type Utf16Iterator struct {
	units []uint16
	off   int
}

// NewUtf16Iterator returns an iterator positioned at the start of units.
func NewUtf16Iterator(units []uint16) Utf16Iterator {
	return Utf16Iterator{units: units}
}

// End reports whether every code unit has been consumed.
func (it *Utf16Iterator) End() bool {
	return it.off >= len(it.units)
}

// Get returns the next scalar value, or NUL once the input is exhausted.
func (it *Utf16Iterator) Get() rune {
	if it.End() {
		return 0
	}
	u := rune(it.units[it.off])
	if utf16.IsSurrogate(u) && it.off+1 < len(it.units) {
		if r := utf16.DecodeRune(u, rune(it.units[it.off+1])); r != utf8.RuneError {
			it.off += 2
			return r
		}
	}
	it.off++
	return u
}
