package fspath

import "testing"

func TestUtf8Iterator_SingleUnit(t *testing.T) {
	it := NewUtf8Iterator("abc")

	if it.End() {
		t.Fatal("iterator ended before consuming input")
	}
	for _, want := range []rune{'a', 'b', 'c'} {
		if got := it.Get(); got != want {
			t.Errorf("Get() = %q, want %q", got, want)
		}
	}
	if !it.End() {
		t.Error("iterator did not end after consuming input")
	}
	if got := it.Get(); got != 0 {
		t.Errorf("Get() past end = %q, want NUL", got)
	}
	// Idempotent at end.
	if got := it.Get(); got != 0 {
		t.Errorf("repeated Get() past end = %q, want NUL", got)
	}
}

func TestUtf8Iterator_MultiUnit(t *testing.T) {
	// U+10000 encodes as a 4-byte sequence.
	it := NewUtf8Iterator("q\xf0\x90\x80\x80r")

	if it.End() {
		t.Fatal("iterator ended before consuming input")
	}
	if got := it.Get(); got != 'q' {
		t.Errorf("Get() = %q, want 'q'", got)
	}
	if got := it.Get(); got != 0x10000 {
		t.Errorf("Get() = %#x, want 0x10000", got)
	}
	if got := it.Get(); got != 'r' {
		t.Errorf("Get() = %q, want 'r'", got)
	}
	if !it.End() {
		t.Error("iterator did not end after consuming input")
	}
	if got := it.Get(); got != 0 {
		t.Errorf("Get() past end = %q, want NUL", got)
	}
}

func TestUtf8Iterator_Empty(t *testing.T) {
	it := NewUtf8Iterator("")

	if !it.End() {
		t.Error("empty iterator should start at end")
	}
	if got := it.Get(); got != 0 {
		t.Errorf("Get() = %q, want NUL", got)
	}
}

func TestUtf16Iterator_SingleUnit(t *testing.T) {
	it := NewUtf16Iterator([]uint16{'a', 'b', 'c'})

	for _, want := range []rune{'a', 'b', 'c'} {
		if got := it.Get(); got != want {
			t.Errorf("Get() = %q, want %q", got, want)
		}
	}
	if !it.End() {
		t.Error("iterator did not end after consuming input")
	}
	if got := it.Get(); got != 0 {
		t.Errorf("Get() past end = %q, want NUL", got)
	}
}

func TestUtf16Iterator_SurrogatePair(t *testing.T) {
	// U+10000 encodes as the surrogate pair D800 DC00.
	it := NewUtf16Iterator([]uint16{'q', 0xd800, 0xdc00, 'r'})

	if got := it.Get(); got != 'q' {
		t.Errorf("Get() = %q, want 'q'", got)
	}
	if got := it.Get(); got != 0x10000 {
		t.Errorf("Get() = %#x, want 0x10000", got)
	}
	if got := it.Get(); got != 'r' {
		t.Errorf("Get() = %q, want 'r'", got)
	}
	if !it.End() {
		t.Error("iterator did not end after consuming input")
	}
}

func TestUtf16Iterator_LoneSurrogate(t *testing.T) {
	// A high surrogate with no partner passes through as a raw unit.
	it := NewUtf16Iterator([]uint16{'q', 0xd800, 'r'})

	if got := it.Get(); got != 'q' {
		t.Errorf("Get() = %q, want 'q'", got)
	}
	if got := it.Get(); got != 0xd800 {
		t.Errorf("Get() = %#x, want 0xd800", got)
	}
	if got := it.Get(); got != 'r' {
		t.Errorf("Get() = %q, want 'r'", got)
	}
}
