package fspath

import "strings"

// Term is one operand of a path comparison: either an already decoded
// string or an escaped native path whose percent escapes must be
// decoded on the fly. Modelling the two sources as a tagged value lets
// a single Compare handle homogeneous and mixed pairs alike.
type Term struct {
	units  string
	decode bool
}

// Decoded wraps a plain decoded string, such as a remote name or path.
func Decoded(s string) Term {
	return Term{units: s}
}

// Escaped wraps a local path; its percent escapes are decoded during
// comparison, and platform namespace prefixes are stripped first.
func Escaped(p LocalPath) Term {
	return Term{
		units:  p.platform().StripPathPrefix(p.native, p.absolute),
		decode: true,
	}
}

// Compare produces a total, deterministic order over any two terms:
// negative when lhs sorts first, zero when equal, positive otherwise.
// Operands are walked as codepoint sequences; on an escaped term a
// valid %XY escape contributes its decoded byte as a single comparison
// unit while an invalid or truncated escape contributes the literal
// percent sign. With caseInsensitive set, each unit is folded to upper
// case within the basic unaccented alphabetic range before comparing.
// The first differing unit decides; a strict prefix sorts first.
func Compare(lhs, rhs Term, caseInsensitive bool) int {
	li := newTermIterator(lhs)
	ri := newTermIterator(rhs)
	for {
		switch {
		case li.end() && ri.end():
			return 0
		case li.end():
			return -1
		case ri.end():
			return 1
		}
		l, r := li.next(), ri.next()
		if caseInsensitive {
			l, r = foldCase(l), foldCase(r)
		}
		if l != r {
			if l < r {
				return -1
			}
			return 1
		}
	}
}

// FoldKey renders the fully decoded form of t, case-folded when
// caseInsensitive is set. Two terms compare equal exactly when their
// fold keys are identical, which makes the key usable as a stable
// database index for path identity.
func FoldKey(t Term, caseInsensitive bool) string {
	var b strings.Builder
	b.Grow(len(t.units))
	it := newTermIterator(t)
	for !it.end() {
		r := it.next()
		if caseInsensitive {
			r = foldCase(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// foldCase uppercases within the basic alphabetic range only. Accented
// and non-Latin characters compare by codepoint value.
func foldCase(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 0x20
	}
	return r
}

type termIterator struct {
	it     Utf8Iterator
	decode bool
}

func newTermIterator(t Term) termIterator {
	return termIterator{it: NewUtf8Iterator(t.units), decode: t.decode}
}

func (t *termIterator) end() bool {
	return t.it.End()
}

func (t *termIterator) next() rune {
	if t.decode {
		// The iterator is a value, so a copy gives cheap lookahead: the
		// escape is consumed only when all three units check out.
		look := t.it
		if look.Get() == '%' {
			hi := hexVal(look.Get())
			lo := hexVal(look.Get())
			if hi >= 0 && lo >= 0 {
				t.it = look
				return rune(hi<<4 | lo)
			}
		}
	}
	return t.it.Get()
}
