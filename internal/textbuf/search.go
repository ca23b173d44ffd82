package textbuf

import "unicode"

// SearchForward finds the first occurrence of s starting at or after start.
// Matching steps by whole characters; matchCase false compares lower-cased
// runes.
func (b *Buffer) SearchForward(start int, s string, matchCase bool) (int, bool) {
	if s == "" {
		return 0, false
	}
	needle := []rune(s)
	for pos := b.Align(max(start, 0)); pos < b.length; pos = b.NextChar(pos) {
		if b.matchAt(pos, needle, matchCase) {
			return pos, true
		}
	}
	return 0, false
}

// SearchBackward finds the last occurrence of s starting at or before start.
func (b *Buffer) SearchBackward(start int, s string, matchCase bool) (int, bool) {
	if s == "" {
		return 0, false
	}
	needle := []rune(s)
	pos := b.Align(min(start, b.length))
	for ; pos >= 0; pos = b.PrevChar(pos) {
		if b.matchAt(pos, needle, matchCase) {
			return pos, true
		}
	}
	return 0, false
}

func (b *Buffer) matchAt(pos int, needle []rune, matchCase bool) bool {
	for _, want := range needle {
		if pos >= b.length {
			return false
		}
		got := b.CharAt(pos)
		if got != want && (matchCase || unicode.ToLower(got) != unicode.ToLower(want)) {
			return false
		}
		pos = b.NextChar(pos)
	}
	return true
}
