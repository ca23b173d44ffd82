package textbuf

import (
	"bytes"
	"unicode/utf8"
)

// CharAt decodes the character starting at pos. Invalid bytes decode as
// utf8.RuneError.
func (b *Buffer) CharAt(pos int) rune {
	r, _ := b.decodeAt(pos)
	return r
}

func (b *Buffer) decodeAt(pos int) (rune, int) {
	if pos < 0 || pos >= b.length {
		return 0, 0
	}
	c := b.ByteAt(pos)
	if c < utf8.RuneSelf {
		return rune(c), 1
	}
	var tmp [utf8.UTFMax]byte
	n := 0
	for ; n < utf8.UTFMax && pos+n < b.length; n++ {
		tmp[n] = b.ByteAt(pos + n)
	}
	return utf8.DecodeRune(tmp[:n])
}

// NextChar returns the position after the character at pos, never past the
// end of the buffer.
func (b *Buffer) NextChar(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= b.length {
		return b.length
	}
	_, size := b.decodeAt(pos)
	return min(pos+size, b.length)
}

func (b *Buffer) NextCharClipped(pos int) int {
	return b.NextChar(pos)
}

// PrevChar returns the start of the character before pos, or -1 when pos
// is at the start of the buffer.
func (b *Buffer) PrevChar(pos int) int {
	if pos <= 0 {
		return -1
	}
	if pos > b.length {
		pos = b.length
	}
	var tmp [utf8.UTFMax]byte
	from := max(0, pos-utf8.UTFMax)
	n := 0
	for p := from; p < pos; p++ {
		tmp[n] = b.ByteAt(p)
		n++
	}
	_, size := utf8.DecodeLastRune(tmp[:n])
	return pos - size
}

func (b *Buffer) PrevCharClipped(pos int) int {
	return max(0, b.PrevChar(pos))
}

// Align moves pos left to the start of the character containing it.
func (b *Buffer) Align(pos int) int {
	if pos <= 0 || pos >= b.length {
		return pos
	}
	if utf8.RuneStart(b.ByteAt(pos)) {
		return pos
	}
	start := pos
	for i := 0; i < utf8.UTFMax-1 && start > 0 && !utf8.RuneStart(b.ByteAt(start)); i++ {
		start--
	}
	if _, size := b.decodeAt(start); start+size > pos {
		return start
	}
	return pos
}

func (b *Buffer) LineStart(pos int) int {
	found, ok := b.FindCharBackward(pos, '\n')
	if !ok {
		return 0
	}
	return found + 1
}

func (b *Buffer) LineEnd(pos int) int {
	found, _ := b.FindCharForward(pos, '\n')
	return found
}

// LineText returns the line containing pos without its newline.
func (b *Buffer) LineText(pos int) string {
	return b.TextRange(b.LineStart(pos), b.LineEnd(pos))
}

func (b *Buffer) WordStart(pos int) int {
	pos = b.Align(clampInt(pos, 0, b.length))
	for pos > 0 && !isWordSeparator(b.CharAt(pos)) {
		pos = b.PrevChar(pos)
	}
	if isWordSeparator(b.CharAt(pos)) {
		pos = b.NextChar(pos)
	}
	return pos
}

func (b *Buffer) WordEnd(pos int) int {
	pos = b.Align(clampInt(pos, 0, b.length))
	for pos < b.length && !isWordSeparator(b.CharAt(pos)) {
		pos = b.NextChar(pos)
	}
	return pos
}

func isWordSeparator(r rune) bool {
	if r < utf8.RuneSelf {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_')
	}
	switch {
	case r == 0xa0:
		return true
	case r >= 0x2000 && r <= 0x206f:
		return true
	case r >= 0x3000 && r <= 0x301f:
		return true
	case r >= 0xff01 && r <= 0xff0f, r >= 0xff1a && r <= 0xff20:
		return true
	case r >= 0xff3b && r <= 0xff40, r >= 0xff5b && r <= 0xff65:
		return true
	}
	return false
}

// FindCharForward returns the position of the first c at or after start.
// When c is absent it returns the buffer length and false.
func (b *Buffer) FindCharForward(start int, c rune) (int, bool) {
	if start >= b.length {
		return b.length, false
	}
	start = max(start, 0)
	if c < utf8.RuneSelf {
		if p := b.indexByte(start, byte(c)); p >= 0 {
			return p, true
		}
		return b.length, false
	}
	for p := start; p < b.length; p = b.NextChar(p) {
		if b.CharAt(p) == c {
			return p, true
		}
	}
	return b.length, false
}

// FindCharBackward returns the position of the last c before start, or 0
// and false.
func (b *Buffer) FindCharBackward(start int, c rune) (int, bool) {
	if start <= 0 {
		return 0, false
	}
	start = min(start, b.length)
	if c < utf8.RuneSelf {
		if p := b.lastIndexByte(start, byte(c)); p >= 0 {
			return p, true
		}
		return 0, false
	}
	for p := b.PrevChar(start); p >= 0; p = b.PrevChar(p) {
		if b.CharAt(p) == c {
			return p, true
		}
	}
	return 0, false
}

// indexByte searches [start, length) across both sides of the gap.
func (b *Buffer) indexByte(start int, c byte) int {
	gap := b.gapEnd - b.gapStart
	if start < b.gapStart {
		if i := bytes.IndexByte(b.buf[start:b.gapStart], c); i >= 0 {
			return start + i
		}
		start = b.gapStart
	}
	if i := bytes.IndexByte(b.buf[start+gap:b.length+gap], c); i >= 0 {
		return start + i
	}
	return -1
}

// lastIndexByte searches [0, end) backwards.
func (b *Buffer) lastIndexByte(end int, c byte) int {
	gap := b.gapEnd - b.gapStart
	if end > b.gapStart {
		if i := bytes.LastIndexByte(b.buf[b.gapStart+gap:end+gap], c); i >= 0 {
			return b.gapStart + i
		}
		end = b.gapStart
	}
	return bytes.LastIndexByte(b.buf[:end], c)
}

// CountLines counts newlines in [start, end).
func (b *Buffer) CountLines(start, end int) int {
	start = clampInt(start, 0, b.length)
	end = clampInt(end, 0, b.length)
	if start >= end {
		return 0
	}
	gap := b.gapEnd - b.gapStart
	n := 0
	if start < b.gapStart {
		n += bytes.Count(b.buf[start:min(end, b.gapStart)], []byte{'\n'})
	}
	if end > b.gapStart {
		n += bytes.Count(b.buf[max(start, b.gapStart)+gap:end+gap], []byte{'\n'})
	}
	return n
}

// SkipLines returns the start of the line nLines below the one at start,
// or the buffer length.
func (b *Buffer) SkipLines(start, nLines int) int {
	if nLines <= 0 {
		return start
	}
	pos := max(start, 0)
	for count := 0; pos < b.length; {
		p := b.indexByte(pos, '\n')
		if p < 0 {
			return b.length
		}
		pos = p + 1
		count++
		if count >= nLines {
			return pos
		}
	}
	return b.length
}

// RewindLines returns the start of the line nLines above the one holding
// start.
func (b *Buffer) RewindLines(start, nLines int) int {
	pos := min(start, b.length) - 1
	if pos <= 0 {
		return 0
	}
	for count := -1; pos >= 0; pos-- {
		if b.ByteAt(pos) == '\n' {
			count++
			if count >= nLines {
				return pos + 1
			}
		}
	}
	return 0
}

// CountDisplayedCharacters counts characters between lineStart and target.
func (b *Buffer) CountDisplayedCharacters(lineStart, target int) int {
	n := 0
	for pos := max(lineStart, 0); pos < target && pos < b.length; pos = b.NextChar(pos) {
		n++
	}
	return n
}

// SkipDisplayedCharacters advances nChars characters, stopping at a newline.
func (b *Buffer) SkipDisplayedCharacters(lineStart, nChars int) int {
	pos := max(lineStart, 0)
	for i := 0; i < nChars && pos < b.length; i++ {
		if b.ByteAt(pos) == '\n' {
			return pos
		}
		pos = b.NextChar(pos)
	}
	return pos
}
