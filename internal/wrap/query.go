package wrap

import "math"

// FindLineEnd returns the end of the display line starting at startPos and
// the start of the next one.
func (e Engine) FindLineEnd(t Text, startPos int, startIsLineStart bool) (lineEnd, nextLineStart int) {
	if !e.Wrapping() {
		lineEnd = t.LineEnd(startPos)
		return lineEnd, min(t.Length(), lineEnd+1)
	}
	r := e.Counter(t, startPos, t.Length(), 1, startIsLineStart, false)
	return r.LineEnd, r.Pos
}

// LineEnd is the end of the display line holding startPos.
func (e Engine) LineEnd(t Text, startPos int, startIsLineStart bool) int {
	if !e.Wrapping() {
		return t.LineEnd(startPos)
	}
	if startPos == t.Length() {
		return startPos
	}
	return e.Counter(t, startPos, t.Length(), 1, startIsLineStart, false).LineEnd
}

// LineStart is the start of the display line holding pos.
func (e Engine) LineStart(t Text, pos int) int {
	if !e.Wrapping() {
		return t.LineStart(pos)
	}
	return e.Counter(t, t.LineStart(pos), pos, math.MaxInt, true, false).LineStart
}

// SkipLines moves nLines display lines down from startPos.
func (e Engine) SkipLines(t Text, startPos, nLines int, startIsLineStart bool) int {
	if nLines == 0 {
		return startPos
	}
	if !e.Wrapping() {
		return t.SkipLines(startPos, nLines)
	}
	return e.Counter(t, startPos, t.Length(), nLines, startIsLineStart, false).Pos
}

// RewindLines moves nLines display lines up from startPos and returns the
// start of the line reached.
func (e Engine) RewindLines(t Text, startPos, nLines int) int {
	if !e.Wrapping() {
		return t.RewindLines(startPos, nLines)
	}
	pos := startPos
	for {
		lineStart := t.LineStart(pos)
		r := e.Counter(t, lineStart, pos, math.MaxInt, true, false)
		if r.Lines > nLines {
			return e.SkipLines(t, lineStart, r.Lines-nLines, true)
		}
		nLines -= r.Lines
		pos = t.PrevChar(lineStart)
		if pos < 0 {
			return 0
		}
		nLines--
	}
}

// CountLines counts display line breaks between startPos and endPos.
func (e Engine) CountLines(t Text, startPos, endPos int, startIsLineStart bool) int {
	if !e.Wrapping() {
		return t.CountLines(startPos, endPos)
	}
	return e.Counter(t, startPos, endPos, math.MaxInt, startIsLineStart, false).Lines
}

// WrapUsesCharacter reports whether the character at a display line end is
// consumed by the break (a newline, or the blank a word wrap broke at).
func (e Engine) WrapUsesCharacter(t Text, lineEndPos int) bool {
	if !e.Wrapping() || lineEndPos == t.Length() {
		return true
	}
	c := t.CharAt(lineEndPos)
	return c == '\n' || (c == '\t' || c == ' ') && lineEndPos+1 < t.Length()
}
