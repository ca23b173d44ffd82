package display

func (d *Display) InsertPosition() int {
	return d.cursorPos
}

// SetInsertPosition moves the cursor, clamped to the buffer. It cancels
// the vertical motion column.
func (d *Display) SetInsertPosition(pos int) {
	if d.buf == nil {
		return
	}
	pos = d.buf.Align(min(max(pos, 0), d.buf.Length()))
	if pos == d.cursorPos {
		return
	}
	d.cursorPreferredCol = -1
	d.redisplayCursor()
	d.cursorPos = pos
	d.redisplayCursor()
}

func (d *Display) MoveRight() bool {
	if d.buf == nil || d.cursorPos >= d.buf.Length() {
		return false
	}
	d.SetInsertPosition(d.buf.NextChar(d.cursorPos))
	return true
}

func (d *Display) MoveLeft() bool {
	if d.buf == nil || d.cursorPos <= 0 {
		return false
	}
	d.SetInsertPosition(d.buf.PrevCharClipped(d.cursorPos))
	return true
}

// cursorLineStart is the start of the display line holding the cursor and
// its row, or -1 when the cursor is off screen.
func (d *Display) cursorLineStart() (int, int) {
	if row, ok := d.positionToLine(d.cursorPos); ok && d.lineStarts[row] != -1 {
		return d.lineStarts[row], row
	}
	return d.LineStart(d.cursorPos), -1
}

func (d *Display) preferredColumn(lineStart int) int {
	if d.cursorPreferredCol >= 0 {
		return d.cursorPreferredCol
	}
	return d.columnOf(lineStart, d.cursorPos)
}

// MoveUp moves one display line up, keeping the column where the vertical
// motion started.
func (d *Display) MoveUp() bool {
	if d.buf == nil {
		return false
	}
	lineStart, row := d.cursorLineStart()
	if lineStart == 0 {
		return false
	}
	col := d.preferredColumn(lineStart)
	var prev int
	if row > 0 {
		prev = d.lineStarts[row-1]
	} else {
		prev = d.RewindLines(lineStart, 1)
	}
	lineEnd := d.LineEnd(prev, true)
	d.SetInsertPosition(d.positionAtColumn(prev, lineEnd, col, false))
	d.cursorPreferredCol = col
	return true
}

func (d *Display) MoveDown() bool {
	if d.buf == nil || d.cursorPos == d.buf.Length() {
		return false
	}
	lineStart, _ := d.cursorLineStart()
	col := d.preferredColumn(lineStart)
	next := d.SkipLines(lineStart, 1, true)
	lineEnd := d.LineEnd(next, true)
	d.SetInsertPosition(d.positionAtColumn(next, lineEnd, col, false))
	d.cursorPreferredCol = col
	return true
}

func (d *Display) SetCursorStyle(style CursorStyle) {
	d.cursorStyle = style
	d.redisplayCursor()
}

func (d *Display) CursorStyle() CursorStyle {
	return d.cursorStyle
}

// ShowCursor turns cursor drawing on or off.
func (d *Display) ShowCursor(on bool) {
	if d.cursorOn == on {
		return
	}
	d.cursorOn = on
	d.redisplayCursor()
}

func (d *Display) CursorShown() bool {
	return d.cursorOn
}

// Insert types text at the cursor and leaves the cursor after it.
func (d *Display) Insert(text string) {
	if d.buf == nil || text == "" {
		return
	}
	pos := d.cursorPos
	d.cursorToHint = pos + len(text)
	d.buf.Insert(pos, text)
	d.cursorToHint = noHint
}

// Overstrike types text over the characters after the cursor. It never
// replaces past the end of the line.
func (d *Display) Overstrike(text string) {
	if d.buf == nil || text == "" {
		return
	}
	start := d.cursorPos
	n := 0
	for range text {
		n++
	}
	end := d.buf.SkipDisplayedCharacters(start, n)
	d.cursorToHint = start + len(text)
	d.buf.Replace(start, end, text)
	d.cursorToHint = noHint
}

// PositionToXY returns the screen cell of pos. ok is false when pos is
// above or below the view.
func (d *Display) PositionToXY(pos int) (x, y int, ok bool) {
	if d.buf == nil {
		return 0, 0, false
	}
	if pos < d.firstChar || pos > d.lastChar && !d.emptyLinesVisible() {
		return 0, 0, false
	}
	row, found := d.positionToLine(pos)
	if !found {
		return 0, 0, false
	}
	y = d.textY + row
	lineStart := d.lineStarts[row]
	if lineStart == -1 {
		return d.textX - d.horizOffset, y, true
	}
	return d.textX + d.columnOf(lineStart, pos) - d.horizOffset, y, true
}

// XYToPosition maps a screen cell to a buffer position. CursorPos rounds to
// the nearest character boundary, CharacterPos picks the character under
// the cell.
func (d *Display) XYToPosition(x, y, mode int) int {
	if d.buf == nil || d.nVisibleLines == 0 {
		return 0
	}
	row := y - d.textY
	if row < 0 {
		return d.firstChar
	}
	row = min(row, d.nVisibleLines-1)
	lineStart := d.lineStarts[row]
	if lineStart == -1 {
		return d.buf.Length()
	}
	lineEnd := d.LineEnd(lineStart, true)
	col := x - d.textX + d.horizOffset
	if col < 0 {
		return lineStart
	}
	return d.positionAtColumn(lineStart, lineEnd, col, mode == CursorPos)
}

// InSelection reports whether the cell holds a primarily selected
// character.
func (d *Display) InSelection(x, y int) bool {
	if d.buf == nil {
		return false
	}
	return d.buf.Selection().Includes(d.XYToPosition(x, y, CharacterPos))
}

// PositionToLineCol returns the 1-based hard line and 0-based character
// column of pos.
func (d *Display) PositionToLineCol(pos int) (line, col int) {
	if d.buf == nil {
		return 1, 0
	}
	pos = min(max(pos, 0), d.buf.Length())
	if top := d.absoluteTopLine(); top > 0 && pos >= d.firstChar {
		line = top + d.buf.CountLines(d.firstChar, pos)
	} else {
		line = 1 + d.buf.CountLines(0, pos)
	}
	col = d.buf.CountDisplayedCharacters(d.buf.LineStart(pos), pos)
	return line, col
}
