package display

import (
	"math"
	"strings"

	"github.com/kobzarvs/qtext/internal/textbuf"
	"github.com/kobzarvs/qtext/internal/wrap"
)

// Wrap-aware queries. With wrapping off they are the buffer's own line
// queries.

func (d *Display) LineStart(pos int) int {
	if d.buf == nil {
		return 0
	}
	return d.engine.LineStart(d.buf, pos)
}

func (d *Display) LineEnd(pos int, startIsLineStart bool) int {
	if d.buf == nil {
		return 0
	}
	return d.engine.LineEnd(d.buf, pos, startIsLineStart)
}

func (d *Display) CountLines(start, end int, startIsLineStart bool) int {
	return d.countLines(start, end, startIsLineStart)
}

func (d *Display) countLines(start, end int, startIsLineStart bool) int {
	if d.buf == nil {
		return 0
	}
	return d.engine.CountLines(d.buf, start, end, startIsLineStart)
}

func (d *Display) SkipLines(start, nLines int, startIsLineStart bool) int {
	if d.buf == nil {
		return 0
	}
	return d.engine.SkipLines(d.buf, start, nLines, startIsLineStart)
}

func (d *Display) RewindLines(start, nLines int) int {
	if d.buf == nil {
		return 0
	}
	return d.engine.RewindLines(d.buf, start, nLines)
}

func (d *Display) WordStart(pos int) int {
	if d.buf == nil {
		return 0
	}
	return d.buf.WordStart(pos)
}

func (d *Display) WordEnd(pos int) int {
	if d.buf == nil {
		return 0
	}
	return d.buf.WordEnd(pos)
}

func (d *Display) findLineEnd(start int, startIsLineStart bool) (lineEnd, nextLineStart int) {
	return d.engine.FindLineEnd(d.buf, start, startIsLineStart)
}

func (d *Display) emptyLinesVisible() bool {
	return d.nVisibleLines > 0 && d.lineStarts[d.nVisibleLines-1] == -1
}

// calcLineStarts fills rows [startLine, endLine] of the line table from the
// row above. A buffer ending in a newline gets one empty row holding the
// end position; rows past the text are -1.
func (d *Display) calcLineStarts(startLine, endLine int) {
	nVis := d.nVisibleLines
	if nVis == 0 {
		return
	}
	bufLen := d.buf.Length()
	endLine = min(max(endLine, 0), nVis-1)
	startLine = min(max(startLine, 0), nVis-1)
	if startLine > endLine {
		return
	}
	ls := d.lineStarts
	if startLine == 0 {
		ls[0] = d.firstChar
		startLine = 1
	}
	if startLine > endLine {
		return
	}
	startPos := ls[startLine-1]
	if startPos == -1 {
		for line := startLine; line <= endLine; line++ {
			ls[line] = -1
		}
		return
	}

	line := startLine
	for ; line <= endLine; line++ {
		lineEnd, next := d.findLineEnd(startPos, true)
		startPos = next
		if startPos >= bufLen {
			if line == 0 || ls[line-1] != bufLen && lineEnd != next {
				ls[line] = bufLen
				line++
			}
			break
		}
		ls[line] = startPos
	}
	for ; line <= endLine; line++ {
		ls[line] = -1
	}
}

// calcLastChar sets lastChar to the end of the last non-empty row.
func (d *Display) calcLastChar() {
	i := d.nVisibleLines - 1
	for i >= 0 && d.lineStarts[i] == -1 {
		i--
	}
	if i < 0 {
		d.lastChar = 0
		return
	}
	d.lastChar = d.LineEnd(d.lineStarts[i], true)
}

// positionToLine finds the visible row holding pos. A position past the
// text is placed on the first empty row when one is showing.
func (d *Display) positionToLine(pos int) (int, bool) {
	if pos < d.firstChar {
		return 0, false
	}
	if pos > d.lastChar {
		if !d.emptyLinesVisible() {
			return 0, false
		}
		if d.lastChar < d.buf.Length() {
			row, ok := d.positionToLine(d.lastChar)
			if !ok {
				d.rep.Error("line table consistency check failed", "pos", d.lastChar)
				return max(d.nVisibleLines-1, 0), false
			}
			row++
			return row, row <= d.nVisibleLines-1
		}
		row, _ := d.positionToLine(d.buf.PrevCharClipped(d.lastChar))
		return row, true
	}
	for i := d.nVisibleLines - 1; i >= 0; i-- {
		if d.lineStarts[i] != -1 && pos >= d.lineStarts[i] {
			return i, true
		}
	}
	return 0, false
}

// offsetLineStarts scrolls the line table so newTopLine is the first row,
// reusing the rows still visible.
func (d *Display) offsetLineStarts(newTopLine int) {
	oldTopLine := d.topLineNum
	oldFirstChar := d.firstChar
	lineDelta := newTopLine - oldTopLine
	nVis := d.nVisibleLines
	ls := d.lineStarts
	if lineDelta == 0 {
		return
	}
	lastLine := oldTopLine + nVis - 1

	switch {
	case newTopLine < oldTopLine && newTopLine < -lineDelta:
		d.firstChar = d.SkipLines(0, newTopLine-1, true)
	case newTopLine < oldTopLine:
		d.firstChar = d.RewindLines(d.firstChar, -lineDelta)
	case newTopLine < lastLine && ls[newTopLine-oldTopLine] != -1:
		d.firstChar = ls[newTopLine-oldTopLine]
	case newTopLine < lastLine:
		d.firstChar = d.SkipLines(0, newTopLine-1, true)
	case newTopLine-lastLine < d.nBufferLines-newTopLine && nVis > 0 && ls[nVis-1] != -1:
		d.firstChar = d.SkipLines(ls[nVis-1], newTopLine-lastLine, true)
	default:
		d.firstChar = d.RewindLines(d.buf.Length(), d.nBufferLines-newTopLine+1)
	}

	switch {
	case lineDelta < 0 && -lineDelta < nVis:
		for i := nVis - 1; i >= -lineDelta; i-- {
			ls[i] = ls[i+lineDelta]
		}
		d.calcLineStarts(0, -lineDelta)
	case lineDelta > 0 && lineDelta < nVis:
		for i := 0; i < nVis-lineDelta; i++ {
			ls[i] = ls[i+lineDelta]
		}
		d.calcLineStarts(nVis-lineDelta, nVis-1)
	default:
		d.calcLineStarts(0, nVis)
	}
	d.calcLastChar()

	if d.maintainingAbsTopLine() {
		if lineDelta < 0 {
			d.absTopLineNum -= d.buf.CountLines(d.firstChar, oldFirstChar)
		} else {
			d.absTopLineNum += d.buf.CountLines(oldFirstChar, d.firstChar)
		}
	}
	d.topLineNum = newTopLine
}

func (d *Display) maintainingAbsTopLine() bool {
	return d.engine.Wrapping() && (d.lineNumWidth > 0 || d.needAbsTopLine)
}

func (d *Display) resetAbsTopLineNum() {
	d.absTopLineNum = 1
	if d.buf != nil {
		d.absTopLineNum += d.buf.CountLines(0, d.firstChar)
	}
}

// absoluteTopLine is the hard line number of the top row, or 0 when it is
// not being tracked.
func (d *Display) absoluteTopLine() int {
	if !d.engine.Wrapping() {
		return d.topLineNum
	}
	if d.maintainingAbsTopLine() {
		return d.absTopLineNum
	}
	return 0
}

// updateLineStarts folds an edit into the line table. It reports whether
// the view was re-anchored, and when rows could be moved instead of
// redrawn, the position where the changed rows end.
func (d *Display) updateLineStarts(pos, charsInserted, charsDeleted, linesInserted, linesDeleted int) (scrolled bool, changedEnd int) {
	ls := d.lineStarts
	nVis := d.nVisibleLines
	charDelta := charsInserted - charsDeleted
	lineDelta := linesInserted - linesDeleted

	// edit entirely before the view
	if pos+charsDeleted < d.firstChar {
		d.topLineNum += lineDelta
		for i := 0; i < nVis && ls[i] != -1; i++ {
			ls[i] += charDelta
		}
		d.firstChar += charDelta
		d.lastChar += charDelta
		return false, -1
	}

	// edit began before the view and ate into it
	if pos < d.firstChar {
		lineOfEnd, ok := d.positionToLine(pos + charsDeleted)
		lineOfEnd++
		if ok && lineOfEnd < nVis && ls[lineOfEnd] != -1 {
			d.topLineNum = max(1, d.topLineNum+lineDelta)
			d.firstChar = d.RewindLines(ls[lineOfEnd]+charDelta, lineOfEnd)
		} else if d.topLineNum > d.nBufferLines+lineDelta {
			d.topLineNum = 1
			d.firstChar = 0
		} else {
			d.firstChar = d.SkipLines(0, d.topLineNum-1, true)
		}
		d.calcLineStarts(0, nVis-1)
		d.calcLastChar()
		return true, -1
	}

	// edit inside the view: move the rows after it
	if pos <= d.lastChar {
		lineOfPos, _ := d.positionToLine(pos)
		switch {
		case lineDelta == 0:
			for i := lineOfPos + 1; i < nVis && ls[i] != -1; i++ {
				ls[i] += charDelta
			}
		case lineDelta > 0:
			for i := nVis - 1; i >= lineOfPos+lineDelta+1; i-- {
				ls[i] = shifted(ls[i-lineDelta], charDelta)
			}
		default:
			for i := max(0, lineOfPos+1); i < nVis+lineDelta; i++ {
				ls[i] = shifted(ls[i-lineDelta], charDelta)
			}
		}
		if linesInserted >= 0 {
			d.calcLineStarts(lineOfPos+1, lineOfPos+linesInserted)
		}
		if lineDelta < 0 {
			d.calcLineStarts(nVis+lineDelta, nVis)
		}
		d.calcLastChar()

		switch {
		case lineDelta > 0 && lineOfPos+1 < nVis-lineDelta:
			d.recordShift(rowShift{from: lineOfPos + 1, to: nVis - lineDelta, by: lineDelta})
		case lineDelta < 0 && lineOfPos+1-lineDelta < nVis:
			d.recordShift(rowShift{from: lineOfPos + 1 - lineDelta, to: nVis, by: lineDelta})
			d.damage.markRows(nVis+lineDelta, nVis)
		default:
			return false, -1
		}
		if row := lineOfPos + linesInserted + 1; row < nVis && ls[row] != -1 {
			return false, ls[row]
		}
		return false, d.buf.NextChar(d.lastChar)
	}

	// insert at the end of the buffer into visible empty rows
	if d.emptyLinesVisible() {
		lineOfPos, _ := d.positionToLine(pos)
		d.calcLineStarts(lineOfPos, lineOfPos+linesInserted)
		d.calcLastChar()
	}
	return false, -1
}

func shifted(start, delta int) int {
	if start == -1 {
		return -1
	}
	return start + delta
}

// recordShift queues a row move and follows the old cursor row with it.
func (d *Display) recordShift(sh rowShift) {
	d.damage.addShift(sh)
	d.damage.raise(DamageScroll)
	if d.cursorOldRow >= sh.from && d.cursorOldRow < sh.to {
		d.cursorOldRow += sh.by
	}
}

// findWrapRange measures the extent of a wrapped edit. Counting starts
// one display line before pos and stops at a real newline past the
// inserted text or where the new line starts meet the old ones again; the
// deleted line count comes from re-running the counter over the old text.
func (d *Display) findWrapRange(deletedText string, pos, nInserted, nDeleted int) (modStart, modEnd, linesInserted, linesDeleted int) {
	buf := d.buf
	ls := d.lineStarts
	nVis := d.nVisibleLines
	visLine := 0
	nLines := 0

	var countFrom, countTo int
	if pos >= d.firstChar && pos <= d.lastChar {
		i := nVis - 1
		for ; i > 0; i-- {
			if ls[i] != -1 && pos >= ls[i] {
				break
			}
		}
		if i > 0 {
			countFrom = ls[i-1]
			visLine = i - 1
		} else {
			countFrom = buf.LineStart(pos)
		}
	} else {
		countFrom = buf.LineStart(pos)
	}

	lineStart := countFrom
	modStart = countFrom
	for {
		r := d.engine.Counter(buf, lineStart, buf.Length(), 1, true, false)
		if r.Pos >= buf.Length() {
			countTo = buf.Length()
			modEnd = countTo
			if r.Pos != r.LineEnd {
				nLines++
			}
			break
		}
		lineStart = r.Pos
		nLines++
		if lineStart > pos+nInserted && buf.ByteAt(lineStart-1) == '\n' {
			countTo = lineStart
			modEnd = lineStart
			break
		}

		if lineStart <= pos {
			// resync before pos: the modified range can start later
			for visLine < nVis && ls[visLine] < lineStart {
				visLine++
			}
			if visLine < nVis && ls[visLine] == lineStart {
				countFrom = lineStart
				nLines = 0
				if visLine+1 < nVis && ls[visLine+1] != -1 {
					modStart = min(pos, buf.PrevChar(ls[visLine+1]))
				} else {
					modStart = countFrom
				}
			} else {
				modStart = min(modStart, lineStart-1)
			}
		} else if lineStart > pos+nInserted {
			// resync after the edit: the modified range can end early
			adjusted := lineStart - nInserted + nDeleted
			for visLine < nVis && ls[visLine] < adjusted {
				visLine++
			}
			if visLine < nVis && ls[visLine] != -1 && ls[visLine] == adjusted {
				countTo = d.LineEnd(lineStart, true)
				modEnd = lineStart
				break
			}
		}
	}
	linesInserted = nLines

	// rebuild the pre-edit text of [countFrom, countTo) and count it
	length := (pos - countFrom) + nDeleted + (countTo - (pos + nInserted))
	old := textbuf.New(length, 0, textbuf.WithReporter(d.rep))
	old.CanUndo(false)
	old.SetTabDistance(buf.TabDistance())
	if pos > countFrom {
		old.CopyFrom(buf, countFrom, pos, 0)
	}
	if nDeleted != 0 {
		old.Insert(pos-countFrom, deletedText)
	}
	if countTo > pos+nInserted {
		old.CopyFrom(buf, pos+nInserted, countTo, pos-countFrom+nDeleted)
	}
	linesDeleted = d.engine.Counter(old, 0, old.Length(), math.MaxInt, true, false).Lines
	return modStart, modEnd, linesInserted, linesDeleted
}

// bufferModified keeps the view in step with the buffer.
func (d *Display) bufferModified(m textbuf.Modification) {
	buf := d.buf
	edited := m.Inserted != 0 || m.Deleted != 0
	oldFirstChar := d.firstChar
	origCursor := d.cursorPos

	if edited {
		d.cursorPreferredCol = -1
	}

	if edited && m.Pos == 0 && m.Deleted > 0 && m.Deleted >= d.lastChar && m.Inserted == buf.Length() {
		d.relayoutAll(m)
		return
	}

	if !edited {
		d.redisplayRange(m.Pos, m.Pos+m.Restyled, DamageExpose)
		return
	}

	var linesInserted, linesDeleted, wrapStart, wrapEnd int
	if d.engine.Wrapping() {
		wrapStart, wrapEnd, linesInserted, linesDeleted = d.findWrapRange(m.DeletedText, m.Pos, m.Inserted, m.Deleted)
	} else {
		if m.Inserted > 0 {
			linesInserted = buf.CountLines(m.Pos, m.Pos+m.Inserted)
		}
		linesDeleted = strings.Count(m.DeletedText, "\n")
	}

	var scrolled bool
	var changedEnd int
	if d.engine.Wrapping() {
		scrolled, changedEnd = d.updateLineStarts(wrapStart, wrapEnd-wrapStart,
			m.Deleted+m.Pos-wrapStart+(wrapEnd-(m.Pos+m.Inserted)), linesInserted, linesDeleted)
	} else {
		scrolled, changedEnd = d.updateLineStarts(m.Pos, m.Inserted, m.Deleted, linesInserted, linesDeleted)
	}

	if d.maintainingAbsTopLine() {
		switch {
		case m.Pos+m.Deleted < oldFirstChar && d.firstChar == oldFirstChar+m.Inserted-m.Deleted:
			d.absTopLineNum += buf.CountLines(m.Pos, m.Pos+m.Inserted) - strings.Count(m.DeletedText, "\n")
		case m.Pos < oldFirstChar || scrolled || d.firstChar != oldFirstChar:
			// the wrap range can start a line above the edit and re-anchor
			// the view
			d.resetAbsTopLineNum()
		}
	}

	d.nBufferLines += linesInserted - linesDeleted
	d.followEdit(m)
	d.updateScrollbars()

	if scrolled {
		d.damage.allRows = true
		d.damage.shift = nil
		d.damage.raise(DamageScroll)
		return
	}

	start := m.Pos
	if d.engine.Wrapping() {
		start = wrapStart
	}
	if origCursor == start && d.cursorPos != start {
		start = buf.PrevCharClipped(start)
	}

	var end int
	switch {
	case linesInserted == linesDeleted && d.engine.Wrapping():
		end = wrapEnd
	case linesInserted == linesDeleted:
		end = buf.NextChar(buf.LineEnd(m.Pos + m.Inserted))
	case changedEnd >= 0:
		end = changedEnd
	default:
		end = buf.NextChar(d.lastChar)
	}
	level := DamageExpose
	if linesInserted != linesDeleted || d.lineNumWidth > 0 && d.movesHardLines(m) {
		// the margin numbers below the edit changed
		level = DamageScroll
	}
	d.redisplayRange(start, end, level)
}

// movesHardLines reports whether an edit added or removed a newline. With
// wrapping on, that renumbers the margin even when the row count holds.
func (d *Display) movesHardLines(m textbuf.Modification) bool {
	if strings.Contains(m.DeletedText, "\n") {
		return true
	}
	return m.Inserted > 0 && d.buf.CountLines(m.Pos, m.Pos+m.Inserted) > 0
}

// relayoutAll handles a change that replaced the whole visible text, such
// as a load or a tab distance change.
func (d *Display) relayoutAll(m textbuf.Modification) {
	d.nBufferLines = d.countLines(0, d.buf.Length(), true)
	d.topLineNum = min(d.topLineNum, max(d.nBufferLines+1, 1))
	d.firstChar = d.SkipLines(0, d.topLineNum-1, true)
	d.resetAbsTopLineNum()
	d.followEdit(m)
	d.calcLineStarts(0, d.nVisibleLines-1)
	d.calcLastChar()
	d.scroll(d.topLineNum, d.horizOffset)
	d.updateScrollbars()
	d.damage.raise(DamageFull)
}

// followEdit moves the cursor across an edit, preferring an explicit hint.
func (d *Display) followEdit(m textbuf.Modification) {
	switch {
	case d.cursorToHint != noHint:
		d.cursorPos = d.cursorToHint
		d.cursorToHint = noHint
	case d.cursorPos > m.Pos && d.cursorPos < m.Pos+m.Deleted:
		d.cursorPos = m.Pos
	case d.cursorPos > m.Pos:
		d.cursorPos += m.Inserted - m.Deleted
	}
	d.cursorPos = min(max(d.cursorPos, 0), d.buf.Length())
}

// lineWidth is the number of cells the display line at lineStart takes.
func (d *Display) lineWidth(lineStart int) int {
	lineEnd := d.LineEnd(lineStart, true)
	tab := d.buf.TabDistance()
	width := 0
	for p := lineStart; p < lineEnd; p = d.buf.NextChar(p) {
		width += wrap.CharWidth(d.buf.CharAt(p), width, tab)
	}
	return width
}

// columnOf is the cell column of pos within the display line at lineStart.
func (d *Display) columnOf(lineStart, pos int) int {
	tab := d.buf.TabDistance()
	col := 0
	for p := lineStart; p < pos && p < d.buf.Length(); p = d.buf.NextChar(p) {
		col += wrap.CharWidth(d.buf.CharAt(p), col, tab)
	}
	return col
}

// positionAtColumn finds the position in [lineStart, lineEnd] for column
// col. With nearest set it rounds to the closest character boundary,
// otherwise it returns the character covering col.
func (d *Display) positionAtColumn(lineStart, lineEnd, col int, nearest bool) int {
	tab := d.buf.TabDistance()
	x := 0
	for p := lineStart; p < lineEnd; p = d.buf.NextChar(p) {
		w := wrap.CharWidth(d.buf.CharAt(p), x, tab)
		if col < x+w {
			if nearest && col-x >= (w+1)/2 {
				return d.buf.NextChar(p)
			}
			return p
		}
		x += w
	}
	return lineEnd
}

// longestLine is the widest visible row in cells. The cursor row counts
// one cell past the cursor so it can always be scrolled into view.
func (d *Display) longestLine() int {
	if d.buf == nil {
		return 0
	}
	longest := 0
	cursorRow, cursorVisible := -1, false
	if d.cursorPos >= d.firstChar && d.cursorPos <= d.lastChar || d.emptyLinesVisible() {
		cursorRow, cursorVisible = d.positionToLine(d.cursorPos)
	}
	for i := 0; i < d.nVisibleLines; i++ {
		if d.lineStarts[i] == -1 {
			break
		}
		w := d.lineWidth(d.lineStarts[i])
		if cursorVisible && i == cursorRow {
			w = max(w, d.columnOf(d.lineStarts[i], d.cursorPos)+1)
		}
		longest = max(longest, w)
	}
	return longest
}

func (d *Display) updateScrollbars() {
	if d.vScroll != nil {
		d.vScroll.SetRange(d.topLineNum, d.nVisibleLines, 1, d.nBufferLines+2)
	}
	if d.hScroll != nil {
		d.hScroll.SetRange(d.horizOffset, d.textW, 0, max(d.longestLine(), d.textW+d.horizOffset))
	}
}
