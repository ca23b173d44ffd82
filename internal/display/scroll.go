package display

// ScrollTo makes topLine the first visible row and horizOffset the first
// visible column. Both are clamped; it reports whether the view moved.
func (d *Display) ScrollTo(topLine, horizOffset int) bool {
	if d.buf == nil {
		return false
	}
	moved := d.scroll(topLine, horizOffset)
	if moved {
		d.updateScrollbars()
	}
	return moved
}

func (d *Display) scroll(topLine, horizOffset int) bool {
	topLine = min(topLine, d.nBufferLines+3-d.nVisibleLines)
	topLine = max(topLine, 1)
	horizOffset = min(horizOffset, d.longestLine()-d.textW)
	horizOffset = max(horizOffset, 0)
	if topLine == d.topLineNum && horizOffset == d.horizOffset {
		return false
	}

	delta := topLine - d.topLineNum
	hChanged := horizOffset != d.horizOffset
	d.offsetLineStarts(topLine)
	d.horizOffset = horizOffset

	nVis := d.nVisibleLines
	if !hChanged && abs(delta) < nVis {
		d.recordShift(rowShift{from: max(0, delta), to: nVis + min(0, delta), by: -delta})
		if delta > 0 {
			d.damage.markRows(nVis-delta, nVis)
		} else {
			d.damage.markRows(0, -delta)
		}
	} else {
		d.damage.allRows = true
		d.damage.shift = nil
		d.damage.raise(DamageScroll)
	}
	return true
}

// ShowInsertPosition scrolls the minimum needed to bring the cursor into
// view.
func (d *Display) ShowInsertPosition() {
	if d.buf == nil || d.nVisibleLines == 0 {
		return
	}
	topLine := d.topLineNum
	hOffset := d.horizOffset
	cursor := d.cursorPos

	if cursor < d.firstChar {
		topLine -= d.countLines(d.LineStart(cursor), d.firstChar, true)
	} else if last := d.lineStarts[d.nVisibleLines-1]; last != -1 && cursor >= last {
		topLine += d.countLines(last, cursor, true)
	}
	if topLine != d.topLineNum {
		d.scroll(topLine, hOffset)
	}

	row, ok := d.positionToLine(cursor)
	if ok && d.lineStarts[row] != -1 {
		col := d.columnOf(d.lineStarts[row], cursor)
		switch {
		case col >= hOffset+d.textW:
			hOffset = col - d.textW + 1
		case col < hOffset:
			hOffset = col
		}
	}
	if hOffset != d.horizOffset {
		d.scroll(d.topLineNum, hOffset)
	}
	d.updateScrollbars()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
