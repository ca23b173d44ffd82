package display

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/wrap"
)

// Draw repaints whatever is damaged and clears the damage.
func (d *Display) Draw() {
	if d.drv == nil || d.w <= 0 || d.h <= 0 {
		return
	}
	level := d.damage.level
	if level == DamageNone {
		return
	}

	d.drv.PushClip(d.x, d.y, d.w, d.h)
	full := level == DamageFull || d.buf == nil
	if full {
		d.drv.FillRegion(d.x, d.y, d.w, d.h, ' ', d.colors.Text)
	}
	// rows never paint outside the text area, even for a tab cut by the
	// left edge
	d.drv.PushClip(d.textX, d.textY, d.textW, d.textH)
	if full {
		for row := 0; row < d.nVisibleLines; row++ {
			d.drawRow(row, 0, math.MaxInt)
		}
	} else {
		d.drawDamage()
	}
	d.drv.PopClip()
	if level >= DamageScroll {
		d.drawLineNumbers()
	}
	if dr, ok := d.vScroll.(Drawer); ok {
		dr.Draw(d.drv)
	}
	if dr, ok := d.hScroll.(Drawer); ok {
		dr.Draw(d.drv)
	}
	d.drawCursor()
	d.drv.PopClip()
	d.damage.reset(d.nVisibleLines)
}

func (d *Display) drawDamage() {
	ds := &d.damage
	if ds.shift != nil && !ds.allRows {
		sh := *ds.shift
		if bl, ok := d.drv.(Blitter); ok {
			bl.ShiftRows(d.textX, d.textW, d.textY+sh.from, d.textY+sh.to, sh.by)
		} else {
			ds.markRows(sh.from+sh.by, sh.to+sh.by)
		}
	}

	if _, hw := d.drv.(CursorPlacer); !hw && d.cursorOldRow >= 0 {
		ds.markRows(d.cursorOldRow, d.cursorOldRow+1)
	}

	for row := 0; row < d.nVisibleLines; row++ {
		if ds.allRows || ds.rows[row] {
			d.drawRow(row, 0, math.MaxInt)
		}
	}
	if ds.allRows {
		return
	}
	for i := 0; i < ds.nRanges; i++ {
		d.drawRange(ds.ranges[i].start, ds.ranges[i].end)
	}
}

// drawRange repaints the characters in [start, end). A range reaching
// past the last visible character also clears the rows below.
func (d *Display) drawRange(start, end int) {
	if d.nVisibleLines == 0 || end < d.firstChar || start > d.lastChar && !d.emptyLinesVisible() {
		return
	}
	startRow := 0
	if start >= d.firstChar {
		row, ok := d.positionToLine(start)
		if !ok {
			row = d.nVisibleLines - 1
		}
		startRow = row
	}
	endRow, ok := d.positionToLine(end)
	if !ok || end >= d.lastChar {
		endRow = d.nVisibleLines - 1
	}
	to := end
	if end >= d.lastChar {
		to = math.MaxInt
	}
	for row := startRow; row <= endRow; row++ {
		d.drawRow(row, start, to)
	}
}

// drawRow paints the characters of a row whose positions are in
// [from, to), and the blank tail of the row when to reaches past the end
// of the line.
func (d *Display) drawRow(row, from, to int) {
	y := d.textY + row
	lineStart := d.lineStarts[row]
	if lineStart == -1 {
		d.drv.FillRegion(d.textX, y, d.textW, 1, ' ', d.colors.Text)
		return
	}
	buf := d.buf
	lineEnd := d.LineEnd(lineStart, true)
	tab := buf.TabDistance()
	left := d.textX
	right := d.textX + d.textW

	col := 0
	for p := lineStart; p < lineEnd; p = buf.NextChar(p) {
		c := buf.CharAt(p)
		w := wrap.CharWidth(c, col, tab)
		x := d.textX + col - d.horizOffset
		col += w
		if p < from || p >= to || x+w <= left {
			continue
		}
		if x >= right {
			break
		}
		d.drawChar(x, y, c, w, d.resolve(d.cellStyle(p)))
	}

	if to > lineEnd {
		x := max(d.textX+col-d.horizOffset, left)
		if x < right {
			d.drv.FillRegion(x, y, right-x, 1, ' ', d.tailStyle(lineEnd))
		}
	}
}

func (d *Display) drawChar(x, y int, c rune, w int, st tcell.Style) {
	switch {
	case c == '\t':
		d.drv.PutChar(x, y, ' ', w, st)
	case c < 0x20 || c == 0x7f:
		st = overlay(st, d.colors.Control)
		caret := c + 0x40
		if c == 0x7f {
			caret = '?'
		}
		d.drv.PutChar(x, y, '^', 1, st)
		d.drv.PutChar(x+1, y, caret, 1, st)
	default:
		d.drv.PutChar(x, y, c, 1, st)
	}
}

// tailStyle colours the blank space after a line. A selected newline
// carries its selection to the right edge.
func (d *Display) tailStyle(lineEnd int) tcell.Style {
	if lineEnd >= d.buf.Length() || d.buf.ByteAt(lineEnd) != '\n' {
		return d.colors.Text
	}
	cs := d.cellStyle(lineEnd)
	cs.Base = 0
	return d.resolve(cs)
}

// drawLineNumbers fills the margin. Only rows that start a hard line get a
// number, so wrapped continuations stay blank.
func (d *Display) drawLineNumbers() {
	width := d.textX - d.x
	if width <= 0 {
		return
	}
	digits := max(width-2, 1)
	st := d.colors.LineNumber
	d.drv.FillRegion(d.x, d.textY, width, d.textH, ' ', st)
	if d.buf == nil {
		return
	}
	line := d.absoluteTopLine()
	if line == 0 {
		return
	}
	for row := 0; row < d.nVisibleLines; row++ {
		start := d.lineStarts[row]
		if start == -1 {
			break
		}
		if start == 0 || d.buf.ByteAt(start-1) == '\n' {
			num := fmt.Sprintf("%*d", digits, line)
			if len(num) > digits {
				num = num[len(num)-digits:]
			}
			d.drv.PutString(d.x+1, d.textY+row, num, st)
			line++
		} else if row == 0 {
			line++
		}
	}
}

// drawCursor places the hardware cursor when the driver has one, or paints
// the cursor cell.
func (d *Display) drawCursor() {
	placer, hw := d.drv.(CursorPlacer)
	d.cursorOldRow = -1
	if d.buf == nil || !d.cursorOn || !d.focused || d.cursorStyle == CursorHidden {
		if hw {
			placer.HideCursor()
		}
		return
	}
	x, y, ok := d.PositionToXY(d.cursorPos)
	if !ok || x < d.textX || x >= d.textX+d.textW || y >= d.textY+d.textH {
		if hw {
			placer.HideCursor()
		}
		return
	}
	if hw {
		placer.ShowCursor(x, y, d.cursorStyle.tcell())
		return
	}
	c := ' '
	if d.cursorPos < d.buf.Length() {
		if r := d.buf.CharAt(d.cursorPos); r >= 0x20 && r != 0x7f {
			c = r
		}
	}
	st := overlay(d.resolve(d.cellStyle(d.cursorPos)), d.colors.Cursor)
	d.drv.PutChar(x, y, c, 1, st)
	d.cursorOldRow = y - d.textY
}
