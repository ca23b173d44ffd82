// Package wrap computes soft line breaks over buffer text. It keeps no state
// beyond its configuration, so every result is a function of the text and
// the margin.
package wrap

import "math"

type Mode int

const (
	None Mode = iota
	AtColumn
	AtPixel
	AtBounds
)

// PixelsPerColumn converts a pixel wrap margin into text cells.
const PixelsPerColumn = 8

func (m Mode) String() string {
	switch m {
	case AtColumn:
		return "column"
	case AtPixel:
		return "pixel"
	case AtBounds:
		return "bounds"
	default:
		return "none"
	}
}

// ParseMode accepts the names produced by String.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "none", "":
		return None, true
	case "column":
		return AtColumn, true
	case "pixel":
		return AtPixel, true
	case "bounds":
		return AtBounds, true
	}
	return None, false
}

// Text is the read-only view of a buffer the engine needs.
type Text interface {
	Length() int
	CharAt(pos int) rune
	NextChar(pos int) int
	PrevChar(pos int) int
	LineStart(pos int) int
	LineEnd(pos int) int
	SkipLines(pos, nLines int) int
	RewindLines(pos, nLines int) int
	CountLines(start, end int) int
	TabDistance() int
}

// Engine holds the wrap configuration. Margin is in cells.
type Engine struct {
	Mode   Mode
	Arg    int
	Margin int
}

// Configure sets the mode and resolves the margin. arg is a column count
// for AtColumn and a pixel width for AtPixel; zero means the view width.
func (e *Engine) Configure(mode Mode, arg, viewWidth int) {
	e.Mode = mode
	e.Arg = arg
	e.Resize(viewWidth)
}

// Resize re-resolves the margin for a new view width.
func (e *Engine) Resize(viewWidth int) {
	switch e.Mode {
	case AtColumn:
		e.Margin = e.Arg
	case AtPixel:
		e.Margin = e.Arg / PixelsPerColumn
	case AtBounds:
		e.Margin = viewWidth
	default:
		e.Margin = 0
		return
	}
	if e.Margin <= 0 {
		e.Margin = viewWidth
	}
	if e.Margin < 1 {
		e.Margin = 1
	}
}

func (e Engine) Wrapping() bool {
	return e.Mode != None
}

func (e Engine) margin() int {
	if !e.Wrapping() {
		return math.MaxInt
	}
	return max(e.Margin, 1)
}

// CharWidth is the number of cells r takes when drawn at column.
func CharWidth(r rune, column, tabDistance int) int {
	switch {
	case r == '\t':
		if tabDistance <= 0 {
			return 1
		}
		return tabDistance - column%tabDistance
	case r < 0x20 || r == 0x7f:
		return 2
	default:
		return 1
	}
}

// Result of a Counter walk.
type Result struct {
	// Pos is where the walk stopped: maxPos, the start of the line after
	// the last counted one, or the buffer length.
	Pos int
	// Lines is the number of line breaks, soft or hard, crossed.
	Lines int
	// LineStart and LineEnd bound the last line examined.
	LineStart int
	LineEnd   int
}

// Counter walks the text from startPos, counting display lines until maxPos
// or maxLines is reached. The walk continues past maxPos to the end of its
// line because a later character can move a word wrap back before maxPos.
// With countLastLineMissingNewline, a final partial line that has no
// newline counts as one more line.
func (e Engine) Counter(t Text, startPos, maxPos, maxLines int, startIsLineStart, countLastLineMissingNewline bool) Result {
	wrapMargin := e.margin()
	tabDist := t.TabDistance()
	length := t.Length()

	lineStart := startPos
	if !startIsLineStart {
		lineStart = t.LineStart(startPos)
	}

	nLines := 0
	colNum := 0
	width := 0
	newLineStart := 0
	for p := lineStart; p < length; p = t.NextChar(p) {
		c := t.CharAt(p)
		if c == '\n' {
			if p >= maxPos {
				return Result{Pos: maxPos, Lines: nLines, LineStart: lineStart, LineEnd: maxPos}
			}
			nLines++
			next := t.NextChar(p)
			if nLines >= maxLines {
				return Result{Pos: next, Lines: nLines, LineStart: next, LineEnd: p}
			}
			lineStart = next
			colNum = 0
			width = 0
			continue
		}
		colNum++
		width += CharWidth(c, width, tabDist)
		if width <= wrapMargin {
			continue
		}

		// past the margin: break after the last blank, else before p
		breakAt := -1
		for b := p; b >= lineStart; b = t.PrevChar(b) {
			if bc := t.CharAt(b); bc == ' ' || bc == '\t' {
				breakAt = b
				break
			}
		}
		if breakAt >= 0 {
			newLineStart = t.NextChar(breakAt)
			colNum = 0
			width = 0
			end := t.NextChar(p)
			for i := newLineStart; i < end; i = t.NextChar(i) {
				width += CharWidth(t.CharAt(i), width, tabDist)
				colNum++
			}
		} else {
			newLineStart = max(p, t.NextChar(lineStart))
			if newLineStart > p {
				colNum = 0
				width = 0
			} else {
				colNum = 1
				width = CharWidth(c, 0, tabDist)
			}
		}

		if p >= maxPos {
			if maxPos < newLineStart {
				return Result{Pos: maxPos, Lines: nLines, LineStart: lineStart, LineEnd: maxPos}
			}
			return Result{Pos: maxPos, Lines: nLines + 1, LineStart: newLineStart, LineEnd: maxPos}
		}
		nLines++
		if nLines >= maxLines {
			if breakAt >= 0 {
				return Result{Pos: t.NextChar(breakAt), Lines: nLines, LineStart: lineStart, LineEnd: breakAt}
			}
			return Result{Pos: newLineStart, Lines: nLines, LineStart: lineStart, LineEnd: newLineStart}
		}
		lineStart = newLineStart
	}

	res := Result{Pos: length, Lines: nLines, LineStart: lineStart, LineEnd: length}
	if countLastLineMissingNewline && colNum > 0 {
		res.Lines++
	}
	return res
}
