// Package display keeps a viewport over a text buffer and redraws it on a
// character-cell Driver. Buffer edits are folded into the visible line
// table incrementally and repainted at the smallest granularity the damage
// allows.
package display

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/logger"
	"github.com/kobzarvs/qtext/internal/textbuf"
	"github.com/kobzarvs/qtext/internal/wrap"
)

// CursorStyle selects how the insert position is shown.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorBar
	CursorUnderline
	CursorHidden
)

// ParseCursorStyle accepts "block", "bar", "underline" and "hidden".
func ParseCursorStyle(s string) (CursorStyle, bool) {
	switch s {
	case "block", "":
		return CursorBlock, true
	case "bar":
		return CursorBar, true
	case "underline":
		return CursorUnderline, true
	case "hidden":
		return CursorHidden, true
	}
	return CursorBlock, false
}

func (c CursorStyle) tcell() tcell.CursorStyle {
	switch c {
	case CursorBar:
		return tcell.CursorStyleSteadyBar
	case CursorUnderline:
		return tcell.CursorStyleSteadyUnderline
	default:
		return tcell.CursorStyleSteadyBlock
	}
}

// Position modes for XYToPosition.
const (
	CursorPos = iota
	CharacterPos
)

const noHint = -1

type Display struct {
	drv Driver
	rep logger.Reporter
	buf *textbuf.Buffer

	modifyID textbuf.ListenerID

	// outer rectangle and the text area inside it
	x, y, w, h                 int
	textX, textY, textW, textH int
	lineNumWidth               int

	engine wrap.Engine

	lineStarts      []int
	nVisibleLines   int
	nBufferLines    int
	topLineNum      int
	absTopLineNum   int
	needAbsTopLine  bool
	horizOffset     int
	firstChar       int
	lastChar        int

	cursorPos          int
	cursorOn           bool
	cursorStyle        CursorStyle
	cursorPreferredCol int
	cursorToHint       int
	cursorOldRow       int
	focused            bool

	styleBuf   *textbuf.Buffer
	styleTable []StyleEntry
	colors     Colors

	damage damageState

	vScroll RangeFeedback
	hScroll RangeFeedback
}

type Option func(*Display)

func WithReporter(r logger.Reporter) Option {
	return func(d *Display) {
		if r != nil {
			d.rep = r
		}
	}
}

func WithColors(c Colors) Option {
	return func(d *Display) {
		d.colors = c
	}
}

func New(x, y, w, h int, drv Driver, opts ...Option) *Display {
	d := &Display{
		drv:                drv,
		rep:                logger.For("display"),
		topLineNum:         1,
		absTopLineNum:      1,
		cursorOn:           true,
		cursorPreferredCol: -1,
		cursorToHint:       noHint,
		cursorOldRow:       -1,
		focused:            true,
		colors:             DefaultColors(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Resize(x, y, w, h)
	return d
}

// SetBuffer attaches buf, or detaches when buf is nil. The view resets to
// the top of the new buffer.
func (d *Display) SetBuffer(buf *textbuf.Buffer) {
	if buf == d.buf {
		return
	}
	if d.buf != nil {
		d.buf.RemoveModifyFunc(d.modifyID)
	}
	d.buf = buf
	d.topLineNum = 1
	d.absTopLineNum = 1
	d.horizOffset = 0
	d.firstChar = 0
	d.lastChar = 0
	d.cursorPos = 0
	d.cursorPreferredCol = -1
	d.nBufferLines = 0
	if buf != nil {
		d.modifyID = buf.AddModifyFunc(d.bufferModified)
		d.nBufferLines = d.countLines(0, buf.Length(), true)
	}
	d.relayout()
	d.damage.raise(DamageFull)
}

func (d *Display) Buffer() *textbuf.Buffer {
	return d.buf
}

// Resize moves the display. Scrollbars that implement Placer get a strip
// along the right and bottom edges and the line-number margin is taken
// from the left.
func (d *Display) Resize(x, y, w, h int) {
	d.x, d.y, d.w, d.h = x, y, max(w, 0), max(h, 0)

	textW, textH := d.w, d.h
	vp, vPlaced := d.vScroll.(Placer)
	hp, hPlaced := d.hScroll.(Placer)
	if vPlaced && textW > 1 {
		textW--
	}
	if hPlaced && textH > 1 {
		textH--
	}
	margin := min(d.lineNumWidth, max(textW-1, 0))
	d.textX = d.x + margin
	d.textY = d.y
	d.textW = textW - margin
	d.textH = textH
	if vPlaced {
		vp.Place(d.x+textW, d.y, d.w-textW, textH)
	}
	if hPlaced {
		hp.Place(d.x, d.y+textH, textW, d.h-textH)
	}

	d.nVisibleLines = d.textH
	if cap(d.lineStarts) >= d.nVisibleLines {
		d.lineStarts = d.lineStarts[:d.nVisibleLines]
	} else {
		d.lineStarts = make([]int, d.nVisibleLines)
	}
	d.engine.Resize(d.textW)
	if d.buf != nil && d.engine.Wrapping() {
		d.nBufferLines = d.countLines(0, d.buf.Length(), true)
		d.firstChar = d.LineStart(d.firstChar)
		d.topLineNum = d.countLines(0, d.firstChar, true) + 1
		d.resetAbsTopLineNum()
	}
	d.relayout()
	d.damage.reset(d.nVisibleLines)
	d.damage.raise(DamageFull)
}

// relayout recomputes the line table from firstChar and clamps the view.
func (d *Display) relayout() {
	if d.buf == nil {
		for i := range d.lineStarts {
			d.lineStarts[i] = -1
		}
		d.updateScrollbars()
		return
	}
	d.calcLineStarts(0, d.nVisibleLines-1)
	d.calcLastChar()
	d.cursorPos = min(d.cursorPos, d.buf.Length())
	d.scroll(d.topLineNum, d.horizOffset)
	d.updateScrollbars()
}

// SetWrapMode changes wrapping. arg is the column (AtColumn) or pixel
// (AtPixel) margin and is ignored otherwise.
func (d *Display) SetWrapMode(mode wrap.Mode, arg int) {
	d.engine.Configure(mode, arg, d.textW)
	if d.buf != nil {
		d.nBufferLines = d.countLines(0, d.buf.Length(), true)
		d.firstChar = d.LineStart(d.firstChar)
		d.topLineNum = d.countLines(0, d.firstChar, true) + 1
		d.resetAbsTopLineNum()
	}
	d.relayout()
	d.damage.raise(DamageFull)
}

func (d *Display) WrapMode() (wrap.Mode, int) {
	return d.engine.Mode, d.engine.Arg
}

// SetLineNumberWidth sets the width of the line-number margin in cells;
// zero turns it off.
func (d *Display) SetLineNumberWidth(width int) {
	width = max(width, 0)
	if width == d.lineNumWidth {
		return
	}
	d.lineNumWidth = width
	d.Resize(d.x, d.y, d.w, d.h)
}

func (d *Display) LineNumberWidth() int {
	return d.lineNumWidth
}

// MaintainAbsoluteLineNumber keeps the real line number of the top line up
// to date in wrap mode even without a line-number margin.
func (d *Display) MaintainAbsoluteLineNumber(on bool) {
	d.needAbsTopLine = on
	d.resetAbsTopLineNum()
}

// SetStyle installs a style buffer parallel to the text buffer and the
// table its bytes index. A nil styleBuf turns styling off.
func (d *Display) SetStyle(styleBuf *textbuf.Buffer, table []StyleEntry) {
	d.styleBuf = styleBuf
	d.styleTable = table
	d.damage.raise(DamageFull)
}

func (d *Display) SetColors(c Colors) {
	d.colors = c
	d.damage.raise(DamageFull)
}

// SetScrollbars connects scroll feedback widgets; either may be nil.
func (d *Display) SetScrollbars(v, h RangeFeedback) {
	d.vScroll = v
	d.hScroll = h
	if v != nil {
		v.OnUserScroll(func(pos int) { d.ScrollTo(pos, d.horizOffset) })
	}
	if h != nil {
		h.OnUserScroll(func(pos int) { d.ScrollTo(d.topLineNum, pos) })
	}
	d.Resize(d.x, d.y, d.w, d.h)
}

// SetFocus records whether the display owns keyboard focus; the cursor is
// drawn only while focused.
func (d *Display) SetFocus(focused bool) {
	if focused == d.focused {
		return
	}
	d.focused = focused
	d.redisplayCursor()
}

func (d *Display) Focused() bool {
	return d.focused
}

func (d *Display) Bounds() (x, y, w, h int) {
	return d.x, d.y, d.w, d.h
}

// TextArea is the rectangle holding text, without margin and scrollbars.
func (d *Display) TextArea() (x, y, w, h int) {
	return d.textX, d.textY, d.textW, d.textH
}

func (d *Display) TopLine() int {
	return d.topLineNum
}

func (d *Display) HorizOffset() int {
	return d.horizOffset
}

func (d *Display) FirstVisible() int {
	return d.firstChar
}

func (d *Display) LastVisible() int {
	return d.lastChar
}

func (d *Display) VisibleLines() int {
	return d.nVisibleLines
}

// BufferLines is the number of display line breaks in the whole buffer.
func (d *Display) BufferLines() int {
	return d.nBufferLines
}

// LineStarts returns a copy of the visible line table; -1 marks rows past
// the end of the text.
func (d *Display) LineStarts() []int {
	out := make([]int, len(d.lineStarts))
	copy(out, d.lineStarts)
	return out
}

func (d *Display) Damage() Damage {
	return d.damage.level
}

// RedisplayRange schedules the characters in [start, end) for repainting.
func (d *Display) RedisplayRange(start, end int) {
	d.redisplayRange(start, end, DamageExpose)
}

func (d *Display) redisplayRange(start, end int, level Damage) {
	if d.buf == nil {
		return
	}
	d.damage.addRange(start, end)
	d.damage.raise(level)
}

func (d *Display) redisplayCursor() {
	if d.buf == nil {
		return
	}
	d.redisplayRange(d.buf.PrevCharClipped(d.cursorPos), d.buf.NextChar(d.cursorPos), DamageExpose)
}
