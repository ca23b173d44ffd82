// Package screen adapts a tcell.Screen to the display driver interfaces.
package screen

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/logger"
)

// MaxClipDepth bounds the clip stack.
const MaxClipDepth = 10

type rect struct {
	x, y, w, h int
}

func (r rect) intersect(o rect) rect {
	x0, y0 := max(r.x, o.x), max(r.y, o.y)
	x1, y1 := min(r.x+r.w, o.x+o.w), min(r.y+r.h, o.y+o.h)
	return rect{x0, y0, max(x1-x0, 0), max(y1-y0, 0)}
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Tcell draws into a tcell.Screen. Every draw is intersected with the
// current clip rectangle, which starts as the whole screen.
type Tcell struct {
	s     tcell.Screen
	rep   logger.Reporter
	clips []rect
}

func New(s tcell.Screen, rep logger.Reporter) *Tcell {
	if rep == nil {
		rep = logger.For("screen")
	}
	return &Tcell{s: s, rep: rep, clips: make([]rect, 0, MaxClipDepth)}
}

func (t *Tcell) Screen() tcell.Screen {
	return t.s
}

func (t *Tcell) clip() rect {
	if n := len(t.clips); n > 0 {
		return t.clips[n-1]
	}
	w, h := t.s.Size()
	return rect{0, 0, w, h}
}

// PushClip narrows clipping to the intersection of the current clip and
// the given rectangle. Pushing past MaxClipDepth is reported and ignored.
func (t *Tcell) PushClip(x, y, w, h int) {
	if len(t.clips) >= MaxClipDepth {
		t.rep.Error("clip stack overflow", "depth", len(t.clips))
		return
	}
	t.clips = append(t.clips, t.clip().intersect(rect{x, y, w, h}))
}

func (t *Tcell) PopClip() {
	if len(t.clips) == 0 {
		t.rep.Error("clip stack underflow")
		return
	}
	t.clips = t.clips[:len(t.clips)-1]
}

func (t *Tcell) ClipDepth() int {
	return len(t.clips)
}

func (t *Tcell) FillRegion(x, y, w, h int, ch rune, st tcell.Style) {
	r := t.clip().intersect(rect{x, y, w, h})
	for row := r.y; row < r.y+r.h; row++ {
		for col := r.x; col < r.x+r.w; col++ {
			t.s.SetContent(col, row, ch, nil, st)
		}
	}
}

func (t *Tcell) PutChar(x, y int, ch rune, repeat int, st tcell.Style) {
	t.FillRegion(x, y, repeat, 1, ch, st)
}

func (t *Tcell) PutString(x, y int, s string, st tcell.Style) {
	c := t.clip()
	for _, r := range s {
		if c.contains(x, y) {
			t.s.SetContent(x, y, r, nil, st)
		}
		x++
	}
}

// ShiftRows copies rows [from, to) of the columns [x, x+w) by `by` rows.
// Cells moved outside the clip are dropped.
func (t *Tcell) ShiftRows(x, w, from, to, by int) {
	if by == 0 || from >= to {
		return
	}
	c := t.clip()
	move := func(row int) {
		dst := row + by
		for col := x; col < x+w; col++ {
			if !c.contains(col, dst) || !c.contains(col, row) {
				continue
			}
			mainc, combc, st, _ := t.s.GetContent(col, row)
			t.s.SetContent(col, dst, mainc, combc, st)
		}
	}
	if by > 0 {
		for row := to - 1; row >= from; row-- {
			move(row)
		}
		return
	}
	for row := from; row < to; row++ {
		move(row)
	}
}

func (t *Tcell) ShowCursor(x, y int, style tcell.CursorStyle) {
	t.s.SetCursorStyle(style)
	t.s.ShowCursor(x, y)
}

func (t *Tcell) HideCursor() {
	t.s.HideCursor()
}
