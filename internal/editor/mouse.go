package editor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/display"
	"github.com/kobzarvs/qtext/internal/event"
)

func (e *Editor) handleMouse(ev event.Event) bool {
	if e.grab != nil {
		consumed := e.grab.Handle(ev)
		if ev.Kind == event.Release || !e.grab.Dragging() {
			e.grab = nil
		}
		return consumed
	}
	if ev.Kind == event.Push && !e.dragging {
		for _, bar := range e.bars {
			if bar.Handle(ev) {
				if bar.Dragging() {
					e.grab = bar
				}
				return true
			}
		}
	}

	switch ev.Kind {
	case event.Push:
		if ev.Button&tcell.Button1 == 0 || !e.inDisplay(ev.X, ev.Y) {
			return false
		}
		e.push(ev)
		return true
	case event.Drag:
		if !e.dragging {
			return false
		}
		e.lastMouse = ev
		e.dragTo(ev.X, ev.Y)
		e.updateAutoScroll(ev.X, ev.Y)
		return true
	case event.Release:
		if !e.dragging {
			return false
		}
		e.dragging = false
		e.stopAutoScroll()
		return true
	}
	return false
}

func (e *Editor) inDisplay(x, y int) bool {
	dx, dy, dw, dh := e.disp.Bounds()
	return x >= dx && x < dx+dw && y >= dy && y < dy+dh
}

// push handles a button press in the text: one click places the cursor,
// two select a word and three a line. Shift extends the selection instead.
func (e *Editor) push(ev event.Event) {
	e.disp.SetFocus(true)
	now := e.now()
	if e.clicks > 0 && now.Sub(e.lastClick) <= doubleClickTime && ev.X == e.lastClickX && ev.Y == e.lastClickY {
		e.clicks++
	} else {
		e.clicks = 1
	}
	e.lastClick, e.lastClickX, e.lastClickY = now, ev.X, ev.Y
	e.dragging = true
	e.lastMouse = ev

	if ev.Mods&tcell.ModShift != 0 {
		if !e.buf.Selected() {
			e.dragPos = e.disp.InsertPosition()
		}
		e.dragTo(ev.X, ev.Y)
		return
	}

	pos := e.disp.XYToPosition(ev.X, ev.Y, display.CursorPos)
	e.drag = dragType((e.clicks - 1) % 3)
	switch e.drag {
	case dragChar:
		e.buf.Unselect()
		e.dragPos = pos
		e.disp.SetInsertPosition(pos)
	case dragWord:
		pos = e.disp.XYToPosition(ev.X, ev.Y, display.CharacterPos)
		start, end := e.disp.WordStart(pos), e.disp.WordEnd(pos)
		e.dragPos = start
		e.buf.Select(start, end)
		e.disp.SetInsertPosition(end)
	case dragLine:
		pos = e.disp.XYToPosition(ev.X, ev.Y, display.CharacterPos)
		start := e.buf.LineStart(pos)
		end := e.buf.NextChar(e.buf.LineEnd(pos))
		e.dragPos = start
		e.buf.Select(start, end)
		e.disp.SetInsertPosition(end)
	}
}

// dragTo stretches the selection from the drag anchor to the cell, in
// units of the drag type.
func (e *Editor) dragTo(x, y int) {
	pos := e.disp.XYToPosition(x, y, display.CursorPos)
	switch e.drag {
	case dragChar:
		e.buf.Select(e.dragPos, pos)
		e.disp.SetInsertPosition(pos)
	case dragWord:
		if pos < e.dragPos {
			e.buf.Select(e.disp.WordStart(pos), e.disp.WordEnd(e.dragPos))
			e.disp.SetInsertPosition(e.disp.WordStart(pos))
		} else {
			e.buf.Select(e.disp.WordStart(e.dragPos), e.disp.WordEnd(pos))
			e.disp.SetInsertPosition(e.disp.WordEnd(pos))
		}
	case dragLine:
		if pos < e.dragPos {
			e.buf.Select(e.buf.LineStart(pos), e.buf.NextChar(e.buf.LineEnd(e.dragPos)))
			e.disp.SetInsertPosition(e.buf.LineStart(pos))
		} else {
			end := e.buf.NextChar(e.buf.LineEnd(pos))
			e.buf.Select(e.buf.LineStart(e.dragPos), end)
			e.disp.SetInsertPosition(end)
		}
	}
}

// scrollDirection is the unit step toward a pointer outside the text area.
func (e *Editor) scrollDirection(x, y int) (dx, dy int) {
	tx, ty, tw, th := e.disp.TextArea()
	switch {
	case y < ty:
		dy = -1
	case y >= ty+th:
		dy = 1
	}
	switch {
	case x < tx:
		dx = -1
	case x >= tx+tw:
		dx = 1
	}
	return dx, dy
}

func (e *Editor) updateAutoScroll(x, y int) {
	dx, dy := e.scrollDirection(x, y)
	if dx == 0 && dy == 0 {
		e.stopAutoScroll()
		return
	}
	if e.autoCancel == nil {
		e.armAutoScroll()
	}
}

func (e *Editor) armAutoScroll() {
	if e.sched == nil {
		return
	}
	e.autoCancel = e.sched.After(autoScrollPeriod, e.autoScroll)
}

// autoScroll is one timer tick: scroll a row or column toward the pointer,
// extend the selection to the cell now under it, and re-arm.
func (e *Editor) autoScroll() {
	e.autoCancel = nil
	if !e.dragging {
		return
	}
	dx, dy := e.scrollDirection(e.lastMouse.X, e.lastMouse.Y)
	if dx == 0 && dy == 0 {
		return
	}
	e.disp.ScrollTo(e.disp.TopLine()+dy, e.disp.HorizOffset()+dx)
	x, y := e.clampToText(e.lastMouse.X, e.lastMouse.Y)
	e.dragTo(x, y)
	e.armAutoScroll()
}

func (e *Editor) clampToText(x, y int) (int, int) {
	tx, ty, tw, th := e.disp.TextArea()
	x = min(max(x, tx), tx+max(tw-1, 0))
	y = min(max(y, ty), ty+max(th-1, 0))
	return x, y
}

func (e *Editor) stopAutoScroll() {
	if e.autoCancel != nil {
		e.autoCancel()
		e.autoCancel = nil
	}
}
