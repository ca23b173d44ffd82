// Package scrollbar is a one-cell scroll feedback widget for the text
// display. It draws an arrow at each end, a track and a proportional thumb.
package scrollbar

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/display"
	"github.com/kobzarvs/qtext/internal/event"
)

type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

type Scrollbar struct {
	orient     Orientation
	x, y, w, h int

	pos, size, first, total int

	onScroll func(int)

	dragging   bool
	dragOffset int

	Track tcell.Style
	Thumb tcell.Style
}

func New(o Orientation) *Scrollbar {
	return &Scrollbar{
		orient: o,
		Track:  tcell.StyleDefault.Foreground(tcell.ColorGray),
		Thumb:  tcell.StyleDefault,
	}
}

var (
	_ display.RangeFeedback = (*Scrollbar)(nil)
	_ display.Placer        = (*Scrollbar)(nil)
	_ display.Drawer        = (*Scrollbar)(nil)
)

func (s *Scrollbar) SetRange(pos, size, first, total int) {
	s.pos, s.size, s.first, s.total = pos, size, first, total
}

// Range returns the last values pushed by the display.
func (s *Scrollbar) Range() (pos, size, first, total int) {
	return s.pos, s.size, s.first, s.total
}

func (s *Scrollbar) OnUserScroll(fn func(pos int)) {
	s.onScroll = fn
}

func (s *Scrollbar) Place(x, y, w, h int) {
	s.x, s.y, s.w, s.h = x, y, w, h
}

func (s *Scrollbar) length() int {
	if s.orient == Vertical {
		return s.h
	}
	return s.w
}

// along returns the offset of a screen cell along the bar, and whether it
// lies on the bar.
func (s *Scrollbar) along(x, y int) (int, bool) {
	if x < s.x || x >= s.x+s.w || y < s.y || y >= s.y+s.h {
		return 0, false
	}
	if s.orient == Vertical {
		return y - s.y, true
	}
	return x - s.x, true
}

func (s *Scrollbar) hasArrows() bool {
	return s.length() >= 3
}

// track returns the first cell of the track and its length.
func (s *Scrollbar) track() (int, int) {
	if s.hasArrows() {
		return 1, s.length() - 2
	}
	return 0, s.length()
}

func (s *Scrollbar) maxPos() int {
	return max(s.first+s.total-s.size, s.first)
}

func (s *Scrollbar) thumb() (start, length int) {
	trackStart, trackLen := s.track()
	if trackLen <= 0 {
		return trackStart, 0
	}
	if s.total <= 0 || s.size >= s.total {
		return trackStart, trackLen
	}
	length = min(max(trackLen*s.size/s.total, 1), trackLen)
	span := s.maxPos() - s.first
	offset := 0
	if span > 0 {
		offset = (s.pos - s.first) * (trackLen - length) / span
	}
	offset = min(max(offset, 0), trackLen-length)
	return trackStart + offset, length
}

func (s *Scrollbar) Draw(drv display.Driver) {
	n := s.length()
	if n <= 0 || s.w <= 0 || s.h <= 0 {
		return
	}
	thumbStart, thumbLen := s.thumb()
	for i := 0; i < n; i++ {
		ch, st := '░', s.Track
		switch {
		case s.hasArrows() && i == 0:
			ch, st = s.arrow(true), s.Thumb
		case s.hasArrows() && i == n-1:
			ch, st = s.arrow(false), s.Thumb
		case i >= thumbStart && i < thumbStart+thumbLen:
			ch, st = '█', s.Thumb
		}
		if s.orient == Vertical {
			drv.PutChar(s.x, s.y+i, ch, s.w, st)
		} else {
			drv.FillRegion(s.x+i, s.y, 1, s.h, ch, st)
		}
	}
}

func (s *Scrollbar) arrow(first bool) rune {
	switch {
	case s.orient == Vertical && first:
		return '▲'
	case s.orient == Vertical:
		return '▼'
	case first:
		return '◀'
	default:
		return '▶'
	}
}

// Handle reacts to mouse events on the bar and reports whether the event
// was consumed. Arrows step by one, the track pages by the visible size and
// the thumb can be dragged.
func (s *Scrollbar) Handle(ev event.Event) bool {
	switch ev.Kind {
	case event.Push:
		at, ok := s.along(ev.X, ev.Y)
		if !ok {
			return false
		}
		n := s.length()
		thumbStart, thumbLen := s.thumb()
		switch {
		case s.hasArrows() && at == 0:
			s.scrollTo(s.pos - 1)
		case s.hasArrows() && at == n-1:
			s.scrollTo(s.pos + 1)
		case at < thumbStart:
			s.scrollTo(s.pos - max(s.size, 1))
		case at >= thumbStart+thumbLen:
			s.scrollTo(s.pos + max(s.size, 1))
		default:
			s.dragging = true
			s.dragOffset = at - thumbStart
		}
		return true
	case event.Drag:
		if !s.dragging {
			return false
		}
		at := ev.Y - s.y
		if s.orient == Horizontal {
			at = ev.X - s.x
		}
		s.scrollTo(s.posForThumb(at - s.dragOffset))
		return true
	case event.Release:
		if !s.dragging {
			return false
		}
		s.dragging = false
		return true
	}
	return false
}

func (s *Scrollbar) Dragging() bool {
	return s.dragging
}

// posForThumb converts a thumb start cell into a scroll position.
func (s *Scrollbar) posForThumb(cell int) int {
	trackStart, trackLen := s.track()
	_, thumbLen := s.thumb()
	free := trackLen - thumbLen
	if free <= 0 {
		return s.first
	}
	span := s.maxPos() - s.first
	return s.first + ((cell-trackStart)*span+free/2)/free
}

func (s *Scrollbar) scrollTo(pos int) {
	pos = min(max(pos, s.first), s.maxPos())
	if pos == s.pos || s.onScroll == nil {
		return
	}
	s.onScroll(pos)
}
