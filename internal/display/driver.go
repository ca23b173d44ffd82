package display

import "github.com/gdamore/tcell/v2"

// Driver is the character-cell surface the display draws on. Coordinates
// are screen cells; every call is clipped to the current clip rectangle.
type Driver interface {
	FillRegion(x, y, w, h int, ch rune, st tcell.Style)
	PutChar(x, y int, ch rune, repeat int, st tcell.Style)
	PutString(x, y int, s string, st tcell.Style)
	PushClip(x, y, w, h int)
	PopClip()
}

// Blitter is implemented by drivers that can move rows of cells. Rows
// [from, to) of the region x, w are copied by `by` rows.
type Blitter interface {
	ShiftRows(x, w, from, to, by int)
}

// CursorPlacer is implemented by drivers with a hardware cursor.
type CursorPlacer interface {
	ShowCursor(x, y int, style tcell.CursorStyle)
	HideCursor()
}

// RangeFeedback receives scroll positions and reports user scrolls back.
type RangeFeedback interface {
	SetRange(pos, size, first, total int)
	OnUserScroll(fn func(pos int))
}

// Placer is implemented by feedback widgets that occupy screen cells. The
// display gives them a one-cell strip along its right or bottom edge.
type Placer interface {
	Place(x, y, w, h int)
}

// Drawer is implemented by feedback widgets that paint themselves.
type Drawer interface {
	Draw(drv Driver)
}
