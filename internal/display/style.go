package display

import "github.com/gdamore/tcell/v2"

// StyleBase is the style byte of the first table entry.
const StyleBase = 'A'

// StyleEntry is one row of the style table. ColorDefault keeps the text
// colour for that channel.
type StyleEntry struct {
	Fg    tcell.Color
	Bg    tcell.Color
	Attrs tcell.AttrMask
}

// Colors are the fixed display styles.
type Colors struct {
	Text       tcell.Style
	Selection  tcell.Style
	Secondary  tcell.Style
	Highlight  tcell.Style
	Cursor     tcell.Style
	LineNumber tcell.Style
	Control    tcell.Style
}

func DefaultColors() Colors {
	text := tcell.StyleDefault
	return Colors{
		Text:       text,
		Selection:  text.Reverse(true),
		Secondary:  text.Underline(true),
		Highlight:  text.Bold(true),
		Cursor:     text.Reverse(true),
		LineNumber: text.Dim(true),
		Control:    text.Dim(true),
	}
}

// CellStyle describes how one character is drawn.
type CellStyle struct {
	Base      byte
	Primary   bool
	Secondary bool
	Highlight bool
}

func (d *Display) cellStyle(pos int) CellStyle {
	cs := CellStyle{
		Primary:   d.buf.Selection().Includes(pos),
		Secondary: d.buf.SecondarySelection().Includes(pos),
		Highlight: d.buf.HighlightSelection().Includes(pos),
	}
	if d.styleBuf != nil && pos < d.styleBuf.Length() {
		cs.Base = d.styleBuf.ByteAt(pos)
	}
	return cs
}

// resolve turns a cell description into a terminal style. The primary
// selection wins over the highlight, which wins over the secondary
// selection.
func (d *Display) resolve(cs CellStyle) tcell.Style {
	st := d.colors.Text
	if cs.Base >= StyleBase {
		if i := int(cs.Base - StyleBase); i < len(d.styleTable) {
			e := d.styleTable[i]
			if e.Fg != tcell.ColorDefault {
				st = st.Foreground(e.Fg)
			}
			if e.Bg != tcell.ColorDefault {
				st = st.Background(e.Bg)
			}
			st = st.Attributes(e.Attrs)
		}
	}
	switch {
	case cs.Primary:
		return overlay(st, d.colors.Selection)
	case cs.Highlight:
		return overlay(st, d.colors.Highlight)
	case cs.Secondary:
		return overlay(st, d.colors.Secondary)
	}
	return st
}

// overlay applies the colours and attributes set in top over base.
func overlay(base, top tcell.Style) tcell.Style {
	fg, bg, attrs := top.Decompose()
	if fg != tcell.ColorDefault {
		base = base.Foreground(fg)
	}
	if bg != tcell.ColorDefault {
		base = base.Background(bg)
	}
	_, _, baseAttrs := base.Decompose()
	base = base.Attributes(baseAttrs | attrs)
	if attrs&tcell.AttrUnderline != 0 {
		base = base.Underline(true)
	}
	return base
}
