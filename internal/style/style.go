// Package style produces the per-character style bytes the display looks up
// in its style table. Producers classify text; the Highlighter keeps a style
// buffer in step with a text buffer and redraws what changed.
package style

import (
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/config"
	"github.com/kobzarvs/qtext/internal/display"
)

// Style bytes. Plain is the display's StyleBase, so an unstyled buffer is
// all Plain.
const (
	Plain byte = display.StyleBase + iota
	Keyword
	String
	Comment
	Type
	Function
	Number
	Constant
	Operator
	Punctuation
	Field
	Builtin
	Heading
	Error

	numStyles = int(Error-Plain) + 1
)

// KindStyle maps a capture or token kind to its style byte.
func KindStyle(kind string) byte {
	switch kind {
	case "keyword":
		return Keyword
	case "string":
		return String
	case "comment":
		return Comment
	case "type":
		return Type
	case "function":
		return Function
	case "number":
		return Number
	case "constant":
		return Constant
	case "operator":
		return Operator
	case "punctuation":
		return Punctuation
	case "field":
		return Field
	case "builtin":
		return Builtin
	case "heading":
		return Heading
	case "error":
		return Error
	}
	return Plain
}

// Table builds the display style table for theme, indexed by style byte.
func Table(theme config.Theme) []display.StyleEntry {
	fg := func(c string) display.StyleEntry {
		return display.StyleEntry{Fg: color(c), Bg: tcell.ColorDefault}
	}
	t := make([]display.StyleEntry, numStyles)
	t[Plain-Plain] = fg("")
	t[Keyword-Plain] = fg(theme.SyntaxKeyword)
	t[String-Plain] = fg(theme.SyntaxString)
	t[Comment-Plain] = fg(theme.SyntaxComment)
	t[Comment-Plain].Attrs = tcell.AttrItalic
	t[Type-Plain] = fg(theme.SyntaxType)
	t[Function-Plain] = fg(theme.SyntaxFunction)
	t[Number-Plain] = fg(theme.SyntaxNumber)
	t[Constant-Plain] = fg(theme.SyntaxConstant)
	t[Operator-Plain] = fg(theme.SyntaxOperator)
	t[Punctuation-Plain] = fg(theme.SyntaxPunctuation)
	t[Field-Plain] = fg(theme.SyntaxField)
	t[Builtin-Plain] = fg(theme.SyntaxBuiltin)
	t[Heading-Plain] = fg(theme.SyntaxHeading)
	t[Heading-Plain].Attrs = tcell.AttrBold
	t[Error-Plain] = display.StyleEntry{Fg: tcell.ColorRed, Bg: tcell.ColorDefault, Attrs: tcell.AttrUnderline}
	return t
}

// Colors builds the fixed display styles for theme.
func Colors(theme config.Theme) display.Colors {
	text := pair(tcell.StyleDefault, theme.Foreground, theme.Background)
	return display.Colors{
		Text:       text,
		Selection:  pair(tcell.StyleDefault, theme.SelectionForeground, theme.SelectionBackground),
		Secondary:  pair(tcell.StyleDefault, theme.SecondaryForeground, theme.SecondaryBackground).Underline(true),
		Highlight:  pair(tcell.StyleDefault, theme.HighlightForeground, theme.HighlightBackground),
		Cursor:     pair(tcell.StyleDefault, theme.CursorForeground, theme.CursorBackground),
		LineNumber: pair(text, theme.LineNumberForeground, theme.LineNumberBackground),
		Control:    pair(tcell.StyleDefault, theme.ControlForeground, "").Dim(true),
	}
}

func pair(base tcell.Style, fg, bg string) tcell.Style {
	if c := color(fg); c != tcell.ColorDefault {
		base = base.Foreground(c)
	}
	if c := color(bg); c != tcell.ColorDefault {
		base = base.Background(c)
	}
	return base
}

func color(name string) tcell.Color {
	if name == "" {
		return tcell.ColorDefault
	}
	return tcell.GetColor(name)
}

// Statusline is the style of the status row.
func Statusline(theme config.Theme) tcell.Style {
	return pair(tcell.StyleDefault, theme.StatuslineForeground, theme.StatuslineBackground)
}

// Scrollbar returns the track and thumb styles.
func Scrollbar(theme config.Theme) (track, thumb tcell.Style) {
	thumb = pair(tcell.StyleDefault, theme.ScrollbarForeground, theme.ScrollbarBackground)
	return thumb.Dim(true), thumb
}
