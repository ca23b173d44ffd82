package editor

import (
	"unicode"

	"github.com/kobzarvs/qtext/internal/config"
	"github.com/kobzarvs/qtext/internal/display"
	"github.com/kobzarvs/qtext/internal/wrap"
)

const (
	actionMoveLeft          = "move_left"
	actionMoveRight         = "move_right"
	actionMoveUp            = "move_up"
	actionMoveDown          = "move_down"
	actionExtendLeft        = "extend_left"
	actionExtendRight       = "extend_right"
	actionExtendUp          = "extend_up"
	actionExtendDown        = "extend_down"
	actionWordLeft          = "word_left"
	actionWordRight         = "word_right"
	actionExtendWordLeft    = "extend_word_left"
	actionExtendWordRight   = "extend_word_right"
	actionLineStart         = "line_start"
	actionLineEnd           = "line_end"
	actionExtendLineStart   = "extend_line_start"
	actionExtendLineEnd     = "extend_line_end"
	actionBufferStart       = "buffer_start"
	actionBufferEnd         = "buffer_end"
	actionPageUp            = "page_up"
	actionPageDown          = "page_down"
	actionExtendPageUp      = "extend_page_up"
	actionExtendPageDown    = "extend_page_down"
	actionBackspace         = "backspace"
	actionDelete            = "delete"
	actionDeleteWord        = "delete_word"
	actionNewline           = "newline"
	actionTab               = "tab"
	actionToggleOverstrike  = "toggle_overstrike"
	actionSelectAll         = "select_all"
	actionCopy              = "copy"
	actionCut               = "cut"
	actionPaste             = "paste"
	actionUndo              = "undo"
	actionSave              = "save"
	actionQuit              = "quit"
	actionToggleLineNumbers = "toggle_line_numbers"
	actionToggleWrap        = "toggle_wrap"
)

// Do runs a keymap action by name. Unknown names are reported and not
// consumed.
func (e *Editor) Do(action string) bool {
	switch action {
	case actionMoveLeft:
		e.move(e.disp.MoveLeft)
	case actionMoveRight:
		e.move(e.disp.MoveRight)
	case actionMoveUp:
		e.move(e.disp.MoveUp)
	case actionMoveDown:
		e.move(e.disp.MoveDown)
	case actionExtendLeft:
		e.extend(e.disp.MoveLeft)
	case actionExtendRight:
		e.extend(e.disp.MoveRight)
	case actionExtendUp:
		e.extend(e.disp.MoveUp)
	case actionExtendDown:
		e.extend(e.disp.MoveDown)
	case actionWordLeft:
		e.move(e.previousWord)
	case actionWordRight:
		e.move(e.nextWord)
	case actionExtendWordLeft:
		e.extend(e.previousWord)
	case actionExtendWordRight:
		e.extend(e.nextWord)
	case actionLineStart:
		e.move(e.lineStart)
	case actionLineEnd:
		e.move(e.lineEnd)
	case actionExtendLineStart:
		e.extend(e.lineStart)
	case actionExtendLineEnd:
		e.extend(e.lineEnd)
	case actionBufferStart:
		e.move(func() bool { e.disp.SetInsertPosition(0); return true })
	case actionBufferEnd:
		e.move(func() bool { e.disp.SetInsertPosition(e.buf.Length()); return true })
	case actionPageUp:
		e.move(e.pageUp)
	case actionPageDown:
		e.move(e.pageDown)
	case actionExtendPageUp:
		e.extend(e.pageUp)
	case actionExtendPageDown:
		e.extend(e.pageDown)
	case actionBackspace:
		e.backspace()
	case actionDelete:
		e.deleteChar()
	case actionDeleteWord:
		e.deleteWord()
	case actionNewline:
		e.insertText("\n")
	case actionTab:
		e.insertText("\t")
	case actionToggleOverstrike:
		e.toggleOverstrike()
	case actionSelectAll:
		e.buf.Select(0, e.buf.Length())
		return true
	case actionCopy:
		e.copySelection()
		return true
	case actionCut:
		if e.copySelection() {
			e.killSelection()
		}
	case actionPaste:
		e.paste()
	case actionUndo:
		e.undo()
	case actionSave:
		if err := e.Save(""); err != nil {
			e.SetStatus("save failed: " + err.Error())
		}
		return true
	case actionQuit:
		e.requestQuit()
		return true
	case actionToggleLineNumbers:
		e.toggleLineNumbers()
		return true
	case actionToggleWrap:
		e.toggleWrap()
	default:
		e.rep.Warning("unknown editor action", "action", action)
		return false
	}
	e.disp.ShowInsertPosition()
	return true
}

// move runs a cursor motion and drops the selection.
func (e *Editor) move(motion func() bool) {
	e.buf.Unselect()
	motion()
}

// extend runs a cursor motion and stretches the primary selection from its
// anchor to the new cursor.
func (e *Editor) extend(motion func() bool) {
	if !e.buf.Selected() {
		e.anchor = e.disp.InsertPosition()
	}
	motion()
	if pos := e.disp.InsertPosition(); pos != e.anchor {
		e.buf.Select(e.anchor, pos)
	} else {
		e.buf.Unselect()
	}
}

// isSeparator matches word separators in the same sense as word motions:
// blanks and punctuation except '$' and '_'.
func isSeparator(r rune) bool {
	return r != '$' && r != '_' && (unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r))
}

// nextWord moves past the rest of the current word and the separators
// after it.
func (e *Editor) nextWord() bool {
	pos := e.disp.InsertPosition()
	n := e.buf.Length()
	if pos >= n {
		return false
	}
	for pos < n && !isSeparator(e.buf.CharAt(pos)) {
		pos = e.buf.NextChar(pos)
	}
	for pos < n && isSeparator(e.buf.CharAt(pos)) {
		pos = e.buf.NextChar(pos)
	}
	e.disp.SetInsertPosition(pos)
	return true
}

// previousWord moves to the start of the word before the cursor.
func (e *Editor) previousWord() bool {
	pos := e.disp.InsertPosition()
	if pos == 0 {
		return false
	}
	pos = e.buf.PrevCharClipped(pos)
	for pos > 0 && isSeparator(e.buf.CharAt(pos)) {
		pos = e.buf.PrevCharClipped(pos)
	}
	for pos > 0 && !isSeparator(e.buf.CharAt(pos)) {
		pos = e.buf.PrevCharClipped(pos)
	}
	if isSeparator(e.buf.CharAt(pos)) {
		pos = e.buf.NextChar(pos)
	}
	e.disp.SetInsertPosition(pos)
	return true
}

func (e *Editor) lineStart() bool {
	e.disp.SetInsertPosition(e.disp.LineStart(e.disp.InsertPosition()))
	return true
}

func (e *Editor) lineEnd() bool {
	e.disp.SetInsertPosition(e.disp.LineEnd(e.disp.InsertPosition(), false))
	return true
}

func (e *Editor) pageUp() bool {
	moved := false
	for i := 0; i < max(e.disp.VisibleLines()-1, 1); i++ {
		if !e.disp.MoveUp() {
			break
		}
		moved = true
	}
	return moved
}

func (e *Editor) pageDown() bool {
	moved := false
	for i := 0; i < max(e.disp.VisibleLines()-1, 1); i++ {
		if !e.disp.MoveDown() {
			break
		}
		moved = true
	}
	return moved
}

func (e *Editor) backspace() {
	if e.buf.Selected() {
		e.killSelection()
		return
	}
	pos := e.disp.InsertPosition()
	if pos == 0 {
		return
	}
	e.buf.Remove(e.buf.PrevCharClipped(pos), pos)
}

func (e *Editor) deleteChar() {
	if e.buf.Selected() {
		e.killSelection()
		return
	}
	pos := e.disp.InsertPosition()
	if pos >= e.buf.Length() {
		return
	}
	e.buf.Remove(pos, e.buf.NextChar(pos))
}

// deleteWord removes from the start of the previous word to the cursor.
func (e *Editor) deleteWord() {
	if e.buf.Selected() {
		e.killSelection()
		return
	}
	end := e.disp.InsertPosition()
	if !e.previousWord() {
		return
	}
	e.buf.Remove(e.disp.InsertPosition(), end)
}

func (e *Editor) toggleOverstrike() {
	e.overstrike = !e.overstrike
	if e.overstrike {
		e.disp.SetCursorStyle(display.CursorBlock)
		e.SetStatus("overstrike")
		return
	}
	e.disp.SetCursorStyle(e.insertStyle)
	e.SetStatus("insert")
}

// copySelection reports whether there was a selection to copy.
func (e *Editor) copySelection() bool {
	if !e.buf.Selected() {
		return false
	}
	if err := e.clip.WriteAll(e.buf.SelectionText()); err != nil {
		e.SetStatus("clipboard unavailable")
		e.rep.Warning("clipboard write failed", "error", err)
	}
	return true
}

func (e *Editor) paste() {
	text, err := e.clip.ReadAll()
	if err != nil {
		e.SetStatus("clipboard unavailable")
		e.rep.Warning("clipboard read failed", "error", err)
		return
	}
	if text == "" {
		e.SetStatus("clipboard empty")
		return
	}
	e.insertText(text)
}

func (e *Editor) undo() {
	pos, ok := e.buf.Undo()
	if !ok {
		e.SetStatus("nothing to undo")
		return
	}
	e.buf.Unselect()
	e.disp.SetInsertPosition(pos)
}

// requestQuit needs a second request when there are unsaved changes.
func (e *Editor) requestQuit() {
	if e.modified && !e.quitWarn {
		e.quitWarn = true
		e.SetStatus("unsaved changes, quit again to discard them")
		return
	}
	e.quit = true
}

func (e *Editor) toggleLineNumbers() {
	if e.disp.LineNumberWidth() > 0 {
		e.disp.SetLineNumberWidth(0)
		return
	}
	width := e.cfg.Display.LineNumbers
	if width <= 0 {
		width = config.DefaultLineNumbers
	}
	e.disp.SetLineNumberWidth(width)
}

func (e *Editor) toggleWrap() {
	if mode, _ := e.disp.WrapMode(); mode != wrap.None {
		e.disp.SetWrapMode(wrap.None, 0)
		return
	}
	mode, ok := wrap.ParseMode(e.cfg.Display.WrapMode)
	if !ok || mode == wrap.None {
		mode = wrap.AtBounds
	}
	e.disp.SetWrapMode(mode, e.cfg.Display.WrapMargin)
}
