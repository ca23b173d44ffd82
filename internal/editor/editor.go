// Package editor binds keys and the mouse to editing operations on a
// display and its buffer.
package editor

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/config"
	"github.com/kobzarvs/qtext/internal/display"
	"github.com/kobzarvs/qtext/internal/event"
	"github.com/kobzarvs/qtext/internal/logger"
	"github.com/kobzarvs/qtext/internal/scrollbar"
	"github.com/kobzarvs/qtext/internal/textbuf"
	"github.com/kobzarvs/qtext/internal/wrap"
)

// Scheduler runs fn once on the event loop goroutine after d. The returned
// function cancels the call if it has not run yet.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

const (
	doubleClickTime  = 400 * time.Millisecond
	autoScrollPeriod = 100 * time.Millisecond
	wheelLines       = 3
)

type dragType int

const (
	dragChar dragType = iota
	dragWord
	dragLine
)

type Editor struct {
	disp   *display.Display
	buf    *textbuf.Buffer
	keymap config.Keymap
	cfg    config.Config

	clip  Clipboard
	sched Scheduler
	rep   logger.Reporter
	now   func() time.Time

	bars []*scrollbar.Scrollbar
	grab *scrollbar.Scrollbar

	overstrike  bool
	insertStyle display.CursorStyle
	anchor      int

	path     string
	modified bool
	status   string
	quit     bool
	quitWarn bool
	listener textbuf.ListenerID

	dragging   bool
	drag       dragType
	dragPos    int
	clicks     int
	lastClick  time.Time
	lastClickX int
	lastClickY int

	lastMouse  event.Event
	autoCancel func()
}

type Option func(*Editor)

func WithClipboard(c Clipboard) Option {
	return func(e *Editor) {
		if c != nil {
			e.clip = c
		}
	}
}

// WithScheduler enables drag auto-scrolling.
func WithScheduler(s Scheduler) Option {
	return func(e *Editor) {
		e.sched = s
	}
}

func WithReporter(r logger.Reporter) Option {
	return func(e *Editor) {
		if r != nil {
			e.rep = r
		}
	}
}

// WithClock replaces time.Now for multi-click detection.
func WithClock(now func() time.Time) Option {
	return func(e *Editor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithScrollbars attaches scrollbars to the display and routes mouse events
// over them. Either may be nil.
func WithScrollbars(v, h *scrollbar.Scrollbar) Option {
	return func(e *Editor) {
		var vf, hf display.RangeFeedback
		if v != nil {
			vf = v
			e.bars = append(e.bars, v)
		}
		if h != nil {
			hf = h
			e.bars = append(e.bars, h)
		}
		e.disp.SetScrollbars(vf, hf)
	}
}

// New edits the buffer shown by disp, creating an empty one when the
// display has none.
func New(disp *display.Display, cfg config.Config, opts ...Option) *Editor {
	e := &Editor{
		disp:   disp,
		cfg:    cfg,
		keymap: make(config.Keymap, len(cfg.Keymap)),
		clip:   systemClipboard{},
		rep:    logger.For("editor"),
		now:    time.Now,
	}
	for k, v := range cfg.Keymap {
		e.keymap[k] = v
	}
	for _, opt := range opts {
		opt(e)
	}

	buf := disp.Buffer()
	if buf == nil {
		buf = textbuf.New(0, cfg.Buffer.PreferredGapSize, textbuf.WithReporter(e.rep))
		disp.SetBuffer(buf)
	}
	e.attach(buf)
	e.applyDisplayConfig()
	e.modified = false
	return e
}

func (e *Editor) attach(buf *textbuf.Buffer) {
	e.buf = buf
	buf.CanUndo(e.cfg.Buffer.UndoEnabled())
	buf.TranscodingWarning = func(path string) {
		e.SetStatus(path + ": invalid UTF-8 read as Windows-1252")
	}
	e.listener = buf.AddModifyFunc(func(m textbuf.Modification) {
		if m.Inserted > 0 || m.Deleted > 0 {
			e.modified = true
		}
	})
}

func (e *Editor) applyDisplayConfig() {
	dc := e.cfg.Display
	if dc.TabDistance > 0 {
		e.buf.SetTabDistance(dc.TabDistance)
	}
	if mode, ok := wrap.ParseMode(dc.WrapMode); ok {
		e.disp.SetWrapMode(mode, dc.WrapMargin)
	} else {
		e.rep.Warning("unknown wrap mode", "mode", dc.WrapMode)
	}
	e.disp.SetLineNumberWidth(dc.LineNumbers)
	style, ok := display.ParseCursorStyle(dc.CursorStyle)
	if !ok {
		e.rep.Warning("unknown cursor style", "style", dc.CursorStyle)
	}
	e.insertStyle = style
	e.disp.SetCursorStyle(style)
}

func (e *Editor) Display() *display.Display {
	return e.disp
}

func (e *Editor) Buffer() *textbuf.Buffer {
	return e.buf
}

func (e *Editor) Path() string {
	return e.path
}

// Modified reports whether the text changed since the last open or save.
func (e *Editor) Modified() bool {
	return e.modified
}

func (e *Editor) Overstrike() bool {
	return e.overstrike
}

// QuitRequested reports whether the quit action ran.
func (e *Editor) QuitRequested() bool {
	return e.quit
}

func (e *Editor) Status() string {
	return e.status
}

func (e *Editor) SetStatus(msg string) {
	e.status = msg
	if msg != "" {
		logger.Info("status", "msg", msg)
	}
}

// Handle processes one event and reports whether it was consumed.
func (e *Editor) Handle(ev event.Event) bool {
	switch ev.Kind {
	case event.KeyPress:
		return e.handleKey(ev)
	case event.Paste:
		e.insertText(ev.Text)
		e.disp.ShowInsertPosition()
		return true
	case event.Push, event.Drag, event.Release:
		return e.handleMouse(ev)
	case event.Wheel:
		top, horiz := e.disp.TopLine(), e.disp.HorizOffset()
		e.disp.ScrollTo(top+wheelLines*ev.DY, horiz+wheelLines*ev.DX)
		return true
	case event.Focus:
		e.disp.SetFocus(true)
		return true
	case event.Unfocus:
		e.disp.SetFocus(false)
		e.stopAutoScroll()
		return true
	}
	return false
}

func (e *Editor) handleKey(ev event.Event) bool {
	if e.status != "" {
		e.status = ""
	}
	action, ok := e.keymap[ev.Name()]
	if action != actionQuit {
		e.quitWarn = false
	}
	if ok {
		return e.Do(action)
	}
	if ev.Key == tcell.KeyRune && ev.Mods&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) == 0 {
		e.typeText(string(ev.Rune))
		e.disp.ShowInsertPosition()
		return true
	}
	return false
}

// typeText inserts or overstrikes at the cursor, replacing any selection.
func (e *Editor) typeText(text string) {
	if e.buf.Selected() {
		e.killSelection()
		e.disp.Insert(text)
		return
	}
	if e.overstrike {
		e.disp.Overstrike(text)
		return
	}
	e.disp.Insert(text)
}

func (e *Editor) insertText(text string) {
	if text == "" {
		return
	}
	if e.buf.Selected() {
		e.killSelection()
	}
	e.disp.Insert(text)
}

// killSelection removes the primary selection and leaves the cursor at its
// start.
func (e *Editor) killSelection() {
	start, _, ok := e.buf.SelectionPosition()
	if !ok {
		return
	}
	e.buf.RemoveSelection()
	e.disp.SetInsertPosition(start)
}
