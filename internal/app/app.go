package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/config"
	"github.com/kobzarvs/qtext/internal/display"
	"github.com/kobzarvs/qtext/internal/editor"
	"github.com/kobzarvs/qtext/internal/event"
	"github.com/kobzarvs/qtext/internal/logger"
	"github.com/kobzarvs/qtext/internal/screen"
	"github.com/kobzarvs/qtext/internal/scrollbar"
	"github.com/kobzarvs/qtext/internal/session"
	"github.com/kobzarvs/qtext/internal/style"
	"github.com/kobzarvs/qtext/internal/textbuf"
	"github.com/kobzarvs/qtext/internal/wrap"
)

// App is the top-level runtime for qtext.
type App struct {
	args  []string
	cfg   config.Config
	langs config.Languages

	s    tcell.Screen
	rec  *logger.Recorder
	disp *display.Display
	ed   *editor.Editor
	hl   *style.Highlighter
	sess *session.Manager

	tr      event.Translator
	pasting bool
	paste   strings.Builder

	statusStyle tcell.Style
	notice      string
	seen        int
}

func New(args []string, cfg config.Config, langs config.Languages) *App {
	return &App{args: args, cfg: cfg, langs: langs}
}

func (a *App) Run() error {
	runtime.LockOSThread()
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnableMouse()
	s.EnablePaste()
	s.EnableFocus()
	defer s.Fini()

	if err := a.setup(s); err != nil {
		return err
	}
	defer a.close()

	a.draw()
	for {
		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if a.handle(ev) {
			return nil
		}
		a.draw()
	}
}

// setup builds the view over s and opens the file named on the command
// line.
func (a *App) setup(s tcell.Screen) error {
	a.s = s
	a.rec = logger.NewRecorder(logger.Default())
	theme := a.cfg.Theme
	a.statusStyle = style.Statusline(theme)

	w, h := s.Size()
	a.disp = display.New(0, 0, w, max(h-1, 0), screen.New(s, a.rec),
		display.WithReporter(a.rec),
		display.WithColors(style.Colors(theme)))
	a.disp.SetBuffer(textbuf.New(0, a.cfg.Buffer.PreferredGapSize, textbuf.WithReporter(a.rec)))

	vbar, hbar := a.scrollbars()
	a.ed = editor.New(a.disp, a.cfg,
		editor.WithReporter(a.rec),
		editor.WithScheduler(a),
		editor.WithScrollbars(vbar, hbar))

	var err error
	a.sess, err = session.NewManager()
	if err != nil {
		a.rec.Warning("session unavailable", "error", err)
	}

	if len(a.args) == 0 {
		return nil
	}
	path := a.args[0]
	if err := a.ed.Open(path); err != nil {
		return err
	}
	a.restore()
	a.highlight(path)
	return nil
}

func (a *App) scrollbars() (v, h *scrollbar.Scrollbar) {
	track, thumb := style.Scrollbar(a.cfg.Theme)
	bar := func(o scrollbar.Orientation) *scrollbar.Scrollbar {
		b := scrollbar.New(o)
		b.Track, b.Thumb = track, thumb
		return b
	}
	switch a.cfg.Display.Scrollbars {
	case "both":
		return bar(scrollbar.Vertical), bar(scrollbar.Horizontal)
	case "vertical":
		return bar(scrollbar.Vertical), nil
	case "horizontal":
		return nil, bar(scrollbar.Horizontal)
	case "none":
		return nil, nil
	}
	a.rec.Warning("unknown scrollbars setting", "scrollbars", a.cfg.Display.Scrollbars)
	return bar(scrollbar.Vertical), bar(scrollbar.Horizontal)
}

// highlight attaches a syntax highlighter. It must run after the display
// has the buffer so the display sees each edit before the restyle.
func (a *App) highlight(path string) {
	p, err := style.ForFile(path, a.langs)
	if errors.Is(err, style.ErrNoHighlighter) {
		return
	}
	if err != nil {
		a.rec.Warning("highlighter unavailable", "path", path, "error", err)
		return
	}
	a.hl = style.NewHighlighter(a.ed.Buffer(), p, a.disp, style.WithReporter(a.rec))
	a.disp.SetStyle(a.hl.Styles(), style.Table(a.cfg.Theme))
}

func (a *App) sessionKey() string {
	path := a.ed.Path()
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// restore puts the view back where the session left the file.
func (a *App) restore() {
	key := a.sessionKey()
	if a.sess == nil || key == "" {
		return
	}
	st, ok := a.sess.FileState(key)
	if !ok {
		return
	}
	if mode, ok := wrap.ParseMode(st.WrapMode); ok && st.WrapMode != "" {
		a.disp.SetWrapMode(mode, st.WrapMargin)
	}
	n := a.ed.Buffer().Length()
	a.disp.SetInsertPosition(min(max(st.Cursor, 0), n))
	a.disp.ScrollTo(st.TopLine, st.HorizOffset)
	if st.Selected() && st.SelectionEnd <= n {
		a.ed.Buffer().Select(st.SelectionStart, st.SelectionEnd)
	}
}

func (a *App) remember() {
	key := a.sessionKey()
	if a.sess == nil || key == "" {
		return
	}
	mode, margin := a.disp.WrapMode()
	st := session.FileState{
		Cursor:      a.disp.InsertPosition(),
		TopLine:     a.disp.TopLine(),
		HorizOffset: a.disp.HorizOffset(),
		WrapMode:    mode.String(),
		WrapMargin:  margin,
	}
	if start, end, ok := a.ed.Buffer().SelectionPosition(); ok {
		st.SelectionStart, st.SelectionEnd = start, end
	}
	a.sess.SetFileState(key, st)
}

func (a *App) close() {
	a.remember()
	if a.hl != nil {
		a.hl.Close()
	}
	if a.sess != nil {
		if err := a.sess.Stop(); err != nil {
			logger.Warn("session save failed", "error", err)
		}
	}
}

// After implements editor.Scheduler. The callback is posted back to the
// event loop as an interrupt.
func (a *App) After(d time.Duration, fn func()) func() {
	cancelled := false
	run := func() {
		if !cancelled {
			fn()
		}
	}
	t := time.AfterFunc(d, func() {
		_ = a.s.PostEvent(tcell.NewEventInterrupt(run))
	})
	return func() {
		cancelled = true
		t.Stop()
	}
}

// handle processes one tcell event and reports whether the app should
// exit.
func (a *App) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
		return false
	case *tcell.EventPaste:
		a.handlePaste(ev)
		return false
	case *tcell.EventKey:
		if a.pasting {
			a.collectPaste(ev)
			return false
		}
		a.notice = ""
	}

	e, ok := a.tr.FromTcell(ev)
	if !ok {
		return false
	}
	if e.Kind == event.Resize {
		a.s.Sync()
		a.disp.Resize(0, 0, e.X, max(e.Y-1, 0))
		return false
	}
	a.ed.Handle(e)
	a.remember()
	return a.ed.QuitRequested()
}

func (a *App) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		a.pasting = true
		a.paste.Reset()
		return
	}
	a.pasting = false
	if a.paste.Len() > 0 {
		a.ed.Handle(event.Event{Kind: event.Paste, Text: a.paste.String()})
		a.paste.Reset()
	}
}

func (a *App) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		a.paste.WriteByte('\n')
	case tcell.KeyTab:
		a.paste.WriteByte('\t')
	}
}

func (a *App) draw() {
	a.disp.Draw()
	a.drawStatus()
	a.s.Show()
}

// drawStatus fills the last row: file name and modified flag on the left,
// the message in the middle and the cursor position on the right.
func (a *App) drawStatus() {
	w, h := a.s.Size()
	if h <= 0 {
		return
	}
	y := h - 1
	for x := 0; x < w; x++ {
		a.s.SetContent(x, y, ' ', nil, a.statusStyle)
	}

	if reports := a.rec.Reports(); len(reports) > a.seen {
		a.seen = len(reports)
		a.notice = reports[len(reports)-1].String()
	}
	msg := a.ed.Status()
	if msg == "" {
		msg = a.notice
	}

	name := "[no name]"
	if path := a.ed.Path(); path != "" {
		name = filepath.Base(path)
	}
	if a.ed.Modified() {
		name += " [+]"
	}
	left := " " + name
	if msg != "" {
		left += "  " + msg
	}

	line, col := a.disp.PositionToLineCol(a.disp.InsertPosition())
	mode := "INS"
	if a.ed.Overstrike() {
		mode = "OVR"
	}
	right := fmt.Sprintf("%s  Ln %d, Col %d ", mode, line, col+1)

	putString(a.s, 0, y, w, left, a.statusStyle)
	if rx := w - len(right); rx > len([]rune(left)) {
		putString(a.s, rx, y, w, right, a.statusStyle)
	}
}

func putString(s tcell.Screen, x, y, w int, str string, st tcell.Style) {
	for _, r := range str {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, st)
		x++
	}
}
