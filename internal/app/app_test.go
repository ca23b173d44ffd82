package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/config"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Display.LineNumbers = 0
	cfg.Display.Scrollbars = "none"
	return cfg
}

func newApp(t *testing.T, cfg config.Config, args ...string) (*App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(80, 10)

	a := New(args, cfg, config.DefaultLanguages())
	if err := a.setup(s); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(a.close)
	return a, s
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func row(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestStatusLineShowsFileAndPosition(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := writeFile(t, "notes.txt", "one\ntwo\n")
	a, s := newApp(t, testConfig(), path)
	a.draw()

	if got := row(s, 0); got != "one" {
		t.Fatalf("row 0 = %q", got)
	}
	status := row(s, 9)
	if !strings.Contains(status, "notes.txt") || !strings.Contains(status, "Ln 1, Col 1") {
		t.Fatalf("status = %q", status)
	}
	if strings.Contains(status, "[+]") {
		t.Fatalf("unmodified file flagged: %q", status)
	}

	a.handle(keyRune('x'))
	a.handle(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	a.draw()
	status = row(s, 9)
	if !strings.Contains(status, "[+]") || !strings.Contains(status, "Ln 2, Col 2") {
		t.Fatalf("status after edit = %q", status)
	}
	if got := row(s, 0); got != "xone" {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestStatusLineShowsReports(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	cfg := testConfig()
	cfg.Display.Scrollbars = "sideways"
	a, s := newApp(t, cfg)
	a.draw()
	if status := row(s, 9); !strings.Contains(status, "unknown scrollbars setting") {
		t.Fatalf("status = %q", status)
	}
	a.handle(keyRune('a'))
	a.draw()
	if status := row(s, 9); strings.Contains(status, "unknown scrollbars") {
		t.Fatalf("notice not cleared by a key: %q", status)
	}
}

func TestBracketedPaste(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	a, _ := newApp(t, testConfig())
	a.handle(tcell.NewEventPaste(true))
	a.handle(keyRune('a'))
	a.handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	a.handle(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	a.handle(keyRune('b'))
	if a.ed.Buffer().Length() != 0 {
		t.Fatalf("pasted text inserted before the paste ended")
	}
	a.handle(tcell.NewEventPaste(false))
	if got := a.ed.Buffer().Text(); got != "a\n\tb" {
		t.Fatalf("text = %q", got)
	}
	if got := a.disp.InsertPosition(); got != 4 {
		t.Fatalf("cursor = %d", got)
	}
}

func waitInterrupt(t *testing.T, s tcell.SimulationScreen) *tcell.EventInterrupt {
	t.Helper()
	done := make(chan *tcell.EventInterrupt, 1)
	go func() {
		for {
			if ev, ok := s.PollEvent().(*tcell.EventInterrupt); ok {
				done <- ev
				return
			}
		}
	}()
	select {
	case ev := <-done:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("no interrupt posted")
		return nil
	}
}

func TestSchedulerRunsOnEventLoop(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	a, s := newApp(t, testConfig())

	ran := 0
	a.After(time.Millisecond, func() { ran++ })
	ev := waitInterrupt(t, s)
	if ran != 0 {
		t.Fatalf("callback ran off the event loop")
	}
	a.handle(ev)
	if ran != 1 {
		t.Fatalf("callback ran %d times", ran)
	}

	cancel := a.After(time.Millisecond, func() { ran++ })
	ev = waitInterrupt(t, s)
	cancel()
	a.handle(ev)
	if ran != 1 {
		t.Fatalf("cancelled callback ran")
	}
}

func TestResize(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	a, _ := newApp(t, testConfig())
	a.handle(tcell.NewEventResize(30, 8))
	if _, _, w, h := a.disp.Bounds(); w != 30 || h != 7 {
		t.Fatalf("display %dx%d, want 30x7", w, h)
	}
}

func TestScrollbarsFromConfig(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	cfg := testConfig()
	cfg.Display.Scrollbars = "vertical"
	a, _ := newApp(t, cfg)
	if _, _, w, h := a.disp.TextArea(); w != 79 || h != 9 {
		t.Fatalf("text area %dx%d, want 79x9", w, h)
	}
}

func TestHighlighterForKnownTypes(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := writeFile(t, "main.go", "package main\n")
	a, _ := newApp(t, testConfig(), path)
	if a.hl == nil {
		t.Fatalf("no highlighter for main.go")
	}
	if got := a.hl.Styles().Length(); got != a.ed.Buffer().Length() {
		t.Fatalf("style length %d, text length %d", got, a.ed.Buffer().Length())
	}

	plain := writeFile(t, "data.zzqq", "text\n")
	b, _ := newApp(t, testConfig(), plain)
	if b.hl != nil {
		t.Fatalf("highlighter attached to unknown file type")
	}
}

func TestSessionRestoresViewport(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	path := writeFile(t, "lines.txt", "one\ntwo\nthree\n")

	a, _ := newApp(t, testConfig(), path)
	a.handle(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	a.handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	a.close()

	b, _ := newApp(t, testConfig(), path)
	if got := b.disp.InsertPosition(); got != 5 {
		t.Fatalf("restored cursor = %d, want 5", got)
	}
	start, end, ok := b.ed.Buffer().SelectionPosition()
	if !ok || start != 4 || end != 5 {
		t.Fatalf("restored selection %d..%d (%v)", start, end, ok)
	}
}

func TestQuit(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	a, _ := newApp(t, testConfig())
	if a.handle(keyRune('x')) {
		t.Fatalf("typing ended the loop")
	}
	quit := tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	if a.handle(quit) {
		t.Fatalf("quit with unsaved changes did not warn")
	}
	if !a.handle(quit) {
		t.Fatalf("second quit did not end the loop")
	}
}
