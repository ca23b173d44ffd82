package event

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func key(k tcell.Key, r rune, mods tcell.ModMask) Event {
	var tr Translator
	ev, ok := tr.FromTcell(tcell.NewEventKey(k, r, mods))
	if !ok {
		return Event{}
	}
	return ev
}

func TestKeyNames(t *testing.T) {
	cases := []struct {
		ev   Event
		want string
	}{
		{key(tcell.KeyRune, 'a', 0), "a"},
		{key(tcell.KeyRune, 'A', tcell.ModShift), "A"},
		{key(tcell.KeyRune, ' ', 0), "space"},
		{key(tcell.KeyRune, 'x', tcell.ModAlt), "alt+x"},
		{key(tcell.KeyCtrlZ, 0, tcell.ModCtrl), "ctrl+z"},
		{key(tcell.KeyLeft, 0, tcell.ModShift), "shift+left"},
		{key(tcell.KeyUp, 0, tcell.ModAlt|tcell.ModShift), "alt+shift+up"},
		{key(tcell.KeyHome, 0, tcell.ModCtrl), "ctrl+home"},
		{key(tcell.KeyTab, 0, 0), "tab"},
		{key(tcell.KeyBacktab, 0, 0), "shift+tab"},
		{key(tcell.KeyEnter, 0, 0), "enter"},
		{key(tcell.KeyBackspace2, 0, 0), "backspace"},
		{key(tcell.KeyDelete, 0, 0), "del"},
		{key(tcell.KeyF5, 0, 0), "f5"},
		{key(tcell.KeyPgDn, 0, 0), "pgdn"},
	}
	for _, c := range cases {
		if got := c.ev.Name(); got != c.want {
			t.Fatalf("Name() = %q, want %q", got, c.want)
		}
	}
}

func TestMouseSequence(t *testing.T) {
	var tr Translator
	steps := []struct {
		ev   *tcell.EventMouse
		want Kind
	}{
		{tcell.NewEventMouse(3, 1, tcell.Button1, 0), Push},
		{tcell.NewEventMouse(4, 1, tcell.Button1, 0), Drag},
		{tcell.NewEventMouse(5, 2, tcell.ButtonNone, 0), Release},
	}
	for i, s := range steps {
		ev, ok := tr.FromTcell(s.ev)
		if !ok || ev.Kind != s.want {
			t.Fatalf("step %d: kind = %v ok=%v, want %v", i, ev.Kind, ok, s.want)
		}
		x, y := s.ev.Position()
		if ev.X != x || ev.Y != y {
			t.Fatalf("step %d: position = %d,%d", i, ev.X, ev.Y)
		}
	}
	if _, ok := tr.FromTcell(tcell.NewEventMouse(6, 2, tcell.ButtonNone, 0)); ok {
		t.Fatalf("motion without buttons produced an event")
	}
}

func TestWheelAndResize(t *testing.T) {
	var tr Translator
	ev, ok := tr.FromTcell(tcell.NewEventMouse(0, 0, tcell.WheelDown, 0))
	if !ok || ev.Kind != Wheel || ev.DY != 1 {
		t.Fatalf("wheel = %+v", ev)
	}
	ev, ok = tr.FromTcell(tcell.NewEventResize(80, 24))
	if !ok || ev.Kind != Resize || ev.X != 80 || ev.Y != 24 {
		t.Fatalf("resize = %+v", ev)
	}
	if ev.Name() != "" {
		t.Fatalf("resize has a key name")
	}
}
