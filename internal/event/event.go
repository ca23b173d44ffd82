// Package event turns tcell events into the small event set the editor
// handles and spells keys the way keymaps name them.
package event

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

type Kind int

const (
	KeyPress Kind = iota
	Paste
	Push
	Drag
	Release
	Wheel
	Focus
	Unfocus
	Resize
)

func (k Kind) String() string {
	switch k {
	case KeyPress:
		return "keypress"
	case Paste:
		return "paste"
	case Push:
		return "push"
	case Drag:
		return "drag"
	case Release:
		return "release"
	case Wheel:
		return "wheel"
	case Focus:
		return "focus"
	case Unfocus:
		return "unfocus"
	default:
		return "resize"
	}
}

// Event is one input event. X and Y are screen cells for mouse events and
// the new size for Resize. DY is the wheel direction, DX the horizontal
// wheel direction.
type Event struct {
	Kind   Kind
	Key    tcell.Key
	Rune   rune
	Mods   tcell.ModMask
	Button tcell.ButtonMask
	X, Y   int
	DX, DY int
	Text   string
}

// Translator converts tcell events. Mouse events need the previous button
// state to tell pushes, drags and releases apart.
type Translator struct {
	buttons tcell.ButtonMask
}

const buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3

func (t *Translator) FromTcell(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return Event{Kind: KeyPress, Key: ev.Key(), Rune: ev.Rune(), Mods: ev.Modifiers()}, true
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Kind: Resize, X: w, Y: h}, true
	case *tcell.EventFocus:
		if ev.Focused {
			return Event{Kind: Focus}, true
		}
		return Event{Kind: Unfocus}, true
	case *tcell.EventMouse:
		return t.mouse(ev)
	}
	return Event{}, false
}

func (t *Translator) mouse(ev *tcell.EventMouse) (Event, bool) {
	x, y := ev.Position()
	b := ev.Buttons()
	out := Event{X: x, Y: y, Mods: ev.Modifiers()}

	switch {
	case b&tcell.WheelUp != 0:
		out.Kind, out.DY = Wheel, -1
		return out, true
	case b&tcell.WheelDown != 0:
		out.Kind, out.DY = Wheel, 1
		return out, true
	case b&tcell.WheelLeft != 0:
		out.Kind, out.DX = Wheel, -1
		return out, true
	case b&tcell.WheelRight != 0:
		out.Kind, out.DX = Wheel, 1
		return out, true
	}

	pressed := b & buttonMask
	prev := t.buttons
	t.buttons = pressed
	switch {
	case pressed != 0 && prev == 0:
		out.Kind, out.Button = Push, pressed
	case pressed != 0:
		out.Kind, out.Button = Drag, pressed
	case prev != 0:
		out.Kind, out.Button = Release, prev
	default:
		// plain motion
		return Event{}, false
	}
	return out, true
}

// Name spells a key press for keymap lookup: "a", "space", "ctrl+z",
// "shift+left", "alt+shift+up". Other kinds have no name.
func (e Event) Name() string {
	if e.Kind != KeyPress {
		return ""
	}
	if e.Key == tcell.KeyRune {
		base := string(e.Rune)
		if e.Rune == ' ' {
			base = "space"
		}
		var prefix strings.Builder
		if e.Mods&tcell.ModMeta != 0 {
			prefix.WriteString("cmd+")
		}
		if e.Mods&tcell.ModCtrl != 0 {
			prefix.WriteString("ctrl+")
		}
		if e.Mods&tcell.ModAlt != 0 {
			prefix.WriteString("alt+")
		}
		if prefix.Len() > 0 {
			return prefix.String() + strings.ToLower(base)
		}
		return base
	}

	base, mods := namedKey(e.Key, e.Mods)
	if base == "" {
		return ""
	}
	var sb strings.Builder
	if mods&tcell.ModMeta != 0 {
		sb.WriteString("cmd+")
	}
	if mods&tcell.ModCtrl != 0 {
		sb.WriteString("ctrl+")
	}
	if mods&tcell.ModAlt != 0 {
		sb.WriteString("alt+")
	}
	if mods&tcell.ModShift != 0 {
		sb.WriteString("shift+")
	}
	sb.WriteString(base)
	return sb.String()
}

// namedKey returns the key name and the modifiers still to be spelled.
// Keys sharing a code with a control letter (tab is ctrl+i) are matched
// first.
func namedKey(key tcell.Key, mods tcell.ModMask) (string, tcell.ModMask) {
	switch key {
	case tcell.KeyTab:
		return "tab", mods &^ tcell.ModCtrl
	case tcell.KeyBacktab:
		return "tab", mods | tcell.ModShift
	case tcell.KeyEnter:
		return "enter", mods &^ tcell.ModCtrl
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace", mods &^ tcell.ModCtrl
	case tcell.KeyEscape:
		return "esc", mods &^ tcell.ModCtrl
	case tcell.KeyUp:
		return "up", mods
	case tcell.KeyDown:
		return "down", mods
	case tcell.KeyLeft:
		return "left", mods
	case tcell.KeyRight:
		return "right", mods
	case tcell.KeyPgUp:
		return "pgup", mods
	case tcell.KeyPgDn:
		return "pgdn", mods
	case tcell.KeyHome:
		return "home", mods
	case tcell.KeyEnd:
		return "end", mods
	case tcell.KeyDelete:
		return "del", mods
	case tcell.KeyInsert:
		return "insert", mods
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return string(rune('a' + key - tcell.KeyCtrlA)), mods | tcell.ModCtrl
	}
	if key >= tcell.KeyF1 && key <= tcell.KeyF12 {
		return "f" + strconv.Itoa(int(key-tcell.KeyF1)+1), mods
	}
	return "", mods
}
