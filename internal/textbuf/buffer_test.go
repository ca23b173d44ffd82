package textbuf

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/kobzarvs/qtext/internal/logger"
)

func checkGap(t *testing.T, b *Buffer) {
	t.Helper()
	start, end, size := b.Gap()
	if start > end || end > size {
		t.Fatalf("gap [%d,%d) outside size %d", start, end, size)
	}
	if b.Length() != size-(end-start) {
		t.Fatalf("length %d != size %d - gap %d", b.Length(), size, end-start)
	}
}

func TestInsertRemoveBasic(t *testing.T) {
	b := New(0, 0)
	b.Insert(0, "hello")
	if b.Length() != 5 || b.Text() != "hello" {
		t.Fatalf("after insert: %q len %d", b.Text(), b.Length())
	}
	b.Remove(1, 3)
	if b.Text() != "hlo" || b.Length() != 3 {
		t.Fatalf("after remove: %q len %d", b.Text(), b.Length())
	}
	checkGap(t, b)
}

func TestEmptyOperationsAreNoOps(t *testing.T) {
	b := NewFromString("abc")
	calls := 0
	b.AddModifyFunc(func(Modification) { calls++ })
	b.Insert(1, "")
	b.Remove(2, 2)
	b.Replace(1, 1, "")
	if calls != 0 || b.Text() != "abc" {
		t.Fatalf("calls=%d text=%q", calls, b.Text())
	}
}

func TestPositionsAreClamped(t *testing.T) {
	b := NewFromString("abc")
	b.Insert(99, "d")
	b.Insert(-4, "_")
	if b.Text() != "_abcd" {
		t.Fatalf("text = %q", b.Text())
	}
	b.Remove(3, -10)
	if b.Text() != "cd" {
		t.Fatalf("text = %q", b.Text())
	}
	if got := b.TextRange(1, 50); got != "d" {
		t.Fatalf("TextRange = %q", got)
	}
}

func TestGapInvariantUnderRandomEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := New(4, 8)
	model := ""
	for i := 0; i < 2000; i++ {
		pos := rng.Intn(len(model) + 1)
		switch rng.Intn(3) {
		case 0:
			s := strings.Repeat(string(rune('a'+rng.Intn(26))), 1+rng.Intn(20))
			b.Insert(pos, s)
			model = model[:pos] + s + model[pos:]
		case 1:
			end := pos + rng.Intn(len(model)-pos+1)
			b.Remove(pos, end)
			model = model[:pos] + model[end:]
		default:
			end := pos + rng.Intn(len(model)-pos+1)
			s := strings.Repeat("x", rng.Intn(5))
			b.Replace(pos, end, s)
			model = model[:pos] + s + model[end:]
		}
		checkGap(t, b)
		if b.Text() != model {
			t.Fatalf("step %d: text %q, want %q", i, b.Text(), model)
		}
	}
}

func TestInsertRoundTrip(t *testing.T) {
	base := "0123456789"
	for pos := 0; pos <= len(base); pos++ {
		b := NewFromString(base)
		b.Insert(pos, "XYZ")
		if got := b.TextRange(pos, pos+3); got != "XYZ" {
			t.Fatalf("pos %d: inserted range %q", pos, got)
		}
		if b.TextRange(0, pos) != base[:pos] || b.TextRange(pos+3, b.Length()) != base[pos:] {
			t.Fatalf("pos %d: surrounding text changed: %q", pos, b.Text())
		}
	}
}

func TestUndoInsertAndRedo(t *testing.T) {
	b := NewFromString("abc")
	b.Insert(1, "hello")
	cursor, ok := b.Undo()
	if !ok || b.Text() != "abc" || cursor != 1 {
		t.Fatalf("undo: ok=%v text=%q cursor=%d", ok, b.Text(), cursor)
	}
	cursor, ok = b.Undo()
	if !ok || b.Text() != "ahellobc" || cursor != 6 {
		t.Fatalf("redo: ok=%v text=%q cursor=%d", ok, b.Text(), cursor)
	}
	cursor, ok = b.Undo()
	if !ok || b.Text() != "abc" || cursor != 1 {
		t.Fatalf("second undo: ok=%v text=%q cursor=%d", ok, b.Text(), cursor)
	}
}

func TestUndoCoalescesTyping(t *testing.T) {
	b := New(0, 0)
	b.Insert(0, "a")
	b.Insert(1, "b")
	b.Insert(2, "c")
	if _, ok := b.Undo(); !ok || b.Text() != "" {
		t.Fatalf("undo typing: %q", b.Text())
	}
}

func TestUndoCoalescesBackspaceAndDelete(t *testing.T) {
	b := NewFromString("hello")
	b.Remove(4, 5)
	b.Remove(3, 4)
	cursor, ok := b.Undo()
	if !ok || b.Text() != "hello" || cursor != 5 {
		t.Fatalf("backspace undo: ok=%v %q cursor=%d", ok, b.Text(), cursor)
	}

	b = NewFromString("hello")
	b.Remove(1, 2)
	b.Remove(1, 2)
	cursor, ok = b.Undo()
	if !ok || b.Text() != "hello" || cursor != 3 {
		t.Fatalf("delete undo: ok=%v %q cursor=%d", ok, b.Text(), cursor)
	}
}

func TestUndoReplace(t *testing.T) {
	b := NewFromString("hello world")
	b.Replace(0, 5, "HELLO!")
	if b.Text() != "HELLO! world" || b.CursorPosHint() != 6 {
		t.Fatalf("replace: %q hint %d", b.Text(), b.CursorPosHint())
	}
	cursor, ok := b.Undo()
	if !ok || b.Text() != "hello world" || cursor != 5 {
		t.Fatalf("undo replace: ok=%v %q cursor=%d", ok, b.Text(), cursor)
	}
	if _, ok := b.Undo(); !ok || b.Text() != "HELLO! world" {
		t.Fatalf("redo replace: %q", b.Text())
	}
}

func TestUndoDisabled(t *testing.T) {
	b := NewFromString("abc")
	b.CanUndo(false)
	b.Insert(3, "def")
	if _, ok := b.Undo(); ok {
		t.Fatalf("undo succeeded while disabled")
	}
	if b.Text() != "abcdef" {
		t.Fatalf("text changed: %q", b.Text())
	}
	if b.CanUndoEnabled() {
		t.Fatalf("CanUndoEnabled = true")
	}
}

func TestUndoNothingRecorded(t *testing.T) {
	b := NewFromString("abc")
	if _, ok := b.Undo(); ok {
		t.Fatalf("undo on fresh buffer succeeded")
	}
}

func TestSetTextClearsUndo(t *testing.T) {
	b := New(0, 0)
	b.Insert(0, "abc")
	b.SetText("xyz")
	if _, ok := b.Undo(); ok {
		t.Fatalf("undo after SetText succeeded")
	}
	if b.Text() != "xyz" {
		t.Fatalf("text = %q", b.Text())
	}
	checkGap(t, b)
}

func TestModifyListenersOrderAndPayload(t *testing.T) {
	b := NewFromString("abcdef")
	var order []string
	var mods []Modification
	b.AddModifyFunc(func(m Modification) {
		order = append(order, "first")
		mods = append(mods, m)
	})
	b.AddModifyFunc(func(Modification) { order = append(order, "second") })

	b.Replace(1, 3, "XYZ")
	if strings.Join(order, ",") != "first,second" {
		t.Fatalf("order = %v", order)
	}
	want := Modification{Pos: 1, Inserted: 3, Deleted: 2, DeletedText: "bc"}
	if len(mods) != 1 || mods[0] != want {
		t.Fatalf("mods = %+v, want %+v", mods, want)
	}
}

func TestPredeleteSeesTextBeforeRemoval(t *testing.T) {
	b := NewFromString("abcdef")
	var seen string
	var events []string
	b.AddPredeleteFunc(func(pos, n int) {
		seen = b.TextRange(pos, pos+n)
		events = append(events, "predelete")
	})
	b.AddModifyFunc(func(Modification) { events = append(events, "modify") })
	b.Remove(2, 4)
	if seen != "cd" {
		t.Fatalf("predelete saw %q", seen)
	}
	if strings.Join(events, ",") != "predelete,modify" {
		t.Fatalf("events = %v", events)
	}
}

func TestRemoveListener(t *testing.T) {
	rec := logger.NewRecorder(nil)
	b := New(0, 0, WithReporter(rec))
	calls := 0
	id := b.AddModifyFunc(func(Modification) { calls++ })
	b.Insert(0, "a")
	b.RemoveModifyFunc(id)
	b.Insert(0, "b")
	if calls != 1 {
		t.Fatalf("calls = %d", calls)
	}
	if len(rec.Reports()) != 0 {
		t.Fatalf("unexpected reports: %v", rec.Reports())
	}

	b.RemoveModifyFunc(id)
	b.RemovePredeleteFunc(42)
	reports := rec.Reports()
	if len(reports) != 2 || reports[0].Level != logger.LevelError {
		t.Fatalf("reports = %v", reports)
	}
}

func TestListenerCanRemoveItself(t *testing.T) {
	b := New(0, 0)
	var id ListenerID
	calls := 0
	id = b.AddModifyFunc(func(Modification) {
		calls++
		b.RemoveModifyFunc(id)
	})
	other := 0
	b.AddModifyFunc(func(Modification) { other++ })
	b.Insert(0, "a")
	b.Insert(0, "b")
	if calls != 1 || other != 2 {
		t.Fatalf("calls=%d other=%d", calls, other)
	}
}

func TestTabDistanceNotifiesWholeBuffer(t *testing.T) {
	b := NewFromString("a\tb")
	var got Modification
	b.AddModifyFunc(func(m Modification) { got = m })
	b.SetTabDistance(4)
	if b.TabDistance() != 4 {
		t.Fatalf("TabDistance = %d", b.TabDistance())
	}
	if got.Pos != 0 || got.Inserted != 3 || got.Deleted != 3 {
		t.Fatalf("modification = %+v", got)
	}
	if _, ok := b.Undo(); ok {
		t.Fatalf("tab distance change left an undo record")
	}
}

func TestEditTracker(t *testing.T) {
	tr := NewEditTracker()
	a := New(0, 0)
	c := New(0, 0)
	a.SetEditTracker(tr)
	c.SetEditTracker(tr)
	if tr.LastEdited() != nil {
		t.Fatalf("tracker not empty")
	}
	a.Insert(0, "x")
	c.Insert(0, "y")
	if tr.LastEdited() != c {
		t.Fatalf("last edited is not c")
	}
	a.Remove(0, 1)
	if tr.LastEdited() != a {
		t.Fatalf("last edited is not a")
	}
}

func TestGrowUsesPreferredGap(t *testing.T) {
	b := New(0, 4)
	b.Insert(0, "abcdefgh")
	start, end, size := b.Gap()
	if end-start != 4 || size != 12 {
		t.Fatalf("gap [%d,%d) size %d", start, end, size)
	}
	b.Insert(2, "--")
	if b.Text() != "ab--cdefgh" {
		t.Fatalf("text = %q", b.Text())
	}
	checkGap(t, b)
}
