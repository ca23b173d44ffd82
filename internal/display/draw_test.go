package display

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qtext/internal/textbuf"
)

// gridDriver is a Driver with neither row moves nor a hardware cursor.
type gridDriver struct {
	w, h   int
	cells  []rune
	styles []tcell.Style
	puts   int
}

func newGrid(w, h int) *gridDriver {
	g := &gridDriver{w: w, h: h, cells: make([]rune, w*h), styles: make([]tcell.Style, w*h)}
	for i := range g.cells {
		g.cells[i] = ' '
	}
	return g
}

func (g *gridDriver) set(x, y int, ch rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return
	}
	g.cells[y*g.w+x] = ch
	g.styles[y*g.w+x] = st
	g.puts++
}

func (g *gridDriver) FillRegion(x, y, w, h int, ch rune, st tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			g.set(col, row, ch, st)
		}
	}
}

func (g *gridDriver) PutChar(x, y int, ch rune, repeat int, st tcell.Style) {
	g.FillRegion(x, y, repeat, 1, ch, st)
}

func (g *gridDriver) PutString(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		g.set(x, y, r, st)
		x++
	}
}

func (g *gridDriver) PushClip(x, y, w, h int) {}

func (g *gridDriver) PopClip() {}

func (g *gridDriver) row(y int) string {
	return strings.TrimRight(string(g.cells[y*g.w:(y+1)*g.w]), " ")
}

func (g *gridDriver) style(x, y int) tcell.Style {
	return g.styles[y*g.w+x]
}

func hasAttr(st tcell.Style, a tcell.AttrMask) bool {
	_, _, attrs := st.Decompose()
	return attrs&a != 0
}

func TestScrollWithoutBlitterRepaintsRows(t *testing.T) {
	g := newGrid(10, 4)
	d := New(0, 0, 10, 4, g)
	d.SetBuffer(textbuf.NewFromString(numberedLines(10)))
	d.ShowCursor(false)
	d.Draw()
	d.ScrollTo(3, 0)
	d.Draw()
	want := []string{"line 03", "line 04", "line 05", "line 06"}
	for y, w := range want {
		if got := g.row(y); got != w {
			t.Fatalf("row %d = %q, want %q", y, got, w)
		}
	}
}

func TestCellCursorIsErasedWhenMoved(t *testing.T) {
	g := newGrid(10, 2)
	d := New(0, 0, 10, 2, g)
	d.SetBuffer(textbuf.NewFromString("abc"))
	d.Draw()
	if !hasAttr(g.style(0, 0), tcell.AttrReverse) {
		t.Fatalf("cursor cell not drawn")
	}
	d.SetInsertPosition(2)
	d.Draw()
	if hasAttr(g.style(0, 0), tcell.AttrReverse) {
		t.Fatalf("old cursor cell still drawn")
	}
	if !hasAttr(g.style(2, 0), tcell.AttrReverse) {
		t.Fatalf("new cursor cell not drawn")
	}
	if got := g.row(0); got != "abc" {
		t.Fatalf("row = %q", got)
	}
}

func TestExposeRepaintsOnlyDamagedCharacters(t *testing.T) {
	g := newGrid(20, 4)
	d := New(0, 0, 20, 4, g)
	buf := textbuf.NewFromString("first line\nsecond line\nthird")
	d.SetBuffer(buf)
	d.ShowCursor(false)
	d.Draw()
	g.puts = 0
	buf.Select(12, 14)
	d.Draw()
	if g.puts == 0 || g.puts > 4 {
		t.Fatalf("cells written = %d, want a handful", g.puts)
	}
	if !hasAttr(g.style(1, 1), tcell.AttrReverse) || hasAttr(g.style(3, 1), tcell.AttrReverse) {
		t.Fatalf("selection not painted on its characters only")
	}
}

func TestStylePrecedence(t *testing.T) {
	d := New(0, 0, 10, 2, nil)
	cases := []struct {
		cs   CellStyle
		want tcell.AttrMask
		not  tcell.AttrMask
	}{
		{CellStyle{Primary: true, Highlight: true, Secondary: true}, tcell.AttrReverse, tcell.AttrBold | tcell.AttrUnderline},
		{CellStyle{Highlight: true, Secondary: true}, tcell.AttrBold, tcell.AttrReverse | tcell.AttrUnderline},
		{CellStyle{Secondary: true}, tcell.AttrUnderline, tcell.AttrReverse | tcell.AttrBold},
	}
	for i, c := range cases {
		st := d.resolve(c.cs)
		if !hasAttr(st, c.want) || hasAttr(st, c.not) {
			t.Fatalf("case %d: style %v", i, st)
		}
	}
}

func TestStyleTableColorsText(t *testing.T) {
	g := newGrid(10, 1)
	d := New(0, 0, 10, 1, g)
	buf := textbuf.NewFromString("ab")
	d.SetBuffer(buf)
	d.ShowCursor(false)
	d.SetStyle(textbuf.NewFromString("AB"), []StyleEntry{
		{Fg: tcell.ColorDefault, Bg: tcell.ColorDefault},
		{Fg: tcell.ColorRed, Bg: tcell.ColorDefault, Attrs: tcell.AttrItalic},
	})
	d.Draw()
	fg, _, attrs := g.style(1, 0).Decompose()
	if fg != tcell.ColorRed || attrs&tcell.AttrItalic == 0 {
		t.Fatalf("styled cell = %v %v", fg, attrs)
	}
	if fg, _, _ := g.style(0, 0).Decompose(); fg == tcell.ColorRed {
		t.Fatalf("default entry coloured")
	}
}

func TestSelectedNewlineFillsRow(t *testing.T) {
	g := newGrid(10, 2)
	d := New(0, 0, 10, 2, g)
	buf := textbuf.NewFromString("ab\ncd")
	d.SetBuffer(buf)
	d.ShowCursor(false)
	buf.Select(1, 4)
	d.Draw()
	if !hasAttr(g.style(8, 0), tcell.AttrReverse) {
		t.Fatalf("row tail after selected newline not selected")
	}
	if hasAttr(g.style(8, 1), tcell.AttrReverse) {
		t.Fatalf("row tail after unselected end selected")
	}
}
