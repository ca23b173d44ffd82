package textbuf

import "testing"

func TestLineStartAndEnd(t *testing.T) {
	b := NewFromString("abc\ndef\n")
	if got := b.LineStart(5); got != 4 {
		t.Fatalf("LineStart(5) = %d", got)
	}
	if got := b.LineEnd(1); got != 3 {
		t.Fatalf("LineEnd(1) = %d", got)
	}
	if got := b.LineEnd(8); got != 8 {
		t.Fatalf("LineEnd(8) = %d", got)
	}
	if got := b.LineText(6); got != "def" {
		t.Fatalf("LineText(6) = %q", got)
	}
}

func TestLineQueriesAcrossGap(t *testing.T) {
	b := NewFromString("one\ntwo\nthree")
	// park the gap in the middle of "two"
	b.Insert(5, "X")
	b.Remove(5, 6)
	if got := b.LineStart(7); got != 4 {
		t.Fatalf("LineStart(7) = %d", got)
	}
	if got := b.LineEnd(4); got != 7 {
		t.Fatalf("LineEnd(4) = %d", got)
	}
	if got := b.CountLines(0, b.Length()); got != 2 {
		t.Fatalf("CountLines = %d", got)
	}
	if got := b.CountLines(4, 8); got != 1 {
		t.Fatalf("CountLines(4,8) = %d", got)
	}
}

func TestSkipAndRewindLines(t *testing.T) {
	b := NewFromString("a\nb\nc")
	if got := b.SkipLines(0, 2); got != 4 {
		t.Fatalf("SkipLines(0,2) = %d", got)
	}
	if got := b.SkipLines(0, 5); got != 5 {
		t.Fatalf("SkipLines(0,5) = %d", got)
	}
	if got := b.SkipLines(3, 0); got != 3 {
		t.Fatalf("SkipLines(3,0) = %d", got)
	}
	if got := b.RewindLines(4, 1); got != 2 {
		t.Fatalf("RewindLines(4,1) = %d", got)
	}
	if got := b.RewindLines(4, 0); got != 4 {
		t.Fatalf("RewindLines(4,0) = %d", got)
	}
	if got := b.RewindLines(4, 9); got != 0 {
		t.Fatalf("RewindLines(4,9) = %d", got)
	}
}

func TestMultibyteStepping(t *testing.T) {
	b := NewFromString("aé€b")
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"NextChar(0)", b.NextChar(0), 1},
		{"NextChar(1)", b.NextChar(1), 3},
		{"NextChar(3)", b.NextChar(3), 6},
		{"NextChar(7)", b.NextChar(7), 7},
		{"PrevChar(6)", b.PrevChar(6), 3},
		{"PrevChar(3)", b.PrevChar(3), 1},
		{"PrevChar(0)", b.PrevChar(0), -1},
		{"PrevCharClipped(0)", b.PrevCharClipped(0), 0},
		{"Align(4)", b.Align(4), 3},
		{"Align(2)", b.Align(2), 1},
		{"Align(6)", b.Align(6), 6},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if b.CharAt(3) != '€' {
		t.Fatalf("CharAt(3) = %q", b.CharAt(3))
	}
	if got := b.CountDisplayedCharacters(0, 7); got != 4 {
		t.Fatalf("CountDisplayedCharacters = %d", got)
	}
	if got := b.SkipDisplayedCharacters(0, 3); got != 6 {
		t.Fatalf("SkipDisplayedCharacters = %d", got)
	}
}

func TestInsertNeverSplitsCharacter(t *testing.T) {
	b := NewFromString("é")
	b.Insert(1, "x")
	if b.Text() != "xé" {
		t.Fatalf("text = %q", b.Text())
	}
	b.Remove(1, 2)
	if b.Text() != "xé" {
		t.Fatalf("partial remove changed text: %q", b.Text())
	}
}

func TestWordBoundaries(t *testing.T) {
	b := NewFromString("foo bar_baz, qux")
	if got := b.WordStart(6); got != 4 {
		t.Fatalf("WordStart(6) = %d", got)
	}
	if got := b.WordEnd(6); got != 11 {
		t.Fatalf("WordEnd(6) = %d", got)
	}
	if got := b.WordStart(0); got != 0 {
		t.Fatalf("WordStart(0) = %d", got)
	}
	if got := b.WordEnd(13); got != 16 {
		t.Fatalf("WordEnd(13) = %d", got)
	}
}

func TestWideSeparators(t *testing.T) {
	seps := []rune{' ', ',', 0xa0, 0x2014, 0x3001, 0xff0c}
	for _, r := range seps {
		if !isWordSeparator(r) {
			t.Fatalf("%U not a separator", r)
		}
	}
	words := []rune{'a', 'Z', '7', '_', 'é', 'ж', 0x4e2d}
	for _, r := range words {
		if isWordSeparator(r) {
			t.Fatalf("%U is a separator", r)
		}
	}
}

func TestFindChar(t *testing.T) {
	b := NewFromString("a→b→c")
	if p, ok := b.FindCharForward(0, '→'); !ok || p != 1 {
		t.Fatalf("FindCharForward = %d %v", p, ok)
	}
	if p, ok := b.FindCharBackward(b.Length(), '→'); !ok || p != 5 {
		t.Fatalf("FindCharBackward = %d %v", p, ok)
	}
	if p, ok := b.FindCharForward(0, 'z'); ok || p != b.Length() {
		t.Fatalf("missing forward = %d %v", p, ok)
	}
	if p, ok := b.FindCharBackward(3, 'z'); ok || p != 0 {
		t.Fatalf("missing backward = %d %v", p, ok)
	}
}

func TestSearch(t *testing.T) {
	b := NewFromString("Hello hello NAÏVE naïve")
	if p, ok := b.SearchForward(1, "hello", true); !ok || p != 6 {
		t.Fatalf("forward match case = %d %v", p, ok)
	}
	if p, ok := b.SearchForward(0, "HELLO", false); !ok || p != 0 {
		t.Fatalf("forward ignore case = %d %v", p, ok)
	}
	if p, ok := b.SearchBackward(10, "hello", true); !ok || p != 6 {
		t.Fatalf("backward = %d %v", p, ok)
	}
	if p, ok := b.SearchBackward(5, "hello", false); !ok || p != 0 {
		t.Fatalf("backward ignore case = %d %v", p, ok)
	}
	if p, ok := b.SearchForward(0, "naïve", false); !ok || p != 12 {
		t.Fatalf("multibyte ignore case = %d %v", p, ok)
	}
	if _, ok := b.SearchForward(0, "absent", false); ok {
		t.Fatalf("found absent string")
	}
	if _, ok := b.SearchForward(0, "", true); ok {
		t.Fatalf("found empty string")
	}
}
