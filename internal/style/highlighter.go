package style

import (
	"strings"

	"github.com/kobzarvs/qtext/internal/logger"
	"github.com/kobzarvs/qtext/internal/textbuf"
)

// MaxHighlightSize is the largest text the producer is run over. Bigger
// buffers stay Plain.
const MaxHighlightSize = 8 << 20

// Redisplayer is told which text ranges changed style.
type Redisplayer interface {
	RedisplayRange(start, end int)
}

// Highlighter keeps a style buffer the same length as its text buffer.
// Create it after the display has been given the text buffer so the
// display sees each edit before the restyle redraws.
type Highlighter struct {
	text     *textbuf.Buffer
	styles   *textbuf.Buffer
	producer Producer
	view     Redisplayer
	id       textbuf.ListenerID
	rep      logger.Reporter
}

type Option func(*Highlighter)

func WithReporter(r logger.Reporter) Option {
	return func(h *Highlighter) {
		if r != nil {
			h.rep = r
		}
	}
}

// NewHighlighter styles text with p, which may be nil for plain text, and
// attaches to text's modify listeners.
func NewHighlighter(text *textbuf.Buffer, p Producer, view Redisplayer, opts ...Option) *Highlighter {
	h := &Highlighter{
		text:     text,
		producer: p,
		view:     view,
		rep:      logger.For("style"),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.styles = textbuf.NewFromString(strings.Repeat(string(Plain), text.Length()), textbuf.WithReporter(h.rep))
	h.styles.CanUndo(false)
	h.id = text.AddModifyFunc(h.modified)
	h.restyle()
	return h
}

// Styles is the buffer to hand to the display.
func (h *Highlighter) Styles() *textbuf.Buffer {
	return h.styles
}

// Close detaches from the text buffer and releases the producer.
func (h *Highlighter) Close() {
	if h.text == nil {
		return
	}
	h.text.RemoveModifyFunc(h.id)
	h.text = nil
	if h.producer != nil {
		h.producer.Close()
	}
}

func (h *Highlighter) modified(m textbuf.Modification) {
	if m.Inserted == 0 && m.Deleted == 0 {
		return
	}
	if h.producer != nil {
		h.producer.Edit(h.edit(m))
	}
	h.styles.Replace(m.Pos, m.Pos+m.Deleted, strings.Repeat(string(Plain), m.Inserted))
	if h.styles.Length() != h.text.Length() {
		h.rep.Error("style buffer out of step", "styles", h.styles.Length(), "text", h.text.Length())
	}
	h.restyle()
}

// edit converts m into offsets and points. The text before m.Pos is
// unchanged, so the start point can be read from the current text.
func (h *Highlighter) edit(m textbuf.Modification) Edit {
	lineStart := h.text.LineStart(m.Pos)
	start := Point{Row: h.text.CountLines(0, m.Pos), Col: m.Pos - lineStart}
	return Edit{
		Start:    m.Pos,
		OldEnd:   m.Pos + m.Deleted,
		NewEnd:   m.Pos + m.Inserted,
		StartPt:  start,
		OldEndPt: advance(start, m.DeletedText),
		NewEndPt: advance(start, h.text.TextRange(m.Pos, m.Pos+m.Inserted)),
	}
}

func advance(p Point, s string) Point {
	if n := strings.Count(s, "\n"); n > 0 {
		return Point{Row: p.Row + n, Col: len(s) - strings.LastIndexByte(s, '\n') - 1}
	}
	return Point{Row: p.Row, Col: p.Col + len(s)}
}

// restyle runs the producer and rewrites only the runs whose bytes changed.
func (h *Highlighter) restyle() {
	n := h.text.Length()
	var want []byte
	if h.producer != nil && n <= MaxHighlightSize {
		want = h.producer.Styles([]byte(h.text.Text()))
	}
	if len(want) != n {
		want = []byte(strings.Repeat(string(Plain), n))
	}
	have := []byte(h.styles.Text())
	if len(have) != n {
		h.styles.SetText(string(want))
		if h.view != nil {
			h.view.RedisplayRange(0, n)
		}
		return
	}
	for i := 0; i < n; {
		if have[i] == want[i] {
			i++
			continue
		}
		j := i + 1
		for j < n && have[j] != want[j] {
			j++
		}
		h.styles.Replace(i, j, string(want[i:j]))
		if h.view != nil {
			h.view.RedisplayRange(i, j)
		}
		i = j
	}
}
