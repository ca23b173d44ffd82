// Package textbuf implements the gap buffer behind the text display: byte
// storage with a movable gap, three selections, a single-level undo record
// and ordered modify/pre-delete listeners.
package textbuf

import (
	"github.com/kobzarvs/qtext/internal/logger"
)

const (
	// DefaultGapSize is the gap added whenever an insert overflows the gap.
	DefaultGapSize = 1024
	// DefaultChunkSize is the read/write chunk used by the file operations.
	DefaultChunkSize = 128 * 1024

	defaultTabDistance = 8
)

// Modification describes one change delivered to modify listeners. A
// restyle-only notification has Inserted == Deleted == 0.
type Modification struct {
	Pos         int
	Inserted    int
	Deleted     int
	Restyled    int
	DeletedText string
}

type ModifyFunc func(m Modification)

// PredeleteFunc runs before text is removed, while it is still readable.
type PredeleteFunc func(pos, nDeleted int)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

type modifyListener struct {
	id ListenerID
	fn ModifyFunc
}

type predeleteListener struct {
	id ListenerID
	fn PredeleteFunc
}

// Buffer is a gap buffer. Logical position p maps to physical index p when
// p < gapStart, else p + (gapEnd - gapStart).
type Buffer struct {
	buf              []byte
	gapStart         int
	gapEnd           int
	length           int
	preferredGapSize int
	tabDistance      int

	primary   Selection
	secondary Selection
	highlight Selection

	modify    []modifyListener
	predelete []predeleteListener
	nextID    ListenerID

	canUndo       bool
	undo          undoRecord
	tracker       *EditTracker
	cursorPosHint int

	reporter logger.Reporter

	// TranscodingWarning is called once per file load when invalid UTF-8
	// had to be transcoded.
	TranscodingWarning func(path string)
	transcoded         bool
}

type Option func(*Buffer)

// WithReporter sets the diagnostic hook used for contract violations.
func WithReporter(r logger.Reporter) Option {
	return func(b *Buffer) {
		if r != nil {
			b.reporter = r
		}
	}
}

// New creates an empty buffer with room for requestedSize bytes before the
// first reallocation.
func New(requestedSize, preferredGapSize int, opts ...Option) *Buffer {
	if requestedSize < 0 {
		requestedSize = 0
	}
	if preferredGapSize <= 0 {
		preferredGapSize = DefaultGapSize
	}
	size := requestedSize + preferredGapSize
	b := &Buffer{
		buf:              make([]byte, size),
		gapEnd:           size,
		preferredGapSize: preferredGapSize,
		tabDistance:      defaultTabDistance,
		canUndo:          true,
		reporter:         logger.For("textbuf"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates a buffer holding text, with an empty undo record.
func NewFromString(text string, opts ...Option) *Buffer {
	b := New(len(text), 0, opts...)
	b.insert(0, []byte(text))
	b.undo = undoRecord{}
	return b
}

func (b *Buffer) Length() int {
	return b.length
}

// Gap reports the gap bounds and the physical size. Exposed for invariant
// checks.
func (b *Buffer) Gap() (start, end, size int) {
	return b.gapStart, b.gapEnd, len(b.buf)
}

func (b *Buffer) PreferredGapSize() int {
	return b.preferredGapSize
}

func (b *Buffer) TabDistance() int {
	return b.tabDistance
}

// SetTabDistance changes the tab stop width and tells every listener the
// whole buffer must be laid out again.
func (b *Buffer) SetTabDistance(n int) {
	if n < 1 {
		n = 1
	}
	if n == b.tabDistance {
		return
	}
	b.tabDistance = n
	text := b.Text()
	b.callModify(Modification{Pos: 0, Inserted: b.length, Deleted: b.length, DeletedText: text})
}

func (b *Buffer) Text() string {
	out := make([]byte, 0, b.length)
	out = append(out, b.buf[:b.gapStart]...)
	out = append(out, b.buf[b.gapEnd:]...)
	return string(out)
}

// SetText replaces the whole content. The undo record is cleared since it
// cannot describe the change.
func (b *Buffer) SetText(text string) {
	b.callPredelete(0, b.length)
	deleted := b.Text()
	deletedLength := b.length

	b.buf = make([]byte, len(text)+b.preferredGapSize)
	copy(b.buf, text)
	b.length = len(text)
	b.gapStart = len(text)
	b.gapEnd = len(b.buf)
	b.undo = undoRecord{}
	b.updateSelections(0, deletedLength, 0)
	b.touch()
	b.callModify(Modification{Pos: 0, Inserted: len(text), Deleted: deletedLength, DeletedText: deleted})
}

// TextRange returns the text in [start, end), clamped to the buffer.
func (b *Buffer) TextRange(start, end int) string {
	return string(b.rangeBytes(start, end))
}

func (b *Buffer) rangeBytes(start, end int) []byte {
	if start > end {
		start, end = end, start
	}
	start = clampInt(start, 0, b.length)
	end = clampInt(end, 0, b.length)
	if start == end {
		return nil
	}
	out := make([]byte, 0, end-start)
	if start < b.gapStart {
		stop := end
		if stop > b.gapStart {
			stop = b.gapStart
		}
		out = append(out, b.buf[start:stop]...)
	}
	if end > b.gapStart {
		from := start
		if from < b.gapStart {
			from = b.gapStart
		}
		gap := b.gapEnd - b.gapStart
		out = append(out, b.buf[from+gap:end+gap]...)
	}
	return out
}

// ByteAt returns the raw byte at pos, or 0 outside the buffer.
func (b *Buffer) ByteAt(pos int) byte {
	if pos < 0 || pos >= b.length {
		return 0
	}
	if pos < b.gapStart {
		return b.buf[pos]
	}
	return b.buf[pos+b.gapEnd-b.gapStart]
}

func (b *Buffer) Insert(pos int, text string) {
	if text == "" {
		return
	}
	pos = b.Align(clampInt(pos, 0, b.length))
	n := b.insert(pos, []byte(text))
	b.cursorPosHint = pos + n
	b.callModify(Modification{Pos: pos, Inserted: n})
}

func (b *Buffer) Append(text string) {
	b.Insert(b.length, text)
}

// Remove deletes [start, end). Pre-delete listeners run before the text is
// gone, modify listeners after.
func (b *Buffer) Remove(start, end int) {
	start, end = b.normalizeRange(start, end)
	if start == end {
		return
	}
	b.callPredelete(start, end-start)
	deleted := b.TextRange(start, end)
	b.remove(start, end)
	b.cursorPosHint = start
	b.callModify(Modification{Pos: start, Deleted: end - start, DeletedText: deleted})
}

// Replace swaps [start, end) for text as one change: one pre-delete call and
// one modify call.
func (b *Buffer) Replace(start, end int, text string) {
	start, end = b.normalizeRange(start, end)
	if start == end && text == "" {
		return
	}
	b.callPredelete(start, end-start)
	deleted := b.TextRange(start, end)
	if end > start {
		b.remove(start, end)
	}
	n := 0
	if text != "" {
		n = b.insert(start, []byte(text))
	}
	b.cursorPosHint = start + n
	b.callModify(Modification{Pos: start, Inserted: n, Deleted: end - start, DeletedText: deleted})
}

// CopyFrom inserts src[start:end) at toPos.
func (b *Buffer) CopyFrom(src *Buffer, start, end, toPos int) {
	if src == nil {
		return
	}
	b.Insert(toPos, src.TextRange(start, end))
}

// CursorPosHint is where an editor should place the cursor after the last
// change.
func (b *Buffer) CursorPosHint() int {
	return b.cursorPosHint
}

func (b *Buffer) normalizeRange(start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	start = b.Align(clampInt(start, 0, b.length))
	end = b.Align(clampInt(end, 0, b.length))
	return start, end
}

func (b *Buffer) insert(pos int, text []byte) int {
	n := len(text)
	if n > b.gapEnd-b.gapStart {
		b.reallocateWithGap(pos, n+b.preferredGapSize)
	} else if pos != b.gapStart {
		b.moveGap(pos)
	}
	copy(b.buf[pos:], text)
	b.gapStart += n
	b.length += n
	b.updateSelections(pos, 0, n)
	b.recordInsert(pos, n)
	b.touch()
	return n
}

func (b *Buffer) remove(start, end int) {
	n := end - start
	b.recordRemove(start, end)
	switch {
	case start > b.gapStart:
		b.moveGap(start)
		b.gapEnd += n
	case end < b.gapStart:
		b.moveGap(end)
		b.gapStart -= n
	default:
		b.gapEnd += end - b.gapStart
		b.gapStart = start
	}
	b.length -= n
	b.updateSelections(start, n, 0)
	b.touch()
}

// moveGap relocates the gap so it starts at pos, moving the smaller side.
func (b *Buffer) moveGap(pos int) {
	gap := b.gapEnd - b.gapStart
	if pos > b.gapStart {
		copy(b.buf[b.gapStart:], b.buf[b.gapEnd:pos+gap])
	} else {
		copy(b.buf[pos+gap:], b.buf[pos:b.gapStart])
	}
	b.gapEnd += pos - b.gapStart
	b.gapStart = pos
}

func (b *Buffer) reallocateWithGap(newGapStart, newGapLen int) {
	newBuf := make([]byte, b.length+newGapLen)
	newGapEnd := newGapStart + newGapLen
	if newGapStart <= b.gapStart {
		copy(newBuf, b.buf[:newGapStart])
		copy(newBuf[newGapEnd:], b.buf[newGapStart:b.gapStart])
		copy(newBuf[newGapEnd+b.gapStart-newGapStart:], b.buf[b.gapEnd:])
	} else {
		moved := newGapStart - b.gapStart
		copy(newBuf, b.buf[:b.gapStart])
		copy(newBuf[b.gapStart:], b.buf[b.gapEnd:b.gapEnd+moved])
		copy(newBuf[newGapEnd:], b.buf[b.gapEnd+moved:])
	}
	b.buf = newBuf
	b.gapStart = newGapStart
	b.gapEnd = newGapEnd
}

func (b *Buffer) updateSelections(pos, nDeleted, nInserted int) {
	b.primary.update(pos, nDeleted, nInserted)
	b.secondary.update(pos, nDeleted, nInserted)
	b.highlight.update(pos, nDeleted, nInserted)
}

func (b *Buffer) touch() {
	if b.tracker != nil {
		b.tracker.last = b
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
