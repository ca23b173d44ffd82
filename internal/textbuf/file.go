package textbuf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"go.uber.org/multierr"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrOpen = errors.New("cannot open file")
	ErrIO   = errors.New("i/o error")
)

// ErrorCode maps a file operation error to 0 (success), 1 (open failure)
// or 2 (i/o error).
func ErrorCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrOpen):
		return 1
	default:
		return 2
	}
}

// InputFileWasTranscoded reports whether the last load had to transcode
// invalid UTF-8.
func (b *Buffer) InputFileWasTranscoded() bool {
	return b.transcoded
}

// InsertFile reads path into the buffer at pos in chunkSize reads. On a read
// error the text inserted so far stays in place.
func (b *Buffer) InsertFile(path string, pos, chunkSize int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	b.transcoded = false
	err = b.InsertReader(f, pos, chunkSize)
	if b.transcoded && b.TranscodingWarning != nil {
		b.TranscodingWarning(path)
	}
	return err
}

func (b *Buffer) AppendFile(path string, chunkSize int) error {
	return b.InsertFile(path, b.length, chunkSize)
}

// LoadFile replaces the content with the file, without an undo record.
func (b *Buffer) LoadFile(path string, chunkSize int) error {
	canUndo := b.canUndo
	b.canUndo = false
	defer func() { b.canUndo = canUndo }()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	f.Close()

	b.SetText("")
	return b.InsertFile(path, 0, chunkSize)
}

// InsertReader inserts everything r yields at pos. A UTF-8 sequence split
// across two reads is joined before decoding.
func (b *Buffer) InsertReader(r io.Reader, pos, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	pos = clampInt(pos, 0, b.length)
	chunk := make([]byte, chunkSize)
	var carry []byte

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			data := append(carry, chunk[:n]...)
			split := incompleteTail(data)
			carry = append([]byte(nil), data[split:]...)
			text := b.transcode(data[:split])
			b.Insert(pos, text)
			pos += len(text)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if len(carry) > 0 {
		b.Insert(pos, b.transcode(carry))
	}
	return nil
}

// incompleteTail returns the index where a truncated trailing UTF-8
// sequence begins, or len(data).
func incompleteTail(data []byte) int {
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax+1; i-- {
		if !utf8.RuneStart(data[i]) {
			continue
		}
		if data[i] >= utf8.RuneSelf && !utf8.FullRune(data[i:]) {
			return i
		}
		break
	}
	return len(data)
}

// transcode keeps valid UTF-8 and reads every invalid byte as Windows-1252.
func (b *Buffer) transcode(p []byte) string {
	if utf8.Valid(p) {
		return string(p)
	}
	b.transcoded = true
	out := make([]byte, 0, len(p)+len(p)/2)
	for len(p) > 0 {
		r, size := utf8.DecodeRune(p)
		if r == utf8.RuneError && size == 1 {
			r = charmap.Windows1252.DecodeByte(p[0])
		}
		out = utf8.AppendRune(out, r)
		p = p[size:]
	}
	return string(out)
}

// OutputFile writes [start, end) to path in chunkSize writes.
func (b *Buffer) OutputFile(path string, start, end, chunkSize int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	err = multierr.Append(b.WriteRange(f, start, end, chunkSize), f.Close())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

func (b *Buffer) SaveFile(path string, chunkSize int) error {
	return b.OutputFile(path, 0, b.length, chunkSize)
}

func (b *Buffer) WriteRange(w io.Writer, start, end, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	start, end = b.normalizeRange(start, end)
	for pos := start; pos < end; pos += chunkSize {
		if _, err := w.Write(b.rangeBytes(pos, min(pos+chunkSize, end))); err != nil {
			return err
		}
	}
	return nil
}
