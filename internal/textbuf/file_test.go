package textbuf

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
)

func TestFileRoundTripSmallChunks(t *testing.T) {
	text := "héllo\nwörld €\n\tend"
	src := NewFromString(text)
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := src.SaveFile(path, 3); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != text {
		t.Fatalf("file = %q", data)
	}

	dst := New(0, 0)
	warned := 0
	dst.TranscodingWarning = func(string) { warned++ }
	if err := dst.InsertFile(path, 0, 2); err != nil {
		t.Fatalf("InsertFile: %v", err)
	}
	if dst.Text() != text {
		t.Fatalf("loaded %q", dst.Text())
	}
	if warned != 0 || dst.InputFileWasTranscoded() {
		t.Fatalf("valid UTF-8 was transcoded")
	}
}

func TestOutputFileRange(t *testing.T) {
	b := NewFromString("0123456789")
	path := filepath.Join(t.TempDir(), "part.txt")
	if err := b.OutputFile(path, 2, 6, 0); err != nil {
		t.Fatalf("OutputFile: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "2345" {
		t.Fatalf("file = %q", data)
	}
}

func TestLatin1IsTranscodedAndWarnsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	if err := os.WriteFile(path, []byte("caf\xe9 \x80 na\xefve"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := New(0, 0)
	var warnedFor []string
	b.TranscodingWarning = func(p string) { warnedFor = append(warnedFor, p) }
	if err := b.LoadFile(path, 2); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if b.Text() != "café € naïve" {
		t.Fatalf("text = %q", b.Text())
	}
	if len(warnedFor) != 1 || warnedFor[0] != path {
		t.Fatalf("warnings = %v", warnedFor)
	}
	if !b.InputFileWasTranscoded() {
		t.Fatalf("transcoded flag not set")
	}
	if _, ok := b.Undo(); ok {
		t.Fatalf("LoadFile left an undo record")
	}
}

func TestAppendFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tail.txt")
	if err := os.WriteFile(path, []byte(" world"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := NewFromString("hello")
	if err := b.AppendFile(path, 0); err != nil {
		t.Fatalf("AppendFile: %v", err)
	}
	if b.Text() != "hello world" {
		t.Fatalf("text = %q", b.Text())
	}
}

func TestFileErrorCodes(t *testing.T) {
	dir := t.TempDir()
	b := NewFromString("keep")

	err := b.InsertFile(filepath.Join(dir, "missing.txt"), 0, 0)
	if ErrorCode(err) != 1 || !errors.Is(err, ErrOpen) {
		t.Fatalf("missing file: code %d err %v", ErrorCode(err), err)
	}
	if err := b.LoadFile(filepath.Join(dir, "missing.txt"), 0); ErrorCode(err) != 1 {
		t.Fatalf("LoadFile missing: %v", err)
	}
	if b.Text() != "keep" {
		t.Fatalf("failed load changed text: %q", b.Text())
	}

	err = b.OutputFile(dir, 0, b.Length(), 0)
	if ErrorCode(err) != 1 {
		t.Fatalf("output to directory: code %d err %v", ErrorCode(err), err)
	}
	if ErrorCode(nil) != 0 {
		t.Fatalf("ErrorCode(nil) != 0")
	}
}

func TestReadErrorKeepsPrefix(t *testing.T) {
	b := New(0, 0)
	r := io.MultiReader(strings.NewReader("partial"), iotest.ErrReader(errors.New("disk gone")))
	err := b.InsertReader(r, 0, 4)
	if ErrorCode(err) != 2 || !errors.Is(err, ErrIO) {
		t.Fatalf("code %d err %v", ErrorCode(err), err)
	}
	if b.Text() != "partial" {
		t.Fatalf("prefix = %q", b.Text())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("full")
}

func TestWriteRangeStopsOnError(t *testing.T) {
	b := NewFromString("abcdef")
	if err := b.WriteRange(failingWriter{}, 0, 6, 2); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestIncompleteTail(t *testing.T) {
	euro := []byte("€")
	cases := []struct {
		data []byte
		want int
	}{
		{[]byte("abc"), 3},
		{append([]byte("ab"), euro[:1]...), 2},
		{append([]byte("ab"), euro[:2]...), 2},
		{append([]byte("ab"), euro...), 5},
		{[]byte("ab\xff"), 3},
	}
	for i, c := range cases {
		if got := incompleteTail(c.data); got != c.want {
			t.Fatalf("case %d: incompleteTail = %d, want %d", i, got, c.want)
		}
	}
}
