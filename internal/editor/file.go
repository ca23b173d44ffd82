package editor

import (
	"errors"
	"fmt"
	"os"
)

var ErrNoFileName = errors.New("no file name")

// Open loads path into the buffer. A missing file starts an empty buffer
// that will be saved to path.
func (e *Editor) Open(path string) error {
	err := e.buf.LoadFile(path, e.cfg.Buffer.FileChunkSize)
	switch {
	case errors.Is(err, os.ErrNotExist):
		e.buf.SetText("")
		e.SetStatus(path + ": new file")
	case err != nil:
		return fmt.Errorf("open %s: %w", path, err)
	}
	e.path = path
	e.modified = false
	e.buf.Unselect()
	e.disp.SetInsertPosition(0)
	e.disp.ShowInsertPosition()
	return nil
}

// Save writes the buffer to path, or to the opened file when path is empty.
func (e *Editor) Save(path string) error {
	if path == "" {
		path = e.path
	}
	if path == "" {
		return ErrNoFileName
	}
	if err := e.buf.SaveFile(path, e.cfg.Buffer.FileChunkSize); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	e.path = path
	e.modified = false
	e.SetStatus(fmt.Sprintf("wrote %s (%d bytes)", path, e.buf.Length()))
	return nil
}
