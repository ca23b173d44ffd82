package editor

import (
	"strings"

	"github.com/atotto/clipboard"
)

// Clipboard is the system clipboard as the editor sees it.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

// ReadAll normalises line endings to the buffer's '\n'.
func (systemClipboard) ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n"), nil
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
