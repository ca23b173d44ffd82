package style

import (
	"errors"
	"fmt"

	"github.com/kobzarvs/qtext/internal/config"
)

var ErrNoHighlighter = errors.New("no highlighter for file type")

// Point is a row and byte column.
type Point struct {
	Row, Col int
}

// Edit describes one text change in both byte offsets and points.
type Edit struct {
	Start, OldEnd, NewEnd       int
	StartPt, OldEndPt, NewEndPt Point
}

// Producer classifies text into style bytes, one per byte of src.
type Producer interface {
	// Edit is called for each change before the next Styles call.
	Edit(e Edit)
	Styles(src []byte) []byte
	Close()
}

// ForFile picks the producer configured for path. Files no language
// matches fall back to chroma when it knows the file name.
func ForFile(path string, langs config.Languages) (Producer, error) {
	if lang := langs.Match(path); lang != nil {
		switch lang.Highlighter {
		case "tree-sitter":
			return NewTreeSitter(lang.Grammar)
		case "chroma":
			return NewChroma(lang.Grammar, path)
		case "none":
			return nil, ErrNoHighlighter
		default:
			return nil, fmt.Errorf("language %s: unknown highlighter %q", lang.Name, lang.Highlighter)
		}
	}
	return NewChroma("", path)
}
