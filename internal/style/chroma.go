package style

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Chroma styles text with a regex lexer. It keeps no parse state, so Edit
// is a no-op and every Styles call lexes the whole text.
type Chroma struct {
	lexer chroma.Lexer
}

// NewChroma uses the lexer called name, else the one matching path.
func NewChroma(name, path string) (*Chroma, error) {
	var lexer chroma.Lexer
	if name != "" {
		lexer = lexers.Get(name)
	}
	if lexer == nil && path != "" {
		lexer = lexers.Match(path)
	}
	if lexer == nil {
		return nil, fmt.Errorf("chroma lexer for %q: %w", path, ErrNoHighlighter)
	}
	return &Chroma{lexer: chroma.Coalesce(lexer)}, nil
}

func (c *Chroma) Edit(Edit) {}

func (c *Chroma) Styles(src []byte) []byte {
	out := make([]byte, len(src))
	for i := range out {
		out[i] = Plain
	}
	it, err := c.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, string(src))
	if err != nil {
		return out
	}
	pos := 0
	for tok := it(); tok != chroma.EOF && pos < len(out); tok = it() {
		end := min(pos+len(tok.Value), len(out))
		if st := tokenStyle(tok.Type); st != Plain {
			for i := pos; i < end; i++ {
				out[i] = st
			}
		}
		pos = end
	}
	return out
}

func (c *Chroma) Close() {}

func tokenStyle(t chroma.TokenType) byte {
	switch {
	case t == chroma.Error:
		return Error
	case t == chroma.KeywordType, t == chroma.NameClass:
		return Type
	case t == chroma.KeywordConstant, t == chroma.NameConstant:
		return Constant
	case t.InCategory(chroma.Keyword):
		return Keyword
	case t == chroma.NameFunction, t == chroma.NameFunctionMagic:
		return Function
	case t == chroma.NameBuiltin, t == chroma.NameBuiltinPseudo:
		return Builtin
	case t == chroma.NameAttribute, t == chroma.NameTag, t == chroma.NameProperty:
		return Field
	case t.InSubCategory(chroma.LiteralString):
		return String
	case t.InSubCategory(chroma.LiteralNumber):
		return Number
	case t.InCategory(chroma.Comment):
		return Comment
	case t.InCategory(chroma.Operator):
		return Operator
	case t.InCategory(chroma.Punctuation):
		return Punctuation
	case t == chroma.GenericHeading, t == chroma.GenericSubheading:
		return Heading
	}
	return Plain
}
