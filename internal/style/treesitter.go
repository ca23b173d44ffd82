package style

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/golang"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/yaml"
)

type grammar struct {
	lang  func() *sitter.Language
	query string
}

var grammars = map[string]grammar{
	"go":       {golang.GetLanguage, goHighlightQuery},
	"toml":     {toml.GetLanguage, tomlHighlightQuery},
	"yaml":     {yaml.GetLanguage, yamlHighlightQuery},
	"bash":     {bash.GetLanguage, bashHighlightQuery},
	"markdown": {tree_sitter_markdown.GetLanguage, markdownBlockHighlightQuery},
}

// TreeSitter styles text from a syntax tree that is reparsed incrementally
// after each edit.
type TreeSitter struct {
	parser *sitter.Parser
	query  *sitter.Query
	tree   *sitter.Tree
}

func NewTreeSitter(name string) (*TreeSitter, error) {
	g, ok := grammars[name]
	if !ok {
		return nil, fmt.Errorf("tree-sitter grammar %q: %w", name, ErrNoHighlighter)
	}
	lang := g.lang()
	query, err := sitter.NewQuery([]byte(g.query), lang)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter query for %s: %w", name, err)
	}
	p := sitter.NewParser()
	p.SetLanguage(lang)
	return &TreeSitter{parser: p, query: query}, nil
}

// Edit moves the previous tree's nodes across the change so the next
// parse can reuse them.
func (t *TreeSitter) Edit(e Edit) {
	if t.tree == nil {
		return
	}
	t.tree.Edit(sitter.EditInput{
		StartIndex:  uint32(e.Start),
		OldEndIndex: uint32(e.OldEnd),
		NewEndIndex: uint32(e.NewEnd),
		StartPoint:  point(e.StartPt),
		OldEndPoint: point(e.OldEndPt),
		NewEndPoint: point(e.NewEndPt),
	})
}

func point(p Point) sitter.Point {
	return sitter.Point{Row: uint32(p.Row), Column: uint32(p.Col)}
}

// Styles reparses src and fills each captured node's bytes. The first
// capture to claim a byte keeps it, so earlier query patterns win.
func (t *TreeSitter) Styles(src []byte) []byte {
	out := make([]byte, len(src))
	for i := range out {
		out[i] = Plain
	}
	tree, err := t.parser.ParseCtx(context.Background(), t.tree, src)
	if err != nil || tree == nil {
		return out
	}
	if t.tree != nil && t.tree != tree {
		t.tree.Close()
	}
	t.tree = tree

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(t.query, tree.RootNode())
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, src)
		if match == nil {
			continue
		}
		for _, c := range match.Captures {
			st := KindStyle(t.query.CaptureNameForId(c.Index))
			if st == Plain {
				continue
			}
			start := min(int(c.Node.StartByte()), len(out))
			end := min(int(c.Node.EndByte()), len(out))
			for i := start; i < end; i++ {
				if out[i] == Plain {
					out[i] = st
				}
			}
		}
	}
	return out
}

func (t *TreeSitter) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
	t.query.Close()
	t.parser.Close()
}

const goHighlightQuery = `
((comment) @comment)
((interpreted_string_literal) @string)
((raw_string_literal) @string)
((rune_literal) @string)
((escape_sequence) @string)
((int_literal) @number)
((float_literal) @number)
((imaginary_literal) @number)
[
  "break" "case" "chan" "const" "continue" "default" "defer" "else"
  "fallthrough" "for" "func" "go" "goto" "if" "import" "interface"
  "map" "package" "range" "return" "select" "struct" "switch"
  "type" "var"
] @keyword
((nil) @constant)
((true) @constant)
((false) @constant)
((iota) @constant)
((identifier) @type (#match? @type "^(bool|byte|rune|string|int|int8|int16|int32|int64|uint|uint8|uint16|uint32|uint64|uintptr|float32|float64|complex64|complex128|error|any|comparable)$"))
((identifier) @builtin (#match? @builtin "^(append|cap|clear|close|complex|copy|delete|imag|len|make|max|min|new|panic|print|println|real|recover)$"))
((const_spec name: (identifier) @constant))
((type_spec name: (type_identifier) @type))
((type_identifier) @type)
((package_identifier) @type)
((type_parameter_declaration (identifier) @type))
((function_declaration name: (identifier) @function))
((method_declaration name: (field_identifier) @function))
((method_elem (field_identifier) @function))
((call_expression function: (identifier) @function))
((call_expression function: (selector_expression field: (field_identifier) @function)))
((selector_expression field: (field_identifier) @field))
((field_identifier) @field)
((parameter_declaration (identifier) @parameter))
((variadic_parameter_declaration (identifier) @parameter))
((label_name) @keyword)
((blank_identifier) @variable)
((identifier) @variable)
[
  "+" "-" "*" "/" "%" "==" "!=" "<=" ">=" "<" ">" "=" ":=" "&&" "||"
  "!" "&" "|" "^" "<<" ">>" "&^" "+=" "-=" "*=" "/=" "%=" "&=" "|="
  "^=" "<<=" ">>=" "&^=" "<-" "++" "--" "..."
] @operator
[
  "." "," ";" ":" "(" ")" "[" "]" "{" "}"
] @punctuation
`

const yamlHighlightQuery = `
((comment) @comment)
((string_scalar) @string)
((double_quote_scalar) @string)
((single_quote_scalar) @string)
((integer_scalar) @number)
((float_scalar) @number)
((null_scalar) @constant)
((boolean_scalar) @constant)
((block_mapping_pair key: (_) @field))
((flow_pair key: (_) @field))
((anchor_name) @keyword)
((alias_name) @keyword)
((tag) @type)
["," ":" "-" "[" "]" "{" "}" ">" "|" "*" "&"] @punctuation
`

const tomlHighlightQuery = `
((comment) @comment)
((string) @string)
((integer) @number)
((float) @number)
((boolean) @constant)
((local_date) @string)
((local_time) @string)
((local_date_time) @string)
((offset_date_time) @string)
((bare_key) @field)
((quoted_key) @field)
((table (bare_key) @type))
((table (quoted_key) @type))
((table (dotted_key) @type))
((table_array_element (bare_key) @type))
((table_array_element (quoted_key) @type))
((table_array_element (dotted_key) @type))
["=" "." "," "[" "]" "[[" "]]" "{" "}"] @punctuation
`

const bashHighlightQuery = `
((comment) @comment)
((string) @string)
((raw_string) @string)
((heredoc_body) @string)
((number) @number)
((variable_name) @variable)
((special_variable_name) @variable)
((command_name) @function)
((function_definition name: (word) @function))
[
  "if" "then" "else" "elif" "fi" "case" "esac" "for" "while" "until"
  "do" "done" "in" "function" "select" "return" "exit" "break" "continue"
  "local" "export" "readonly" "declare" "typeset" "unset"
] @keyword
["$" "${" "}" "(" ")" "((" "))" "[" "]" "[[" "]]" "{" "}" ";" ";;" "&&" "||" "|" "&" "<" ">" ">>" "<<" "<<<"] @operator
`

const markdownBlockHighlightQuery = `
(atx_heading) @heading
(setext_heading) @heading
(thematic_break) @comment
(block_quote_marker) @comment
(list_marker_plus) @keyword
(list_marker_minus) @keyword
(list_marker_star) @keyword
(list_marker_dot) @keyword
(list_marker_parenthesis) @keyword
(task_list_marker_checked) @constant
(task_list_marker_unchecked) @constant
(fenced_code_block_delimiter) @string
(indented_code_block) @string
(info_string) @comment
(language) @type
(link_reference_definition) @function
(pipe_table_delimiter_row) @comment
(pipe_table_delimiter_cell) @comment
`
