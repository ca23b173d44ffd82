package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Language binds file types to a highlighter. Highlighter is "tree-sitter",
// "chroma" or "none"; Grammar names the tree-sitter grammar or the chroma
// lexer.
type Language struct {
	Name        string   `toml:"name"`
	FileTypes   []string `toml:"file-types"`
	Highlighter string   `toml:"highlighter"`
	Grammar     string   `toml:"grammar"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

func DefaultLanguages() Languages {
	return Languages{Languages: []Language{
		{Name: "go", FileTypes: []string{"go"}, Highlighter: "tree-sitter", Grammar: "go"},
		{Name: "toml", FileTypes: []string{"toml"}, Highlighter: "tree-sitter", Grammar: "toml"},
		{Name: "yaml", FileTypes: []string{"yaml", "yml"}, Highlighter: "tree-sitter", Grammar: "yaml"},
		{Name: "bash", FileTypes: []string{"sh", "bash", ".bashrc", ".profile"}, Highlighter: "tree-sitter", Grammar: "bash"},
		{Name: "markdown", FileTypes: []string{"md", "markdown"}, Highlighter: "tree-sitter", Grammar: "markdown"},
	}}
}

// Match finds the language for path by extension or base name.
func (l Languages) Match(path string) *Language {
	base := filepath.Base(path)
	baseLower := strings.ToLower(base)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ftLower := strings.ToLower(ft)
			if ftLower == baseLower || ext != "" && ftLower == ext {
				return lang
			}
		}
	}
	return nil
}

// LoadLanguages reads languages.toml. Entries there take precedence over
// the built-in table; a missing file yields the built-ins.
func LoadLanguages() (Languages, error) {
	langs := DefaultLanguages()
	path, err := LanguagesPath()
	if err != nil {
		return langs, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return langs, nil
		}
		return langs, err
	}

	var user Languages
	if _, err := toml.Decode(string(data), &user); err != nil {
		return langs, err
	}
	langs.Languages = append(user.Languages, langs.Languages...)
	return langs, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
