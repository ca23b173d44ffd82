package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Display struct {
	TabDistance int    `toml:"tab-distance"`
	WrapMode    string `toml:"wrap-mode"`
	WrapMargin  int    `toml:"wrap-margin"`
	// LineNumbers is the margin width in cells; 0 hides it.
	LineNumbers int    `toml:"line-numbers"`
	CursorStyle string `toml:"cursor-style"`
	// Scrollbars is one of "both", "vertical", "horizontal" or "none".
	Scrollbars string `toml:"scrollbars"`
}

type Buffer struct {
	PreferredGapSize int   `toml:"preferred-gap-size"`
	FileChunkSize    int   `toml:"file-chunk-size"`
	Undo             *bool `toml:"undo"`
}

// UndoEnabled defaults to true when the key is absent.
func (b Buffer) UndoEnabled() bool {
	return b.Undo == nil || *b.Undo
}

type Theme struct {
	Theme                 string `toml:"theme"`
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	SelectionForeground   string `toml:"selection-foreground"`
	SelectionBackground   string `toml:"selection-background"`
	SecondaryForeground   string `toml:"secondary-foreground"`
	SecondaryBackground   string `toml:"secondary-background"`
	HighlightForeground   string `toml:"highlight-foreground"`
	HighlightBackground   string `toml:"highlight-background"`
	CursorForeground      string `toml:"cursor-foreground"`
	CursorBackground      string `toml:"cursor-background"`
	LineNumberForeground  string `toml:"line-number-foreground"`
	LineNumberBackground  string `toml:"line-number-background"`
	ControlForeground     string `toml:"control-foreground"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	ScrollbarForeground   string `toml:"scrollbar-foreground"`
	ScrollbarBackground   string `toml:"scrollbar-background"`
	SyntaxKeyword         string `toml:"syntax-keyword"`
	SyntaxString          string `toml:"syntax-string"`
	SyntaxComment         string `toml:"syntax-comment"`
	SyntaxType            string `toml:"syntax-type"`
	SyntaxFunction        string `toml:"syntax-function"`
	SyntaxNumber          string `toml:"syntax-number"`
	SyntaxConstant        string `toml:"syntax-constant"`
	SyntaxOperator        string `toml:"syntax-operator"`
	SyntaxPunctuation     string `toml:"syntax-punctuation"`
	SyntaxField           string `toml:"syntax-field"`
	SyntaxBuiltin         string `toml:"syntax-builtin"`
	SyntaxHeading         string `toml:"syntax-heading"`
}

// DefaultLineNumbers is the margin width used when line numbers are
// turned on without a configured width.
const DefaultLineNumbers = 6

// Keymap maps key names as produced by event.Event.Name to editor actions.
type Keymap map[string]string

type Config struct {
	Display Display `toml:"display"`
	Buffer  Buffer  `toml:"buffer"`
	Theme   Theme   `toml:"theme"`
	Keymap  Keymap  `toml:"keymap"`
}

func Default() Config {
	return Config{
		Display: Display{
			TabDistance: 8,
			WrapMode:    "none",
			LineNumbers: DefaultLineNumbers,
			CursorStyle: "bar",
			Scrollbars:  "both",
		},
		Buffer: Buffer{
			PreferredGapSize: 1024,
			FileChunkSize:    128 * 1024,
		},
		Theme: Theme{
			Foreground:           "#B3B1AD",
			Background:           "#0A0E14",
			SelectionForeground:  "#B3B1AD",
			SelectionBackground:  "#27425A",
			SecondaryForeground:  "#B3B1AD",
			SecondaryBackground:  "#1F2430",
			HighlightForeground:  "#000000",
			HighlightBackground:  "#FFD700",
			CursorForeground:     "#0A0E14",
			CursorBackground:     "#E6B450",
			LineNumberForeground: "#3E4B59",
			LineNumberBackground: "#0A0E14",
			ControlForeground:    "#5C6773",
			StatuslineForeground: "#B3B1AD",
			StatuslineBackground: "#0F1419",
			ScrollbarForeground:  "#3E4B59",
			ScrollbarBackground:  "#0F1419",
			SyntaxKeyword:        "#FFA759",
			SyntaxString:         "#BAE67E",
			SyntaxComment:        "#5C6773",
			SyntaxType:           "#5CCFE6",
			SyntaxFunction:       "#FFD173",
			SyntaxNumber:         "#D4BFFF",
			SyntaxConstant:       "#FFDD8E",
			SyntaxOperator:       "#F29668",
			SyntaxPunctuation:    "#C0C0C0",
			SyntaxField:          "#E6B673",
			SyntaxBuiltin:        "#73D0FF",
			SyntaxHeading:        "#FFA759",
		},
		Keymap: defaultKeymap(),
	}
}

func defaultKeymap() Keymap {
	return Keymap{
		"left":        "move_left",
		"right":       "move_right",
		"up":          "move_up",
		"down":        "move_down",
		"shift+left":  "extend_left",
		"shift+right": "extend_right",
		"shift+up":    "extend_up",
		"shift+down":  "extend_down",
		"ctrl+left":   "word_left",
		"ctrl+right":  "word_right",
		"alt+left":    "word_left",
		"alt+right":   "word_right",
		"home":        "line_start",
		"end":         "line_end",
		"shift+home":  "extend_line_start",
		"shift+end":   "extend_line_end",
		"ctrl+home":   "buffer_start",
		"ctrl+end":    "buffer_end",
		"pgup":        "page_up",
		"pgdn":        "page_down",
		"shift+pgup":  "extend_page_up",
		"shift+pgdn":  "extend_page_down",
		"backspace":   "backspace",
		"del":         "delete",
		"enter":       "newline",
		"tab":         "tab",
		"insert":      "toggle_overstrike",
		"ctrl+a":      "select_all",
		"ctrl+c":      "copy",
		"ctrl+x":      "cut",
		"ctrl+v":      "paste",
		"ctrl+z":      "undo",
		"ctrl+w":      "delete_word",
		"ctrl+s":      "save",
		"ctrl+q":      "quit",
		"ctrl+l":      "toggle_line_numbers",
		"ctrl+r":      "toggle_wrap",
	}
}

// Load reads config.toml and overlays it on the defaults. A named theme is
// applied between the defaults and the [theme] table of the file.
func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	mergeDisplay(&cfg.Display, userCfg.Display)
	mergeBuffer(&cfg.Buffer, userCfg.Buffer)

	set(&cfg.Theme.Theme, userCfg.Theme.Theme)
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)

	for k, v := range userCfg.Keymap {
		cfg.Keymap[k] = v
	}
	return cfg, nil
}

func set(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeDisplay(dst *Display, src Display) {
	if src.TabDistance > 0 {
		dst.TabDistance = src.TabDistance
	}
	set(&dst.WrapMode, src.WrapMode)
	if src.WrapMargin > 0 {
		dst.WrapMargin = src.WrapMargin
	}
	// an explicit 0 cannot be told apart from absence, so negative hides
	if src.LineNumbers != 0 {
		dst.LineNumbers = max(src.LineNumbers, 0)
	}
	set(&dst.CursorStyle, src.CursorStyle)
	set(&dst.Scrollbars, src.Scrollbars)
}

func mergeBuffer(dst *Buffer, src Buffer) {
	if src.PreferredGapSize > 0 {
		dst.PreferredGapSize = src.PreferredGapSize
	}
	if src.FileChunkSize > 0 {
		dst.FileChunkSize = src.FileChunkSize
	}
	if src.Undo != nil {
		dst.Undo = src.Undo
	}
}

func mergeTheme(dst *Theme, src Theme) {
	set(&dst.Foreground, src.Foreground)
	set(&dst.Background, src.Background)
	set(&dst.SelectionForeground, src.SelectionForeground)
	set(&dst.SelectionBackground, src.SelectionBackground)
	set(&dst.SecondaryForeground, src.SecondaryForeground)
	set(&dst.SecondaryBackground, src.SecondaryBackground)
	set(&dst.HighlightForeground, src.HighlightForeground)
	set(&dst.HighlightBackground, src.HighlightBackground)
	set(&dst.CursorForeground, src.CursorForeground)
	set(&dst.CursorBackground, src.CursorBackground)
	set(&dst.LineNumberForeground, src.LineNumberForeground)
	set(&dst.LineNumberBackground, src.LineNumberBackground)
	set(&dst.ControlForeground, src.ControlForeground)
	set(&dst.StatuslineForeground, src.StatuslineForeground)
	set(&dst.StatuslineBackground, src.StatuslineBackground)
	set(&dst.ScrollbarForeground, src.ScrollbarForeground)
	set(&dst.ScrollbarBackground, src.ScrollbarBackground)
	set(&dst.SyntaxKeyword, src.SyntaxKeyword)
	set(&dst.SyntaxString, src.SyntaxString)
	set(&dst.SyntaxComment, src.SyntaxComment)
	set(&dst.SyntaxType, src.SyntaxType)
	set(&dst.SyntaxFunction, src.SyntaxFunction)
	set(&dst.SyntaxNumber, src.SyntaxNumber)
	set(&dst.SyntaxConstant, src.SyntaxConstant)
	set(&dst.SyntaxOperator, src.SyntaxOperator)
	set(&dst.SyntaxPunctuation, src.SyntaxPunctuation)
	set(&dst.SyntaxField, src.SyntaxField)
	set(&dst.SyntaxBuiltin, src.SyntaxBuiltin)
	set(&dst.SyntaxHeading, src.SyntaxHeading)
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

// LoadTheme reads theme/<name>.toml. The keys may sit at the top level or
// inside a [theme] table.
func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var wrapped struct {
		Theme *Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrapped); err == nil && wrapped.Theme != nil {
		return *wrapped.Theme, nil
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("QTEXT_CONFIG_HOME"); v != "" {
		return filepath.Clean(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "qtext"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "qtext"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
