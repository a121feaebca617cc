package config

import (
	"sort"
	"strings"

	"github.com/Paintersrp/astromark/internal/logging"
)

const DefaultHighlight = "base16eighties"

// highlight names accepted in the configuration and the preview style each
// one renders with
var highlights = map[string]string{
	"base16eighties": "dark",
	"base16mocha":    "dracula",
	"base16ocean":    "dark",
	"inspiredgithub": "light",
	"solarizeddark":  "dark",
	"dark":           "dark",
	"light":          "light",
	"dracula":        "dracula",
	"pink":           "pink",
	"ascii":          "ascii",
	"notty":          "notty",
}

// Palette holds the interface colors as #rrggbb strings.
type Palette struct {
	Background string
	Text       string
	Primary    string
	Success    string
	Danger     string
}

type Theme struct {
	Highlight string
	Palette   Palette
}

var palettes = map[string]Palette{
	"DRACULA":              {"#282a36", "#f8f8f2", "#bd93f9", "#50fa7b", "#ff5555"},
	"NORD":                 {"#2e3440", "#eceff4", "#8fbcbb", "#a3be8c", "#bf616a"},
	"SOLARIZED_LIGHT":      {"#fdf6e3", "#657b83", "#2aa198", "#859900", "#dc322f"},
	"SOLARIZED_DARK":       {"#002b36", "#839496", "#2aa198", "#859900", "#dc322f"},
	"GRUVBOX_LIGHT":        {"#fbf1c7", "#282828", "#458588", "#98971a", "#cc241d"},
	"GRUVBOX_DARK":         {"#282828", "#fbf1c7", "#458588", "#98971a", "#cc241d"},
	"CATPPUCCIN_LATTE":     {"#eff1f5", "#4c4f69", "#1e66f5", "#40a02b", "#d20f39"},
	"CATPPUCCIN_FRAPPE":    {"#303446", "#c6d0f5", "#8caaee", "#a6d189", "#e78284"},
	"CATPPUCCIN_MACCHIATO": {"#24273a", "#cad3f5", "#8aadf4", "#a6da95", "#ed8796"},
	"CATPPUCCIN_MOCHA":     {"#1e1e2e", "#cdd6f4", "#89b4fa", "#a6e3a1", "#f38ba8"},
	"TOKYO_NIGHT":          {"#1a1b26", "#9aa5ce", "#2ac3de", "#9ece6a", "#f7768e"},
	"TOKYO_NIGHT_STORM":    {"#24283b", "#9aa5ce", "#2ac3de", "#9ece6a", "#f7768e"},
	"TOKYO_NIGHT_LIGHT":    {"#d5d6db", "#565a6e", "#166775", "#485e30", "#8c4351"},
	"KANAGAWA_WAVE":        {"#363646", "#dcd7ba", "#7e9cd8", "#76946a", "#c34043"},
	"KANAGAWA_DRAGON":      {"#181616", "#c5c9c5", "#223249", "#8a9a7b", "#c4746e"},
	"KANAGAWA_LOTUS":       {"#f2ecbc", "#545464", "#4d699b", "#6f894e", "#c84053"},
	"MOONFLY":              {"#080808", "#bdbdbd", "#80a0ff", "#8cc85f", "#ff5454"},
	"NIGHTFLY":             {"#011627", "#bdc1c6", "#82aaff", "#a1cd5e", "#fc514e"},
	"OXOCARBON":            {"#232323", "#d0d0d0", "#00b4ff", "#00c15a", "#f62d0f"},
	"FERRA":                {"#2b292d", "#fecdb2", "#d1d1e0", "#b1b695", "#e06b75"},
}

const DefaultPaletteName = "CATPPUCCIN_FRAPPE"

func DefaultTheme() Theme {
	return Theme{Highlight: DefaultHighlight, Palette: palettes[DefaultPaletteName]}
}

// PaletteNames lists the built-in palettes in alphabetical order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPalette returns a built-in palette by name.
func LookupPalette(name string) (Palette, bool) {
	p, ok := palettes[strings.ToUpper(strings.TrimSpace(name))]
	return p, ok
}

// NormalizeHighlight lower-cases and validates a highlight name. Unknown names
// fall back to the default with a warning.
func NormalizeHighlight(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if _, ok := highlights[n]; ok {
		return n
	}
	logging.Warnf("highlight %q not found, using %s", name, DefaultHighlight)
	return DefaultHighlight
}

// PreviewStyle is the glamour standard style for the theme's highlight.
func (t Theme) PreviewStyle() string {
	if style, ok := highlights[strings.ToLower(t.Highlight)]; ok {
		return style
	}
	return highlights[DefaultHighlight]
}

func (p Palette) toMap() map[string]any {
	return map[string]any{
		"background": p.Background,
		"text":       p.Text,
		"primary":    p.Primary,
		"success":    p.Success,
		"danger":     p.Danger,
	}
}
