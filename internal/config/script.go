package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/Paintersrp/astromark/internal/keybinds"
	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/script"
)

func newEngine(moduleDir string) *script.Engine {
	e := script.New(script.Options{ModuleDir: moduleDir})

	e.Register("flags", func([]any) (any, error) {
		return Default().toScriptValue(), nil
	})

	e.Register("palette", func(args []any) (any, error) {
		if len(args) != 5 {
			return nil, fmt.Errorf("palette expects 5 colors (background, text, primary, success, danger), got %d", len(args))
		}
		colors := make([]string, 5)
		for i, a := range args {
			s, ok := a.(string)
			if !ok {
				logging.Warnf("palette color %d is not a color", i+1)
				s = script.Black
			}
			colors[i] = script.HexColor(s)
		}
		return Palette{colors[0], colors[1], colors[2], colors[3], colors[4]}.toMap(), nil
	})

	presets := make(map[string]any, len(palettes))
	for name, p := range palettes {
		presets[name] = p.toMap()
	}
	e.SetGlobal("Palette", presets)

	e.Seal()
	return e
}

func (c *Config) toScriptValue() map[string]any {
	binds := make([]any, 0, len(c.Keybinds))
	for _, b := range c.Keybinds {
		mods := make([]any, 0, 4)
		for _, name := range b.Combo.Mods.Names() {
			mods = append(mods, modifierScriptName(name))
		}
		binds = append(binds, map[string]any{
			"action":  string(b.Action),
			"keybind": map[string]any{"key": string(b.Combo.Key), "modifiers": mods},
		})
	}

	return map[string]any{
		"text_size":   c.TextSize,
		"tab_width":   c.TabWidth,
		"max_recents": c.MaxRecents,
		"expand_tabs": c.ExpandTabs,
		"highlight":   c.Theme.Highlight,
		"palette":     c.Theme.Palette.toMap(),
		"keybinds":    binds,
	}
}

// fromScript validates the value returned by the configuration script field
// by field. Bad fields keep their defaults and are logged.
func fromScript(value any, engine *script.Engine) *Config {
	cfg := Default()
	cfg.engine = engine

	fields, ok := value.(map[string]any)
	if !ok {
		if value == nil {
			logging.Warnf("config: script returned nothing, using defaults")
		} else {
			logging.Warnf("config: script returned %T instead of a table, using defaults", value)
		}
		cfg.Callback = globalCallback(engine)
		return cfg
	}

	if v, ok := fields["text_size"]; ok {
		if f, ok := v.(float64); ok && f > 0 {
			cfg.TextSize = f
		} else {
			logging.Warnf("config: text_size must be a positive number, got %v", v)
		}
	}

	tabKey := "tab_width"
	if _, ok := fields[tabKey]; !ok {
		tabKey = "tab_len"
	}
	if v, ok := fields[tabKey]; ok {
		if n, ok := positiveInt(v); ok {
			cfg.TabWidth = n
		} else {
			logging.Warnf("config: %s must be a positive integer, got %v", tabKey, v)
		}
	}

	if v, ok := fields["max_recents"]; ok {
		if n, ok := positiveInt(v); ok {
			cfg.MaxRecents = n
		} else {
			logging.Warnf("config: max_recents must be a positive integer, got %v", v)
		}
	}

	if v, ok := fields["expand_tabs"]; ok {
		if b, ok := v.(bool); ok {
			cfg.ExpandTabs = b
		} else {
			logging.Warnf("config: expand_tabs must be a boolean, got %v", v)
		}
	}

	if v, ok := fields["highlight"]; ok {
		if s, ok := v.(string); ok {
			cfg.Theme.Highlight = NormalizeHighlight(s)
		} else {
			logging.Warnf("config: highlight must be a string, got %v", v)
		}
	}

	if v, ok := fields["palette"]; ok {
		cfg.Theme.Palette = parsePalette(v, cfg.Theme.Palette)
	}

	if v, ok := fields["keybinds"]; ok {
		switch records := v.(type) {
		case []any:
			cfg.Keybinds = keybinds.ParseRecords(records)
		case map[string]any:
			if len(records) == 0 {
				cfg.Keybinds = keybinds.Table{}
			} else {
				logging.Warnf("config: keybinds must be a list, using defaults")
			}
		default:
			logging.Warnf("config: keybinds must be a list, got %T", v)
		}
	}

	switch cb := fields["callback"].(type) {
	case *script.Function:
		cfg.Callback = cb
	case nil:
		cfg.Callback = globalCallback(engine)
	default:
		logging.Warnf("config: callback must be a function, got %T", cb)
	}

	return cfg
}

// globalCallback picks up a top-level function named callback when the
// returned table does not set one.
func globalCallback(engine *script.Engine) *script.Function {
	if fn, ok := engine.Global("callback").(*script.Function); ok {
		return fn
	}
	return nil
}

func parsePalette(v any, fallback Palette) Palette {
	if name, ok := v.(string); ok {
		if p, ok := LookupPalette(name); ok {
			return p
		}
		logging.Warnf("config: unknown palette %q", name)
		return fallback
	}

	m, ok := v.(map[string]any)
	if !ok {
		logging.Warnf("config: palette must be a table, got %T", v)
		return fallback
	}

	pick := func(key, def string) string {
		raw, ok := m[key]
		if !ok {
			return def
		}
		s, ok := raw.(string)
		if !ok {
			logging.Warnf("config: palette %s is not a color", key)
			return script.Black
		}
		return script.HexColor(s)
	}

	return Palette{
		Background: pick("background", fallback.Background),
		Text:       pick("text", fallback.Text),
		Primary:    pick("primary", fallback.Primary),
		Success:    pick("success", fallback.Success),
		Danger:     pick("danger", fallback.Danger),
	}
}

func positiveInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f < 1 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func modifierScriptName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
