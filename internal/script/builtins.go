package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Paintersrp/astromark/internal/keybinds"
	"github.com/Paintersrp/astromark/internal/logging"
)

// Black is returned for colors that cannot be parsed.
const Black = "#000000"

// RegisterKeybinds exposes key(), keybind(), Modifier and Action.
func (e *Engine) RegisterKeybinds() {
	e.Register("key", func(args []any) (any, error) {
		name, ok := argString(args, 0)
		if !ok {
			return nil, fmt.Errorf("key expects a string")
		}
		if _, err := keybinds.ParseKey(name); err != nil {
			logging.Warnf("script: %v", err)
		}
		return name, nil
	})

	e.Register("keybind", func(args []any) (any, error) {
		name, ok := argString(args, 0)
		if !ok {
			return nil, fmt.Errorf("keybind expects a key as its first argument")
		}
		mods := []any{}
		if len(args) > 1 {
			switch m := args[1].(type) {
			case []any:
				mods = m
			case string:
				mods = []any{m}
			case map[string]any, nil:
			default:
				logging.Warnf("script: keybind modifiers must be a list, got %T", m)
			}
		}
		return map[string]any{"key": name, "modifiers": mods}, nil
	})

	e.SetGlobal("Modifier", map[string]string{
		"Ctrl":  "Ctrl",
		"Alt":   "Alt",
		"Shift": "Shift",
		"Super": "Super",
	})

	actions := make(map[string]string, len(keybinds.Actions))
	for _, a := range keybinds.Actions {
		actions[a.ScriptName()] = string(a)
	}
	e.SetGlobal("Action", actions)
}

// RegisterColors exposes color("#rrggbb") and color(r, g, b). Invalid input
// is logged and yields black.
func (e *Engine) RegisterColors() {
	e.Register("color", func(args []any) (any, error) {
		return ParseColor(args), nil
	})
}

// ParseColor implements the color() script function.
func ParseColor(args []any) string {
	if len(args) == 1 {
		s, ok := args[0].(string)
		if !ok {
			logging.Warnf("script: %v could not be parsed into a color", args[0])
			return Black
		}
		return HexColor(s)
	}

	if len(args) == 3 {
		var rgb [3]uint8
		for i, a := range args {
			rgb[i] = channel(a)
		}
		return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
	}

	logging.Warnf("script: color expects a hex string or three integers, got %d arguments", len(args))
	return Black
}

// HexColor normalizes s into lower-case #rrggbb form.
func HexColor(s string) string {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(strings.ToLower(hex))
	if err != nil || (len(hex) != 4 && len(hex) != 7) {
		logging.Warnf("script: %q could not be parsed into a color", s)
		return Black
	}
	return c.Hex()
}

func channel(v any) uint8 {
	f, ok := v.(float64)
	if !ok || f < 0 || f > 255 || f != math.Trunc(f) {
		logging.Warnf("script: invalid color channel %v: must be an integer between 0 and 255", v)
		return 0
	}
	return uint8(f)
}

func argString(args []any, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}
