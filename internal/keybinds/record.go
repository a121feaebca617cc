package keybinds

import (
	"errors"
	"fmt"

	"github.com/Paintersrp/astromark/internal/logging"
)

var (
	ErrMissingAction  = errors.New("keybind record has no action")
	ErrMissingKeybind = errors.New("keybind record has no keybind")
)

// ParseRecord validates one keybinding record produced by the configuration
// script. A record carries an "action" naming a known action and a "keybind"
// that is either a combination string ("ctrl+s") or a table with a "key" and
// a list of "modifiers". Unknown modifiers are dropped with a warning.
func ParseRecord(rec map[string]any) (Binding, error) {
	rawAction, ok := rec["action"]
	if !ok || rawAction == nil {
		return Binding{}, ErrMissingAction
	}
	name, ok := rawAction.(string)
	if !ok {
		return Binding{}, fmt.Errorf("action must be a string, got %T", rawAction)
	}
	action, ok := ParseAction(name)
	if !ok {
		return Binding{}, fmt.Errorf("unknown action %q", name)
	}

	rawBind, ok := rec["keybind"]
	if !ok || rawBind == nil {
		return Binding{}, ErrMissingKeybind
	}

	combo, err := parseKeybindValue(rawBind)
	if err != nil {
		return Binding{}, fmt.Errorf("action %s: %w", action, err)
	}
	return Binding{Combo: combo, Action: action}, nil
}

func parseKeybindValue(v any) (Combo, error) {
	switch val := v.(type) {
	case string:
		return ParseCombo(val)
	case map[string]any:
		return parseKeybindTable(val)
	default:
		return Combo{}, fmt.Errorf("keybind must be a string or table, got %T", v)
	}
}

func parseKeybindTable(t map[string]any) (Combo, error) {
	rawKey, ok := t["key"].(string)
	if !ok {
		return Combo{}, fmt.Errorf("keybind table needs a string key")
	}

	combo, err := ParseCombo(rawKey)
	if err != nil {
		return Combo{}, err
	}

	var mods []any
	switch m := t["modifiers"].(type) {
	case nil:
	case []any:
		mods = m
	case string:
		mods = []any{m}
	case map[string]any:
		// an empty Lua table converts to an empty map
		if len(m) != 0 {
			return Combo{}, fmt.Errorf("modifiers must be a list")
		}
	default:
		return Combo{}, fmt.Errorf("modifiers must be a list, got %T", m)
	}

	for _, raw := range mods {
		name, ok := raw.(string)
		if !ok {
			logging.Warnf("ignoring non-string modifier %v for key %q", raw, rawKey)
			continue
		}
		mod, ok := ParseModifier(name)
		if !ok {
			logging.Warnf("ignoring unknown modifier %q for key %q", name, rawKey)
			continue
		}
		combo.Mods |= mod
	}
	return combo, nil
}

// ParseRecords validates records in order, skipping and logging the ones
// that are malformed.
func ParseRecords(records []any) Table {
	table := make(Table, 0, len(records))
	for i, raw := range records {
		rec, ok := raw.(map[string]any)
		if !ok {
			logging.Warnf("skipping keybind %d: expected a table, got %T", i+1, raw)
			continue
		}
		b, err := ParseRecord(rec)
		if err != nil {
			logging.Warnf("skipping keybind %d: %v", i+1, err)
			continue
		}
		table = append(table, b)
	}
	return table
}
