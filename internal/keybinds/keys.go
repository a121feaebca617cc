package keybinds

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Key names a physical key the way bubbletea spells it, lower-cased:
// "s", "pgdown", "enter", "f5", "+".
type Key string

// Modifiers is a set of held modifier keys.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
	ModSuper
)

var modifierNames = []struct {
	mod   Modifiers
	names []string
}{
	{ModCtrl, []string{"ctrl", "control"}},
	{ModAlt, []string{"alt", "option", "meta"}},
	{ModShift, []string{"shift"}},
	{ModSuper, []string{"super", "cmd", "command", "win"}},
}

// ParseModifier maps a modifier name to its flag.
func ParseModifier(name string) (Modifiers, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, m := range modifierNames {
		for _, alias := range m.names {
			if n == alias {
				return m.mod, true
			}
		}
	}
	return 0, false
}

// Has reports whether every flag in other is set in m.
func (m Modifiers) Has(other Modifiers) bool {
	return m&other == other
}

// Names returns the canonical modifier names in ctrl, alt, shift, super order.
func (m Modifiers) Names() []string {
	var out []string
	for _, entry := range modifierNames {
		if m.Has(entry.mod) {
			out = append(out, entry.names[0])
		}
	}
	return out
}

func (m Modifiers) String() string {
	return strings.Join(m.Names(), "+")
}

// Combo is a key together with the exact set of modifiers held with it.
type Combo struct {
	Key  Key
	Mods Modifiers
}

func (c Combo) String() string {
	if c.Mods == 0 {
		return string(c.Key)
	}
	return c.Mods.String() + "+" + string(c.Key)
}

// ParseCombo reads strings such as "ctrl+s", "alt+shift+o" or "ctrl++".
// An upper-case letter implies shift.
func ParseCombo(s string) (Combo, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return Combo{}, fmt.Errorf("empty key combination")
	}

	var mods Modifiers
	for {
		idx := strings.Index(rest, "+")
		if idx <= 0 || idx == len(rest)-1 {
			break
		}
		mod, ok := ParseModifier(rest[:idx])
		if !ok {
			break
		}
		mods |= mod
		rest = rest[idx+1:]
	}

	key, shifted, err := normalizeKey(rest)
	if err != nil {
		return Combo{}, fmt.Errorf("invalid key combination %q: %w", s, err)
	}
	if shifted {
		mods |= ModShift
	}
	return Combo{Key: key, Mods: mods}, nil
}

// ParseKey validates a single key name without modifiers.
func ParseKey(s string) (Key, error) {
	key, _, err := normalizeKey(s)
	return key, err
}

func normalizeKey(s string) (Key, bool, error) {
	switch s {
	case "":
		return "", false, fmt.Errorf("missing key")
	case " ":
		return "space", false, nil
	}

	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if unicode.IsUpper(r) {
			return Key(string(unicode.ToLower(r))), true, nil
		}
		return Key(s), false, nil
	}

	if strings.ContainsAny(s, " \t\n+") {
		return "", false, fmt.Errorf("key %q is not a single key", s)
	}
	return Key(strings.ToLower(s)), false, nil
}

// FromKeyMsg converts a terminal key event into a combo. Events that cannot
// be expressed as a single key, such as multi-rune IME input, report false.
func FromKeyMsg(msg tea.KeyMsg) (Combo, bool) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) != 1 {
		return Combo{}, false
	}

	combo, err := ParseCombo(msg.String())
	if err != nil {
		return Combo{}, false
	}
	return combo, true
}
