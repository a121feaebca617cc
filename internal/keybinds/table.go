package keybinds

import (
	"github.com/charmbracelet/bubbles/key"
)

// Binding ties a key combination to an action.
type Binding struct {
	Combo  Combo
	Action Action
}

// Table is an ordered keybinding table. Order matters: when two bindings
// share a combination the earlier one wins.
type Table []Binding

// Resolve returns the first action whose combination matches k and mods
// exactly. Extra or missing modifiers never match.
func (t Table) Resolve(k Key, mods Modifiers) (Action, bool) {
	for _, b := range t {
		if b.Combo.Key == k && b.Combo.Mods == mods {
			return b.Action, true
		}
	}
	return "", false
}

// ResolveCombo is Resolve for a parsed combination.
func (t Table) ResolveCombo(c Combo) (Action, bool) {
	return t.Resolve(c.Key, c.Mods)
}

// Lookup returns the first combination bound to a.
func (t Table) Lookup(a Action) (Combo, bool) {
	for _, b := range t {
		if b.Action == a {
			return b.Combo, true
		}
	}
	return Combo{}, false
}

// HelpBindings renders the table as bubbles key bindings for the help view.
// Shadowed duplicates are left out.
func (t Table) HelpBindings() []key.Binding {
	seen := make(map[Combo]bool, len(t))
	out := make([]key.Binding, 0, len(t))
	for _, b := range t {
		if seen[b.Combo] {
			continue
		}
		seen[b.Combo] = true
		combo := b.Combo.String()
		out = append(out, key.NewBinding(
			key.WithKeys(combo),
			key.WithHelp(combo, b.Action.Help()),
		))
	}
	return out
}

// Clone returns an independent copy of t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}
