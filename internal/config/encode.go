package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Paintersrp/astromark/internal/keybinds"
)

// Encode writes c back out as a configuration script that evaluates to an
// equivalent configuration. The callback is not carried over.
func Encode(c *Config) string {
	var b strings.Builder

	b.WriteString("local f = flags()\n")
	fmt.Fprintf(&b, "f.text_size = %s\n", strconv.FormatFloat(c.TextSize, 'f', -1, 64))
	fmt.Fprintf(&b, "f.tab_width = %d\n", c.TabWidth)
	fmt.Fprintf(&b, "f.max_recents = %d\n", c.MaxRecents)
	fmt.Fprintf(&b, "f.expand_tabs = %t\n", c.ExpandTabs)
	fmt.Fprintf(&b, "f.highlight = %s\n", strconv.Quote(c.Theme.Highlight))

	p := c.Theme.Palette
	fmt.Fprintf(&b, "f.palette = palette(color(%s), color(%s), color(%s), color(%s), color(%s))\n",
		strconv.Quote(p.Background),
		strconv.Quote(p.Text),
		strconv.Quote(p.Primary),
		strconv.Quote(p.Success),
		strconv.Quote(p.Danger),
	)

	b.WriteString("f.keybinds = {\n")
	for _, bind := range c.Keybinds {
		fmt.Fprintf(&b, "\t{ action = Action.%s, keybind = %s },\n",
			bind.Action.ScriptName(), encodeCombo(bind.Combo))
	}
	b.WriteString("}\n")
	b.WriteString("return f\n")

	return b.String()
}

func encodeCombo(c keybinds.Combo) string {
	mods := make([]string, 0, 4)
	for _, name := range c.Mods.Names() {
		mods = append(mods, "Modifier."+modifierScriptName(name))
	}
	return fmt.Sprintf("keybind(key(%s), { %s })", strconv.Quote(string(c.Key)), strings.Join(mods, ", "))
}
