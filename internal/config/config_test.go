package config_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Paintersrp/astromark/internal/config"
	"github.com/Paintersrp/astromark/internal/constants"
	"github.com/Paintersrp/astromark/internal/keybinds"
)

func TestDefaultScriptMatchesDefaults(t *testing.T) {
	cfg, err := config.Parse(constants.DefaultScript, "")
	if err != nil {
		t.Fatalf("default script failed: %v", err)
	}
	t.Cleanup(cfg.Close)

	def := config.Default()
	if cfg.TextSize != def.TextSize || cfg.TabWidth != def.TabWidth || cfg.MaxRecents != def.MaxRecents {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	if cfg.ExpandTabs {
		t.Fatalf("expected expand_tabs to default to false")
	}
	if cfg.Theme != def.Theme {
		t.Fatalf("expected default theme, got %+v", cfg.Theme)
	}
	if !reflect.DeepEqual(cfg.Keybinds, def.Keybinds) {
		t.Fatalf("expected default keybinds, got %+v", cfg.Keybinds)
	}
	if cfg.Callback != nil {
		t.Fatalf("expected no callback")
	}
}

func TestParseOverridesFields(t *testing.T) {
	cfg, err := config.Parse(`
		local f = flags()
		f.text_size = 18
		f.tab_width = 2
		f.max_recents = 3
		f.expand_tabs = true
		f.highlight = "Dracula"
		f.palette = Palette.NORD
		f.keybinds = {
			{ action = Action.Quit, keybind = keybind("x", { Modifier.Ctrl }) },
			{ action = "save", keybind = "alt+w" },
		}
		return f
	`, "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	t.Cleanup(cfg.Close)

	if cfg.TextSize != 18 || cfg.TabWidth != 2 || cfg.MaxRecents != 3 || !cfg.ExpandTabs {
		t.Fatalf("unexpected scalar fields %+v", cfg)
	}
	if cfg.Theme.Highlight != "dracula" || cfg.Theme.PreviewStyle() != "dracula" {
		t.Fatalf("unexpected highlight %q", cfg.Theme.Highlight)
	}
	nord, _ := config.LookupPalette("NORD")
	if cfg.Theme.Palette != nord {
		t.Fatalf("expected NORD palette, got %+v", cfg.Theme.Palette)
	}

	want := keybinds.Table{
		{Combo: keybinds.Combo{Key: "x", Mods: keybinds.ModCtrl}, Action: keybinds.ActionQuit},
		{Combo: keybinds.Combo{Key: "w", Mods: keybinds.ModAlt}, Action: keybinds.ActionSave},
	}
	if !reflect.DeepEqual(cfg.Keybinds, want) {
		t.Fatalf("got %+v, want %+v", cfg.Keybinds, want)
	}
}

func TestParseKeepsDefaultsForBadFields(t *testing.T) {
	cfg, err := config.Parse(`
		return {
			text_size = "huge",
			tab_width = 2.5,
			expand_tabs = "yes",
			highlight = "neon",
			palette = { background = "#123456", text = "bogus" },
			keybinds = {
				{ action = "teleport", keybind = "ctrl+t" },
				{ action = "go_home", keybind = keybind("h", { Modifier.Alt, "Hyper" }) },
			},
		}
	`, "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	t.Cleanup(cfg.Close)

	def := config.Default()
	if cfg.TextSize != def.TextSize || cfg.TabWidth != def.TabWidth || cfg.ExpandTabs != def.ExpandTabs {
		t.Fatalf("expected scalar defaults, got %+v", cfg)
	}
	if cfg.Theme.Highlight != config.DefaultHighlight {
		t.Fatalf("expected fallback highlight, got %q", cfg.Theme.Highlight)
	}
	if cfg.Theme.Palette.Background != "#123456" || cfg.Theme.Palette.Text != "#000000" {
		t.Fatalf("unexpected palette %+v", cfg.Theme.Palette)
	}
	if cfg.Theme.Palette.Primary != def.Theme.Palette.Primary {
		t.Fatalf("missing palette fields should keep defaults, got %+v", cfg.Theme.Palette)
	}

	want := keybinds.Table{
		{Combo: keybinds.Combo{Key: "h", Mods: keybinds.ModAlt}, Action: keybinds.ActionGoHome},
	}
	if !reflect.DeepEqual(cfg.Keybinds, want) {
		t.Fatalf("got %+v, want %+v", cfg.Keybinds, want)
	}
}

func TestParseErrorFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Parse(`return flags(`, "")
	if err == nil {
		t.Fatalf("expected syntax error")
	}
	if !reflect.DeepEqual(cfg.Keybinds, keybinds.DefaultTable()) {
		t.Fatalf("expected default keybinds after error")
	}

	cfg, err = config.Parse(`return undefined_value`, "")
	if err == nil {
		t.Fatalf("expected undefined variable error")
	}
	if cfg.TabWidth != config.DefaultTabWidth {
		t.Fatalf("expected defaults after error")
	}
}

func TestKeybindsRoundTripThroughScript(t *testing.T) {
	original := config.Default()
	original.TextSize = 16.5
	original.TabWidth = 8
	original.MaxRecents = 4
	original.ExpandTabs = true
	original.Theme.Highlight = "inspiredgithub"
	original.Keybinds = keybinds.Table{
		{Combo: keybinds.Combo{Key: "s", Mods: keybinds.ModCtrl | keybinds.ModShift}, Action: keybinds.ActionSaveAs},
		{Combo: keybinds.Combo{Key: "+", Mods: keybinds.ModSuper}, Action: keybinds.ActionNewFile},
		{Combo: keybinds.Combo{Key: "pgdown", Mods: keybinds.ModCtrl}, Action: keybinds.ActionNextTab},
		{Combo: keybinds.Combo{Key: "s", Mods: keybinds.ModCtrl | keybinds.ModShift}, Action: keybinds.ActionQuit},
		{Combo: keybinds.Combo{Key: "f5"}, Action: keybinds.ActionGoHome},
	}

	reloaded, err := config.Parse(config.Encode(original), "")
	if err != nil {
		t.Fatalf("encoded script failed: %v\n%s", err, config.Encode(original))
	}
	t.Cleanup(reloaded.Close)

	if !reflect.DeepEqual(reloaded.Keybinds, original.Keybinds) {
		t.Fatalf("keybinds changed in round trip:\n got %+v\nwant %+v", reloaded.Keybinds, original.Keybinds)
	}
	if reloaded.TextSize != original.TextSize || reloaded.TabWidth != original.TabWidth ||
		reloaded.MaxRecents != original.MaxRecents || reloaded.ExpandTabs != original.ExpandTabs {
		t.Fatalf("scalars changed in round trip: %+v", reloaded)
	}
	if reloaded.Theme != original.Theme {
		t.Fatalf("theme changed in round trip: %+v", reloaded.Theme)
	}
}

func TestCallbackRunsOnce(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker.lua")
	if err := os.WriteFile(marker, []byte(`return { calls = 0 }`), 0o644); err != nil {
		t.Fatalf("write module: %v", err)
	}

	cfg, err := config.Parse(`
		local state = require("marker")
		local f = flags()
		f.callback = function() state.calls = state.calls + 1 end
		return f
	`, dir)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	t.Cleanup(cfg.Close)

	if cfg.Callback == nil {
		t.Fatalf("expected callback to be captured")
	}
	if err := cfg.RunCallback(context.Background()); err != nil {
		t.Fatalf("callback failed: %v", err)
	}
}

func TestGlobalCallbackIsUsed(t *testing.T) {
	cfg, err := config.Parse(`
		function callback() error("callback ran") end
		return flags()
	`, "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	t.Cleanup(cfg.Close)

	if err := cfg.RunCallback(context.Background()); err == nil {
		t.Fatalf("expected the global callback to run and fail")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg := config.Load(filepath.Join(t.TempDir(), "missing.lua"), "")
	t.Cleanup(cfg.Close)

	if !reflect.DeepEqual(cfg.Keybinds, keybinds.DefaultTable()) {
		t.Fatalf("expected defaults")
	}
	if err := cfg.RunCallback(context.Background()); err != nil {
		t.Fatalf("no callback should be a no-op, got %v", err)
	}
}

func TestEnsureConfigExistsWritesDefaultOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astromark", constants.ConfigFile)

	if err := config.EnsureConfigExists(path); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != constants.DefaultScript {
		t.Fatalf("expected default script, got %q", data)
	}

	if err := os.WriteFile(path, []byte("return flags()\n-- mine\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := config.EnsureConfigExists(path); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "return flags()\n-- mine\n" {
		t.Fatalf("existing config was overwritten")
	}

	if err := config.ResetConfig(path); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != constants.DefaultScript {
		t.Fatalf("expected reset to restore the default script")
	}

	cfg := config.Load(path, filepath.Dir(path))
	t.Cleanup(cfg.Close)
	if cfg.Path != path {
		t.Fatalf("expected path to be recorded, got %q", cfg.Path)
	}
}

func TestSpace(t *testing.T) {
	cfg := config.Default()
	if cfg.Space() != 4 {
		t.Fatalf("expected 4 columns for default text size, got %d", cfg.Space())
	}
	cfg.TextSize = 1
	if cfg.Space() != 1 {
		t.Fatalf("expected minimum of 1 column, got %d", cfg.Space())
	}
}
