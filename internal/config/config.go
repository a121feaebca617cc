package config

import (
	"context"
	"errors"

	"github.com/Paintersrp/astromark/internal/keybinds"
	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/recent"
	"github.com/Paintersrp/astromark/internal/script"
)

const (
	DefaultTextSize = 14.0
	DefaultTabWidth = 4
)

// Config is the evaluated configuration script. It is read-only once Load
// returns; the script engine is kept only to run the startup callback.
type Config struct {
	TextSize   float64
	TabWidth   int
	MaxRecents int
	ExpandTabs bool
	Theme      Theme
	Keybinds   keybinds.Table
	Callback   *script.Function

	// Path is the script the configuration was read from, if any.
	Path string

	engine *script.Engine
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TextSize:   DefaultTextSize,
		TabWidth:   DefaultTabWidth,
		MaxRecents: recent.DefaultMax,
		ExpandTabs: false,
		Theme:      DefaultTheme(),
		Keybinds:   keybinds.DefaultTable(),
	}
}

// Load evaluates the script at path. Any failure is logged and yields the
// defaults, so Load never returns nil.
func Load(path, moduleDir string) *Config {
	engine := newEngine(moduleDir)

	value, err := engine.EvalFile(context.Background(), path)
	if err != nil {
		logging.Errorf("config: %v", err)
		engine.Close()
		cfg := Default()
		cfg.Path = path
		return cfg
	}

	cfg := fromScript(value, engine)
	cfg.Path = path
	return cfg
}

// Parse evaluates configuration source held in memory.
func Parse(src, moduleDir string) (*Config, error) {
	engine := newEngine(moduleDir)

	value, err := engine.Eval(context.Background(), src, "config")
	if err != nil {
		engine.Close()
		return Default(), err
	}
	return fromScript(value, engine), nil
}

// Space is the gutter width, in columns, derived from the text size.
func (c *Config) Space() int {
	cols := int(c.TextSize*2) / 7
	if cols < 1 {
		return 1
	}
	return cols
}

// RunCallback invokes the script's startup callback, if one was provided.
func (c *Config) RunCallback(ctx context.Context) error {
	if c.Callback == nil {
		return nil
	}
	if c.engine == nil {
		return errors.New("callback has no script engine")
	}
	return c.engine.Call(ctx, c.Callback)
}

// Close releases the script engine.
func (c *Config) Close() {
	if c.engine != nil {
		c.engine.Close()
		c.engine = nil
	}
}
