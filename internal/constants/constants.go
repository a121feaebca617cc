package constants

const (
	Version    = `0.1.0`
	AppName    = `AstroMark`
	ConfigDir  = `astromark`
	ConfigFile = `config.lua`
	RecentFile = `recent.yaml`
	LogFile    = `astromark.log`
	EnvPrefix  = `ASTROMARK`

	DefaultScript = `-- AstroMark configuration.
--
-- flags() returns the built-in defaults. Change the fields you care about
-- and return the table.
--
--   local f = flags()
--   f.tab_width = 2
--   f.expand_tabs = true
--   f.highlight = "dracula"
--   f.palette = Palette.NORD
--   table.insert(f.keybinds, 1, { action = Action.Save, keybind = keybind("w", { Modifier.Alt }) })
--   f.callback = function() log("config loaded") end
--   return f

return flags()
`

	NewFileName     = `New File`
	UnknownFileName = `Unknown File`
	InvalidFileName = `Invalid File Name`
)
