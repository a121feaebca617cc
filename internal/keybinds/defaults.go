package keybinds

// DefaultTable returns the bindings used when the configuration script does
// not define any.
func DefaultTable() Table {
	return Table{
		{Combo{Key: "s", Mods: ModCtrl}, ActionSave},
		{Combo{Key: "s", Mods: ModAlt}, ActionSaveAs},
		{Combo{Key: "o", Mods: ModCtrl}, ActionOpenFile},
		{Combo{Key: "n", Mods: ModCtrl}, ActionNewFile},
		{Combo{Key: "h", Mods: ModAlt}, ActionGoHome},
		{Combo{Key: "w", Mods: ModCtrl}, ActionCloseTab},
		{Combo{Key: "pgdown", Mods: ModCtrl}, ActionNextTab},
		{Combo{Key: "pgup", Mods: ModCtrl}, ActionPrevTab},
		{Combo{Key: "o", Mods: ModAlt}, ActionFollowLink},
		{Combo{Key: "c", Mods: ModAlt}, ActionCopyPath},
		{Combo{Key: "q", Mods: ModCtrl}, ActionQuit},
	}
}
