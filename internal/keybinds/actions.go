package keybinds

import "strings"

// Action is a session-level command a key combination can trigger.
type Action string

const (
	ActionSave       Action = "save"
	ActionSaveAs     Action = "save_as"
	ActionOpenFile   Action = "open_file"
	ActionNewFile    Action = "new_file"
	ActionGoHome     Action = "go_home"
	ActionCloseTab   Action = "close_tab"
	ActionNextTab    Action = "next_tab"
	ActionPrevTab    Action = "prev_tab"
	ActionFollowLink Action = "follow_link"
	ActionCopyPath   Action = "copy_path"
	ActionQuit       Action = "quit"
)

// Actions lists every known action in the order the script environment
// exposes them.
var Actions = []Action{
	ActionSave,
	ActionSaveAs,
	ActionOpenFile,
	ActionNewFile,
	ActionGoHome,
	ActionCloseTab,
	ActionNextTab,
	ActionPrevTab,
	ActionFollowLink,
	ActionCopyPath,
	ActionQuit,
}

var actionHelp = map[Action]string{
	ActionSave:       "save",
	ActionSaveAs:     "save as",
	ActionOpenFile:   "open",
	ActionNewFile:    "new",
	ActionGoHome:     "home",
	ActionCloseTab:   "close tab",
	ActionNextTab:    "next tab",
	ActionPrevTab:    "prev tab",
	ActionFollowLink: "follow link",
	ActionCopyPath:   "copy path",
	ActionQuit:       "quit",
}

// ParseAction accepts the snake_case name or the CamelCase constant name
// ("SaveAs") of an action.
func ParseAction(s string) (Action, bool) {
	name := strings.TrimSpace(s)
	for _, a := range Actions {
		if string(a) == name || strings.EqualFold(a.ScriptName(), name) {
			return a, true
		}
	}
	return "", false
}

// ScriptName is the CamelCase name the script environment uses for a.
func (a Action) ScriptName() string {
	var b strings.Builder
	for _, part := range strings.Split(string(a), "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// Help is the short description shown in the footer.
func (a Action) Help() string {
	if h, ok := actionHelp[a]; ok {
		return h
	}
	return string(a)
}
