package session

import (
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/astromark/internal/keybinds"
	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/tui/message"
)

// perform runs a resolved keybinding action.
func (m *Model) perform(action keybinds.Action) tea.Cmd {
	id, s, ok := m.tabs.Active()
	if !ok {
		return nil
	}
	doc, isDoc := s.(*DocumentState)

	switch action {
	case keybinds.ActionSave:
		if !isDoc {
			return nil
		}
		return m.save(id, doc)

	case keybinds.ActionSaveAs:
		if !isDoc {
			return nil
		}
		name := doc.SuggestedName()
		if doc.Path() != "" {
			name = doc.Path()
		}
		return func() tea.Msg {
			return message.SaveFilePickerMsg{Tab: id, DefaultName: name}
		}

	case keybinds.ActionOpenFile:
		dir := ""
		if isDoc && doc.Path() != "" {
			dir = filepath.Dir(doc.Path())
		}
		return func() tea.Msg { return message.OpenFilePickerMsg{Dir: dir} }

	case keybinds.ActionNewFile:
		m.open("")
		return nil

	case keybinds.ActionGoHome:
		m.goHome()
		return nil

	case keybinds.ActionCloseTab:
		m.closeTab(id, s)
		return nil

	case keybinds.ActionNextTab:
		m.cycle(1)
		return nil

	case keybinds.ActionPrevTab:
		m.cycle(-1)
		return nil

	case keybinds.ActionFollowLink:
		if !isDoc {
			return nil
		}
		return doc.FollowLink()

	case keybinds.ActionCopyPath:
		if !isDoc || doc.Path() == "" {
			m.status = message.Info("Nothing to copy")
			return nil
		}
		if err := clipboard.WriteAll(doc.Path()); err != nil {
			logging.Warnf("clipboard: %v", err)
			m.status = message.Failure("Could not copy path")
			return nil
		}
		m.status = message.Info("Copied %s", doc.Path())
		return nil

	case keybinds.ActionQuit:
		return m.quit()
	}

	logging.Warnf("unhandled action %q", action)
	return nil
}

func (m *Model) save(id message.TabID, doc *DocumentState) tea.Cmd {
	wasUntitled := doc.Path() == ""
	cmd := doc.Save(id)
	if wasUntitled {
		return cmd
	}
	m.status = doc.Status()
	if !doc.Dirty() {
		m.watch(id, doc.Path())
		m.state.Recent.Add(doc.Path())
		m.refreshLandings()
	}
	return cmd
}

// closeTab closes the active tab. A dirty document needs the close to be
// repeated. Closing the last document opens a fresh landing tab first so the
// closed id is retired like any other.
func (m *Model) closeTab(id message.TabID, s State) {
	if _, isLanding := s.(*LandingState); isLanding && m.tabs.Len() == 1 {
		return
	}
	if doc, ok := s.(*DocumentState); ok {
		if !doc.ConfirmDiscard() {
			m.status = doc.Status()
			return
		}
		m.unwatch(id)
		doc.Blur()
	}

	if m.tabs.Len() == 1 {
		m.tabs.Add(m.newLanding())
	}

	m.tabs.Remove(id)
	m.afterSwitch()
	m.resize(m.width, m.height)
}

func (m *Model) cycle(delta int) {
	if m.tabs.Len() < 2 {
		return
	}
	m.blurActive()
	m.tabs.Cycle(delta)
	m.afterSwitch()
}

// quit exits, asking for a second press while documents have unsaved
// changes.
func (m *Model) quit() tea.Cmd {
	dirty := 0
	m.tabs.Each(func(_ message.TabID, s State) {
		if doc, ok := s.(*DocumentState); ok && doc.Dirty() {
			dirty++
		}
	})

	if dirty > 0 && !m.quitPending {
		m.quitPending = true
		m.status = message.Failure("Unsaved changes in %d document(s). Quit again to discard them.", dirty)
		return nil
	}
	return tea.Quit
}
