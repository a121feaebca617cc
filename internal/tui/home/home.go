// Package home implements the landing view: shortcuts to open or create a
// document and the recent-files list.
package home

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/astromark/internal/constants"
	"github.com/Paintersrp/astromark/internal/tui/message"
	"github.com/Paintersrp/astromark/internal/tui/styles"
)

type entryKind int

const (
	entryOpen entryKind = iota
	entryNew
	entryRecent
)

type entry struct {
	kind entryKind
	path string
}

func (e entry) Title() string {
	switch e.kind {
	case entryOpen:
		return "Open File…"
	case entryNew:
		return "New File"
	}
	return filepath.Base(e.path)
}

func (e entry) Description() string {
	switch e.kind {
	case entryOpen:
		return "Browse for a markdown document"
	case entryNew:
		return "Start an untitled document"
	}
	return e.path
}

func (e entry) FilterValue() string { return e.Title() }

// command is the message selecting the entry produces.
func (e entry) command() tea.Cmd {
	var msg tea.Msg
	switch e.kind {
	case entryOpen:
		msg = message.OpenFilePickerMsg{}
	case entryNew:
		msg = message.NewFileMsg{}
	default:
		msg = message.OpenEditorMsg{Path: e.path}
	}
	return func() tea.Msg { return msg }
}

var selectKey = key.NewBinding(
	key.WithKeys("enter"),
	key.WithHelp("enter", "select"),
)

// Landing is a snapshot of the recent list. It is rebuilt, not updated, when
// the list changes.
type Landing struct {
	list    list.Model
	recents []string
}

// New builds the landing view from recents ordered most recent first.
func New(recents []string, st styles.Styles) *Landing {
	snapshot := append([]string(nil), recents...)

	items := []list.Item{entry{kind: entryOpen}, entry{kind: entryNew}}
	for _, p := range snapshot {
		items = append(items, entry{kind: entryRecent, path: p})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Copy().
		Foreground(st.Selected.GetForeground()).
		BorderForeground(st.Selected.GetForeground())
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Copy().Faint(true)

	l := list.New(items, delegate, 0, 0)
	l.Title = constants.AppName
	l.Styles.Title = st.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{selectKey}
	}

	return &Landing{list: l, recents: snapshot}
}

// Recents is the snapshot the view was built from.
func (l *Landing) Recents() []string {
	return append([]string(nil), l.recents...)
}

func (l *Landing) SetSize(width, height int) {
	l.list.SetSize(width, height)
}

// Select moves the cursor to entry i.
func (l *Landing) Select(i int) {
	l.list.Select(i)
}

// Choose returns the command for the selected entry.
func (l *Landing) Choose() tea.Cmd {
	e, ok := l.list.SelectedItem().(entry)
	if !ok {
		return nil
	}
	return e.command()
}

func (l *Landing) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, selectKey) {
		return l.Choose()
	}
	var cmd tea.Cmd
	l.list, cmd = l.list.Update(msg)
	return cmd
}

func (l *Landing) View() string {
	return l.list.View()
}
