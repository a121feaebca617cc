// Package dialog implements the modal overlay used to pick a file to open or
// a path to save to. At most one dialog is shown at a time.
package dialog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/tui/message"
	"github.com/Paintersrp/astromark/internal/tui/styles"
)

type Kind int

const (
	KindNone Kind = iota
	KindOpenFile
	KindSaveFile
)

func (k Kind) String() string {
	switch k {
	case KindOpenFile:
		return "open"
	case KindSaveFile:
		return "save"
	}
	return "none"
}

type keyMap struct {
	cancel key.Binding
	submit key.Binding
}

var keys = keyMap{
	cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
}

// Manager owns the optional modal overlay.
type Manager struct {
	kind Kind

	tab    message.TabID
	picker filepicker.Model
	input  textinput.Model

	styles styles.Styles
	width  int
	height int
}

func NewManager(st styles.Styles) *Manager {
	return &Manager{styles: st}
}

func (m *Manager) Active() bool {
	return m.kind != KindNone
}

func (m *Manager) Kind() Kind {
	return m.kind
}

// SetSize records the screen size so dialogs can size themselves.
func (m *Manager) SetSize(width, height int) {
	m.width, m.height = width, height
	if m.kind == KindOpenFile {
		m.picker.Height = m.pickerHeight()
	}
}

// Handle offers msg to the overlay. When handled is true the message belongs
// to the dialog and must not be routed anywhere else.
func (m *Manager) Handle(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case message.OpenFilePickerMsg:
		if m.Active() {
			logging.Infof("dialog already open, ignoring open request")
			return true, nil
		}
		return true, m.openFile(msg.Dir)

	case message.SaveFilePickerMsg:
		if m.Active() {
			logging.Infof("dialog already open, ignoring save request")
			return true, nil
		}
		return true, m.saveFile(msg.Tab, msg.DefaultName)
	}

	if !m.Active() {
		return false, nil
	}

	switch msg := msg.(type) {
	case message.DialogMsg:
		return true, m.forward(msg.Msg)
	case tea.KeyMsg:
		return true, m.handleKey(msg)
	case tea.MouseMsg:
		return true, m.forward(msg)
	}

	if isBackground(msg) {
		return false, nil
	}

	m.close()
	return false, nil
}

// isBackground reports messages that neither belong to the dialog nor
// dismiss it.
func isBackground(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.WindowSizeMsg,
		cursor.BlinkMsg,
		message.ReparsedMsg,
		message.FileChangedMsg,
		message.WatcherErrMsg,
		message.StatusMsg:
		return true
	}
	return false
}

func (m *Manager) openFile(dir string) tea.Cmd {
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		} else {
			dir = "."
		}
	}

	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AutoHeight = false
	fp.Height = m.pickerHeight()
	fp.ShowPermissions = false
	fp.Styles.Cursor = m.styles.Selected
	fp.Styles.Selected = m.styles.Selected
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"))

	m.kind = KindOpenFile
	m.picker = fp
	logging.Infof("open dialog in %s", dir)
	return wrap(fp.Init())
}

func (m *Manager) saveFile(tab message.TabID, defaultName string) tea.Cmd {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "path/to/document.md"
	ti.SetValue(defaultName)
	ti.CursorEnd()
	ti.Width = m.inputWidth()
	ti.Cursor.SetMode(cursor.CursorStatic)

	m.kind = KindSaveFile
	m.tab = tab
	m.input = ti
	return wrap(m.input.Focus())
}

func (m *Manager) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, keys.cancel) {
		m.close()
		return func() tea.Msg { return message.DialogCanceledMsg{} }
	}

	switch m.kind {
	case KindOpenFile:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			return m.openResult([]string{path})
		}
		return wrap(cmd)

	case KindSaveFile:
		if key.Matches(msg, keys.submit) {
			return m.saveResult(m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return wrap(cmd)
	}
	return nil
}

func (m *Manager) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.kind {
	case KindOpenFile:
		m.picker, cmd = m.picker.Update(msg)
	case KindSaveFile:
		m.input, cmd = m.input.Update(msg)
	}
	return wrap(cmd)
}

// openResult closes the dialog and opens the first selected path.
func (m *Manager) openResult(paths []string) tea.Cmd {
	m.close()
	if len(paths) == 0 {
		logging.Warnf("no paths selected")
		return nil
	}
	path := paths[0]
	logging.Infof("file %s selected", path)
	return func() tea.Msg { return message.OpenEditorMsg{Path: path} }
}

func (m *Manager) saveResult(value string) tea.Cmd {
	tab := m.tab
	m.close()

	path := strings.TrimSpace(value)
	if path == "" {
		logging.Warnf("no path entered")
		return nil
	}
	if abs, err := filepath.Abs(expandHome(path)); err == nil {
		path = abs
	}
	logging.Infof("saving tab %d as %s", tab, path)
	return func() tea.Msg { return message.SaveAsMsg{Tab: tab, Path: path} }
}

func (m *Manager) close() {
	m.kind = KindNone
	m.tab = 0
	m.picker = filepicker.Model{}
	m.input = textinput.Model{}
}

// View draws the dialog box. It is empty when no dialog is open.
func (m *Manager) View() string {
	var title, body, hint string
	switch m.kind {
	case KindOpenFile:
		title = "Open File"
		body = m.picker.View()
		hint = "enter select • h back • esc cancel"
	case KindSaveFile:
		title = "Save As"
		body = m.input.View()
		hint = "enter save • esc cancel"
	default:
		return ""
	}

	return m.styles.Dialog.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.styles.DialogTitle.Render(title),
		body,
		"",
		m.styles.Muted.Render(hint),
	))
}

// Overlay centers the dialog over a screen of the given size.
func (m *Manager) Overlay(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.View())
}

func (m *Manager) pickerHeight() int {
	if h := m.height - 12; h > 3 {
		return h
	}
	return 3
}

func (m *Manager) inputWidth() int {
	if w := m.width/2 - 8; w > 20 {
		return w
	}
	return 20
}

// wrap tags a widget's command output so its messages come back to the
// dialog instead of the active tab.
func wrap(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if msg == nil {
			return nil
		}
		if batch, ok := msg.(tea.BatchMsg); ok {
			cmds := make([]tea.Cmd, 0, len(batch))
			for _, c := range batch {
				cmds = append(cmds, wrap(c))
			}
			return tea.BatchMsg(cmds)
		}
		return message.DialogMsg{Msg: msg}
	}
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
