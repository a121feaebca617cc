// Package session is the top-level bubbletea model: it owns the open tabs and
// the dialog overlay and routes every message between them.
package session

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/astromark/internal/config"
	"github.com/Paintersrp/astromark/internal/constants"
	"github.com/Paintersrp/astromark/internal/keybinds"
	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/markdown"
	"github.com/Paintersrp/astromark/internal/pathutil"
	"github.com/Paintersrp/astromark/internal/state"
	"github.com/Paintersrp/astromark/internal/tui/dialog"
	"github.com/Paintersrp/astromark/internal/tui/editor"
	"github.com/Paintersrp/astromark/internal/tui/home"
	"github.com/Paintersrp/astromark/internal/tui/message"
	"github.com/Paintersrp/astromark/internal/tui/styles"
)

// Model is the editing session.
type Model struct {
	state    *state.State
	cfg      *config.Config
	tabs     *Registry
	dialog   *dialog.Manager
	renderer *markdown.Renderer
	styles   styles.Styles
	help     help.Model

	// newBuffer overrides the text widget documents are created with.
	newBuffer func() editor.Buffer

	status      message.Status
	quitPending bool
	title       string

	// watched is the path each document tab holds a watch on.
	watched map[message.TabID]string

	width  int
	height int
}

// New builds a session showing the landing view, opens files in order and
// runs the configuration's startup callback.
func New(st *state.State, files []string) *Model {
	cfg := st.Config
	if cfg == nil {
		cfg = config.Default()
		st.Config = cfg
	}

	s := styles.New(cfg.Theme.Palette)
	m := &Model{
		state:    st,
		cfg:      cfg,
		tabs:     NewRegistry(),
		dialog:   dialog.NewManager(s),
		renderer: markdown.NewRenderer(cfg.Theme.PreviewStyle()),
		styles:   s,
		help:     help.New(),
		watched:  make(map[message.TabID]string),
	}
	m.tabs.Add(m.newLanding())

	for _, f := range files {
		m.open(f)
	}

	if err := cfg.RunCallback(context.Background()); err != nil {
		logging.Errorf("startup callback: %v", err)
	}
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.syncTitle(), m.state.Watcher.Start(), m.refreshActive()}
	if _, s, ok := m.tabs.Active(); ok {
		if doc, ok := s.(*DocumentState); ok {
			cmds = append(cmds, doc.Focus())
		}
	}
	return tea.Batch(cmds...)
}

// Tabs exposes the registry for inspection.
func (m *Model) Tabs() *Registry {
	return m.tabs
}

func (m *Model) Dialog() *dialog.Manager {
	return m.dialog
}

func (m *Model) Status() message.Status {
	return m.status
}

// Title is the terminal window title for the active tab.
func (m *Model) Title() string {
	_, s, ok := m.tabs.Active()
	if !ok {
		return constants.AppName
	}
	return fmt.Sprintf("%s - %s", constants.AppName, s.title())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size.Width, size.Height)
	}

	if handled, cmd := m.dialog.Handle(msg); handled {
		return m, cmd
	}

	_, before, _ := m.tabs.Active()
	cmd := m.route(msg)
	return m, tea.Batch(cmd, m.refocus(before), m.refreshActive(), m.syncTitle())
}

// refreshActive renders the active document's preview in the background when
// its width changed.
func (m *Model) refreshActive() tea.Cmd {
	id, s, ok := m.tabs.Active()
	if !ok {
		return nil
	}
	if doc, ok := s.(*DocumentState); ok {
		return doc.Refresh(id)
	}
	return nil
}

// refocus restarts the cursor of a document that just became active.
func (m *Model) refocus(before State) tea.Cmd {
	_, after, ok := m.tabs.Active()
	if !ok || after == before {
		return nil
	}
	if doc, ok := after.(*DocumentState); ok {
		return doc.Focus()
	}
	return nil
}

func (m *Model) route(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return nil

	case message.OpenEditorMsg:
		m.open(msg.Path)
		return nil

	case message.NewFileMsg:
		m.open("")
		return nil

	case message.GoHomeMsg:
		m.goHome()
		return nil

	case message.SaveAsMsg:
		return m.saveAs(msg.Tab, msg.Path)

	case message.ReparsedMsg:
		if s, ok := m.tabs.Get(msg.Tab); ok {
			if doc, ok := s.(*DocumentState); ok {
				doc.OnReparsed(msg.Tree)
			}
		}
		return nil

	case message.FileChangedMsg:
		m.tabs.Each(func(_ message.TabID, s State) {
			if doc, ok := s.(*DocumentState); ok && pathutil.SamePath(doc.Path(), msg.Path) {
				doc.CheckDisk()
				if doc.ChangedOnDisk() {
					m.status = doc.Status()
				}
			}
		})
		return m.state.Watcher.Start()

	case message.WatcherErrMsg:
		logging.Warnf("watcher: %v", msg.Err)
		return m.state.Watcher.Start()

	case message.StatusMsg:
		m.status = message.Status(msg)
		return nil

	case message.DialogCanceledMsg:
		m.status = message.Info("Canceled")
		return nil

	case tea.KeyMsg:
		m.status = message.Status{}
		if combo, ok := keybinds.FromKeyMsg(msg); ok {
			if action, ok := m.cfg.Keybinds.ResolveCombo(combo); ok {
				if action != keybinds.ActionQuit {
					m.quitPending = false
				}
				return m.perform(action)
			}
		}
		m.quitPending = false
	}

	return m.forward(msg)
}

// forward hands msg to the active tab.
func (m *Model) forward(msg tea.Msg) tea.Cmd {
	id, s, ok := m.tabs.Active()
	if !ok {
		return nil
	}

	switch s := s.(type) {
	case *LandingState:
		return s.Update(msg)
	case *DocumentState:
		return s.ApplyEdit(id, msg)
	}
	return nil
}

func (m *Model) newLanding() *LandingState {
	l := home.New(m.state.Recent.MostRecentFirst(), m.styles)
	l.SetSize(m.bodySize())
	return &LandingState{Landing: l}
}

func (m *Model) newDocument(path string) *DocumentState {
	doc := editor.New(editor.Deps{
		Config:    m.cfg,
		Files:     m.state.Handler,
		Links:     m.state.Opener,
		Renderer:  m.renderer,
		NewBuffer: m.newBuffer,
	}, path)
	doc.SetSize(m.bodySize())
	return &DocumentState{Document: doc}
}

// open shows path in a document tab, or an untitled document when path is
// empty. A path that is already open activates its tab.
func (m *Model) open(path string) {
	if path != "" {
		path = pathutil.Canonical(path)
		if id, ok := m.findDocument(path); ok {
			m.activate(id)
			return
		}
	}

	doc := m.newDocument(path)
	m.place(doc)

	if path == "" {
		return
	}
	if err := doc.LoadError(); err != nil {
		m.status = doc.Status()
		return
	}
	m.watch(m.tabs.ActiveID(), path)
	m.state.Recent.Add(path)
	m.refreshLandings()
}

// watch moves tab id's file watch to path. Watching the same path again is a
// no-op so the watcher's reference count matches the open tabs.
func (m *Model) watch(id message.TabID, path string) {
	if old, ok := m.watched[id]; ok {
		if pathutil.SamePath(old, path) {
			return
		}
		m.state.Watcher.Unwatch(old)
		delete(m.watched, id)
	}
	if err := m.state.Watcher.Watch(path); err != nil {
		logging.Warnf("unable to watch %s: %v", path, err)
		return
	}
	m.watched[id] = path
}

func (m *Model) unwatch(id message.TabID) {
	if path, ok := m.watched[id]; ok {
		m.state.Watcher.Unwatch(path)
		delete(m.watched, id)
	}
}

// place puts s in the active tab when that tab can be overwritten, otherwise
// in a new tab.
func (m *Model) place(s State) {
	old, prev, ok := m.tabs.Active()
	if ok && CanBeSilentlyOverwritten(prev) {
		m.tabs.Replace(old, s)
	} else {
		m.blurActive()
		m.tabs.Add(s)
	}
	m.focusActive()
	m.resize(m.width, m.height)
}

func (m *Model) goHome() {
	var landing message.TabID
	m.tabs.Each(func(id message.TabID, s State) {
		if _, ok := s.(*LandingState); ok && landing == 0 {
			landing = id
		}
	})
	if landing != 0 {
		m.activate(landing)
		return
	}
	m.place(m.newLanding())
}

func (m *Model) findDocument(path string) (message.TabID, bool) {
	var found message.TabID
	m.tabs.Each(func(id message.TabID, s State) {
		if doc, ok := s.(*DocumentState); ok && found == 0 && pathutil.SamePath(doc.Path(), path) {
			found = id
		}
	})
	return found, found != 0
}

// activate switches tabs, rebuilding a landing view as it becomes visible.
func (m *Model) activate(id message.TabID) {
	if id == m.tabs.ActiveID() {
		return
	}
	m.blurActive()
	m.tabs.Activate(id)
	m.afterSwitch()
}

func (m *Model) afterSwitch() {
	id, s, ok := m.tabs.Active()
	if !ok {
		return
	}
	if _, isLanding := s.(*LandingState); isLanding {
		m.tabs.Replace(id, m.newLanding())
	}
	m.focusActive()
}

// refreshLandings rebuilds every landing tab after the recent list changed.
func (m *Model) refreshLandings() {
	m.tabs.Each(func(id message.TabID, s State) {
		if _, ok := s.(*LandingState); ok {
			m.tabs.Replace(id, m.newLanding())
		}
	})
}

func (m *Model) focusActive() {
	if _, s, ok := m.tabs.Active(); ok {
		if doc, ok := s.(*DocumentState); ok {
			doc.Focus()
		}
	}
}

func (m *Model) blurActive() {
	if _, s, ok := m.tabs.Active(); ok {
		if doc, ok := s.(*DocumentState); ok {
			doc.Blur()
		}
	}
}

func (m *Model) saveAs(id message.TabID, path string) tea.Cmd {
	s, ok := m.tabs.Get(id)
	if !ok {
		logging.Warnf("save as: tab %d is gone", id)
		return nil
	}
	doc, ok := s.(*DocumentState)
	if !ok {
		return nil
	}

	cmd := doc.SaveAs(id, pathutil.Canonical(path))
	m.status = doc.Status()
	if doc.Dirty() {
		return cmd
	}

	m.watch(id, doc.Path())
	m.state.Recent.Add(doc.Path())
	m.refreshLandings()
	return cmd
}

// syncTitle updates the window title when the active tab's name changed.
func (m *Model) syncTitle() tea.Cmd {
	title := m.Title()
	if title == m.title {
		return nil
	}
	m.title = title
	return tea.SetWindowTitle(title)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	m.dialog.SetSize(width, height)

	w, h := m.bodySize()
	m.tabs.Each(func(_ message.TabID, s State) {
		switch s := s.(type) {
		case *LandingState:
			s.SetSize(w, h)
		case *DocumentState:
			s.SetSize(w, h)
		}
	})
}

// bodySize is the area left for the active tab after the tab bar and the
// footer.
func (m *Model) bodySize() (int, int) {
	h := m.height - 2
	if m.tabs != nil && m.tabs.Len() > 1 {
		h -= 2
	}
	if h < 1 {
		h = 1
	}
	w := m.width - m.styles.App.GetHorizontalFrameSize()
	if w < 1 {
		w = 1
	}
	return w, h
}

func (m *Model) View() string {
	if m.dialog.Active() {
		return m.dialog.Overlay(m.width, m.height)
	}

	var sections []string
	if m.tabs.Len() > 1 {
		sections = append(sections, m.tabBar())
	}

	if _, s, ok := m.tabs.Active(); ok {
		switch s := s.(type) {
		case *LandingState:
			sections = append(sections, s.View())
		case *DocumentState:
			sections = append(sections, s.View())
		}
	}

	sections = append(sections, m.footer())
	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) tabBar() string {
	active := m.tabs.ActiveID()
	var tabs []string
	m.tabs.Each(func(id message.TabID, s State) {
		style := m.styles.Tab
		if id == active {
			style = m.styles.ActiveTab
		}
		tabs = append(tabs, style.Render(s.title()))
	})
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m *Model) footer() string {
	status := m.status
	if status.Text == "" {
		if _, s, ok := m.tabs.Active(); ok {
			if doc, ok := s.(*DocumentState); ok {
				status = doc.Status()
			}
		}
	}

	style := m.styles.Status
	if status.Err {
		style = m.styles.StatusError
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		style.Render(status.Text),
		m.help.ShortHelpView(m.cfg.Keybinds.HelpBindings()),
	)
}
