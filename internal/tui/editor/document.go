// Package editor implements the document tab: a text buffer, its backing
// file and the markdown preview rendered beside it.
package editor

import (
	"crypto/sha256"
	"errors"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/astromark/internal/config"
	"github.com/Paintersrp/astromark/internal/constants"
	"github.com/Paintersrp/astromark/internal/logging"
	"github.com/Paintersrp/astromark/internal/markdown"
	"github.com/Paintersrp/astromark/internal/tui/message"
)

// Files reads and writes document content.
type Files interface {
	Read(path string) (string, error)
	Write(path string, content string) error
}

// LinkOpener hands a URL to the system.
type LinkOpener interface {
	Open(target string) error
}

// Deps are the collaborators shared by every document in a session.
type Deps struct {
	Config    *config.Config
	Files     Files
	Links     LinkOpener
	Renderer  *markdown.Renderer
	NewBuffer func() Buffer
}

const placeholder = "Start writing..."

// Document is the state of one document tab.
type Document struct {
	deps Deps

	path     string
	dirty    bool
	buf      Buffer
	rendered *markdown.Tree

	loadErr        error
	checksum       [32]byte
	changedOnDisk  bool
	pendingDiscard bool
	status         message.Status

	// scheduled is the preview width of the latest background render.
	scheduled int

	width  int
	height int
}

// New opens path, or an empty untitled document when path is empty. A read
// failure is logged and yields an empty document. Only a missing file keeps
// path as the save target; any other failure leaves the document untitled so
// the unreadable file is never overwritten. The first render tree is parsed
// synchronously and styled once the document has a size.
func New(deps Deps, path string) *Document {
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	newBuf := deps.NewBuffer
	if newBuf == nil {
		newBuf = func() Buffer { return NewTextarea(placeholder) }
	}

	d := &Document{deps: deps, path: path, buf: newBuf()}

	content := ""
	if path != "" && deps.Files != nil {
		text, err := deps.Files.Read(path)
		if err != nil {
			logging.Errorf("unable to read %s: %v", path, err)
			d.loadErr = err
			d.status = message.Failure("Could not read %s", d.DisplayName())
			if !errors.Is(err, fs.ErrNotExist) {
				d.path = ""
			}
		} else {
			content = text
		}
	}

	d.buf.SetValue(content)
	d.checksum = sha256.Sum256([]byte(content))
	d.rendered = markdown.Parse(d.buf.Value())
	return d
}

func (d *Document) Path() string {
	return d.path
}

// LoadError is the error that left the document empty on open, if any.
func (d *Document) LoadError() error {
	return d.loadErr
}

func (d *Document) Dirty() bool {
	return d.dirty
}

func (d *Document) Text() string {
	return d.buf.Value()
}

// Rendered is the tree from the most recently completed parse. It may lag
// behind Text while a re-parse is in flight.
func (d *Document) Rendered() *markdown.Tree {
	return d.rendered
}

func (d *Document) ChangedOnDisk() bool {
	return d.changedOnDisk
}

func (d *Document) Status() message.Status {
	return d.status
}

// ApplyEdit forwards msg to the buffer. The tab key is handled here: with
// expand_tabs it inserts tab_width spaces, otherwise it types a tab and a
// space then deletes the space so the buffer sees a real insertion. Any
// change to the text marks the document dirty and schedules a re-parse
// tagged with id.
func (d *Document) ApplyEdit(id message.TabID, msg tea.Msg) tea.Cmd {
	before := d.buf.Value()

	var cmd tea.Cmd
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyTab {
		if d.deps.Config.ExpandTabs {
			d.buf.InsertString(strings.Repeat(" ", d.deps.Config.TabWidth))
		} else {
			d.buf.InsertString("\t ")
			cmd = d.buf.Update(tea.KeyMsg{Type: tea.KeyBackspace})
		}
	} else {
		cmd = d.buf.Update(msg)
	}

	after := d.buf.Value()
	if after == before {
		return cmd
	}

	d.dirty = true
	d.pendingDiscard = false
	return tea.Batch(cmd, d.reparse(id, after))
}

// reparse parses and renders a snapshot of text in the background at the
// current preview width and reports the result for tab id.
func (d *Document) reparse(id message.TabID, text string) tea.Cmd {
	renderer := d.deps.Renderer
	_, width := d.columns()
	d.scheduled = width
	return func() tea.Msg {
		return message.ReparsedMsg{Tab: id, Tree: renderer.Build(text, width)}
	}
}

// Refresh schedules a background render when the preview width changed since
// the last one was scheduled. It returns nil when nothing needs redrawing.
func (d *Document) Refresh(id message.TabID) tea.Cmd {
	if d.deps.Renderer == nil || d.width == 0 {
		return nil
	}
	if _, width := d.columns(); width == d.scheduled {
		return nil
	}
	return d.reparse(id, d.buf.Value())
}

// OnReparsed installs a finished parse.
func (d *Document) OnReparsed(tree *markdown.Tree) {
	if tree == nil {
		return
	}
	d.rendered = tree
}

// Save writes the buffer to the document's path. Without a path it returns a
// command requesting the save-as prompt and changes nothing. A failed write
// is logged and leaves the document dirty.
func (d *Document) Save(id message.TabID) tea.Cmd {
	if d.path == "" {
		name := d.SuggestedName()
		return func() tea.Msg {
			return message.SaveFilePickerMsg{Tab: id, DefaultName: name}
		}
	}

	content := d.buf.Value()
	if d.deps.Files == nil {
		logging.Errorf("no file handler to save %s", d.path)
		return nil
	}
	if err := d.deps.Files.Write(d.path, content); err != nil {
		logging.Errorf("unable to save %s: %v", d.path, err)
		d.status = message.Failure("Save failed: %v", err)
		return nil
	}

	d.dirty = false
	d.pendingDiscard = false
	d.changedOnDisk = false
	d.checksum = sha256.Sum256([]byte(content))
	d.status = message.Info("Saved %s", d.DisplayName())
	logging.Infof("saved %s", d.path)
	return nil
}

// SaveAs retargets the document to path and saves it there.
func (d *Document) SaveAs(id message.TabID, path string) tea.Cmd {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	d.path = path
	return d.Save(id)
}

// OpenLink asks the system to open target. Failures are only logged.
func (d *Document) OpenLink(target string) {
	if d.deps.Links == nil {
		return
	}
	logging.Infof("opening %s", target)
	if err := d.deps.Links.Open(target); err != nil {
		logging.Warnf("unable to open %s: %v", target, err)
		d.status = message.Failure("Could not open %s", target)
	}
}

// FollowLink acts on the first rendered link on the cursor's line. Relative
// links to markdown files open in the editor; everything else goes to the
// system opener.
func (d *Document) FollowLink() tea.Cmd {
	links := d.rendered.LinksOnLine(d.buf.Line())
	if len(links) == 0 {
		d.status = message.Info("No link on this line")
		return nil
	}

	target := links[0].URL
	if local, ok := d.localDocument(target); ok {
		return func() tea.Msg { return message.OpenEditorMsg{Path: local} }
	}
	d.OpenLink(target)
	return nil
}

func (d *Document) localDocument(target string) (string, bool) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Path == "" {
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(u.Path))
	if ext != ".md" && ext != ".markdown" {
		return "", false
	}
	if filepath.IsAbs(u.Path) {
		return u.Path, true
	}
	if d.path == "" {
		return "", false
	}
	return filepath.Join(filepath.Dir(d.path), u.Path), true
}

// CheckDisk compares the file on disk with the last loaded or saved content
// and flags the document when they differ.
func (d *Document) CheckDisk() {
	if d.path == "" || d.deps.Files == nil {
		return
	}
	content, err := d.deps.Files.Read(d.path)
	if err != nil {
		d.changedOnDisk = true
		return
	}
	d.changedOnDisk = sha256.Sum256([]byte(content)) != d.checksum
	if d.changedOnDisk {
		d.status = message.Info("%s changed on disk", d.DisplayName())
	}
}

// ConfirmDiscard reports whether unsaved changes may be dropped. The first
// call on a dirty document arms the confirmation and returns false.
func (d *Document) ConfirmDiscard() bool {
	if !d.dirty || d.pendingDiscard {
		return true
	}
	d.pendingDiscard = true
	d.status = message.Failure("Unsaved changes. Repeat to discard them.")
	return false
}

// DisplayName is the file's base name, or a placeholder for untitled and
// unusable paths.
func (d *Document) DisplayName() string {
	if d.path == "" {
		return constants.NewFileName
	}
	base := filepath.Base(d.path)
	switch {
	case base == "." || base == string(filepath.Separator) || base == "":
		return constants.UnknownFileName
	case !utf8.ValidString(base):
		return constants.InvalidFileName
	}
	return base
}

// Title is DisplayName with a marker for unsaved changes.
func (d *Document) Title() string {
	if d.dirty {
		return d.DisplayName() + " *"
	}
	return d.DisplayName()
}

// SuggestedName is the file name offered by the save-as prompt: the current
// base name, or one derived from the first heading.
func (d *Document) SuggestedName() string {
	if d.path != "" {
		return filepath.Base(d.path)
	}
	for _, h := range d.rendered.Headings() {
		if name := slug(h.Text); name != "" {
			return name + ".md"
		}
	}
	return "untitled.md"
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteRune('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func (d *Document) Focus() tea.Cmd {
	return d.buf.Focus()
}

func (d *Document) Blur() {
	d.buf.Blur()
}

// SetSize splits the available area between the buffer and the preview.
func (d *Document) SetSize(width, height int) {
	d.width, d.height = width, height
	editorWidth, _ := d.columns()
	d.buf.SetWidth(editorWidth)
	d.buf.SetHeight(height)
}

func (d *Document) columns() (int, int) {
	gap := d.deps.Config.Space()
	usable := d.width - gap
	if usable < 2 {
		return 1, 1
	}
	left := usable / 2
	return left, usable - left
}

// View draws the buffer beside the preview of the last completed render. The
// raw source stands in until a styled preview has arrived.
func (d *Document) View() string {
	_, previewWidth := d.columns()
	gutter := strings.Repeat(" ", d.deps.Config.Space())

	preview := d.rendered.Source
	if d.rendered.Preview != "" {
		preview = d.rendered.Preview
	}
	preview = lipgloss.NewStyle().
		Width(previewWidth).
		MaxWidth(previewWidth).
		MaxHeight(d.height).
		Render(preview)

	return lipgloss.JoinHorizontal(lipgloss.Top, d.buf.View(), gutter, preview)
}
