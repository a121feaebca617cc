package editor

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// Buffer is the text editing widget a document drives.
type Buffer interface {
	Value() string
	SetValue(string)
	InsertString(string)
	Update(tea.Msg) tea.Cmd
	View() string
	Line() int
	SetWidth(int)
	SetHeight(int)
	Focus() tea.Cmd
	Blur()
}

// The textarea sanitizes inserted runes: tabs become spaces, carriage returns
// become newlines and other control characters and U+FFFD are dropped. Those
// runes are stored as stand-ins from supplementary private use plane A and
// restored on the way out so text round-trips unchanged.
const (
	escapeBase        rune = 0xF0000
	escapeReplacement rune = escapeBase + 0x100
)

func escapeRune(r rune) rune {
	switch {
	case r == '\n':
		return r
	case r == unicode.ReplacementChar:
		return escapeReplacement
	case unicode.IsControl(r):
		return escapeBase + r
	}
	return r
}

func unescapeRune(r rune) rune {
	switch {
	case r == escapeReplacement:
		return unicode.ReplacementChar
	case r >= escapeBase && r < escapeBase+0x100 && unicode.IsControl(r-escapeBase):
		return r - escapeBase
	}
	return r
}

func isEscaped(r rune) bool {
	return unescapeRune(r) != r
}

func escape(s string) string   { return strings.Map(escapeRune, s) }
func unescape(s string) string { return strings.Map(unescapeRune, s) }

// displayRune shows stand-ins as a single blank cell.
func displayRune(r rune) rune {
	if isEscaped(r) {
		return ' '
	}
	return r
}

type textareaBuffer struct {
	model textarea.Model
}

// NewTextarea wraps a bubbles textarea configured for whole documents: no
// character or line limits, no prompt, no line numbers and a static cursor.
func NewTextarea(placeholder string) Buffer {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.Focus()
	return &textareaBuffer{model: ta}
}

func (b *textareaBuffer) Value() string         { return unescape(b.model.Value()) }
func (b *textareaBuffer) InsertString(s string) { b.model.InsertString(escape(s)) }
func (b *textareaBuffer) View() string          { return strings.Map(displayRune, b.model.View()) }
func (b *textareaBuffer) Line() int             { return b.model.Line() }
func (b *textareaBuffer) SetWidth(w int)        { b.model.SetWidth(w) }
func (b *textareaBuffer) SetHeight(h int)       { b.model.SetHeight(h) }
func (b *textareaBuffer) Focus() tea.Cmd        { return b.model.Focus() }
func (b *textareaBuffer) Blur()                 { b.model.Blur() }

// SetValue replaces the content and moves the cursor back to the start.
func (b *textareaBuffer) SetValue(s string) {
	b.model.SetValue(escape(s))
	b.model, _ = b.model.Update(tea.KeyMsg{Type: tea.KeyCtrlHome})
}

// Update forwards msg to the textarea. Typed and pasted runes pass through
// the same escaping as InsertString.
func (b *textareaBuffer) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyRunes {
		k.Runes = []rune(escape(string(k.Runes)))
		msg = k
	}
	var cmd tea.Cmd
	b.model, cmd = b.model.Update(msg)
	return cmd
}
