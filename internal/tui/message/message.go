// Package message defines the messages exchanged between the session, its
// tabs and the dialog overlay.
package message

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/astromark/internal/markdown"
)

// TabID identifies a tab for its whole life. IDs are never reused.
type TabID uint64

// OpenFilePickerMsg asks the dialog overlay for the open-file picker. Dir is
// where browsing starts; empty means the working directory.
type OpenFilePickerMsg struct {
	Dir string
}

// SaveFilePickerMsg asks the dialog overlay for the save-as prompt on behalf
// of Tab.
type SaveFilePickerMsg struct {
	Tab         TabID
	DefaultName string
}

// DialogMsg carries a message produced by the active dialog's own widgets so
// it is routed back to the dialog.
type DialogMsg struct {
	Msg tea.Msg
}

// DialogCanceledMsg is emitted when the user dismisses a dialog.
type DialogCanceledMsg struct{}

// OpenEditorMsg opens Path in a document tab.
type OpenEditorMsg struct {
	Path string
}

// NewFileMsg opens an empty, untitled document tab.
type NewFileMsg struct{}

// GoHomeMsg shows the landing view.
type GoHomeMsg struct{}

// SaveAsMsg saves the document in Tab to Path.
type SaveAsMsg struct {
	Tab  TabID
	Path string
}

// ReparsedMsg delivers a finished background parse for Tab.
type ReparsedMsg struct {
	Tab  TabID
	Tree *markdown.Tree
}

// FileChangedMsg reports that a watched document changed on disk.
type FileChangedMsg struct {
	Path string
}

// WatcherErrMsg reports a file watcher failure.
type WatcherErrMsg struct {
	Err error
}

// Status is one line of feedback for the footer. Err marks a failure.
type Status struct {
	Text string
	Err  bool
}

// Info is a non-error status.
func Info(format string, args ...any) Status {
	return Status{Text: fmt.Sprintf(format, args...)}
}

// Failure is an error status.
func Failure(format string, args ...any) Status {
	return Status{Text: fmt.Sprintf(format, args...), Err: true}
}

// StatusMsg replaces the status line.
type StatusMsg Status
