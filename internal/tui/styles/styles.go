// Package styles builds the lipgloss styles of the interface from the
// configured palette.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/astromark/internal/config"
)

type Styles struct {
	App         lipgloss.Style
	Title       lipgloss.Style
	Tab         lipgloss.Style
	ActiveTab   lipgloss.Style
	TabBar      lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Selected    lipgloss.Style
	Muted       lipgloss.Style
}

func New(p config.Palette) Styles {
	bg := lipgloss.Color(p.Background)
	text := lipgloss.Color(p.Text)
	primary := lipgloss.Color(p.Primary)

	tab := lipgloss.NewStyle().
		Foreground(text).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(bg).
			Background(primary).
			Bold(true).
			Padding(0, 1),
		Tab: tab,
		ActiveTab: tab.Copy().
			Foreground(bg).
			Background(primary).
			Bold(true),
		TabBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(primary),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Danger)),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2),
		DialogTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),
		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(text).
			Faint(true),
	}
}
