package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the browser.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Favorite  lipgloss.Color
	Warning   lipgloss.Color
	Border    lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"), // Purple
		Secondary: lipgloss.Color("#06B6D4"), // Cyan
		Muted:     lipgloss.Color("#6C7086"), // Medium gray
		Favorite:  lipgloss.Color("#F38BA8"), // Red
		Warning:   lipgloss.Color("#F9E2AF"), // Yellow
		Border:    lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Selected    lipgloss.Style
	Dragged     lipgloss.Style
	Heart       lipgloss.Style
	Status      lipgloss.Style
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	DropTarget  lipgloss.Style
}

// NewStyles builds styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Muted:       lipgloss.NewStyle().Foreground(theme.Muted),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Dragged:     lipgloss.NewStyle().Italic(true).Foreground(theme.Warning),
		Heart:       lipgloss.NewStyle().Foreground(theme.Favorite),
		Status:      lipgloss.NewStyle().Foreground(theme.Warning),
		Pane:        pane,
		FocusedPane: pane.BorderForeground(theme.Primary),
		DropTarget:  pane.BorderForeground(theme.Warning).BorderStyle(lipgloss.DoubleBorder()),
	}
}
