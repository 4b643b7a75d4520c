package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/evcraddock/estate-finder/internal/dnd"
	"github.com/evcraddock/estate-finder/internal/property"
	"github.com/evcraddock/estate-finder/internal/search"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("estate-finder"))
	b.WriteString("  ")
	b.WriteString(m.styles.Muted.Render(describeCriteria(m.criteria)))
	b.WriteString("\n")

	if m.editing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	resultsWidth := m.width*2/3 - 4
	favoritesWidth := m.width - resultsWidth - 8
	if favoritesWidth < 20 {
		favoritesWidth = 20
	}

	results := m.renderPane(dnd.ResultsZone, fmt.Sprintf("Results (%d)", len(m.results)), resultsWidth)
	favs := m.renderPane(dnd.FavoritesZone, fmt.Sprintf("Favorites (%d)", len(m.favorites)), favoritesWidth)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, results, favs))
	b.WriteString("\n")

	b.WriteString(m.styles.Status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.help()))
	return b.String()
}

func (m *Model) renderPane(z dnd.Zone, title string, width int) string {
	state := m.drag.State()

	style := m.styles.Pane
	if m.focus == z {
		style = m.styles.FocusedPane
		if state.Dragging {
			style = m.styles.DropTarget
		}
	}

	lines := []string{m.styles.Title.Render(title)}
	items := m.pane(z)
	if len(items) == 0 {
		empty := "0 results"
		if z == dnd.FavoritesZone {
			empty = "drag or space to add"
		}
		lines = append(lines, m.styles.Muted.Render(empty))
	}

	for i, p := range items {
		line := m.renderCard(z, p)
		switch {
		case state.Dragging && state.Source == z && state.ItemID == p.ID:
			line = m.styles.Dragged.Render(line)
		case m.focus == z && m.cursor[z] == i:
			line = m.styles.Selected.Render("> " + line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}

	return style.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCard(z dnd.Zone, p *property.Property) string {
	if z == dnd.FavoritesZone {
		return fmt.Sprintf("%s  %s", FormatSummary(p), p.Location)
	}

	heart := "♡"
	if m.favoriteIDs[p.ID] {
		heart = m.styles.Heart.Render("♥")
	}
	return fmt.Sprintf("%s %s  %s", heart, FormatSummary(p), p.Location)
}

func (m *Model) help() string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// FormatSummary renders the one-line card text for a listing.
func FormatSummary(p *property.Property) string {
	return fmt.Sprintf("%-6s %d bed %s %s", p.Type, p.Bedrooms, property.FormatPrice(p.Price), p.ID)
}

func describeCriteria(c search.Criteria) string {
	parts := []string{"type:" + c.Type}
	parts = append(parts, "price:"+bounds(c.MinPrice, c.MaxPrice, property.FormatPrice))
	parts = append(parts, "beds:"+bounds(c.MinBedrooms, c.MaxBedrooms, func(n int) string { return fmt.Sprint(n) }))
	if c.PostcodeQuery != "" {
		parts = append(parts, fmt.Sprintf("postcode:%q (%s)", c.PostcodeQuery, c.PostcodeMode))
	}
	if c.AddedAfter != nil || c.AddedBefore != nil {
		from, to := "", ""
		if c.AddedAfter != nil {
			from = c.AddedAfter.Format(search.DateLayout)
		}
		if c.AddedBefore != nil {
			to = c.AddedBefore.Format(search.DateLayout)
		}
		parts = append(parts, "added:"+from+".."+to)
	}
	return strings.Join(parts, "  ")
}

func bounds(lo, hi *int, format func(int) string) string {
	from, to := "any", "any"
	if lo != nil {
		from = format(*lo)
	}
	if hi != nil {
		to = format(*hi)
	}
	return from + "-" + to
}
