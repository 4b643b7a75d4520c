package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/estate-finder/internal/property"
	"github.com/evcraddock/estate-finder/internal/search"
)

// Run starts the browser on the terminal and blocks until the user quits or
// ctx is cancelled. Favorites live only as long as the browser.
func Run(ctx context.Context, catalog *property.Catalog, criteria search.Criteria) error {
	m := New(catalog, criteria)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
