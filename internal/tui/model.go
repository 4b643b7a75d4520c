// Package tui implements the terminal browser: a results pane and a
// favorites pane, with keyboard-driven dragging between them.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/evcraddock/estate-finder/internal/dnd"
	"github.com/evcraddock/estate-finder/internal/favorites"
	"github.com/evcraddock/estate-finder/internal/property"
	"github.com/evcraddock/estate-finder/internal/search"
)

// typeCycle is the order the type filter steps through.
var typeCycle = []string{search.AnyType, string(property.TypeHouse), string(property.TypeFlat)}

// Model is the browser state. It is driven by bubbletea on a single goroutine.
type Model struct {
	catalog *property.Catalog
	store   *favorites.Store
	drag    *dnd.Coordinator
	keys    *KeyMap
	styles  *Styles

	criteria search.Criteria
	results  []*property.Property

	// Updated by the store observer.
	favorites   []*property.Property
	favoriteIDs map[string]bool
	unsubscribe func()

	focus   dnd.Zone
	cursor  map[dnd.Zone]int
	input   textinput.Model
	editing bool
	status  string

	width    int
	height   int
	quitting bool
}

// New creates a browser over catalog with an empty favorites list.
func New(catalog *property.Catalog, criteria search.Criteria) *Model {
	store := favorites.NewStore()

	input := textinput.New()
	input.Placeholder = "postcode or area"
	input.Prompt = "postcode: "
	input.CharLimit = 40
	input.SetValue(criteria.PostcodeQuery)

	if criteria.Type == "" {
		criteria.Type = search.AnyType
	}

	m := &Model{
		catalog:     catalog,
		store:       store,
		drag:        dnd.NewCoordinator(catalog, store),
		keys:        DefaultKeyMap(),
		styles:      NewStyles(nil),
		criteria:    criteria,
		favoriteIDs: make(map[string]bool),
		focus:       dnd.ResultsZone,
		cursor:      map[dnd.Zone]int{dnd.ResultsZone: 0, dnd.FavoritesZone: 0},
		input:       input,
		width:       100,
		height:      30,
	}
	m.unsubscribe = store.Subscribe(m.onFavoritesChanged)
	m.search()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		if m.editing {
			return m, m.updateInput(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Focus):
		m.switchFocus()
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		return m.input.Focus()
	case key.Matches(msg, m.keys.Submit):
		if m.dragging() {
			m.drop(dnd.DropOn(m.focus))
		} else {
			m.search()
		}
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Pick):
		m.pick()
	case key.Matches(msg, m.keys.Drop):
		if m.dragging() {
			m.drop(dnd.DropOutside())
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.dragging() {
			// Back onto the source zone, which never mutates.
			m.drop(dnd.DropOn(m.drag.State().Source))
		}
	case key.Matches(msg, m.keys.Clear):
		m.store.Clear()
		m.status = "favorites cleared"
	case key.Matches(msg, m.keys.CycleType):
		m.cycleType()
	}
	return nil
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.criteria.PostcodeQuery = strings.TrimSpace(m.input.Value())
		m.stopEditing()
		m.search()
		return nil
	case tea.KeyEsc:
		m.input.SetValue(m.criteria.PostcodeQuery)
		m.stopEditing()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	return tea.Quit
}

func (m *Model) search() {
	m.results = search.Filter(m.catalog.All(), m.criteria)
	m.cursor[dnd.ResultsZone] = clamp(m.cursor[dnd.ResultsZone], len(m.results))
	m.status = fmt.Sprintf("%d of %d properties", len(m.results), m.catalog.Len())
}

func (m *Model) cycleType() {
	next := 0
	for i, t := range typeCycle {
		if strings.EqualFold(t, m.criteria.Type) {
			next = (i + 1) % len(typeCycle)
			break
		}
	}
	m.criteria.Type = typeCycle[next]
	m.search()
}

func (m *Model) onFavoritesChanged(snap favorites.Snapshot) {
	m.favorites = snap.Properties
	m.favoriteIDs = make(map[string]bool, snap.Len())
	for _, p := range snap.Properties {
		m.favoriteIDs[p.ID] = true
	}
	m.cursor[dnd.FavoritesZone] = clamp(m.cursor[dnd.FavoritesZone], len(m.favorites))
}

func (m *Model) pane(z dnd.Zone) []*property.Property {
	if z == dnd.FavoritesZone {
		return m.favorites
	}
	return m.results
}

func (m *Model) selected() *property.Property {
	items := m.pane(m.focus)
	i := m.cursor[m.focus]
	if i < 0 || i >= len(items) {
		return nil
	}
	return items[i]
}

func (m *Model) move(delta int) {
	m.cursor[m.focus] = clamp(m.cursor[m.focus]+delta, len(m.pane(m.focus)))
}

func (m *Model) switchFocus() {
	if m.focus == dnd.ResultsZone {
		m.focus = dnd.FavoritesZone
	} else {
		m.focus = dnd.ResultsZone
	}
	if m.dragging() {
		m.drag.Handle(dnd.DragOver{Zone: m.focus})
	}
}

func (m *Model) dragging() bool {
	return m.drag.State().Dragging
}

func (m *Model) toggle() {
	p := m.selected()
	if p == nil {
		return
	}
	if m.store.Toggle(p) {
		m.status = fmt.Sprintf("added %s to favorites", p.ID)
	} else {
		m.status = fmt.Sprintf("removed %s from favorites", p.ID)
	}
}

func (m *Model) pick() {
	p := m.selected()
	if p == nil {
		m.status = "nothing to drag"
		return
	}
	m.drag.Handle(dnd.DragStart{Zone: m.focus, ItemID: p.ID})
	m.status = fmt.Sprintf("dragging %s: tab to move, enter to drop, x to drop outside, esc to cancel", p.ID)
}

func (m *Model) drop(ev dnd.DragEnd) {
	item := m.drag.State().ItemID
	outcome := m.drag.Handle(ev)
	slog.Debug("drag ended", "property", item, "outcome", outcome)

	switch outcome {
	case dnd.Added:
		m.status = fmt.Sprintf("added %s to favorites", item)
	case dnd.Removed:
		m.status = fmt.Sprintf("removed %s from favorites", item)
	case dnd.Unresolved:
		m.status = fmt.Sprintf("%s is no longer in the catalog", item)
	default:
		m.status = fmt.Sprintf("%s dropped, nothing changed", item)
	}
}

// Results returns the current search results.
func (m *Model) Results() []*property.Property {
	return m.results
}

// Favorites returns the favorites as last seen by the observer.
func (m *Model) Favorites() []*property.Property {
	return m.favorites
}

// Store returns the browser's favorites store.
func (m *Model) Store() *favorites.Store {
	return m.store
}

// Focus returns the focused pane.
func (m *Model) Focus() dnd.Zone {
	return m.focus
}

// Status returns the status line.
func (m *Model) Status() string {
	return m.status
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
