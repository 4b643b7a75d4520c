package dnd

import (
	"sync"

	"github.com/evcraddock/estate-finder/internal/favorites"
	"github.com/evcraddock/estate-finder/internal/property"
)

// Outcome describes what handling an event did.
type Outcome string

const (
	// Started means a drag began (or restarted with a new item).
	Started Outcome = "started"
	// Hovering means an in-progress drag moved over a zone.
	Hovering Outcome = "hovering"
	// Added means the dragged listing was added to favorites.
	Added Outcome = "added"
	// Removed means the dragged favorite was removed.
	Removed Outcome = "removed"
	// Reordered means a favorite was dropped back on the favorites list.
	// Insertion order is kept, so nothing changes.
	Reordered Outcome = "reordered"
	// NoOp means the drop did not target a mutation, or the mutation
	// would not change the store.
	NoOp Outcome = "noop"
	// Ignored means the event arrived with no drag in progress.
	Ignored Outcome = "ignored"
	// Unresolved means the dragged id is not in the catalog.
	Unresolved Outcome = "unresolved"
)

// Resolver looks up listings by id. *property.Catalog satisfies it.
type Resolver interface {
	Lookup(id string) (*property.Property, bool)
}

// State is a snapshot of the coordinator.
type State struct {
	Dragging bool
	Source   Zone
	ItemID   string
	// Over is the last zone hovered during the drag, if any.
	Over Zone
}

// Coordinator is the drag state machine for one favorites store.
// It is safe for concurrent use; events are handled one at a time.
type Coordinator struct {
	resolver Resolver
	store    *favorites.Store

	mu    sync.Mutex
	state State
}

// NewCoordinator creates an idle coordinator.
func NewCoordinator(resolver Resolver, store *favorites.Store) *Coordinator {
	return &Coordinator{resolver: resolver, store: store}
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Handle applies one event and reports the result.
func (c *Coordinator) Handle(ev Event) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e := ev.(type) {
	case DragStart:
		// A start without an end abandons the previous gesture.
		c.state = State{Dragging: true, Source: e.Zone, ItemID: e.ItemID}
		return Started

	case DragOver:
		if !c.state.Dragging {
			return Ignored
		}
		c.state.Over = e.Zone
		return Hovering

	case DragEnd:
		if !c.state.Dragging {
			return Ignored
		}
		source, item := c.state.Source, c.state.ItemID
		c.state = State{}
		return c.drop(source, item, e.Destination)

	default:
		return Ignored
	}
}

func (c *Coordinator) drop(source Zone, item string, dest *Zone) Outcome {
	if dest == nil {
		if source == FavoritesZone && c.store.Remove(item) {
			return Removed
		}
		return NoOp
	}

	switch *dest {
	case FavoritesZone:
		if source == FavoritesZone {
			return Reordered
		}
		p, ok := c.resolver.Lookup(item)
		if !ok {
			return Unresolved
		}
		if c.store.Add(p) {
			return Added
		}
		return NoOp
	default:
		return NoOp
	}
}
