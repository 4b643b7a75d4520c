// Package dnd reconciles drag gestures between the results grid and the
// favorites sidebar into favorites mutations.
package dnd

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEvent is returned for drag payloads that cannot enter the state machine.
var ErrInvalidEvent = errors.New("invalid drag event")

// Zone is a named drop target.
type Zone string

const (
	ResultsZone   Zone = "search-results"
	FavoritesZone Zone = "favorites-list"
)

// ParseZone validates a zone identifier.
func ParseZone(s string) (Zone, error) {
	switch z := Zone(strings.TrimSpace(s)); z {
	case ResultsZone, FavoritesZone:
		return z, nil
	default:
		return "", fmt.Errorf("%w: unknown zone %q", ErrInvalidEvent, s)
	}
}

// Kind tags a drag lifecycle event.
type Kind string

const (
	KindStart Kind = "dragStart"
	KindOver  Kind = "dragOver"
	KindEnd   Kind = "dragEnd"
)

// Event is one of DragStart, DragOver or DragEnd.
type Event interface {
	Kind() Kind
}

// DragStart picks up ItemID from Zone.
type DragStart struct {
	Zone   Zone
	ItemID string
}

// DragOver reports the zone under the pointer.
type DragOver struct {
	Zone Zone
}

// DragEnd drops the dragged item. A nil Destination means the item was
// released outside every zone.
type DragEnd struct {
	Destination *Zone
}

func (DragStart) Kind() Kind { return KindStart }
func (DragOver) Kind() Kind  { return KindOver }
func (DragEnd) Kind() Kind   { return KindEnd }

// DropOn returns a DragEnd onto z.
func DropOn(z Zone) DragEnd {
	return DragEnd{Destination: &z}
}

// DropOutside returns a DragEnd with no destination.
func DropOutside() DragEnd {
	return DragEnd{}
}

// RawEvent is the loosely shaped drag payload received from a presentation
// layer, e.g. the body of POST /api/drag.
type RawEvent struct {
	Kind        string `json:"kind"`
	Zone        string `json:"zone,omitempty"`
	ItemID      string `json:"itemId,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// ParseEvent validates a raw payload. An empty destination on a drag end
// means the item was dropped outside any zone.
func ParseEvent(raw RawEvent) (Event, error) {
	switch Kind(strings.TrimSpace(raw.Kind)) {
	case KindStart:
		zone, err := ParseZone(raw.Zone)
		if err != nil {
			return nil, err
		}
		id := strings.TrimSpace(raw.ItemID)
		if id == "" {
			return nil, fmt.Errorf("%w: drag start without item id", ErrInvalidEvent)
		}
		return DragStart{Zone: zone, ItemID: id}, nil

	case KindOver:
		zone, err := ParseZone(raw.Zone)
		if err != nil {
			return nil, err
		}
		return DragOver{Zone: zone}, nil

	case KindEnd:
		if strings.TrimSpace(raw.Destination) == "" {
			return DropOutside(), nil
		}
		zone, err := ParseZone(raw.Destination)
		if err != nil {
			return nil, err
		}
		return DropOn(zone), nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, raw.Kind)
	}
}
