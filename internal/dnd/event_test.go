package dnd

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name    string
		raw     RawEvent
		want    Event
		wantErr bool
	}{
		{
			name: "drag start",
			raw:  RawEvent{Kind: "dragStart", Zone: "search-results", ItemID: "prop1"},
			want: DragStart{Zone: ResultsZone, ItemID: "prop1"},
		},
		{
			name: "drag start trims",
			raw:  RawEvent{Kind: " dragStart ", Zone: " favorites-list ", ItemID: " prop2 "},
			want: DragStart{Zone: FavoritesZone, ItemID: "prop2"},
		},
		{
			name: "drag over",
			raw:  RawEvent{Kind: "dragOver", Zone: "favorites-list"},
			want: DragOver{Zone: FavoritesZone},
		},
		{
			name: "drop on favorites",
			raw:  RawEvent{Kind: "dragEnd", Destination: "favorites-list"},
			want: DropOn(FavoritesZone),
		},
		{
			name: "drop outside",
			raw:  RawEvent{Kind: "dragEnd"},
			want: DropOutside(),
		},
		{name: "unknown kind", raw: RawEvent{Kind: "drop"}, wantErr: true},
		{name: "empty kind", raw: RawEvent{}, wantErr: true},
		{name: "start without item", raw: RawEvent{Kind: "dragStart", Zone: "search-results"}, wantErr: true},
		{name: "start unknown zone", raw: RawEvent{Kind: "dragStart", Zone: "trash", ItemID: "prop1"}, wantErr: true},
		{name: "over without zone", raw: RawEvent{Kind: "dragOver"}, wantErr: true},
		{name: "end unknown destination", raw: RawEvent{Kind: "dragEnd", Destination: "sidebar"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEvent(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEvent) {
					t.Errorf("expected ErrInvalidEvent, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestEventKinds(t *testing.T) {
	if (DragStart{}).Kind() != KindStart || (DragOver{}).Kind() != KindOver || DropOutside().Kind() != KindEnd {
		t.Error("event kinds do not match their tags")
	}
}
