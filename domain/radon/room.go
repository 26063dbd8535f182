package radon

import (
	"strings"
)

// RoomKind classifies a measurement location
type RoomKind int

const (
	KindRoom RoomKind = iota
	KindCellar
	KindMisc
)

func (k RoomKind) String() string {
	switch k {
	case KindRoom:
		return "Room"
	case KindCellar:
		return "Cellar"
	case KindMisc:
		return "Misc"
	default:
		return "Unknown"
	}
}

// KindFromID infers the kind from the id prefix: C1 is a cellar, R1 a room,
// anything else is miscellaneous.
func KindFromID(id string) RoomKind {
	id = strings.TrimSpace(id)
	if id == "" {
		return KindMisc
	}
	switch id[0] {
	case 'C', 'c':
		return KindCellar
	case 'R', 'r':
		return KindRoom
	default:
		return KindMisc
	}
}

// Room is one physical location with its recorded hourly radon
// concentrations in Bq/m³. Series is shared between campaigns and must be
// treated as read-only.
type Room struct {
	ID     string
	Kind   RoomKind
	Series []float64
}

// NewRoom creates a room whose kind is inferred from its id
func NewRoom(id string, series []float64) *Room {
	return &Room{ID: id, Kind: KindFromID(id), Series: series}
}

// Len returns the number of recorded hours
func (r *Room) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Series)
}

// IsCellar reports whether the room is of kind Cellar
func (r *Room) IsCellar() bool {
	return r != nil && r.Kind == KindCellar
}

// Equal compares identity, not recorded values
func (r *Room) Equal(other *Room) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.ID == other.ID && r.Kind == other.Kind
}

func (r *Room) String() string {
	if r == nil {
		return "<nil>"
	}
	return r.ID
}
