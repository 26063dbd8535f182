package radon

import (
	"strings"

	"omsim/internal/errors"
)

const (
	// SlotCount is the number of campaign days in the 6+1 protocol
	SlotCount = 7
	// RoomSlots is the number of non-cellar days
	RoomSlots = 6
)

// Assignment maps each campaign day to the room measured on that day.
// Order is significant.
type Assignment []*Room

// Validate checks the 6+1 shape: seven slots, exactly one cellar.
func (a Assignment) Validate() error {
	if len(a) != SlotCount {
		return errors.ValidationErrorf("wrong slot count: assignment needs %d rooms, got %d", SlotCount, len(a))
	}
	cellars := 0
	for i, room := range a {
		if room == nil {
			return errors.ValidationErrorf("slot %d has no room", i)
		}
		if room.IsCellar() {
			cellars++
		}
	}
	if cellars != 1 {
		return errors.ValidationErrorf("wrong cellar count: assignment needs exactly 1 cellar, got %d", cellars)
	}
	return nil
}

// Variation concatenates the room ids in slot order, e.g. R1R2C1R3R4R5R6
func (a Assignment) Variation() string {
	var b strings.Builder
	for _, room := range a {
		if room != nil {
			b.WriteString(room.ID)
		}
	}
	return b.String()
}

// CellarSlot returns the slot index of the first cellar, or -1
func (a Assignment) CellarSlot() int {
	for i, room := range a {
		if room.IsCellar() {
			return i
		}
	}
	return -1
}

// Split partitions the assignment into its non-cellar rooms, in slot order,
// and its cellar.
func (a Assignment) Split() ([]*Room, *Room) {
	rooms := make([]*Room, 0, RoomSlots)
	var cellar *Room
	for _, room := range a {
		if room.IsCellar() {
			cellar = room
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms, cellar
}

// Clone returns a copy of the slot list; rooms are shared.
func (a Assignment) Clone() Assignment {
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

// Equal compares slot by slot
func (a Assignment) Equal(other Assignment) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if !a[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// ParseAssignment resolves a comma separated id list such as
// "R1,R2,C1,R3,R4,R5,R6" against a building.
func ParseAssignment(list string, b *Building) (Assignment, error) {
	parts := strings.Split(list, ",")
	out := make(Assignment, 0, len(parts))
	for _, p := range parts {
		id := strings.TrimSpace(p)
		if id == "" {
			continue
		}
		room, err := b.Room(id)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := out.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid assignment %q", list)
	}
	return out, nil
}
