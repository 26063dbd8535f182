package radon

import (
	"omsim/internal/errors"
)

// Building is the set of rooms recorded during one survey
type Building struct {
	Name  string
	Rooms []*Room
}

// NewBuilding checks that ids are unique and non-empty
func NewBuilding(name string, rooms []*Room) (*Building, error) {
	seen := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		if r == nil || r.ID == "" {
			return nil, errors.InvalidInput("room without id")
		}
		if seen[r.ID] {
			return nil, errors.InvalidInput("duplicate room id " + r.ID)
		}
		seen[r.ID] = true
	}
	return &Building{Name: name, Rooms: rooms}, nil
}

// Room looks a room up by id
func (b *Building) Room(id string) (*Room, error) {
	for _, r := range b.Rooms {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, errors.NotFound("room " + id)
}

// NormalRooms returns every room that may fill a non-cellar slot
func (b *Building) NormalRooms() []*Room {
	var out []*Room
	for _, r := range b.Rooms {
		if !r.IsCellar() {
			out = append(out, r)
		}
	}
	return out
}

// Cellars returns every cellar-kind room
func (b *Building) Cellars() []*Room {
	var out []*Room
	for _, r := range b.Rooms {
		if r.IsCellar() {
			out = append(out, r)
		}
	}
	return out
}

// MinSeriesLen is the length of the shortest series, 0 for an empty building
func (b *Building) MinSeriesLen() int {
	if len(b.Rooms) == 0 {
		return 0
	}
	min := b.Rooms[0].Len()
	for _, r := range b.Rooms[1:] {
		if r.Len() < min {
			min = r.Len()
		}
	}
	return min
}
