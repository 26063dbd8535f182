package campaign

import (
	"math/bits"

	"omsim/domain/radon"
)

// Type counts how many adjacent room days differ, plus one. Six means every
// neighbouring pair of room days measured different rooms.
type Type int

const (
	TypeOne Type = iota + 1
	TypeTwo
	TypeThree
	TypeFour
	TypeFive
	TypeSix
)

var typeNames = map[Type]string{
	TypeOne:   "One",
	TypeTwo:   "Two",
	TypeThree: "Three",
	TypeFour:  "Four",
	TypeFive:  "Five",
	TypeSix:   "Six",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Degenerate reports campaigns with fewer than three adjacency-distinct rooms
func (t Type) Degenerate() bool {
	return t <= TypeTwo
}

// typeByDifferences maps the number of differing adjacent pairs to a type
var typeByDifferences = [radon.RoomSlots]Type{TypeOne, TypeTwo, TypeThree, TypeFour, TypeFive, TypeSix}

// adjacencyMask sets bit i when room day i and room day i+1 measured
// different rooms. Only neighbours are compared: R1 R2 R1 has no collision.
func adjacencyMask(rooms []*radon.Room) uint8 {
	var mask uint8
	for i := 0; i+1 < len(rooms); i++ {
		if rooms[i].ID != rooms[i+1].ID {
			mask |= 1 << i
		}
	}
	return mask
}

// Classify derives the campaign type from the six room days in order
func Classify(rooms []*radon.Room) Type {
	return typeByDifferences[bits.OnesCount8(adjacencyMask(rooms))]
}
