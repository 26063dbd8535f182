package radon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"omsim/internal/errors"
)

func testBuilding(t *testing.T) *Building {
	t.Helper()
	var rooms []*Room
	for _, id := range []string{"R1", "R2", "R3", "R4", "R5", "R6", "C1", "C2", "X1"} {
		rooms = append(rooms, NewRoom(id, make([]float64, 200)))
	}
	rooms[2].Series = rooms[2].Series[:150]
	b, err := NewBuilding("test", rooms)
	require.NoError(t, err)
	return b
}

func TestKindFromID(t *testing.T) {
	tests := map[string]RoomKind{
		"R1":    KindRoom,
		"r7":    KindRoom,
		"C1":    KindCellar,
		"c2":    KindCellar,
		" C3":   KindCellar,
		"K1":    KindMisc,
		"":      KindMisc,
		"Attic": KindMisc,
	}
	for id, want := range tests {
		assert.Equal(t, want, KindFromID(id), "id %q", id)
	}
}

func TestRoomKind_String(t *testing.T) {
	assert.Equal(t, "Room", KindRoom.String())
	assert.Equal(t, "Cellar", KindCellar.String())
	assert.Equal(t, "Misc", KindMisc.String())
	assert.Equal(t, "Unknown", RoomKind(42).String())
}

func TestRoom_NilSafety(t *testing.T) {
	var r *Room
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.IsCellar())
	assert.Equal(t, "<nil>", r.String())
	assert.True(t, r.Equal(nil))
	assert.False(t, r.Equal(NewRoom("R1", nil)))
}

func TestRoom_EqualIgnoresSeries(t *testing.T) {
	a := NewRoom("R1", []float64{1, 2, 3})
	b := NewRoom("R1", []float64{9})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewRoom("R2", []float64{1, 2, 3})))
}

func TestNewBuilding_Rejects(t *testing.T) {
	_, err := NewBuilding("dup", []*Room{NewRoom("R1", nil), NewRoom("R1", nil)})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = NewBuilding("blank", []*Room{NewRoom("", nil)})
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = NewBuilding("nil", []*Room{nil})
	assert.Error(t, err)
}

func TestBuilding_Lookups(t *testing.T) {
	b := testBuilding(t)

	r, err := b.Room("C2")
	require.NoError(t, err)
	assert.Equal(t, KindCellar, r.Kind)

	_, err = b.Room("R9")
	assert.ErrorIs(t, err, errors.ErrNotFound)

	assert.Len(t, b.NormalRooms(), 7)
	assert.Len(t, b.Cellars(), 2)
	assert.Equal(t, 150, b.MinSeriesLen())
	assert.Equal(t, 0, (&Building{}).MinSeriesLen())
}

func TestParseAssignment(t *testing.T) {
	b := testBuilding(t)

	a, err := ParseAssignment("R1, R2,C1,R3,R4,R5,R6", b)
	require.NoError(t, err)
	assert.Equal(t, "R1R2C1R3R4R5R6", a.Variation())
	assert.Equal(t, 2, a.CellarSlot())

	rooms, cellar := a.Split()
	assert.Len(t, rooms, RoomSlots)
	assert.Equal(t, "C1", cellar.ID)
	assert.Equal(t, "R3", rooms[2].ID)
}

func TestParseAssignment_Errors(t *testing.T) {
	b := testBuilding(t)

	_, err := ParseAssignment("R1,R2,C1,R3,R4,R5,R9", b)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	_, err = ParseAssignment("R1,R2,C1,R3,R4,R5", b)
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = ParseAssignment("R1,R2,C1,R3,R4,R5,C2", b)
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Contains(t, err.Error(), "wrong cellar count")
}

func TestAssignment_Validate(t *testing.T) {
	b := testBuilding(t)
	a, err := ParseAssignment("C1,R1,R2,R3,R4,R5,R6", b)
	require.NoError(t, err)

	broken := a.Clone()
	broken[3] = nil
	assert.ErrorIs(t, broken.Validate(), errors.ErrValidation)

	noCellar := a.Clone()
	noCellar[0] = noCellar[1]
	err = noCellar.Validate()
	assert.ErrorIs(t, err, errors.ErrValidation)
	assert.Contains(t, err.Error(), "got 0")

	assert.ErrorIs(t, a[:6].Validate(), errors.ErrValidation)
}

func TestAssignment_CloneAndEqual(t *testing.T) {
	b := testBuilding(t)
	a, err := ParseAssignment("R1,R2,R3,R4,R5,R6,C1", b)
	require.NoError(t, err)

	c := a.Clone()
	assert.True(t, a.Equal(c))

	c[0] = c[1]
	assert.False(t, a.Equal(c))
	assert.Equal(t, "R1", a[0].ID)
	assert.False(t, a.Equal(a[:6]))
	assert.Equal(t, -1, a[:6].CellarSlot())
}
