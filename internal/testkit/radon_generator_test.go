package testkit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	mstats "github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadonGenerator_Basic(t *testing.T) {
	config := DefaultRadonConfig()
	config.Rooms = 4
	config.Cellars = 2
	config.Hours = 200

	b, err := NewRadonGenerator(config).GenerateBuilding()
	require.NoError(t, err)

	assert.Equal(t, "synthetic", b.Name)
	assert.Len(t, b.NormalRooms(), 4)
	assert.Len(t, b.Cellars(), 2)
	assert.Equal(t, 200, b.MinSeriesLen())

	for _, r := range b.Rooms {
		for h, v := range r.Series {
			if v < 0 {
				t.Fatalf("room %s hour %d is negative: %v", r.ID, h, v)
			}
		}
	}
}

func TestRadonGenerator_Deterministic(t *testing.T) {
	a, err := NewRadonGenerator(DefaultRadonConfig()).GenerateBuilding()
	require.NoError(t, err)
	b, err := NewRadonGenerator(DefaultRadonConfig()).GenerateBuilding()
	require.NoError(t, err)

	for i := range a.Rooms {
		if diff := cmp.Diff(a.Rooms[i].Series, b.Rooms[i].Series); diff != "" {
			t.Errorf("room %s differs (-first +second):\n%s", a.Rooms[i].ID, diff)
		}
	}

	other := DefaultRadonConfig()
	other.Seed = 7
	c, err := NewRadonGenerator(other).GenerateBuilding()
	require.NoError(t, err)
	assert.NotEqual(t, a.Rooms[0].Series, c.Rooms[0].Series)
}

func TestRadonGenerator_CellarsRunHotter(t *testing.T) {
	config := DefaultRadonConfig()
	config.Rooms = 20
	config.Cellars = 20
	config.LevelSpread = 0.2
	config.CellarFactor = 5

	b, err := NewRadonGenerator(config).GenerateBuilding()
	require.NoError(t, err)

	mean := func(cellar bool) float64 {
		var all []float64
		for _, r := range b.Rooms {
			if r.IsCellar() == cellar {
				all = append(all, r.Series...)
			}
		}
		m, err := mstats.Mean(all)
		require.NoError(t, err)
		return m
	}
	assert.Greater(t, mean(true), 2*mean(false))
}

func TestRadonGenerator_RejectsBadConfig(t *testing.T) {
	config := DefaultRadonConfig()
	config.Hours = 0
	_, err := NewRadonGenerator(config).GenerateBuilding()
	assert.Error(t, err)

	config = DefaultRadonConfig()
	config.Rooms = -1
	_, err = NewRadonGenerator(config).GenerateBuilding()
	assert.Error(t, err)
}
