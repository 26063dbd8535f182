package campaign

import (
	"fmt"
	"math"
	"sync"

	"omsim/domain/radon"
	"omsim/domain/stats"
	"omsim/internal/errors"
)

// Campaign is one synthetic 6+1 measurement week. All derived fields are
// recomputed together whenever an input changes; readers only ever see a
// complete evaluation.
type Campaign struct {
	mu      sync.RWMutex
	builder *Builder
	s       *state
}

func (c *Campaign) current() *state {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.s
}

// Start is the hour offset into the source series
func (c *Campaign) Start() int { return c.current().start }

// NoiseLevel is the noise amplitude in percent, 0 for none
func (c *Campaign) NoiseLevel() int { return c.current().noiseLevel }

// Variation concatenates the room ids in slot order
func (c *Campaign) Variation() string { return c.current().variation }

// Type is the adjacency classification of the room days
func (c *Campaign) Type() Type { return c.current().campaignType }

// Assignment returns a copy of the slot list
func (c *Campaign) Assignment() radon.Assignment { return c.current().assignment.Clone() }

// Rooms returns the six room days in slot order
func (c *Campaign) Rooms() []*radon.Room {
	return append([]*radon.Room(nil), c.current().rooms...)
}

// Cellar returns the room measured on the cellar day
func (c *Campaign) Cellar() *radon.Room { return c.current().cellar }

// RoomValues returns the 144 room samples, ascending
func (c *Campaign) RoomValues() []float64 { return cloneValues(c.current().roomValues) }

// CellarValues returns the 24 cellar samples, ascending
func (c *Campaign) CellarValues() []float64 { return cloneValues(c.current().cellarValues) }

// ValueChain returns the 168 hourly values of the synthetic week in slot
// order, unsorted
func (c *Campaign) ValueChain() []float64 { return cloneValues(c.current().valueChain) }

// RoomStats returns the statistics of the room samples
func (c *Campaign) RoomStats() stats.Summary { return c.current().roomStats.Clone() }

// CellarStats returns the statistics of the cellar samples
func (c *Campaign) CellarStats() stats.Summary { return c.current().cellarStats.Clone() }

// Warning is a DEGENERATE_CAMPAIGN error for type One and Two campaigns,
// nil otherwise
func (c *Campaign) Warning() error { return c.current().warning }

// SetStart moves the campaign to a new hour offset
func (c *Campaign) SetStart(start int) error {
	return c.update(func(in *inputs) {
		in.start = start
	})
}

// SetNoiseLevel changes the noise amplitude and redraws all noise
func (c *Campaign) SetNoiseLevel(level int) error {
	return c.update(func(in *inputs) {
		in.noiseLevel = level
	})
}

// SetRooms replaces the six room days, keeping the cellar day in place.
// Anything but six non-cellar rooms is rejected and the campaign is left
// unchanged.
func (c *Campaign) SetRooms(rooms []*radon.Room) error {
	if len(rooms) != radon.RoomSlots {
		return errors.ValidationErrorf("wrong room count: %d rooms are needed to create a campaign, got %d", radon.RoomSlots, len(rooms))
	}
	for i, r := range rooms {
		if r == nil || r.IsCellar() {
			return errors.ValidationErrorf("room %d of [%s] is not a normal room", i, describe(rooms))
		}
	}
	return c.update(func(in *inputs) {
		next := 0
		for slot, room := range in.assignment {
			if !room.IsCellar() {
				in.assignment[slot] = rooms[next]
				next++
			}
		}
	})
}

// SetCellar replaces the cellar day's room
func (c *Campaign) SetCellar(cellar *radon.Room) error {
	if !cellar.IsCellar() {
		return errors.ValidationErrorf("room %s is not a cellar", cellar.String())
	}
	return c.update(func(in *inputs) {
		in.assignment[in.assignment.CellarSlot()] = cellar
	})
}

// SetAssignment replaces the whole slot list
func (c *Campaign) SetAssignment(assignment radon.Assignment) error {
	return c.update(func(in *inputs) {
		in.assignment = assignment.Clone()
	})
}

// update recomputes from modified inputs and swaps the result in only on
// success. The write lock serialises concurrent setters.
func (c *Campaign) update(modify func(*inputs)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	in := c.s.inputs
	in.assignment = in.assignment.Clone()
	modify(&in)
	next, err := c.builder.compute(in)
	if err != nil {
		return errors.Wrap(err, "failed to update campaign")
	}
	c.s = next
	return nil
}

// Equal compares the inputs that define a campaign: cellar, noise level,
// room days in order, start and type.
func (c *Campaign) Equal(other *Campaign) bool {
	if c == nil || other == nil {
		return c == other
	}
	if c == other {
		return true
	}
	a, b := c.current(), other.current()
	if !a.cellar.Equal(b.cellar) || a.noiseLevel != b.noiseLevel || a.start != b.start || a.campaignType != b.campaignType {
		return false
	}
	if len(a.rooms) != len(b.rooms) {
		return false
	}
	for i := range a.rooms {
		if !a.rooms[i].Equal(b.rooms[i]) {
			return false
		}
	}
	return true
}

// String is a one-line log summary with truncated integer statistics
func (c *Campaign) String() string {
	s := c.current()
	return fmt.Sprintf("Campaign: T=%d,\tR=%s,\tR_AM=%d,\tR_GM=%d,\tR_Q50=%d,\tR_MAX=%d,\tC_AM=%d,\tC_GM=%d,\tC_Q50=%d,\tC_MAX=%d",
		s.start, s.variation,
		truncate(s.roomStats.Average), truncate(s.roomStats.LogAverage),
		truncate(s.roomStats.Median), truncate(s.roomStats.Maximum),
		truncate(s.cellarStats.Average), truncate(s.cellarStats.LogAverage),
		truncate(s.cellarStats.Median), truncate(s.cellarStats.Maximum))
}

// truncate converts towards zero into the 32-bit range, NaN becoming 0
func truncate(x float64) int {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt32:
		return math.MaxInt32
	case x <= math.MinInt32:
		return math.MinInt32
	}
	return int(x)
}

func cloneValues(v []float64) []float64 {
	return append([]float64(nil), v...)
}
