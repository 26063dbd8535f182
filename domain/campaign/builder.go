package campaign

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"omsim/domain/radon"
	"omsim/domain/stats"
	"omsim/internal/errors"
	loglib "omsim/internal/log"
)

const (
	// HoursPerDay is the length of one measurement window
	HoursPerDay = 24
	// RoomHours is six room days
	RoomHours = radon.RoomSlots * HoursPerDay
	// CellarHours is the single cellar day
	CellarHours = HoursPerDay
	// ChainHours is the full synthetic week
	ChainHours = radon.SlotCount * HoursPerDay

	// MaxNoiseLevel is the largest accepted noise amplitude in percent
	MaxNoiseLevel = 100

	// cellarOffsetUnit is the number of hours added per variation character
	// preceding the cellar's id. Ids are two characters wide (R1, C1), so
	// this lands the cellar window on the start of its own day.
	cellarOffsetUnit = 12
)

// Builder constructs campaigns. It owns the noise source used for every
// campaign it builds, including recomputations triggered by setters.
type Builder struct {
	mu     sync.Mutex
	noise  NoiseSource
	logger loglib.Logger
}

// Option configures a Builder
type Option func(*Builder)

// WithNoiseSource sets the random source used for noise injection
func WithNoiseSource(src NoiseSource) Option {
	return func(b *Builder) {
		if src != nil {
			b.noise = src
		}
	}
}

// WithLogger sets the logger receiving degenerate campaign warnings
func WithLogger(l loglib.Logger) Option {
	return func(b *Builder) {
		b.logger = loglib.NewLogger(l)
	}
}

// NewBuilder creates a builder with a time-seeded noise source and no logging
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger: loglib.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.noise == nil {
		b.noise = newDefaultSource()
	}
	return b
}

var defaultBuilder = NewBuilder()

// Construct builds a campaign with the package default builder
func Construct(start int, assignment radon.Assignment, noiseLevel int) (*Campaign, error) {
	return defaultBuilder.Construct(start, assignment, noiseLevel)
}

// Construct builds a fully populated campaign. The assignment must hold six
// room days and one cellar day; a campaign whose room days collapse to fewer
// than three adjacency-distinct rooms is still returned, with Warning set.
func (b *Builder) Construct(start int, assignment radon.Assignment, noiseLevel int) (*Campaign, error) {
	s, err := b.compute(inputs{
		start:      start,
		assignment: assignment.Clone(),
		noiseLevel: noiseLevel,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create campaign")
	}
	return &Campaign{builder: b, s: s}, nil
}

// inputs are the externally settable fields of a campaign
type inputs struct {
	start      int
	assignment radon.Assignment
	noiseLevel int
}

// state is one complete evaluation of a campaign; it is never mutated once
// built.
type state struct {
	inputs
	rooms        []*radon.Room
	cellar       *radon.Room
	variation    string
	campaignType Type
	roomValues   []float64
	cellarValues []float64
	valueChain   []float64
	roomStats    stats.Summary
	cellarStats  stats.Summary
	warning      error
}

func (b *Builder) compute(in inputs) (*state, error) {
	if in.start < 0 {
		return nil, errors.ValidationErrorf("start must not be negative, got %d", in.start)
	}
	if in.noiseLevel < 0 || in.noiseLevel > MaxNoiseLevel {
		return nil, errors.ValidationErrorf("noise level must be between 0 and %d, got %d", MaxNoiseLevel, in.noiseLevel)
	}
	if err := in.assignment.Validate(); err != nil {
		return nil, err
	}

	s := &state{inputs: in}
	s.rooms, s.cellar = in.assignment.Split()
	s.variation = in.assignment.Variation()

	cellarStart := in.start + cellarOffset(in.assignment)*cellarOffsetUnit

	s.campaignType = Classify(s.rooms)
	if s.campaignType.Degenerate() {
		s.warning = errors.DegenerateCampaign("at least 3 different rooms are needed to create a campaign")
	}

	b.mu.Lock()
	var err error
	s.roomValues, err = b.extractRooms(s.rooms, in.start, cellarStart, in.noiseLevel)
	if err == nil {
		s.cellarValues, err = b.window(s.cellar, cellarStart, in.noiseLevel)
	}
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.valueChain = assembleChain(in.assignment, s.roomValues, s.cellarValues)

	sort.Float64s(s.roomValues)
	sort.Float64s(s.cellarValues)

	s.roomStats = stats.Summarize(s.roomValues)
	s.cellarStats = stats.Summarize(s.cellarValues)

	if s.warning != nil {
		b.logger.Warn(s.warning, "degenerate campaign", loglib.Fields{
			"start":     in.start,
			"variation": s.variation,
			"type":      s.campaignType.String(),
		})
	}
	return s, nil
}

// cellarOffset returns the character position of the cellar's id within the
// variation string
func cellarOffset(assignment radon.Assignment) int {
	n := 0
	for _, room := range assignment[:assignment.CellarSlot()] {
		n += utf8.RuneCountInString(room.ID)
	}
	return n
}

// extractRooms reads one day per room, consecutively from start. The day
// starting at cellarStart is skipped once the cursor reaches it.
func (b *Builder) extractRooms(rooms []*radon.Room, start, cellarStart, noiseLevel int) ([]float64, error) {
	values := make([]float64, 0, RoomHours)
	cursor := start
	for _, room := range rooms {
		if cursor == cellarStart {
			cursor += HoursPerDay
		}
		day, err := b.window(room, cursor, noiseLevel)
		if err != nil {
			return nil, err
		}
		values = append(values, day...)
		cursor += HoursPerDay
	}
	return values, nil
}

// window copies one day of hourly values starting at from, with noise.
// Callers hold b.mu.
func (b *Builder) window(room *radon.Room, from, noiseLevel int) ([]float64, error) {
	to := from + HoursPerDay
	if from < 0 || to > room.Len() {
		return nil, errors.ValidationErrorf("room %s has %d hours, campaign needs hours %d to %d", room.ID, room.Len(), from, to-1)
	}
	out := make([]float64, HoursPerDay)
	for i, v := range room.Series[from:to] {
		out[i] = perturb(v, noiseLevel, b.noise)
	}
	return out, nil
}

// assembleChain lays the unsorted room and cellar days out in slot order
func assembleChain(assignment radon.Assignment, roomValues, cellarValues []float64) []float64 {
	chain := make([]float64, 0, ChainHours)
	r, c := 0, 0
	for _, room := range assignment {
		if room.IsCellar() {
			chain = append(chain, cellarValues[c:c+HoursPerDay]...)
			c += HoursPerDay
			continue
		}
		chain = append(chain, roomValues[r:r+HoursPerDay]...)
		r += HoursPerDay
	}
	return chain
}

// describe renders room ids for error messages
func describe(rooms []*radon.Room) string {
	ids := make([]string, len(rooms))
	for i, r := range rooms {
		ids[i] = r.String()
	}
	return strings.Join(ids, ",")
}
