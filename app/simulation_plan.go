package app

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/combin"

	"omsim/domain/campaign"
	"omsim/domain/radon"
	"omsim/internal/config"
	"omsim/internal/errors"
)

// Trial is one planned campaign: where it starts, which rooms fill which
// days, and the seed of its private noise source.
type Trial struct {
	Index      int
	Start      int
	Assignment radon.Assignment
	Seed       int64
}

// Plan lays out the trials of a sweep. The plan depends only on the request,
// so two runs with the same seed build identical campaigns.
func Plan(req SimulationRequest) ([]Trial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	rooms, cellars := req.Building.NormalRooms(), req.Building.Cellars()
	if len(rooms) == 0 {
		return nil, errors.ValidationErrorf("building %q has no normal rooms", req.Building.Name)
	}
	if len(cellars) == 0 {
		return nil, errors.ValidationErrorf("building %q has no cellar", req.Building.Name)
	}
	starts := startGrid(req.Building.MinSeriesLen(), req.StartStep)
	if len(starts) == 0 {
		return nil, errors.ValidationErrorf("building %q records %d hours, a campaign needs %d",
			req.Building.Name, req.Building.MinSeriesLen(), campaign.ChainHours)
	}

	rng := rand.New(rand.NewSource(req.Seed))
	switch req.Mode {
	case config.ModePermutations:
		return planPermutations(req, rng, starts, rooms, cellars)
	default:
		return planRandom(req, rng, starts, rooms, cellars), nil
	}
}

// startGrid lists every start on the step grid that leaves room for a full
// campaign week.
func startGrid(hours, step int) []int {
	var starts []int
	for s := 0; s+campaign.ChainHours <= hours; s += step {
		starts = append(starts, s)
	}
	return starts
}

// planRandom draws rooms with replacement, so degenerate campaigns occur
func planRandom(req SimulationRequest, rng *rand.Rand, starts []int, rooms, cellars []*radon.Room) []Trial {
	trials := make([]Trial, req.Trials)
	for i := range trials {
		start := starts[rng.Intn(len(starts))]
		picked := make([]*radon.Room, radon.RoomSlots)
		for j := range picked {
			picked[j] = rooms[rng.Intn(len(rooms))]
		}
		cellar := cellars[rng.Intn(len(cellars))]
		slot := rng.Intn(radon.SlotCount)
		trials[i] = Trial{
			Index:      i,
			Start:      start,
			Assignment: insertCellar(picked, cellar, slot),
			Seed:       rng.Int63(),
		}
	}
	return trials
}

// planPermutations enumerates ordered selections of six distinct rooms for
// every cellar, cellar slot and start, stopping at the trial cap.
func planPermutations(req SimulationRequest, rng *rand.Rand, starts []int, rooms, cellars []*radon.Room) ([]Trial, error) {
	if len(rooms) < radon.RoomSlots {
		return nil, errors.ValidationErrorf("permutations need at least %d normal rooms, building %q has %d",
			radon.RoomSlots, req.Building.Name, len(rooms))
	}

	total := len(starts) * combin.NumPermutations(len(rooms), radon.RoomSlots) * len(cellars) * radon.SlotCount
	trials := make([]Trial, 0, min(req.Trials, total))
	perm := make([]int, radon.RoomSlots)
	for _, start := range starts {
		gen := combin.NewPermutationGenerator(len(rooms), radon.RoomSlots)
		for gen.Next() {
			gen.Permutation(perm)
			picked := make([]*radon.Room, radon.RoomSlots)
			for j, idx := range perm {
				picked[j] = rooms[idx]
			}
			for _, cellar := range cellars {
				for slot := 0; slot < radon.SlotCount; slot++ {
					if len(trials) == req.Trials {
						return trials, nil
					}
					trials = append(trials, Trial{
						Index:      len(trials),
						Start:      start,
						Assignment: insertCellar(picked, cellar, slot),
						Seed:       rng.Int63(),
					})
				}
			}
		}
	}
	return trials, nil
}

func insertCellar(rooms []*radon.Room, cellar *radon.Room, slot int) radon.Assignment {
	a := make(radon.Assignment, 0, radon.SlotCount)
	a = append(a, rooms[:slot]...)
	a = append(a, cellar)
	return append(a, rooms[slot:]...)
}
