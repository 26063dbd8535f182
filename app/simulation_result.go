package app

import (
	"sort"
	"time"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"omsim/domain/campaign"
	"omsim/domain/core"
)

// Distribution summarises one per-campaign quantity across a sweep
type Distribution struct {
	N    int     `json:"n"`
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Q05  float64 `json:"q05"`
	Q50  float64 `json:"q50"`
	Q95  float64 `json:"q95"`
	Max  float64 `json:"max"`
}

// newDistribution uses empirical quantiles; values is sorted in place. An
// empty input gives the zero Distribution.
func newDistribution(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sort.Float64s(values)
	return Distribution{
		N:    len(values),
		Mean: stat.Mean(values, nil),
		Min:  values[0],
		Q05:  stat.Quantile(0.05, stat.Empirical, values, nil),
		Q50:  stat.Quantile(0.5, stat.Empirical, values, nil),
		Q95:  stat.Quantile(0.95, stat.Empirical, values, nil),
		Max:  values[len(values)-1],
	}
}

// TrialFailure records a trial whose campaign could not be built
type TrialFailure struct {
	Trial Trial
	Err   error
}

// SimulationResult is the outcome of one sweep
type SimulationResult struct {
	RunID   core.RunID
	Request SimulationRequest

	// Campaigns holds the built campaigns in trial order
	Campaigns []*campaign.Campaign
	Failures  []TrialFailure

	// TypeCounts counts built campaigns per adjacency type
	TypeCounts map[campaign.Type]int
	Degenerate int

	// RoomAverages and CellarAverages are distributions of the per-campaign
	// arithmetic means
	RoomAverages   Distribution
	CellarAverages Distribution

	// Ratio is the distribution of room mean over cellar mean, with
	// nearest-rank percentiles
	Ratio Distribution

	Duration time.Duration
}

func newSimulationResult(runID core.RunID, req SimulationRequest, trials []Trial, built []*campaign.Campaign, failed []error) *SimulationResult {
	r := &SimulationResult{
		RunID:      runID,
		Request:    req,
		TypeCounts: make(map[campaign.Type]int),
	}
	var rooms, cellars, ratios []float64
	for i, c := range built {
		if c == nil {
			if failed[i] != nil {
				r.Failures = append(r.Failures, TrialFailure{Trial: trials[i], Err: failed[i]})
			}
			continue
		}
		r.Campaigns = append(r.Campaigns, c)
		r.TypeCounts[c.Type()]++
		if c.Type().Degenerate() {
			r.Degenerate++
		}
		room, cellar := c.RoomStats().Average, c.CellarStats().Average
		rooms = append(rooms, room)
		cellars = append(cellars, cellar)
		if cellar > 0 {
			ratios = append(ratios, room/cellar)
		}
	}
	r.RoomAverages = newDistribution(rooms)
	r.CellarAverages = newDistribution(cellars)
	r.Ratio = ratioDistribution(ratios)
	return r
}

func ratioDistribution(values []float64) Distribution {
	d := newDistribution(values)
	if d.N == 0 {
		return d
	}
	data := mstats.Float64Data(values)
	for _, p := range []struct {
		dst *float64
		pct float64
	}{{&d.Q05, 5}, {&d.Q50, 50}, {&d.Q95, 95}} {
		if v, err := data.PercentileNearestRank(p.pct); err == nil {
			*p.dst = v
		}
	}
	return d
}

// Ranked returns the built campaigns ordered by room arithmetic mean,
// highest first. Ties keep trial order.
func (r *SimulationResult) Ranked() []*campaign.Campaign {
	type ranked struct {
		c   *campaign.Campaign
		avg float64
	}
	items := make([]ranked, len(r.Campaigns))
	for i, c := range r.Campaigns {
		items[i] = ranked{c: c, avg: c.RoomStats().Average}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].avg > items[j].avg
	})
	out := make([]*campaign.Campaign, len(items))
	for i, it := range items {
		out[i] = it.c
	}
	return out
}

// Summary is the JSON report of a sweep
type Summary struct {
	RunID          string         `json:"run_id"`
	Building       string         `json:"building"`
	Mode           string         `json:"mode"`
	Trials         int            `json:"trials"`
	Built          int            `json:"built"`
	Failed         int            `json:"failed"`
	Degenerate     int            `json:"degenerate"`
	Types          map[string]int `json:"types"`
	RoomAverages   Distribution   `json:"room_averages"`
	CellarAverages Distribution   `json:"cellar_averages"`
	Ratio          Distribution   `json:"ratio"`
	DurationMs     int64          `json:"duration_ms"`
}

// Summary flattens the result for reporting
func (r *SimulationResult) Summary() Summary {
	types := make(map[string]int, len(r.TypeCounts))
	for t, n := range r.TypeCounts {
		types[t.String()] = n
	}
	name := ""
	if r.Request.Building != nil {
		name = r.Request.Building.Name
	}
	return Summary{
		RunID:          r.RunID.String(),
		Building:       name,
		Mode:           r.Request.Mode,
		Trials:         len(r.Campaigns) + len(r.Failures),
		Built:          len(r.Campaigns),
		Failed:         len(r.Failures),
		Degenerate:     r.Degenerate,
		Types:          types,
		RoomAverages:   r.RoomAverages,
		CellarAverages: r.CellarAverages,
		Ratio:          r.Ratio,
		DurationMs:     r.Duration.Milliseconds(),
	}
}
