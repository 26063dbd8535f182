package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"omsim/domain/radon"
)

// RadonGeneratorConfig configures the synthetic building generator
type RadonGeneratorConfig struct {
	Name    string `json:"name"`
	Rooms   int    `json:"rooms"`
	Cellars int    `json:"cellars"`
	Hours   int    `json:"hours"`

	// MedianLevel is the median of the per-room base level in Bq/m³
	MedianLevel float64 `json:"median_level"`

	// LevelSpread is the log-space standard deviation of the base levels
	LevelSpread float64 `json:"level_spread"`

	// CellarFactor scales cellar base levels relative to rooms
	CellarFactor float64 `json:"cellar_factor"`

	// DiurnalAmplitude is the relative swing of the daily cycle, peaking at night
	DiurnalAmplitude float64 `json:"diurnal_amplitude"`

	// Noise is the relative standard deviation of the hourly jitter
	Noise float64 `json:"noise"`

	Seed int64 `json:"seed"`
}

// DefaultRadonConfig returns a two-week survey of six rooms and one cellar
func DefaultRadonConfig() RadonGeneratorConfig {
	return RadonGeneratorConfig{
		Name:             "synthetic",
		Rooms:            6,
		Cellars:          1,
		Hours:            14 * 24,
		MedianLevel:      100,
		LevelSpread:      0.6,
		CellarFactor:     3,
		DiurnalAmplitude: 0.3,
		Noise:            0.1,
		Seed:             42,
	}
}

// RadonGenerator produces reproducible hourly radon series
type RadonGenerator struct {
	config RadonGeneratorConfig
	rng    *rand.Rand
}

// NewRadonGenerator creates a generator seeded from the config
func NewRadonGenerator(config RadonGeneratorConfig) *RadonGenerator {
	return &RadonGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateBuilding creates rooms R1..Rn and cellars C1..Cm
func (g *RadonGenerator) GenerateBuilding() (*radon.Building, error) {
	if g.config.Hours <= 0 {
		return nil, fmt.Errorf("hours must be positive, got %d", g.config.Hours)
	}
	if g.config.Rooms < 0 || g.config.Cellars < 0 {
		return nil, fmt.Errorf("room counts must not be negative")
	}

	rooms := make([]*radon.Room, 0, g.config.Rooms+g.config.Cellars)
	for i := 0; i < g.config.Rooms; i++ {
		rooms = append(rooms, radon.NewRoom(fmt.Sprintf("R%d", i+1), g.series(g.baseLevel(1))))
	}
	for i := 0; i < g.config.Cellars; i++ {
		rooms = append(rooms, radon.NewRoom(fmt.Sprintf("C%d", i+1), g.series(g.baseLevel(g.config.CellarFactor))))
	}
	return radon.NewBuilding(g.config.Name, rooms)
}

// baseLevel draws a log-normal room level
func (g *RadonGenerator) baseLevel(factor float64) float64 {
	return factor * g.config.MedianLevel * math.Exp(g.rng.NormFloat64()*g.config.LevelSpread)
}

// series lays a diurnal cycle and multiplicative jitter over a base level.
// Values are clamped at zero; radon counts are never negative.
func (g *RadonGenerator) series(base float64) []float64 {
	phase := g.rng.Float64() * 2 * math.Pi / 8
	out := make([]float64, g.config.Hours)
	for h := range out {
		hourOfDay := float64(h % 24)
		cycle := 1 + g.config.DiurnalAmplitude*math.Cos(2*math.Pi*(hourOfDay-4)/24+phase)
		v := base * cycle * (1 + g.rng.NormFloat64()*g.config.Noise)
		out[h] = math.Max(0, math.Round(v))
	}
	return out
}
