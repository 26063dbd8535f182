package stats

import (
	"math"
	"testing"

	mstats "github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/combin"
)

// ascending returns 1..n
func ascending(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestMean(t *testing.T) {
	assert.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
	assert.Equal(t, 72.5, Mean(ascending(144)))
	assert.True(t, math.IsNaN(Mean(nil)))
}

func TestStdDev_MatchesSampleDeviation(t *testing.T) {
	values := []float64{12, 48, 33, 90, 71, 5, 64, 28}
	mean := Mean(values)

	want, err := mstats.StandardDeviationSample(values)
	require.NoError(t, err)
	assert.InDelta(t, want, StdDev(values, mean), 1e-12)
	assert.InDelta(t, stat.StdDev(values, nil), StdDev(values, mean), 1e-12)
}

func TestStdDev_SingleSampleIsNaN(t *testing.T) {
	// n-1 == 0: the legacy formula divides by zero instead of failing
	assert.True(t, math.IsNaN(StdDev([]float64{42}, 42)))
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.Equal(t, 0.25, CoefficientOfVariation(8, 2))
	assert.True(t, math.IsInf(CoefficientOfVariation(0, 2), 1))
	assert.True(t, math.IsNaN(CoefficientOfVariation(0, 0)))
}

func TestGeometricMean_DividesByFullCount(t *testing.T) {
	// two zeros among ten samples: ln-sum is 4, divided by 10 not by 8
	values := []float64{0, 0, 1, 1, 1, 1, math.E, math.E, math.E, math.E}

	gm := GeometricMean(values)
	assert.InDelta(t, math.Exp(0.4), gm, 1e-12)
	assert.NotEqual(t, math.Exp(0.5), gm)
}

func TestGeometricMean_PositiveValues(t *testing.T) {
	values := []float64{2, 8}
	assert.InDelta(t, 4.0, GeometricMean(values), 1e-12)

	want, err := mstats.GeometricMean(values)
	require.NoError(t, err)
	assert.InDelta(t, want, GeometricMean(values), 1e-12)
}

func TestGeometricStdDev_DividesByFullCount(t *testing.T) {
	values := []float64{0, 0, 1, 1, 1, 1, math.E, math.E, math.E, math.E}
	gm := GeometricMean(values)

	// four (0-0.4)² terms plus four (1-0.4)² terms over n-1 = 9
	want := math.Exp(math.Sqrt((4*0.16 + 4*0.36) / 9))
	assert.InDelta(t, want, GeometricStdDev(values, gm), 1e-12)
}

func TestGeometricStdDev_NonPositiveMeanIgnoresAllTerms(t *testing.T) {
	assert.Equal(t, 1.0, GeometricStdDev([]float64{1, 2, 3}, 0))
}

func TestQuantileIndex(t *testing.T) {
	tests := []struct {
		n, p int
		want int
	}{
		{144, 5, 6},
		{144, 50, 71},
		{144, 95, 135},
		{24, 5, 0},
		{24, 50, 11},
		{24, 95, 21},
		{10, 5, -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QuantileIndex(tt.n, tt.p), "n=%d p=%d", tt.n, tt.p)
	}
}

func TestQuantile_RoomFixture(t *testing.T) {
	values := ascending(144)

	// 5%: int(1.44*5)-1 = 6; 95%: int(144-7.2)-1 = 135; 50%: int(144-72)-1 = 71
	assert.Equal(t, 7.0, Quantile(values, 5))
	assert.Equal(t, 136.0, Quantile(values, 95))
	assert.Equal(t, 72.0, Median(values))
}

func TestQuantile_CellarFixture(t *testing.T) {
	values := ascending(24)

	assert.Equal(t, 1.0, Quantile(values, 5))
	assert.Equal(t, 22.0, Quantile(values, 95))
	assert.Equal(t, 12.0, Median(values))
}

func TestQuantile_TooShortIsNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Quantile([]float64{1, 2, 3}, 5)))
	assert.True(t, math.IsNaN(Quantile(nil, 50)))
}

func TestQuantileDeviations(t *testing.T) {
	assert.Equal(t, 64.5, QuantileDeviation(7, 136))
	assert.InDelta(t, 129.0/144.0, RelativeQuantileDeviation(7, 72, 136), 1e-15)
	assert.True(t, math.IsInf(RelativeQuantileDeviation(1, 0, 3), 1))
}

func TestExtremaAndRange(t *testing.T) {
	values := []float64{3, 9, 1, 7}
	assert.Equal(t, 1.0, Min(values))
	assert.Equal(t, 9.0, Max(values))
	assert.Equal(t, 8.0, Range(1, 9))
	assert.True(t, math.IsNaN(Min(nil)))
	assert.True(t, math.IsNaN(Max(nil)))
}

func TestLogValues(t *testing.T) {
	got := LogValues([]float64{-3, 0, 1, math.E})
	assert.Equal(t, []float64{0, 0, 0, 1}, got)
}

func TestFactorial(t *testing.T) {
	assert.Equal(t, 1, Factorial(-4))
	assert.Equal(t, 1, Factorial(0))
	assert.Equal(t, 1, Factorial(1))
	assert.Equal(t, 2, Factorial(2))
	assert.Equal(t, 720, Factorial(6))
	for n := 2; n <= 12; n++ {
		assert.Equal(t, combin.NumPermutations(n, n), Factorial(n), "n=%d", n)
	}
}
