package stats

// Summary holds the statistics computed for one sample population of a
// campaign (rooms or cellar).
type Summary struct {
	Average                   float64   `json:"average"`
	Maximum                   float64   `json:"maximum"`
	Minimum                   float64   `json:"minimum"`
	Deviation                 float64   `json:"deviation"`
	VarCoefficient            float64   `json:"var_coefficient"`
	Range                     float64   `json:"range"`
	Quantile05                float64   `json:"quantile_05"`
	Quantile95                float64   `json:"quantile_95"`
	Median                    float64   `json:"median"`
	QuantileDeviation         float64   `json:"quantile_deviation"`
	RelativeQuantileDeviation float64   `json:"relative_quantile_deviation"`
	LogAverage                float64   `json:"log_average"`
	LogDeviation              float64   `json:"log_deviation"`
	LogValues                 []float64 `json:"log_values"`
}

// Summarize evaluates every statistic over an ascending sorted population.
// Derived values reuse earlier ones in the legacy order (deviation from
// average, range from extrema, deviations from quantiles).
func Summarize(sorted []float64) Summary {
	var s Summary
	s.LogValues = LogValues(sorted)
	s.Average = Mean(sorted)
	s.Maximum = Max(sorted)
	s.Minimum = Min(sorted)
	s.Deviation = StdDev(sorted, s.Average)
	s.VarCoefficient = CoefficientOfVariation(s.Average, s.Deviation)
	s.Range = Range(s.Minimum, s.Maximum)
	s.Quantile05 = Quantile(sorted, 5)
	s.Quantile95 = Quantile(sorted, 95)
	s.Median = Median(sorted)
	s.QuantileDeviation = QuantileDeviation(s.Quantile05, s.Quantile95)
	s.RelativeQuantileDeviation = RelativeQuantileDeviation(s.Quantile05, s.Median, s.Quantile95)
	s.LogAverage = GeometricMean(sorted)
	s.LogDeviation = GeometricStdDev(sorted, s.LogAverage)
	return s
}

// Clone returns a deep copy
func (s Summary) Clone() Summary {
	out := s
	if s.LogValues != nil {
		out.LogValues = append([]float64(nil), s.LogValues...)
	}
	return out
}
