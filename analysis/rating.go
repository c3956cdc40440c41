package analysis

import "github.com/TFMV/codemetrics/types"

// band holds the upper bounds of the very good, acceptable and warning
// ranges. Anything above the last bound rates bad.
type band [3]float64

var bands = map[string]band{
	types.MetricCyclomatic:       {5, 10, 15},
	types.MetricCognitive:        {5, 10, 20},
	types.MetricWMC:              {10, 20, 40},
	types.MetricAfferentCoupling: {3, 7, 12},
	types.MetricEfferentCoupling: {5, 10, 20},
	types.MetricInstability:      {0.2, 0.5, 0.8},
}

func (b band) rate(v float64) types.Rating {
	switch {
	case v <= b[0]:
		return types.RatingVeryGood
	case v <= b[1]:
		return types.RatingAcceptable
	case v <= b[2]:
		return types.RatingWarning
	}
	return types.RatingBad
}

// Rate places each known metric of m in its interpretation band.
// Approximated metric sets are rated on cyclomatic complexity and WMC
// only. Ratings never influence the assessment verdict.
func Rate(m types.MetricSet) map[string]types.Rating {
	ratings := map[string]types.Rating{
		types.MetricCyclomatic: bands[types.MetricCyclomatic].rate(float64(m.CyclomaticComplexity)),
		types.MetricWMC:        bands[types.MetricWMC].rate(m.WMC),
	}
	if m.Source == types.SourceApproximate {
		return ratings
	}

	ratings[types.MetricCognitive] = bands[types.MetricCognitive].rate(float64(m.CognitiveComplexity))
	ratings[types.MetricAfferentCoupling] = bands[types.MetricAfferentCoupling].rate(float64(m.AfferentCoupling))
	ratings[types.MetricEfferentCoupling] = bands[types.MetricEfferentCoupling].rate(float64(m.EfferentCoupling))
	ratings[types.MetricInstability] = bands[types.MetricInstability].rate(m.Instability)
	return ratings
}
