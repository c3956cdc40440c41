package analysis

import (
	"math"

	"github.com/TFMV/codemetrics/types"
)

// methodWeight scales cyclomatic complexity by method count in the WMC
// approximation.
const methodWeight = 3.0

// Approximate derives metrics from lexical counts. Only cyclomatic
// complexity and WMC can be estimated this way; cognitive complexity,
// LCOM, couplings and instability stay zero.
func Approximate(counts types.RawCounts) types.MetricSet {
	cyclomatic := 1 + counts.Decisions()

	wmc := 0.0
	if counts.Methods > 0 {
		wmc = float64(cyclomatic) * float64(counts.Methods) / methodWeight
	}

	return types.MetricSet{
		CyclomaticComplexity: cyclomatic,
		WMC:                  wmc,
		Source:               types.SourceApproximate,
	}
}

// Values are directly supplied metrics, as accepted by FromValues.
type Values struct {
	Cyclomatic int     `json:"cyclomatic"`
	Cognitive  int     `json:"cognitive"`
	WMC        float64 `json:"wmc"`
	LCOM       float64 `json:"lcom"`
	Ca         int     `json:"ca"`
	Ce         int     `json:"ce"`
}

// FromValues validates supplied metrics and derives instability. The
// first out-of-range value is reported as an InvalidMetricError.
func FromValues(cyclomatic, cognitive int, wmc, lcom float64, ca, ce int) (types.MetricSet, error) {
	switch {
	case cyclomatic < 1:
		return types.MetricSet{}, invalid(types.MetricCyclomatic, float64(cyclomatic), "must be at least 1")
	case cognitive < 0:
		return types.MetricSet{}, invalid(types.MetricCognitive, float64(cognitive), "must not be negative")
	case math.IsNaN(wmc) || math.IsInf(wmc, 0) || wmc < 0:
		return types.MetricSet{}, invalid(types.MetricWMC, wmc, "must be a finite non-negative number")
	case math.IsNaN(lcom) || lcom < 0 || lcom > 1:
		return types.MetricSet{}, invalid(types.MetricLCOM, lcom, "must be within [0, 1]")
	case ca < 0:
		return types.MetricSet{}, invalid(types.MetricAfferentCoupling, float64(ca), "must not be negative")
	case ce < 0:
		return types.MetricSet{}, invalid(types.MetricEfferentCoupling, float64(ce), "must not be negative")
	}

	return types.MetricSet{
		CyclomaticComplexity: cyclomatic,
		CognitiveComplexity:  cognitive,
		WMC:                  wmc,
		LCOM:                 lcom,
		AfferentCoupling:     ca,
		EfferentCoupling:     ce,
		Instability:          Instability(ca, ce),
		Source:               types.SourceDirect,
	}, nil
}

// FromStruct is FromValues over a Values record.
func FromStruct(v Values) (types.MetricSet, error) {
	return FromValues(v.Cyclomatic, v.Cognitive, v.WMC, v.LCOM, v.Ca, v.Ce)
}

// Instability returns ce/(ca+ce), or 0 when the unit has no couplings.
func Instability(ca, ce int) float64 {
	total := ca + ce
	if total <= 0 {
		return 0
	}
	return float64(ce) / float64(total)
}

// Compose derives the composite indices of m. The maintainability index
// is not clamped and goes negative for very poor code.
func Compose(m types.MetricSet) types.CompositeScores {
	complexity := float64(m.CyclomaticComplexity + m.CognitiveComplexity)

	return types.CompositeScores{
		CombinedComplexity:        float64(m.CognitiveComplexity) * m.WMC / 10.0,
		ComplexityDensity:         complexity / 2.0,
		CouplingInstabilityFactor: float64(m.AfferentCoupling+m.EfferentCoupling) * m.Instability,
		MaintainabilityIndex:      100 - complexity*2.5 - m.LCOM*50,
	}
}
