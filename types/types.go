package types

// RawCounts holds the lexical complexity indicators found in one source unit.
type RawCounts struct {
	If      int `json:"if"`
	For     int `json:"for"`
	While   int `json:"while"`
	Switch  int `json:"switch"`
	Catch   int `json:"catch"`
	Methods int `json:"methods"`
}

// Decisions returns the number of branching, looping and exception keywords.
func (c RawCounts) Decisions() int {
	return c.If + c.For + c.While + c.Switch + c.Catch
}

// IsZero reports whether no indicator was found.
func (c RawCounts) IsZero() bool {
	return c == RawCounts{}
}

// MetricSource tells how a MetricSet was produced.
type MetricSource string

const (
	// SourceApproximate marks metrics derived from RawCounts. Only
	// cyclomatic complexity and WMC are populated.
	SourceApproximate MetricSource = "approximate"
	// SourceDirect marks metrics supplied as values.
	SourceDirect MetricSource = "direct"
)

// MetricSet is the canonical per-unit metric record.
type MetricSet struct {
	CyclomaticComplexity int          `json:"cyclomatic_complexity"`
	CognitiveComplexity  int          `json:"cognitive_complexity"`
	WMC                  float64      `json:"wmc"`
	LCOM                 float64      `json:"lcom"`
	AfferentCoupling     int          `json:"afferent_coupling"`
	EfferentCoupling     int          `json:"efferent_coupling"`
	Instability          float64      `json:"instability"`
	Source               MetricSource `json:"source"`
}

// CompositeScores are the indices derived from one MetricSet.
type CompositeScores struct {
	CombinedComplexity        float64 `json:"combined_complexity"`
	ComplexityDensity         float64 `json:"complexity_density"`
	CouplingInstabilityFactor float64 `json:"coupling_instability_factor"`
	MaintainabilityIndex      float64 `json:"maintainability_index"`
}

// Rating is an interpretation band for a single metric value.
type Rating string

const (
	RatingVeryGood   Rating = "very good"
	RatingAcceptable Rating = "acceptable"
	RatingWarning    Rating = "warning"
	RatingBad        Rating = "bad"
)
