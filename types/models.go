package types

// Metric names used by issues, ratings and policy files.
const (
	MetricCyclomatic         = "cyclomaticComplexity"
	MetricCognitive          = "cognitiveComplexity"
	MetricWMC                = "wmc"
	MetricLCOM               = "lcom"
	MetricAfferentCoupling   = "afferentCoupling"
	MetricEfferentCoupling   = "efferentCoupling"
	MetricInstability        = "instability"
	MetricCombinedComplexity = "combinedComplexity"
	MetricMaintainability    = "maintainabilityIndex"
)

// Issue is a threshold violation found by the quality assessor.
type Issue struct {
	Metric  string  `json:"metric"`
	Message string  `json:"message"`
	Value   float64 `json:"value"`
	Limit   float64 `json:"limit"`
}

func (i Issue) String() string {
	return i.Message
}

// AssessmentReport is the verdict for one analyzed unit. Issues keep
// evaluation order.
type AssessmentReport struct {
	Issues     []Issue `json:"issues"`
	Acceptable bool    `json:"acceptable"`
}

// Messages returns the issue strings in evaluation order.
func (r AssessmentReport) Messages() []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, issue.Message)
	}
	return out
}

// SourceUnit is one piece of source text ready for analysis.
type SourceUnit struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Language string    `json:"language,omitempty"`
	Bytes    int64     `json:"bytes"`
	Counts   RawCounts `json:"counts"`
}

// UnitReport contains the complete analysis results of one unit.
type UnitReport struct {
	Name       string            `json:"name"`
	Path       string            `json:"path,omitempty"`
	Language   string            `json:"language,omitempty"`
	Bytes      int64             `json:"bytes,omitempty"`
	Counts     *RawCounts        `json:"counts,omitempty"`
	Metrics    MetricSet         `json:"metrics"`
	Composites CompositeScores   `json:"composites"`
	Assessment AssessmentReport  `json:"assessment"`
	Ratings    map[string]Rating `json:"ratings,omitempty"`
}

// UnitError records a unit that could not be analyzed.
type UnitError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// Summary aggregates a batch of unit reports.
type Summary struct {
	TotalUnits         int            `json:"total_units"`
	AcceptableUnits    int            `json:"acceptable_units"`
	FlaggedUnits       int            `json:"flagged_units"`
	FailedUnits        int            `json:"failed_units"`
	AvgMaintainability float64        `json:"avg_maintainability"`
	IssuesByMetric     map[string]int `json:"issues_by_metric"`
}

// BatchReport contains the results of analyzing many units.
type BatchReport struct {
	Units   []UnitReport `json:"units"`
	Errors  []UnitError  `json:"errors,omitempty"`
	Summary Summary      `json:"summary"`
}

// Acceptable reports whether every unit was analyzed and none was flagged.
func (r BatchReport) Acceptable() bool {
	if len(r.Errors) > 0 {
		return false
	}
	for _, u := range r.Units {
		if !u.Assessment.Acceptable {
			return false
		}
	}
	return true
}
