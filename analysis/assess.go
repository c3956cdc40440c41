package analysis

import (
	"github.com/TFMV/codemetrics/config"
	"github.com/TFMV/codemetrics/types"
)

// Issue messages, in evaluation order.
const (
	IssueHighCyclomatic     = "HIGH Cyclomatic Complexity"
	IssueHighCognitive      = "HIGH Cognitive Complexity"
	IssueHighWMC            = "HIGH WMC"
	IssuePoorCohesion       = "POOR Cohesion (LCOM)"
	IssueCriticalCombined   = "CRITICAL Combined Complexity"
	IssueLowMaintainability = "LOW Maintainability"
)

type rule struct {
	metric  string
	message string
	value   func(types.MetricSet, types.CompositeScores) float64
	limit   func(config.ThresholdPolicy) float64
	// below flags values under the limit instead of above it.
	below bool
}

var rules = []rule{
	{
		metric:  types.MetricCyclomatic,
		message: IssueHighCyclomatic,
		value:   func(m types.MetricSet, _ types.CompositeScores) float64 { return float64(m.CyclomaticComplexity) },
		limit:   func(p config.ThresholdPolicy) float64 { return p.CyclomaticMax },
	},
	{
		metric:  types.MetricCognitive,
		message: IssueHighCognitive,
		value:   func(m types.MetricSet, _ types.CompositeScores) float64 { return float64(m.CognitiveComplexity) },
		limit:   func(p config.ThresholdPolicy) float64 { return p.CognitiveMax },
	},
	{
		metric:  types.MetricWMC,
		message: IssueHighWMC,
		value:   func(m types.MetricSet, _ types.CompositeScores) float64 { return m.WMC },
		limit:   func(p config.ThresholdPolicy) float64 { return p.WMCMax },
	},
	{
		metric:  types.MetricLCOM,
		message: IssuePoorCohesion,
		value:   func(m types.MetricSet, _ types.CompositeScores) float64 { return m.LCOM },
		limit:   func(p config.ThresholdPolicy) float64 { return p.LCOMMax },
	},
	{
		metric:  types.MetricCombinedComplexity,
		message: IssueCriticalCombined,
		value:   func(_ types.MetricSet, c types.CompositeScores) float64 { return c.CombinedComplexity },
		limit:   func(p config.ThresholdPolicy) float64 { return p.CombinedComplexityMax },
	},
	{
		metric:  types.MetricMaintainability,
		message: IssueLowMaintainability,
		value:   func(_ types.MetricSet, c types.CompositeScores) float64 { return c.MaintainabilityIndex },
		limit:   func(p config.ThresholdPolicy) float64 { return p.MaintainabilityMin },
		below:   true,
	},
}

// Assess applies policy to a unit's metrics and composites. Limits are
// strict: a value equal to its limit is healthy.
func Assess(m types.MetricSet, c types.CompositeScores, policy config.ThresholdPolicy) types.AssessmentReport {
	issues := []types.Issue{}
	for _, r := range rules {
		value, limit := r.value(m, c), r.limit(policy)

		triggered := value > limit
		if r.below {
			triggered = value < limit
		}
		if !triggered {
			continue
		}

		issues = append(issues, types.Issue{
			Metric:  r.metric,
			Message: r.message,
			Value:   value,
			Limit:   limit,
		})
	}

	return types.AssessmentReport{
		Issues:     issues,
		Acceptable: len(issues) == 0,
	}
}
