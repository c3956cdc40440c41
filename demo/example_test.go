package demo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/codemetrics/analysis"
	"github.com/TFMV/codemetrics/demo"
	"github.com/TFMV/codemetrics/parser"
	"github.com/TFMV/codemetrics/types"
)

func TestWorkedExamples(t *testing.T) {
	expected := map[string][]string{
		"ComplexProcessor": {
			analysis.IssueHighCyclomatic,
			analysis.IssueHighCognitive,
			analysis.IssueHighWMC,
			analysis.IssueCriticalCombined,
			analysis.IssueLowMaintainability,
		},
		"MixedUtilityClass":     {analysis.IssueHighWMC, analysis.IssuePoorCohesion},
		"TightlyCoupledService": {analysis.IssueHighWMC},
		"Car": {
			analysis.IssueHighCyclomatic,
			analysis.IssueHighWMC,
			analysis.IssueCriticalCombined,
			analysis.IssueLowMaintainability,
		},
	}

	a := analysis.NewAnalyzer(analysis.Options{})
	batch := a.AnalyzeValuesBatch(demo.WorkedExamples())
	require.Empty(t, batch.Errors)
	require.Len(t, batch.Units, len(expected))

	for _, unit := range batch.Units {
		t.Run(unit.Name, func(t *testing.T) {
			assert.Equal(t, expected[unit.Name], unit.Assessment.Messages())
			assert.False(t, unit.Assessment.Acceptable)
		})
	}
	assert.Equal(t, 4, batch.Summary.FlaggedUnits)
	assert.Equal(t, 4, batch.Summary.IssuesByMetric[types.MetricWMC])
}

func TestWorkedExamples_TightlyCoupled(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{})
	unit, err := a.AnalyzeValues("TightlyCoupledService", demo.WorkedExamples()[2].Values)
	require.NoError(t, err)

	assert.InDelta(t, 15.0/23.0, unit.Metrics.Instability, 1e-9)
	assert.InDelta(t, 15.0, unit.Composites.CouplingInstabilityFactor, 1e-9)
	assert.InDelta(t, 35.0, unit.Composites.MaintainabilityIndex, 1e-9)
}

func TestSampleSource(t *testing.T) {
	want := types.RawCounts{If: 1, For: 1, While: 1, Switch: 1, Catch: 1, Methods: 8}
	assert.Equal(t, want, parser.CountRaw(demo.SampleSource))
	assert.Equal(t, want, parser.CountStrict(demo.SampleSource))

	a := analysis.NewAnalyzer(analysis.Options{})
	unit := a.AnalyzeSource(demo.SampleName, demo.SampleSource)
	assert.Equal(t, 6, unit.Metrics.CyclomaticComplexity)
	assert.InDelta(t, 16.0, unit.Metrics.WMC, 1e-9)
	assert.True(t, unit.Assessment.Acceptable)
}
