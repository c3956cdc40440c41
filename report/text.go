package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/TFMV/codemetrics/config"
	"github.com/TFMV/codemetrics/types"
)

// Verdict labels.
const (
	VerdictAcceptable = "ACCEPTABLE"
	VerdictFlagged    = "ISSUES FOUND"
)

// TextSink renders reports as human readable tables.
type TextSink struct {
	w io.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (s *TextSink) Write(ctx context.Context, report types.BatchReport) error {
	w := &errWriter{w: s.w}

	for i, unit := range report.Units {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeUnit(w, unit); err != nil {
			return fmt.Errorf("failed to render %s: %w", unit.Name, err)
		}
	}

	if len(report.Errors) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Errors:")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "  - %s: %s\n", e.Name, e.Error)
		}
	}

	if len(report.Units)+len(report.Errors) > 1 {
		fmt.Fprintln(w)
		writeSummary(w, report.Summary)
	}

	if w.err != nil {
		return fmt.Errorf("failed to write report: %w", w.err)
	}
	return nil
}

func writeUnit(w *errWriter, unit types.UnitReport) error {
	fmt.Fprintf(w, "%s\n", unit.Name)
	if unit.Path != "" {
		fmt.Fprintf(w, "  path: %s (%s, %s)\n", unit.Path, languageOf(unit), humanize.IBytes(uint64(unit.Bytes)))
	}
	if unit.Metrics.Source == types.SourceApproximate {
		fmt.Fprintln(w, "  metrics approximated from keyword counts")
	}
	if w.err != nil {
		return w.err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value", "Rating")
	for _, row := range metricRows(unit) {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Verdict: %s\n", Verdict(unit.Assessment))
	for _, issue := range unit.Assessment.Issues {
		fmt.Fprintf(w, "  - %s (%s, limit %s)\n", issue.Message, Number(issue.Value), Number(issue.Limit))
	}
	return w.err
}

func writeSummary(w io.Writer, sum types.Summary) {
	fmt.Fprintf(w, "Summary: %d units, %d acceptable, %d flagged, %d failed\n",
		sum.TotalUnits, sum.AcceptableUnits, sum.FlaggedUnits, sum.FailedUnits)
	fmt.Fprintf(w, "Average maintainability: %s\n", Number(sum.AvgMaintainability))

	metrics := make([]string, 0, len(sum.IssuesByMetric))
	for m := range sum.IssuesByMetric {
		metrics = append(metrics, m)
	}
	sort.Strings(metrics)
	for _, m := range metrics {
		fmt.Fprintf(w, "  %s: %d\n", m, sum.IssuesByMetric[m])
	}
}

func metricRows(unit types.UnitReport) [][]string {
	m, c := unit.Metrics, unit.Composites
	rating := func(name string) string { return string(unit.Ratings[name]) }

	rows := [][]string{
		{types.MetricCyclomatic, strconv.Itoa(m.CyclomaticComplexity), rating(types.MetricCyclomatic)},
		{types.MetricWMC, Number(m.WMC), rating(types.MetricWMC)},
	}
	if m.Source != types.SourceApproximate {
		rows = append(rows,
			[]string{types.MetricCognitive, strconv.Itoa(m.CognitiveComplexity), rating(types.MetricCognitive)},
			[]string{types.MetricLCOM, Number(m.LCOM), ""},
			[]string{types.MetricAfferentCoupling, strconv.Itoa(m.AfferentCoupling), rating(types.MetricAfferentCoupling)},
			[]string{types.MetricEfferentCoupling, strconv.Itoa(m.EfferentCoupling), rating(types.MetricEfferentCoupling)},
			[]string{types.MetricInstability, Number(m.Instability), rating(types.MetricInstability)},
		)
	}
	return append(rows,
		[]string{types.MetricCombinedComplexity, Number(c.CombinedComplexity), ""},
		[]string{"complexityDensity", Number(c.ComplexityDensity), ""},
		[]string{"couplingInstabilityFactor", Number(c.CouplingInstabilityFactor), ""},
		[]string{types.MetricMaintainability, Number(c.MaintainabilityIndex), ""},
	)
}

func languageOf(unit types.UnitReport) string {
	if unit.Language == "" {
		return "unknown language"
	}
	return unit.Language
}

// Verdict returns the label for an assessment.
func Verdict(a types.AssessmentReport) string {
	if a.Acceptable {
		return VerdictAcceptable
	}
	return VerdictFlagged
}

// Number formats a metric value with two decimals, dropping a zero
// fraction.
func Number(v float64) string {
	s := humanize.FormatFloat("#,###.##", v)
	return strings.TrimSuffix(s, ".00")
}

// WritePolicy renders the active thresholds.
func WritePolicy(w io.Writer, policy config.ThresholdPolicy) error {
	values := policy.AsMap()

	table := tablewriter.NewWriter(w)
	table.Header("Threshold", "Value")
	for _, key := range config.Keys {
		if err := table.Append([]string{key, Number(values[key])}); err != nil {
			return err
		}
	}
	return table.Render()
}
