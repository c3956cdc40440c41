package analysis

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TFMV/codemetrics/cache"
	"github.com/TFMV/codemetrics/config"
	"github.com/TFMV/codemetrics/parser"
	"github.com/TFMV/codemetrics/types"
)

// DefaultInclude selects the files scanned by AnalyzeDirectory when no
// pattern is given.
var DefaultInclude = []string{"**/*.java"}

// Options configures an Analyzer. Zero values select defaults.
type Options struct {
	Mode      parser.Mode
	Policy    *config.ThresholdPolicy
	Include   []string
	Workers   int
	CacheSize int
	Logger    *zap.Logger
}

// Analyzer runs the metrics pipeline over source units and supplied values
type Analyzer struct {
	Parser  *parser.Parser
	Policy  config.ThresholdPolicy
	Include []string
	Workers int
	Logger  *zap.Logger
}

// NewAnalyzer creates a new Analyzer with the given options
func NewAnalyzer(opts Options) *Analyzer {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	policy := config.DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	include := opts.Include
	if len(include) == 0 {
		include = DefaultInclude
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	return &Analyzer{
		Parser:  parser.NewParser(opts.Mode, cache.NewCountsCache(opts.CacheSize), logger),
		Policy:  policy,
		Include: include,
		Workers: workers,
		Logger:  logger,
	}
}

// Evaluate composes, assesses and rates a metric set.
func (a *Analyzer) Evaluate(name string, m types.MetricSet) types.UnitReport {
	composites := Compose(m)
	return types.UnitReport{
		Name:       name,
		Metrics:    m,
		Composites: composites,
		Assessment: Assess(m, composites, a.Policy),
		Ratings:    Rate(m),
	}
}

// AnalyzeUnit runs the approximation path over a parsed unit.
func (a *Analyzer) AnalyzeUnit(unit types.SourceUnit) types.UnitReport {
	counts := unit.Counts
	report := a.Evaluate(unit.Name, Approximate(counts))
	report.Path = unit.Path
	report.Language = unit.Language
	report.Bytes = unit.Bytes
	report.Counts = &counts
	return report
}

// AnalyzeSource analyzes inline source text.
func (a *Analyzer) AnalyzeSource(name, text string) types.UnitReport {
	return a.AnalyzeUnit(a.Parser.ParseText(name, text))
}

// AnalyzeFile analyzes a single source file.
func (a *Analyzer) AnalyzeFile(path string) (types.UnitReport, error) {
	unit, err := a.Parser.ParseFile(path)
	if err != nil {
		return types.UnitReport{}, err
	}
	return a.AnalyzeUnit(unit), nil
}

// AnalyzeValues analyzes directly supplied metrics.
func (a *Analyzer) AnalyzeValues(name string, v Values) (types.UnitReport, error) {
	m, err := FromStruct(v)
	if err != nil {
		return types.UnitReport{}, fmt.Errorf("%s: %w", name, err)
	}
	return a.Evaluate(name, m), nil
}

// NamedValues pairs supplied metrics with a unit name.
type NamedValues struct {
	Name   string
	Values Values
}

// AnalyzeValuesBatch analyzes each entry in order. Invalid entries are
// recorded as unit errors.
func (a *Analyzer) AnalyzeValuesBatch(entries []NamedValues) types.BatchReport {
	var report types.BatchReport
	for _, e := range entries {
		unit, err := a.AnalyzeValues(e.Name, e.Values)
		if err != nil {
			report.Errors = append(report.Errors, types.UnitError{Name: e.Name, Error: err.Error()})
			continue
		}
		report.Units = append(report.Units, unit)
	}
	report.Summary = Summarize(report.Units, report.Errors)
	return report
}

// AnalyzeDirectory scans a directory tree and analyzes every file
// matching the include patterns. Units are analyzed concurrently and
// reported in path order. A unit that fails is recorded and the scan
// continues.
func (a *Analyzer) AnalyzeDirectory(ctx context.Context, dir string) (types.BatchReport, error) {
	paths, err := a.collect(ctx, dir)
	if err != nil {
		return types.BatchReport{}, fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}

	if len(paths) == 0 {
		a.Logger.Warn("No source files matched",
			zap.String("dir", dir),
			zap.Strings("include", a.Include))
	}

	units := make([]*types.UnitReport, len(paths))
	failures := make([]error, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			unit, err := a.AnalyzeFile(path)
			if err != nil {
				a.Logger.Warn("Failed to analyze unit", zap.String("path", path), zap.Error(err))
				failures[i] = err
				return nil
			}
			units[i] = &unit
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return types.BatchReport{}, err
	}

	var report types.BatchReport
	for i := range paths {
		if failures[i] != nil {
			report.Errors = append(report.Errors, types.UnitError{Name: paths[i], Error: failures[i].Error()})
			continue
		}
		report.Units = append(report.Units, *units[i])
	}
	report.Summary = Summarize(report.Units, report.Errors)

	hits, misses := a.Parser.CacheStats()
	a.Logger.Info("Directory analyzed",
		zap.String("dir", dir),
		zap.Uint64("cache_hits", hits),
		zap.Uint64("cache_misses", misses),
		zap.Int("units", report.Summary.TotalUnits),
		zap.Int("flagged", report.Summary.FlaggedUnits),
		zap.Int("failed", report.Summary.FailedUnits))

	return report, nil
}

// collect returns the files under dir matching the include patterns,
// in lexical order, skipping the top-level vendor directories.
func (a *Analyzer) collect(ctx context.Context, dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && parser.IsVendored(rel) {
				a.Logger.Debug("Skipping vendored directory", zap.String("path", path))
				return filepath.SkipDir
			}
			return nil
		}

		if !a.matches(rel) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

func (a *Analyzer) matches(rel string) bool {
	for _, pattern := range a.Include {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Summarize aggregates unit reports and failures.
func Summarize(units []types.UnitReport, errs []types.UnitError) types.Summary {
	summary := types.Summary{
		TotalUnits:      len(units) + len(errs),
		AcceptableUnits: lo.CountBy(units, func(u types.UnitReport) bool { return u.Assessment.Acceptable }),
		FailedUnits:     len(errs),
		IssuesByMetric:  map[string]int{},
	}
	summary.FlaggedUnits = len(units) - summary.AcceptableUnits

	if len(units) > 0 {
		total := lo.SumBy(units, func(u types.UnitReport) float64 { return u.Composites.MaintainabilityIndex })
		summary.AvgMaintainability = total / float64(len(units))
	}

	issues := lo.FlatMap(units, func(u types.UnitReport, _ int) []types.Issue { return u.Assessment.Issues })
	for _, issue := range issues {
		summary.IssuesByMetric[issue.Metric]++
	}

	return summary
}
