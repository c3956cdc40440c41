// Package codemetrics computes object-oriented quality metrics for
// source units and flags the ones that break a threshold policy.
package codemetrics

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/TFMV/codemetrics/analysis"
	"github.com/TFMV/codemetrics/config"
	"github.com/TFMV/codemetrics/demo"
	"github.com/TFMV/codemetrics/parser"
	"github.com/TFMV/codemetrics/report"
	"github.com/TFMV/codemetrics/types"
)

// Config holds the analyzer settings. Zero values select defaults.
type Config struct {
	// PolicyPath is a .json, .yaml, .yml or .toml threshold file.
	PolicyPath string
	Mode       parser.Mode
	Include    []string
	Workers    int
	CacheSize  int
	Logger     *zap.Logger
}

// Analyzer is the entry point for analyzing files, directories, inline
// source text and supplied metric values.
type Analyzer struct {
	analyzer *analysis.Analyzer
	logger   *zap.Logger
}

// NewAnalyzer loads the threshold policy and builds an Analyzer.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	logger.Debug("Loaded threshold policy",
		zap.String("path", cfg.PolicyPath),
		zap.Any("thresholds", policy.AsMap()))

	return &Analyzer{
		analyzer: analysis.NewAnalyzer(analysis.Options{
			Mode:      cfg.Mode,
			Policy:    &policy,
			Include:   cfg.Include,
			Workers:   cfg.Workers,
			CacheSize: cfg.CacheSize,
			Logger:    logger,
		}),
		logger: logger,
	}, nil
}

// Policy returns the active thresholds.
func (a *Analyzer) Policy() config.ThresholdPolicy {
	return a.analyzer.Policy
}

// Analyze inspects target, which is a file, a directory or inline source
// text. A target that looks like a path but does not exist is an error
// wrapping fs.ErrNotExist.
func (a *Analyzer) Analyze(ctx context.Context, target string) (types.BatchReport, error) {
	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return a.analyzer.AnalyzeDirectory(ctx, target)
	case err == nil:
		unit, err := a.analyzer.AnalyzeFile(target)
		if err != nil {
			return types.BatchReport{}, err
		}
		return single(unit), nil
	case errors.Is(err, fs.ErrPermission), LooksLikePath(target):
		return types.BatchReport{}, fmt.Errorf("failed to open target %s: %w", target, err)
	}

	a.logger.Warn("Target is not an existing path, analyzing it as inline source text",
		zap.Int("bytes", len(target)))
	return single(a.analyzer.AnalyzeSource("inline", target)), nil
}

// LooksLikePath reports whether target reads as a file system path
// rather than source text: a single word that contains a path
// separator or ends in a file extension.
func LooksLikePath(target string) bool {
	if target == "" || strings.ContainsFunc(target, unicode.IsSpace) {
		return false
	}
	if strings.ContainsAny(target, "/"+string(filepath.Separator)) {
		return true
	}
	ext := filepath.Ext(target)
	return len(ext) > 1 && isWord(ext[1:])
}

func isWord(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// AnalyzeValues assesses directly supplied metrics.
func (a *Analyzer) AnalyzeValues(name string, v analysis.Values) (types.BatchReport, error) {
	unit, err := a.analyzer.AnalyzeValues(name, v)
	if err != nil {
		return types.BatchReport{}, err
	}
	return single(unit), nil
}

// Examples assesses the reference classes in package demo.
func (a *Analyzer) Examples() types.BatchReport {
	return a.analyzer.AnalyzeValuesBatch(demo.WorkedExamples())
}

// Publish writes r to every sink, stopping at the first failure.
func Publish(ctx context.Context, r types.BatchReport, sinks ...report.Sink) error {
	for _, s := range sinks {
		if err := s.Write(ctx, r); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func single(unit types.UnitReport) types.BatchReport {
	units := []types.UnitReport{unit}
	return types.BatchReport{
		Units:   units,
		Summary: analysis.Summarize(units, nil),
	}
}
