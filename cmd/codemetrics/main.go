package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/docopt/docopt-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/TFMV/codemetrics"
	"github.com/TFMV/codemetrics/analysis"
	"github.com/TFMV/codemetrics/parser"
	"github.com/TFMV/codemetrics/report"
	"github.com/TFMV/codemetrics/types"
)

const version = "codemetrics 0.1.0"

const usage = `codemetrics - object-oriented quality metrics and threshold checks.

Usage:
  codemetrics analyze <target> [--policy=<file>] [--mode=<mode> | --strict] [--format=<fmt>] [--include=<glob>...] [--verbose]
  codemetrics values <name> <cyclomatic> <cognitive> <wmc> <lcom> <ca> <ce> [--policy=<file>] [--format=<fmt>]
  codemetrics examples [--policy=<file>] [--format=<fmt>]
  codemetrics thresholds [--policy=<file>]
  codemetrics -h | --help
  codemetrics --version

Arguments:
  <target>          A source file, a directory to scan, or inline source text.

Options:
  -h --help         Show this screen.
  --version         Show version.
  --policy=<file>   Threshold policy file (.json, .yaml, .yml or .toml).
  --mode=<mode>     Counting mode: substring or strict [default: substring].
  --strict          Same as --mode=strict.
  --format=<fmt>    Report format: text or json [default: text].
  --include=<glob>  File pattern for directory scans, repeatable [default: **/*.java].
  --verbose         Log debug output to stderr.

Exit status is 0 when every unit is acceptable, 1 when issues were
flagged and 2 on usage, policy or input errors.
`

const (
	exitOK      = 0
	exitFlagged = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(argv []string, stdout, stderr io.Writer) int {
	handled := -1
	p := &docopt.Parser{
		HelpHandler: func(err error, usage string) {
			if err != nil {
				fmt.Fprintln(stderr, usage)
				handled = exitUsage
				return
			}
			fmt.Fprintln(stdout, usage)
			handled = exitOK
		},
	}

	opts, err := p.ParseArgs(usage, argv, version)
	if handled >= 0 {
		return handled
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	verbose, _ := opts.Bool("--verbose")
	logger, err := newLogger(verbose, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return exitUsage
	}
	defer logger.Sync()

	code, err := dispatch(context.Background(), opts, stdout, logger)
	if err != nil {
		logger.Debug("Command failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	return code
}

func newLogger(verbose bool, w io.Writer) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level.SetLevel(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if w == os.Stderr {
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), zapcore.AddSync(w), cfg.Level)
	return zap.New(core), nil
}

func dispatch(ctx context.Context, opts docopt.Opts, stdout io.Writer, logger *zap.Logger) (int, error) {
	cfg, err := analyzerConfig(opts, logger)
	if err != nil {
		return exitUsage, err
	}

	a, err := codemetrics.NewAnalyzer(cfg)
	if err != nil {
		return exitUsage, err
	}

	if isSet(opts, "thresholds") {
		return exitOK, report.WritePolicy(stdout, a.Policy())
	}

	format, _ := opts.String("--format")
	sink, err := report.New(format, stdout)
	if err != nil {
		return exitUsage, err
	}

	var r types.BatchReport
	switch {
	case isSet(opts, "analyze"):
		target, _ := opts.String("<target>")
		r, err = a.Analyze(ctx, target)
	case isSet(opts, "values"):
		var name string
		var v analysis.Values
		name, v, err = valuesFrom(opts)
		if err == nil {
			r, err = a.AnalyzeValues(name, v)
		}
	case isSet(opts, "examples"):
		r = a.Examples()
	}
	if err != nil {
		return exitUsage, err
	}

	if err := codemetrics.Publish(ctx, r, sink); err != nil {
		return exitUsage, err
	}
	if !r.Acceptable() {
		return exitFlagged, nil
	}
	return exitOK, nil
}

func analyzerConfig(opts docopt.Opts, logger *zap.Logger) (codemetrics.Config, error) {
	cfg := codemetrics.Config{Logger: logger}

	name, _ := opts["--mode"].(string)
	mode, err := parser.ParseMode(name)
	if err != nil {
		return cfg, err
	}
	cfg.Mode = mode

	if path, ok := opts["--policy"].(string); ok {
		cfg.PolicyPath = path
	}
	if isSet(opts, "--strict") {
		cfg.Mode = parser.ModeStrict
	}
	if include, ok := opts["--include"].([]string); ok {
		cfg.Include = include
	}
	return cfg, nil
}

func valuesFrom(opts docopt.Opts) (string, analysis.Values, error) {
	name, _ := opts.String("<name>")

	var v analysis.Values
	var err error
	ints := []struct {
		key string
		dst *int
	}{
		{"<cyclomatic>", &v.Cyclomatic},
		{"<cognitive>", &v.Cognitive},
		{"<ca>", &v.Ca},
		{"<ce>", &v.Ce},
	}
	for _, f := range ints {
		if *f.dst, err = opts.Int(f.key); err != nil {
			return "", v, fmt.Errorf("%s must be an integer: %w", f.key, err)
		}
	}
	if v.WMC, err = opts.Float64("<wmc>"); err != nil {
		return "", v, fmt.Errorf("<wmc> must be a number: %w", err)
	}
	if v.LCOM, err = opts.Float64("<lcom>"); err != nil {
		return "", v, fmt.Errorf("<lcom> must be a number: %w", err)
	}
	return name, v, nil
}

func isSet(opts docopt.Opts, key string) bool {
	ok, _ := opts.Bool(key)
	return ok
}
