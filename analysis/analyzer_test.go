package analysis_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/TFMV/codemetrics/analysis"
	"github.com/TFMV/codemetrics/config"
	"github.com/TFMV/codemetrics/parser"
	"github.com/TFMV/codemetrics/types"
)

const complexSource = `public class OrderProcessor {
	public void process(Order o) {
		if (o == null) { return; }
		if (o.total > 100) { discount(o); }
		for (Item i : o.items) {
			while (i.pending) { i.next(); }
		}
		switch (o.state) { default: break; }
		try { save(o); } catch (Exception e) { log(e); }
	}
	private void discount(Order o) {}
	protected void save(Order o) {}
}`

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzer_AnalyzeSource(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{})

	report := a.AnalyzeSource("OrderProcessor", complexSource)
	require.NotNil(t, report.Counts)
	assert.Equal(t, types.RawCounts{If: 2, For: 1, While: 1, Switch: 1, Catch: 1, Methods: 4}, *report.Counts)
	assert.Equal(t, 7, report.Metrics.CyclomaticComplexity)
	assert.InDelta(t, 7*4/3.0, report.Metrics.WMC, 1e-9)
	assert.True(t, report.Assessment.Acceptable)
	assert.Equal(t, "OrderProcessor", report.Name)
}

func TestAnalyzer_AnalyzeSourceEmpty(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{})

	report := a.AnalyzeSource("empty", "")
	assert.Equal(t, 1, report.Metrics.CyclomaticComplexity)
	assert.Equal(t, 0.0, report.Metrics.WMC)
	assert.True(t, report.Assessment.Acceptable)
}

func TestAnalyzer_StrictMode(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{Mode: parser.ModeStrict})

	report := a.AnalyzeSource("noisy", `// if for while
		void notify() { format(); }`)
	assert.Equal(t, 1, report.Metrics.CyclomaticComplexity)
}

func TestAnalyzer_AnalyzeValues(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{})

	report, err := a.AnalyzeValues("ComplexProcessor", analysis.Values{
		Cyclomatic: 15, Cognitive: 18, WMC: 25, LCOM: 0.3, Ca: 3, Ce: 8,
	})
	require.NoError(t, err)
	assert.False(t, report.Assessment.Acceptable)
	assert.Len(t, report.Assessment.Issues, 5)
	assert.Nil(t, report.Counts)

	_, err = a.AnalyzeValues("broken", analysis.Values{Cyclomatic: 0})
	assert.ErrorIs(t, err, analysis.ErrInvalidMetric)
}

func TestAnalyzer_CustomPolicy(t *testing.T) {
	policy := config.DefaultPolicy()
	policy.CyclomaticMax = 5
	a := analysis.NewAnalyzer(analysis.Options{Policy: &policy})

	report := a.AnalyzeSource("OrderProcessor", complexSource)
	assert.Equal(t, []string{analysis.IssueHighCyclomatic}, report.Assessment.Messages())
}

func TestAnalyzer_AnalyzeValuesBatch(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{})

	report := a.AnalyzeValuesBatch([]analysis.NamedValues{
		{Name: "good", Values: analysis.Values{Cyclomatic: 2, Cognitive: 1, WMC: 3, LCOM: 0.1, Ca: 1, Ce: 1}},
		{Name: "bad", Values: analysis.Values{Cyclomatic: 5, Cognitive: 3, WMC: 6, LCOM: 1.5}},
		{Name: "complex", Values: analysis.Values{Cyclomatic: 15, Cognitive: 18, WMC: 25, LCOM: 0.3, Ca: 3, Ce: 8}},
	})

	require.Len(t, report.Units, 2)
	assert.Equal(t, "good", report.Units[0].Name)
	assert.Equal(t, "complex", report.Units[1].Name)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "bad", report.Errors[0].Name)

	assert.Equal(t, 3, report.Summary.TotalUnits)
	assert.Equal(t, 1, report.Summary.AcceptableUnits)
	assert.Equal(t, 1, report.Summary.FlaggedUnits)
	assert.Equal(t, 1, report.Summary.FailedUnits)
	assert.False(t, report.Acceptable())
}

func TestAnalyzer_AnalyzeDirectory(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFile(t, dir, "src/b/Second.java", "public class Second { public void a() {} }")
	writeFile(t, dir, "src/a/First.java", complexSource)
	writeFile(t, dir, "vendor/lib/Lib.java", "public class Lib {}")
	writeFile(t, dir, "README.md", "if for while")

	a := analysis.NewAnalyzer(analysis.Options{Workers: 2})
	report, err := a.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Units, 2)
	assert.Equal(t, "First.java", report.Units[0].Name)
	assert.Equal(t, "Second.java", report.Units[1].Name)
	assert.Equal(t, "Java", report.Units[0].Language)
	assert.Empty(t, report.Errors)
	assert.Equal(t, 2, report.Summary.TotalUnits)
	assert.True(t, report.Acceptable())
}

func TestAnalyzer_AnalyzeDirectoryFirstPartyPackages(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	for _, rel := range []string{
		"src/main/java/com/acme/Main.java",
		"src/main/java/com/acme/cache/CacheService.java",
		"src/main/java/com/acme/dist/Packer.java",
		"src/main/java/com/acme/external/Client.java",
		"src/main/java/com/acme/third_party/Adapter.java",
		"src/main/java/com/acme/vendor/Supplier.java",
		"node_modules/pkg/Ignored.java",
		".gradle/caches/Ignored.java",
	} {
		writeFile(t, dir, rel, "public class X { public void run() {} }")
	}

	a := analysis.NewAnalyzer(analysis.Options{})
	report, err := a.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)

	names := make([]string, 0, len(report.Units))
	for _, u := range report.Units {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{
		"Main.java",
		"CacheService.java",
		"Packer.java",
		"Client.java",
		"Adapter.java",
		"Supplier.java",
	}, names)
	assert.Empty(t, report.Errors)
}

func TestAnalyzer_AnalyzeDirectoryInclude(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFile(t, dir, "Main.java", "public class Main {}")
	writeFile(t, dir, "kotlin/run.kt", "fun main() { if (x) {} }")

	a := analysis.NewAnalyzer(analysis.Options{Include: []string{"**/*.kt"}})
	report, err := a.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Units, 1)
	assert.Equal(t, "run.kt", report.Units[0].Name)
	assert.Equal(t, 2, report.Units[0].Metrics.CyclomaticComplexity)
}

func TestAnalyzer_AnalyzeDirectoryFlagged(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	body := ""
	for i := 0; i < 12; i++ {
		body += "if (x) { y(); }\n"
	}
	writeFile(t, dir, "Big.java", "public class Big { public void run() {\n"+body+"} }")

	a := analysis.NewAnalyzer(analysis.Options{})
	report, err := a.AnalyzeDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, report.Units, 1)
	assert.Contains(t, report.Units[0].Assessment.Messages(), analysis.IssueHighCyclomatic)
	assert.Equal(t, 1, report.Summary.FlaggedUnits)
	assert.Equal(t, 1, report.Summary.IssuesByMetric[types.MetricCyclomatic])
	assert.False(t, report.Acceptable())
}

func TestAnalyzer_AnalyzeDirectoryEmpty(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{})
	report, err := a.AnalyzeDirectory(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, report.Units)
	assert.Equal(t, 0, report.Summary.TotalUnits)
	assert.True(t, report.Acceptable())
}

func TestAnalyzer_AnalyzeDirectoryMissing(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{})
	_, err := a.AnalyzeDirectory(context.Background(), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestAnalyzer_AnalyzeDirectoryCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFile(t, dir, "A.java", "class A {}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := analysis.NewAnalyzer(analysis.Options{})
	_, err := a.AnalyzeDirectory(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	a := analysis.NewAnalyzer(analysis.Options{})
	good, err := a.AnalyzeValues("good", analysis.Values{Cyclomatic: 2, WMC: 1})
	require.NoError(t, err)
	bad, err := a.AnalyzeValues("bad", analysis.Values{Cyclomatic: 15, Cognitive: 18, WMC: 25, LCOM: 0.3, Ca: 3, Ce: 8})
	require.NoError(t, err)

	s := analysis.Summarize([]types.UnitReport{good, bad}, []types.UnitError{{Name: "x", Error: "boom"}})
	assert.Equal(t, 3, s.TotalUnits)
	assert.Equal(t, 1, s.AcceptableUnits)
	assert.Equal(t, 1, s.FlaggedUnits)
	assert.Equal(t, 1, s.FailedUnits)
	assert.InDelta(t, (95.0+2.5)/2, s.AvgMaintainability, 1e-9)
	assert.Equal(t, 1, s.IssuesByMetric[types.MetricCyclomatic])
	assert.Equal(t, 1, s.IssuesByMetric[types.MetricMaintainability])
	assert.Zero(t, s.IssuesByMetric[types.MetricLCOM])
}

func BenchmarkAnalyzeSource(b *testing.B) {
	a := analysis.NewAnalyzer(analysis.Options{CacheSize: 1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.AnalyzeSource("bench", complexSource)
	}
}
