package reporter_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/reporter"
	"github.com/yaklabco/propslint/pkg/runner"
)

func dryRunResult() *runner.Result {
	const path = "/work/conf/app.properties"

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: path,
				Result: &lint.PipelineResult{
					Path:       path,
					FileResult: &lint.FileResult{},
					Modified:   true,
					Diff:       fix.GenerateDiff(path, []byte("a=1\nb:2\na=3\n"), []byte("b=2\na=3\n")),
				},
			},
			{
				Path:   "/work/clean.properties",
				Result: &lint.PipelineResult{Path: "/work/clean.properties", FileResult: &lint.FileResult{}},
			},
			{
				Path: "/work/odd.properties",
				Result: &lint.PipelineResult{
					Path:       "/work/odd.properties",
					FileResult: &lint.FileResult{},
					Skipped:    true,
					SkipReason: "fixed content does not parse",
				},
			},
			{Path: "/work/gone.properties", Error: errors.New("file not found")},
		},
	}
}

func TestDiffReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{
		Writer:      &buf,
		Format:      reporter.FormatDiff,
		Color:       "never",
		ShowSummary: true,
		WorkingDir:  workDir,
	})
	require.NoError(t, err)

	n, err := rep.Report(context.Background(), dryRunResult())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	want := "diff --git a/conf/app.properties b/conf/app.properties\n" +
		"--- a/conf/app.properties\n" +
		"+++ b/conf/app.properties\n" +
		"@@ -1,3 +1,2 @@\n" +
		"-a=1\n" +
		"-b:2\n" +
		"+b=2\n" +
		" a=3\n" +
		"\n"

	out := buf.String()
	assert.Contains(t, out, want)
	assert.Contains(t, out, "odd.properties: skipped: fixed content does not parse\n")
	assert.Contains(t, out, "gone.properties: error: file not found\n")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 2 deletions(-)\n")
	assert.NotContains(t, out, "clean.properties")
}

func TestDiffReporter_NothingToFix(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	n, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "No fixes to apply.\n", buf.String())
}
