package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/reporter"
	"github.com/yaklabco/propslint/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "sarif", input: "sarif", want: reporter.FormatSARIF},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "diff", input: "diff", want: reporter.FormatDiff},
		{name: "unknown format", input: "xml", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text", format: reporter.FormatText},
		{name: "table", format: reporter.FormatTable},
		{name: "json", format: reporter.FormatJSON},
		{name: "sarif", format: reporter.FormatSARIF},
		{name: "summary", format: reporter.FormatSummary},
		{name: "diff", format: reporter.FormatDiff},
		{name: "empty defaults to text", format: ""},
		{name: "unknown", format: "xml", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: testCase.format})
			if testCase.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func textOptions(buf *bytes.Buffer) reporter.Options {
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.Color = "never"
	opts.WorkingDir = workDir
	return opts
}

func TestTextReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewTextReporter(textOptions(&buf)).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "conf/app.properties (1 issue)\n")
	assert.Contains(t, out, "  conf/app.properties:2:5  error  invalid escape sequence  (syntax)\n")
	assert.Contains(t, out, "        bad=\\q\n")
	assert.Contains(t, out, "            ^^\n")
	assert.Contains(t, out, "    expected: escape character, unicode escape\n")
	assert.Contains(t, out, "    suggestion: use '='\n")
	assert.Contains(t, out, "locked.properties: error: permission denied\n")
	assert.NotContains(t, out, workDir, "paths are shown relative to the working directory")
	assert.True(t, strings.HasSuffix(out, "2 issues (1 error, 1 warning) in 2 files, 1 with syntax errors, 1 file unreadable\n"))
}

func TestTextReporter_NoContextNoGrouping(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.ShowContext = false
	opts.GroupByFile = false
	opts.ShowSummary = false
	opts.RuleFormat = config.RuleFormatCombined

	_, err := reporter.NewTextReporter(opts).Report(context.Background(), sampleResult())
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "(1 issue)")
	assert.NotContains(t, out, "^")
	assert.Contains(t, out, "(PP000/syntax)")
	assert.Contains(t, out, "(PP003/separator-style)")
}

func TestTextReporter_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	count, err := reporter.NewTextReporter(textOptions(&buf)).Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, "No files to check.\n", buf.String())
}

func TestTableReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.Format = reporter.FormatTable

	count, err := reporter.NewTableReporter(opts).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "conf/app.properties")
	assert.Contains(t, out, "2:5")
	assert.Contains(t, out, "locked.properties: error: permission denied")
}

func TestJSONReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.Format = reporter.FormatJSON

	count, err := reporter.NewJSONReporter(opts).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	require.Len(t, output.Files, 3)

	broken := output.Files[0]
	assert.Equal(t, "conf/app.properties", broken.Path)
	assert.False(t, broken.Matched)
	assert.Equal(t, []string{"PP001"}, broken.SkippedRules)
	require.Len(t, broken.Diagnostics, 1)
	assert.Equal(t, []string{"escape character", "unicode escape"}, broken.Diagnostics[0].Expected)
	assert.Equal(t, "error", broken.Diagnostics[0].Severity)

	assert.True(t, output.Files[1].Matched)
	assert.Equal(t, "use '='", output.Files[1].Diagnostics[0].Suggestion)

	assert.Equal(t, "permission denied", output.Files[2].Error)
	assert.NotNil(t, output.Files[2].Diagnostics)

	assert.Equal(t, reporter.JSONSummary{
		FilesChecked:          3,
		FilesWithIssues:       2,
		FilesWithSyntaxErrors: 1,
		FilesErrored:          1,
		TotalIssues:           2,
		BySeverity:            map[string]int{"error": 1, "warning": 1},
	}, output.Summary)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.Compact = true

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"files":[]`)
}

func TestSARIFReporter_Report(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.ToolVersion = "1.2.3"
	opts.Rules = sampleRules()

	count, err := reporter.NewSARIFReporter(opts).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "2.1.0", output.Version)
	require.Len(t, output.Runs, 1)
	run := output.Runs[0]

	assert.Equal(t, "propslint", run.Tool.Driver.Name)
	assert.Equal(t, "1.2.3", run.Tool.Driver.Version)

	// PP003 was not described up front and is appended on first use.
	require.Len(t, run.Tool.Driver.Rules, 3)
	assert.Equal(t, "File must parse", run.Tool.Driver.Rules[0].ShortDescription.Text)
	assert.Equal(t, "PP003", run.Tool.Driver.Rules[2].ID)

	require.Len(t, run.Results, 2)
	first := run.Results[0]
	assert.Equal(t, "PP000", first.RuleID)
	assert.Equal(t, 0, first.RuleIndex)
	assert.Equal(t, "error", first.Level)
	assert.Equal(t, "conf/app.properties", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, reporter.SARIFRegion{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 7},
		first.Locations[0].PhysicalLocation.Region)
	assert.Equal(t, []any{"escape character", "unicode escape"}, first.Properties["expected"])

	second := run.Results[1]
	assert.Equal(t, 2, second.RuleIndex)
	assert.Equal(t, "warning", second.Level)
	assert.Nil(t, second.Properties)
}

func TestSARIFReporter_InfoIsNote(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	opts := textOptions(&buf)
	opts.Rules = []config.RuleInfo{{ID: "PP004", Name: "empty-value", Severity: config.SeverityInfo}}

	_, err := reporter.NewSARIFReporter(opts).Report(context.Background(), &runner.Result{})
	require.NoError(t, err)

	var output reporter.SARIFOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "note", output.Runs[0].Tool.Driver.Rules[0].DefaultConfig.Level)
	assert.Empty(t, output.Runs[0].Results)
}
