package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/analysis"
)

func renderSummary(t *testing.T, report *analysis.Report) string {
	t.Helper()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never"})
	require.NoError(t, renderer.Render(context.Background(), report))

	return buf.String()
}

func TestSummaryRenderer_EmptyReport(t *testing.T) {
	t.Parallel()

	out := renderSummary(t, &analysis.Report{Totals: analysis.Totals{Files: 3}})
	assert.Equal(t, "No issues found (3 files checked)\n", out)
}

func TestSummaryRenderer_CleanButUnreadable(t *testing.T) {
	t.Parallel()

	out := renderSummary(t, &analysis.Report{Totals: analysis.Totals{Files: 1, FilesErrored: 1}})
	assert.Equal(t, "No issues found (1 file checked)\n1 file could not be read\n", out)
}

func TestSummaryRenderer_Tables(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{RuleID: "PP001", RuleName: "duplicate-key", Issues: 5, Warnings: 5, Files: []string{"a.properties", "b.properties"}},
			{RuleID: "PP000", RuleName: "syntax", Issues: 1, Errors: 1, Files: []string{"c.properties"}},
		},
		ByFile: []analysis.FileAnalysis{
			{Path: "a.properties", Matched: true, Issues: 4, Warnings: 4},
			{Path: "c.properties", Matched: false, Issues: 1, Errors: 1},
		},
		Totals: analysis.Totals{
			Files: 3, FilesWithIssues: 3, SyntaxErrors: 1,
			Issues: 6, Errors: 1, Warnings: 5,
		},
	}

	out := renderSummary(t, report)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "Rules", lines[0])
	assert.Equal(t, strings.Repeat("-", tableWidth), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "Rule "))
	assert.Equal(t,
		padRight("PP001 duplicate-key", ruleColWidth)+" "+
			padLeft("5", numColWidth)+" "+padLeft("0", numColWidth)+" "+
			padLeft("5", warnColWidth)+" "+padLeft("2", numColWidth),
		lines[4])

	assert.Contains(t, out, "Files\n")
	assert.Contains(t, out, "c.properties (syntax)")
	assert.NotContains(t, out, "a.properties (syntax)")
	assert.Contains(t, out, "Total: 6 issues (1 error, 5 warnings) in 3 files\n")
	assert.True(t, strings.HasSuffix(out, "1 file with syntax errors\n"))
}

func TestSummaryRenderer_Truncation(t *testing.T) {
	t.Parallel()

	longPath := strings.Repeat("d/", 40) + "app.properties"
	report := &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{RuleID: "PP002", RuleName: "continuation-whitespace-that-is-long", Issues: 1, Infos: 1},
		},
		ByFile: []analysis.FileAnalysis{{Path: longPath, Matched: true, Issues: 1, Infos: 1}},
		Totals: analysis.Totals{Files: 1, FilesWithIssues: 1, Issues: 1, Infos: 1},
	}

	out := renderSummary(t, report)

	assert.Contains(t, out, "PP002 continuation-whitespac…")
	assert.Contains(t, out, "…"+longPath[len(longPath)-(maxFilePathLength-1):])
	assert.Contains(t, out, "Total: 1 issue (1 info) in 1 file\n")
}

func TestPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "   ab", padLeft("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
	assert.Equal(t, "abcdef", padLeft("abcdef", 3))
}
