package reporter_test

import (
	"errors"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/propast"
	"github.com/yaklabco/propslint/pkg/runner"
)

const workDir = "/work"

// sampleResult has one broken file, one clean file and one unreadable file.
func sampleResult() *runner.Result {
	broken := propast.NewFileSnapshot("/work/conf/app.properties", []byte("a=1\nbad=\\q\na=2\n"))

	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/conf/app.properties",
				Result: &lint.PipelineResult{
					Path: "/work/conf/app.properties",
					FileResult: &lint.FileResult{
						Snapshot: broken,
						Diagnostics: []lint.Diagnostic{
							{
								RuleID:      "PP000",
								RuleName:    "syntax",
								Severity:    config.SeverityError,
								Message:     "invalid escape sequence",
								StartLine:   2,
								StartColumn: 5,
								EndLine:     2,
								EndColumn:   7,
								Expected:    []string{"escape character", "unicode escape"},
							},
						},
						SkippedRules: []string{"PP001"},
					},
				},
			},
			{
				Path: "/work/db.properties",
				Result: &lint.PipelineResult{
					Path: "/work/db.properties",
					FileResult: &lint.FileResult{
						Snapshot: &propast.FileSnapshot{Matched: true},
						Diagnostics: []lint.Diagnostic{
							{
								RuleID:      "PP003",
								RuleName:    "separator-style",
								Severity:    config.SeverityWarning,
								Message:     "separator ':' differs from '='",
								StartLine:   3,
								StartColumn: 4,
								EndLine:     3,
								EndColumn:   5,
								Suggestion:  "use '='",
							},
						},
					},
				},
			},
			{
				Path:  "/work/locked.properties",
				Error: errors.New("permission denied"),
			},
		},
		Stats: runner.Stats{
			FilesDiscovered:       3,
			FilesProcessed:        2,
			FilesErrored:          1,
			FilesWithSyntaxErrors: 1,
			FilesWithIssues:       2,
			DiagnosticsTotal:      2,
			DiagnosticsBySeverity: map[config.Severity]int{
				config.SeverityError:   1,
				config.SeverityWarning: 1,
			},
		},
	}
}

func sampleRules() []config.RuleInfo {
	return []config.RuleInfo{
		{ID: "PP000", Name: "syntax", Description: "File must parse", Enabled: true, Severity: config.SeverityError, Tags: []string{"syntax"}},
		{ID: "PP001", Name: "duplicate-key", Description: "Keys must be unique", Enabled: true, Severity: config.SeverityWarning, Tags: []string{"keys"}},
	}
}
