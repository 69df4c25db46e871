package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/runner"
)

// JSONOutput is the top-level JSON document.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one file. Matched is false when the file has syntax
// errors; SkippedRules lists rules that need a clean parse.
type JSONFileResult struct {
	Path         string           `json:"path"`
	Matched      bool             `json:"matched"`
	Diagnostics  []JSONDiagnostic `json:"diagnostics"`
	SkippedRules []string         `json:"skippedRules,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// JSONDiagnostic is one diagnostic. Columns are 1-based byte columns.
type JSONDiagnostic struct {
	RuleID      string   `json:"ruleId"`
	RuleName    string   `json:"ruleName"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Expected    []string `json:"expected,omitempty"`
}

// JSONSummary aggregates the run.
type JSONSummary struct {
	FilesChecked          int            `json:"filesChecked"`
	FilesWithIssues       int            `json:"filesWithIssues"`
	FilesWithSyntaxErrors int            `json:"filesWithSyntaxErrors"`
	FilesErrored          int            `json:"filesErrored"`
	TotalIssues           int            `json:"totalIssues"`
	BySeverity            map[string]int `json:"bySeverity"`
}

// JSONReporter writes a JSONOutput document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        r.opts.displayPath(file.Path),
			Diagnostics: make([]JSONDiagnostic, 0),
		}
		output.Summary.FilesChecked++

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil && file.Result.FileResult != nil {
			fr := file.Result.FileResult
			fileResult.Matched = fr.Snapshot == nil || fr.Snapshot.Matched
			fileResult.SkippedRules = fr.SkippedRules

			if !fileResult.Matched {
				output.Summary.FilesWithSyntaxErrors++
			}

			for _, diag := range fr.Diagnostics {
				severity := string(cmp.Or(diag.Severity, config.SeverityWarning))

				fileResult.Diagnostics = append(fileResult.Diagnostics, JSONDiagnostic{
					RuleID:      diag.RuleID,
					RuleName:    diag.RuleName,
					Severity:    severity,
					Message:     diag.Message,
					StartLine:   diag.StartLine,
					StartColumn: diag.StartColumn,
					EndLine:     diag.EndLine,
					EndColumn:   diag.EndColumn,
					Suggestion:  diag.Suggestion,
					Expected:    diag.Expected,
				})
				output.Summary.TotalIssues++
				output.Summary.BySeverity[severity]++
			}
		}

		if len(fileResult.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
