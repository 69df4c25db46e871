package runner

import (
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/lint"
)

// FileOutcome is the result for one discovered file.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult

	// Error is set if the file could not be read or parsed at all.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int

	// FilesWithSyntaxErrors counts files the grammar did not match.
	FilesWithSyntaxErrors int

	// FilesWithIssues counts files with at least one diagnostic.
	FilesWithIssues int

	DiagnosticsTotal      int
	DiagnosticsBySeverity map[config.Severity]int

	// DiagnosticsFixable counts remaining diagnostics that carry edits.
	DiagnosticsFixable int

	// FilesFixed counts files whose content fixes changed, written or
	// not; FilesFixSkipped those whose fixes were dropped. EditsApplied
	// totals the edits over all passes.
	FilesFixed      int
	FilesFixSkipped int
	EditsApplied    int
}

// Result is the outcome of a run, in discovery order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any error-severity diagnostic was produced
// or any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0 || r.Stats.FilesErrored > 0
}

// Diffs returns the dry-run diffs of the run, in discovery order.
func (r *Result) Diffs() []*fix.Diff {
	if r == nil {
		return nil
	}

	var out []*fix.Diff
	for _, f := range r.Files {
		if f.Result != nil && f.Result.Diff.HasChanges() {
			out = append(out, f.Result.Diff)
		}
	}
	return out
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Diagnostics returns every diagnostic of the run, file by file.
func (r *Result) Diagnostics() []lint.Diagnostic {
	if r == nil {
		return nil
	}

	var out []lint.Diagnostic
	for _, f := range r.Files {
		if f.Result != nil && f.Result.FileResult != nil {
			out = append(out, f.Result.Diagnostics...)
		}
	}
	return out
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[config.Severity]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil || outcome.Result.FileResult == nil {
		return
	}

	r.Stats.FilesProcessed++

	pr := outcome.Result
	if pr.Modified {
		r.Stats.FilesFixed++
		r.Stats.EditsApplied += pr.EditsApplied
	}
	if pr.Skipped {
		r.Stats.FilesFixSkipped++
	}

	fr := pr.FileResult
	if fr.Snapshot != nil && !fr.Snapshot.Matched {
		r.Stats.FilesWithSyntaxErrors++
	}
	if len(fr.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}

	r.Stats.DiagnosticsTotal += len(fr.Diagnostics)
	r.Stats.DiagnosticsFixable += fr.FixableCount()
	for _, diag := range fr.Diagnostics {
		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
