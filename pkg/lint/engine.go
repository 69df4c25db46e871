package lint

import (
	"cmp"
	"context"
	"fmt"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/propast"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Snapshot is the parsed file.
	Snapshot *propast.FileSnapshot

	// Diagnostics contains all issues found.
	Diagnostics []Diagnostic

	// SkippedRules lists rules not run because the file failed to parse.
	SkippedRules []string

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error

	// Edits are the fixes of auto-fixable diagnostics, sorted and free of
	// overlaps. SkippedEdits overlapped an accepted edit.
	Edits        []fix.TextEdit
	SkippedEdits []fix.TextEdit
}

// FixableCount returns the number of diagnostics that carry edits.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Fixable() {
			count++
		}
	}
	return count
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// CountSeverity returns the number of diagnostics at severity s.
func (fr *FileResult) CountSeverity(s config.Severity) int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.Severity == s {
			count++
		}
	}
	return count
}

// Engine parses files and runs the resolved rules over them. An Engine
// holds no per-file state and may be shared by workers.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates an Engine.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile parses content and lints the result.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return e.LintSnapshot(ctx, snapshot, cfg)
}

// LintSnapshot runs the resolved rules over an already parsed file. Rules
// that need a clean parse are skipped for unmatched files; a failing rule
// is recorded in RuleErrors and does not stop the others. Edits of rules
// with AutoFix set are collected into Edits.
func (e *Engine) LintSnapshot(
	ctx context.Context,
	snapshot *propast.FileSnapshot,
	cfg *config.Config,
) (*FileResult, error) {
	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	var edits []fix.TextEdit

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		id := rr.Rule.ID()
		if rr.Rule.NeedsMatch() && !snapshot.Matched {
			result.SkippedRules = append(result.SkippedRules, id)
			continue
		}

		diags, err := e.apply(ctx, rr, snapshot, cfg)
		if err != nil {
			result.RuleErrors[id] = err
			continue
		}
		result.Diagnostics = append(result.Diagnostics, diags...)

		if rr.AutoFix {
			for i := range diags {
				edits = append(edits, diags[i].FixEdits...)
			}
		}
	}

	SortDiagnostics(result.Diagnostics)

	if len(edits) > 0 {
		accepted, skipped, err := fix.Prepare(edits, len(snapshot.Content))
		if err != nil {
			return result, fmt.Errorf("prepare fixes for %s: %w", snapshot.Path, err)
		}
		result.Edits, result.SkippedEdits = accepted, skipped
	}

	return result, nil
}

// apply runs one rule and stamps its diagnostics with the resolved
// severity, the file path and the rule name.
func (e *Engine) apply(
	ctx context.Context,
	rr ResolvedRule,
	snapshot *propast.FileSnapshot,
	cfg *config.Config,
) ([]Diagnostic, error) {
	diags, err := rr.Rule.Apply(NewRuleContext(ctx, snapshot, cfg, rr.Config))
	if err != nil {
		return nil, err
	}

	for i := range diags {
		d := &diags[i]
		d.Severity = rr.Severity
		d.FilePath = cmp.Or(d.FilePath, snapshot.Path)
		d.RuleName = cmp.Or(d.RuleName, rr.Rule.Name())
	}

	return diags, nil
}
