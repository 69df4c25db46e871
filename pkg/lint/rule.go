// Package lint provides the rule engine, diagnostics, and registry for propslint.
package lint

import (
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/propast"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "duplicate-key").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based byte column where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based byte column where the issue ends.
	EndColumn int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// Expected lists what the parser would have accepted, for syntax errors.
	Expected []string

	// FixEdits rewrite the file so the issue goes away. Only rules whose
	// CanFix is true set them.
	FixEdits []fix.TextEdit
}

// Fixable reports whether the diagnostic carries edits.
func (d *Diagnostic) Fixable() bool {
	return len(d.FixEdits) > 0
}

// SourcePosition returns the diagnostic position as a SourcePosition.
func (d *Diagnostic) SourcePosition() propast.SourcePosition {
	return propast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "PP001").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["style", "keys"]).
	Tags() []string

	// NeedsMatch reports whether the rule only makes sense on a file the
	// parser accepted. Such rules are skipped for files with syntax errors.
	NeedsMatch() bool

	// CanFix reports whether the rule attaches FixEdits to its diagnostics.
	CanFix() bool

	// Apply executes the rule against the given context and returns diagnostics.
	// It returns an error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
