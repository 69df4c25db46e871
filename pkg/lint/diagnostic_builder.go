package lint

import (
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/propast"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic covering span of the file.
func NewDiagnostic(ruleID string, file *propast.FileSnapshot, span propast.Span, message string) *DiagnosticBuilder {
	var (
		path string
		pos  propast.SourcePosition
	)

	if file != nil {
		path = file.Path
		pos = file.Lines.SpanPosition(span)
	}

	return NewDiagnosticAt(ruleID, path, pos, message)
}

// NewDiagnosticAt starts building a diagnostic at a specific position.
func NewDiagnosticAt(
	ruleID string,
	filePath string,
	pos propast.SourcePosition,
	message string,
) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// WithRuleName sets the rule name. The engine fills it in when a rule
// leaves it empty.
func (b *DiagnosticBuilder) WithRuleName(name string) *DiagnosticBuilder {
	b.diag.RuleName = name
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithExpected records the tokens a parser would have accepted.
func (b *DiagnosticBuilder) WithExpected(expected []string) *DiagnosticBuilder {
	b.diag.Expected = append(b.diag.Expected, expected...)
	return b
}

// WithFix attaches edits that resolve the issue.
func (b *DiagnosticBuilder) WithFix(edits ...fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edits...)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
