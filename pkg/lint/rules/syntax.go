package rules

import (
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/propast"
)

// SyntaxRule surfaces the parser's diagnostics as lint findings.
type SyntaxRule struct {
	lint.BaseRule
}

// NewSyntaxRule creates the syntax rule.
func NewSyntaxRule() *SyntaxRule {
	return &SyntaxRule{
		BaseRule: lint.NewBaseRule(
			"PP000",
			"syntax",
			"The file must be a well-formed properties file",
			[]string{"syntax"},
		),
	}
}

// DefaultSeverity returns error: a file that does not parse cannot be loaded.
func (r *SyntaxRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// NeedsMatch returns false; this rule reports exactly the unmatched files.
func (r *SyntaxRule) NeedsMatch() bool {
	return false
}

// Apply converts each parser diagnostic into a lint diagnostic.
func (r *SyntaxRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil || ctx.File.Matched {
		return nil, nil
	}

	diags := make([]lint.Diagnostic, 0, len(ctx.File.Diagnostics))

	for _, found := range ctx.File.Diagnostics {
		message := found.Message
		if found.Rule != "" {
			message += " in " + found.Rule
		}

		diags = append(diags, lint.NewDiagnosticAt(
			r.ID(),
			ctx.File.Path,
			ctx.Position(pointSpan(ctx.File, found.Offset)),
			message,
		).WithRuleName(r.Name()).WithExpected(found.Expected).Build())
	}

	return diags, nil
}

// pointSpan covers the byte at offset, or nothing at a line end.
func pointSpan(file *propast.FileSnapshot, offset int) propast.Span {
	line, _ := file.LineAt(offset)
	if line == 0 {
		return propast.Span{Start: offset, End: offset}
	}

	if offset < file.Lines[line-1].NewlineStart {
		return propast.Span{Start: offset, End: offset + 1}
	}

	return propast.Span{Start: offset, End: offset}
}
