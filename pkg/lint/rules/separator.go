package rules

import (
	"fmt"

	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/propast"
)

// Separator styles accepted by the "style" option.
const (
	SeparatorConsistent = "consistent"
	SeparatorEquals     = "equals"
	SeparatorColon      = "colon"
)

// SeparatorStyleRule enforces one key/value separator across a file.
type SeparatorStyleRule struct {
	lint.BaseRule
}

// NewSeparatorStyleRule creates the separator style rule.
func NewSeparatorStyleRule() *SeparatorStyleRule {
	return &SeparatorStyleRule{
		BaseRule: lint.NewBaseRule(
			"PP003",
			"separator-style",
			"Key/value separators should be consistent ('=' or ':')",
			[]string{"style"},
		),
	}
}

// CanFix returns true: a separator is swapped in place.
func (r *SeparatorStyleRule) CanFix() bool {
	return true
}

// Apply compares every separator to the configured or first-seen one.
func (r *SeparatorStyleRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Tree == nil {
		return nil, nil
	}

	style := ctx.OptionString("style", SeparatorConsistent)

	var want byte
	switch style {
	case SeparatorEquals:
		want = '='
	case SeparatorColon:
		want = ':'
	case SeparatorConsistent:
	default:
		return nil, fmt.Errorf("unknown separator style %q", style)
	}

	var diags []lint.Diagnostic

	for i := range ctx.Tree.Elements {
		elem := &ctx.Tree.Elements[i]
		if !elem.HasSeparator() {
			continue
		}

		if want == 0 {
			want = elem.Separator
			continue
		}
		if elem.Separator == want {
			continue
		}

		span := propast.Span{Start: elem.SeparatorOffset, End: elem.SeparatorOffset + 1}
		diags = append(diags, lint.NewDiagnostic(
			r.ID(),
			ctx.File,
			span,
			fmt.Sprintf("separator '%c' should be '%c'", elem.Separator, want),
		).WithFix(fix.Replace(span.Start, span.End, string(want))).Build())
	}

	return diags, nil
}
