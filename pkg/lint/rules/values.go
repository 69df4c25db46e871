package rules

import (
	"fmt"

	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/parser/charclass"
	"github.com/yaklabco/propslint/pkg/propast"
)

// ContinuationWhitespaceRule flags a line that ends in a backslash
// followed by whitespace. The whitespace turns the backslash into an
// escaped space, so the next line is not a continuation.
type ContinuationWhitespaceRule struct {
	lint.BaseRule
}

// NewContinuationWhitespaceRule creates the continuation whitespace rule.
func NewContinuationWhitespaceRule() *ContinuationWhitespaceRule {
	return &ContinuationWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"PP002",
			"continuation-whitespace",
			"A trailing backslash must not be followed by whitespace",
			[]string{"whitespace", "continuation"},
		),
	}
}

// Apply checks the last physical line of every element.
func (r *ContinuationWhitespaceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Tree == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for i := range ctx.Tree.Elements {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		elem := &ctx.Tree.Elements[i]
		ws, ok := whitespaceAfterBackslash(ctx.File, elem.Line)
		if !ok {
			continue
		}

		diags = append(diags, lint.NewDiagnostic(
			r.ID(),
			ctx.File,
			ws,
			"whitespace after '\\' at end of line prevents the line continuation",
		).WithSuggestion("remove the trailing whitespace, or write the space as '\\u0020'").Build())
	}

	return diags, nil
}

// whitespaceAfterBackslash returns the trailing whitespace of the last
// physical line of span when it follows an odd run of backslashes.
func whitespaceAfterBackslash(file *propast.FileSnapshot, span propast.Span) (propast.Span, bool) {
	src := file.Content
	end := span.End

	trimmed := end
	for trimmed > span.Start && charclass.IsInlineWhitespace(rune(src[trimmed-1])) {
		trimmed--
	}
	if trimmed == end {
		return propast.Span{}, false
	}

	run := 0
	for i := trimmed - 1; i >= span.Start && src[i] == '\\'; i-- {
		run++
	}
	if run%2 == 0 {
		return propast.Span{}, false
	}

	return propast.Span{Start: trimmed, End: end}, true
}

// EmptyValueRule reports keys without a value.
type EmptyValueRule struct {
	lint.BaseRule
}

// NewEmptyValueRule creates the empty value rule.
func NewEmptyValueRule() *EmptyValueRule {
	return &EmptyValueRule{
		BaseRule: lint.NewBaseRule(
			"PP004",
			"empty-value",
			"Keys should have a non-empty value",
			[]string{"values"},
		),
	}
}

// DefaultEnabled returns false: empty values are legal and common.
func (r *EmptyValueRule) DefaultEnabled() bool {
	return false
}

// Apply reports each element whose logical value is empty.
func (r *EmptyValueRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Tree == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for i := range ctx.Tree.Elements {
		elem := &ctx.Tree.Elements[i]
		if elem.Value.Text != "" {
			continue
		}

		diags = append(diags, lint.NewDiagnostic(
			r.ID(),
			ctx.File,
			elem.Key.Span,
			fmt.Sprintf("key %q has an empty value", elem.Key.Text),
		).Build())
	}

	return diags, nil
}
