package rules

import (
	"fmt"

	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/propast"
)

// DuplicateKeyRule reports keys defined more than once. The last
// definition wins when the file is loaded, so earlier ones are dead and
// the fix deletes them.
type DuplicateKeyRule struct {
	lint.BaseRule
}

// NewDuplicateKeyRule creates the duplicate key rule.
func NewDuplicateKeyRule() *DuplicateKeyRule {
	return &DuplicateKeyRule{
		BaseRule: lint.NewBaseRule(
			"PP001",
			"duplicate-key",
			"Keys should be defined only once; later definitions silently override earlier ones",
			[]string{"keys"},
		),
	}
}

// CanFix returns true.
func (r *DuplicateKeyRule) CanFix() bool {
	return true
}

// Apply reports every definition after the first of each key. Each
// diagnostic's fix deletes the definition it overrides.
func (r *DuplicateKeyRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Tree == nil {
		return nil, nil
	}

	firstLine := make(map[string]int, ctx.Tree.Len())
	previous := make(map[string]*propast.Element, ctx.Tree.Len())

	var diags []lint.Diagnostic

	for i := range ctx.Tree.Elements {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		elem := &ctx.Tree.Elements[i]
		pos := ctx.Position(elem.Key.Span)

		line, seen := firstLine[elem.Key.Text]
		overridden := previous[elem.Key.Text]
		previous[elem.Key.Text] = elem
		if !seen {
			firstLine[elem.Key.Text] = pos.StartLine
			continue
		}

		dead := ctx.File.Lines.FullLines(overridden.Line)
		diags = append(diags, lint.NewDiagnostic(
			r.ID(),
			ctx.File,
			elem.Key.Span,
			fmt.Sprintf("duplicate key %q (first defined on line %d)", elem.Key.Text, line),
		).WithSuggestion("remove one of the definitions").
			WithFix(fix.Delete(dead.Start, dead.End)).
			Build())
	}

	return diags, nil
}
