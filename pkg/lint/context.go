package lint

import (
	"context"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/propast"
)

// RuleContext is what a rule sees of one file. A fresh context is built
// for every rule invocation, which is why it may carry a context.Context.
type RuleContext struct {
	Ctx context.Context

	// File is the snapshot being linted. Tree is File.Tree; it is nil when
	// the parse produced no tree.
	File *propast.FileSnapshot
	Tree *propast.Tree

	Config *config.Config

	// RuleConfig is the rule's own entry from Config.Rules, or nil.
	RuleConfig *config.RuleConfig
}

// NewRuleContext builds the context for one rule run over file.
func NewRuleContext(
	ctx context.Context,
	file *propast.FileSnapshot,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	rc := &RuleContext{Ctx: ctx, File: file, Config: cfg, RuleConfig: ruleCfg}
	if file != nil {
		rc.Tree = file.Tree
	}
	return rc
}

// Cancelled reports whether the run was cancelled. Rules that loop over
// every element check it between elements.
func (rc *RuleContext) Cancelled() bool {
	return rc.Ctx != nil && rc.Ctx.Err() != nil
}

// Position maps a byte span of the file to 1-based line/column positions.
func (rc *RuleContext) Position(span propast.Span) propast.SourcePosition {
	if rc.File == nil {
		return propast.SourcePosition{}
	}
	return rc.File.Lines.SpanPosition(span)
}

// Option returns the raw option value for key, or def.
func (rc *RuleContext) Option(key string, def any) any {
	if rc.RuleConfig == nil {
		return def
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return def
}

// OptionString returns a string option, or def when it is unset or has
// another type.
func (rc *RuleContext) OptionString(key, def string) string {
	return optionAs(rc, key, def)
}

// OptionBool returns a boolean option, or def.
func (rc *RuleContext) OptionBool(key string, def bool) bool {
	return optionAs(rc, key, def)
}

// OptionInt returns an integer option, or def. JSON numbers arrive as
// float64 and are truncated.
func (rc *RuleContext) OptionInt(key string, def int) int {
	if f, ok := rc.Option(key, nil).(float64); ok {
		return int(f)
	}
	return optionAs(rc, key, def)
}

func optionAs[T any](rc *RuleContext, key string, def T) T {
	if v, ok := rc.Option(key, def).(T); ok {
		return v
	}
	return def
}
