package lint

import (
	"cmp"
	"slices"

	"github.com/yaklabco/propslint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig

	// AutoFix is true when the rule can fix and its auto_fix is not off.
	AutoFix bool
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(registry, rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}

	if cfg == nil {
		return rr
	}

	// A configured default only applies to rules that keep the warning default.
	if cfg.SeverityDefault != "" && rr.Severity == config.SeverityWarning {
		if s := config.Severity(cfg.SeverityDefault); s.IsValid() {
			rr.Severity = s
		}
	}

	matches := func(key string) bool {
		id, _, ok := registry.Resolve(key)
		return ok && id == rule.ID()
	}

	if slices.ContainsFunc(cfg.EnableRules, matches) {
		rr.Enabled = true
	}
	if slices.ContainsFunc(cfg.DisableRules, matches) {
		rr.Enabled = false
	}

	if ruleCfg, ok := cfg.Rules[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = rr.AutoFix && *ruleCfg.AutoFix
		}
	}

	return rr
}

// SortDiagnostics orders diagnostics by file, position and rule ID.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.FilePath, b.FilePath),
			cmp.Compare(a.StartLine, b.StartLine),
			cmp.Compare(a.StartColumn, b.StartColumn),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
}
