package rules

import (
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewSyntaxRule())                 // PP000
	registry.Register(NewDuplicateKeyRule())           // PP001
	registry.Register(NewContinuationWhitespaceRule()) // PP002
	registry.Register(NewSeparatorStyleRule())         // PP003
	registry.Register(NewEmptyValueRule())             // PP004
}

// RegisterAliases registers short alternate names for rules.
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("duplicates", "PP001")
	registry.RegisterAlias("trailing-backslash-space", "PP002")
	registry.RegisterAlias("separator", "PP003")
}

// RuleInfos describes the rules in registry for config templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))

	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
		})
	}

	return infos
}

//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)

	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
