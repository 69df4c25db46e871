package rules

import "github.com/yaklabco/propslint/pkg/config"

// Pack is a named group of rule defaults. Packs are the starting points
// offered by `propslint init --pack`.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "core", "strict").
	Name string

	// Description explains the purpose of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// CorePack mirrors the built-in defaults.
func CorePack() Pack {
	return Pack{
		Name:        "core",
		Description: "Built-in defaults: syntax errors, duplicate keys and continuation mistakes",
		Rules: map[string]config.RuleConfig{
			"PP000": enabled("error"),   // syntax
			"PP001": enabled("warning"), // duplicate-key
			"PP002": enabled("warning"), // continuation-whitespace
			"PP003": enabled("warning"), // separator-style
		},
	}
}

// StrictPack turns every rule into an error and pins '=' as the separator.
func StrictPack() Pack {
	separator := enabled("error")
	separator.Options = map[string]any{"style": SeparatorEquals}

	return Pack{
		Name:        "strict",
		Description: "Every rule as an error, '=' separators and no empty values",
		Rules: map[string]config.RuleConfig{
			"PP000": enabled("error"),
			"PP001": enabled("error"),
			"PP002": enabled("error"),
			"PP003": separator,
			"PP004": enabled("error"),
		},
	}
}

// RelaxedPack keeps syntax errors and demotes the rest to info.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Syntax errors only fail the run; style findings are informational",
		Rules: map[string]config.RuleConfig{
			"PP000": enabled("error"),
			"PP001": enabled("info"),
			"PP002": enabled("info"),
			"PP003": disabled(),
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		CorePack(),
		StrictPack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// Apply copies the pack's rule settings into cfg.
func (p Pack) Apply(cfg *config.Config) {
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig, len(p.Rules))
	}
	for id, rc := range p.Rules {
		cfg.Rules[id] = rc
	}
}

func enabled(sev string) config.RuleConfig {
	on := true
	return config.RuleConfig{
		Enabled:  &on,
		Severity: &sev,
	}
}

func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
