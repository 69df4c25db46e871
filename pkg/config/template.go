package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every rule; otherwise a short commented template is written.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeRules limits the documented rules. Empty means all.
	IncludeRules []string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider returns rule information. It decouples config from the
// lint package, which would otherwise be an import cycle.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateJSON(opts)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Default severity for rules without one: error, warning, or info
severity_default: warning

# Which syntax error is reported first: furthest or first
strategy: furthest

# Extensions collected when a directory is linted
extensions:
  - .properties

# File patterns to ignore (glob patterns)
ignore:
  - "target/**"
  - "build/**"

# Backups written before --fix rewrites a file: sidecar or none
backups:
  mode: sidecar
`)

	if !opts.Full {
		buf.WriteString(`
# Rule-specific configuration
# rules:
#   PP003:
#     options:
#       style: equals
#   PP004:
#     enabled: true
#   PP001:
#     auto_fix: false
`)
		return buf.Bytes(), nil
	}

	buf.WriteString("\nrules:\n")
	for _, rule := range selectRules(opts.IncludeRules) {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "  # Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		if rule.CanFix {
			buf.WriteString("  # Fixable with --fix\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes(), nil
}

func selectRules(include []string) []RuleInfo {
	var rules []RuleInfo
	if DefaultRuleInfoProvider != nil {
		rules = DefaultRuleInfoProvider()
	}

	if len(include) > 0 {
		rules = slices.DeleteFunc(rules, func(r RuleInfo) bool {
			return !slices.Contains(include, r.ID)
		})
	}

	slices.SortFunc(rules, func(a, b RuleInfo) int {
		return strings.Compare(a.ID, b.ID)
	})

	return rules
}

func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

func templateJSON(opts TemplateOptions) ([]byte, error) {
	cfg := map[string]any{
		"severity_default": string(SeverityWarning),
		"strategy":         "furthest",
		"extensions":       DefaultExtensions(),
		"ignore":           []string{"target/**", "build/**"},
		"backups":          map[string]any{"mode": BackupModeSidecar},
	}

	rules := make(map[string]any)
	if opts.Full {
		for _, r := range selectRules(opts.IncludeRules) {
			rules[r.ID] = map[string]any{
				"enabled":  r.Enabled,
				"severity": string(r.Severity),
			}
		}
	}
	cfg["rules"] = rules

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# propslint configuration
# See: https://github.com/yaklabco/propslint`
}
