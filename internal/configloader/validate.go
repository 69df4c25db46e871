package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/parser/diag"
)

// ValidationError is one configuration problem.
type ValidationError struct {
	// Field is the path to the invalid field, e.g. "rules.PP001.severity".
	Field string

	Value any

	Message string

	// FilePath and Line locate the problem when known.
	FilePath string
	Line     int
}

func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult holds errors, which stop loading, and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns errors then warnings, each with its level prefix.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks cfg against the built-in rule registry.
func Validate(cfg *config.Config) *ValidationResult {
	return validateWith(cfg, lint.DefaultRegistry)
}

func validateWith(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.SeverityDefault != "" && !IsValidSeverity(cfg.SeverityDefault) {
		result.addError("severity_default", cfg.SeverityDefault,
			"invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault)
	}

	if _, err := diag.ParseStrategy(cfg.Strategy); err != nil {
		result.addError("strategy", cfg.Strategy, "%v", err)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: text, table, json, sarif, summary, diff", cfg.Format)
	}

	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.addError("rule_format", cfg.RuleFormat,
			"invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat)
	}

	if cfg.Color != "" && !knownColors[cfg.Color] {
		result.addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	switch cfg.Backups.Mode {
	case "", config.BackupModeSidecar, config.BackupModeNone:
	default:
		result.addError("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	for ruleID, ruleCfg := range cfg.Rules {
		if _, exists := registry.Get(ruleID); !exists {
			result.addWarning("rules."+ruleID, ruleID, "unknown rule %q; it will be ignored", ruleID)
		}

		if ruleCfg.Severity != nil && !IsValidSeverity(*ruleCfg.Severity) {
			result.addError("rules."+ruleID+".severity", *ruleCfg.Severity,
				"invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity)
		}
	}

	for _, list := range [][]string{cfg.EnableRules, cfg.DisableRules} {
		for _, key := range list {
			if _, _, found := registry.Resolve(key); !found {
				result.addWarning("rules", key, "unknown rule %q; it will be ignored", key)
			}
		}
	}

	return result
}

// ValidateWithFile validates cfg and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

func IsValidSeverity(s string) bool {
	return config.Severity(s).IsValid()
}

func IsValidFormat(f config.OutputFormat) bool {
	return f.IsValid()
}
