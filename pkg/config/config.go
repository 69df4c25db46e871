// Package config defines core configuration types for propslint.
// These types are pure data structures with no dependency on a config loader.
package config

// Severity represents the severity level of a lint diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Severity *string        `mapstructure:"severity" yaml:"severity,omitempty" json:"severity,omitempty"`
	AutoFix  *bool          `mapstructure:"auto_fix" yaml:"auto_fix,omitempty" json:"auto_fix,omitempty"`
	Options  map[string]any `mapstructure:"options" yaml:"options,omitempty" json:"options,omitempty"`
}

// Backup modes.
const (
	BackupModeSidecar = "sidecar" // app.properties.propslint.bak next to the file
	BackupModeNone    = "none"
)

// BackupsConfig controls the copies taken before --fix rewrites a file.
// A nil Enabled means enabled.
type BackupsConfig struct {
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Mode    string `mapstructure:"mode" yaml:"mode,omitempty" json:"mode,omitempty"`
}

// Active reports whether backups should be written.
func (b BackupsConfig) Active() bool {
	return (b.Enabled == nil || *b.Enabled) && b.Mode != BackupModeNone
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
	FormatDiff    OutputFormat = "diff"
)

// IsValid reports whether f is a supported output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary, FormatDiff:
		return true
	default:
		return false
	}
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "duplicate-key"
	RuleFormatID       RuleFormat = "id"       // "PP001"
	RuleFormatCombined RuleFormat = "combined" // "PP001/duplicate-key"
)

// DefaultExtensions are the file extensions linted when none are configured.
func DefaultExtensions() []string {
	return []string{".properties"}
}

// Config is the root configuration structure for propslint.
type Config struct {
	// SeverityDefault is the default severity for rules that don't specify one.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default" json:"severity_default"`

	// Strategy selects the primary syntax diagnostic: "furthest" or "first".
	Strategy string `mapstructure:"strategy" yaml:"strategy" json:"strategy"`

	// Extensions lists the file extensions collected from directories.
	Extensions []string `mapstructure:"extensions" yaml:"extensions" json:"extensions"`

	// Rules contains per-rule configuration keyed by rule ID.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules" json:"rules"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore" json:"ignore"`

	// Backups configures backups taken when fixing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups,omitempty" json:"backups,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-" json:"-"`

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat RuleFormat `mapstructure:"-" yaml:"-" json:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-" json:"-"`

	// EnableRules contains rule IDs to explicitly enable.
	EnableRules []string `mapstructure:"-" yaml:"-" json:"-"`

	// DisableRules contains rule IDs to explicitly disable.
	DisableRules []string `mapstructure:"-" yaml:"-" json:"-"`

	// Strict makes warnings fail the run.
	Strict bool `mapstructure:"-" yaml:"-" json:"-"`

	// NoContext hides source lines in text output.
	NoContext bool `mapstructure:"-" yaml:"-" json:"-"`

	// Color is "auto", "always" or "never".
	Color string `mapstructure:"-" yaml:"-" json:"-"`

	// Fix rewrites files with the edits of fixable diagnostics.
	Fix bool `mapstructure:"-" yaml:"-" json:"-"`

	// DryRun computes fixes and reports them as a diff without writing.
	DryRun bool `mapstructure:"-" yaml:"-" json:"-"`

	// NoBackups overrides Backups for one run.
	NoBackups bool `mapstructure:"-" yaml:"-" json:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SeverityDefault: string(SeverityWarning),
		Strategy:        "furthest",
		Extensions:      DefaultExtensions(),
		Rules:           make(map[string]RuleConfig),
		Ignore:          nil,
		Backups:         BackupsConfig{Mode: BackupModeSidecar},
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
		Jobs:            0, // 0 means use GOMAXPROCS
		Color:           "auto",
	}
}
