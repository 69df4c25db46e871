package analysis

import "github.com/yaklabco/propslint/pkg/config"

// SortField orders the per-file and per-rule views.
type SortField string

const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"
	SortBySeverity SortField = "severity"
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByRule      bool

	SortBy SortField

	// SortDesc only affects SortByCount.
	SortDesc bool

	RuleFormat config.RuleFormat

	// WorkingDir makes paths relative when set.
	WorkingDir string
}

// DefaultOptions includes every view, busiest first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatName,
	}
}
