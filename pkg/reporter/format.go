package reporter

import "fmt"

// Format is an output format.
type Format string

const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSARIF   Format = "sarif"
	FormatSummary Format = "summary"
	FormatDiff    Format = "diff"
)

// ParseFormat parses a format name; "" means text.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatText, nil
	}
	if f := Format(formatStr); f.IsValid() {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q; valid formats: text, table, json, sarif, summary, diff", formatStr)
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatSARIF, FormatSummary, FormatDiff:
		return true
	default:
		return false
	}
}
