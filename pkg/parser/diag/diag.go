// Package diag collects parse diagnostics and picks the one to present.
package diag

import (
	"fmt"
	"strings"
)

// Severity ranks a diagnostic.
type Severity uint8

const (
	// SeverityError marks input that cannot be accepted.
	SeverityError Severity = iota

	// SeverityWarning marks accepted input that is probably wrong.
	SeverityWarning

	// SeverityInfo is informational.
	SeverityInfo
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// Strategy selects the primary diagnostic.
type Strategy uint8

const (
	// StrategyFurthest prefers the diagnostic reported at the largest offset.
	StrategyFurthest Strategy = iota

	// StrategyFirst prefers the diagnostic reported first.
	StrategyFirst
)

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	if s == StrategyFirst {
		return "first"
	}

	return "furthest"
}

// ParseStrategy converts a configuration name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "furthest":
		return StrategyFurthest, nil
	case "first":
		return StrategyFirst, nil
	default:
		return StrategyFurthest, fmt.Errorf("unknown diagnostic strategy %q (want furthest or first)", name)
	}
}

// Diagnostic is one problem found in the input.
type Diagnostic struct {
	// Offset is the 0-based byte offset of the problem.
	Offset int

	// Line and Column are 1-based; Column counts bytes.
	Line   int
	Column int

	Severity Severity
	Message  string

	// Expected lists the constructs that would have been accepted here.
	Expected []string

	// Rule names the grammar rule that was being matched, if known.
	Rule string
}

// String renders the diagnostic as "line:col: severity: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

// Locator converts byte offsets to 1-based line and column numbers.
type Locator interface {
	LineAt(offset int) (line, col int)
}

// Collector accumulates diagnostics for one parse.
// A Collector is not safe for concurrent use.
type Collector struct {
	locator  Locator
	strategy Strategy
	items    []Diagnostic
	seen     map[string]struct{}
}

// NewCollector creates a collector that positions reports with locator.
func NewCollector(locator Locator, strategy Strategy) *Collector {
	return &Collector{
		locator:  locator,
		strategy: strategy,
		seen:     make(map[string]struct{}),
	}
}

// Report records a diagnostic at offset. Identical reports at the same
// offset are dropped.
func (c *Collector) Report(offset int, severity Severity, message string, expected ...string) {
	c.ReportRule(offset, severity, "", message, expected...)
}

// ReportRule is Report with the name of the grammar rule involved.
func (c *Collector) ReportRule(offset int, severity Severity, rule, message string, expected ...string) {
	key := fmt.Sprintf("%d\x00%d\x00%s", offset, severity, message)
	if _, dup := c.seen[key]; dup {
		return
	}
	c.seen[key] = struct{}{}

	d := Diagnostic{
		Offset:   offset,
		Severity: severity,
		Message:  message,
		Rule:     rule,
	}
	if len(expected) > 0 {
		d.Expected = append([]string(nil), expected...)
	}
	if c.locator != nil {
		d.Line, d.Column = c.locator.LineAt(offset)
	}

	c.items = append(c.items, d)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool {
	for i := range c.items {
		if c.items[i].Severity == SeverityError {
			return true
		}
	}

	return false
}

// Len returns the number of diagnostics.
func (c *Collector) Len() int {
	return len(c.items)
}

// Diagnostics returns a copy of every diagnostic in report order.
func (c *Collector) Diagnostics() []Diagnostic {
	if len(c.items) == 0 {
		return nil
	}

	out := make([]Diagnostic, len(c.items))
	copy(out, c.items)

	return out
}

// Primary returns the diagnostic to present under the collector's strategy.
// Errors are preferred over lesser severities.
func (c *Collector) Primary() (Diagnostic, bool) {
	best := -1

	for i := range c.items {
		if best < 0 || c.better(c.items[i], c.items[best]) {
			best = i
		}
	}

	if best < 0 {
		return Diagnostic{}, false
	}

	return c.items[best], true
}

func (c *Collector) better(candidate, current Diagnostic) bool {
	if candidate.Severity != current.Severity {
		return candidate.Severity < current.Severity
	}

	if c.strategy == StrategyFurthest {
		return candidate.Offset > current.Offset
	}

	return false
}

// FormatExpected joins names as "a, b or c".
func FormatExpected(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
}
