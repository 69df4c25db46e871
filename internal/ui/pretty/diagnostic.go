package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
)

const (
	contextIndent = "        "
	tabSpaces     = "    "
)

// FormatDiagnostic renders one diagnostic:
//
//	path:line:col  severity  message  (rule)
//	        source line
//	        ^^^
//	    expected: a, b or c
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, sourceLine string, ruleFormat config.RuleFormat) string {
	var b strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(diag.FilePath), diag.StartLine, diag.StartColumn)
	rule := s.RuleID.Render("(" + ruleFormat.Label(diag.RuleID, diag.RuleName) + ")")

	fmt.Fprintf(&b, "  %s  %s  %s  %s\n", location, s.FormatSeverity(diag.Severity), s.Message.Render(diag.Message), rule)

	if sourceLine != "" {
		width := 1
		if diag.EndLine == diag.StartLine && diag.EndColumn > diag.StartColumn {
			width = diag.EndColumn - diag.StartColumn
		}
		b.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, width))
	}

	if len(diag.Expected) > 0 {
		b.WriteString("    " + s.Dim.Render("expected:") + " " + s.Expected.Render(strings.Join(diag.Expected, ", ")) + "\n")
	}
	if diag.Suggestion != "" {
		b.WriteString("    " + s.Dim.Render("suggestion:") + " " + s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return b.String()
}

// FormatSeverity renders a severity word in its color.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders line with carets under the byte columns
// [column, column+width). lipgloss expands tabs to four spaces, and the
// caret padding does the same.
func (s *Styles) FormatSourceContext(line string, column, width int) string {
	var b strings.Builder

	b.WriteString(contextIndent + s.SourceLine.Render(line) + "\n")

	if column < 1 {
		return b.String()
	}

	prefix := line[:min(column-1, len(line))]
	var pad strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			pad.WriteString(tabSpaces)
		} else {
			pad.WriteByte(' ')
		}
	}

	carets := 1
	if end := column - 1 + width; width > 1 && end <= len(line) {
		carets = max(1, utf8.RuneCountInString(line[column-1:end]))
	}

	b.WriteString(contextIndent + pad.String() + s.Caret.Render(strings.Repeat("^", carets)) + "\n")

	return b.String()
}

// FormatFileHeader renders a path with its issue count.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch issueCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 issue)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
