package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/runner"
)

const summaryDividerWidth = 40

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// FormatSummaryOneLine renders stats as one line, for example
// "3 issues (1 error, 2 warnings) in 2 files, 1 with syntax errors".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	fixed := ""
	if stats.FilesFixed > 0 {
		fixed = ", " + s.Success.Render(plural(stats.FilesFixed, "file", "files")+" fixed")
	}

	if stats.DiagnosticsTotal == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("No issues found") +
			s.Dim.Render(" ("+plural(stats.FilesProcessed, "file", "files")+" checked)") + fixed + "\n"
	}

	var severities []string
	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		severities = append(severities, s.Error.Render(plural(n, "error", "errors")))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		severities = append(severities, s.Warning.Render(plural(n, "warning", "warnings")))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		severities = append(severities, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	head := plural(stats.DiagnosticsTotal, "issue", "issues")
	if len(severities) > 0 {
		head += " (" + strings.Join(severities, ", ") + ")"
	}

	parts := []string{head + " in " + plural(stats.FilesWithIssues, "file", "files")}

	if stats.FilesWithSyntaxErrors > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d with syntax errors", stats.FilesWithSyntaxErrors)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(plural(stats.FilesErrored, "file", "files")+" unreadable"))
	}

	return strings.Join(parts, ", ") + fixed + "\n"
}

// FormatSummary renders stats as a block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	row := func(label string, value string) {
		fmt.Fprintf(&b, "  %-19s%s\n", label, value)
	}

	b.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked:", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row("Files with issues:", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesWithSyntaxErrors > 0 {
		row("Syntax errors:", s.Failure.Render(strconv.Itoa(stats.FilesWithSyntaxErrors)))
	}
	if stats.FilesErrored > 0 {
		row("Unreadable:", s.Failure.Render(strconv.Itoa(stats.FilesErrored)))
	}

	b.WriteString("\n")
	row("Total issues:", s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)))

	errs := stats.DiagnosticsBySeverity[config.SeverityError]
	warns := stats.DiagnosticsBySeverity[config.SeverityWarning]
	if errs > 0 {
		row("  Errors:", s.Error.Render(strconv.Itoa(errs)))
	}
	if warns > 0 {
		row("  Warnings:", s.Warning.Render(strconv.Itoa(warns)))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		row("  Info:", s.Info.Render(strconv.Itoa(n)))
	}

	b.WriteString("\n")
	switch {
	case errs > 0 || stats.FilesErrored > 0:
		b.WriteString(s.Failure.Render("Lint failed with errors"))
	case warns > 0:
		b.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Lint passed"))
	}
	b.WriteString("\n")

	return b.String()
}
