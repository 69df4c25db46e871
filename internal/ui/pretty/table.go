package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/runner"
)

const (
	tablePadding     = 2
	tableColumns     = 4 // FILE, LOC, MESSAGE, RULE
	minFileWidth     = 20
	minLocWidth      = 8
	minMessageWidth  = 35
	minRuleWidth     = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one diagnostic in the table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Rule     string
	Severity config.Severity
}

// DiagnosticToTableRow converts diag for display under path.
func DiagnosticToTableRow(path string, diag *lint.Diagnostic, ruleFormat config.RuleFormat) TableRow {
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
		Message:  diag.Message,
		Rule:     ruleFormat.Label(diag.RuleID, diag.RuleName),
		Severity: diag.Severity,
	}
}

// TableFormatter lays diagnostics out in fixed-width columns that fit the
// terminal, shrinking the message column first.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
	ruleFormat   config.RuleFormat

	// PathFunc maps absolute paths for display; nil keeps them.
	PathFunc func(string) string
}

// NewTableFormatter creates a formatter; termWidth <= 0 means 100 columns.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int, ruleFormat config.RuleFormat) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
		ruleFormat:   ruleFormat,
	}
}

type columnWidths struct {
	file, loc, message, rule int
}

func (w columnWidths) total() int {
	return w.file + w.loc + w.message + w.rule + tablePadding*tableColumns
}

// FormatTable renders every diagnostic of result, one group per file.
// It returns "" when there is nothing to show.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil {
		return ""
	}

	groups := t.collectRows(result)
	if len(groups) == 0 {
		return ""
	}

	widths := t.columnWidths(groups)

	var b strings.Builder
	b.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s",
		widths.file, "FILE", widths.loc, "LOC", widths.message, "MESSAGE", widths.rule, "RULE")) + "\n")
	b.WriteString(t.separator(widths, heavySeparator) + "\n")

	for i, group := range groups {
		if i > 0 {
			b.WriteString(t.separator(widths, lightSeparator) + "\n")
		}
		for _, row := range group {
			b.WriteString(t.formatRow(row, widths) + "\n")
		}
	}

	b.WriteString(t.separator(widths, heavySeparator) + "\n")
	if legend := t.legend(); legend != "" {
		b.WriteString(legend + "\n")
	}

	return b.String()
}

func (t *TableFormatter) collectRows(result *runner.Result) [][]TableRow {
	var groups [][]TableRow

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		path := file.Path
		if t.PathFunc != nil {
			path = t.PathFunc(path)
		}

		rows := make([]TableRow, 0, len(file.Result.Diagnostics))
		for i := range file.Result.Diagnostics {
			rows = append(rows, DiagnosticToTableRow(path, &file.Result.Diagnostics[i], t.ruleFormat))
		}
		groups = append(groups, rows)
	}

	return groups
}

func (t *TableFormatter) columnWidths(groups [][]TableRow) columnWidths {
	w := columnWidths{file: minFileWidth, loc: minLocWidth, message: minMessageWidth, rule: minRuleWidth}

	for _, group := range groups {
		for _, row := range group {
			w.file = max(w.file, lipgloss.Width(row.File))
			w.loc = max(w.loc, len(row.Location))
			w.message = max(w.message, lipgloss.Width(row.Message))
			w.rule = max(w.rule, len(row.Rule))
		}
	}

	if excess := w.total() - t.termWidth; excess > 0 {
		w.message = max(minMessageWidth, w.message-excess)
	}
	if excess := w.total() - t.termWidth; excess > 0 {
		w.file = max(minFileWidth, w.file-excess)
	}

	return w
}

func (t *TableFormatter) separator(w columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, w.total()))
}

func (t *TableFormatter) formatRow(row TableRow, w columnWidths) string {
	content := fmt.Sprintf(" %s  %-*s  %s  %-*s",
		padRight(truncateLeft(row.File, w.file), w.file),
		w.loc, row.Location,
		padRight(truncateRight(row.Message, w.message), w.message),
		w.rule, row.Rule,
	)

	return t.rowStyle(row.Severity).Render(content)
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) legend() string {
	if !t.colorEnabled {
		return ""
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s  %s",
		t.styles.TableErrorRow.Render("error"),
		t.styles.TableWarnRow.Render("warning"),
		t.styles.TableInfoRow.Render("info")))
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// truncateRight keeps the start of s, ending in "...".
func truncateRight(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}

// truncateLeft keeps the end of s (the file name), starting with "...".
func truncateLeft(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return string(runes[len(runes)-maxWidth:])
	}
	return "..." + string(runes[len(runes)-maxWidth+3:])
}
