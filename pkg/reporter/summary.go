package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/propslint/internal/ui/pretty"
	"github.com/yaklabco/propslint/pkg/analysis"
)

// Both summary tables share one width.
const (
	tableWidth        = 80
	ruleColWidth      = 30
	fileColWidth      = 50
	numColWidth       = 7
	warnColWidth      = 9
	maxRuleNameLength = 28
	maxFilePathLength = 40
)

// padRight must run before styling; ANSI codes would skew len.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer prints per-rule and per-file tables followed by totals.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasIssues() {
		fmt.Fprintln(r.out, r.styles.Success.Render(
			fmt.Sprintf("No issues found (%d %s checked)", report.Totals.Files, plural(report.Totals.Files, "file", "files"))))
		r.renderProblems(report.Totals)
		return nil
	}

	r.renderRuleTable(report.ByRule)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)
	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)
	r.renderProblems(report.Totals)

	return nil
}

func (r *SummaryRenderer) separator() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("-", tableWidth)))
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Rules"))
	r.separator()
	fmt.Fprintf(r.out, "%s %s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Rule", ruleColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
		r.styles.TableHeader.Render(padLeft("Files", numColWidth)),
	)
	r.separator()

	for _, rule := range rules {
		label := rule.RuleID
		if rule.RuleName != "" {
			label = rule.RuleID + " " + rule.RuleName
		}
		if len(label) > maxRuleNameLength {
			label = label[:maxRuleNameLength] + "…"
		}

		fmt.Fprintf(r.out, "%s %s %s %s %s\n",
			r.rowStyle(rule.Errors, rule.Warnings, padRight(label, ruleColWidth)),
			padLeft(strconv.Itoa(rule.Issues), numColWidth),
			padLeft(strconv.Itoa(rule.Errors), numColWidth),
			padLeft(strconv.Itoa(rule.Warnings), warnColWidth),
			padLeft(strconv.Itoa(len(rule.Files)), numColWidth),
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files"))
	r.separator()
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Errors", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Warnings", warnColWidth)),
	)
	r.separator()

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}
		if !file.Matched {
			path += " (syntax)"
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			r.rowStyle(file.Errors, file.Warnings, padRight(path, fileColWidth)),
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Errors), numColWidth),
			padLeft(strconv.Itoa(file.Warnings), warnColWidth),
		)
	}
}

func (r *SummaryRenderer) rowStyle(errors, warnings int, text string) string {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(text)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(text)
	default:
		return r.styles.TableInfoRow.Render(text)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issues := fmt.Sprintf("%d %s", totals.Issues, plural(totals.Issues, "issue", "issues"))

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts,
			r.styles.Error.Render(fmt.Sprintf("%d %s", totals.Errors, plural(totals.Errors, "error", "errors"))))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts,
			r.styles.Warning.Render(fmt.Sprintf("%d %s", totals.Warnings, plural(totals.Warnings, "warning", "warnings"))))
	}
	if totals.Infos > 0 {
		severityParts = append(severityParts,
			r.styles.Info.Render(fmt.Sprintf("%d %s", totals.Infos, plural(totals.Infos, "info", "infos"))))
	}
	if len(severityParts) > 0 {
		issues += " (" + strings.Join(severityParts, ", ") + ")"
	}

	fmt.Fprintf(r.out, "%s%s in %d %s\n",
		r.styles.Bold.Render("Total: "),
		issues,
		totals.FilesWithIssues,
		plural(totals.FilesWithIssues, "file", "files"),
	)
}

func (r *SummaryRenderer) renderProblems(totals analysis.Totals) {
	if totals.SyntaxErrors > 0 {
		fmt.Fprintf(r.out, "%d %s with syntax errors\n",
			totals.SyntaxErrors, plural(totals.SyntaxErrors, "file", "files"))
	}
	if totals.FilesErrored > 0 {
		fmt.Fprintf(r.out, "%d %s could not be read\n",
			totals.FilesErrored, plural(totals.FilesErrored, "file", "files"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
