package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/propslint/internal/ui/pretty"
	"github.com/yaklabco/propslint/pkg/propast"
	"github.com/yaklabco/propslint/pkg/runner"
)

// TextReporter writes styled, human-readable diagnostics.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := 0
	for _, file := range result.Files {
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := r.opts.displayPath(file.Path)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		return 0
	}

	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}

	diags := file.Result.Diagnostics

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diags)))
	}

	for i := range diags {
		diag := diags[i]
		diag.FilePath = path

		var sourceLine string
		if r.opts.ShowContext {
			sourceLine = sourceLineAt(file.Result.Snapshot, diag.StartLine)
		}

		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, sourceLine, r.opts.RuleFormat))
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.bw)
	}

	return len(diags)
}

// sourceLineAt returns line lineNum of the snapshot without its terminator.
func sourceLineAt(snapshot *propast.FileSnapshot, lineNum int) string {
	if snapshot == nil {
		return ""
	}
	return string(snapshot.LineContent(lineNum))
}
