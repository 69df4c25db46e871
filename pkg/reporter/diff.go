package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/propslint/internal/ui/pretty"
	"github.com/yaklabco/propslint/pkg/fix"
	"github.com/yaklabco/propslint/pkg/runner"
)

// DiffReporter writes the fixes of a dry run as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int

	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
		case file.Result != nil && file.Result.Skipped:
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
				r.styles.Warning.Render(file.Result.Summary()))
		case file.Result != nil && file.Result.Diff.HasChanges():
			d := file.Result.Diff
			files++
			additions += d.Additions
			deletions += d.Deletions
			r.writeDiff(d)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.summary(files, additions, deletions))
	}

	return files, nil
}

func (r *DiffReporter) writeDiff(d *fix.Diff) {
	path := filepath.ToSlash(r.opts.displayPath(d.Path))
	shown := &fix.Diff{Path: path, Hunks: d.Hunks}

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(shown.GitHeader()))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, h := range d.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(h.Header()))
		for _, line := range h.Lines {
			text := line.Kind.Prefix() + line.Content
			switch line.Kind {
			case fix.LineAdd:
				text = r.styles.DiffAdd.Render(text)
			case fix.LineRemove:
				text = r.styles.DiffRemove.Render(text)
			default:
				text = r.styles.DiffContext.Render(text)
			}
			fmt.Fprintln(r.bw, text)
		}
	}

	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) summary(files, additions, deletions int) string {
	if files == 0 {
		return r.styles.Success.Render("No fixes to apply.")
	}

	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}

	return strings.Join(parts, ", ")
}
