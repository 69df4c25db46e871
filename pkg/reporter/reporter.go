// Package reporter writes lint results as text, tables, JSON, SARIF, a
// per-rule summary, or the unified diff of a fix dry run.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/propslint/pkg/analysis"
	"github.com/yaklabco/propslint/pkg/runner"
)

var _ Reporter = (*reporterFacade)(nil)

// Reporter formats and writes lint results.
type Reporter interface {
	// Report writes result and returns the number of issues reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade adapts a Renderer to Reporter by running analysis first.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRendererFacade(renderer Renderer, opts Options) *reporterFacade {
	analysisOpts := analysis.DefaultOptions()
	analysisOpts.IncludeDiagnostics = false
	analysisOpts.RuleFormat = opts.RuleFormat
	analysisOpts.WorkingDir = opts.WorkingDir

	return &reporterFacade{renderer: renderer, analysisOpts: analysisOpts}
}

// New creates the Reporter for opts.Format.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath applies Options.WorkingDir.
func (o Options) displayPath(path string) string {
	return analysis.RelativePath(path, o.WorkingDir)
}
