package reporter

import (
	"context"

	"github.com/yaklabco/propslint/pkg/analysis"
)

// Renderer draws a precomputed analysis.Report.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
