package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/propslint/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer receives the report. Defaults to os.Stdout.
	Writer io.Writer

	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the source line and carets under text diagnostics.
	ShowContext bool

	// ShowSummary prints the one-line totals after text and table output.
	ShowSummary bool

	// GroupByFile prints a header per file in text output.
	GroupByFile bool

	// Compact disables JSON indentation.
	Compact bool

	RuleFormat config.RuleFormat

	// WorkingDir makes displayed paths relative when set.
	WorkingDir string

	// ToolVersion is written into SARIF output.
	ToolVersion string

	// Rules describes the registered rules for SARIF tool metadata.
	Rules []config.RuleInfo
}

// DefaultOptions returns the options used by the lint command.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		GroupByFile: true,
		RuleFormat:  config.RuleFormatName,
		ToolVersion: "dev",
	}
}
