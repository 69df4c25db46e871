package cli

import (
	"errors"

	"github.com/yaklabco/propslint/internal/configloader"
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/runner"
)

// Process exit codes.
const (
	ExitSuccess = 0

	// ExitLintErrors means at least one error diagnostic was reported.
	ExitLintErrors = 1

	// ExitLintWarnings means warnings were reported under --strict.
	ExitLintWarnings = 2

	ExitInvalidUsage  = 64
	ExitConfigError   = 65
	ExitInternalError = 70

	// ExitIOError means some files could not be read.
	ExitIOError = 74
)

// ErrLintIssuesFound signals a failing lint run; the report has already
// been written, so it is not logged.
var ErrLintIssuesFound = errors.New("lint issues found")

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// ExitCodeFromResult maps a lint run to an exit code. Error diagnostics
// win over unreadable files, which win over strict-mode warnings.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch {
	case result.Stats.DiagnosticsBySeverity[config.SeverityError] > 0:
		return ExitLintErrors
	case result.Stats.FilesErrored > 0:
		return ExitIOError
	case strict && result.Stats.DiagnosticsBySeverity[config.SeverityWarning] > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// ExitCode returns the process exit code for an error from Execute.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var coded *exitError
	if errors.As(err, &coded) {
		return coded.code
	}

	var verr *configloader.ValidationError
	if errors.As(err, &verr) {
		return ExitConfigError
	}

	return ExitLintErrors
}
