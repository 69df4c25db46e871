package lint

import (
	"context"

	"github.com/yaklabco/propslint/pkg/propast"
)

// Parser parses properties content into a FileSnapshot.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw bytes into a FileSnapshot. The path is used for
	// diagnostics only. A syntax error is reported through the snapshot's
	// Matched and Diagnostics fields; the error return is reserved for
	// cancellation and internal failures.
	Parse(ctx context.Context, path string, content []byte) (*propast.FileSnapshot, error)
}
