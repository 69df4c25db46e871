package cfgprops

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/yaklabco/propslint/pkg/parser/diag"
	"github.com/yaklabco/propslint/pkg/propast"
)

// ErrStaleResult is returned by Result accessors once the parser that
// produced the result has moved on to a newer generation.
var ErrStaleResult = errors.New("parse result is stale")

// StaleResultError describes a stale access.
type StaleResultError struct {
	// Generation is the generation the result belongs to.
	Generation uint64

	// Current is the parser's generation at the time of access.
	Current uint64
}

func (e *StaleResultError) Error() string {
	if e.Generation == e.Current {
		return fmt.Sprintf("parse result of generation %d was invalidated", e.Generation)
	}

	return fmt.Sprintf("parse result of generation %d superseded by generation %d", e.Generation, e.Current)
}

// Is makes errors.Is(err, ErrStaleResult) hold.
func (e *StaleResultError) Is(target error) bool {
	return target == ErrStaleResult
}

// SyntaxError reports that the input was rejected.
type SyntaxError struct {
	// Diagnostic is the primary diagnostic.
	Diagnostic diag.Diagnostic

	// Count is the total number of diagnostics.
	Count int
}

func (e *SyntaxError) Error() string {
	if e.Count > 1 {
		return fmt.Sprintf("syntax error at %s (and %d more)", e.Diagnostic, e.Count-1)
	}

	return "syntax error at " + e.Diagnostic.String()
}

// Result is the outcome of one Parse call.
type Result struct {
	parser      *Parser
	generation  uint64
	invalidated atomic.Bool

	source  string
	lines   propast.LineIndex
	matched bool

	tree        *propast.Tree
	flat        *propast.OrderedMap
	diagnostics []diag.Diagnostic
	primary     *diag.Diagnostic
}

// Generation returns the parser generation the result belongs to.
func (r *Result) Generation() uint64 {
	return r.generation
}

// Invalidate makes every later access fail with ErrStaleResult.
func (r *Result) Invalidate() {
	r.invalidated.Store(true)
}

// Valid returns nil while the result is current.
func (r *Result) Valid() error {
	current := r.parser.Generation()
	if r.invalidated.Load() || current != r.generation {
		return &StaleResultError{Generation: r.generation, Current: current}
	}

	return nil
}

// Matched reports whether the whole input was accepted.
func (r *Result) Matched() (bool, error) {
	if err := r.Valid(); err != nil {
		return false, err
	}

	return r.matched, nil
}

// Tree returns the parse tree. On a failed parse it holds the elements
// recognised before the failure.
func (r *Result) Tree() (*propast.Tree, error) {
	if err := r.Valid(); err != nil {
		return nil, err
	}

	return r.tree, nil
}

// Flattened returns the key to value map derived from the tree. After a
// failed parse it holds the elements before the failure; the element that
// contains the failure is left out.
func (r *Result) Flattened() (*propast.OrderedMap, error) {
	if err := r.Valid(); err != nil {
		return nil, err
	}

	return r.flat, nil
}

// Diagnostics returns every diagnostic in report order. It is empty when
// the input matched.
func (r *Result) Diagnostics() ([]diag.Diagnostic, error) {
	if err := r.Valid(); err != nil {
		return nil, err
	}

	return r.diagnostics, nil
}

// Primary returns the diagnostic chosen by the parser's strategy.
func (r *Result) Primary() (diag.Diagnostic, bool, error) {
	if err := r.Valid(); err != nil {
		return diag.Diagnostic{}, false, err
	}

	if r.primary == nil {
		return diag.Diagnostic{}, false, nil
	}

	return *r.primary, true, nil
}

// Err returns a *SyntaxError when the input was rejected, the stale error
// when the result is no longer current, and nil otherwise.
func (r *Result) Err() error {
	if err := r.Valid(); err != nil {
		return err
	}

	if r.matched {
		return nil
	}

	se := &SyntaxError{Count: len(r.diagnostics)}
	if r.primary != nil {
		se.Diagnostic = *r.primary
	}

	return se
}

// Lines returns the line index of the parsed text.
func (r *Result) Lines() propast.LineIndex {
	return r.lines
}

// Source returns the parsed text.
func (r *Result) Source() string {
	return r.source
}

// Snapshot copies the result into a FileSnapshot for path.
func (r *Result) Snapshot(path string) (*propast.FileSnapshot, error) {
	if err := r.Valid(); err != nil {
		return nil, err
	}

	return &propast.FileSnapshot{
		Path:        path,
		Content:     []byte(r.source),
		Lines:       r.lines,
		Tree:        r.tree,
		Flat:        r.flat,
		Diagnostics: r.diagnostics,
		Matched:     r.matched,
	}, nil
}
