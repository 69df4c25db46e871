// Package cfgprops parses Java-style .properties text into a tree of
// elements, a flattened key to value map and positioned diagnostics.
//
// A Parser is reusable but not safe for concurrent use. Every call to Parse
// starts a new generation: results handed out by earlier calls become stale
// and their accessors return ErrStaleResult.
package cfgprops

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"unicode/utf8"

	"github.com/yaklabco/propslint/pkg/parser/diag"
	"github.com/yaklabco/propslint/pkg/parser/peg"
	"github.com/yaklabco/propslint/pkg/propast"
)

// State is the lifecycle stage of a Parser.
type State uint32

const (
	// StateReady means no parse is in progress and no result is current.
	StateReady State = iota

	// StateScanning means a parse is running.
	StateScanning

	// StateMatched means the current result accepted the whole input.
	StateMatched

	// StateFailed means the current result rejected the input.
	StateFailed
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateScanning:
		return "scanning"
	case StateMatched:
		return "matched"
	case StateFailed:
		return "failed"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Options configure a Parser.
type Options struct {
	// Strategy selects the primary diagnostic of a failed parse.
	Strategy diag.Strategy
}

// Parser recognises properties text.
type Parser struct {
	opts       Options
	generation atomic.Uint64
	state      atomic.Uint32
}

// New creates a parser.
func New(opts Options) *Parser {
	return &Parser{opts: opts}
}

// State returns the parser's lifecycle stage.
func (p *Parser) State() State {
	return State(p.state.Load())
}

// Generation returns the number of parses and resets performed so far.
func (p *Parser) Generation() uint64 {
	return p.generation.Load()
}

// Reset invalidates every outstanding result and returns the parser to
// StateReady.
func (p *Parser) Reset() {
	p.generation.Add(1)
	p.state.Store(uint32(StateReady))
}

// Parse recognises src. Syntax problems are reported through the result's
// diagnostics, not as an error; the error is non-nil only when ctx is done.
func (p *Parser) Parse(ctx context.Context, src string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	gen := p.generation.Add(1)
	p.state.Store(uint32(StateScanning))

	lines := propast.BuildLines(src)
	scan := peg.NewContext(src)
	match := scan.Result(scan.Eval(rules.body) && scan.Eval(rules.end))

	res := &Result{
		parser:     p,
		generation: gen,
		source:     src,
		lines:      lines,
		matched:    match.Matched,
	}

	failAt := -1
	collector := diag.NewCollector(lines, p.opts.Strategy)
	if !match.Matched {
		reportFailure(collector, src, match)
		failAt = match.Furthest
	}

	res.tree = buildTree(src, lines, match.Events, failAt)

	res.flat = propast.Flatten(res.tree)
	res.diagnostics = collector.Diagnostics()
	if primary, ok := collector.Primary(); ok {
		res.primary = &primary
	}

	if match.Matched {
		p.state.Store(uint32(StateMatched))
	} else {
		p.state.Store(uint32(StateFailed))
	}

	return res, nil
}

// ParseString is a convenience wrapper that parses src with a fresh parser
// using default options.
func ParseString(src string) *Result {
	res, _ := New(Options{}).Parse(context.Background(), src)
	return res
}

func reportFailure(c *diag.Collector, src string, match peg.Result) {
	for _, hard := range match.Hard {
		c.ReportRule(hard.Offset, diag.SeverityError, hard.Rule, hard.Message, hard.Expected...)
	}

	if match.Furthest < 0 {
		c.Report(match.End, diag.SeverityError, "syntax error")
		return
	}

	rule := ""
	if n := len(match.Attempting); n > 0 {
		rule = match.Attempting[n-1]
	}

	msg := "unexpected " + describeAt(src, match.Furthest)
	if len(match.Expected) > 0 {
		msg += ", expected " + diag.FormatExpected(match.Expected)
	}

	c.ReportRule(match.Furthest, diag.SeverityError, rule, msg, match.Expected...)
}

func describeAt(src string, offset int) string {
	if offset >= len(src) {
		return "end of input"
	}

	r, _ := utf8.DecodeRuneInString(src[offset:])
	switch r {
	case '\n', '\r':
		return "end of line"
	default:
		return strconv.QuoteRune(r)
	}
}
