package peg

import (
	"strings"
	"unicode/utf8"
)

// Event is emitted by a Mark rule after its child matched.
// Events of one match are in post-order: inner marks precede outer ones.
type Event struct {
	Tag   Tag
	Start int
	End   int
}

// Failure is a hard failure recorded by an Expect rule.
type Failure struct {
	// Offset anchors the failure at the start of the innermost named rule.
	Offset int

	// At is where matching actually stopped.
	At int

	Rule     string
	Message  string
	Expected []string
}

// Result is the outcome of Match.
type Result struct {
	Matched bool

	// End is the offset reached by the root rule.
	End int

	Events []Event

	// Furthest is the largest offset at which a terminal failed, or -1.
	Furthest int

	// Expected lists what would have been accepted at Furthest.
	Expected []string

	// Attempting is the stack of named rules active at Furthest,
	// outermost first.
	Attempting []string

	// Hard lists Expect failures in the order they occurred.
	Hard []Failure
}

type frame struct {
	name  string
	start int
}

// Context carries the mutable state of one match.
type Context struct {
	input  string
	pos    int
	events []Event
	stack  []frame
	quiet  int

	furthest   int
	expected   []string
	attempting []string
	hard       []Failure
}

// NewContext creates a context positioned at the start of input.
func NewContext(input string) *Context {
	return &Context{input: input, furthest: -1}
}

// Pos returns the current offset.
func (c *Context) Pos() int {
	return c.pos
}

// Match evaluates root against the whole of input. Matching stops where
// root stops; anchor the grammar with EOF to require full consumption.
func Match(root *Rule, input string) Result {
	ctx := NewContext(input)

	return ctx.Result(ctx.Eval(root))
}

// Result summarises the match so far. Rules evaluated one after another on
// the same context keep the events of those that succeeded.
func (c *Context) Result(matched bool) Result {
	return Result{
		Matched:    matched,
		End:        c.pos,
		Events:     c.events,
		Furthest:   c.furthest,
		Expected:   c.expected,
		Attempting: c.attempting,
		Hard:       c.hard,
	}
}

// Eval runs rule at the current position. On failure the position and
// event log are left where they were before the call.
func (c *Context) Eval(rule *Rule) bool {
	named := rule.Name != "" && !rule.IsTerminal()
	if named {
		c.stack = append(c.stack, frame{name: rule.Name, start: c.pos})
	}

	ok := c.eval(rule)

	if named {
		c.stack = c.stack[:len(c.stack)-1]
	}

	return ok
}

//nolint:cyclop,funlen // one switch over every rule kind
func (c *Context) eval(rule *Rule) bool {
	switch rule.Kind {
	case KindSequence:
		start, mark := c.save()
		for _, child := range rule.Children {
			if !c.Eval(child) {
				c.restore(start, mark)
				return false
			}
		}

		return true

	case KindChoice:
		start, mark := c.save()
		for _, child := range rule.Children {
			if c.Eval(child) {
				return true
			}
			c.restore(start, mark)
		}

		return false

	case KindOptional:
		start, mark := c.save()
		if !c.Eval(rule.Children[0]) {
			c.restore(start, mark)
		}

		return true

	case KindZeroOrMore:
		c.repeat(rule.Children[0])
		return true

	case KindOneOrMore:
		if !c.Eval(rule.Children[0]) {
			return false
		}
		c.repeat(rule.Children[0])

		return true

	case KindClass:
		if c.pos < len(c.input) {
			r, size := utf8.DecodeRuneInString(c.input[c.pos:])
			if rule.Class(r) {
				c.pos += size
				return true
			}
		}
		c.fail(rule.label())

		return false

	case KindLiteral:
		if strings.HasPrefix(c.input[c.pos:], rule.Literal) {
			c.pos += len(rule.Literal)
			return true
		}
		c.fail(rule.label())

		return false

	case KindAny:
		if c.pos < len(c.input) {
			_, size := utf8.DecodeRuneInString(c.input[c.pos:])
			c.pos += size

			return true
		}
		c.fail(rule.label())

		return false

	case KindEOF:
		if c.pos == len(c.input) {
			return true
		}
		c.fail(rule.label())

		return false

	case KindNot:
		start, mark := c.save()
		c.quiet++
		ok := c.Eval(rule.Children[0])
		c.quiet--
		c.restore(start, mark)

		return !ok

	case KindToken:
		start, mark := c.save()
		c.quiet++
		ok := c.Eval(rule.Children[0])
		c.quiet--
		if !ok {
			c.restore(start, mark)
			c.fail(rule.label())
		}

		return ok

	case KindMark:
		start := c.pos
		if !c.Eval(rule.Children[0]) {
			return false
		}
		c.events = append(c.events, Event{Tag: rule.Tag, Start: start, End: c.pos})

		return true

	case KindExpect:
		start := c.pos
		hardBefore := len(c.hard)
		if c.Eval(rule.Children[0]) {
			return true
		}
		// The innermost expectation already explained this failure.
		if c.quiet == 0 && len(c.hard) == hardBefore {
			c.hard = append(c.hard, c.failure(rule.Message, start))
		}

		return false

	default:
		return false
	}
}

func (c *Context) repeat(rule *Rule) {
	for {
		start, mark := c.save()
		if !c.Eval(rule) || c.pos == start {
			c.restore(start, mark)
			return
		}
	}
}

func (c *Context) save() (int, int) {
	return c.pos, len(c.events)
}

func (c *Context) restore(pos, mark int) {
	c.pos = pos
	c.events = c.events[:mark]
}

// fail records a terminal failure at the current position.
func (c *Context) fail(label string) {
	if c.quiet > 0 {
		return
	}

	if c.pos > c.furthest {
		c.furthest = c.pos
		c.expected = c.expected[:0]
		c.attempting = c.attempting[:0]
	}

	if c.pos < c.furthest || label == "" {
		return
	}

	for _, e := range c.expected {
		if e == label {
			return
		}
	}

	// The stack is taken at the first labelled failure of a position.
	if len(c.expected) == 0 {
		for _, f := range c.stack {
			c.attempting = append(c.attempting, f.name)
		}
	}

	c.expected = append(c.expected, label)
}

func (c *Context) failure(message string, start int) Failure {
	f := Failure{
		Offset:  start,
		At:      c.furthest,
		Message: message,
	}

	if n := len(c.stack); n > 0 {
		f.Offset = c.stack[n-1].start
		f.Rule = c.stack[n-1].name
	}

	if c.furthest >= start {
		f.Expected = append([]string(nil), c.expected...)
	} else {
		f.At = start
	}

	return f
}
