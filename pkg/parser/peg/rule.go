// Package peg is a small parsing-expression-grammar interpreter.
//
// A grammar is a graph of Rule values built with the constructors below and
// evaluated by Match. Rules are immutable once built and may be shared by
// any number of concurrent matches; all mutable state lives in the Context
// of a single match.
package peg

import "strconv"

// Kind tags the variant of a Rule.
type Kind uint8

const (
	KindSequence Kind = iota
	KindChoice
	KindOptional
	KindZeroOrMore
	KindOneOrMore
	KindClass
	KindLiteral
	KindAny
	KindEOF
	KindNot
	KindToken
	KindMark
	KindExpect
)

var kindNames = [...]string{
	KindSequence:   "sequence",
	KindChoice:     "choice",
	KindOptional:   "optional",
	KindZeroOrMore: "zero-or-more",
	KindOneOrMore:  "one-or-more",
	KindClass:      "class",
	KindLiteral:    "literal",
	KindAny:        "any",
	KindEOF:        "eof",
	KindNot:        "not",
	KindToken:      "token",
	KindMark:       "mark",
	KindExpect:     "expect",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Tag labels the events emitted by Mark rules. Its meaning belongs to the
// grammar that uses it.
type Tag uint16

// Rule is one node of a grammar.
type Rule struct {
	Kind Kind

	// Name labels the rule. Terminals use it in expected-sets; named
	// non-terminals are pushed on the rule stack while they run.
	Name string

	// Hidden terminals move the furthest-failure position without adding
	// to the expected-set.
	Hidden bool

	Children []*Rule

	// Class is the predicate of a KindClass rule.
	Class func(r rune) bool

	// Literal is the text of a KindLiteral rule.
	Literal string

	// Tag is the event tag of a KindMark rule.
	Tag Tag

	// Message is reported when a KindExpect rule fails.
	Message string
}

// Named sets the rule's name and returns the rule.
func (r *Rule) Named(name string) *Rule {
	r.Name = name
	return r
}

// Quiet hides a terminal from expected-sets and returns the rule.
func (r *Rule) Quiet() *Rule {
	r.Hidden = true
	return r
}

// IsTerminal reports whether the rule consumes input directly.
func (r *Rule) IsTerminal() bool {
	switch r.Kind {
	case KindClass, KindLiteral, KindAny, KindEOF, KindToken:
		return true
	default:
		return false
	}
}

// CanMatchEmpty reports whether the rule can succeed without consuming
// input.
func (r *Rule) CanMatchEmpty() bool {
	switch r.Kind {
	case KindOptional, KindZeroOrMore, KindNot, KindEOF:
		return true
	case KindLiteral:
		return r.Literal == ""
	case KindClass, KindAny:
		return false
	case KindSequence:
		for _, child := range r.Children {
			if !child.CanMatchEmpty() {
				return false
			}
		}

		return true
	case KindChoice:
		for _, child := range r.Children {
			if child.CanMatchEmpty() {
				return true
			}
		}

		return false
	default:
		return len(r.Children) > 0 && r.Children[0].CanMatchEmpty()
	}
}

// label is the name used in expected-sets.
func (r *Rule) label() string {
	if r.Hidden {
		return ""
	}

	if r.Name != "" {
		return r.Name
	}

	if r.Kind == KindLiteral {
		return strconv.Quote(r.Literal)
	}

	return ""
}

// Seq matches every rule in order.
func Seq(rules ...*Rule) *Rule {
	return &Rule{Kind: KindSequence, Children: rules}
}

// Choice matches the first rule that succeeds.
func Choice(rules ...*Rule) *Rule {
	return &Rule{Kind: KindChoice, Children: rules}
}

// Opt matches rule or nothing.
func Opt(rule *Rule) *Rule {
	return &Rule{Kind: KindOptional, Children: []*Rule{rule}}
}

// Star matches rule greedily zero or more times.
func Star(rule *Rule) *Rule {
	return &Rule{Kind: KindZeroOrMore, Children: []*Rule{rule}}
}

// Plus matches rule greedily one or more times.
func Plus(rule *Rule) *Rule {
	return &Rule{Kind: KindOneOrMore, Children: []*Rule{rule}}
}

// Class matches one rune accepted by pred.
func Class(name string, pred func(r rune) bool) *Rule {
	return &Rule{Kind: KindClass, Name: name, Class: pred}
}

// Lit matches text exactly.
func Lit(text string) *Rule {
	return &Rule{Kind: KindLiteral, Literal: text}
}

// Any matches one rune.
func Any() *Rule {
	return &Rule{Kind: KindAny, Name: "any character"}
}

// EOF matches the end of input.
func EOF() *Rule {
	return &Rule{Kind: KindEOF, Name: "end of input"}
}

// Not succeeds without consuming input when rule fails.
func Not(rule *Rule) *Rule {
	return &Rule{Kind: KindNot, Children: []*Rule{rule}}
}

// Token treats rule as one terminal named name: failures inside it are
// reported once, at the token's start.
func Token(name string, rule *Rule) *Rule {
	return &Rule{Kind: KindToken, Name: name, Children: []*Rule{rule}}
}

// Mark emits an event tagged tag spanning whatever rule matched.
func Mark(tag Tag, rule *Rule) *Rule {
	return &Rule{Kind: KindMark, Tag: tag, Children: []*Rule{rule}}
}

// Expect records a hard failure with message when rule does not match.
// The failure is anchored at the start of the innermost named rule.
func Expect(message string, rule *Rule) *Rule {
	return &Rule{Kind: KindExpect, Message: message, Children: []*Rule{rule}}
}
