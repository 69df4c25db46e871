// Package propast is the structured view of a parsed properties file:
// elements with source spans, stray comment and blank lines, and the
// flattened key to value map derived from them.
package propast

// Lexeme is a piece of source text together with its logical value
// (escapes decoded, continuations folded).
type Lexeme struct {
	Span Span
	Text string
}

// BracketKind tells an array index from a map key.
type BracketKind uint8

const (
	// BracketIndex is an all-digit subscript such as list[3].
	BracketIndex BracketKind = iota

	// BracketMapKey is any other subscript such as map[key.with.dots].
	BracketMapKey
)

// String returns the name of the kind.
func (k BracketKind) String() string {
	if k == BracketIndex {
		return "index"
	}

	return "map-key"
}

// Bracket is one [..] suffix of a key segment.
type Bracket struct {
	// Span covers the brackets themselves.
	Span Span

	// Content is the logical text between the brackets.
	Content string

	Kind BracketKind
}

// Element is one key/value entry.
type Element struct {
	Key   Lexeme
	Value Lexeme

	// Separator is '=' or ':', or 0 for a key without a separator.
	Separator byte

	// SeparatorOffset is the byte offset of the separator, or -1.
	SeparatorOffset int

	// Brackets lists the subscripts found in the key, in source order.
	Brackets []Bracket

	// Line is the full logical line, continuations included.
	Line Span

	// Continuations counts folded physical lines in the value.
	Continuations int

	// HasError is set on the element of a failed parse that contains the
	// failure position.
	HasError bool
}

// HasSeparator reports whether the element carried '=' or ':'.
func (e *Element) HasSeparator() bool {
	return e.Separator != 0
}

// LineKind classifies lines that hold no element.
type LineKind uint8

const (
	// LineComment is a line starting with '#' or '!'.
	LineComment LineKind = iota

	// LineBlank is an empty or whitespace-only line.
	LineBlank
)

// String returns the name of the kind.
func (k LineKind) String() string {
	if k == LineComment {
		return "comment"
	}

	return "blank"
}

// LineRecord is a comment or blank line, kept for round-tripping.
type LineRecord struct {
	Kind LineKind
	Span Span

	// Index is the number of elements that precede the line.
	Index int
}
