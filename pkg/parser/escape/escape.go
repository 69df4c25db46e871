// Package escape turns raw lexemes into logical text and back.
//
// Resolve never scans for backslashes itself: it is handed the escape and
// continuation occurrences the grammar recorded while matching and only
// decodes those.
package escape

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/yaklabco/propslint/pkg/parser/charclass"
	"github.com/yaklabco/propslint/pkg/propast"
)

// Kind classifies an occurrence.
type Kind uint8

const (
	// KindSimple is a backslash followed by one character.
	KindSimple Kind = iota

	// KindUnicode is \uXXXX.
	KindUnicode

	// KindContinuation is a backslash, a line terminator and the blanks
	// that indent the continued line.
	KindContinuation
)

// Occurrence is one escape or continuation in the source.
type Occurrence struct {
	// Offset is the byte offset of the backslash.
	Offset int

	// Len is the byte length of the whole sequence.
	Len int

	Kind Kind
}

// End returns the offset just past the sequence.
func (o Occurrence) End() int {
	return o.Offset + o.Len
}

// Within returns the occurrences that lie entirely inside span.
// occs must be ordered by offset.
func Within(occs []Occurrence, span propast.Span) []Occurrence {
	var out []Occurrence

	for _, o := range occs {
		if o.Offset >= span.Start && o.End() <= span.End {
			out = append(out, o)
		}
	}

	return out
}

// Resolve returns the logical text of src[span]. occs must be ordered,
// non-overlapping and inside span; Resolve is total over such input.
func Resolve(src string, span propast.Span, occs []Occurrence) string {
	if len(occs) == 0 {
		return span.Text(src)
	}

	var b strings.Builder
	b.Grow(span.Len())

	pos := span.Start

	for i := 0; i < len(occs); i++ {
		occ := occs[i]
		b.WriteString(src[pos:occ.Offset])
		pos = occ.End()

		switch occ.Kind {
		case KindContinuation:
			// Folded away.
		case KindSimple:
			b.WriteRune(simple(src[occ.Offset+1]))
		case KindUnicode:
			r, ok := hex4(src, occ)
			if !ok {
				b.WriteString(src[occ.Offset:occ.End()])
				continue
			}

			if charclass.IsHighSurrogate(r) && i+1 < len(occs) {
				next := occs[i+1]
				if next.Kind == KindUnicode && next.Offset == occ.End() {
					if low, ok := hex4(src, next); ok && charclass.IsLowSurrogate(low) {
						b.WriteRune(utf16.DecodeRune(r, low))
						pos = next.End()
						i++

						continue
					}
				}
			}

			if charclass.IsSurrogate(r) {
				r = utf8.RuneError
			}
			b.WriteRune(r)
		}
	}

	b.WriteString(src[pos:span.End])

	return b.String()
}

func simple(c byte) rune {
	switch c {
	case 't':
		return '\t'
	case 'n':
		return '\n'
	case 'f':
		return '\f'
	case 'r':
		return '\r'
	default:
		return rune(c)
	}
}

func hex4(src string, occ Occurrence) (rune, bool) {
	if occ.Len != 6 || occ.End() > len(src) {
		return 0, false
	}

	v, err := strconv.ParseUint(src[occ.Offset+2:occ.End()], 16, 32)
	if err != nil {
		return 0, false
	}

	return rune(v), true
}
