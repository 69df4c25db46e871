package cfgprops

import (
	"github.com/yaklabco/propslint/pkg/parser/charclass"
	"github.com/yaklabco/propslint/pkg/parser/escape"
	"github.com/yaklabco/propslint/pkg/parser/peg"
	"github.com/yaklabco/propslint/pkg/propast"
)

// replay turns the event log of a match into a tree. Events arrive in
// post-order, so the pieces of a line are buffered until the line's own
// event closes it.
type replay struct {
	src     string
	builder *propast.Builder

	occs     []escape.Occurrence
	brackets []propast.Bracket

	elem    propast.Element
	hasElem bool
}

// buildTree replays events. A non-negative failAt flags the element on
// the physical line of the failure.
func buildTree(src string, lines propast.LineIndex, events []peg.Event, failAt int) *propast.Tree {
	r := &replay{src: src, builder: propast.NewBuilder()}
	r.reset()

	for _, ev := range events {
		r.apply(ev)
	}

	if failAt >= 0 {
		line, _ := lines.LineAt(failAt)
		r.builder.MarkError(failAt, lines[line-1].StartOffset)
	}

	return r.builder.Build()
}

func (r *replay) reset() {
	r.occs = r.occs[:0]
	r.brackets = nil
	r.elem = propast.Element{SeparatorOffset: -1}
	r.hasElem = false
}

func (r *replay) apply(ev peg.Event) {
	span := propast.Span{Start: ev.Start, End: ev.End}

	switch ev.Tag {
	case tagEscape:
		kind := escape.KindSimple
		if span.Len() == 6 && r.src[ev.Start+1] == 'u' {
			kind = escape.KindUnicode
		}
		r.occs = append(r.occs, escape.Occurrence{Offset: ev.Start, Len: span.Len(), Kind: kind})

	case tagContinuation:
		r.occs = append(r.occs, escape.Occurrence{Offset: ev.Start, Len: span.Len(), Kind: escape.KindContinuation})

	case tagBracket:
		content := propast.Span{Start: span.Start + 1, End: span.End - 1}
		text := escape.Resolve(r.src, content, escape.Within(r.occs, content))
		r.brackets = append(r.brackets, propast.Bracket{
			Span:    span,
			Content: text,
			Kind:    bracketKind(text),
		})

	case tagKey:
		r.elem.Key = propast.Lexeme{Span: span, Text: escape.Resolve(r.src, span, r.occs)}
		r.elem.Brackets = r.brackets
		r.brackets = nil
		r.occs = r.occs[:0]
		r.hasElem = true

	case tagSeparator:
		r.elem.Separator = r.src[ev.Start]
		r.elem.SeparatorOffset = ev.Start

	case tagValue:
		r.elem.Value = propast.Lexeme{Span: span, Text: escape.Resolve(r.src, span, r.occs)}
		for _, o := range r.occs {
			if o.Kind == escape.KindContinuation {
				r.elem.Continuations++
			}
		}
		r.occs = r.occs[:0]

	case tagKeyValue:
		if r.hasElem {
			r.elem.Line = span
			if r.elem.Separator == 0 {
				r.elem.Value = propast.Lexeme{Span: propast.Span{Start: span.End, End: span.End}}
			}
			r.builder.Record(r.elem)
		}
		r.reset()

	case tagComment:
		r.builder.RecordCommentOrBlank(propast.LineComment, span)
		r.reset()

	case tagBlank:
		r.builder.RecordCommentOrBlank(propast.LineBlank, span)
		r.reset()
	}
}

func bracketKind(content string) propast.BracketKind {
	if content == "" {
		return propast.BracketMapKey
	}

	for _, c := range content {
		if !charclass.IsDigit(c) {
			return propast.BracketMapKey
		}
	}

	return propast.BracketIndex
}
