package escape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/propslint/pkg/parser/escape"
	"github.com/yaklabco/propslint/pkg/propast"
)

func whole(src string) propast.Span {
	return propast.Span{Start: 0, End: len(src)}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		occs []escape.Occurrence
		want string
	}{
		{
			name: "no occurrences",
			src:  "plain",
			want: "plain",
		},
		{
			name: "simple escapes",
			src:  `a\tb\nc\fd\re\\f\ g\=h\:i\#j\!k`,
			occs: []escape.Occurrence{
				{Offset: 1, Len: 2}, {Offset: 4, Len: 2}, {Offset: 7, Len: 2},
				{Offset: 10, Len: 2}, {Offset: 13, Len: 2}, {Offset: 16, Len: 2},
				{Offset: 19, Len: 2}, {Offset: 22, Len: 2}, {Offset: 25, Len: 2},
				{Offset: 28, Len: 2},
			},
			want: "a\tb\nc\fd\re\\f g=h:i#j!k",
		},
		{
			name: "unicode escape",
			src:  `caf\u00e9`,
			occs: []escape.Occurrence{{Offset: 3, Len: 6, Kind: escape.KindUnicode}},
			want: "café",
		},
		{
			name: "surrogate pair",
			src:  `\uD83D\uDE00!`,
			occs: []escape.Occurrence{
				{Offset: 0, Len: 6, Kind: escape.KindUnicode},
				{Offset: 6, Len: 6, Kind: escape.KindUnicode},
			},
			want: "\U0001F600!",
		},
		{
			name: "lone high surrogate",
			src:  `\uD83Dx`,
			occs: []escape.Occurrence{{Offset: 0, Len: 6, Kind: escape.KindUnicode}},
			want: "\uFFFDx",
		},
		{
			name: "continuation with indent",
			src:  "val\\\n    next",
			occs: []escape.Occurrence{{Offset: 3, Len: 6, Kind: escape.KindContinuation}},
			want: "valnext",
		},
		{
			name: "escaped backslash before continuation",
			src:  "a\\\\\\\nb",
			occs: []escape.Occurrence{
				{Offset: 1, Len: 2},
				{Offset: 3, Len: 2, Kind: escape.KindContinuation},
			},
			want: "a\\b",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := escape.Resolve(testCase.src, whole(testCase.src), testCase.occs)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestResolveSubSpan(t *testing.T) {
	t.Parallel()

	src := `key=v\tx`
	span := propast.Span{Start: 4, End: len(src)}
	occs := []escape.Occurrence{{Offset: 5, Len: 2}}

	assert.Equal(t, "v\tx", escape.Resolve(src, span, occs))
}

func TestWithin(t *testing.T) {
	t.Parallel()

	occs := []escape.Occurrence{{Offset: 1, Len: 2}, {Offset: 5, Len: 2}, {Offset: 9, Len: 6}}

	got := escape.Within(occs, propast.Span{Start: 4, End: 10})
	assert.Equal(t, []escape.Occurrence{{Offset: 5, Len: 2}}, got)
}

func TestEscapeKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "simple", want: "simple"},
		{key: "a.b.c", want: "a.b.c"},
		{key: "list[0].name", want: "list[0].name"},
		{key: "map[x.y]", want: "map[x.y]"},
		{key: "with space", want: `with\ space`},
		{key: "a=b:c", want: `a\=b\:c`},
		{key: "#not-a-comment", want: `\#not-a-comment`},
		{key: "tab\there", want: `tab\there`},
		{key: "back\\slash", want: `back\\slash`},
		{key: ".leading", want: `\u002Eleading`},
		{key: "a..b", want: `a\u002E\u002Eb`},
		{key: "open[", want: `open\u005B`},
		{key: "nul\x00", want: `nul\u0000`},
		{key: "ünïcödé", want: "ünïcödé"},
		{key: "$ref_id9", want: "$ref_id9"},
		{key: "cafe\u0301", want: "cafe\u0301"},
		{key: "tie\u2040in", want: "tie\u2040in"},
	}

	for _, testCase := range tests {
		t.Run(testCase.key, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, escape.EscapeKey(testCase.key))
		})
	}
}

func TestEscapeValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain value", escape.EscapeValue("plain value"))
	assert.Equal(t, `\ \ indented`, escape.EscapeValue("  indented"))
	assert.Equal(t, `\t\ x`, escape.EscapeValue("\t x"))
	assert.Equal(t, `a=b:c#d!e`, escape.EscapeValue("a=b:c#d!e"))
	assert.Equal(t, `line1\nline2`, escape.EscapeValue("line1\nline2"))
	assert.Equal(t, `C:\\path`, escape.EscapeValue(`C:\path`))
	assert.Equal(t, "trailing  ", escape.EscapeValue("trailing  "))
	assert.Equal(t, "${HOME}_x\u0301", escape.EscapeValue("${HOME}_x\u0301"))
}
