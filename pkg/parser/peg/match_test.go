package peg_test

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/propslint/pkg/parser/peg"
)

const (
	tagWord peg.Tag = iota + 1
	tagNumber
)

func TestMatchLiteralAndSequence(t *testing.T) {
	t.Parallel()

	rule := peg.Seq(peg.Lit("ab"), peg.Lit("c"), peg.EOF())

	assert.True(t, peg.Match(rule, "abc").Matched)

	res := peg.Match(rule, "abd")
	assert.False(t, res.Matched)
	assert.Equal(t, 2, res.Furthest)
	assert.Equal(t, []string{`"c"`}, res.Expected)
}

func TestMatchChoiceIsOrdered(t *testing.T) {
	t.Parallel()

	word := peg.Mark(tagWord, peg.Plus(peg.Class("letter", unicode.IsLetter)))
	number := peg.Mark(tagNumber, peg.Plus(peg.Class("digit", unicode.IsDigit)))
	rule := peg.Seq(peg.Choice(word, number), peg.EOF())

	res := peg.Match(rule, "123")
	require.True(t, res.Matched)
	require.Len(t, res.Events, 1)
	assert.Equal(t, peg.Event{Tag: tagNumber, Start: 0, End: 3}, res.Events[0])
}

func TestMatchBacktrackingDropsEvents(t *testing.T) {
	t.Parallel()

	letters := peg.Mark(tagWord, peg.Plus(peg.Class("letter", unicode.IsLetter)))
	// First alternative marks "ab" and then fails on the missing "!".
	rule := peg.Seq(
		peg.Choice(peg.Seq(letters, peg.Lit("!")), peg.Seq(letters, peg.Lit("?"))),
		peg.EOF(),
	)

	res := peg.Match(rule, "ab?")
	require.True(t, res.Matched)
	require.Len(t, res.Events, 1, "events of the failed alternative must be discarded")
	assert.Equal(t, 0, res.Events[0].Start)
	assert.Equal(t, 2, res.Events[0].End)
}

func TestMatchRepetitionIsGreedy(t *testing.T) {
	t.Parallel()

	rule := peg.Seq(peg.Star(peg.Lit("a")), peg.Lit("a"))

	// PEG repetition does not give characters back.
	assert.False(t, peg.Match(rule, "aaa").Matched)
}

func TestMatchStarStopsOnEmptyMatch(t *testing.T) {
	t.Parallel()

	rule := peg.Seq(peg.Star(peg.Opt(peg.Lit("x"))), peg.EOF())

	res := peg.Match(rule, "xx")
	assert.True(t, res.Matched)
}

func TestMatchNotIsQuiet(t *testing.T) {
	t.Parallel()

	rule := peg.Seq(peg.Not(peg.Lit("#")), peg.Any(), peg.EOF())

	assert.True(t, peg.Match(rule, "a").Matched)

	res := peg.Match(rule, "#")
	assert.False(t, res.Matched)
	assert.Empty(t, res.Expected, "failures inside a lookahead are not expectations")
}

func TestMatchTokenReportsOnce(t *testing.T) {
	t.Parallel()

	term := peg.Token("line terminator", peg.Choice(peg.Lit("\r\n"), peg.Lit("\n")))
	rule := peg.Seq(peg.Lit("a"), term)

	res := peg.Match(rule, "ax")
	assert.False(t, res.Matched)
	assert.Equal(t, 1, res.Furthest)
	assert.Equal(t, []string{"line terminator"}, res.Expected)
}

func TestMatchHiddenTerminal(t *testing.T) {
	t.Parallel()

	rule := peg.Seq(peg.Star(peg.Class("blank", unicode.IsSpace).Quiet()), peg.Lit("="))

	res := peg.Match(rule, "  x")
	assert.False(t, res.Matched)
	assert.Equal(t, 2, res.Furthest)
	assert.Equal(t, []string{`"="`}, res.Expected)
}

func TestMatchExpectAnchorsAtNamedRule(t *testing.T) {
	t.Parallel()

	hex := peg.Class("hex digit", func(r rune) bool { return unicode.Is(unicode.ASCII_Hex_Digit, r) })
	escape := peg.Seq(peg.Lit(`\u`), peg.Expect("malformed unicode escape", peg.Seq(hex, hex, hex, hex))).Named("unicode escape")
	rule := peg.Seq(peg.Lit("k"), escape, peg.EOF())

	res := peg.Match(rule, `k\u00g9`)
	assert.False(t, res.Matched)
	require.Len(t, res.Hard, 1)

	hard := res.Hard[0]
	assert.Equal(t, 1, hard.Offset, "anchored at the backslash")
	assert.Equal(t, 5, hard.At)
	assert.Equal(t, "unicode escape", hard.Rule)
	assert.Equal(t, "malformed unicode escape", hard.Message)
	assert.Equal(t, []string{"hex digit"}, hard.Expected)

	assert.Equal(t, 5, res.Furthest)
	assert.Equal(t, []string{"unicode escape"}, res.Attempting)
}

func TestMatchInnermostExpectWins(t *testing.T) {
	t.Parallel()

	inner := peg.Expect("inner", peg.Lit("b"))
	rule := peg.Expect("outer", peg.Seq(peg.Lit("a"), inner))

	res := peg.Match(rule, "ax")
	require.Len(t, res.Hard, 1)
	assert.Equal(t, "inner", res.Hard[0].Message)
}

func TestMatchExpectSilencedInsideLookahead(t *testing.T) {
	t.Parallel()

	rule := peg.Seq(peg.Not(peg.Expect("never", peg.Lit("a"))), peg.Lit("b"))

	res := peg.Match(rule, "b")
	assert.True(t, res.Matched)
	assert.Empty(t, res.Hard)
}

func TestMatchFurthestAccumulatesAlternatives(t *testing.T) {
	t.Parallel()

	rule := peg.Seq(peg.Lit("k"), peg.Choice(peg.Class("separator", func(r rune) bool { return r == '=' || r == ':' }), peg.EOF()))

	res := peg.Match(rule, "k x")
	assert.False(t, res.Matched)
	assert.Equal(t, 1, res.Furthest)
	assert.Equal(t, []string{"separator", "end of input"}, res.Expected)
}

func TestMatchMultibyteRunes(t *testing.T) {
	t.Parallel()

	rule := peg.Seq(peg.Mark(tagWord, peg.Plus(peg.Class("letter", unicode.IsLetter))), peg.EOF())

	res := peg.Match(rule, "çé")
	require.True(t, res.Matched)
	assert.Equal(t, 4, res.Events[0].End)
}

func TestRuleProperties(t *testing.T) {
	t.Parallel()

	letter := peg.Class("letter", unicode.IsLetter)

	assert.True(t, letter.IsTerminal())
	assert.False(t, letter.CanMatchEmpty())
	assert.True(t, peg.Star(letter).CanMatchEmpty())
	assert.False(t, peg.Plus(letter).CanMatchEmpty())
	assert.True(t, peg.Choice(letter, peg.Opt(letter)).CanMatchEmpty())
	assert.False(t, peg.Seq(peg.Opt(letter), letter).CanMatchEmpty())
	assert.False(t, peg.Seq(letter).IsTerminal())
	assert.Equal(t, "zero-or-more", peg.KindZeroOrMore.String())
}
