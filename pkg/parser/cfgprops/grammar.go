package cfgprops

import (
	"github.com/yaklabco/propslint/pkg/parser/charclass"
	"github.com/yaklabco/propslint/pkg/parser/peg"
)

// Event tags emitted by the grammar.
const (
	tagEscape peg.Tag = iota + 1
	tagContinuation
	tagBracket
	tagKey
	tagSeparator
	tagValue
	tagKeyValue
	tagComment
	tagBlank
)

// Rule names that show up in diagnostics.
const (
	ruleFile     = "properties file"
	ruleKeyValue = "key/value pair"
	ruleKey      = "key"
	ruleValue    = "value"
	ruleEscape   = "escape sequence"
	ruleBracket  = "bracket subscript"
)

// rules is built once; rules are immutable and shared by all parsers.
var rules = buildGrammar()

// grammarRules splits the file rule so that the lines matched before a
// failure survive it: body always matches, end fails on leftover input.
type grammarRules struct {
	body *peg.Rule
	end  *peg.Rule
}

//	file         <- line (lineTerm line)* EOF
//	line         <- comment / keyvalue / blank
//	blank        <- ws*
//	comment      <- ws* [#!] (!lineTerm .)*
//	keyvalue     <- ws* key ws* (separator ws* value)?
//	key          <- segment ('.' segment)*
//	segment      <- (escape / keyChar)+ bracket*
//	bracket      <- '[' expect((escape / bracketChar)+ ']')
//	value        <- (continuation / escape / valueChar)*
//	continuation <- '\' (lineTerm ws* / EOF)
//	escape       <- '\' expect('u' expect(hex{4}) / simpleEscape)
func buildGrammar() grammarRules {
	ws := peg.Star(peg.Class("", charclass.IsInlineWhitespace))
	lineTerm := peg.Token("line terminator", peg.Choice(peg.Lit("\r\n"), peg.Lit("\n"), peg.Lit("\r")))
	backslash := peg.Lit(`\`).Quiet()

	hex := peg.Class("hex digit", charclass.IsHexDigit)
	unicodeEscape := peg.Seq(
		peg.Lit("u").Quiet(),
		peg.Expect("malformed unicode escape: \\u must be followed by 4 hex digits", peg.Seq(hex, hex, hex, hex)),
	)
	escape := peg.Mark(tagEscape, peg.Seq(
		backslash,
		peg.Expect("invalid escape sequence", peg.Choice(
			unicodeEscape,
			peg.Class("escape character", charclass.IsSimpleEscape),
		)),
	)).Named(ruleEscape)

	continuation := peg.Mark(tagContinuation, peg.Seq(
		backslash,
		peg.Choice(peg.Seq(lineTerm, ws), peg.EOF()),
	))

	bracket := peg.Mark(tagBracket, peg.Seq(
		peg.Lit("["),
		peg.Expect("unterminated bracket subscript", peg.Seq(
			peg.Plus(peg.Choice(escape, peg.Class("index or map key", charclass.IsBracketChar))),
			peg.Lit("]"),
		)),
	)).Named(ruleBracket)

	segment := peg.Seq(
		peg.Plus(peg.Choice(escape, peg.Class("key character", charclass.IsKeyChar))),
		peg.Star(bracket),
	)
	key := peg.Mark(tagKey, peg.Seq(segment, peg.Star(peg.Seq(peg.Lit("."), segment)))).Named(ruleKey)

	separator := peg.Mark(tagSeparator, peg.Class("separator", charclass.IsSeparator))
	value := peg.Mark(tagValue, peg.Star(peg.Choice(
		continuation,
		escape,
		peg.Class("", charclass.IsValueChar),
	))).Named(ruleValue)

	keyValue := peg.Mark(tagKeyValue, peg.Seq(
		ws, key, ws,
		peg.Opt(peg.Seq(separator, ws, value)),
	)).Named(ruleKeyValue)

	comment := peg.Mark(tagComment, peg.Seq(
		ws,
		peg.Class("", charclass.IsCommentStart),
		peg.Star(peg.Class("", func(r rune) bool { return !charclass.IsLineTerminator(r) })),
	))
	blank := peg.Mark(tagBlank, ws)

	line := peg.Choice(comment, keyValue, blank)

	return grammarRules{
		body: peg.Seq(line, peg.Star(peg.Seq(lineTerm, line))).Named(ruleFile),
		end:  peg.EOF(),
	}
}
