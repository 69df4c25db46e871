// Package charclass classifies the characters of a properties file.
//
// Every predicate is pure and safe for concurrent use. The grammar in
// package cfgprops is assembled from these predicates so that the lexical
// rules live in exactly one place. IsIdentifierStart and IsIdentifierPart
// are not grammar rules: keys accept any IsKeyChar. They mark the runes the
// escape writer copies through without inspection.
package charclass

import "unicode"

// IsIdentifierStart reports whether r may begin an identifier-like run.
// Letters, digits and underscore qualify; keys in properties files commonly
// start with a digit, so digits are accepted here too.
func IsIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsIdentifierPart reports whether r may continue an identifier-like run.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) || r == '$' ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}

// IsSeparator reports whether r separates a key from its value.
func IsSeparator(r rune) bool {
	return r == '=' || r == ':'
}

// IsLineTerminator reports whether r starts a line terminator.
func IsLineTerminator(r rune) bool {
	return r == '\n' || r == '\r'
}

// IsInlineWhitespace reports whether r is blank within a line.
// Form feed counts as blank.
func IsInlineWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\f'
}

// IsCommentStart reports whether r opens a comment when it is the first
// non-blank character of a line.
func IsCommentStart(r rune) bool {
	return r == '#' || r == '!'
}

// IsEscapeIntroducer reports whether r begins an escape sequence or a
// line continuation.
func IsEscapeIntroducer(r rune) bool {
	return r == '\\'
}

// IsHexDigit reports whether r is an ASCII hexadecimal digit.
func IsHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	default:
		return false
	}
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsSimpleEscape reports whether r may follow a backslash as a
// single-character escape.
func IsSimpleEscape(r rune) bool {
	switch r {
	case '\\', ' ', '#', '!', ':', '=', 't', 'n', 'f', 'r':
		return true
	default:
		return false
	}
}

// IsKeyChar reports whether r may appear unescaped inside a key segment.
// Keys are permissive: anything except blanks, line terminators,
// separators, backslash and the structural characters '.', '[' and ']'.
func IsKeyChar(r rune) bool {
	if IsInlineWhitespace(r) || IsLineTerminator(r) || IsSeparator(r) || IsEscapeIntroducer(r) {
		return false
	}

	return r != '.' && r != '[' && r != ']'
}

// IsBracketChar reports whether r may appear unescaped between '[' and ']'.
func IsBracketChar(r rune) bool {
	if IsInlineWhitespace(r) || IsLineTerminator(r) || IsEscapeIntroducer(r) {
		return false
	}

	return r != '[' && r != ']'
}

// IsValueChar reports whether r may appear unescaped in a value.
func IsValueChar(r rune) bool {
	return !IsLineTerminator(r) && !IsEscapeIntroducer(r)
}

// IsSurrogate reports whether r lies in the UTF-16 surrogate range.
func IsSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDFFF
}

// IsHighSurrogate reports whether r is a UTF-16 high (leading) surrogate.
func IsHighSurrogate(r rune) bool {
	return r >= 0xD800 && r <= 0xDBFF
}

// IsLowSurrogate reports whether r is a UTF-16 low (trailing) surrogate.
func IsLowSurrogate(r rune) bool {
	return r >= 0xDC00 && r <= 0xDFFF
}
