package escape

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/yaklabco/propslint/pkg/parser/charclass"
)

// EscapeKey renders key so that parsing it yields key again.
// Dots and brackets stay literal while they form a valid key path
// such as a.b[0].c; otherwise they are written as \u escapes.
func EscapeKey(key string) string {
	structural := !validKeyPath(key)

	var b strings.Builder
	b.Grow(len(key) + 8)

	for _, r := range key {
		switch {
		case charclass.IsIdentifierPart(r):
			b.WriteRune(r)
		case r == '.' || r == '[' || r == ']':
			if structural {
				writeUnicode(&b, r)
			} else {
				b.WriteRune(r)
			}
		case r == ' ' || r == '=' || r == ':' || r == '#' || r == '!' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			writeCommon(&b, r)
		}
	}

	return b.String()
}

// EscapeValue renders value so that parsing it after a separator yields
// value again. Only leading blanks need protection from the separator's
// whitespace skipping.
func EscapeValue(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 8)

	leading := true

	for _, r := range value {
		switch {
		case charclass.IsIdentifierPart(r):
			b.WriteRune(r)
		case r == ' ' && leading:
			b.WriteString(`\ `)
		case r == '\\':
			b.WriteString(`\\`)
		default:
			writeCommon(&b, r)
		}

		if r != ' ' && r != '\t' && r != '\f' {
			leading = false
		}
	}

	return b.String()
}

func writeCommon(b *strings.Builder, r rune) {
	switch r {
	case '\t':
		b.WriteString(`\t`)
	case '\n':
		b.WriteString(`\n`)
	case '\f':
		b.WriteString(`\f`)
	case '\r':
		b.WriteString(`\r`)
	default:
		if r < 0x20 || r == 0x7f || (r <= 0xFFFF && !unicode.IsPrint(r) && !unicode.IsSpace(r)) {
			writeUnicode(b, r)
			return
		}

		b.WriteRune(r)
	}
}

func writeUnicode(b *strings.Builder, r rune) {
	fmt.Fprintf(b, `\u%04X`, r)
}

// validKeyPath reports whether key splits into non-empty dot-separated
// segments, each optionally followed by non-empty [..] subscripts.
func validKeyPath(key string) bool {
	if key == "" {
		return false
	}

	runes := []rune(key)
	i := 0

	for {
		start := i
		for i < len(runes) && runes[i] != '.' && runes[i] != '[' && runes[i] != ']' {
			i++
		}

		if i == start {
			return false
		}

		for i < len(runes) && runes[i] == '[' {
			i++
			contentStart := i

			for i < len(runes) && runes[i] != '[' && runes[i] != ']' {
				i++
			}

			if i == contentStart || i == len(runes) || runes[i] != ']' {
				return false
			}
			i++
		}

		if i == len(runes) {
			return true
		}

		if runes[i] != '.' {
			return false
		}
		i++
	}
}
