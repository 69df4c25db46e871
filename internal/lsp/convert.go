package lsp

import (
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/propast"
)

// toProtocol converts lint diagnostics, whose columns are 1-based bytes,
// to LSP diagnostics with 0-based UTF-16 positions.
func toProtocol(snapshot *propast.FileSnapshot, diags []lint.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	source := serverName

	for _, d := range diags {
		start := position(snapshot, d.StartLine, d.StartColumn)
		end := start
		if d.EndLine > 0 {
			end = position(snapshot, d.EndLine, d.EndColumn)
		}
		if end.Line == start.Line && end.Character <= start.Character {
			end.Character = start.Character + 1
		}

		severity := toSeverity(d.Severity)
		message := d.Message
		if d.Suggestion != "" {
			message += " (" + d.Suggestion + ")"
		}

		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.RuleID},
			Source:   &source,
			Message:  message,
			Data:     expectedData(d.Expected),
		})
	}

	return out
}

func expectedData(expected []string) any {
	if len(expected) == 0 {
		return nil
	}
	return map[string]any{"expected": expected}
}

// position maps a 1-based line and byte column onto the line's text.
func position(snapshot *propast.FileSnapshot, line, column int) protocol.Position {
	if line < 1 {
		return protocol.Position{}
	}

	content := snapshot.LineContent(line)
	byteCol := max(column-1, 0)
	if byteCol > len(content) {
		byteCol = len(content)
	}

	return protocol.Position{
		Line:      protocol.UInteger(line - 1),
		Character: protocol.UInteger(utf16Len(content[:byteCol])),
	}
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		n += runeUnits(r)
	}
	return n
}

// runeUnits is the number of UTF-16 code units r takes. Invalid bytes
// count as one.
func runeUnits(r rune) int {
	if utf16.RuneLen(r) == 2 {
		return 2
	}
	return 1
}

func toSeverity(sev config.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case config.SeverityError:
		return protocol.DiagnosticSeverityError
	case config.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityWarning
	}
}
