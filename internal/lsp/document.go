package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/yaklabco/propslint/pkg/parser/cfgprops"
	"github.com/yaklabco/propslint/pkg/propast"
)

// document is an open editor buffer. Its parser is reused across edits, so
// a result held from an earlier edit reports ErrStaleResult.
type document struct {
	parser  *cfgprops.Parser
	text    string
	version protocol.Integer

	// result and diagnostics belong to the last analysis of text. They are
	// reused while result is still valid and the text has not changed.
	result      *cfgprops.Result
	diagnostics []protocol.Diagnostic
}

// current reports whether the cached analysis still describes text.
func (d *document) current(text string) bool {
	return d.result != nil && d.text == text && d.result.Valid() == nil
}

// forget drops the cached analysis.
func (d *document) forget() {
	d.result = nil
	d.diagnostics = nil
}

// applyChanges applies content change events in order. Range events
// address text in UTF-16 positions; whole events replace it.
func applyChanges(text string, changes []any) string {
	for _, change := range changes {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				text = change.Text
				continue
			}
			lines := propast.BuildLines(text)
			start := offsetAt(text, lines, change.Range.Start)
			end := offsetAt(text, lines, change.Range.End)
			if end < start {
				start, end = end, start
			}
			text = text[:start] + change.Text + text[end:]
		}
	}
	return text
}

// offsetAt converts a UTF-16 position to a byte offset. Lines end at LF,
// CRLF or a lone CR, as they do for the parser. A character past the end
// of its line clamps to the terminator; a line past the end clamps to the
// end of text.
func offsetAt(text string, lines propast.LineIndex, pos protocol.Position) int {
	if int(pos.Line) >= len(lines) {
		return len(text)
	}

	line := lines[pos.Line]
	offset, units := line.StartOffset, 0
	for offset < line.NewlineStart {
		r, size := utf8.DecodeRuneInString(text[offset:line.NewlineStart])
		n := runeUnits(r)
		if units+n > int(pos.Character) {
			break
		}
		units += n
		offset += size
	}

	return offset
}

// workspaceRoot picks the client's root folder, preferring the URI.
func workspaceRoot(params *protocol.InitializeParams) string {
	if params.RootURI != nil && *params.RootURI != "" {
		return uriToPath(*params.RootURI)
	}
	if params.RootPath != nil {
		return *params.RootPath
	}
	return ""
}

func uriToPath(uri protocol.DocumentUri) string {
	if !strings.HasPrefix(uri, "file://") {
		return uri
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	return filepath.FromSlash(parsed.Path)
}
