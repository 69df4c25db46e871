package propast

import "github.com/yaklabco/propslint/pkg/parser/diag"

// FileSnapshot is an immutable view of one properties file after parsing.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines is the line index of Content.
	Lines LineIndex

	// Tree holds the elements. On a failed parse it holds the lines
	// recognised before the failure.
	Tree *Tree

	// Flat is the flattened map derived from Tree.
	Flat *OrderedMap

	// Diagnostics are the parser's findings, in report order.
	Diagnostics []diag.Diagnostic

	// Matched is true when the whole input was accepted.
	Matched bool
}

// NewFileSnapshot creates a snapshot holding content and its line index.
// The parser fills in the remaining fields.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(string(content)),
	}
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	return f.Lines.LineAt(offset)
}

// LineContent returns a 1-based line without its terminator.
// Returns nil if the line number is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	info := f.Lines[line-1]

	return f.Content[info.StartOffset:info.NewlineStart]
}

// Text returns the source covered by span.
func (f *FileSnapshot) Text(span Span) string {
	return span.Text(string(f.Content))
}
