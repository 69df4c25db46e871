package propast

import "sort"

// LineInfo holds metadata for a single physical line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins.
	// For the last line without a terminator this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the terminator (or end of input).
	EndOffset int
}

// LineIndex maps byte offsets to line/column positions.
type LineIndex []LineInfo

// BuildLines constructs the line index of src.
// LF, CRLF and a lone CR all terminate a line.
func BuildLines(src string) LineIndex {
	lines := LineIndex{}
	lineStart := 0

	for idx := 0; idx < len(src); idx++ {
		switch src[idx] {
		case '\n':
			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: idx + 1})
			lineStart = idx + 1
		case '\r':
			end := idx + 1
			if end < len(src) && src[end] == '\n' {
				end++
			}

			lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: idx, EndOffset: end})
			lineStart = end
			idx = end - 1
		}
	}

	// The last line may be empty and carries no terminator.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(src),
		EndOffset:    len(src),
	})

	return lines
}

// Count returns the number of lines.
func (li LineIndex) Count() int {
	return len(li)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Offsets at or past the end resolve to the last line.
// Returns (0, 0) if the offset is negative or the index is empty.
func (li LineIndex) LineAt(offset int) (int, int) {
	if offset < 0 || len(li) == 0 {
		return 0, 0
	}

	lineIdx := sort.Search(len(li), func(i int) bool {
		return li[i].EndOffset > offset
	})

	if lineIdx >= len(li) {
		lineIdx = len(li) - 1
	}

	return lineIdx + 1, offset - li[lineIdx].StartOffset + 1
}

// PositionAt is LineAt returning a Position.
func (li LineIndex) PositionAt(offset int) Position {
	line, col := li.LineAt(offset)
	return Position{Line: line, Column: col}
}

// SpanPosition converts a span to a line/column range.
func (li LineIndex) SpanPosition(span Span) SourcePosition {
	startLine, startCol := li.LineAt(span.Start)
	endLine, endCol := li.LineAt(span.End)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// Offset converts 1-based line and column numbers to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (li LineIndex) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(li) || col < 1 {
		return 0, false
	}

	info := li[line-1]
	offset := info.StartOffset + col - 1

	// Column may point just past the line content for cursor positioning.
	if offset > info.NewlineStart {
		return 0, false
	}

	return offset, true
}

// FullLines widens span to the physical lines it touches, the terminator
// of the last one included. Deleting the result removes those lines.
func (li LineIndex) FullLines(span Span) Span {
	if len(li) == 0 {
		return span
	}

	first, _ := li.LineAt(span.Start)
	last, _ := li.LineAt(span.End)

	return Span{Start: li[first-1].StartOffset, End: li[last-1].EndOffset}
}
