// Package fix applies byte-range edits produced by lint rules and renders
// the result as a unified diff.
package fix

// TextEdit replaces the bytes [StartOffset, EndOffset) of a file with
// NewText. An empty range inserts; an empty NewText deletes.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Len is the number of original bytes the edit replaces.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// IsDeletion reports whether the edit only removes bytes.
func (e TextEdit) IsDeletion() bool {
	return e.NewText == "" && e.EndOffset > e.StartOffset
}

// Replace returns an edit replacing [start, end) with text.
func Replace(start, end int, text string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

// Delete returns an edit removing [start, end).
func Delete(start, end int) TextEdit {
	return Replace(start, end, "")
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, offset, text)
}
