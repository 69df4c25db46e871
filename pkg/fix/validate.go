package fix

import (
	"cmp"
	"fmt"
	"slices"
)

// RangeError is returned for an edit whose range does not fit the content.
type RangeError struct {
	Edit       TextEdit
	ContentLen int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("edit [%d:%d] out of range for %d bytes",
		e.Edit.StartOffset, e.Edit.EndOffset, e.ContentLen)
}

// Validate checks that every edit lies within content of length contentLen.
func Validate(edits []TextEdit, contentLen int) error {
	for _, e := range edits {
		if e.StartOffset < 0 || e.EndOffset < e.StartOffset || e.EndOffset > contentLen {
			return &RangeError{Edit: e, ContentLen: contentLen}
		}
	}
	return nil
}

// Sort orders edits by start offset, then end offset.
func Sort(edits []TextEdit) {
	slices.SortStableFunc(edits, func(a, b TextEdit) int {
		return cmp.Or(
			cmp.Compare(a.StartOffset, b.StartOffset),
			cmp.Compare(a.EndOffset, b.EndOffset),
		)
	})
}

// Prepare validates edits and orders them for ApplyEdits. Overlapping
// deletions are merged into their union; any other edit that overlaps an
// earlier one is returned in skipped and left for a later pass. The input
// slice is not modified.
func Prepare(edits []TextEdit, contentLen int) (accepted, skipped []TextEdit, err error) {
	if len(edits) == 0 {
		return nil, nil, nil
	}
	if err := Validate(edits, contentLen); err != nil {
		return nil, nil, err
	}

	sorted := slices.Clone(edits)
	Sort(sorted)

	current := sorted[0]
	for _, e := range sorted[1:] {
		switch {
		case e == current:
			// Two rules asking for the same change.
		case e.StartOffset >= current.EndOffset && e.StartOffset > current.StartOffset:
			accepted = append(accepted, current)
			current = e
		case current.NewText == "" && e.NewText == "":
			current.EndOffset = max(current.EndOffset, e.EndOffset)
		default:
			skipped = append(skipped, e)
		}
	}
	accepted = append(accepted, current)

	return accepted, skipped, nil
}
