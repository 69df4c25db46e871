package propast

// Tree is the ordered result of a parse. Duplicate keys are all retained.
type Tree struct {
	Elements []Element
	Lines    []LineRecord
}

// Len returns the number of elements.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}

	return len(t.Elements)
}

// Lookup returns every element whose logical key equals key, in source order.
func (t *Tree) Lookup(key string) []*Element {
	if t == nil {
		return nil
	}

	var found []*Element

	for i := range t.Elements {
		if t.Elements[i].Key.Text == key {
			found = append(found, &t.Elements[i])
		}
	}

	return found
}

// Walk calls fn for every element and line record in source order.
// Exactly one of elem and line is non-nil per call. Walk stops early
// when fn returns false.
func (t *Tree) Walk(fn func(elem *Element, line *LineRecord) bool) {
	if t == nil {
		return
	}

	lineIdx := 0

	for i := range t.Elements {
		for lineIdx < len(t.Lines) && t.Lines[lineIdx].Index <= i {
			if !fn(nil, &t.Lines[lineIdx]) {
				return
			}
			lineIdx++
		}

		if !fn(&t.Elements[i], nil) {
			return
		}
	}

	for ; lineIdx < len(t.Lines); lineIdx++ {
		if !fn(nil, &t.Lines[lineIdx]) {
			return
		}
	}
}
