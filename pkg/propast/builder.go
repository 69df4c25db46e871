package propast

// Builder accumulates elements and line records while a parse is replayed.
// A Builder is not safe for concurrent use.
type Builder struct {
	tree *Tree
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{tree: &Tree{}}
}

// Record appends an element. Key and value must already be resolved.
func (b *Builder) Record(elem Element) {
	b.tree.Elements = append(b.tree.Elements, elem)
}

// RecordCommentOrBlank notes a line that holds no element.
func (b *Builder) RecordCommentOrBlank(kind LineKind, span Span) {
	b.tree.Lines = append(b.tree.Lines, LineRecord{
		Kind:  kind,
		Span:  span,
		Index: len(b.tree.Elements),
	})
}

// MarkError flags the last element that starts before offset and reaches
// the physical line beginning at lineStart.
func (b *Builder) MarkError(offset, lineStart int) {
	for i := len(b.tree.Elements) - 1; i >= 0; i-- {
		line := b.tree.Elements[i].Line
		if line.Start <= offset && line.End >= lineStart {
			b.tree.Elements[i].HasError = true
			return
		}
	}
}

// Build returns the tree. The builder must not be used afterwards.
func (b *Builder) Build() *Tree {
	tree := b.tree
	b.tree = nil

	return tree
}
