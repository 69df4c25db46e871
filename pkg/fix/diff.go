package fix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextLines is the number of unchanged lines shown around a change.
const ContextLines = 3

// LineKind says how a diff line relates to the original.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdd
	LineRemove
)

// Prefix is the unified diff marker for the kind.
func (k LineKind) Prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	default:
		return " "
	}
}

// DiffLine is one line of a hunk, without its marker or line terminator.
type DiffLine struct {
	Kind    LineKind
	Content string
}

// Hunk is a run of changes with surrounding context. Start lines are
// 1-based, except that an empty side starts at the line before it.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Header is the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@",
		h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Diff is the line diff between a file and its fixed content.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// GenerateDiff diffs original against modified line by line. It returns
// nil when the two have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	a, b := splitLines(original), splitLines(modified)
	if slices.Equal(a, b) {
		return nil
	}

	matcher := difflib.NewMatcher(a, b)
	groups := matcher.GetGroupedOpCodes(ContextLines)
	if len(groups) == 0 {
		return nil
	}

	d := &Diff{Path: path}
	for _, group := range groups {
		d.Hunks = append(d.Hunks, d.hunk(group, a, b))
	}
	return d
}

func (d *Diff) hunk(group []difflib.OpCode, a, b []string) Hunk {
	first, last := group[0], group[len(group)-1]

	h := Hunk{
		OriginalStart: hunkStart(first.I1, last.I2),
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: hunkStart(first.J1, last.J2),
		ModifiedCount: last.J2 - first.J1,
	}

	for _, op := range group {
		if op.Tag == 'e' {
			for _, line := range a[op.I1:op.I2] {
				h.Lines = append(h.Lines, DiffLine{Kind: LineContext, Content: line})
			}
			continue
		}
		if op.Tag == 'r' || op.Tag == 'd' {
			for _, line := range a[op.I1:op.I2] {
				h.Lines = append(h.Lines, DiffLine{Kind: LineRemove, Content: line})
				d.Deletions++
			}
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			for _, line := range b[op.J1:op.J2] {
				h.Lines = append(h.Lines, DiffLine{Kind: LineAdd, Content: line})
				d.Additions++
			}
		}
	}

	return h
}

func hunkStart(lo, hi int) int {
	if hi == lo {
		return lo
	}
	return lo + 1
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// GitHeader is the "diff --git" line for the file.
func (d *Diff) GitHeader() string {
	p := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", p, p)
}

// String renders the diff in unified format, file headers included.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	p := strings.TrimPrefix(d.Path, "/")

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", p, p)
	for _, h := range d.Hunks {
		sb.WriteString(h.Header())
		sb.WriteByte('\n')
		for _, line := range h.Lines {
			sb.WriteString(line.Kind.Prefix())
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// splitLines splits on '\n' and drops each line's '\r', so a CRLF file
// diffs the same as its LF form. A final terminator does not open a line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
