package workspace

import (
	"fmt"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// ChangeKind says how a document differs between two solutions.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota
	ChangeAdded
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeAdded:
		return "added"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is one document that differs between two solutions.
type Change struct {
	Kind     ChangeKind
	Document *Document // as in the newer solution
	OldText  string    // empty for added documents
}

// Path is the file the change writes.
func (c Change) Path() string { return c.Document.filePath }

// Changes lists the documents of next that are new or whose text differs
// from prev, in project and document order.
func Changes(prev, next *Solution) []Change {
	var out []Change
	for _, d := range next.Documents() {
		old, ok := prev.Document(d.id)
		switch {
		case !ok:
			out = append(out, Change{Kind: ChangeAdded, Document: d})
		case old.text != d.text:
			out = append(out, Change{Kind: ChangeModified, Document: d, OldText: old.text})
		}
	}
	return out
}

const contextLines = 3

type diffLine struct {
	op   byte // ' ', '-' or '+'
	text string
}

// Diff renders c as a unified diff with three lines of context.
func Diff(c Change, relPath string) string {
	lines := diffLines(c.OldText, c.Document.text)

	var b strings.Builder
	if c.Kind == ChangeAdded {
		b.WriteString("--- /dev/null\n")
	} else {
		fmt.Fprintf(&b, "--- a/%s\n", relPath)
	}
	fmt.Fprintf(&b, "+++ b/%s\n", relPath)

	// oldNo[i] and newNo[i] are the 1-based line numbers line i starts at.
	oldNo := make([]int, len(lines)+1)
	newNo := make([]int, len(lines)+1)
	oldNo[0], newNo[0] = 1, 1
	for i, l := range lines {
		oldNo[i+1], newNo[i+1] = oldNo[i], newNo[i]
		if l.op != '+' {
			oldNo[i+1]++
		}
		if l.op != '-' {
			newNo[i+1]++
		}
	}

	for _, h := range hunks(lines) {
		oldCount := oldNo[h[1]] - oldNo[h[0]]
		newCount := newNo[h[1]] - newNo[h[0]]
		oldStart, newStart := oldNo[h[0]], newNo[h[0]]
		if oldCount == 0 {
			oldStart--
		}
		if newCount == 0 {
			newStart--
		}
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for _, l := range lines[h[0]:h[1]] {
			b.WriteByte(l.op)
			b.WriteString(l.text)
			if !strings.HasSuffix(l.text, "\n") {
				b.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return b.String()
}

// diffLines computes a line-level diff of a and b.
func diffLines(a, b string) []diffLine {
	dmp := diffpatch.New()
	ca, cb, index := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), index)

	var out []diffLine
	for _, d := range diffs {
		op := byte(' ')
		switch d.Type {
		case diffpatch.DiffDelete:
			op = '-'
		case diffpatch.DiffInsert:
			op = '+'
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text != "" {
				out = append(out, diffLine{op: op, text: text})
			}
		}
	}
	return out
}

// hunks groups changed lines with their context into [start, end) ranges.
func hunks(lines []diffLine) [][2]int {
	var out [][2]int
	for i, l := range lines {
		if l.op == ' ' {
			continue
		}
		start, end := max(0, i-contextLines), min(len(lines), i+contextLines+1)
		if n := len(out); n > 0 && start <= out[n-1][1] {
			out[n-1][1] = max(out[n-1][1], end)
			continue
		}
		out = append(out, [2]int{start, end})
	}
	return out
}
