package manifestDiff

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

type Line struct {
	Op   Op
	Text string
}

func (l Line) String() string {
	switch l.Op {
	case Insert:
		return "+ " + l.Text
	case Delete:
		return "- " + l.Text
	}
	return "  " + l.Text
}

type ManifestDiffService struct{}

func NewManifestDiffService() *ManifestDiffService {
	return &ManifestDiffService{}
}

// Diff compares two documents line by line. Unchanged lines are kept only
// when they are within context lines of a change.
func (s *ManifestDiffService) Diff(before, after string, context int) []Line {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var all []Line
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffDelete:
			op = Delete
		}
		for _, text := range splitLines(d.Text) {
			all = append(all, Line{Op: op, Text: text})
		}
	}

	keep := make([]bool, len(all))
	for i, line := range all {
		if line.Op == Equal {
			continue
		}
		for j := i - context; j <= i+context; j++ {
			if j >= 0 && j < len(all) {
				keep[j] = true
			}
		}
	}

	var lines []Line
	for i, line := range all {
		if keep[i] {
			lines = append(lines, line)
		}
	}
	return lines
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}
