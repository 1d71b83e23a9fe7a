package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineOp is the kind of a line in a line diff.
type LineOp int

const (
	LineEqual LineOp = iota
	LineInsert
	LineDelete
)

// DiffLine is one line of a line diff with its 1-based line numbers.
// OldNumber is 0 for inserted lines and NewNumber is 0 for deleted lines.
type DiffLine struct {
	Op        LineOp
	OldNumber int
	NewNumber int
	Text      string
}

// DiffProcessor computes line diffs with diffmatchpatch in line mode
type DiffProcessor struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffProcessor creates a new diff processor. The diff timeout is
// disabled so the result never depends on wall-clock time.
func NewDiffProcessor() *DiffProcessor {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &DiffProcessor{dmp: dmp}
}

// ProcessLines diffs two line sequences.
func (dp *DiffProcessor) ProcessLines(previous, current []string) []DiffLine {
	text1 := joinLines(previous)
	text2 := joinLines(current)

	chars1, chars2, lineArray := dp.dmp.DiffLinesToChars(text1, text2)
	diffs := dp.dmp.DiffMain(chars1, chars2, false)
	diffs = dp.dmp.DiffCharsToLines(diffs, lineArray)

	result := make([]DiffLine, 0, len(previous)+len(current))
	oldNum, newNum := 0, 0
	for _, d := range diffs {
		for _, line := range splitDiffText(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldNum++
				newNum++
				result = append(result, DiffLine{Op: LineEqual, OldNumber: oldNum, NewNumber: newNum, Text: line})
			case diffmatchpatch.DiffDelete:
				oldNum++
				result = append(result, DiffLine{Op: LineDelete, OldNumber: oldNum, Text: line})
			case diffmatchpatch.DiffInsert:
				newNum++
				result = append(result, DiffLine{Op: LineInsert, NewNumber: newNum, Text: line})
			}
		}
	}
	return result
}

// joinLines terminates every line with "\n" so each one is a distinct
// token for DiffLinesToChars, including the last.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// splitDiffText undoes joinLines for one diff segment.
func splitDiffText(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// DiffStatistics holds diff calculation results
type DiffStatistics struct {
	LinesAdded   int
	LinesDeleted int
	IsIdentical  bool
}

// CalculateStats counts inserted and deleted lines
func CalculateStats(lines []DiffLine) DiffStatistics {
	stats := DiffStatistics{}
	for _, l := range lines {
		switch l.Op {
		case LineInsert:
			stats.LinesAdded++
		case LineDelete:
			stats.LinesDeleted++
		}
	}
	stats.IsIdentical = stats.LinesAdded == 0 && stats.LinesDeleted == 0
	return stats
}
