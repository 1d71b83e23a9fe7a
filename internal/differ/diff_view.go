package differ

import "bytes"

// RowKind is the kind of a rendered diff row.
type RowKind int

const (
	RowContext RowKind = iota
	RowAdded
	RowRemoved
	RowSkipped
)

// DiffRow is one row of the rendered diff. For RowSkipped only Skipped is set.
type DiffRow struct {
	Kind      RowKind
	OldNumber int
	NewNumber int
	Text      string
	Skipped   int
}

// Marker returns the gutter symbol of the row.
func (r DiffRow) Marker() string {
	switch r.Kind {
	case RowAdded:
		return "+"
	case RowRemoved:
		return "-"
	default:
		return " "
	}
}

// NewlineChange describes how the final newline of the content changed.
// Lines are split without it, so the row diff cannot show it.
type NewlineChange int

const (
	NewlineUnchanged NewlineChange = iota
	NewlineAdded
	NewlineRemoved
)

// NewlineChangeOf compares the final newline of previous and current. Empty
// content has no final line, so it never counts as a newline change.
func NewlineChangeOf(previous, current []byte) NewlineChange {
	if len(previous) == 0 || len(current) == 0 {
		return NewlineUnchanged
	}
	had := bytes.HasSuffix(previous, []byte("\n"))
	has := bytes.HasSuffix(current, []byte("\n"))
	switch {
	case !had && has:
		return NewlineAdded
	case had && !has:
		return NewlineRemoved
	default:
		return NewlineUnchanged
	}
}

// DiffView is everything a document renderer needs. It carries no
// timestamps so rendering the same view twice yields the same bytes.
type DiffView struct {
	Title        string
	Rows         []DiffRow
	LinesAdded   int
	LinesDeleted int
	Identical    bool
	TooLarge     bool
	PreviousSize int
	CurrentSize  int
	MaxSizeMB    int
	// NewlineAtEOF is only set when the view was built from raw content.
	NewlineAtEOF NewlineChange
}

// BuildRows converts a line diff into rows, collapsing unchanged runs that
// are more than contextLines away from any change. A negative contextLines
// keeps every line.
func BuildRows(lines []DiffLine, contextLines int) []DiffRow {
	rows := make([]DiffRow, 0, len(lines))
	if contextLines < 0 {
		for _, l := range lines {
			rows = append(rows, toRow(l))
		}
		return rows
	}

	i := 0
	for i < len(lines) {
		if lines[i].Op != LineEqual {
			rows = append(rows, toRow(lines[i]))
			i++
			continue
		}

		start := i
		for i < len(lines) && lines[i].Op == LineEqual {
			i++
		}
		end := i // exclusive

		keepHead := contextLines
		if start == 0 {
			keepHead = 0
		}
		keepTail := contextLines
		if end == len(lines) {
			keepTail = 0
		}

		if end-start <= keepHead+keepTail {
			for j := start; j < end; j++ {
				rows = append(rows, toRow(lines[j]))
			}
			continue
		}

		for j := start; j < start+keepHead; j++ {
			rows = append(rows, toRow(lines[j]))
		}
		rows = append(rows, DiffRow{Kind: RowSkipped, Skipped: end - start - keepHead - keepTail})
		for j := end - keepTail; j < end; j++ {
			rows = append(rows, toRow(lines[j]))
		}
	}
	return rows
}

func toRow(l DiffLine) DiffRow {
	row := DiffRow{OldNumber: l.OldNumber, NewNumber: l.NewNumber, Text: l.Text}
	switch l.Op {
	case LineInsert:
		row.Kind = RowAdded
	case LineDelete:
		row.Kind = RowRemoved
	default:
		row.Kind = RowContext
	}
	return row
}
