package models

import (
	"errors"
	"time"
)

// ErrRecordNotFound is returned when a history lookup finds nothing.
var ErrRecordNotFound = errors.New("record not found")

// CheckHistoryRecord is one row of the per-resource check history.
// Failed cycles are recorded too, with Outcome "error" and Error set.
type CheckHistoryRecord struct {
	CycleID      string    `parquet:"cycle_id,zstd"`
	Identifier   string    `parquet:"identifier,zstd"`
	Key          string    `parquet:"key,zstd"`
	Outcome      string    `parquet:"outcome,zstd"`
	CheckedAt    time.Time `parquet:"checked_at,zstd"`
	ContentSize  int64     `parquet:"content_size,zstd"`
	LinesAdded   int32     `parquet:"lines_added,zstd"`
	LinesDeleted int32     `parquet:"lines_deleted,zstd"`
	ReportPath   string    `parquet:"report_path,zstd,optional"`
	Error        string    `parquet:"error,zstd,optional"`
}

// OutcomeError is the Outcome value for cycles that did not complete.
const OutcomeError = "error"

// NewCheckHistoryRecord builds a record from a completed cycle.
func NewCheckHistoryRecord(cycleID string, result *CheckResult, contentSize int) CheckHistoryRecord {
	record := CheckHistoryRecord{
		CycleID:     cycleID,
		Identifier:  result.Identifier,
		Key:         result.Key.String(),
		Outcome:     result.Outcome.Kind.String(),
		CheckedAt:   result.CheckedAt,
		ContentSize: int64(contentSize),
		ReportPath:  result.ReportPath,
	}
	if result.Artifact != nil {
		record.LinesAdded = int32(result.Artifact.LinesAdded)
		record.LinesDeleted = int32(result.Artifact.LinesDeleted)
	}
	return record
}

// NewFailedCheckHistoryRecord builds a record for a cycle that ended in err.
func NewFailedCheckHistoryRecord(cycleID, identifier string, key ResourceKey, checkedAt time.Time, err error) CheckHistoryRecord {
	record := CheckHistoryRecord{
		CycleID:    cycleID,
		Identifier: identifier,
		Key:        key.String(),
		Outcome:    OutcomeError,
		CheckedAt:  checkedAt,
	}
	if err != nil {
		record.Error = err.Error()
	}
	return record
}
