package models

import "time"

// CheckResult is what a completed cycle hands back to its caller.
type CheckResult struct {
	Identifier string
	Key        ResourceKey
	Outcome    CheckOutcome
	Artifact   *DiffArtifact // nil unless Outcome is OutcomeChanged
	CheckedAt  time.Time
	// Committed is true once the new content is durably stored, or when
	// nothing needed storing (OutcomeUnchanged).
	Committed bool
	// ReportPath is set when the artifact was also saved to disk.
	ReportPath string
}
