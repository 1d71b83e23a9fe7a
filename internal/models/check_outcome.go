package models

// OutcomeKind classifies a single check cycle.
type OutcomeKind int

const (
	// OutcomeFirstObservation means no prior entry existed for the key.
	OutcomeFirstObservation OutcomeKind = iota
	// OutcomeUnchanged means the fetched content is byte-identical to the prior entry.
	OutcomeUnchanged
	// OutcomeChanged means the fetched content differs from the prior entry.
	OutcomeChanged
)

// String returns the lower snake case name stored in check history.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeFirstObservation:
		return "first_observation"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// CheckOutcome is the classification of one cycle. Previous and Current are
// only populated for OutcomeChanged.
type CheckOutcome struct {
	Kind     OutcomeKind
	Previous []byte
	Current  []byte
}

// NewFirstObservation creates the outcome for a resource seen for the first time.
func NewFirstObservation() CheckOutcome {
	return CheckOutcome{Kind: OutcomeFirstObservation}
}

// NewUnchanged creates the outcome for identical content.
func NewUnchanged() CheckOutcome {
	return CheckOutcome{Kind: OutcomeUnchanged}
}

// NewChanged creates the outcome carrying both versions of the content.
func NewChanged(previous, current []byte) CheckOutcome {
	return CheckOutcome{Kind: OutcomeChanged, Previous: previous, Current: current}
}

// IsChanged reports whether the outcome carries a content change.
func (o CheckOutcome) IsChanged() bool {
	return o.Kind == OutcomeChanged
}
