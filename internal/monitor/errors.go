package monitor

import "fmt"

// DetectionStage names the step of a cycle that failed.
type DetectionStage string

const (
	StageLoad   DetectionStage = "load"
	StageRender DetectionStage = "render"
	StageSave   DetectionStage = "save"
)

// DetectionError reports a cycle that did not complete. Err is the
// *datastore.StoreReadError, *differ.DiffRenderError or
// *datastore.StoreWriteError that stopped it.
type DetectionError struct {
	Stage      DetectionStage
	Identifier string
	Err        error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("change detection for %s failed at %s: %v", e.Identifier, e.Stage, e.Err)
}

func (e *DetectionError) Unwrap() error {
	return e.Err
}

// NotificationError reports a committed cycle whose notification could not
// be delivered. The cache already holds the new content.
type NotificationError struct {
	Identifier string
	Err        error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification for %s failed: %v", e.Identifier, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
