package differ

import "fmt"

// DiffRenderError reports that a diff document could not be produced.
type DiffRenderError struct {
	Err error
}

func (e *DiffRenderError) Error() string {
	return fmt.Sprintf("failed to render diff: %v", e.Err)
}

func (e *DiffRenderError) Unwrap() error {
	return e.Err
}
