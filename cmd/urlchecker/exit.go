package main

import (
	"errors"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/aleister1102/urlchecker/internal/monitor"
)

// Process exit codes
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitCycleFailed  = 2
	ExitNotifyFailed = 3
)

// exitError carries the process exit code for a command failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// checkFailure classifies an error returned by a check cycle. The committed
// result of a cycle whose notification failed is already persisted, so it
// gets its own code.
func checkFailure(err error) error {
	var notifyErr *monitor.NotificationError
	if errors.As(err, &notifyErr) {
		return &exitError{code: ExitNotifyFailed, err: err}
	}
	if errors.Is(err, common.ErrInvalidInput) {
		return &exitError{code: ExitUsage, err: err}
	}
	return &exitError{code: ExitCycleFailed, err: err}
}

func exitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsage
}
