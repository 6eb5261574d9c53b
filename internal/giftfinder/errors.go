package giftfinder

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable is returned when every catalog lookup of a
// turn failed. It distinguishes "provider down" from "no matches",
// which is a successful result with needsMoreInfo set.
var ErrProviderUnavailable = errors.New("catalog provider unavailable")

// ValidationError marks malformed caller input. It is surfaced before
// any catalog or model call is made.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("invalid request: %v", e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

// InvalidResponseError means the model produced a draft the shaper
// could not repair. Not retryable; it points at a prompt or schema
// defect rather than a transient failure.
type InvalidResponseError struct {
	Reason string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid model response: %s", e.Reason)
}

// TimeoutError means the turn exceeded its overall deadline. No
// partial response accompanies it.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("request timed out: %v", e.Err) }
func (e *TimeoutError) Unwrap() error { return e.Err }
