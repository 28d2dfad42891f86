package scheduling

import (
    "fmt"
    "time"
)

// ValidationError reports malformed input (end before start, missing
// required fields, out-of-range durations).  It is never partially
// applied; the caller can correct the request locally.
type ValidationError struct {
    Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) *ValidationError {
    return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports that a proposed window overlaps an existing active
// reservation on the dock.  The conflicting window is carried so the
// caller can self-correct without re-querying.
type ConflictError struct {
    AppointmentID uint64
    Start         time.Time
    End           time.Time
}

func (e *ConflictError) Error() string {
    return fmt.Sprintf("window conflicts with appointment %d (%s - %s)",
        e.AppointmentID, e.Start.Format(time.RFC3339), e.End.Format(time.RFC3339))
}

// DockUnavailableError reports that the dock is not in "available" status
// and therefore cannot accept new bookings, even for time-wise free
// windows.  The current status is carried for caller feedback.
type DockUnavailableError struct {
    DockID uint64
    Status string
}

func (e *DockUnavailableError) Error() string {
    return fmt.Sprintf("dock %d is not available (status=%s)", e.DockID, e.Status)
}

// IllegalTransitionError reports a status transition not permitted from
// the current state, such as cancelling a completed appointment.
type IllegalTransitionError struct {
    From string
    To   string
}

func (e *IllegalTransitionError) Error() string {
    return fmt.Sprintf("illegal appointment transition: %s -> %s", e.From, e.To)
}

// ContentionTimeoutError reports that the per-dock lock could not be
// acquired within the configured bound.  The request is retryable with
// backoff.
type ContentionTimeoutError struct {
    DockID uint64
}

func (e *ContentionTimeoutError) Error() string {
    return fmt.Sprintf("timed out waiting for dock %d schedule lock", e.DockID)
}
