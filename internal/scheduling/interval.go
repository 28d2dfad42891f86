// Package scheduling implements the dock appointment engine: half-open
// interval conflict detection, slot-grid availability, contiguous-window
// search, the appointment state machine and the read-side projections
// (calendar, utilization).  Everything in this package is pure – it
// operates on values fetched by the caller and performs no I/O – so the
// same code backs both the write-path validation and the read-only views.
package scheduling

import "time"

// Window is a half-open time interval [Start, End) belonging to an
// appointment.  AppointmentID is retained so conflict results can tell the
// caller which reservation is in the way.
type Window struct {
    AppointmentID uint64
    Start         time.Time
    End           time.Time
}

// Overlaps reports whether two half-open intervals intersect.  Exact
// adjacency (one ending where the other starts) is not an overlap: an
// appointment ending at 10:00 and another starting at 10:00 can share the
// dock.
func (w Window) Overlaps(o Window) bool {
    return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }
