package scheduling

import "time"

// FindConflict scans the active (non-cancelled) windows of a dock/date and
// returns the first one overlapping the proposed [start, end) window, or
// nil when the proposal is conflict-free.  excludeID lets an update ignore
// the appointment being repositioned; pass 0 for creates.
//
// The caller is responsible for fetching only windows of the same dock and
// date with status other than cancelled, and for holding whatever lock
// makes the subsequent write atomic with this check.
func FindConflict(existing []Window, start, end time.Time, excludeID uint64) *Window {
    proposed := Window{Start: start, End: end}
    for i := range existing {
        if excludeID != 0 && existing[i].AppointmentID == excludeID {
            continue
        }
        if existing[i].Overlaps(proposed) {
            w := existing[i]
            return &w
        }
    }
    return nil
}

// HasConflict is the boolean form of FindConflict.
func HasConflict(existing []Window, start, end time.Time, excludeID uint64) bool {
    return FindConflict(existing, start, end, excludeID) != nil
}
