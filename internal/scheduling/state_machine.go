package scheduling

import (
    "strings"
    "time"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

// DockEffect describes what a successful appointment transition does to
// the dock's status.  The handler applies the effect in the same
// transaction as the appointment write so a dock's "occupied" status
// always corresponds to exactly the appointment currently in progress.
type DockEffect int

const (
    // DockEffectNone leaves the dock status untouched.
    DockEffectNone DockEffect = iota
    // DockEffectOccupy sets the dock status to occupied.
    DockEffectOccupy
    // DockEffectRelease sets the dock status back to available.
    DockEffectRelease
)

// allowTransition is the directed graph of legal appointment status
// flows.  Terminal states (completed, cancelled, no_show) have no
// outgoing edges; in particular a completed appointment can never be
// cancelled and a scheduled appointment cannot jump straight to
// completed without passing through in_progress.
var allowTransition = map[string][]string{
    model.AppointmentScheduled: {
        model.AppointmentConfirmed,
        model.AppointmentInProgress,
        model.AppointmentCancelled,
        model.AppointmentNoShow,
    },
    model.AppointmentConfirmed: {
        model.AppointmentInProgress,
        model.AppointmentCancelled,
        model.AppointmentNoShow,
    },
    model.AppointmentInProgress: {
        model.AppointmentCompleted,
        model.AppointmentCancelled,
        model.AppointmentNoShow,
    },
    model.AppointmentCompleted: {},
    model.AppointmentCancelled: {},
    model.AppointmentNoShow:    {},
}

// CanTransition reports whether from -> to is a legal status flow.  A
// self-transition is not legal; re-cancelling a cancelled appointment
// surfaces as an illegal transition rather than silently rewriting state.
func CanTransition(from, to string) bool {
    allowed, ok := allowTransition[from]
    if !ok {
        return false
    }
    for _, s := range allowed {
        if s == to {
            return true
        }
    }
    return false
}

// IsTerminal reports whether no further transitions are permitted from
// the given status.
func IsTerminal(status string) bool {
    allowed, ok := allowTransition[status]
    return ok && len(allowed) == 0
}

// ValidStatus reports whether the status is known to the state machine.
func ValidStatus(status string) bool {
    _, ok := allowTransition[status]
    return ok
}

// ApplyTransition mutates the appointment to the target status,
// maintaining the actual start/end timestamps, and returns the effect the
// transition has on the owning dock.  Cancellation requires a non-empty
// reason; for no_show the reason is optional.  The appointment is left
// unmodified when an error is returned.
func ApplyTransition(a *model.Appointment, to, reason string, now time.Time) (DockEffect, error) {
    from := a.Status
    if !CanTransition(from, to) {
        return DockEffectNone, &IllegalTransitionError{From: from, To: to}
    }

    effect := DockEffectNone
    switch to {
    case model.AppointmentInProgress:
        effect = DockEffectOccupy
        if a.ActualStart == nil {
            t := now
            a.ActualStart = &t
        }
    case model.AppointmentCompleted:
        effect = DockEffectRelease
        if a.ActualEnd == nil {
            t := now
            a.ActualEnd = &t
        }
    case model.AppointmentCancelled:
        if strings.TrimSpace(reason) == "" {
            return DockEffectNone, Validationf("cancellation requires a reason")
        }
        a.CancelReason = &reason
        // The dock is only freed when this appointment was the one
        // holding it occupied.
        if from == model.AppointmentInProgress {
            effect = DockEffectRelease
        }
    case model.AppointmentNoShow:
        if r := strings.TrimSpace(reason); r != "" {
            a.CancelReason = &r
        }
        if from == model.AppointmentInProgress {
            effect = DockEffectRelease
        }
    }

    a.Status = to
    return effect, nil
}
