package handler

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
)

type transitionRequest struct {
    Status string `json:"status"`
    Reason string `json:"reason"`
}

// TransitionAppointment advances an appointment through its lifecycle:
// scheduled, confirmed, in_progress, completed, with cancelled and
// no_show as terminal exits.  The appointment row and its dock row are
// both locked so the status change and any dock occupied/available flip
// commit together.
func (h *AppointmentHandler) TransitionAppointment(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return respondEngineError(c, scheduling.Validationf("invalid appointment id"))
    }
    var req transitionRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if !scheduling.ValidStatus(req.Status) {
        return respondEngineError(c, scheduling.Validationf("unknown status %q", req.Status))
    }
    return h.applyTransition(c, id, req.Status, req.Reason)
}

type cancelRequest struct {
    Reason string `json:"reason"`
}

// CancelAppointment is the dedicated cancellation endpoint.  It is the
// same state-machine transition as POST /transition with status
// cancelled, kept separate because carriers get cancel-only access.
func (h *AppointmentHandler) CancelAppointment(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return respondEngineError(c, scheduling.Validationf("invalid appointment id"))
    }
    var req cancelRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    return h.applyTransition(c, id, model.AppointmentCancelled, req.Reason)
}

func (h *AppointmentHandler) applyTransition(c echo.Context, id uint64, to, reason string) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), h.lockTimeout)
    defer cancel()

    tx, err := h.appts.DB().BeginTx(ctx, nil)
    if err != nil {
        return respondEngineError(c, err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    appt, err := h.appts.GetByIDTx(ctx, tx, id, true)
    if err != nil {
        return respondEngineError(c, lockErr(err, 0))
    }
    // Lock the dock too: the occupied/available flip below must not race
    // with a concurrent booking's conflict check on the same dock.
    dock, err := h.docks.GetByIDForUpdateTx(ctx, tx, appt.DockID)
    if err != nil {
        return respondEngineError(c, lockErr(err, appt.DockID))
    }

    effect, err := scheduling.ApplyTransition(appt, to, reason, time.Now().UTC())
    if err != nil {
        return respondEngineError(c, err)
    }
    if err := h.appts.UpdateStatusTx(ctx, tx, appt); err != nil {
        return respondEngineError(c, lockErr(err, dock.ID))
    }
    switch effect {
    case scheduling.DockEffectOccupy:
        err = h.docks.UpdateStatusTx(ctx, tx, dock.ID, model.DockStatusOccupied)
    case scheduling.DockEffectRelease:
        // Operator overrides win: a dock parked in maintenance or closed
        // stays there even when the occupying appointment finishes.
        if dock.Status == model.DockStatusOccupied {
            err = h.docks.UpdateStatusTx(ctx, tx, dock.ID, model.DockStatusAvailable)
        }
    }
    if err != nil {
        return respondEngineError(c, lockErr(err, dock.ID))
    }

    if err := tx.Commit(); err != nil {
        return respondEngineError(c, lockErr(err, dock.ID))
    }
    committed = true
    return c.JSON(http.StatusOK, appt)
}
