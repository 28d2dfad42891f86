// Package handler exposes the HTTP surface of the dock scheduling engine.
// Handlers own transactions (begin / commit / deferred rollback), run the
// scheduling engine's checks under the dock row lock, and translate the
// engine's error taxonomy into HTTP responses.
package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/repository"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
)

// GridConfig carries the discretization parameters shared by the
// availability and search handlers.
type GridConfig struct {
    GranularityMin int
    Operating      scheduling.OperatingWindow
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil && id != 0
}

// parseUintQuery parses an optional positive numeric query parameter.
// Returns nil when the parameter is absent.
func parseUintQuery(c echo.Context, name string) (*uint64, error) {
    raw := c.QueryParam(name)
    if raw == "" {
        return nil, nil
    }
    v, err := strconv.ParseUint(raw, 10, 64)
    if err != nil || v == 0 {
        return nil, scheduling.Validationf("invalid %s", name)
    }
    return &v, nil
}

// parseFloatQuery parses an optional positive float query parameter.
func parseFloatQuery(c echo.Context, name string) (*float64, error) {
    raw := c.QueryParam(name)
    if raw == "" {
        return nil, nil
    }
    v, err := strconv.ParseFloat(raw, 64)
    if err != nil || v <= 0 {
        return nil, scheduling.Validationf("invalid %s", name)
    }
    return &v, nil
}

// parseDate parses a "2006-01-02" value into midnight UTC.
func parseDate(raw string) (time.Time, error) {
    t, err := time.Parse("2006-01-02", raw)
    if err != nil {
        return time.Time{}, scheduling.Validationf("invalid date %q, expected YYYY-MM-DD", raw)
    }
    return t.UTC(), nil
}

// combineClock attaches an "HH:MM" clock value to a date.
func combineClock(date time.Time, clock string) (time.Time, error) {
    min, err := scheduling.ParseClock(clock)
    if err != nil {
        return time.Time{}, scheduling.Validationf("invalid time %q, expected HH:MM", clock)
    }
    return scheduling.DayOf(date).Add(time.Duration(min) * time.Minute), nil
}

// respondEngineError maps the scheduling error taxonomy and repository
// sentinels onto HTTP responses.  Conflict and unavailability responses
// carry the specifics (conflicting window, dock status) so the caller
// can self-correct without re-querying.
func respondEngineError(c echo.Context, err error) error {
    var vErr *scheduling.ValidationError
    if errors.As(err, &vErr) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": vErr.Msg})
    }
    var cfErr *scheduling.ConflictError
    if errors.As(err, &cfErr) {
        return c.JSON(http.StatusConflict, echo.Map{
            "error": "window conflicts with an existing appointment",
            "conflict": echo.Map{
                "appointment_id": cfErr.AppointmentID,
                "start":          cfErr.Start.Format(time.RFC3339),
                "end":            cfErr.End.Format(time.RFC3339),
            },
        })
    }
    var duErr *scheduling.DockUnavailableError
    if errors.As(err, &duErr) {
        return c.JSON(http.StatusConflict, echo.Map{
            "error":       "dock cannot accept new bookings",
            "dock_status": duErr.Status,
        })
    }
    var itErr *scheduling.IllegalTransitionError
    if errors.As(err, &itErr) {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error": itErr.Error(),
            "from":  itErr.From,
            "to":    itErr.To,
        })
    }
    var ctErr *scheduling.ContentionTimeoutError
    if errors.As(err, &ctErr) {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{
            "error":     "dock schedule is contended, retry with backoff",
            "retryable": true,
        })
    }
    switch {
    case errors.Is(err, repository.ErrDockNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "dock not found"})
    case errors.Is(err, repository.ErrAppointmentNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "appointment not found"})
    case errors.Is(err, repository.ErrCarrierNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "carrier not found"})
    case errors.Is(err, repository.ErrWarehouseNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "warehouse not found"})
    case errors.Is(err, repository.ErrDuplicateCode):
        return c.JSON(http.StatusConflict, echo.Map{"error": "dock code already exists"})
    }
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// lockErr converts driver lock timeouts and context deadline hits on the
// write path into the retryable contention error.
func lockErr(err error, dockID uint64) error {
    if repository.IsLockTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
        return &scheduling.ContentionTimeoutError{DockID: dockID}
    }
    return err
}
