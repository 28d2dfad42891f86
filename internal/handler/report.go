package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
)

// GetUtilization aggregates appointment outcomes over a date range:
// total counts, completion/cancellation/no-show rates and realized dock
// hours, overall and per dock.
func (h *AvailabilityHandler) GetUtilization(c echo.Context) error {
    warehouseID, from, to, dockType, err := h.parseRangeQuery(c)
    if err != nil {
        return respondEngineError(c, err)
    }

    appts, err := h.appts.ListByWarehouseRange(c.Request().Context(), warehouseID, from, to, dockType)
    if err != nil {
        return respondEngineError(c, err)
    }
    report := scheduling.Summarize(appts)
    return c.JSON(http.StatusOK, echo.Map{
        "from":   from.UTC().Format("2006-01-02"),
        "to":     to.UTC().Format("2006-01-02"),
        "report": report,
    })
}
