package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/repository"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
)

// maxCalendarRangeDays bounds the projection so a mistyped year cannot
// sweep the whole table into one response.
const maxCalendarRangeDays = 62

// GetCalendar projects appointments onto a resource/event structure
// consumable by scheduler UI components: one resource per dock, one
// colored event per appointment, carrier names resolved in bulk.
func (h *AvailabilityHandler) GetCalendar(c echo.Context) error {
    warehouseID, from, to, dockType, err := h.parseRangeQuery(c)
    if err != nil {
        return respondEngineError(c, err)
    }

    ctx := c.Request().Context()
    docks, err := h.docks.List(ctx, &warehouseID, dockType, "")
    if err != nil {
        return respondEngineError(c, err)
    }
    appts, err := h.appts.ListByWarehouseRange(ctx, warehouseID, from, to, dockType)
    if err != nil {
        return respondEngineError(c, err)
    }

    carrierIDs := make([]uint64, 0, len(appts))
    seen := make(map[uint64]bool, len(appts))
    for _, a := range appts {
        if !seen[a.CarrierID] {
            seen[a.CarrierID] = true
            carrierIDs = append(carrierIDs, a.CarrierID)
        }
    }
    names, err := h.carriers.NamesByIDs(ctx, carrierIDs)
    if err != nil {
        return respondEngineError(c, err)
    }

    cal := scheduling.BuildCalendar(docks, appts, names)
    return c.JSON(http.StatusOK, cal)
}

// parseRangeQuery extracts warehouse_id/from/to/type and verifies the
// warehouse exists and the range is sane.
func (h *AvailabilityHandler) parseRangeQuery(c echo.Context) (uint64, time.Time, time.Time, string, error) {
    warehouseID, err := parseUintQuery(c, "warehouse_id")
    if err != nil {
        return 0, time.Time{}, time.Time{}, "", err
    }
    if warehouseID == nil {
        return 0, time.Time{}, time.Time{}, "", scheduling.Validationf("warehouse_id is required")
    }
    from, err := parseDate(c.QueryParam("from"))
    if err != nil {
        return 0, time.Time{}, time.Time{}, "", err
    }
    to, err := parseDate(c.QueryParam("to"))
    if err != nil {
        return 0, time.Time{}, time.Time{}, "", err
    }
    if to.Before(from) {
        return 0, time.Time{}, time.Time{}, "", scheduling.Validationf("to must not be before from")
    }
    if to.Sub(from) > maxCalendarRangeDays*24*time.Hour {
        return 0, time.Time{}, time.Time{}, "", scheduling.Validationf("range must not exceed %d days", maxCalendarRangeDays)
    }
    dockType := c.QueryParam("type")
    if dockType != "" && !model.ValidDockType(dockType) {
        return 0, time.Time{}, time.Time{}, "", scheduling.Validationf("invalid dock type %q", dockType)
    }
    ok, err := h.warehouses.Exists(c.Request().Context(), *warehouseID)
    if err != nil {
        return 0, time.Time{}, time.Time{}, "", err
    }
    if !ok {
        return 0, time.Time{}, time.Time{}, "", repository.ErrWarehouseNotFound
    }
    return *warehouseID, from, to, dockType, nil
}
