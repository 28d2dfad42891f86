package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/repository"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
)

// AvailabilityHandler serves the read-only planning views: the per-dock
// slot grid, the slot search, the calendar projection and the
// utilization report.  All of these work from a snapshot read; the
// write path re-validates under the dock lock, so stale reads cost a
// retry, never a double booking.
type AvailabilityHandler struct {
    appts      *repository.AppointmentRepo
    docks      *repository.DockRepo
    carriers   *repository.CarrierRepo
    warehouses *repository.WarehouseRepo
    grid       GridConfig
}

// NewAvailabilityHandler builds the handler and panics on nil dependencies.
func NewAvailabilityHandler(appts *repository.AppointmentRepo, docks *repository.DockRepo, carriers *repository.CarrierRepo, warehouses *repository.WarehouseRepo, grid GridConfig) *AvailabilityHandler {
    if appts == nil || docks == nil || carriers == nil || warehouses == nil {
        panic("handler: nil repository passed to NewAvailabilityHandler")
    }
    return &AvailabilityHandler{appts: appts, docks: docks, carriers: carriers, warehouses: warehouses, grid: grid}
}

type dockAvailability struct {
    DockID   uint64            `json:"dock_id"`
    DockCode string            `json:"dock_code"`
    DockName string            `json:"dock_name"`
    Type     string            `json:"type"`
    Status   string            `json:"status"`
    Slots    []scheduling.Slot `json:"slots"`
}

// GetAvailability returns the discretized slot grid of every matching
// dock on one date.  Docks in maintenance or closed are included with
// every slot blocked, so the grid shape stays identical across docks.
func (h *AvailabilityHandler) GetAvailability(c echo.Context) error {
    warehouseID, date, dockType, err := h.parseGridQuery(c)
    if err != nil {
        return respondEngineError(c, err)
    }

    ctx := c.Request().Context()
    docks, err := h.docks.List(ctx, &warehouseID, dockType, "")
    if err != nil {
        return respondEngineError(c, err)
    }
    ids := make([]uint64, len(docks))
    for i, d := range docks {
        ids[i] = d.ID
    }
    busy, err := h.appts.ActiveWindowsByDocksDate(ctx, ids, date)
    if err != nil {
        return respondEngineError(c, err)
    }

    // The shared boundary axis: every dock's slot sequence lines up with
    // these start times, so UIs render one column header row.
    axis, err := scheduling.ComputeAvailability(date, h.grid.GranularityMin, h.grid.Operating, nil)
    if err != nil {
        return respondEngineError(c, err)
    }
    boundaries := make([]string, len(axis))
    for i, s := range axis {
        boundaries[i] = s.Start.Format(time.RFC3339)
    }

    perDock := make([]dockAvailability, 0, len(docks))
    for _, d := range docks {
        slots, err := scheduling.ComputeAvailability(date, h.grid.GranularityMin, h.grid.Operating, busy[d.ID])
        if err != nil {
            return respondEngineError(c, err)
        }
        if d.Status == model.DockStatusMaintenance || d.Status == model.DockStatusClosed {
            for i := range slots {
                slots[i].Available = false
            }
        }
        perDock = append(perDock, dockAvailability{
            DockID:   d.ID,
            DockCode: d.Code,
            DockName: d.Name,
            Type:     d.Type,
            Status:   d.Status,
            Slots:    slots,
        })
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":                date.UTC().Format("2006-01-02"),
        "granularity_minutes": h.grid.GranularityMin,
        "slots":               boundaries,
        "docks":               perDock,
    })
}

// SearchSlots finds bookable windows of a requested duration across the
// warehouse's docks.  Docks are filtered by type, status and vehicle
// fit first; each surviving dock's grid is then scanned greedily for
// non-overlapping runs of free slots.  Results are sorted by start
// time, then dock code.
func (h *AvailabilityHandler) SearchSlots(c echo.Context) error {
    warehouseID, date, dockType, err := h.parseGridQuery(c)
    if err != nil {
        return respondEngineError(c, err)
    }
    if dockType == "" {
        dockType = model.DockTypeOutbound
    }
    duration, err := parseUintQuery(c, "duration_minutes")
    if err != nil {
        return respondEngineError(c, err)
    }
    if duration == nil {
        return respondEngineError(c, scheduling.Validationf("duration_minutes is required"))
    }
    vehicleLength, err := parseFloatQuery(c, "vehicle_length_m")
    if err != nil {
        return respondEngineError(c, err)
    }
    vehicleHeight, err := parseFloatQuery(c, "vehicle_height_m")
    if err != nil {
        return respondEngineError(c, err)
    }

    ctx := c.Request().Context()
    docks, err := h.docks.List(ctx, &warehouseID, dockType, "")
    if err != nil {
        return respondEngineError(c, err)
    }
    eligible := scheduling.FilterDocks(docks, dockType, vehicleLength, vehicleHeight)
    ids := make([]uint64, len(eligible))
    for i, d := range eligible {
        ids[i] = d.ID
    }
    busy, err := h.appts.ActiveWindowsByDocksDate(ctx, ids, date)
    if err != nil {
        return respondEngineError(c, err)
    }

    candidates := make([]scheduling.Candidate, 0)
    for _, d := range eligible {
        slots, err := scheduling.ComputeAvailability(date, h.grid.GranularityMin, h.grid.Operating, busy[d.ID])
        if err != nil {
            return respondEngineError(c, err)
        }
        candidates = append(candidates, scheduling.FindWindows(d, slots, int(*duration), h.grid.GranularityMin)...)
    }
    scheduling.SortCandidates(candidates)
    return c.JSON(http.StatusOK, echo.Map{
        "date":             date.UTC().Format("2006-01-02"),
        "duration_minutes": *duration,
        "items":            candidates,
    })
}

// parseGridQuery extracts the common warehouse_id/date/type parameters
// and verifies the warehouse exists.
func (h *AvailabilityHandler) parseGridQuery(c echo.Context) (uint64, time.Time, string, error) {
    warehouseID, err := parseUintQuery(c, "warehouse_id")
    if err != nil {
        return 0, time.Time{}, "", err
    }
    if warehouseID == nil {
        return 0, time.Time{}, "", scheduling.Validationf("warehouse_id is required")
    }
    date, err := parseDate(c.QueryParam("date"))
    if err != nil {
        return 0, time.Time{}, "", err
    }
    dockType := c.QueryParam("type")
    if dockType != "" && !model.ValidDockType(dockType) {
        return 0, time.Time{}, "", scheduling.Validationf("invalid dock type %q", dockType)
    }
    ok, err := h.warehouses.Exists(c.Request().Context(), *warehouseID)
    if err != nil {
        return 0, time.Time{}, "", err
    }
    if !ok {
        return 0, time.Time{}, "", repository.ErrWarehouseNotFound
    }
    return *warehouseID, date, dockType, nil
}
