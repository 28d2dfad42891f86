package handler

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/queue"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/repository"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
    queue_publisher "github.com/iliyamo/warehouse-dock-scheduler/internal/service"
)

// AppointmentHandler serves the appointment booking endpoints.  Every
// write runs inside a transaction that locks the target dock row first,
// so the conflict check and the insert/update are a single atomic unit
// per dock.
type AppointmentHandler struct {
    appts       *repository.AppointmentRepo
    docks       *repository.DockRepo
    carriers    *repository.CarrierRepo
    lockTimeout time.Duration
}

// NewAppointmentHandler builds the handler and panics on nil dependencies.
func NewAppointmentHandler(appts *repository.AppointmentRepo, docks *repository.DockRepo, carriers *repository.CarrierRepo, lockTimeout time.Duration) *AppointmentHandler {
    if appts == nil || docks == nil || carriers == nil {
        panic("handler: nil repository passed to NewAppointmentHandler")
    }
    if lockTimeout <= 0 {
        lockTimeout = 3 * time.Second
    }
    return &AppointmentHandler{appts: appts, docks: docks, carriers: carriers, lockTimeout: lockTimeout}
}

type createAppointmentRequest struct {
    DockID        uint64   `json:"dock_id"`
    CarrierID     uint64   `json:"carrier_id"`
    LoadPlanID    *uint64  `json:"load_plan_id"`
    Date          string   `json:"date"`
    Start         string   `json:"start"`
    End           string   `json:"end"`
    DriverName    *string  `json:"driver_name"`
    VehiclePlate  *string  `json:"vehicle_plate"`
    VehicleLength *float64 `json:"vehicle_length_m"`
    VehicleHeight *float64 `json:"vehicle_height_m"`
    Instructions  *string  `json:"instructions"`
}

// CreateAppointment books a dock window.  The sequence is: validate the
// request shape, lock the dock row, check dock status and vehicle fit,
// run the conflict detector against the dock's active windows for that
// date, insert, commit.  A lock wait timeout surfaces as a retryable
// 503 rather than blocking the caller indefinitely.
func (h *AppointmentHandler) CreateAppointment(c echo.Context) error {
    var req createAppointmentRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.DockID == 0 || req.CarrierID == 0 {
        return respondEngineError(c, scheduling.Validationf("dock_id and carrier_id are required"))
    }
    date, err := parseDate(req.Date)
    if err != nil {
        return respondEngineError(c, err)
    }
    start, err := combineClock(date, req.Start)
    if err != nil {
        return respondEngineError(c, err)
    }
    end, err := combineClock(date, req.End)
    if err != nil {
        return respondEngineError(c, err)
    }
    if !end.After(start) {
        return respondEngineError(c, scheduling.Validationf("end must be after start"))
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), h.lockTimeout)
    defer cancel()

    if _, err := h.carriers.GetByID(ctx, req.CarrierID); err != nil {
        return respondEngineError(c, err)
    }

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

    dock, err := h.docks.GetByIDForUpdateTx(ctx, tx, req.DockID)
    if err != nil {
        return respondEngineError(c, lockErr(err, req.DockID))
    }
    if dock.Status != model.DockStatusAvailable {
        return respondEngineError(c, &scheduling.DockUnavailableError{DockID: dock.ID, Status: dock.Status})
    }
    if err := checkVehicleFit(dock, req.VehicleLength, req.VehicleHeight); err != nil {
        return respondEngineError(c, err)
    }

    windows, err := h.appts.ActiveWindowsByDockDateTx(ctx, tx, dock.ID, date)
    if err != nil {
        return respondEngineError(c, lockErr(err, dock.ID))
    }
    if w := scheduling.FindConflict(windows, start, end, 0); w != nil {
        return respondEngineError(c, &scheduling.ConflictError{AppointmentID: w.AppointmentID, Start: w.Start, End: w.End})
    }

    appt := &model.Appointment{
        DockID:         dock.ID,
        CarrierID:      req.CarrierID,
        LoadPlanID:     req.LoadPlanID,
        ScheduledDate:  date,
        ScheduledStart: start,
        ScheduledEnd:   end,
        Status:         model.AppointmentScheduled,
        DriverName:     req.DriverName,
        VehiclePlate:   req.VehiclePlate,
        VehicleLength:  req.VehicleLength,
        VehicleHeight:  req.VehicleHeight,
        Instructions:   req.Instructions,
    }
    if err := h.appts.CreateTx(ctx, tx, appt); err != nil {
        return respondEngineError(c, lockErr(err, dock.ID))
    }
    if err := tx.Commit(); err != nil {
        return respondEngineError(c, lockErr(err, dock.ID))
    }
    committed = true

    if appt.LoadPlanID != nil {
        h.notifyLinked(appt, dock.Code)
    }
    return c.JSON(http.StatusCreated, appt)
}

type updateAppointmentRequest struct {
    DockID        *uint64  `json:"dock_id"`
    Date          *string  `json:"date"`
    Start         *string  `json:"start"`
    End           *string  `json:"end"`
    DriverName    *string  `json:"driver_name"`
    VehiclePlate  *string  `json:"vehicle_plate"`
    VehicleLength *float64 `json:"vehicle_length_m"`
    VehicleHeight *float64 `json:"vehicle_height_m"`
    Instructions  *string  `json:"instructions"`
}

// UpdateAppointment reschedules or edits an appointment.  Terminal
// appointments are immutable, and an in_progress appointment cannot be
// moved to another dock or window (the truck is physically at the dock;
// its occupancy would otherwise be stranded).  The availability and
// conflict gates apply only when the dock or window actually changes; a
// metadata-only edit (driver, plate, instructions) goes through even
// while the dock is occupied or in maintenance.  A window or dock change
// re-runs the full conflict check against the target dock under its row
// lock, excluding the appointment's own current window.
func (h *AppointmentHandler) UpdateAppointment(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return respondEngineError(c, scheduling.Validationf("invalid appointment id"))
    }
    var req updateAppointmentRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

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
    if scheduling.IsTerminal(appt.Status) {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":  "appointment is in a terminal status and cannot be edited",
            "status": appt.Status,
        })
    }

    targetDockID := appt.DockID
    if req.DockID != nil {
        if *req.DockID == 0 {
            return respondEngineError(c, scheduling.Validationf("invalid dock_id"))
        }
        targetDockID = *req.DockID
    }
    date := appt.ScheduledDate
    if req.Date != nil {
        if date, err = parseDate(*req.Date); err != nil {
            return respondEngineError(c, err)
        }
    }
    start := appt.ScheduledStart
    if req.Start != nil {
        if start, err = combineClock(date, *req.Start); err != nil {
            return respondEngineError(c, err)
        }
    } else if req.Date != nil {
        start = carryClock(date, appt.ScheduledStart)
    }
    end := appt.ScheduledEnd
    if req.End != nil {
        if end, err = combineClock(date, *req.End); err != nil {
            return respondEngineError(c, err)
        }
    } else if req.Date != nil {
        end = carryClock(date, appt.ScheduledEnd)
    }
    if !end.After(start) {
        return respondEngineError(c, scheduling.Validationf("end must be after start"))
    }
    moved := windowMoved(appt, targetDockID, date, start, end)
    if err := checkReschedulable(appt.Status, moved); err != nil {
        return respondEngineError(c, err)
    }

    dock, err := h.docks.GetByIDForUpdateTx(ctx, tx, targetDockID)
    if err != nil {
        return respondEngineError(c, lockErr(err, targetDockID))
    }
    if moved && dock.Status != model.DockStatusAvailable {
        return respondEngineError(c, &scheduling.DockUnavailableError{DockID: dock.ID, Status: dock.Status})
    }

    if req.DriverName != nil {
        appt.DriverName = req.DriverName
    }
    if req.VehiclePlate != nil {
        appt.VehiclePlate = req.VehiclePlate
    }
    if req.VehicleLength != nil {
        appt.VehicleLength = req.VehicleLength
    }
    if req.VehicleHeight != nil {
        appt.VehicleHeight = req.VehicleHeight
    }
    if req.Instructions != nil {
        appt.Instructions = req.Instructions
    }
    if err := checkVehicleFit(dock, appt.VehicleLength, appt.VehicleHeight); err != nil {
        return respondEngineError(c, err)
    }

    if moved {
        windows, err := h.appts.ActiveWindowsByDockDateTx(ctx, tx, dock.ID, date)
        if err != nil {
            return respondEngineError(c, lockErr(err, dock.ID))
        }
        if w := scheduling.FindConflict(windows, start, end, appt.ID); w != nil {
            return respondEngineError(c, &scheduling.ConflictError{AppointmentID: w.AppointmentID, Start: w.Start, End: w.End})
        }
    }

    appt.DockID = dock.ID
    appt.ScheduledDate = scheduling.DayOf(date)
    appt.ScheduledStart = start
    appt.ScheduledEnd = end
    if err := h.appts.UpdateWindowTx(ctx, tx, appt); err != nil {
        return respondEngineError(c, lockErr(err, dock.ID))
    }
    if err := tx.Commit(); err != nil {
        return respondEngineError(c, lockErr(err, dock.ID))
    }
    committed = true

    if appt.LoadPlanID != nil {
        h.notifyLinked(appt, dock.Code)
    }
    updated, err := h.appts.GetByID(c.Request().Context(), appt.ID)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, updated)
}

// GetAppointment returns a single appointment by id.
func (h *AppointmentHandler) GetAppointment(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return respondEngineError(c, scheduling.Validationf("invalid appointment id"))
    }
    appt, err := h.appts.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, appt)
}

// ListAppointments returns appointments filtered by optional dock_id,
// date and status query parameters.
func (h *AppointmentHandler) ListAppointments(c echo.Context) error {
    dockID, err := parseUintQuery(c, "dock_id")
    if err != nil {
        return respondEngineError(c, err)
    }
    var date *time.Time
    if raw := c.QueryParam("date"); raw != "" {
        d, err := parseDate(raw)
        if err != nil {
            return respondEngineError(c, err)
        }
        date = &d
    }
    status := c.QueryParam("status")
    if status != "" && !scheduling.ValidStatus(status) {
        return respondEngineError(c, scheduling.Validationf("invalid status %q", status))
    }

    appts, err := h.appts.List(c.Request().Context(), dockID, date, status)
    if err != nil {
        return respondEngineError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": appts})
}

// notifyLinked publishes the load-plan link event after a committed
// write.  Failures are logged and swallowed: the booking stands whether
// or not the broker was reachable.
func (h *AppointmentHandler) notifyLinked(appt *model.Appointment, dockCode string) {
    ev := queue.AppointmentLinkedEvent{
        LoadPlanID:    *appt.LoadPlanID,
        AppointmentID: appt.ID,
        DockCode:      dockCode,
        CarrierID:     appt.CarrierID,
        ScheduledDate: appt.ScheduledDate.UTC().Format("2006-01-02"),
        Start:         appt.ScheduledStart.UTC().Format("15:04"),
        End:           appt.ScheduledEnd.UTC().Format("15:04"),
        LinkedAt:      time.Now().UTC().Format(time.RFC3339),
    }
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := queue_publisher.PublishAppointmentLinked(ctx, ev); err != nil {
        log.Printf("appointment %d: load plan notification failed: %v", appt.ID, err)
    }
}

// checkVehicleFit rejects vehicles that exceed the dock's declared
// limits.  A nil limit means the dock accepts any size.
func checkVehicleFit(dock *model.Dock, length, height *float64) error {
    if length != nil && dock.MaxVehicleLength != nil && *length > *dock.MaxVehicleLength {
        return scheduling.Validationf("vehicle length %.1fm exceeds dock limit %.1fm", *length, *dock.MaxVehicleLength)
    }
    if height != nil && dock.MaxVehicleHeight != nil && *height > *dock.MaxVehicleHeight {
        return scheduling.Validationf("vehicle height %.1fm exceeds dock limit %.1fm", *height, *dock.MaxVehicleHeight)
    }
    return nil
}

// windowMoved reports whether a patch actually changes the reservation's
// dock or window.  Re-sending the current values counts as unchanged, so
// a no-op patch never trips the availability gate.
func windowMoved(a *model.Appointment, dockID uint64, date, start, end time.Time) bool {
    return dockID != a.DockID ||
        !scheduling.DayOf(date).Equal(scheduling.DayOf(a.ScheduledDate)) ||
        !start.Equal(a.ScheduledStart) ||
        !end.Equal(a.ScheduledEnd)
}

// checkReschedulable rejects dock/window changes while the appointment is
// in_progress.  Moving a live appointment would strand the old dock's
// occupied status: the later completion releases the new dock, never the
// one the truck is actually at.
func checkReschedulable(status string, moved bool) error {
    if moved && status == model.AppointmentInProgress {
        return scheduling.Validationf("cannot move the window of an in_progress appointment")
    }
    return nil
}

// carryClock moves a timestamp's clock time onto a new date.
func carryClock(date, old time.Time) time.Time {
    old = old.UTC()
    midnight := scheduling.DayOf(old)
    return scheduling.DayOf(date).Add(old.Sub(midnight))
}
