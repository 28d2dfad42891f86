package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
    "github.com/iliyamo/warehouse-dock-scheduler/internal/scheduling"
)

// dbTime is the storage layout for DATETIME columns, always UTC.
const dbTime = "2006-01-02 15:04:05"

// AppointmentRepo provides data access to the appointments table.
// Appointments are never physically deleted; cancellation is a terminal
// status so historical reporting stays accurate.  All mutating methods
// are transactional (`...Tx`) because every write to an appointment must
// happen under the dock row lock taken by the handler.
type AppointmentRepo struct {
    db *sql.DB
}

// NewAppointmentRepo returns a new AppointmentRepo bound to the given database.
func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *AppointmentRepo) DB() *sql.DB { return r.db }

const apptColumns = `id, dock_id, carrier_id, load_plan_id,
       scheduled_date, scheduled_start, scheduled_end,
       actual_start, actual_end, status,
       driver_name, vehicle_plate, vehicle_length_m, vehicle_height_m,
       instructions, cancel_reason, created_at, updated_at`

func scanAppointment(row interface{ Scan(...interface{}) error }) (*model.Appointment, error) {
    var a model.Appointment
    var loadPlan sql.NullInt64
    var actualStart, actualEnd sql.NullTime
    var driver, plate, instructions, reason sql.NullString
    var vehLen, vehHeight sql.NullFloat64
    if err := row.Scan(
        &a.ID, &a.DockID, &a.CarrierID, &loadPlan,
        &a.ScheduledDate, &a.ScheduledStart, &a.ScheduledEnd,
        &actualStart, &actualEnd, &a.Status,
        &driver, &plate, &vehLen, &vehHeight,
        &instructions, &reason, &a.CreatedAt, &a.UpdatedAt,
    ); err != nil {
        return nil, err
    }
    if loadPlan.Valid {
        v := uint64(loadPlan.Int64)
        a.LoadPlanID = &v
    }
    if actualStart.Valid {
        t := actualStart.Time.UTC()
        a.ActualStart = &t
    }
    if actualEnd.Valid {
        t := actualEnd.Time.UTC()
        a.ActualEnd = &t
    }
    if driver.Valid {
        a.DriverName = &driver.String
    }
    if plate.Valid {
        a.VehiclePlate = &plate.String
    }
    if vehLen.Valid {
        a.VehicleLength = &vehLen.Float64
    }
    if vehHeight.Valid {
        a.VehicleHeight = &vehHeight.Float64
    }
    if instructions.Valid {
        a.Instructions = &instructions.String
    }
    if reason.Valid {
        a.CancelReason = &reason.String
    }
    return &a, nil
}

// CreateTx inserts a new appointment within the scope of an existing
// transaction and populates the generated ID and timestamps.  The caller
// must hold the dock row lock and have validated the window already.
func (r *AppointmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, a *model.Appointment) error {
    const q = `INSERT INTO appointments
               (dock_id, carrier_id, load_plan_id,
                scheduled_date, scheduled_start, scheduled_end, status,
                driver_name, vehicle_plate, vehicle_length_m, vehicle_height_m, instructions)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        a.DockID, a.CarrierID, nullUint(a.LoadPlanID),
        a.ScheduledDate.UTC().Format("2006-01-02"),
        a.ScheduledStart.UTC().Format(dbTime),
        a.ScheduledEnd.UTC().Format(dbTime),
        a.Status,
        nullStr(a.DriverName), nullStr(a.VehiclePlate),
        nullFloat(a.VehicleLength), nullFloat(a.VehicleHeight),
        nullStr(a.Instructions),
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    a.ID = uint64(id)
    created, err := r.GetByIDTx(ctx, tx, a.ID, false)
    if err != nil {
        return err
    }
    *a = *created
    return nil
}

// GetByID returns an appointment by id, or ErrAppointmentNotFound.
func (r *AppointmentRepo) GetByID(ctx context.Context, id uint64) (*model.Appointment, error) {
    a, err := scanAppointment(r.db.QueryRowContext(ctx,
        `SELECT `+apptColumns+` FROM appointments WHERE id = ?`, id))
    if err == sql.ErrNoRows {
        return nil, ErrAppointmentNotFound
    }
    return a, err
}

// GetByIDTx returns an appointment inside a transaction.  When forUpdate
// is true the row is locked, serializing concurrent transition requests
// on the same appointment.
func (r *AppointmentRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64, forUpdate bool) (*model.Appointment, error) {
    q := `SELECT ` + apptColumns + ` FROM appointments WHERE id = ?`
    if forUpdate {
        q += ` FOR UPDATE`
    }
    a, err := scanAppointment(tx.QueryRowContext(ctx, q, id))
    if err == sql.ErrNoRows {
        return nil, ErrAppointmentNotFound
    }
    return a, err
}

// ActiveWindowsByDockDateTx returns the reserved windows of all
// non-cancelled appointments on a dock/date, the input of the conflict
// detector.  It must run inside the transaction holding the dock row
// lock so the check-then-write sequence is atomic.
func (r *AppointmentRepo) ActiveWindowsByDockDateTx(ctx context.Context, tx *sql.Tx, dockID uint64, date time.Time) ([]scheduling.Window, error) {
    const q = `SELECT id, scheduled_start, scheduled_end
               FROM appointments
               WHERE dock_id = ? AND scheduled_date = ? AND status <> ?
               ORDER BY scheduled_start`
    rows, err := tx.QueryContext(ctx, q, dockID, date.UTC().Format("2006-01-02"), model.AppointmentCancelled)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    windows := make([]scheduling.Window, 0)
    for rows.Next() {
        var w scheduling.Window
        if err := rows.Scan(&w.AppointmentID, &w.Start, &w.End); err != nil {
            return nil, err
        }
        w.Start = w.Start.UTC()
        w.End = w.End.UTC()
        windows = append(windows, w)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return windows, nil
}

// ActiveWindowsByDocksDate is the read-only variant used by the
// availability grid and slot search.  It returns the active windows of
// every dock in the set, keyed by dock id.  Results are advisory; the
// write path re-validates under the dock lock.
func (r *AppointmentRepo) ActiveWindowsByDocksDate(ctx context.Context, dockIDs []uint64, date time.Time) (map[uint64][]scheduling.Window, error) {
    out := make(map[uint64][]scheduling.Window, len(dockIDs))
    if len(dockIDs) == 0 {
        return out, nil
    }
    q := `SELECT dock_id, id, scheduled_start, scheduled_end
          FROM appointments
          WHERE scheduled_date = ? AND status <> ? AND dock_id IN (`
    args := []interface{}{date.UTC().Format("2006-01-02"), model.AppointmentCancelled}
    for i, id := range dockIDs {
        if i > 0 {
            q += ","
        }
        q += "?"
        args = append(args, id)
    }
    q += `) ORDER BY dock_id, scheduled_start`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var dockID uint64
        var w scheduling.Window
        if err := rows.Scan(&dockID, &w.AppointmentID, &w.Start, &w.End); err != nil {
            return nil, err
        }
        w.Start = w.Start.UTC()
        w.End = w.End.UTC()
        out[dockID] = append(out[dockID], w)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// UpdateWindowTx rewrites the reservation window and metadata of an
// appointment.  Status and actual times are not touched here; those
// belong to UpdateStatusTx.
func (r *AppointmentRepo) UpdateWindowTx(ctx context.Context, tx *sql.Tx, a *model.Appointment) error {
    const q = `UPDATE appointments
               SET dock_id = ?, scheduled_date = ?, scheduled_start = ?, scheduled_end = ?,
                   driver_name = ?, vehicle_plate = ?, vehicle_length_m = ?, vehicle_height_m = ?,
                   instructions = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q,
        a.DockID,
        a.ScheduledDate.UTC().Format("2006-01-02"),
        a.ScheduledStart.UTC().Format(dbTime),
        a.ScheduledEnd.UTC().Format(dbTime),
        nullStr(a.DriverName), nullStr(a.VehiclePlate),
        nullFloat(a.VehicleLength), nullFloat(a.VehicleHeight),
        nullStr(a.Instructions),
        a.ID,
    )
    return err
}

// UpdateStatusTx persists the outcome of a state-machine transition:
// status, realized times and cancellation reason.
func (r *AppointmentRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, a *model.Appointment) error {
    const q = `UPDATE appointments
               SET status = ?, actual_start = ?, actual_end = ?, cancel_reason = ?
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q,
        a.Status, nullTime(a.ActualStart), nullTime(a.ActualEnd), nullStr(a.CancelReason), a.ID)
    return err
}

// List returns appointments filtered by optional dock, date and status,
// ordered by scheduled start.
func (r *AppointmentRepo) List(ctx context.Context, dockID *uint64, date *time.Time, status string) ([]model.Appointment, error) {
    q := `SELECT ` + apptColumns + ` FROM appointments WHERE 1=1`
    args := make([]interface{}, 0, 3)
    if dockID != nil {
        q += ` AND dock_id = ?`
        args = append(args, *dockID)
    }
    if date != nil {
        q += ` AND scheduled_date = ?`
        args = append(args, date.UTC().Format("2006-01-02"))
    }
    if status != "" {
        q += ` AND status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY scheduled_start, id`
    return r.queryAppointments(ctx, q, args...)
}

// ListByWarehouseRange returns all appointments on docks of a warehouse
// whose scheduled date falls in [from, to], optionally restricted to one
// dock type.  It backs the calendar projection and the utilization
// report.
func (r *AppointmentRepo) ListByWarehouseRange(ctx context.Context, warehouseID uint64, from, to time.Time, dockType string) ([]model.Appointment, error) {
    q := `SELECT a.id, a.dock_id, a.carrier_id, a.load_plan_id,
                 a.scheduled_date, a.scheduled_start, a.scheduled_end,
                 a.actual_start, a.actual_end, a.status,
                 a.driver_name, a.vehicle_plate, a.vehicle_length_m, a.vehicle_height_m,
                 a.instructions, a.cancel_reason, a.created_at, a.updated_at
          FROM appointments a
          JOIN docks d ON d.id = a.dock_id
          WHERE d.warehouse_id = ? AND a.scheduled_date BETWEEN ? AND ?`
    args := []interface{}{warehouseID, from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02")}
    if dockType != "" {
        q += ` AND d.type = ?`
        args = append(args, dockType)
    }
    q += ` ORDER BY a.scheduled_start, a.id`
    return r.queryAppointments(ctx, q, args...)
}

func (r *AppointmentRepo) queryAppointments(ctx context.Context, q string, args ...interface{}) ([]model.Appointment, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    appts := make([]model.Appointment, 0)
    for rows.Next() {
        a, err := scanAppointment(rows)
        if err != nil {
            return nil, err
        }
        appts = append(appts, *a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return appts, nil
}

func nullUint(v *uint64) interface{} {
    if v == nil {
        return nil
    }
    return *v
}

func nullStr(v *string) interface{} {
    if v == nil {
        return nil
    }
    return *v
}

func nullTime(v *time.Time) interface{} {
    if v == nil {
        return nil
    }
    return v.UTC().Format(dbTime)
}
