package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

// DockRepo provides data access to the docks table.  Docks are the
// schedulable resources of the engine: they are created by operators,
// mutated by explicit edits or by appointment transitions, and never
// deleted.  All timestamps are stored in UTC.
type DockRepo struct {
    db *sql.DB
}

// NewDockRepo returns a new DockRepo bound to the given database.
func NewDockRepo(db *sql.DB) *DockRepo { return &DockRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *DockRepo) DB() *sql.DB { return r.db }

const dockColumns = `id, code, name, warehouse_id, type, status,
       max_vehicle_length_m, max_vehicle_height_m, has_leveler, has_seal,
       equipment, created_at, updated_at`

// scanDock reads one dock row into a model.Dock.  The equipment column is
// a comma separated list; an empty string maps to an empty slice.
func scanDock(row interface{ Scan(...interface{}) error }) (*model.Dock, error) {
    var d model.Dock
    var maxLen, maxHeight sql.NullFloat64
    var equipment sql.NullString
    if err := row.Scan(
        &d.ID, &d.Code, &d.Name, &d.WarehouseID, &d.Type, &d.Status,
        &maxLen, &maxHeight, &d.HasLeveler, &d.HasSeal,
        &equipment, &d.CreatedAt, &d.UpdatedAt,
    ); err != nil {
        return nil, err
    }
    if maxLen.Valid {
        v := maxLen.Float64
        d.MaxVehicleLength = &v
    }
    if maxHeight.Valid {
        v := maxHeight.Float64
        d.MaxVehicleHeight = &v
    }
    d.Equipment = []string{}
    if equipment.Valid && strings.TrimSpace(equipment.String) != "" {
        for _, e := range strings.Split(equipment.String, ",") {
            if e = strings.TrimSpace(e); e != "" {
                d.Equipment = append(d.Equipment, e)
            }
        }
    }
    return &d, nil
}

// Create inserts a new dock and populates the generated ID and
// timestamps on the provided model.  It returns ErrDuplicateCode when
// the code is already taken within the warehouse.
func (r *DockRepo) Create(ctx context.Context, d *model.Dock) error {
    var exists bool
    err := r.db.QueryRowContext(ctx,
        `SELECT EXISTS(SELECT 1 FROM docks WHERE warehouse_id = ? AND code = ?)`,
        d.WarehouseID, d.Code,
    ).Scan(&exists)
    if err != nil {
        return err
    }
    if exists {
        return ErrDuplicateCode
    }

    const q = `INSERT INTO docks
               (code, name, warehouse_id, type, status,
                max_vehicle_length_m, max_vehicle_height_m, has_leveler, has_seal, equipment)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        d.Code, d.Name, d.WarehouseID, d.Type, d.Status,
        nullFloat(d.MaxVehicleLength), nullFloat(d.MaxVehicleHeight),
        d.HasLeveler, d.HasSeal, strings.Join(d.Equipment, ","),
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    d.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults.
    created, err := r.GetByID(ctx, d.ID)
    if err != nil {
        return err
    }
    *d = *created
    return nil
}

// GetByID returns a dock by its internal id, or ErrDockNotFound.
func (r *DockRepo) GetByID(ctx context.Context, id uint64) (*model.Dock, error) {
    d, err := scanDock(r.db.QueryRowContext(ctx,
        `SELECT `+dockColumns+` FROM docks WHERE id = ?`, id))
    if err == sql.ErrNoRows {
        return nil, ErrDockNotFound
    }
    return d, err
}

// GetByIDForUpdateTx loads a dock row with an exclusive row lock inside
// the provided transaction.  This is the per-dock serialization point of
// the write path: every create/update/transition on a dock locks its row
// first, so the conflict check and the subsequent write are atomic as a
// unit.  The caller must commit or roll back the transaction.
func (r *DockRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Dock, error) {
    d, err := scanDock(tx.QueryRowContext(ctx,
        `SELECT `+dockColumns+` FROM docks WHERE id = ? FOR UPDATE`, id))
    if err == sql.ErrNoRows {
        return nil, ErrDockNotFound
    }
    return d, err
}

// List returns docks filtered by optional warehouse, type and status.
// Results are ordered by code for deterministic output.
func (r *DockRepo) List(ctx context.Context, warehouseID *uint64, dockType, status string) ([]model.Dock, error) {
    q := `SELECT ` + dockColumns + ` FROM docks WHERE 1=1`
    args := make([]interface{}, 0, 3)
    if warehouseID != nil {
        q += ` AND warehouse_id = ?`
        args = append(args, *warehouseID)
    }
    if dockType != "" {
        q += ` AND type = ?`
        args = append(args, dockType)
    }
    if status != "" {
        q += ` AND status = ?`
        args = append(args, status)
    }
    q += ` ORDER BY code`

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    docks := make([]model.Dock, 0)
    for rows.Next() {
        d, err := scanDock(rows)
        if err != nil {
            return nil, err
        }
        docks = append(docks, *d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return docks, nil
}

// Update persists operator edits to name, type, status, capability limits
// and equipment.  The code and warehouse are immutable.
func (r *DockRepo) Update(ctx context.Context, d *model.Dock) error {
    const q = `UPDATE docks
               SET name = ?, type = ?, status = ?,
                   max_vehicle_length_m = ?, max_vehicle_height_m = ?,
                   has_leveler = ?, has_seal = ?, equipment = ?
               WHERE id = ?`
    result, err := r.db.ExecContext(ctx, q,
        d.Name, d.Type, d.Status,
        nullFloat(d.MaxVehicleLength), nullFloat(d.MaxVehicleHeight),
        d.HasLeveler, d.HasSeal, strings.Join(d.Equipment, ","),
        d.ID,
    )
    if err != nil {
        return err
    }
    if n, err := result.RowsAffected(); err == nil && n == 0 {
        // Either missing or a no-op update; distinguish by existence.
        if _, err := r.GetByID(ctx, d.ID); err != nil {
            return err
        }
    }
    return nil
}

// UpdateStatusTx sets the dock status within a transaction.  Only the
// appointment state machine and explicit operator edits go through here.
func (r *DockRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
    _, err := tx.ExecContext(ctx, `UPDATE docks SET status = ? WHERE id = ?`, status, id)
    return err
}

func nullFloat(v *float64) interface{} {
    if v == nil {
        return nil
    }
    return *v
}
