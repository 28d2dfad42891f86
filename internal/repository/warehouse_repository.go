package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

// WarehouseRepo is a read-only lookup into the warehouse directory, used
// to scope dock queries.  Warehouses are owned by another service.
type WarehouseRepo struct {
    db *sql.DB
}

// NewWarehouseRepo returns a new WarehouseRepo bound to the given database.
func NewWarehouseRepo(db *sql.DB) *WarehouseRepo { return &WarehouseRepo{db: db} }

// GetByID returns a warehouse by id, or ErrWarehouseNotFound.
func (r *WarehouseRepo) GetByID(ctx context.Context, id uint64) (*model.Warehouse, error) {
    var w model.Warehouse
    err := r.db.QueryRowContext(ctx,
        `SELECT id, code, name, created_at FROM warehouses WHERE id = ?`, id,
    ).Scan(&w.ID, &w.Code, &w.Name, &w.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrWarehouseNotFound
    }
    if err != nil {
        return nil, err
    }
    return &w, nil
}

// Exists reports whether a warehouse with the given id exists.
func (r *WarehouseRepo) Exists(ctx context.Context, id uint64) (bool, error) {
    var exists bool
    err := r.db.QueryRowContext(ctx,
        `SELECT EXISTS(SELECT 1 FROM warehouses WHERE id = ?)`, id,
    ).Scan(&exists)
    return exists, err
}
