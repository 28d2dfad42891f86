package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

// CarrierRepo is a read-only lookup into the carrier directory.  The
// directory itself is owned by another service; this engine only needs
// existence checks on the write path and display names for the calendar.
type CarrierRepo struct {
    db *sql.DB
}

// NewCarrierRepo returns a new CarrierRepo bound to the given database.
func NewCarrierRepo(db *sql.DB) *CarrierRepo { return &CarrierRepo{db: db} }

// GetByID returns a carrier by id, or ErrCarrierNotFound.
func (r *CarrierRepo) GetByID(ctx context.Context, id uint64) (*model.Carrier, error) {
    var c model.Carrier
    var scac sql.NullString
    err := r.db.QueryRowContext(ctx,
        `SELECT id, name, scac_code, created_at FROM carriers WHERE id = ?`, id,
    ).Scan(&c.ID, &c.Name, &scac, &c.CreatedAt)
    if err == sql.ErrNoRows {
        return nil, ErrCarrierNotFound
    }
    if err != nil {
        return nil, err
    }
    if scac.Valid {
        c.ScacCode = &scac.String
    }
    return &c, nil
}

// NamesByIDs returns display names for a set of carrier ids in a single
// query.  Unknown ids are simply absent from the result map.
func (r *CarrierRepo) NamesByIDs(ctx context.Context, ids []uint64) (map[uint64]string, error) {
    names := make(map[uint64]string, len(ids))
    if len(ids) == 0 {
        return names, nil
    }
    placeholders := make([]string, 0, len(ids))
    args := make([]interface{}, 0, len(ids))
    for _, id := range ids {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    q := `SELECT id, name FROM carriers WHERE id IN (` + strings.Join(placeholders, ",") + `)`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var id uint64
        var name string
        if err := rows.Scan(&id, &name); err != nil {
            return nil, err
        }
        names[id] = name
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return names, nil
}
