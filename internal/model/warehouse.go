package model

import "time"

// Warehouse scopes dock queries.  The warehouse directory is owned by
// another service; the engine only verifies existence and reads the name.
type Warehouse struct {
    ID        uint64    // warehouses.id
    Code      string    // warehouses.code
    Name      string    // warehouses.name
    CreatedAt time.Time // warehouses.created_at
}
