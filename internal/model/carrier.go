package model

import "time"

// Carrier is the transport company whose vehicle occupies a dock during an
// appointment.  The carrier directory is owned by another service; this
// engine only performs read-only lookups for display purposes.
type Carrier struct {
    ID        uint64    // carriers.id
    Name      string    // carriers.name
    ScacCode  *string   // carriers.scac_code (nullable)
    CreatedAt time.Time // carriers.created_at
}
