package model

import "time"

// DockType enumerates the direction of freight a dock serves.
const (
    DockTypeOutbound  = "outbound"
    DockTypeInbound   = "inbound"
    DockTypeCrossDock = "cross_dock"
)

// Dock statuses.  Status is the single source of truth for whether new
// reservations may be proposed against the dock right now.  "occupied" is
// only ever set by an appointment moving to in_progress; "maintenance" and
// "closed" are operator decisions.  Docks are never deleted – a retired
// dock is archived with status "closed".
const (
    DockStatusAvailable   = "available"
    DockStatusOccupied    = "occupied"
    DockStatusMaintenance = "maintenance"
    DockStatusClosed      = "closed"
)

// Dock represents a physical loading/unloading bay, the schedulable
// resource of the engine.  The Code is the immutable externally visible
// identifier; ID is the internal primary key.
//
// Fields:
//  ID               – primary key identifier.
//  Code             – immutable unique dock code (e.g. "OUT-03").
//  Name             – human readable name.
//  WarehouseID      – warehouse the dock belongs to.
//  Type             – outbound, inbound or cross_dock.
//  Status           – available, occupied, maintenance or closed.
//  MaxVehicleLength – capability limit in metres (nil = unconstrained).
//  MaxVehicleHeight – capability limit in metres (nil = unconstrained).
//  HasLeveler       – whether a dock leveler is installed.
//  HasSeal          – whether a dock seal/shelter is installed.
//  Equipment        – free-form list of additional equipment.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Dock struct {
    ID               uint64    // docks.id
    Code             string    // docks.code
    Name             string    // docks.name
    WarehouseID      uint64    // docks.warehouse_id
    Type             string    // docks.type
    Status           string    // docks.status
    MaxVehicleLength *float64  // docks.max_vehicle_length_m (nullable)
    MaxVehicleHeight *float64  // docks.max_vehicle_height_m (nullable)
    HasLeveler       bool      // docks.has_leveler
    HasSeal          bool      // docks.has_seal
    Equipment        []string  // docks.equipment (comma separated in DB)
    CreatedAt        time.Time // docks.created_at
    UpdatedAt        time.Time // docks.updated_at
}

// ValidDockType reports whether t is one of the known dock types.
func ValidDockType(t string) bool {
    switch t {
    case DockTypeOutbound, DockTypeInbound, DockTypeCrossDock:
        return true
    }
    return false
}

// ValidDockStatus reports whether s is one of the known dock statuses.
func ValidDockStatus(s string) bool {
    switch s {
    case DockStatusAvailable, DockStatusOccupied, DockStatusMaintenance, DockStatusClosed:
        return true
    }
    return false
}
