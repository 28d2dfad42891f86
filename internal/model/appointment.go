package model

import "time"

// Appointment statuses.  The state machine in internal/scheduling owns the
// legal transitions; no other code path may write Status directly.
const (
    AppointmentScheduled  = "scheduled"
    AppointmentConfirmed  = "confirmed"
    AppointmentInProgress = "in_progress"
    AppointmentCompleted  = "completed"
    AppointmentCancelled  = "cancelled"
    AppointmentNoShow     = "no_show"
)

// Appointment records a reservation of a dock for a time window by a
// carrier/vehicle.  Appointments are never physically deleted; cancellation
// is a terminal status so historical utilization reporting stays accurate.
//
// Fields:
//  ID              – primary key identifier.
//  DockID          – dock being reserved.
//  CarrierID       – carrier performing the load/unload.
//  LoadPlanID      – optional load plan reference (external collaborator).
//  ScheduledDate   – calendar date of the reservation (midnight UTC).
//  ScheduledStart  – reserved window start.
//  ScheduledEnd    – reserved window end (exclusive, must be after start).
//  ActualStart     – stamped when work begins (nil until in_progress).
//  ActualEnd       – stamped when work ends (nil until completed).
//  Status          – see state machine.
//  DriverName      – driver descriptor.
//  VehiclePlate    – vehicle descriptor.
//  VehicleLength   – vehicle length in metres (nil if unknown).
//  VehicleHeight   – vehicle height in metres (nil if unknown).
//  Instructions    – free-text handling instructions.
//  CancelReason    – reason recorded on cancellation or no_show.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Appointment struct {
    ID             uint64     // appointments.id
    DockID         uint64     // appointments.dock_id
    CarrierID      uint64     // appointments.carrier_id
    LoadPlanID     *uint64    // appointments.load_plan_id (nullable)
    ScheduledDate  time.Time  // appointments.scheduled_date
    ScheduledStart time.Time  // appointments.scheduled_start
    ScheduledEnd   time.Time  // appointments.scheduled_end
    ActualStart    *time.Time // appointments.actual_start (nullable)
    ActualEnd      *time.Time // appointments.actual_end (nullable)
    Status         string     // appointments.status
    DriverName     *string    // appointments.driver_name (nullable)
    VehiclePlate   *string    // appointments.vehicle_plate (nullable)
    VehicleLength  *float64   // appointments.vehicle_length_m (nullable)
    VehicleHeight  *float64   // appointments.vehicle_height_m (nullable)
    Instructions   *string    // appointments.instructions (nullable)
    CancelReason   *string    // appointments.cancel_reason (nullable)
    CreatedAt      time.Time  // appointments.created_at
    UpdatedAt      time.Time  // appointments.updated_at
}
