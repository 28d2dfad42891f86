// Package queue defines message payloads exchanged over the message broker.
package queue

// AppointmentLinkedEvent is published when an appointment referencing a
// load plan is created or repositioned.  Load planning consumes it to
// move its own plan status to "planned"; this engine never reads or
// writes load-plan internals beyond passing the id.
type AppointmentLinkedEvent struct {
    LoadPlanID    uint64 `json:"load_plan_id"`
    AppointmentID uint64 `json:"appointment_id"`
    DockCode      string `json:"dock_code"`
    CarrierID     uint64 `json:"carrier_id"`
    ScheduledDate string `json:"scheduled_date"`
    Start         string `json:"start"`
    End           string `json:"end"`
    LinkedAt      string `json:"linked_at"`
}
