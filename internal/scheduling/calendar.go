package scheduling

import (
    "sort"
    "time"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

// statusColors is the fixed display mapping for calendar events.
var statusColors = map[string]string{
    model.AppointmentScheduled:  "blue",
    model.AppointmentConfirmed:  "green",
    model.AppointmentInProgress: "orange",
    model.AppointmentCompleted:  "green",
    model.AppointmentCancelled:  "red",
    model.AppointmentNoShow:     "grey",
}

// StatusColor returns the display color for an appointment status, or
// "grey" for anything unknown.
func StatusColor(status string) string {
    if c, ok := statusColors[status]; ok {
        return c
    }
    return "grey"
}

// CalendarResource is a dock summary in the calendar projection.
type CalendarResource struct {
    ID     uint64 `json:"id"`
    Code   string `json:"code"`
    Name   string `json:"name"`
    Type   string `json:"type"`
    Status string `json:"status"`
}

// CalendarEvent is an appointment summary in the calendar projection.
type CalendarEvent struct {
    ID          uint64    `json:"id"`
    DockID      uint64    `json:"dock_id"`
    CarrierName string    `json:"carrier_name"`
    Start       time.Time `json:"start"`
    End         time.Time `json:"end"`
    Status      string    `json:"status"`
    Color       string    `json:"color"`
}

// Calendar is the read-side projection consumed by scheduling UIs.
type Calendar struct {
    Resources []CalendarResource `json:"resources"`
    Events    []CalendarEvent    `json:"events"`
}

// BuildCalendar assembles the resource/event view for a dock set and a
// list of appointments in a date range.  carrierNames is the read-only
// carrier directory lookup; missing entries render as an empty name.
// Resources are ordered by dock code, events by start time then id, so
// identical inputs always produce identical output.
func BuildCalendar(docks []model.Dock, appts []model.Appointment, carrierNames map[uint64]string) Calendar {
    cal := Calendar{
        Resources: make([]CalendarResource, 0, len(docks)),
        Events:    make([]CalendarEvent, 0, len(appts)),
    }
    for _, d := range docks {
        cal.Resources = append(cal.Resources, CalendarResource{
            ID:     d.ID,
            Code:   d.Code,
            Name:   d.Name,
            Type:   d.Type,
            Status: d.Status,
        })
    }
    sort.Slice(cal.Resources, func(i, j int) bool { return cal.Resources[i].Code < cal.Resources[j].Code })

    for _, a := range appts {
        cal.Events = append(cal.Events, CalendarEvent{
            ID:          a.ID,
            DockID:      a.DockID,
            CarrierName: carrierNames[a.CarrierID],
            Start:       a.ScheduledStart,
            End:         a.ScheduledEnd,
            Status:      a.Status,
            Color:       StatusColor(a.Status),
        })
    }
    sort.Slice(cal.Events, func(i, j int) bool {
        if !cal.Events[i].Start.Equal(cal.Events[j].Start) {
            return cal.Events[i].Start.Before(cal.Events[j].Start)
        }
        return cal.Events[i].ID < cal.Events[j].ID
    })
    return cal
}
