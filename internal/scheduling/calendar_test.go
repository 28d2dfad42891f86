package scheduling

import (
    "testing"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

func TestStatusColorMapping(t *testing.T) {
    cases := map[string]string{
        model.AppointmentScheduled:  "blue",
        model.AppointmentConfirmed:  "green",
        model.AppointmentInProgress: "orange",
        model.AppointmentCompleted:  "green",
        model.AppointmentCancelled:  "red",
        model.AppointmentNoShow:     "grey",
        "unknown":                   "grey",
    }
    for status, want := range cases {
        if got := StatusColor(status); got != want {
            t.Errorf("StatusColor(%s) = %s, want %s", status, got, want)
        }
    }
}

func TestBuildCalendar(t *testing.T) {
    docks := []model.Dock{
        {ID: 2, Code: "OUT-02", Name: "Outbound 2", Type: model.DockTypeOutbound, Status: model.DockStatusAvailable},
        {ID: 1, Code: "OUT-01", Name: "Outbound 1", Type: model.DockTypeOutbound, Status: model.DockStatusOccupied},
    }
    appts := []model.Appointment{
        {ID: 11, DockID: 1, CarrierID: 5, ScheduledStart: at(t, "10:00"), ScheduledEnd: at(t, "11:00"), Status: model.AppointmentInProgress},
        {ID: 10, DockID: 2, CarrierID: 6, ScheduledStart: at(t, "08:00"), ScheduledEnd: at(t, "09:00"), Status: model.AppointmentCancelled},
    }
    names := map[uint64]string{5: "Acme Freight"}

    cal := BuildCalendar(docks, appts, names)

    if len(cal.Resources) != 2 || cal.Resources[0].Code != "OUT-01" {
        t.Fatalf("resources must be ordered by dock code, got %+v", cal.Resources)
    }
    if len(cal.Events) != 2 {
        t.Fatalf("expected 2 events, got %d", len(cal.Events))
    }
    if cal.Events[0].ID != 10 {
        t.Fatalf("events must be ordered by start time, got id %d first", cal.Events[0].ID)
    }
    if cal.Events[0].Color != "red" || cal.Events[1].Color != "orange" {
        t.Fatalf("unexpected colors: %s, %s", cal.Events[0].Color, cal.Events[1].Color)
    }
    if cal.Events[1].CarrierName != "Acme Freight" {
        t.Fatalf("carrier name not resolved: %q", cal.Events[1].CarrierName)
    }
    if cal.Events[0].CarrierName != "" {
        t.Fatalf("missing carrier must render empty, got %q", cal.Events[0].CarrierName)
    }
}
