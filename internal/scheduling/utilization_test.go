package scheduling

import (
    "math"
    "testing"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

func TestSummarizeEmpty(t *testing.T) {
    rep := Summarize(nil)
    if rep.Total != 0 || rep.CompletionRate != 0 || rep.DockHours != 0 {
        t.Fatalf("empty input must yield zero report, got %+v", rep)
    }
    if rep.PerDock == nil || len(rep.PerDock) != 0 {
        t.Fatalf("per-dock list must be empty, got %v", rep.PerDock)
    }
}

func TestSummarizeRatesAndHours(t *testing.T) {
    start := at(t, "09:00")
    endActual := at(t, "10:30")
    appts := []model.Appointment{
        // Completed with realized times: 1.5 dock-hours.
        {ID: 1, DockID: 1, Status: model.AppointmentCompleted,
            ScheduledStart: start, ScheduledEnd: at(t, "10:00"),
            ActualStart: &start, ActualEnd: &endActual},
        // Completed without realized times: scheduled window (1h) counts.
        {ID: 2, DockID: 2, Status: model.AppointmentCompleted,
            ScheduledStart: at(t, "12:00"), ScheduledEnd: at(t, "13:00")},
        {ID: 3, DockID: 1, Status: model.AppointmentCancelled,
            ScheduledStart: at(t, "14:00"), ScheduledEnd: at(t, "15:00")},
        {ID: 4, DockID: 1, Status: model.AppointmentNoShow,
            ScheduledStart: at(t, "16:00"), ScheduledEnd: at(t, "17:00")},
        {ID: 5, DockID: 2, Status: model.AppointmentScheduled,
            ScheduledStart: at(t, "18:00"), ScheduledEnd: at(t, "19:00")},
    }

    rep := Summarize(appts)
    if rep.Total != 5 || rep.Completed != 2 || rep.Cancelled != 1 || rep.NoShow != 1 {
        t.Fatalf("unexpected counts: %+v", rep)
    }
    if math.Abs(rep.CompletionRate-0.4) > 1e-9 {
        t.Errorf("completion rate = %f, want 0.4", rep.CompletionRate)
    }
    if math.Abs(rep.CancellationRate-0.2) > 1e-9 {
        t.Errorf("cancellation rate = %f, want 0.2", rep.CancellationRate)
    }
    if math.Abs(rep.NoShowRate-0.2) > 1e-9 {
        t.Errorf("no-show rate = %f, want 0.2", rep.NoShowRate)
    }
    if math.Abs(rep.DockHours-2.5) > 1e-9 {
        t.Errorf("dock hours = %f, want 2.5", rep.DockHours)
    }

    if len(rep.PerDock) != 2 || rep.PerDock[0].DockID != 1 || rep.PerDock[1].DockID != 2 {
        t.Fatalf("per-dock must be sorted by dock id, got %+v", rep.PerDock)
    }
    if rep.PerDock[0].Appointments != 3 || rep.PerDock[0].Completed != 1 {
        t.Errorf("dock 1 usage wrong: %+v", rep.PerDock[0])
    }
    if math.Abs(rep.PerDock[0].HoursUtilized-1.5) > 1e-9 {
        t.Errorf("dock 1 hours = %f, want 1.5", rep.PerDock[0].HoursUtilized)
    }
}

func TestSummarizeIgnoresInvertedActualTimes(t *testing.T) {
    s := at(t, "10:00")
    e := at(t, "09:00") // inverted stamps fall back to the scheduled window
    appts := []model.Appointment{{
        ID: 1, DockID: 1, Status: model.AppointmentCompleted,
        ScheduledStart: at(t, "10:00"), ScheduledEnd: at(t, "11:00"),
        ActualStart: &s, ActualEnd: &e,
    }}
    rep := Summarize(appts)
    if math.Abs(rep.DockHours-1.0) > 1e-9 {
        t.Fatalf("dock hours = %f, want 1.0", rep.DockHours)
    }
}
