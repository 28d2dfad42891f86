package handler

import (
    "testing"
    "time"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

func dayAt(clock string) time.Time {
    t, err := time.Parse("2006-01-02 15:04", "2025-03-10 "+clock)
    if err != nil {
        panic(err)
    }
    return t.UTC()
}

func testAppointment(status string) *model.Appointment {
    return &model.Appointment{
        ID:             11,
        DockID:         3,
        ScheduledDate:  dayAt("00:00"),
        ScheduledStart: dayAt("10:00"),
        ScheduledEnd:   dayAt("11:00"),
        Status:         status,
    }
}

func TestWindowMoved(t *testing.T) {
    a := testAppointment(model.AppointmentScheduled)

    if windowMoved(a, 3, dayAt("00:00"), dayAt("10:00"), dayAt("11:00")) {
        t.Error("re-sending the current dock and window must not count as a move")
    }
    if !windowMoved(a, 4, dayAt("00:00"), dayAt("10:00"), dayAt("11:00")) {
        t.Error("dock change must count as a move")
    }
    if !windowMoved(a, 3, dayAt("00:00"), dayAt("10:30"), dayAt("11:00")) {
        t.Error("start change must count as a move")
    }
    if !windowMoved(a, 3, dayAt("00:00"), dayAt("10:00"), dayAt("11:30")) {
        t.Error("end change must count as a move")
    }
    nextDay := dayAt("00:00").AddDate(0, 0, 1)
    if !windowMoved(a, 3, nextDay, nextDay.Add(10*time.Hour), nextDay.Add(11*time.Hour)) {
        t.Error("date change must count as a move")
    }
    // Dates are compared by calendar day, not by raw timestamp.
    if windowMoved(a, 3, dayAt("14:37"), dayAt("10:00"), dayAt("11:00")) {
        t.Error("same day with a stray clock component must not count as a move")
    }
}

func TestCheckReschedulable(t *testing.T) {
    if err := checkReschedulable(model.AppointmentInProgress, true); err == nil {
        t.Error("moving the window of an in_progress appointment must be rejected")
    }
    // Metadata-only edits stay legal while work is underway.
    if err := checkReschedulable(model.AppointmentInProgress, false); err != nil {
        t.Errorf("metadata edit on an in_progress appointment rejected: %v", err)
    }
    for _, status := range []string{model.AppointmentScheduled, model.AppointmentConfirmed} {
        if err := checkReschedulable(status, true); err != nil {
            t.Errorf("rescheduling a %s appointment rejected: %v", status, err)
        }
    }
}
