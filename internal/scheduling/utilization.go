package scheduling

import (
    "sort"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

// DockUsage is the per-dock slice of a utilization report.
type DockUsage struct {
    DockID        uint64  `json:"dock_id"`
    Appointments  int     `json:"appointments"`
    Completed     int     `json:"completed"`
    HoursUtilized float64 `json:"hours_utilized"`
}

// UtilizationReport aggregates historical appointments into rates and
// dock-hours.  It is a read-only consumer of the appointment store and
// never feeds back into the write path.
type UtilizationReport struct {
    Total            int         `json:"total"`
    Completed        int         `json:"completed"`
    Cancelled        int         `json:"cancelled"`
    NoShow           int         `json:"no_show"`
    CompletionRate   float64     `json:"completion_rate"`
    CancellationRate float64     `json:"cancellation_rate"`
    NoShowRate       float64     `json:"no_show_rate"`
    DockHours        float64     `json:"dock_hours_utilized"`
    PerDock          []DockUsage `json:"per_dock"`
}

// Summarize computes the utilization report for a set of appointments.
// Dock-hours count completed appointments only, using realized times when
// both stamps exist and falling back to the scheduled window otherwise.
// Rates are fractions of the total; an empty input yields all zeros.
func Summarize(appts []model.Appointment) UtilizationReport {
    rep := UtilizationReport{PerDock: []DockUsage{}}
    perDock := make(map[uint64]*DockUsage)

    for _, a := range appts {
        rep.Total++
        du, ok := perDock[a.DockID]
        if !ok {
            du = &DockUsage{DockID: a.DockID}
            perDock[a.DockID] = du
        }
        du.Appointments++

        switch a.Status {
        case model.AppointmentCompleted:
            rep.Completed++
            du.Completed++
            w := Window{Start: a.ScheduledStart, End: a.ScheduledEnd}
            if a.ActualStart != nil && a.ActualEnd != nil && a.ActualEnd.After(*a.ActualStart) {
                w = Window{Start: *a.ActualStart, End: *a.ActualEnd}
            }
            hours := w.Duration().Hours()
            rep.DockHours += hours
            du.HoursUtilized += hours
        case model.AppointmentCancelled:
            rep.Cancelled++
        case model.AppointmentNoShow:
            rep.NoShow++
        }
    }

    if rep.Total > 0 {
        rep.CompletionRate = float64(rep.Completed) / float64(rep.Total)
        rep.CancellationRate = float64(rep.Cancelled) / float64(rep.Total)
        rep.NoShowRate = float64(rep.NoShow) / float64(rep.Total)
    }

    for _, du := range perDock {
        rep.PerDock = append(rep.PerDock, *du)
    }
    sort.Slice(rep.PerDock, func(i, j int) bool { return rep.PerDock[i].DockID < rep.PerDock[j].DockID })
    return rep
}
