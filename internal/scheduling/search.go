package scheduling

import (
    "sort"
    "time"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

// Candidate is one bookable window produced by the search: a dock plus a
// [Start, End) interval long enough for the requested duration.  Results
// are advisory – a concurrent writer may claim the window before the
// caller books it, so creation always re-validates via FindConflict.
type Candidate struct {
    DockID   uint64    `json:"dock_id"`
    DockCode string    `json:"dock_code"`
    Start    time.Time `json:"start"`
    End      time.Time `json:"end"`
}

// FilterDocks returns the docks eligible for a search: matching type, in
// "available" status, and physically able to take the vehicle.  A nil
// capability limit on the dock means unconstrained and always passes; nil
// vehicle dimensions skip the corresponding check.
func FilterDocks(docks []model.Dock, dockType string, vehicleLength, vehicleHeight *float64) []model.Dock {
    out := make([]model.Dock, 0, len(docks))
    for _, d := range docks {
        if d.Type != dockType || d.Status != model.DockStatusAvailable {
            continue
        }
        if vehicleLength != nil && d.MaxVehicleLength != nil && *d.MaxVehicleLength < *vehicleLength {
            continue
        }
        if vehicleHeight != nil && d.MaxVehicleHeight != nil && *d.MaxVehicleHeight < *vehicleHeight {
            continue
        }
        out = append(out, d)
    }
    return out
}

// FindWindows scans one dock's slot sequence left to right keeping a
// run-length counter of consecutive available slots.  Whenever the run
// reaches the number of slots needed for the duration it emits a
// candidate and resets the run, so the windows of one dock never overlap
// (greedy, earliest-first – not a sliding window).  The candidate end is
// start + duration exactly, even when the duration is not a multiple of
// the granularity.
func FindWindows(dock model.Dock, slots []Slot, durationMin, granularityMin int) []Candidate {
    if durationMin <= 0 || granularityMin <= 0 {
        return nil
    }
    required := (durationMin + granularityMin - 1) / granularityMin

    var out []Candidate
    run := 0
    var runStart time.Time
    for _, s := range slots {
        if !s.Available {
            run = 0
            continue
        }
        if run == 0 {
            runStart = s.Start
        }
        run++
        if run == required {
            out = append(out, Candidate{
                DockID:   dock.ID,
                DockCode: dock.Code,
                Start:    runStart,
                End:      runStart.Add(time.Duration(durationMin) * time.Minute),
            })
            run = 0
        }
    }
    return out
}

// SortCandidates orders the aggregated cross-dock results by start time
// ascending, ties broken by dock code ascending.  The deterministic order
// is part of the search contract.
func SortCandidates(c []Candidate) {
    sort.Slice(c, func(i, j int) bool {
        if !c[i].Start.Equal(c[j].Start) {
            return c[i].Start.Before(c[j].Start)
        }
        return c[i].DockCode < c[j].DockCode
    })
}
