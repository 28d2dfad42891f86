package scheduling

import (
    "testing"
    "time"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

func f64(v float64) *float64 { return &v }

func TestFilterDocks(t *testing.T) {
    docks := []model.Dock{
        {ID: 1, Code: "OUT-01", Type: model.DockTypeOutbound, Status: model.DockStatusAvailable, MaxVehicleLength: f64(18), MaxVehicleHeight: f64(4.2)},
        {ID: 2, Code: "OUT-02", Type: model.DockTypeOutbound, Status: model.DockStatusMaintenance, MaxVehicleLength: f64(18)},
        {ID: 3, Code: "IN-01", Type: model.DockTypeInbound, Status: model.DockStatusAvailable},
        {ID: 4, Code: "OUT-03", Type: model.DockTypeOutbound, Status: model.DockStatusAvailable, MaxVehicleLength: f64(12)},
        {ID: 5, Code: "OUT-04", Type: model.DockTypeOutbound, Status: model.DockStatusAvailable}, // no limits = unconstrained
    }

    got := FilterDocks(docks, model.DockTypeOutbound, f64(15), f64(4.0))
    if len(got) != 2 {
        t.Fatalf("expected 2 eligible docks, got %d", len(got))
    }
    if got[0].ID != 1 || got[1].ID != 5 {
        t.Fatalf("unexpected eligible docks: %d, %d", got[0].ID, got[1].ID)
    }

    // Without vehicle dimensions every available outbound dock passes.
    got = FilterDocks(docks, model.DockTypeOutbound, nil, nil)
    if len(got) != 3 {
        t.Fatalf("expected 3 eligible docks without dimension filters, got %d", len(got))
    }

    // No docks of the requested type: empty result, not an error.
    got = FilterDocks(docks, model.DockTypeCrossDock, nil, nil)
    if len(got) != 0 {
        t.Fatalf("expected no cross_dock candidates, got %d", len(got))
    }
}

// TestFindWindowsAroundExistingAppointment is the worked example: dock
// operating 06:00-22:00 at 30 minute granularity with an existing
// 09:00-10:30 appointment must offer a 60 minute window starting 06:00
// and must never offer windows starting 09:00, 09:30 or 10:00.
func TestFindWindowsAroundExistingAppointment(t *testing.T) {
    day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
    dock := model.Dock{ID: 1, Code: "OUT-01"}
    busy := []Window{{AppointmentID: 9, Start: at(t, "09:00"), End: at(t, "10:30")}}

    slots, err := ComputeAvailability(day, 30, defaultWindow, busy)
    if err != nil {
        t.Fatalf("ComputeAvailability: %v", err)
    }
    wins := FindWindows(dock, slots, 60, 30)
    if len(wins) == 0 {
        t.Fatal("expected at least one window")
    }
    if !wins[0].Start.Equal(at(t, "06:00")) {
        t.Fatalf("first window must start 06:00, got %v", wins[0].Start)
    }
    for _, w := range wins {
        for _, banned := range []string{"09:00", "09:30", "10:00"} {
            if w.Start.Equal(at(t, banned)) {
                t.Fatalf("window starting %s overlaps the existing appointment", banned)
            }
        }
        // Soundness: every returned window must be conflict-free.
        if HasConflict(busy, w.Start, w.End, 0) {
            t.Fatalf("unsound window %v-%v returned", w.Start, w.End)
        }
    }
}

// Windows within one dock are greedy and non-overlapping: the run resets
// after each emitted window instead of sliding.
func TestFindWindowsGreedyNonOverlapping(t *testing.T) {
    day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
    dock := model.Dock{ID: 1, Code: "OUT-01"}
    slots, err := ComputeAvailability(day, 30, OperatingWindow{OpenMinute: 360, CloseMinute: 480}, nil) // 06:00-08:00
    if err != nil {
        t.Fatalf("ComputeAvailability: %v", err)
    }
    wins := FindWindows(dock, slots, 60, 30)
    if len(wins) != 2 {
        t.Fatalf("expected exactly 2 non-overlapping 60m windows in 06:00-08:00, got %d", len(wins))
    }
    if !wins[0].Start.Equal(at(t, "06:00")) || !wins[1].Start.Equal(at(t, "07:00")) {
        t.Fatalf("expected windows at 06:00 and 07:00, got %v and %v", wins[0].Start, wins[1].Start)
    }
}

// A duration that is not a multiple of the granularity keeps its exact
// length: required slots round up, the end does not.
func TestFindWindowsDurationPrecision(t *testing.T) {
    day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
    dock := model.Dock{ID: 1, Code: "OUT-01"}
    slots, err := ComputeAvailability(day, 30, defaultWindow, nil)
    if err != nil {
        t.Fatalf("ComputeAvailability: %v", err)
    }
    wins := FindWindows(dock, slots, 45, 30)
    if len(wins) == 0 {
        t.Fatal("expected windows")
    }
    if got := wins[0].End.Sub(wins[0].Start); got != 45*time.Minute {
        t.Fatalf("window length must be exactly 45m, got %v", got)
    }
}

func TestSortCandidatesDeterministicOrder(t *testing.T) {
    s1 := at(t, "08:00")
    s2 := at(t, "09:00")
    cands := []Candidate{
        {DockCode: "OUT-02", Start: s2},
        {DockCode: "OUT-02", Start: s1},
        {DockCode: "OUT-01", Start: s2},
        {DockCode: "OUT-01", Start: s1},
    }
    SortCandidates(cands)
    want := []struct {
        code  string
        start time.Time
    }{
        {"OUT-01", s1}, {"OUT-02", s1}, {"OUT-01", s2}, {"OUT-02", s2},
    }
    for i, w := range want {
        if cands[i].DockCode != w.code || !cands[i].Start.Equal(w.start) {
            t.Fatalf("position %d: got %s@%v, want %s@%v", i, cands[i].DockCode, cands[i].Start, w.code, w.start)
        }
    }
}

func TestFindWindowsZeroDuration(t *testing.T) {
    if wins := FindWindows(model.Dock{}, []Slot{{Start: at(t, "06:00"), Available: true}}, 0, 30); wins != nil {
        t.Fatalf("expected nil for zero duration, got %v", wins)
    }
}
