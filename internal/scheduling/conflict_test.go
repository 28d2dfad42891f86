package scheduling

import (
    "math/rand"
    "testing"
    "time"
)

func at(t *testing.T, clock string) time.Time {
    t.Helper()
    ts, err := time.Parse("2006-01-02 15:04", "2025-03-10 "+clock)
    if err != nil {
        t.Fatalf("bad clock %q: %v", clock, err)
    }
    return ts.UTC()
}

func TestFindConflict(t *testing.T) {
    existing := []Window{
        {AppointmentID: 1, Start: at(t, "09:00"), End: at(t, "10:30")},
        {AppointmentID: 2, Start: at(t, "13:00"), End: at(t, "14:00")},
    }

    cases := []struct {
        name     string
        start    string
        end      string
        exclude  uint64
        wantID   uint64 // 0 = no conflict
    }{
        {name: "partial overlap tail", start: "10:00", end: "11:00", wantID: 1},
        {name: "partial overlap head", start: "08:30", end: "09:30", wantID: 1},
        {name: "full containment", start: "09:15", end: "10:00", wantID: 1},
        {name: "contains existing", start: "08:00", end: "11:00", wantID: 1},
        {name: "exact duplicate", start: "09:00", end: "10:30", wantID: 1},
        {name: "adjacent before is free", start: "08:00", end: "09:00", wantID: 0},
        {name: "adjacent after is free", start: "10:30", end: "11:00", wantID: 0},
        {name: "gap between appointments", start: "11:00", end: "12:30", wantID: 0},
        {name: "second appointment hit", start: "13:30", end: "15:00", wantID: 2},
        {name: "exclude self on update", start: "09:00", end: "10:30", exclude: 1, wantID: 0},
        {name: "exclude does not hide others", start: "09:00", end: "14:00", exclude: 1, wantID: 2},
    }

    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            got := FindConflict(existing, at(t, tc.start), at(t, tc.end), tc.exclude)
            if tc.wantID == 0 {
                if got != nil {
                    t.Fatalf("expected no conflict, got appointment %d", got.AppointmentID)
                }
                return
            }
            if got == nil {
                t.Fatalf("expected conflict with appointment %d, got none", tc.wantID)
            }
            if got.AppointmentID != tc.wantID {
                t.Fatalf("expected conflict with appointment %d, got %d", tc.wantID, got.AppointmentID)
            }
        })
    }
}

// TestNoOverlapInvariant drives a random interleaving of create, update and
// cancel operations through the conflict gate and asserts that the set of
// active windows never contains an overlapping pair.
func TestNoOverlapInvariant(t *testing.T) {
    rng := rand.New(rand.NewSource(42))
    day := at(t, "00:00")

    type appt struct {
        id        uint64
        w         Window
        cancelled bool
    }
    var appts []appt
    nextID := uint64(1)

    active := func() []Window {
        var ws []Window
        for _, a := range appts {
            if !a.cancelled {
                ws = append(ws, a.w)
            }
        }
        return ws
    }

    randomWindow := func(id uint64) Window {
        startMin := 360 + rng.Intn(28)*30       // 06:00 .. 19:30
        durMin := (1 + rng.Intn(6)) * 30        // 30m .. 3h
        start := day.Add(time.Duration(startMin) * time.Minute)
        return Window{AppointmentID: id, Start: start, End: start.Add(time.Duration(durMin) * time.Minute)}
    }

    for op := 0; op < 2000; op++ {
        switch rng.Intn(3) {
        case 0: // create
            w := randomWindow(nextID)
            if FindConflict(active(), w.Start, w.End, 0) == nil {
                appts = append(appts, appt{id: nextID, w: w})
                nextID++
            }
        case 1: // update (reposition a random live appointment)
            if len(appts) == 0 {
                continue
            }
            i := rng.Intn(len(appts))
            if appts[i].cancelled {
                continue
            }
            w := randomWindow(appts[i].id)
            if FindConflict(active(), w.Start, w.End, appts[i].id) == nil {
                appts[i].w = w
            }
        case 2: // cancel
            if len(appts) == 0 {
                continue
            }
            appts[rng.Intn(len(appts))].cancelled = true
        }

        ws := active()
        for i := 0; i < len(ws); i++ {
            for j := i + 1; j < len(ws); j++ {
                if ws[i].Overlaps(ws[j]) {
                    t.Fatalf("op %d: active appointments %d and %d overlap (%v-%v vs %v-%v)",
                        op, ws[i].AppointmentID, ws[j].AppointmentID,
                        ws[i].Start, ws[i].End, ws[j].Start, ws[j].End)
                }
            }
        }
    }
}
