package scheduling

import (
    "errors"
    "testing"
    "time"
)

var defaultWindow = OperatingWindow{OpenMinute: 6 * 60, CloseMinute: 22 * 60} // 06:00-22:00

func TestParseClock(t *testing.T) {
    cases := []struct {
        in      string
        want    int
        wantErr bool
    }{
        {in: "06:00", want: 360},
        {in: "22:00", want: 1320},
        {in: "00:00", want: 0},
        {in: "24:00", want: 1440},
        {in: "9:30", want: 570},
        {in: "24:30", wantErr: true},
        {in: "12:75", wantErr: true},
        {in: "noon", wantErr: true},
        // Trailing input must be rejected, never silently dropped.
        {in: "9:30pm", wantErr: true},
        {in: "09:30:45", wantErr: true},
        {in: "9:30 extra", wantErr: true},
        {in: "+9:30", wantErr: true},
        {in: "9:3", wantErr: true},
        {in: "", wantErr: true},
    }
    for _, tc := range cases {
        got, err := ParseClock(tc.in)
        if tc.wantErr {
            if err == nil {
                t.Errorf("ParseClock(%q): expected error, got %d", tc.in, got)
            }
            continue
        }
        if err != nil {
            t.Errorf("ParseClock(%q): %v", tc.in, err)
            continue
        }
        if got != tc.want {
            t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
        }
    }
}

func TestComputeAvailabilityGrid(t *testing.T) {
    day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
    busy := []Window{{AppointmentID: 7, Start: at(t, "09:00"), End: at(t, "10:30")}}

    slots, err := ComputeAvailability(day, 30, defaultWindow, busy)
    if err != nil {
        t.Fatalf("ComputeAvailability: %v", err)
    }
    // 06:00-22:00 at 30 minutes = 32 slots.
    if len(slots) != 32 {
        t.Fatalf("expected 32 slots, got %d", len(slots))
    }
    if !slots[0].Start.Equal(at(t, "06:00")) {
        t.Fatalf("first slot should start 06:00, got %v", slots[0].Start)
    }
    if !slots[len(slots)-1].Start.Equal(at(t, "21:30")) {
        t.Fatalf("last slot should start 21:30, got %v", slots[len(slots)-1].Start)
    }

    blocked := map[string]bool{"09:00": true, "09:30": true, "10:00": true}
    for _, s := range slots {
        clock := s.Start.Format("15:04")
        if blocked[clock] && s.Available {
            t.Errorf("slot %s should be blocked by the 09:00-10:30 appointment", clock)
        }
        if !blocked[clock] && !s.Available {
            t.Errorf("slot %s should be free", clock)
        }
    }
}

func TestComputeAvailabilityBoundarySlot(t *testing.T) {
    day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
    // Appointment ends exactly on a slot boundary: 10:30 slot is free.
    busy := []Window{{Start: at(t, "10:00"), End: at(t, "10:30")}}
    slots, err := ComputeAvailability(day, 30, defaultWindow, busy)
    if err != nil {
        t.Fatalf("ComputeAvailability: %v", err)
    }
    for _, s := range slots {
        switch s.Start.Format("15:04") {
        case "10:00":
            if s.Available {
                t.Error("10:00 slot must be blocked")
            }
        case "10:30":
            if !s.Available {
                t.Error("10:30 slot must be free; half-open intervals do not block the end boundary")
            }
        }
    }
}

func TestComputeAvailabilityValidation(t *testing.T) {
    day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
    var vErr *ValidationError
    if _, err := ComputeAvailability(day, 0, defaultWindow, nil); !errors.As(err, &vErr) {
        t.Fatalf("expected ValidationError for zero granularity, got %v", err)
    }
    if _, err := ComputeAvailability(day, 30, OperatingWindow{OpenMinute: 600, CloseMinute: 600}, nil); !errors.As(err, &vErr) {
        t.Fatalf("expected ValidationError for empty operating window, got %v", err)
    }
}

func TestComputeAvailabilityDeterministic(t *testing.T) {
    day := time.Date(2025, 3, 10, 14, 55, 3, 0, time.UTC) // non-midnight input is normalised
    busy := []Window{
        {Start: at(t, "07:00"), End: at(t, "08:00")},
        {Start: at(t, "12:30"), End: at(t, "13:15")},
    }
    first, err := ComputeAvailability(day, 15, defaultWindow, busy)
    if err != nil {
        t.Fatalf("ComputeAvailability: %v", err)
    }
    second, err := ComputeAvailability(day, 15, defaultWindow, busy)
    if err != nil {
        t.Fatalf("ComputeAvailability: %v", err)
    }
    if len(first) != len(second) {
        t.Fatalf("non-deterministic slot count: %d vs %d", len(first), len(second))
    }
    for i := range first {
        if !first[i].Start.Equal(second[i].Start) || first[i].Available != second[i].Available {
            t.Fatalf("slot %d differs between runs", i)
        }
    }
}
