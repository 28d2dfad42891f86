package scheduling

import (
    "fmt"
    "strconv"
    "strings"
    "time"
)

// OperatingWindow bounds the bookable part of a day, expressed as minutes
// from midnight.  The default warehouse day runs 06:00-22:00.
type OperatingWindow struct {
    OpenMinute  int // first bookable minute of the day
    CloseMinute int // exclusive end of the bookable day
}

// Slot is one grid cell of the discretized availability view.  Slots are
// derived, never persisted.
type Slot struct {
    Start     time.Time `json:"start"`
    Available bool      `json:"available"`
}

// ParseClock converts an "HH:MM" string to minutes from midnight.  The
// whole input must be consumed: trailing characters ("9:30pm", seconds,
// whitespace) are rejected, not silently dropped.  "24:00" is accepted
// as the exclusive end of the day.
func ParseClock(s string) (int, error) {
    hh, mm, ok := strings.Cut(s, ":")
    if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !allDigits(hh) || !allDigits(mm) {
        return 0, fmt.Errorf("invalid clock value %q", s)
    }
    h, _ := strconv.Atoi(hh)
    m, _ := strconv.Atoi(mm)
    if h > 24 || m > 59 || (h == 24 && m != 0) {
        return 0, fmt.Errorf("invalid clock value %q", s)
    }
    return h*60 + m, nil
}

func allDigits(s string) bool {
    for i := 0; i < len(s); i++ {
        if s[i] < '0' || s[i] > '9' {
            return false
        }
    }
    return true
}

// ComputeAvailability enumerates every slot boundary of the operating
// window at the given granularity for one dock on one date, marking a
// slot unavailable when its start falls inside [w.Start, w.End) of any
// active appointment window.  The result is deterministic and ordered by
// slot start, which makes it usable both for calendar views and as the
// substrate for window search.
//
// date must be the midnight of the day being computed; callers normalise
// with DayOf.  busy holds the active windows of that dock/date.
func ComputeAvailability(date time.Time, granularityMin int, op OperatingWindow, busy []Window) ([]Slot, error) {
    if granularityMin <= 0 {
        return nil, Validationf("slot granularity must be positive, got %d", granularityMin)
    }
    if op.OpenMinute < 0 || op.CloseMinute <= op.OpenMinute {
        return nil, Validationf("invalid operating window %d-%d", op.OpenMinute, op.CloseMinute)
    }

    day := DayOf(date)
    slots := make([]Slot, 0, (op.CloseMinute-op.OpenMinute)/granularityMin)
    for m := op.OpenMinute; m+granularityMin <= op.CloseMinute; m += granularityMin {
        start := day.Add(time.Duration(m) * time.Minute)
        available := true
        for i := range busy {
            if !start.Before(busy[i].Start) && start.Before(busy[i].End) {
                available = false
                break
            }
        }
        slots = append(slots, Slot{Start: start, Available: available})
    }
    return slots, nil
}

// DayOf truncates a timestamp to midnight UTC of its calendar day.
func DayOf(t time.Time) time.Time {
    u := t.UTC()
    return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
