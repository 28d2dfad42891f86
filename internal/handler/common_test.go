package handler

import (
    "testing"
    "time"

    "github.com/iliyamo/warehouse-dock-scheduler/internal/model"
)

func TestParseDate(t *testing.T) {
    d, err := parseDate("2025-03-10")
    if err != nil {
        t.Fatalf("parseDate: %v", err)
    }
    want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
    if !d.Equal(want) {
        t.Fatalf("got %v, want %v", d, want)
    }

    for _, bad := range []string{"", "10-03-2025", "2025-13-01", "2025-03-10T00:00:00Z"} {
        if _, err := parseDate(bad); err == nil {
            t.Errorf("parseDate(%q): expected error", bad)
        }
    }
}

func TestCombineClock(t *testing.T) {
    date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
    got, err := combineClock(date, "09:30")
    if err != nil {
        t.Fatalf("combineClock: %v", err)
    }
    want := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("got %v, want %v", got, want)
    }

    // A date carrying a time-of-day component must not shift the result.
    dirty := time.Date(2025, 3, 10, 17, 45, 12, 0, time.UTC)
    got, err = combineClock(dirty, "09:30")
    if err != nil {
        t.Fatalf("combineClock: %v", err)
    }
    if !got.Equal(want) {
        t.Fatalf("got %v, want %v", got, want)
    }

    if _, err := combineClock(date, "9:30pm"); err == nil {
        t.Error("expected error for non HH:MM input")
    }
}

func TestCarryClock(t *testing.T) {
    old := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
    newDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
    got := carryClock(newDate, old)
    want := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)
    if !got.Equal(want) {
        t.Fatalf("got %v, want %v", got, want)
    }
}

func TestCheckVehicleFit(t *testing.T) {
    length := 16.5
    height := 4.0
    dock := &model.Dock{MaxVehicleLength: &length, MaxVehicleHeight: &height}

    ok := 15.0
    if err := checkVehicleFit(dock, &ok, &height); err != nil {
        t.Fatalf("fit within limits rejected: %v", err)
    }
    tooLong := 18.0
    if err := checkVehicleFit(dock, &tooLong, nil); err == nil {
        t.Error("expected error for vehicle longer than dock limit")
    }
    tooTall := 4.5
    if err := checkVehicleFit(dock, nil, &tooTall); err == nil {
        t.Error("expected error for vehicle taller than dock limit")
    }
    // Docks without declared limits accept any vehicle.
    if err := checkVehicleFit(&model.Dock{}, &tooLong, &tooTall); err != nil {
        t.Fatalf("unlimited dock rejected vehicle: %v", err)
    }
    // Unknown vehicle dimensions pass; the operator vets on arrival.
    if err := checkVehicleFit(dock, nil, nil); err != nil {
        t.Fatalf("nil dimensions rejected: %v", err)
    }
}
