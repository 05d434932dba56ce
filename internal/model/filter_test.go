package model

import (
	"testing"
	"time"
)

func TestDefaultFilter_MatchesNothingRestricted(t *testing.T) {
	f := DefaultFilter()

	if f.SelectedDay != DayNone {
		t.Errorf("SelectedDay = %d, want DayNone", f.SelectedDay)
	}
	if len(f.PassTypes) != 0 || len(f.Tracks) != 0 || len(f.Formats) != 0 {
		t.Error("default filter should have empty restriction sets")
	}
	if f.HasTimeWindow() {
		t.Error("default filter should have no time window")
	}
	if f.InTimeSlotMode {
		t.Error("default filter should not be in time-slot mode")
	}
}

func TestFilter_HasTimeWindow_RequiresBothEdges(t *testing.T) {
	start := time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 17, 18, 0, 0, 0, time.UTC)

	if (Filter{StartDateTime: start}).HasTimeWindow() {
		t.Error("start alone should not enable the window")
	}
	if (Filter{EndDateTime: end}).HasTimeWindow() {
		t.Error("end alone should not enable the window")
	}
	if !(Filter{StartDateTime: start, EndDateTime: end}).HasTimeWindow() {
		t.Error("both edges set should enable the window")
	}
}

func TestFilter_WindowWidth(t *testing.T) {
	start := time.Date(2025, 3, 17, 9, 0, 0, 0, time.UTC)
	f := Filter{StartDateTime: start, EndDateTime: start.Add(2 * time.Hour)}

	if f.WindowWidth() != 2*time.Hour {
		t.Errorf("WindowWidth = %v, want %v", f.WindowWidth(), 2*time.Hour)
	}
	if (Filter{}).WindowWidth() != 0 {
		t.Error("WindowWidth of unbounded filter should be 0")
	}
}
