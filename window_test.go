package connect

import (
	"testing"
	"time"
)

func TestTodayWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.Local)
	w := TodayWindow(now)

	wantStart := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2026, 3, 10, 23, 59, 59, 999000000, time.Local)

	if !w.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", w.End, wantEnd)
	}
}

func TestWeekWindowJumpsToWeekendOnTuesday(t *testing.T) {
	// 2026-03-10 is a Tuesday; the upcoming Friday is 2026-03-13
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	w := WeekWindow(now)

	wantStart := time.Date(2026, 3, 13, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2026, 3, 14, 23, 59, 59, 999000000, time.Local)

	if !w.Start.Equal(wantStart) {
		t.Errorf("start = %v, want Friday %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("end = %v, want Saturday %v", w.End, wantEnd)
	}
}

func TestWeekWindowPlainSpanOnSaturday(t *testing.T) {
	// 2026-03-14 is a Saturday
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.Local)
	w := WeekWindow(now)

	wantStart := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	wantEnd := wantStart.AddDate(0, 0, 7)

	if !w.Start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", w.End, wantEnd)
	}
}

func TestWeekWindowMondayAndThursdayBothJump(t *testing.T) {
	monday := time.Date(2026, 3, 9, 8, 0, 0, 0, time.Local)
	thursday := time.Date(2026, 3, 12, 23, 0, 0, 0, time.Local)
	friday := time.Date(2026, 3, 13, 0, 0, 0, 0, time.Local)

	if w := WeekWindow(monday); !w.Start.Equal(friday) {
		t.Errorf("Monday window should start Friday, got %v", w.Start)
	}
	if w := WeekWindow(thursday); !w.Start.Equal(friday) {
		t.Errorf("Thursday window should start Friday, got %v", w.Start)
	}
}

func TestWindowContains(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	w := TodayWindow(now)

	if !w.Contains(now) {
		t.Errorf("window should contain its own day")
	}
	if w.Contains(now.AddDate(0, 0, 1)) {
		t.Errorf("window should not contain tomorrow")
	}
}
