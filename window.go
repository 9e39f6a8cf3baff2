package connect

import (
	"time"
)

// TimeWindow is an inclusive [Start, End] span.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// TodayWindow spans the local calendar day containing now.
func TodayWindow(now time.Time) TimeWindow {
	return TimeWindow{Start: startOfDay(now), End: endOfDay(now)}
}

// WeekWindow picks the span the week channel surfaces. Early in the week
// (Monday through Thursday) it jumps ahead to the coming Friday–Saturday,
// so the feed shows the upcoming weekend rather than the leftover weekdays.
// Otherwise it is a plain seven-day span from the start of today.
func WeekWindow(now time.Time) TimeWindow {
	wd := now.Weekday()
	if wd >= time.Monday && wd <= time.Thursday {
		daysToFriday := int(time.Friday - wd)
		friday := startOfDay(now).AddDate(0, 0, daysToFriday)
		return TimeWindow{Start: friday, End: endOfDay(friday.AddDate(0, 0, 1))}
	}
	start := startOfDay(now)
	return TimeWindow{Start: start, End: start.AddDate(0, 0, 7)}
}

// TrendingWindowStart is the lookback cutoff for the trending channel.
func TrendingWindowStart(now time.Time) time.Time {
	return now.Add(-24 * time.Hour)
}
