// Package aggregate derives the summary values shown on the portal dashboards
// (totals, goal progress, averages, streaks, histograms) from raw records.
//
// Every function is pure and total: malformed input is normalized to a
// documented default instead of returning an error.
package aggregate

import (
	"math"
	"time"
)

// DateLayout is the calendar-day key used by every dated record.
const DateLayout = "2006-01-02"

// Totals sums each named field across records. Every requested field is
// present in the result, so an empty input yields all zeros.
func Totals[T any](records []T, fields map[string]func(T) float64) map[string]float64 {
	out := make(map[string]float64, len(fields))
	for name := range fields {
		out[name] = 0
	}

	for _, r := range records {
		for name, value := range fields {
			out[name] += value(r)
		}
	}

	return out
}

// ProgressPercent returns round(min(100, value/max(1, goal)*100)), clamped
// to [0, 100].
func ProgressPercent(value, goal float64) int {
	if goal < 1 {
		goal = 1
	}

	pct := math.Round(math.Min(100, value/goal*100))
	if pct < 0 || math.IsNaN(pct) {
		return 0
	}
	return int(pct)
}

// AverageOverWindow is the rounded mean of field over the most recent
// window records. A non-positive window, or fewer records than window,
// averages everything. Empty input averages to 0.
func AverageOverWindow[T any](records []T, field func(T) float64, window int) int {
	if len(records) == 0 {
		return 0
	}

	if window > 0 && len(records) > window {
		records = records[len(records)-window:]
	}

	var sum float64
	for _, r := range records {
		sum += field(r)
	}

	return int(math.Round(sum / float64(len(records))))
}

// CompletionRate is done/total as a rounded percentage, 0 when total is 0.
func CompletionRate(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// DayKey formats t as a calendar-day key in t's own location.
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
