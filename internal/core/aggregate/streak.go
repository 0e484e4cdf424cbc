package aggregate

import (
	"sort"
	"time"
)

// Streak counts consecutive calendar days on which a qualifying condition
// was met. Best is never lower than Current.
type Streak struct {
	Current            int    `json:"current"`
	Best               int    `json:"best"`
	LastQualifyingDate string `json:"last_qualifying_date"`
}

// UpdateStreak applies one day's evaluation to s.
//
// A day that does not qualify, or a re-evaluation of the day already
// recorded, leaves s untouched. A qualifying day directly after
// LastQualifyingDate extends the run; any other qualifying day (including
// when LastQualifyingDate is empty or malformed) starts a new run of 1.
func UpdateStreak(s Streak, qualified bool, today time.Time) Streak {
	if !qualified {
		return s
	}

	todayKey := DayKey(today)
	if s.LastQualifyingDate == todayKey {
		return s
	}

	next := Streak{Current: 1, Best: s.Best, LastQualifyingDate: todayKey}
	if s.LastQualifyingDate == previousDay(todayKey) {
		next.Current = s.Current + 1
	}

	if next.Best < next.Current {
		next.Best = next.Current
	}
	return next
}

// ReplayStreak rebuilds a streak from a history of qualifying days.
// Malformed and duplicate dates are skipped, the rest are applied in
// calendar order. If the last qualifying day is neither today nor
// yesterday the current run is reported as 0, while Best keeps the
// longest run seen.
func ReplayStreak(dates []string, today time.Time) Streak {
	seen := make(map[string]bool, len(dates))
	var days []time.Time

	for _, d := range dates {
		t, ok := parseDay(d)
		if !ok || seen[d] {
			continue
		}
		seen[d] = true
		days = append(days, t)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	var s Streak
	for _, d := range days {
		s = UpdateStreak(s, true, d)
	}

	todayKey := DayKey(today)
	if s.LastQualifyingDate != "" && s.LastQualifyingDate != todayKey && s.LastQualifyingDate != previousDay(todayKey) {
		s.Current = 0
	}

	return s
}

func previousDay(key string) string {
	t, ok := parseDay(key)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(DateLayout)
}
