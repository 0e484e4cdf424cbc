package aggregate

import "sort"

// CategoryCount is one bar of a histogram.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DateCount is the number of records that fall on one calendar day.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// CategoryHistogram counts records per category in the order given by
// known. Categories with no records report 0; records whose category is
// not in known are ignored.
func CategoryHistogram[T any](records []T, category func(T) string, known []string) []CategoryCount {
	index := make(map[string]int, len(known))
	out := make([]CategoryCount, len(known))
	for i, name := range known {
		out[i] = CategoryCount{Name: name}
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	for _, r := range records {
		if i, ok := index[category(r)]; ok {
			out[i].Count++
		}
	}

	return out
}

// CountByDate groups records by their date value and returns the groups in
// ascending date order. Records with an empty date are grouped under
// NoDate.
func CountByDate[T any](records []T, date func(T) string) []DateCount {
	counts := make(map[string]int)
	for _, r := range records {
		key := date(r)
		if key == "" {
			key = NoDate
		}
		counts[key]++
	}

	out := make([]DateCount, 0, len(counts))
	for d, c := range counts {
		out = append(out, DateCount{Date: d, Count: c})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// NoDate labels records that carry no date in CountByDate.
const NoDate = "No Date"

// Mood buckets used for the mood distribution chart.
const (
	MoodHappy = "happy"
	MoodGood  = "good"
	MoodOkay  = "okay"
	MoodLow   = "low"
)

// MoodBuckets lists the buckets in display order.
var MoodBuckets = []string{MoodHappy, MoodGood, MoodOkay, MoodLow}

// MoodBucket maps a 1-10 mood score to its bucket.
func MoodBucket(score int) string {
	switch {
	case score >= 9:
		return MoodHappy
	case score >= 7:
		return MoodGood
	case score >= 5:
		return MoodOkay
	default:
		return MoodLow
	}
}
