package aggregate

import "strings"

// DateRangeFilter keeps records whose date lies in [from, to].
//
// An empty or unparsable bound imposes no constraint on its side. A record
// whose own date cannot be parsed is not range-checked and is kept.
func DateRangeFilter[T any](records []T, date func(T) string, from, to string) []T {
	lo, hasLo := parseDay(strings.TrimSpace(from))
	hi, hasHi := parseDay(strings.TrimSpace(to))

	out := make([]T, 0, len(records))
	for _, r := range records {
		d, ok := parseDay(strings.TrimSpace(date(r)))
		if !ok {
			out = append(out, r)
			continue
		}
		if hasLo && d.Before(lo) {
			continue
		}
		if hasHi && d.After(hi) {
			continue
		}
		out = append(out, r)
	}

	return out
}
