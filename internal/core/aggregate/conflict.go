package aggregate

// Slot is the scheduling view of a consultation booking.
type Slot struct {
	ID        string
	Counselor string
	Date      string
	Time      string
	Cancelled bool
}

// ConflictCheck reports whether a booking other than candidateID already
// holds counselor at the same date and time. Cancelled bookings never
// conflict, and an incomplete candidate (no counselor, date or time) never
// conflicts. The result is advisory: nothing is locked.
func ConflictCheck(slots []Slot, candidateID, counselor, date, clock string) bool {
	if counselor == "" || date == "" || clock == "" {
		return false
	}

	for _, s := range slots {
		if s.ID == candidateID || s.Cancelled {
			continue
		}
		if s.Counselor == counselor && s.Date == date && s.Time == clock {
			return true
		}
	}

	return false
}
