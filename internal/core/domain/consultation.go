package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
)

var (
	ErrBookingNotFound      = errors.New("consultation booking not found")
	ErrBookingNameEmpty     = errors.New("booking name cannot be empty")
	ErrInvalidBookingCat    = errors.New("invalid consultation category")
	ErrInvalidBookingDate   = errors.New("invalid booking date (must be YYYY-MM-DD)")
	ErrInvalidBookingTime   = errors.New("invalid booking time (must be HH:MM 24h)")
	ErrInvalidStatus        = errors.New("invalid booking status")
	ErrInvalidTransition    = errors.New("booking status transition not allowed")
	ErrNoteEmpty            = errors.New("note cannot be empty")
	ErrBookingAlreadyClosed = errors.New("booking is already completed or cancelled")
)

var clockRegex = regexp.MustCompile(`^([0-1][0-9]|2[0-3]):[0-5][0-9]$`)

type BookingStatus string

const (
	StatusPending   BookingStatus = "Pending"
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCompleted BookingStatus = "Completed"
	StatusCancelled BookingStatus = "Cancelled"
)

// AllowDirectCompletion lets a Pending booking be marked Completed without
// passing through Confirmed.
const AllowDirectCompletion = true

var ConsultationCategories = []string{"Mental Health", "Fitness", "Nutrition", "Wellness"}

// statusPriority orders bookings that share a date and time.
var statusPriority = map[BookingStatus]int{
	StatusPending:   1,
	StatusConfirmed: 2,
	StatusCompleted: 3,
	StatusCancelled: 4,
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	st := BookingStatus(strings.TrimSpace(s))
	if _, ok := statusPriority[st]; !ok {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Priority is the sort rank of s; unknown statuses sort last.
func (s BookingStatus) Priority() int {
	if p, ok := statusPriority[s]; ok {
		return p
	}
	return len(statusPriority) + 1
}

// CanTransition reports whether a booking in s may move to next.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s.Terminal() {
		return false
	}

	switch next {
	case StatusConfirmed:
		return s == StatusPending
	case StatusCompleted:
		return s == StatusConfirmed || (s == StatusPending && AllowDirectCompletion)
	case StatusCancelled:
		return true
	default:
		return false
	}
}

type Booking struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Category  string        `json:"category"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Message   string        `json:"message"`
	Status    BookingStatus `json:"status"`
	Counselor string        `json:"counselor"`
	MeetLink  string        `json:"meet_link"`
	Notes     []string      `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func NewBooking(ownerID, name, email, category, date, clock, message string) (*Booking, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBookingNameEmpty
	}
	if !isConsultationCategory(category) {
		return nil, ErrInvalidBookingCat
	}
	if _, err := time.Parse(aggregate.DateLayout, date); err != nil {
		return nil, ErrInvalidBookingDate
	}
	if !clockRegex.MatchString(clock) {
		return nil, ErrInvalidBookingTime
	}

	now := time.Now().UTC()
	return &Booking{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Category:  category,
		Date:      date,
		Time:      clock,
		Message:   strings.TrimSpace(message),
		Status:    StatusPending,
		Notes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func isConsultationCategory(c string) bool {
	for _, known := range ConsultationCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Transition moves the booking to next. Re-applying the current status is
// a no-op.
func (b *Booking) Transition(next BookingStatus) error {
	if _, ok := statusPriority[next]; !ok {
		return ErrInvalidStatus
	}
	if b.Status == next {
		return nil
	}
	if !b.Status.CanTransition(next) {
		return ErrInvalidTransition
	}

	b.Status = next
	b.UpdatedAt = time.Now().UTC()
	return nil
}

// Assign sets the counselor and schedule. Closed bookings cannot be
// rescheduled.
func (b *Booking) Assign(counselor, date, clock string) error {
	if b.Status.Terminal() {
		return ErrBookingAlreadyClosed
	}
	if date != "" {
		if _, err := time.Parse(aggregate.DateLayout, date); err != nil {
			return ErrInvalidBookingDate
		}
		b.Date = date
	}
	if clock != "" {
		if !clockRegex.MatchString(clock) {
			return ErrInvalidBookingTime
		}
		b.Time = clock
	}

	b.Counselor = strings.TrimSpace(counselor)
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (b *Booking) AddNote(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrNoteEmpty
	}

	b.Notes = append(b.Notes, text)
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (b *Booking) SetMeetLink(link string) {
	b.MeetLink = strings.TrimSpace(link)
	b.UpdatedAt = time.Now().UTC()
}

// Slot is the scheduling view used for conflict detection.
func (b Booking) Slot() aggregate.Slot {
	return aggregate.Slot{
		ID:        b.ID,
		Counselor: b.Counselor,
		Date:      b.Date,
		Time:      b.Time,
		Cancelled: b.Status == StatusCancelled,
	}
}

// StartsAt combines date and time; a missing time counts as midnight.
func (b Booking) StartsAt(loc *time.Location) (time.Time, bool) {
	clock := b.Time
	if clock == "" {
		clock = "00:00"
	}
	t, err := time.ParseInLocation(aggregate.DateLayout+" 15:04", b.Date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func FindBooking(bookings []Booking, id string) (int, error) {
	for i := range bookings {
		if bookings[i].ID == id {
			return i, nil
		}
	}
	return -1, ErrBookingNotFound
}
