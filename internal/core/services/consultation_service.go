package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// UpcomingWindow is how far ahead KPIs look for sessions that need attention.
const UpcomingWindow = 48 * time.Hour

// ConsultationService manages the portal-wide booking collection. Students
// only ever see and cancel their own bookings.
type ConsultationService struct {
	bookings domain.BookingRepository
	users    domain.UserRepository
	programs domain.ProgramRepository

	mu sync.Mutex
}

// NewConsultationService manages bookings; users and programs only feed the
// headcounts of the admin report.
func NewConsultationService(bookings domain.BookingRepository, users domain.UserRepository, programs domain.ProgramRepository) *ConsultationService {
	return &ConsultationService{bookings: bookings, users: users, programs: programs}
}

type BookInput struct {
	Name     string
	Email    string
	Category string
	Date     string
	Time     string
	Message  string
}

type AssignInput struct {
	ID        string
	Counselor string
	Date      string
	Time      string
}

// AssignResult carries the saved booking and whether its new slot clashes
// with another live booking of the same counselor.
type AssignResult struct {
	Booking  domain.Booking `json:"booking"`
	Conflict bool           `json:"conflict"`
}

// BookingFilter narrows a listing. Empty fields, and "All" for category and
// status, match everything.
type BookingFilter struct {
	OwnerID  string
	Search   string
	Category string
	Status   string
	From     string
	To       string
}

type ConsultationKPIs struct {
	Total       int                       `json:"total"`
	Pending     int                       `json:"pending"`
	Confirmed   int                       `json:"confirmed"`
	Completed   int                       `json:"completed"`
	ByCategory  []aggregate.CategoryCount `json:"by_category"`
	Trend       []aggregate.DateCount     `json:"trend"`
	Upcoming48h int                       `json:"upcoming_48h"`
}

type ConsultationReport struct {
	Total          int                       `json:"total"`
	CompletionRate int                       `json:"completion_rate"`
	AvgLeadDays    int                       `json:"avg_lead_days"`
	ActiveUsers    int                       `json:"active_users"`
	Programs       int                       `json:"programs"`
	ByCategory     []aggregate.CategoryCount `json:"by_category"`
	ByStatus       []aggregate.CategoryCount `json:"by_status"`
	ByDate         []aggregate.DateCount     `json:"by_date"`
	Insights       []string                  `json:"insights"`
}

var bookingStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
	string(domain.StatusCompleted),
	string(domain.StatusCancelled),
}

func (s *ConsultationService) all(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.Load(ctx, domain.SharedOwner)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

func (s *ConsultationService) save(ctx context.Context, bookings []domain.Booking) error {
	if err := s.bookings.Save(ctx, domain.SharedOwner, bookings); err != nil {
		return fmt.Errorf("consultation service: failed to save bookings: %w", err)
	}
	return nil
}

// Book files a new Pending booking for the session's user. Name and email
// default to the account's own.
func (s *ConsultationService) Book(ctx context.Context, session domain.Session, input BookInput) (*domain.Booking, error) {
	if !session.Valid() {
		return nil, domain.ErrUnauthorized
	}

	name := input.Name
	if strings.TrimSpace(name) == "" {
		name = session.Name
	}
	email := input.Email
	if strings.TrimSpace(email) == "" {
		email = session.Email
	}

	booking, err := domain.NewBooking(session.UserID, name, email, input.Category, input.Date, input.Time, input.Message)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	bookings = append(bookings, *booking)
	if err := s.save(ctx, bookings); err != nil {
		return nil, err
	}

	return booking, nil
}

// Cancel lets a student withdraw one of their own bookings. Admins may
// cancel any booking.
func (s *ConsultationService) Cancel(ctx context.Context, session domain.Session, id string) (*domain.Booking, error) {
	return s.mutate(ctx, id, func(b *domain.Booking) error {
		if !session.IsAdmin() && b.OwnerID != session.UserID {
			return domain.ErrBookingNotFound
		}
		return b.Transition(domain.StatusCancelled)
	})
}

// mutate applies fn to one booking under the lock and saves on success.
func (s *ConsultationService) mutate(ctx context.Context, id string, fn func(*domain.Booking) error) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := domain.FindBooking(bookings, id)
	if err != nil {
		return nil, err
	}

	if err := fn(&bookings[idx]); err != nil {
		return nil, err
	}

	if err := s.save(ctx, bookings); err != nil {
		return nil, err
	}

	updated := bookings[idx]
	return &updated, nil
}

func (s *ConsultationService) UpdateStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	next, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(b *domain.Booking) error {
		return b.Transition(next)
	})
}

// Assign saves the counselor and schedule even when they clash; the clash
// is only reported back.
func (s *ConsultationService) Assign(ctx context.Context, input AssignInput) (*AssignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := domain.FindBooking(bookings, input.ID)
	if err != nil {
		return nil, err
	}

	if err := bookings[idx].Assign(input.Counselor, input.Date, input.Time); err != nil {
		return nil, err
	}

	slots := make([]aggregate.Slot, len(bookings))
	for i, b := range bookings {
		slots[i] = b.Slot()
	}
	b := bookings[idx]
	conflict := aggregate.ConflictCheck(slots, b.ID, b.Counselor, b.Date, b.Time)

	if err := s.save(ctx, bookings); err != nil {
		return nil, err
	}

	return &AssignResult{Booking: b, Conflict: conflict}, nil
}

func (s *ConsultationService) AddNote(ctx context.Context, id, text string) (*domain.Booking, error) {
	return s.mutate(ctx, id, func(b *domain.Booking) error {
		return b.AddNote(text)
	})
}

func (s *ConsultationService) SetMeetLink(ctx context.Context, id, link string) (*domain.Booking, error) {
	return s.mutate(ctx, id, func(b *domain.Booking) error {
		b.SetMeetLink(link)
		return nil
	})
}

// List returns the matching bookings ordered by start time, then by status
// priority. Bookings without a parsable start sort last.
func (s *ConsultationService) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error) {
	bookings, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	out := applyBookingFilter(bookings, filter)
	sortBookings(out)
	return out, nil
}

func applyBookingFilter(bookings []domain.Booking, f BookingFilter) []domain.Booking {
	q := strings.ToLower(strings.TrimSpace(f.Search))

	matched := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if f.OwnerID != "" && b.OwnerID != f.OwnerID {
			continue
		}
		if f.Category != "" && f.Category != "All" && b.Category != f.Category {
			continue
		}
		if f.Status != "" && f.Status != "All" && string(b.Status) != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(b.Name), q) &&
			!strings.Contains(strings.ToLower(b.Email), q) &&
			!strings.Contains(strings.ToLower(b.Message), q) {
			continue
		}
		matched = append(matched, b)
	}

	return aggregate.DateRangeFilter(matched, func(b domain.Booking) string { return b.Date }, f.From, f.To)
}

func sortBookings(bookings []domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		ti, okI := bookings[i].StartsAt(time.UTC)
		tj, okJ := bookings[j].StartsAt(time.UTC)
		if okI != okJ {
			return okI
		}
		if okI && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return bookings[i].Status.Priority() < bookings[j].Status.Priority()
	})
}

func countStatus(bookings []domain.Booking, status domain.BookingStatus) int {
	n := 0
	for _, b := range bookings {
		if b.Status == status {
			n++
		}
	}
	return n
}

func byConsultationCategory(bookings []domain.Booking) []aggregate.CategoryCount {
	return aggregate.CategoryHistogram(bookings, func(b domain.Booking) string { return b.Category }, domain.ConsultationCategories)
}

// KPIs summarises the filtered bookings as seen at now. Upcoming counts
// sessions starting within the next 48 hours that are not yet completed.
func (s *ConsultationService) KPIs(ctx context.Context, filter BookingFilter, now time.Time) (*ConsultationKPIs, error) {
	bookings, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	upcoming := 0
	for _, b := range bookings {
		if b.Status == domain.StatusCompleted {
			continue
		}
		start, ok := b.StartsAt(now.Location())
		if !ok {
			continue
		}
		if until := start.Sub(now); until >= 0 && until <= UpcomingWindow {
			upcoming++
		}
	}

	return &ConsultationKPIs{
		Total:       len(bookings),
		Pending:     countStatus(bookings, domain.StatusPending),
		Confirmed:   countStatus(bookings, domain.StatusConfirmed),
		Completed:   countStatus(bookings, domain.StatusCompleted),
		ByCategory:  byConsultationCategory(bookings),
		Trend:       aggregate.CountByDate(bookings, func(b domain.Booking) string { return b.Date }),
		Upcoming48h: upcoming,
	}, nil
}

func (s *ConsultationService) Report(ctx context.Context, filter BookingFilter, now time.Time) (*ConsultationReport, error) {
	bookings, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &ConsultationReport{
		Total:          len(bookings),
		CompletionRate: aggregate.CompletionRate(countStatus(bookings, domain.StatusCompleted), len(bookings)),
		AvgLeadDays:    averageLeadDays(bookings, now),
		ByCategory:     byConsultationCategory(bookings),
		ByStatus: aggregate.CategoryHistogram(bookings, func(b domain.Booking) string {
			return string(b.Status)
		}, bookingStatuses),
		ByDate: aggregate.CountByDate(bookings, func(b domain.Booking) string { return b.Date }),
	}
	report.Insights = reportInsights(report)

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("consultation service: failed to count users: %w", err)
	}
	programs, err := s.programs.Load(ctx, domain.SharedOwner)
	if err != nil {
		return nil, fmt.Errorf("consultation service: failed to count programs: %w", err)
	}
	report.ActiveUsers = len(users)
	report.Programs = len(programs)

	return report, nil
}

// averageLeadDays is the mean number of days between now and each dated
// booking; past sessions count negative.
func averageLeadDays(bookings []domain.Booking, now time.Time) int {
	today, _ := time.ParseInLocation(aggregate.DateLayout, aggregate.DayKey(now), now.Location())

	var leads []float64
	for _, b := range bookings {
		d, err := time.ParseInLocation(aggregate.DateLayout, b.Date, now.Location())
		if err != nil {
			continue
		}
		leads = append(leads, math.Round(d.Sub(today).Hours()/24))
	}

	return aggregate.AverageOverWindow(leads, func(v float64) float64 { return v }, 0)
}

func reportInsights(r *ConsultationReport) []string {
	var lines []string

	if r.Total > 0 && r.CompletionRate >= 75 {
		lines = append(lines, "Strong completion rate: counselor scheduling is effective.")
	}
	if r.AvgLeadDays > 7 {
		lines = append(lines, "Average lead time is high. Consider adding more counselor slots.")
	}

	busiest := aggregate.CategoryCount{}
	for _, c := range r.ByCategory {
		if c.Count > busiest.Count {
			busiest = c
		}
	}
	if busiest.Count > 0 {
		lines = append(lines, fmt.Sprintf("Highest demand: %s. Prioritize capacity here.", busiest.Name))
	}

	for _, st := range r.ByStatus {
		if st.Name == string(domain.StatusPending) && st.Count > 0 {
			lines = append(lines, fmt.Sprintf("%d pending sessions: quick confirmations can raise morale.", st.Count))
		}
	}

	if len(lines) == 0 {
		lines = append(lines, "Operations look balanced across categories and statuses.")
	}
	return lines
}
