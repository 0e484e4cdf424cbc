package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
)

var (
	ErrProgramTitleEmpty   = errors.New("program title cannot be empty")
	ErrProgramTitleTooLong = errors.New("program title is too long (max 100 chars)")
	ErrProgramDescTooLong  = errors.New("program description is too long (max 500 chars)")
	ErrInvalidCapacity     = errors.New("capacity cannot be negative")
	ErrInvalidProgramStart = errors.New("invalid program start date (must be YYYY-MM-DD)")
	ErrProgramNotFound     = errors.New("program not found")
)

const (
	DefaultProgramCategory = "General Wellness"
	MaxTitleLen            = 100
	MaxDescLen             = 500
)

var ProgramCategories = []string{"Mental Health", "Fitness", "Nutrition", "Wellness", DefaultProgramCategory}

type Program struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Capacity    int    `json:"capacity"`
	StartDate   string `json:"start_date"`
	Description string `json:"description"`
}

func validateProgram(title, desc string, capacity int, startDate string) error {
	if title == "" {
		return ErrProgramTitleEmpty
	}
	if len(title) > MaxTitleLen {
		return ErrProgramTitleTooLong
	}
	if len(desc) > MaxDescLen {
		return ErrProgramDescTooLong
	}
	if capacity < 0 {
		return ErrInvalidCapacity
	}
	if startDate != "" {
		if _, err := time.Parse(aggregate.DateLayout, startDate); err != nil {
			return ErrInvalidProgramStart
		}
	}
	return nil
}

func NewProgram(title, category string, capacity int, startDate, description string) (*Program, error) {
	p := &Program{ID: uuid.NewString()}
	if err := p.Update(title, category, capacity, startDate, description); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Program) Update(title, category string, capacity int, startDate, description string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	startDate = strings.TrimSpace(startDate)

	if err := validateProgram(title, description, capacity, startDate); err != nil {
		return err
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultProgramCategory
	}

	p.Title = title
	p.Category = category
	p.Capacity = capacity
	p.StartDate = startDate
	p.Description = description
	return nil
}

// Matches is the catalogue search: a case-insensitive substring of title or
// description, restricted to category unless category is empty or "All".
func (p Program) Matches(query, category string) bool {
	if category != "" && category != "All" && p.Category != category {
		return false
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func FindProgram(programs []Program, id string) (int, error) {
	for i := range programs {
		if programs[i].ID == id {
			return i, nil
		}
	}
	return -1, ErrProgramNotFound
}

// ProgramPreferences are one student's favourite and enrolled programs,
// stored by program id.
type ProgramPreferences struct {
	Favorites []string `json:"favorites"`
	Enrolled  []string `json:"enrolled"`
}

// ToggleFavorite flips id in the favourites and reports whether it is now set.
func (p *ProgramPreferences) ToggleFavorite(id string) bool {
	var on bool
	p.Favorites, on = toggle(p.Favorites, id)
	return on
}

func (p *ProgramPreferences) ToggleEnrolled(id string) bool {
	var on bool
	p.Enrolled, on = toggle(p.Enrolled, id)
	return on
}

func toggle(list []string, id string) ([]string, bool) {
	for i, v := range list {
		if v == id {
			return append(list[:i:i], list[i+1:]...), false
		}
	}
	return append(list, id), true
}
