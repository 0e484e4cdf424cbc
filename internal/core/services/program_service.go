package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/aggregate"
	"github.com/comitanigiacomo/kanso-wellness-hub/internal/core/domain"
)

// ProgramService manages the shared catalogue and each student's
// favourites and enrolments. Preferences hold program ids only, so deleting
// a program leaves dangling ids that are skipped when resolved.
type ProgramService struct {
	programs    domain.ProgramRepository
	preferences domain.PreferencesRepository

	mu sync.Mutex
}

func NewProgramService(programs domain.ProgramRepository, preferences domain.PreferencesRepository) *ProgramService {
	return &ProgramService{
		programs:    programs,
		preferences: preferences,
	}
}

type ProgramInput struct {
	Title       string
	Category    string
	Capacity    int
	StartDate   string
	Description string
}

type PreferencesView struct {
	Favorites []domain.Program `json:"favorites"`
	Enrolled  []domain.Program `json:"enrolled"`
}

type ToggleResult struct {
	ProgramID string `json:"program_id"`
	Active    bool   `json:"active"`
}

func (s *ProgramService) catalogue(ctx context.Context) ([]domain.Program, error) {
	programs, err := s.programs.Load(ctx, domain.SharedOwner)
	if err != nil {
		return nil, err
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	return programs, nil
}

func (s *ProgramService) saveCatalogue(ctx context.Context, programs []domain.Program) error {
	if err := s.programs.Save(ctx, domain.SharedOwner, programs); err != nil {
		return fmt.Errorf("program service: failed to save programs: %w", err)
	}
	return nil
}

func (s *ProgramService) Create(ctx context.Context, input ProgramInput) (*domain.Program, error) {
	program, err := domain.NewProgram(input.Title, input.Category, input.Capacity, input.StartDate, input.Description)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	programs, err := s.catalogue(ctx)
	if err != nil {
		return nil, err
	}

	programs = append(programs, *program)
	if err := s.saveCatalogue(ctx, programs); err != nil {
		return nil, err
	}
	return program, nil
}

func (s *ProgramService) Update(ctx context.Context, id string, input ProgramInput) (*domain.Program, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	programs, err := s.catalogue(ctx)
	if err != nil {
		return nil, err
	}

	idx, err := domain.FindProgram(programs, id)
	if err != nil {
		return nil, err
	}

	if err := programs[idx].Update(input.Title, input.Category, input.Capacity, input.StartDate, input.Description); err != nil {
		return nil, err
	}

	if err := s.saveCatalogue(ctx, programs); err != nil {
		return nil, err
	}

	updated := programs[idx]
	return &updated, nil
}

func (s *ProgramService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	programs, err := s.catalogue(ctx)
	if err != nil {
		return err
	}

	idx, err := domain.FindProgram(programs, id)
	if err != nil {
		return err
	}

	programs = append(programs[:idx], programs[idx+1:]...)
	return s.saveCatalogue(ctx, programs)
}

func (s *ProgramService) List(ctx context.Context, query, category string) ([]domain.Program, error) {
	programs, err := s.catalogue(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Program, 0, len(programs))
	for _, p := range programs {
		if p.Matches(query, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProgramService) Histogram(ctx context.Context) ([]aggregate.CategoryCount, error) {
	programs, err := s.catalogue(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.CategoryHistogram(programs, func(p domain.Program) string { return p.Category }, domain.ProgramCategories), nil
}

func (s *ProgramService) ToggleFavorite(ctx context.Context, owner, programID string) (*ToggleResult, error) {
	return s.toggle(ctx, owner, programID, (*domain.ProgramPreferences).ToggleFavorite)
}

func (s *ProgramService) ToggleEnrolled(ctx context.Context, owner, programID string) (*ToggleResult, error) {
	return s.toggle(ctx, owner, programID, (*domain.ProgramPreferences).ToggleEnrolled)
}

func (s *ProgramService) toggle(ctx context.Context, owner, programID string, flip func(*domain.ProgramPreferences, string) bool) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	programs, err := s.catalogue(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := domain.FindProgram(programs, programID); err != nil {
		return nil, err
	}

	prefs, err := s.preferences.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	active := flip(&prefs, programID)

	if err := s.preferences.Save(ctx, owner, prefs); err != nil {
		return nil, fmt.Errorf("program service: failed to save preferences: %w", err)
	}

	return &ToggleResult{ProgramID: programID, Active: active}, nil
}

// Preferences resolves the owner's stored ids against the catalogue.
func (s *ProgramService) Preferences(ctx context.Context, owner string) (*PreferencesView, error) {
	programs, err := s.catalogue(ctx)
	if err != nil {
		return nil, err
	}

	prefs, err := s.preferences.Load(ctx, owner)
	if err != nil {
		return nil, err
	}

	return &PreferencesView{
		Favorites: resolvePrograms(programs, prefs.Favorites),
		Enrolled:  resolvePrograms(programs, prefs.Enrolled),
	}, nil
}

func resolvePrograms(programs []domain.Program, ids []string) []domain.Program {
	out := make([]domain.Program, 0, len(ids))
	for _, id := range ids {
		if idx, err := domain.FindProgram(programs, id); err == nil {
			out = append(out, programs[idx])
		}
	}
	return out
}
