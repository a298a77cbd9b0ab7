package location

import (
	"context"
	"sort"
	"strings"

	"family-records-go/internal/domain/search"
	"family-records-go/internal/domain/status"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListStates returns non-deleted states, newest first. A non-empty query
// narrows by case-insensitive substring match on the state name.
func (s *Service) ListStates(ctx context.Context, query string) ([]State, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.ListStates(ctx)
	}
	return s.repo.SearchStatesByName(ctx, query)
}

func (s *Service) GetState(ctx context.Context, id uint) (*State, error) {
	return s.repo.GetState(ctx, id)
}

func (s *Service) CreateState(ctx context.Context, name string) (*State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidField("name", "Name is required.")
	}

	state := State{Name: name, Status: status.Active}
	if err := s.repo.CreateState(ctx, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *Service) UpdateState(ctx context.Context, id uint, name string, rawStatus int) (*State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidField("name", "Name is required.")
	}

	st, err := status.Parse(rawStatus)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetState(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateState(ctx, id, name, st); err != nil {
		return nil, err
	}
	return s.repo.GetState(ctx, id)
}

// DeleteState soft-deletes a state and all its cities in one transaction so
// a failure partway never leaves live cities under a deleted state.
func (s *Service) DeleteState(ctx context.Context, id uint) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetState(ctx, id); err != nil {
			return err
		}
		if err := tx.SoftDeleteCitiesByState(ctx, id); err != nil {
			return err
		}
		return tx.SoftDeleteState(ctx, id)
	})
}

// ListCities returns non-deleted cities, newest first. The query matches the
// city name and the owning state's name independently; the two result sets
// are unioned and deduplicated by city id.
func (s *Service) ListCities(ctx context.Context, query string) ([]City, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.ListCities(ctx)
	}

	byName, err := s.repo.SearchCitiesByName(ctx, query)
	if err != nil {
		return nil, err
	}
	byState, err := s.repo.SearchCitiesByStateName(ctx, query)
	if err != nil {
		return nil, err
	}

	cities := search.UnionByID(func(c City) uint { return c.ID }, byName, byState)
	sort.SliceStable(cities, func(i, j int) bool {
		if cities[i].CreatedAt.Equal(cities[j].CreatedAt) {
			return cities[i].ID > cities[j].ID
		}
		return cities[i].CreatedAt.After(cities[j].CreatedAt)
	})
	return cities, nil
}

func (s *Service) GetCity(ctx context.Context, id uint) (*City, error) {
	return s.repo.GetCity(ctx, id)
}

func (s *Service) CreateCity(ctx context.Context, name string, stateID uint) (*City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidField("name", "Name is required.")
	}

	state, err := s.repo.GetState(ctx, stateID)
	if err != nil {
		return nil, err
	}

	city := City{Name: name, StateID: state.ID, Status: status.Active}
	if err := s.repo.CreateCity(ctx, &city); err != nil {
		return nil, err
	}
	return &city, nil
}

func (s *Service) UpdateCity(ctx context.Context, id uint, name string, stateID uint, rawStatus int) (*City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidField("name", "Name is required.")
	}

	st, err := status.Parse(rawStatus)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCity(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetState(ctx, stateID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCity(ctx, id, name, stateID, st); err != nil {
		return nil, err
	}
	return s.repo.GetCity(ctx, id)
}

func (s *Service) DeleteCity(ctx context.Context, id uint) error {
	if _, err := s.repo.GetCity(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDeleteCity(ctx, id)
}

// ActiveCitiesByState feeds the dependent city dropdown: only Active cities
// of the given state.
func (s *Service) ActiveCitiesByState(ctx context.Context, stateID uint) ([]City, error) {
	return s.repo.ActiveCitiesByState(ctx, stateID)
}

type StateCounts struct {
	States   int64
	Cities   int64
	Active   int64
	Inactive int64
}

func (s *Service) Counts(ctx context.Context) (*StateCounts, error) {
	states, err := s.repo.CountStates(ctx)
	if err != nil {
		return nil, err
	}
	cities, err := s.repo.CountCities(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.CountStatesByStatus(ctx, status.Active)
	if err != nil {
		return nil, err
	}
	inactive, err := s.repo.CountStatesByStatus(ctx, status.Inactive)
	if err != nil {
		return nil, err
	}

	return &StateCounts{States: states, Cities: cities, Active: active, Inactive: inactive}, nil
}
