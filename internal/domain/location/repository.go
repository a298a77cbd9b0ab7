package location

import (
	"context"

	"family-records-go/internal/domain/status"
)

// Repository is status-aware: list and get operations never return Deleted
// rows, soft deletes flip status instead of removing rows.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListStates(ctx context.Context) ([]State, error)
	SearchStatesByName(ctx context.Context, query string) ([]State, error)
	GetState(ctx context.Context, id uint) (*State, error)
	CreateState(ctx context.Context, state *State) error
	UpdateState(ctx context.Context, id uint, name string, st status.Status) error
	SoftDeleteState(ctx context.Context, id uint) error
	SoftDeleteCitiesByState(ctx context.Context, stateID uint) error
	CountStates(ctx context.Context) (int64, error)
	CountStatesByStatus(ctx context.Context, st status.Status) (int64, error)

	ListCities(ctx context.Context) ([]City, error)
	SearchCitiesByName(ctx context.Context, query string) ([]City, error)
	SearchCitiesByStateName(ctx context.Context, query string) ([]City, error)
	GetCity(ctx context.Context, id uint) (*City, error)
	CreateCity(ctx context.Context, city *City) error
	UpdateCity(ctx context.Context, id uint, name string, stateID uint, st status.Status) error
	SoftDeleteCity(ctx context.Context, id uint) error
	ActiveCitiesByState(ctx context.Context, stateID uint) ([]City, error)
	CountCities(ctx context.Context) (int64, error)
}
