package location

import (
	"context"
	"errors"
	"strings"

	locationdomain "family-records-go/internal/domain/location"
	"family-records-go/internal/domain/status"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(locationdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func likePattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}

func (r *PostgresRepository) ListStates(ctx context.Context) ([]locationdomain.State, error) {
	var states []locationdomain.State
	if err := r.db.WithContext(ctx).
		Where("status <> ?", status.Deleted).
		Order("created_at desc, id desc").
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (r *PostgresRepository) SearchStatesByName(ctx context.Context, query string) ([]locationdomain.State, error) {
	var states []locationdomain.State
	if err := r.db.WithContext(ctx).
		Where("status <> ?", status.Deleted).
		Where("LOWER(name) LIKE ?", likePattern(query)).
		Order("created_at desc, id desc").
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

func (r *PostgresRepository) GetState(ctx context.Context, id uint) (*locationdomain.State, error) {
	var state locationdomain.State
	err := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, status.Deleted).
		First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, locationdomain.ErrStateNotFound
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *PostgresRepository) CreateState(ctx context.Context, state *locationdomain.State) error {
	return r.db.WithContext(ctx).Create(state).Error
}

func (r *PostgresRepository) UpdateState(ctx context.Context, id uint, name string, st status.Status) error {
	result := r.db.WithContext(ctx).Model(&locationdomain.State{}).
		Where("id = ? AND status <> ?", id, status.Deleted).
		Updates(map[string]any{"name": name, "status": st})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return locationdomain.ErrStateNotFound
	}
	return nil
}

func (r *PostgresRepository) SoftDeleteState(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&locationdomain.State{}).
		Where("id = ? AND status <> ?", id, status.Deleted).
		Update("status", status.Deleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return locationdomain.ErrStateNotFound
	}
	return nil
}

func (r *PostgresRepository) SoftDeleteCitiesByState(ctx context.Context, stateID uint) error {
	return r.db.WithContext(ctx).Model(&locationdomain.City{}).
		Where("state_id = ? AND status <> ?", stateID, status.Deleted).
		Update("status", status.Deleted).Error
}

func (r *PostgresRepository) CountStates(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&locationdomain.State{}).
		Where("status <> ?", status.Deleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountStatesByStatus(ctx context.Context, st status.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&locationdomain.State{}).
		Where("status = ?", st).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListCities(ctx context.Context) ([]locationdomain.City, error) {
	var cities []locationdomain.City
	if err := r.db.WithContext(ctx).
		Preload("State").
		Where("status <> ?", status.Deleted).
		Order("created_at desc, id desc").
		Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *PostgresRepository) SearchCitiesByName(ctx context.Context, query string) ([]locationdomain.City, error) {
	var cities []locationdomain.City
	if err := r.db.WithContext(ctx).
		Preload("State").
		Where("status <> ?", status.Deleted).
		Where("LOWER(name) LIKE ?", likePattern(query)).
		Order("created_at desc, id desc").
		Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *PostgresRepository) SearchCitiesByStateName(ctx context.Context, query string) ([]locationdomain.City, error) {
	var cities []locationdomain.City
	if err := r.db.WithContext(ctx).
		Preload("State").
		Joins("join states on states.id = cities.state_id").
		Where("cities.status <> ?", status.Deleted).
		Where("LOWER(states.name) LIKE ?", likePattern(query)).
		Order("cities.created_at desc, cities.id desc").
		Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *PostgresRepository) GetCity(ctx context.Context, id uint) (*locationdomain.City, error) {
	var city locationdomain.City
	err := r.db.WithContext(ctx).
		Preload("State").
		Where("id = ? AND status <> ?", id, status.Deleted).
		First(&city).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, locationdomain.ErrCityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *PostgresRepository) CreateCity(ctx context.Context, city *locationdomain.City) error {
	return r.db.WithContext(ctx).Omit("State").Create(city).Error
}

func (r *PostgresRepository) UpdateCity(ctx context.Context, id uint, name string, stateID uint, st status.Status) error {
	result := r.db.WithContext(ctx).Model(&locationdomain.City{}).
		Where("id = ? AND status <> ?", id, status.Deleted).
		Updates(map[string]any{"name": name, "state_id": stateID, "status": st})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return locationdomain.ErrCityNotFound
	}
	return nil
}

func (r *PostgresRepository) SoftDeleteCity(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&locationdomain.City{}).
		Where("id = ? AND status <> ?", id, status.Deleted).
		Update("status", status.Deleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return locationdomain.ErrCityNotFound
	}
	return nil
}

func (r *PostgresRepository) ActiveCitiesByState(ctx context.Context, stateID uint) ([]locationdomain.City, error) {
	var cities []locationdomain.City
	if err := r.db.WithContext(ctx).
		Where("state_id = ? AND status = ?", stateID, status.Active).
		Order("name asc").
		Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *PostgresRepository) CountCities(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&locationdomain.City{}).
		Where("status <> ?", status.Deleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
