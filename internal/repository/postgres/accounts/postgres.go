package accounts

import (
	"context"
	"errors"

	accountsdomain "family-records-go/internal/domain/accounts"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(accountsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*accountsdomain.User, error) {
	var user accountsdomain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountsdomain.ErrEmailNotRegistered
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, id uint) (*accountsdomain.User, error) {
	var user accountsdomain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountsdomain.ErrEmailNotRegistered
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, userID uint, hash string) error {
	result := r.db.WithContext(ctx).Model(&accountsdomain.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return accountsdomain.ErrEmailNotRegistered
	}
	return nil
}

func (r *PostgresRepository) CreateReset(ctx context.Context, reset *accountsdomain.PasswordReset) error {
	return r.db.WithContext(ctx).Omit("User").Create(reset).Error
}

func (r *PostgresRepository) GetReset(ctx context.Context, token string) (*accountsdomain.PasswordReset, error) {
	var reset accountsdomain.PasswordReset
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&reset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, accountsdomain.ErrResetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *PostgresRepository) DeleteReset(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&accountsdomain.PasswordReset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return accountsdomain.ErrResetNotFound
	}
	return nil
}
