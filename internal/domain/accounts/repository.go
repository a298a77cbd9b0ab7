package accounts

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUser(ctx context.Context, id uint) (*User, error)
	UpdatePasswordHash(ctx context.Context, userID uint, hash string) error

	CreateReset(ctx context.Context, reset *PasswordReset) error
	GetReset(ctx context.Context, token string) (*PasswordReset, error)
	DeleteReset(ctx context.Context, id uint) error
}
