package family

import (
	"context"

	"family-records-go/internal/domain/status"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListHeads(ctx context.Context) ([]HeadWithCount, error)
	SearchHeadsByName(ctx context.Context, query string) ([]HeadWithCount, error)
	SearchHeadsByMobile(ctx context.Context, query string) ([]HeadWithCount, error)
	SearchHeadsByStateName(ctx context.Context, query string) ([]HeadWithCount, error)
	SearchHeadsByCityName(ctx context.Context, query string) ([]HeadWithCount, error)
	GetHead(ctx context.Context, id uint) (*FamilyHead, error)
	CreateHead(ctx context.Context, head *FamilyHead) error
	UpdateHead(ctx context.Context, head *FamilyHead) error
	SoftDeleteHead(ctx context.Context, id uint) error
	CountHeads(ctx context.Context) (int64, error)
	CountHeadsByStatus(ctx context.Context, st status.Status) (int64, error)
	TopStatesByHeadCount(ctx context.Context, limit int) ([]StateHeadCount, error)

	ListMembersByHead(ctx context.Context, headID uint) ([]FamilyMember, error)
	ActiveMembersByHead(ctx context.Context, headID uint) ([]FamilyMember, error)
	GetMember(ctx context.Context, id uint) (*FamilyMember, error)
	CreateMember(ctx context.Context, member *FamilyMember) error
	UpdateMember(ctx context.Context, member *FamilyMember) error
	SoftDeleteMember(ctx context.Context, id uint) error
	SoftDeleteMembersByHead(ctx context.Context, headID uint) error
	CountMembers(ctx context.Context) (int64, error)

	ListHobbiesByHead(ctx context.Context, headID uint) ([]Hobby, error)
	ActiveHobbiesByHead(ctx context.Context, headID uint) ([]Hobby, error)
	GetHobby(ctx context.Context, id uint) (*Hobby, error)
	CreateHobby(ctx context.Context, hobby *Hobby) error
	UpdateHobby(ctx context.Context, hobby *Hobby) error
	SoftDeleteHobby(ctx context.Context, id uint) error
	SoftDeleteHobbiesByHead(ctx context.Context, headID uint) error
}
