package family

import (
	"context"
	"errors"
	"strings"

	familydomain "family-records-go/internal/domain/family"
	"family-records-go/internal/domain/status"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(familydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func likePattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}

// headQuery is the base listing query: non-deleted heads with their state and
// city preloaded, newest first.
func (r *PostgresRepository) headQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("State").
		Preload("City").
		Where("family_heads.status <> ?", status.Deleted).
		Order("family_heads.created_at desc, family_heads.id desc")
}

// withCounts attaches the non-deleted member count to each head.
func (r *PostgresRepository) withCounts(ctx context.Context, heads []familydomain.FamilyHead) ([]familydomain.HeadWithCount, error) {
	result := make([]familydomain.HeadWithCount, 0, len(heads))
	if len(heads) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(heads))
	for _, h := range heads {
		ids = append(ids, h.ID)
	}

	type countRow struct {
		HeadID uint  `gorm:"column:head_id"`
		Total  int64 `gorm:"column:total"`
	}
	var rows []countRow
	if err := r.db.WithContext(ctx).Model(&familydomain.FamilyMember{}).
		Select("head_id, count(*) as total").
		Where("head_id IN ? AND status <> ?", ids, status.Deleted).
		Group("head_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.HeadID] = row.Total
	}
	for _, h := range heads {
		result = append(result, familydomain.HeadWithCount{FamilyHead: h, MemberCount: counts[h.ID]})
	}
	return result, nil
}

func (r *PostgresRepository) ListHeads(ctx context.Context) ([]familydomain.HeadWithCount, error) {
	var heads []familydomain.FamilyHead
	if err := r.headQuery(ctx).Find(&heads).Error; err != nil {
		return nil, err
	}
	return r.withCounts(ctx, heads)
}

func (r *PostgresRepository) SearchHeadsByName(ctx context.Context, query string) ([]familydomain.HeadWithCount, error) {
	var heads []familydomain.FamilyHead
	if err := r.headQuery(ctx).
		Where("LOWER(family_heads.name) LIKE ?", likePattern(query)).
		Find(&heads).Error; err != nil {
		return nil, err
	}
	return r.withCounts(ctx, heads)
}

func (r *PostgresRepository) SearchHeadsByMobile(ctx context.Context, query string) ([]familydomain.HeadWithCount, error) {
	var heads []familydomain.FamilyHead
	if err := r.headQuery(ctx).
		Where("family_heads.mobile_no LIKE ?", "%"+strings.TrimSpace(query)+"%").
		Find(&heads).Error; err != nil {
		return nil, err
	}
	return r.withCounts(ctx, heads)
}

func (r *PostgresRepository) SearchHeadsByStateName(ctx context.Context, query string) ([]familydomain.HeadWithCount, error) {
	var heads []familydomain.FamilyHead
	if err := r.headQuery(ctx).
		Joins("join states on states.id = family_heads.state_id").
		Where("LOWER(states.name) LIKE ?", likePattern(query)).
		Find(&heads).Error; err != nil {
		return nil, err
	}
	return r.withCounts(ctx, heads)
}

func (r *PostgresRepository) SearchHeadsByCityName(ctx context.Context, query string) ([]familydomain.HeadWithCount, error) {
	var heads []familydomain.FamilyHead
	if err := r.headQuery(ctx).
		Joins("join cities on cities.id = family_heads.city_id").
		Where("LOWER(cities.name) LIKE ?", likePattern(query)).
		Find(&heads).Error; err != nil {
		return nil, err
	}
	return r.withCounts(ctx, heads)
}

func (r *PostgresRepository) GetHead(ctx context.Context, id uint) (*familydomain.FamilyHead, error) {
	var head familydomain.FamilyHead
	err := r.db.WithContext(ctx).
		Preload("State").
		Preload("City").
		Where("id = ? AND status <> ?", id, status.Deleted).
		First(&head).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, familydomain.ErrHeadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &head, nil
}

func (r *PostgresRepository) CreateHead(ctx context.Context, head *familydomain.FamilyHead) error {
	return r.db.WithContext(ctx).Omit("State", "City").Create(head).Error
}

func (r *PostgresRepository) UpdateHead(ctx context.Context, head *familydomain.FamilyHead) error {
	return r.db.WithContext(ctx).Omit("State", "City").Save(head).Error
}

func (r *PostgresRepository) SoftDeleteHead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&familydomain.FamilyHead{}).
		Where("id = ? AND status <> ?", id, status.Deleted).
		Update("status", status.Deleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrHeadNotFound
	}
	return nil
}

func (r *PostgresRepository) CountHeads(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&familydomain.FamilyHead{}).
		Where("status <> ?", status.Deleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountHeadsByStatus(ctx context.Context, st status.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&familydomain.FamilyHead{}).
		Where("status = ?", st).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) TopStatesByHeadCount(ctx context.Context, limit int) ([]familydomain.StateHeadCount, error) {
	type chartRow struct {
		StateName string `gorm:"column:state_name"`
		Total     int64  `gorm:"column:total"`
	}

	var rows []chartRow
	if err := r.db.WithContext(ctx).
		Table("family_heads").
		Select("states.name as state_name, count(*) as total").
		Joins("join states on states.id = family_heads.state_id").
		Where("family_heads.status <> ?", status.Deleted).
		Group("states.id, states.name").
		Order("total desc, states.id asc").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]familydomain.StateHeadCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, familydomain.StateHeadCount{StateName: row.StateName, Total: row.Total})
	}
	return result, nil
}

func (r *PostgresRepository) ListMembersByHead(ctx context.Context, headID uint) ([]familydomain.FamilyMember, error) {
	var members []familydomain.FamilyMember
	if err := r.db.WithContext(ctx).
		Where("head_id = ? AND status <> ?", headID, status.Deleted).
		Order("id asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) ActiveMembersByHead(ctx context.Context, headID uint) ([]familydomain.FamilyMember, error) {
	var members []familydomain.FamilyMember
	if err := r.db.WithContext(ctx).
		Where("head_id = ? AND status = ?", headID, status.Active).
		Order("id asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) GetMember(ctx context.Context, id uint) (*familydomain.FamilyMember, error) {
	var member familydomain.FamilyMember
	err := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, status.Deleted).
		First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, familydomain.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) CreateMember(ctx context.Context, member *familydomain.FamilyMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) UpdateMember(ctx context.Context, member *familydomain.FamilyMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *PostgresRepository) SoftDeleteMember(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&familydomain.FamilyMember{}).
		Where("id = ? AND status <> ?", id, status.Deleted).
		Update("status", status.Deleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) SoftDeleteMembersByHead(ctx context.Context, headID uint) error {
	return r.db.WithContext(ctx).Model(&familydomain.FamilyMember{}).
		Where("head_id = ? AND status <> ?", headID, status.Deleted).
		Update("status", status.Deleted).Error
}

func (r *PostgresRepository) CountMembers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&familydomain.FamilyMember{}).
		Where("status <> ?", status.Deleted).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListHobbiesByHead(ctx context.Context, headID uint) ([]familydomain.Hobby, error) {
	var hobbies []familydomain.Hobby
	if err := r.db.WithContext(ctx).
		Where("head_id = ? AND status <> ?", headID, status.Deleted).
		Order("id asc").
		Find(&hobbies).Error; err != nil {
		return nil, err
	}
	return hobbies, nil
}

func (r *PostgresRepository) ActiveHobbiesByHead(ctx context.Context, headID uint) ([]familydomain.Hobby, error) {
	var hobbies []familydomain.Hobby
	if err := r.db.WithContext(ctx).
		Where("head_id = ? AND status = ?", headID, status.Active).
		Order("id asc").
		Find(&hobbies).Error; err != nil {
		return nil, err
	}
	return hobbies, nil
}

func (r *PostgresRepository) GetHobby(ctx context.Context, id uint) (*familydomain.Hobby, error) {
	var hobby familydomain.Hobby
	err := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, status.Deleted).
		First(&hobby).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, familydomain.ErrHobbyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &hobby, nil
}

func (r *PostgresRepository) CreateHobby(ctx context.Context, hobby *familydomain.Hobby) error {
	return r.db.WithContext(ctx).Create(hobby).Error
}

func (r *PostgresRepository) UpdateHobby(ctx context.Context, hobby *familydomain.Hobby) error {
	return r.db.WithContext(ctx).Save(hobby).Error
}

func (r *PostgresRepository) SoftDeleteHobby(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&familydomain.Hobby{}).
		Where("id = ? AND status <> ?", id, status.Deleted).
		Update("status", status.Deleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrHobbyNotFound
	}
	return nil
}

func (r *PostgresRepository) SoftDeleteHobbiesByHead(ctx context.Context, headID uint) error {
	return r.db.WithContext(ctx).Model(&familydomain.Hobby{}).
		Where("head_id = ? AND status <> ?", headID, status.Deleted).
		Update("status", status.Deleted).Error
}
