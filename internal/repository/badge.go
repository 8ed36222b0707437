package repository

import (
	"context"

	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

type BadgeRepository interface {
	Create(ctx context.Context, data *entity.Badge) error
	GetByID(ctx context.Context, id string) (*entity.Badge, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.Badge, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*entity.Badge, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.Badge, error)
	CountByEventID(ctx context.Context, eventID string) (int64, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type badgeRepository struct{}

func NewBadgeRepository() *badgeRepository {
	return &badgeRepository{}
}

func (r *badgeRepository) Create(ctx context.Context, data *entity.Badge) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *badgeRepository) GetByID(ctx context.Context, id string) (*entity.Badge, error) {
	var record entity.Badge
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *badgeRepository) GetByUserID(ctx context.Context, userID string) ([]entity.Badge, error) {
	records := []entity.Badge{}
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("claimed_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *badgeRepository) GetByUserAndEvent(
	ctx context.Context, userID, eventID string,
) (*entity.Badge, error) {
	var record entity.Badge
	err := xcontext.DB(ctx).
		Where("user_id=? AND event_id=?", userID, eventID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *badgeRepository) GetByEventID(ctx context.Context, eventID string) ([]entity.Badge, error) {
	records := []entity.Badge{}
	err := xcontext.DB(ctx).
		Where("event_id=?", eventID).
		Order("claimed_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *badgeRepository) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Badge{}).
		Where("event_id=?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *badgeRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Badge{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
