package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/veleo-lab/backend/internal/entity"
	"github.com/veleo-lab/backend/pkg/xcontext"
)

type ClaimCodeRepository interface {
	Create(ctx context.Context, data *entity.ClaimCode) error
	GetByCode(ctx context.Context, code string) (*entity.ClaimCode, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.ClaimCode, error)
	ClaimIfUnused(ctx context.Context, code, userID string) (bool, error)
	CountUnusedByEventID(ctx context.Context, eventID string) (int64, error)
}

type claimCodeRepository struct{}

func NewClaimCodeRepository() *claimCodeRepository {
	return &claimCodeRepository{}
}

func (r *claimCodeRepository) Create(ctx context.Context, data *entity.ClaimCode) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *claimCodeRepository) GetByCode(ctx context.Context, code string) (*entity.ClaimCode, error) {
	var record entity.ClaimCode
	err := xcontext.DB(ctx).
		Preload("Event").
		Where("claim_codes.code=?", code).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *claimCodeRepository) GetByEventID(
	ctx context.Context, eventID string,
) ([]entity.ClaimCode, error) {
	records := []entity.ClaimCode{}
	err := xcontext.DB(ctx).
		Where("event_id=?", eventID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// ClaimIfUnused retires the code with a conditional update. It returns false
// when the code was already retired by another request. Callers run this in
// the same transaction as the badge insert so a failed insert releases the
// code again.
func (r *claimCodeRepository) ClaimIfUnused(
	ctx context.Context, code, userID string,
) (bool, error) {
	result := xcontext.DB(ctx).
		Model(&entity.ClaimCode{}).
		Where("code=? AND used=?", code, false).
		Updates(map[string]any{
			"used":    true,
			"used_by": sql.NullString{Valid: true, String: userID},
			"used_at": sql.NullTime{Valid: true, Time: time.Now()},
		})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *claimCodeRepository) CountUnusedByEventID(
	ctx context.Context, eventID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.ClaimCode{}).
		Where("event_id=? AND used=?", eventID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
