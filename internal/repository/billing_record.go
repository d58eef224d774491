package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type BillingRecordRepository interface {
	Create(ctx context.Context, record *entity.BillingRecord) (created bool, err error)
	UpdateWasOriginal(ctx context.Context, videoID, languageCode string, wasOriginal bool) error
	Get(ctx context.Context, videoID, languageCode string) (*entity.BillingRecord, error)
	GetListByTeamID(ctx context.Context, teamID string) ([]entity.BillingRecord, error)
}

type billingRecordRepository struct{}

func NewBillingRecordRepository() *billingRecordRepository {
	return &billingRecordRepository{}
}

// Create inserts a billing record unless one already exists for the video
// and language pair. It reports whether a new record was written.
func (r *billingRecordRepository) Create(ctx context.Context, record *entity.BillingRecord) (bool, error) {
	result := xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}, {Name: "language_code"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// UpdateWasOriginal refreshes the original-language flag of an existing
// record without touching the recorded minutes or processed date.
func (r *billingRecordRepository) UpdateWasOriginal(
	ctx context.Context, videoID, languageCode string, wasOriginal bool,
) error {
	return xcontext.DB(ctx).
		Model(&entity.BillingRecord{}).
		Where("video_id=? AND language_code=?", videoID, languageCode).
		Update("was_original", wasOriginal).Error
}

func (r *billingRecordRepository) Get(ctx context.Context, videoID, languageCode string) (*entity.BillingRecord, error) {
	var result entity.BillingRecord
	err := xcontext.DB(ctx).
		Take(&result, "video_id=? AND language_code=?", videoID, languageCode).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *billingRecordRepository) GetListByTeamID(ctx context.Context, teamID string) ([]entity.BillingRecord, error) {
	var result []entity.BillingRecord
	err := xcontext.DB(ctx).
		Order("processed_date DESC").
		Find(&result, "team_id=?", teamID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
