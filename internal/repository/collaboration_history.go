package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type CollaborationHistoryRepository interface {
	Create(ctx context.Context, history *entity.CollaborationHistory) error
	GetListByCollaborationID(ctx context.Context, collaborationID string) ([]entity.CollaborationHistory, error)
}

type collaborationHistoryRepository struct{}

func NewCollaborationHistoryRepository() *collaborationHistoryRepository {
	return &collaborationHistoryRepository{}
}

func (r *collaborationHistoryRepository) Create(ctx context.Context, history *entity.CollaborationHistory) error {
	return xcontext.DB(ctx).Create(history).Error
}

func (r *collaborationHistoryRepository) GetListByCollaborationID(
	ctx context.Context, collaborationID string,
) ([]entity.CollaborationHistory, error) {
	var result []entity.CollaborationHistory
	err := xcontext.DB(ctx).
		Order("created_at ASC").
		Find(&result, "collaboration_id=?", collaborationID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
