package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type CollaborationNoteRepository interface {
	Create(ctx context.Context, note *entity.CollaborationNote) error
	GetListByCollaborationID(ctx context.Context, collaborationID string) ([]entity.CollaborationNote, error)
}

type collaborationNoteRepository struct{}

func NewCollaborationNoteRepository() *collaborationNoteRepository {
	return &collaborationNoteRepository{}
}

func (r *collaborationNoteRepository) Create(ctx context.Context, note *entity.CollaborationNote) error {
	return xcontext.DB(ctx).Create(note).Error
}

func (r *collaborationNoteRepository) GetListByCollaborationID(
	ctx context.Context, collaborationID string,
) ([]entity.CollaborationNote, error) {
	var result []entity.CollaborationNote
	err := xcontext.DB(ctx).
		Order("created_at ASC").
		Find(&result, "collaboration_id=?", collaborationID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
