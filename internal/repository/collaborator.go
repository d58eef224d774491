package repository

import (
	"context"
	"database/sql"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type CollaboratorRepository interface {
	Create(ctx context.Context, collaborator *entity.Collaborator) error
	Get(ctx context.Context, collaborationID, userID string) (*entity.Collaborator, error)
	GetListByCollaborationID(ctx context.Context, collaborationID string) ([]entity.Collaborator, error)
	SetEndorsement(ctx context.Context, id string, date sql.NullTime, complete bool) error
	MarkAllComplete(ctx context.Context, collaborationID string) error
	Delete(ctx context.Context, id string) error
}

type collaboratorRepository struct{}

func NewCollaboratorRepository() *collaboratorRepository {
	return &collaboratorRepository{}
}

func (r *collaboratorRepository) Create(ctx context.Context, collaborator *entity.Collaborator) error {
	return xcontext.DB(ctx).Create(collaborator).Error
}

func (r *collaboratorRepository) Get(ctx context.Context, collaborationID, userID string) (*entity.Collaborator, error) {
	var result entity.Collaborator
	err := xcontext.DB(ctx).
		Take(&result, "collaboration_id=? AND user_id=?", collaborationID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *collaboratorRepository) GetListByCollaborationID(ctx context.Context, collaborationID string) ([]entity.Collaborator, error) {
	var result []entity.Collaborator
	err := xcontext.DB(ctx).
		Order("start_date ASC").
		Find(&result, "collaboration_id=?", collaborationID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *collaboratorRepository) SetEndorsement(
	ctx context.Context, id string, date sql.NullTime, complete bool,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Collaborator{}).
		Where("id=?", id).
		Updates(map[string]any{
			"endorsement_date": date,
			"complete":         complete,
		}).Error
}

// MarkAllComplete flags every collaborator of a completed collaboration.
func (r *collaboratorRepository) MarkAllComplete(ctx context.Context, collaborationID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Collaborator{}).
		Where("collaboration_id=?", collaborationID).
		Update("complete", true).Error
}

// Delete removes the row for good. A soft-deleted row would still occupy
// the unique (collaboration, user) index and block rejoining.
func (r *collaboratorRepository) Delete(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Unscoped().Delete(&entity.Collaborator{}, "id=?", id).Error
}
