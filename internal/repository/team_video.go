package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type TeamVideoRepository interface {
	Create(ctx context.Context, video *entity.TeamVideo) error
	GetByID(ctx context.Context, id string) (*entity.TeamVideo, error)
	GetByVideoID(ctx context.Context, videoID string) (*entity.TeamVideo, error)
	GetListByTeamID(ctx context.Context, teamID string) ([]entity.TeamVideo, error)
	GetListByProjectIDs(ctx context.Context, projectIDs []string) ([]entity.TeamVideo, error)
	GetAll(ctx context.Context) ([]entity.TeamVideo, error)
	UpdateByID(ctx context.Context, id string, video *entity.TeamVideo) error
	DeleteByID(ctx context.Context, id string) error
}

type teamVideoRepository struct{}

func NewTeamVideoRepository() *teamVideoRepository {
	return &teamVideoRepository{}
}

func (r *teamVideoRepository) Create(ctx context.Context, video *entity.TeamVideo) error {
	return xcontext.DB(ctx).Create(video).Error
}

func (r *teamVideoRepository) GetByID(ctx context.Context, id string) (*entity.TeamVideo, error) {
	var result entity.TeamVideo
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *teamVideoRepository) GetByVideoID(ctx context.Context, videoID string) (*entity.TeamVideo, error) {
	var result entity.TeamVideo
	if err := xcontext.DB(ctx).Take(&result, "video_id=?", videoID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *teamVideoRepository) GetListByTeamID(ctx context.Context, teamID string) ([]entity.TeamVideo, error) {
	var result []entity.TeamVideo
	if err := xcontext.DB(ctx).Find(&result, "team_id=?", teamID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *teamVideoRepository) GetListByProjectIDs(ctx context.Context, projectIDs []string) ([]entity.TeamVideo, error) {
	var result []entity.TeamVideo
	if err := xcontext.DB(ctx).Find(&result, "project_id IN (?)", projectIDs).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *teamVideoRepository) GetAll(ctx context.Context) ([]entity.TeamVideo, error) {
	var result []entity.TeamVideo
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *teamVideoRepository) UpdateByID(ctx context.Context, id string, video *entity.TeamVideo) error {
	return xcontext.DB(ctx).
		Model(&entity.TeamVideo{}).
		Where("id=?", id).
		Updates(video).Error
}

func (r *teamVideoRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.TeamVideo{}, "id=?", id).Error
}
