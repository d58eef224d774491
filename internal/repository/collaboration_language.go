package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type CollaborationLanguageRepository interface {
	Create(ctx context.Context, language *entity.CollaborationLanguage) error
	Delete(ctx context.Context, teamID, languageCode string) error
	GetCodesByTeamID(ctx context.Context, teamID string) ([]string, error)
}

type collaborationLanguageRepository struct{}

func NewCollaborationLanguageRepository() *collaborationLanguageRepository {
	return &collaborationLanguageRepository{}
}

func (r *collaborationLanguageRepository) Create(ctx context.Context, language *entity.CollaborationLanguage) error {
	return xcontext.DB(ctx).Create(language).Error
}

func (r *collaborationLanguageRepository) Delete(ctx context.Context, teamID, languageCode string) error {
	return xcontext.DB(ctx).
		Delete(&entity.CollaborationLanguage{}, "team_id=? AND language_code=?", teamID, languageCode).Error
}

func (r *collaborationLanguageRepository) GetCodesByTeamID(ctx context.Context, teamID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.CollaborationLanguage{}).
		Where("team_id=?", teamID).
		Pluck("language_code", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
