package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type TeamLanguagePreferenceRepository interface {
	Create(ctx context.Context, preference *entity.TeamLanguagePreference) error
	Delete(ctx context.Context, teamID, languageCode string) error
	GetCodesByTeamID(ctx context.Context, teamID string) ([]string, error)
}

type teamLanguagePreferenceRepository struct{}

func NewTeamLanguagePreferenceRepository() *teamLanguagePreferenceRepository {
	return &teamLanguagePreferenceRepository{}
}

func (r *teamLanguagePreferenceRepository) Create(ctx context.Context, preference *entity.TeamLanguagePreference) error {
	return xcontext.DB(ctx).Create(preference).Error
}

func (r *teamLanguagePreferenceRepository) Delete(ctx context.Context, teamID, languageCode string) error {
	return xcontext.DB(ctx).
		Delete(&entity.TeamLanguagePreference{}, "team_id=? AND language_code=?", teamID, languageCode).Error
}

func (r *teamLanguagePreferenceRepository) GetCodesByTeamID(ctx context.Context, teamID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.TeamLanguagePreference{}).
		Where("team_id=?", teamID).
		Pluck("language_code", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
