package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type CollaborationRepository interface {
	Create(ctx context.Context, collaboration *entity.Collaboration) error
	GetByID(ctx context.Context, id string) (*entity.Collaboration, error)
	Get(ctx context.Context, teamVideoID, languageCode string) (*entity.Collaboration, error)
	GetListByTeamVideoID(ctx context.Context, teamVideoID string) ([]entity.Collaboration, error)
	UpdateState(ctx context.Context, id string, state entity.CollaborationState, activity time.Time) error
	SetTeam(ctx context.Context, id string, teamID, projectID sql.NullString) error
	DeleteByID(ctx context.Context, id string) error

	GetJoinedByUserID(ctx context.Context, userID string, teamID string) ([]entity.Collaboration, error)
	GetOpenByTeam(ctx context.Context, filter OpenCollaborationFilter) ([]entity.Collaboration, error)
	GetUnclaimedByTeamVideoIDs(ctx context.Context, teamVideoIDs, languages []string, limit int) ([]entity.Collaboration, error)
	CountOpenByUserID(ctx context.Context, userID string, teamID string) (int64, error)
}

// OpenCollaborationFilter selects joinable collaborations for a team's
// dashboard. Languages narrows by language when non-empty, ExcludeUserID
// keeps out units the user already collaborates on.
type OpenCollaborationFilter struct {
	TeamID        string
	States        []entity.CollaborationState
	Languages     []string
	ExcludeUserID string
	Limit         int
}

type collaborationRepository struct{}

func NewCollaborationRepository() *collaborationRepository {
	return &collaborationRepository{}
}

func (r *collaborationRepository) Create(ctx context.Context, collaboration *entity.Collaboration) error {
	return xcontext.DB(ctx).Create(collaboration).Error
}

func (r *collaborationRepository) GetByID(ctx context.Context, id string) (*entity.Collaboration, error) {
	var result entity.Collaboration
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *collaborationRepository) Get(ctx context.Context, teamVideoID, languageCode string) (*entity.Collaboration, error) {
	var result entity.Collaboration
	err := xcontext.DB(ctx).
		Take(&result, "team_video_id=? AND language_code=?", teamVideoID, languageCode).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *collaborationRepository) GetListByTeamVideoID(ctx context.Context, teamVideoID string) ([]entity.Collaboration, error) {
	var result []entity.Collaboration
	err := xcontext.DB(ctx).Find(&result, "team_video_id=?", teamVideoID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *collaborationRepository) UpdateState(
	ctx context.Context, id string, state entity.CollaborationState, activity time.Time,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Collaboration{}).
		Where("id=?", id).
		Updates(map[string]any{
			"state":              state,
			"last_activity_date": activity,
		}).Error
}

func (r *collaborationRepository) SetTeam(
	ctx context.Context, id string, teamID, projectID sql.NullString,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Collaboration{}).
		Where("id=?", id).
		Updates(map[string]any{
			"team_id":    teamID,
			"project_id": projectID,
		}).Error
}

func (r *collaborationRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Collaboration{}, "id=?", id).Error
}

// GetJoinedByUserID returns the open collaborations the user currently works
// on, most recently active first.
func (r *collaborationRepository) GetJoinedByUserID(
	ctx context.Context, userID string, teamID string,
) ([]entity.Collaboration, error) {
	tx := xcontext.DB(ctx).
		Joins("JOIN collaborators ON collaborators.collaboration_id = collaborations.id").
		Where("collaborators.user_id=?", userID).
		Where("collaborators.deleted_at IS NULL").
		Where("collaborations.state != ?", entity.CollabComplete)

	if teamID != "" {
		tx = tx.Where("collaborations.team_id=?", teamID)
	}

	var result []entity.Collaboration
	err := tx.Order("collaborations.last_activity_date DESC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *collaborationRepository) GetOpenByTeam(
	ctx context.Context, filter OpenCollaborationFilter,
) ([]entity.Collaboration, error) {
	tx := xcontext.DB(ctx).
		Where("team_id=?", filter.TeamID).
		Where("state IN (?)", filter.States)

	if len(filter.Languages) > 0 {
		tx = tx.Where("language_code IN (?)", filter.Languages)
	}

	if filter.ExcludeUserID != "" {
		tx = tx.Where(
			"id NOT IN (?)",
			xcontext.DB(ctx).
				Model(&entity.Collaborator{}).
				Select("collaboration_id").
				Where("user_id=?", filter.ExcludeUserID),
		)
	}

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var result []entity.Collaboration
	err := tx.Order("last_activity_date DESC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CountOpenByUserID counts the user's unfinished collaborations in a team,
// used to enforce the team's open task limit.
// GetUnclaimedByTeamVideoIDs lists needs_subtitler units nobody joined yet.
// Such units carry no team until the first collaborator claims them.
func (r *collaborationRepository) GetUnclaimedByTeamVideoIDs(
	ctx context.Context, teamVideoIDs, languages []string, limit int,
) ([]entity.Collaboration, error) {
	tx := xcontext.DB(ctx).
		Where("team_id IS NULL").
		Where("state=?", entity.CollabNeedsSubtitler).
		Where("team_video_id IN (?)", teamVideoIDs)

	if len(languages) > 0 {
		tx = tx.Where("language_code IN (?)", languages)
	}

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var result []entity.Collaboration
	err := tx.Order("last_activity_date DESC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *collaborationRepository) CountOpenByUserID(
	ctx context.Context, userID string, teamID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Collaboration{}).
		Joins("JOIN collaborators ON collaborators.collaboration_id = collaborations.id").
		Where("collaborators.user_id=?", userID).
		Where("collaborators.deleted_at IS NULL").
		Where("collaborators.complete=?", false).
		Where("collaborations.team_id=?", teamID).
		Where("collaborations.state != ?", entity.CollabComplete).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
