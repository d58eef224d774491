package repository

import (
	"context"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	GetListByTeamID(ctx context.Context, teamID string) ([]entity.Project, error)
	DeleteByID(ctx context.Context, id string) error

	ShareWithTeam(ctx context.Context, projectID, teamID string) error
	UnshareWithTeam(ctx context.Context, projectID, teamID string) error
	GetSharedProjectIDs(ctx context.Context, teamID string) ([]string, error)
	GetSharedTeamIDs(ctx context.Context, projectID string) ([]string, error)
}

type projectRepository struct{}

func NewProjectRepository() *projectRepository {
	return &projectRepository{}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return xcontext.DB(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	var result entity.Project
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *projectRepository) GetListByTeamID(ctx context.Context, teamID string) ([]entity.Project, error) {
	var result []entity.Project
	if err := xcontext.DB(ctx).Find(&result, "team_id=?", teamID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *projectRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Project{}, "id=?", id).Error
}

func (r *projectRepository) ShareWithTeam(ctx context.Context, projectID, teamID string) error {
	return xcontext.DB(ctx).Create(&entity.ProjectSharedTeam{
		ProjectID: projectID,
		TeamID:    teamID,
	}).Error
}

func (r *projectRepository) UnshareWithTeam(ctx context.Context, projectID, teamID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.ProjectSharedTeam{}, "project_id=? AND team_id=?", projectID, teamID).Error
}

// GetSharedProjectIDs returns the ids of projects other teams shared with the
// given team.
func (r *projectRepository) GetSharedProjectIDs(ctx context.Context, teamID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.ProjectSharedTeam{}).
		Where("team_id=?", teamID).
		Pluck("project_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetSharedTeamIDs returns the ids of teams a project was shared with.
func (r *projectRepository) GetSharedTeamIDs(ctx context.Context, projectID string) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.ProjectSharedTeam{}).
		Where("project_id=?", projectID).
		Pluck("team_id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
