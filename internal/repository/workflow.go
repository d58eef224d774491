package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type WorkflowRepository interface {
	GetTaskWorkflow(ctx context.Context, teamID string) (*entity.TaskWorkflow, error)
	UpdateTaskWorkflow(ctx context.Context, teamID string, workflow *entity.TaskWorkflow) error
	GetCollaborationWorkflow(ctx context.Context, teamID string) (*entity.CollaborationWorkflow, error)
	UpdateCollaborationWorkflow(ctx context.Context, teamID string, workflow *entity.CollaborationWorkflow) error
}

type workflowRepository struct{}

func NewWorkflowRepository() *workflowRepository {
	return &workflowRepository{}
}

// GetTaskWorkflow returns the team's task workflow settings, lazily creating
// a default record on first access.
func (r *workflowRepository) GetTaskWorkflow(ctx context.Context, teamID string) (*entity.TaskWorkflow, error) {
	var result entity.TaskWorkflow
	err := xcontext.DB(ctx).
		Where(entity.TaskWorkflow{TeamID: teamID}).
		Attrs(entity.TaskWorkflow{
			Base:           entity.Base{ID: uuid.NewString()},
			ReviewAllowed:  entity.ReviewNone,
			ApproveAllowed: entity.ApproveNone,
		}).
		FirstOrCreate(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *workflowRepository) UpdateTaskWorkflow(
	ctx context.Context, teamID string, workflow *entity.TaskWorkflow,
) error {
	return xcontext.DB(ctx).
		Model(&entity.TaskWorkflow{}).
		Where("team_id=?", teamID).
		Updates(map[string]any{
			"autocreate_subtitle":  workflow.AutocreateSubtitle,
			"autocreate_translate": workflow.AutocreateTranslate,
			"review_allowed":       workflow.ReviewAllowed,
			"approve_allowed":      workflow.ApproveAllowed,
		}).Error
}

// GetCollaborationWorkflow returns the team's collaboration workflow
// settings, lazily creating a default record on first access.
func (r *workflowRepository) GetCollaborationWorkflow(ctx context.Context, teamID string) (*entity.CollaborationWorkflow, error) {
	var result entity.CollaborationWorkflow
	err := xcontext.DB(ctx).
		Where(entity.CollaborationWorkflow{TeamID: teamID}).
		Attrs(entity.CollaborationWorkflow{
			Base:             entity.Base{ID: uuid.NewString()},
			CompletionPolicy: entity.CompletionAnyone,
			Only1Subtitler:   true,
			Only1Reviewer:    true,
			Only1Approver:    true,
		}).
		FirstOrCreate(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *workflowRepository) UpdateCollaborationWorkflow(
	ctx context.Context, teamID string, workflow *entity.CollaborationWorkflow,
) error {
	return xcontext.DB(ctx).
		Model(&entity.CollaborationWorkflow{}).
		Where("team_id=?", teamID).
		Updates(map[string]any{
			"completion_policy":           workflow.CompletionPolicy,
			"on_complete_publish_latest":  workflow.OnCompletePublishLatest,
			"on_complete_notify_managers": workflow.OnCompleteNotifyManagers,
			"only1_subtitler":             workflow.Only1Subtitler,
			"only1_reviewer":              workflow.Only1Reviewer,
			"only1_approver":              workflow.Only1Approver,
			"limit_open_tasks":            workflow.LimitOpenTasks,
		}).Error
}
