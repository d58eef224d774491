package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	GetOpenByTeamVideo(ctx context.Context, teamVideoID string) ([]entity.Task, error)
	GetByTeamVideo(ctx context.Context, teamVideoID string) ([]entity.Task, error)
	GetOpenByTeamVideoLanguage(ctx context.Context, teamVideoID, languageCode string) ([]entity.Task, error)
	GetOpenByTeamID(ctx context.Context, teamID string, taskType entity.TaskType) ([]entity.Task, error)
	GetLastCompleted(ctx context.Context, teamVideoID string, taskType entity.TaskType) (*entity.Task, error)
	CountOpenByAssignee(ctx context.Context, teamID, userID string) (int64, error)
	GetExpired(ctx context.Context, now time.Time) ([]entity.Task, error)
	SetAssignee(ctx context.Context, id string, assignee sql.NullString, expiration sql.NullTime) error
	Complete(ctx context.Context, id string, task *entity.Task) error
	MarkDeleted(ctx context.Context, id string) error
}

type taskRepository struct{}

func NewTaskRepository() *taskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return xcontext.DB(ctx).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	var result entity.Task
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *taskRepository) GetOpenByTeamVideo(ctx context.Context, teamVideoID string) ([]entity.Task, error) {
	var result []entity.Task
	err := xcontext.DB(ctx).
		Where("team_video_id=?", teamVideoID).
		Where("deleted=? AND completed_date IS NULL", false).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetByTeamVideo returns every not-deleted task of a video, completed ones
// included.
func (r *taskRepository) GetByTeamVideo(ctx context.Context, teamVideoID string) ([]entity.Task, error) {
	var result []entity.Task
	err := xcontext.DB(ctx).
		Where("team_video_id=?", teamVideoID).
		Where("deleted=?", false).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) GetOpenByTeamVideoLanguage(
	ctx context.Context, teamVideoID, languageCode string,
) ([]entity.Task, error) {
	var result []entity.Task
	err := xcontext.DB(ctx).
		Where("team_video_id=? AND language_code=?", teamVideoID, languageCode).
		Where("deleted=? AND completed_date IS NULL", false).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) GetOpenByTeamID(
	ctx context.Context, teamID string, taskType entity.TaskType,
) ([]entity.Task, error) {
	tx := xcontext.DB(ctx).
		Where("team_id=?", teamID).
		Where("deleted=? AND completed_date IS NULL", false)

	if taskType != "" {
		tx = tx.Where("type=?", taskType)
	}

	var result []entity.Task
	err := tx.Order("priority DESC, created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetLastCompleted returns the most recently completed task of the given
// type on a video, used to route rejected work back to its author.
func (r *taskRepository) GetLastCompleted(
	ctx context.Context, teamVideoID string, taskType entity.TaskType,
) (*entity.Task, error) {
	var result entity.Task
	err := xcontext.DB(ctx).
		Where("team_video_id=? AND type=?", teamVideoID, taskType).
		Where("deleted=? AND completed_date IS NOT NULL", false).
		Order("completed_date DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *taskRepository) CountOpenByAssignee(ctx context.Context, teamID, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("team_id=? AND assignee_user_id=?", teamID, userID).
		Where("deleted=? AND completed_date IS NULL", false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetExpired returns assigned open tasks whose expiration date has passed.
func (r *taskRepository) GetExpired(ctx context.Context, now time.Time) ([]entity.Task, error) {
	var result []entity.Task
	err := xcontext.DB(ctx).
		Where("assignee_user_id IS NOT NULL").
		Where("expiration_date IS NOT NULL AND expiration_date < ?", now).
		Where("deleted=? AND completed_date IS NULL", false).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *taskRepository) SetAssignee(
	ctx context.Context, id string, assignee sql.NullString, expiration sql.NullTime,
) error {
	return xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("id=?", id).
		Updates(map[string]any{
			"assignee_user_id": assignee,
			"expiration_date":  expiration,
		}).Error
}

func (r *taskRepository) Complete(ctx context.Context, id string, task *entity.Task) error {
	return xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("id=?", id).
		Updates(map[string]any{
			"completed_date":      task.CompletedDate,
			"approved":            task.Approved,
			"subtitle_version_id": task.SubtitleVersionID,
		}).Error
}

func (r *taskRepository) MarkDeleted(ctx context.Context, id string) error {
	return xcontext.DB(ctx).
		Model(&entity.Task{}).
		Where("id=?", id).
		Update("deleted", true).Error
}
