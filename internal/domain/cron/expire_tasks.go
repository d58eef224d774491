package cron

import (
	"context"
	"database/sql"
	"time"

	"github.com/ujdhesa/unisubs/internal/repository"
	"github.com/ujdhesa/unisubs/pkg/dateutil"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
)

// ExpireTasksCronJob sweeps assigned tasks past their expiration date and
// returns them to the open pool. Expiration is also applied lazily when
// tasks are listed or assigned; the sweep catches idle teams.
type ExpireTasksCronJob struct {
	taskRepo repository.TaskRepository
}

func NewExpireTasksCronJob(taskRepo repository.TaskRepository) *ExpireTasksCronJob {
	return &ExpireTasksCronJob{taskRepo: taskRepo}
}

func (job *ExpireTasksCronJob) Do(ctx context.Context) {
	tasks, err := job.taskRepo.GetExpired(ctx, xcontext.Now(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired tasks: %v", err)
		return
	}

	for _, task := range tasks {
		err := job.taskRepo.SetAssignee(ctx, task.ID, sql.NullString{}, sql.NullTime{})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot expire task %s: %v", task.ID, err)
			continue
		}
	}
}

func (job *ExpireTasksCronJob) RunNow() bool {
	return false
}

func (job *ExpireTasksCronJob) Next() time.Time {
	return dateutil.NextHour(time.Now())
}
