package cron

import (
	"context"
	"time"

	"github.com/shuuuu87/DarkFocus/config"
	"github.com/shuuuu87/DarkFocus/internal/domain"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

// ExpiredTimerCronJob finishes countdowns whose owners never came back for
// them. It reuses the task domain's completion path, so an interactive
// request racing this sweep settles on the same guard.
type ExpiredTimerCronJob struct {
	cfg        config.CronConfigs
	taskRepo   repository.TaskRepository
	taskDomain domain.TaskDomain
}

func NewExpiredTimerCronJob(
	cfg config.CronConfigs,
	taskRepo repository.TaskRepository,
	taskDomain domain.TaskDomain,
) *ExpiredTimerCronJob {
	return &ExpiredTimerCronJob{
		cfg:        cfg,
		taskRepo:   taskRepo,
		taskDomain: taskDomain,
	}
}

func (job *ExpiredTimerCronJob) Do(ctx context.Context) {
	if inQuietWindow(time.Now(), job.cfg.QuietStartHour, job.cfg.QuietEndHour) {
		return
	}

	tasks, err := job.taskRepo.GetExpired(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired tasks: %v", err)
		return
	}

	if len(tasks) > 0 {
		xcontext.Logger(ctx).Infof("Found %d expired timers", len(tasks))
	}

	for i := range tasks {
		if _, err := job.taskDomain.CompleteTask(ctx, &tasks[i]); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot auto-complete task %s: %v", tasks[i].ID, err)
			continue
		}
	}
}

func (job *ExpiredTimerCronJob) RunNow() bool {
	return true
}

func (job *ExpiredTimerCronJob) Next() time.Time {
	return dateutil.Next(job.cfg.Interval())
}
