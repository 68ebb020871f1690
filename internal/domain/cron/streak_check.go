package cron

import (
	"context"
	"time"

	"github.com/shuuuu87/DarkFocus/config"
	"github.com/shuuuu87/DarkFocus/internal/domain/streak"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

// StreakCheckCronJob expires the streaks of absent users. Without it a
// broken streak would survive until its owner's next completion.
type StreakCheckCronJob struct {
	cfg      config.CronConfigs
	userRepo repository.UserRepository
}

func NewStreakCheckCronJob(
	cfg config.CronConfigs,
	userRepo repository.UserRepository,
) *StreakCheckCronJob {
	return &StreakCheckCronJob{cfg: cfg, userRepo: userRepo}
}

func (job *StreakCheckCronJob) Do(ctx context.Context) {
	if inQuietWindow(time.Now(), job.cfg.QuietStartHour, job.cfg.QuietEndHour) {
		return
	}

	users, err := job.userRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return
	}

	for i := range users {
		user := &users[i]
		if !streak.CheckAndExpire(user) {
			continue
		}

		err := job.userRepo.UpdateStreak(ctx, user.ID,
			user.CurrentStreak, user.MaxStreak, user.GraceDaysUsed, user.LastStudyDate)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot expire streak of user %s: %v", user.ID, err)
			continue
		}

		xcontext.Logger(ctx).Infof("Expired streak of user %s", user.ID)
	}
}

func (job *StreakCheckCronJob) RunNow() bool {
	return true
}

func (job *StreakCheckCronJob) Next() time.Time {
	return dateutil.Next(job.cfg.Interval())
}
