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

// ExpiredChallengeCronJob settles active challenges whose scoring window
// has closed.
type ExpiredChallengeCronJob struct {
	cfg             config.CronConfigs
	challengeRepo   repository.ChallengeRepository
	challengeDomain domain.ChallengeDomain
}

func NewExpiredChallengeCronJob(
	cfg config.CronConfigs,
	challengeRepo repository.ChallengeRepository,
	challengeDomain domain.ChallengeDomain,
) *ExpiredChallengeCronJob {
	return &ExpiredChallengeCronJob{
		cfg:             cfg,
		challengeRepo:   challengeRepo,
		challengeDomain: challengeDomain,
	}
}

func (job *ExpiredChallengeCronJob) Do(ctx context.Context) {
	if inQuietWindow(time.Now(), job.cfg.QuietStartHour, job.cfg.QuietEndHour) {
		return
	}

	challenges, err := job.challengeRepo.GetExpired(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get expired challenges: %v", err)
		return
	}

	if len(challenges) > 0 {
		xcontext.Logger(ctx).Infof("Found %d expired challenges", len(challenges))
	}

	for i := range challenges {
		if err := job.challengeDomain.Resolve(ctx, &challenges[i]); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot resolve challenge %s: %v", challenges[i].ID, err)
			continue
		}
	}
}

func (job *ExpiredChallengeCronJob) RunNow() bool {
	return true
}

func (job *ExpiredChallengeCronJob) Next() time.Time {
	return dateutil.Next(job.cfg.Interval())
}
