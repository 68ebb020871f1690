package cron

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shuuuu87/DarkFocus/config"
	"github.com/shuuuu87/DarkFocus/internal/domain"
	"github.com/shuuuu87/DarkFocus/internal/domain/notification"
	"github.com/shuuuu87/DarkFocus/internal/domain/statistic"
	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/shuuuu87/DarkFocus/pkg/testutil"
	"github.com/stretchr/testify/require"
)

// alwaysOpen disables the quiet window.
var alwaysOpen = config.CronConfigs{IntervalSeconds: 60}

// alwaysQuiet covers every hour of the day.
var alwaysQuiet = config.CronConfigs{IntervalSeconds: 60, QuietStartHour: 0, QuietEndHour: 24}

type cronFixture struct {
	ctx             context.Context
	taskRepo        repository.TaskRepository
	userRepo        repository.UserRepository
	challengeRepo   repository.ChallengeRepository
	taskDomain      domain.TaskDomain
	challengeDomain domain.ChallengeDomain
}

func newCronFixture(t *testing.T) *cronFixture {
	t.Helper()

	ctx := testutil.MockContext()
	testutil.InsertFixtureUsers(ctx)

	userRepo := repository.NewUserRepository()
	taskRepo := repository.NewTaskRepository()
	challengeRepo := repository.NewChallengeRepository()
	dailyStatsRepo := repository.NewDailyStatsRepository()
	leaderboard := statistic.NewLeaderboard(userRepo, testutil.NewMockRedisClient())
	notifyEngine := notification.NewEngine(notification.NewLogNotifier())

	return &cronFixture{
		ctx:           ctx,
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		challengeRepo: challengeRepo,
		taskDomain: domain.NewTaskDomain(
			taskRepo, userRepo, challengeRepo, dailyStatsRepo, leaderboard, notifyEngine),
		challengeDomain: domain.NewChallengeDomain(
			challengeRepo, userRepo, leaderboard, notifyEngine),
	}
}

func (f *cronFixture) insertOverdueTask(t *testing.T) *entity.Task {
	t.Helper()

	task := &entity.Task{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          testutil.User1.ID,
		Title:           "overdue",
		DurationMinutes: 24,
		IsActive:        true,
		StartedAt:       sql.NullTime{Valid: true, Time: time.Now().Add(-30 * time.Minute)},
		ExpectedCompletion: sql.NullTime{
			Valid: true,
			Time:  time.Now().Add(-6 * time.Minute),
		},
	}
	require.NoError(t, f.taskRepo.Create(f.ctx, task))
	return task
}

func TestExpiredTimerCronJob(t *testing.T) {
	f := newCronFixture(t)
	task := f.insertOverdueTask(t)

	NewExpiredTimerCronJob(alwaysOpen, f.taskRepo, f.taskDomain).Do(f.ctx)

	completed, err := f.taskRepo.GetOfUser(f.ctx, task.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.True(t, completed.IsCompleted)
	require.False(t, completed.IsActive)

	user, err := f.userRepo.GetByID(f.ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.InDelta(t, 2.0, user.TotalPoints, 1e-9)
}

func TestExpiredTimerCronJobSkipsQuietWindow(t *testing.T) {
	f := newCronFixture(t)
	task := f.insertOverdueTask(t)

	NewExpiredTimerCronJob(alwaysQuiet, f.taskRepo, f.taskDomain).Do(f.ctx)

	untouched, err := f.taskRepo.GetOfUser(f.ctx, task.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, untouched.IsCompleted)
	require.True(t, untouched.IsActive)
}

func TestExpiredChallengeCronJob(t *testing.T) {
	f := newCronFixture(t)

	challenge := &entity.Challenge{
		Base:             entity.Base{ID: uuid.NewString()},
		ChallengerID:     testutil.User1.ID,
		ChallengedID:     testutil.User2.ID,
		DurationDays:     7,
		StartDate:        time.Now().AddDate(0, 0, -8),
		EndDate:          time.Now().Add(-time.Minute),
		ChallengerPoints: 8,
		ChallengedPoints: 3,
		Status:           entity.ChallengeActive,
	}
	require.NoError(t, f.challengeRepo.Create(f.ctx, challenge))

	NewExpiredChallengeCronJob(alwaysOpen, f.challengeRepo, f.challengeDomain).Do(f.ctx)

	resolved, err := f.challengeRepo.GetByID(f.ctx, challenge.ID)
	require.NoError(t, err)
	require.Equal(t, entity.ChallengeCompleted, resolved.Status)
	require.Equal(t, testutil.User1.ID, resolved.WinnerID.String)
	require.InDelta(t, 5.0, resolved.PointsGained, 1e-9)
}

func TestStreakCheckCronJob(t *testing.T) {
	f := newCronFixture(t)

	absent := dateutil.Today().AddDate(0, 0, -5)
	require.NoError(t, f.userRepo.UpdateStreak(f.ctx, testutil.User1.ID,
		9, 9, 1, sql.NullTime{Valid: true, Time: absent}))

	recent := dateutil.Today().AddDate(0, 0, -1)
	require.NoError(t, f.userRepo.UpdateStreak(f.ctx, testutil.User2.ID,
		4, 4, 0, sql.NullTime{Valid: true, Time: recent}))

	NewStreakCheckCronJob(alwaysOpen, f.userRepo).Do(f.ctx)

	expired, err := f.userRepo.GetByID(f.ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Zero(t, expired.CurrentStreak)
	require.Zero(t, expired.GraceDaysUsed)
	require.Equal(t, 9, expired.MaxStreak)

	kept, err := f.userRepo.GetByID(f.ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, 4, kept.CurrentStreak)
}
