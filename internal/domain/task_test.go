package domain

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shuuuu87/DarkFocus/internal/domain/notification"
	"github.com/shuuuu87/DarkFocus/internal/domain/statistic"
	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/internal/model"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/shuuuu87/DarkFocus/pkg/testutil"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestTaskDomain() *taskDomain {
	userRepo := repository.NewUserRepository()
	return &taskDomain{
		taskRepo:       repository.NewTaskRepository(),
		userRepo:       userRepo,
		challengeRepo:  repository.NewChallengeRepository(),
		dailyStatsRepo: repository.NewDailyStatsRepository(),
		leaderboard:    statistic.NewLeaderboard(userRepo, testutil.NewMockRedisClient()),
		notifyEngine:   notification.NewEngine(notification.NewLogNotifier()),
	}
}

func Test_taskDomain_FullScenario(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestTaskDomain()

	created, err := d.Create(ctx, &model.CreateTaskRequest{
		Title:           "deep work",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	tasks, err := d.GetList(ctx, &model.GetTasksRequest{})
	require.NoError(t, err)
	require.Len(t, tasks.Tasks, 1)
	require.Equal(t, "deep work", tasks.Tasks[0].Title)
	require.Equal(t, 3600, tasks.Tasks[0].RemainingSeconds)

	started, err := d.StartTimer(ctx, &model.StartTimerRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, 3600, started.RemainingSeconds)

	status, err := d.GetTimerStatus(ctx, &model.GetTimerStatusRequest{ID: created.ID})
	require.NoError(t, err)
	require.True(t, status.IsActive)
	require.False(t, status.IsCompleted)

	paused, err := d.PauseTimer(ctx, &model.PauseTimerRequest{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, 3600, paused.RemainingSeconds)

	completed, err := d.Complete(ctx, &model.CompleteTaskRequest{ID: created.ID})
	require.NoError(t, err)
	require.InDelta(t, 5.0, completed.PointsEarned, 1e-9)

	user, err := d.userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.InDelta(t, 5.0, user.TotalPoints, 1e-9)
	require.Equal(t, 60, user.TotalStudyTime)

	stats, err := d.dailyStatsRepo.Get(ctx, testutil.User1.ID, dateutil.Today())
	require.NoError(t, err)
	require.Equal(t, 60, stats.MinutesStudied)
	require.Equal(t, 1, stats.TasksCompleted)
	require.InDelta(t, 5.0, stats.PointsEarned, 1e-9)

	// Sixty minutes is below the streak threshold.
	require.Equal(t, 0, user.CurrentStreak)
}

func Test_taskDomain_CompleteIsIdempotent(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestTaskDomain()

	created, err := d.Create(ctx, &model.CreateTaskRequest{Title: "read", DurationMinutes: 24})
	require.NoError(t, err)

	first, err := d.Complete(ctx, &model.CompleteTaskRequest{ID: created.ID})
	require.NoError(t, err)
	require.InDelta(t, 2.0, first.PointsEarned, 1e-9)

	second, err := d.Complete(ctx, &model.CompleteTaskRequest{ID: created.ID})
	require.NoError(t, err)
	require.Zero(t, second.PointsEarned)

	user, err := d.userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.InDelta(t, 2.0, user.TotalPoints, 1e-9)
	require.Equal(t, 24, user.TotalStudyTime)
}

func Test_taskDomain_CompletionStartsStreak(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestTaskDomain()

	// Two completions whose minutes only cross the threshold together.
	for _, duration := range []int{60, 60} {
		created, err := d.Create(ctx, &model.CreateTaskRequest{
			Title:           "session",
			DurationMinutes: duration,
		})
		require.NoError(t, err)

		_, err = d.Complete(ctx, &model.CompleteTaskRequest{ID: created.ID})
		require.NoError(t, err)
	}

	user, err := d.userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, user.CurrentStreak)
	require.Equal(t, 1, user.MaxStreak)
	require.True(t, user.LastStudyDate.Time.Equal(dateutil.Today()))
}

func Test_taskDomain_CompletionCreditsActiveChallenge(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestTaskDomain()

	now := time.Now()
	challenge := &entity.Challenge{
		Base:         entity.Base{ID: uuid.NewString()},
		ChallengerID: testutil.User1.ID,
		ChallengedID: testutil.User2.ID,
		DurationDays: 7,
		StartDate:    now.Add(-time.Hour),
		EndDate:      now.AddDate(0, 0, 7),
		Status:       entity.ChallengeActive,
	}
	require.NoError(t, d.challengeRepo.Create(ctx, challenge))

	// A second challenge outside its window must not be credited.
	stale := &entity.Challenge{
		Base:         entity.Base{ID: uuid.NewString()},
		ChallengerID: testutil.User1.ID,
		ChallengedID: testutil.User2.ID,
		DurationDays: 1,
		StartDate:    now.AddDate(0, 0, -2),
		EndDate:      now.AddDate(0, 0, -1),
		Status:       entity.ChallengeActive,
	}
	require.NoError(t, d.challengeRepo.Create(ctx, stale))

	created, err := d.Create(ctx, &model.CreateTaskRequest{Title: "math", DurationMinutes: 36})
	require.NoError(t, err)
	_, err = d.Complete(ctx, &model.CompleteTaskRequest{ID: created.ID})
	require.NoError(t, err)

	credited, err := d.challengeRepo.GetByID(ctx, challenge.ID)
	require.NoError(t, err)
	require.InDelta(t, 3.0, credited.ChallengerPoints, 1e-9)
	require.Zero(t, credited.ChallengedPoints)

	untouched, err := d.challengeRepo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.Zero(t, untouched.ChallengerPoints)
}

func Test_taskDomain_ExpiredTimerCompletesOnStatus(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestTaskDomain()

	task := &entity.Task{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          testutil.User1.ID,
		Title:           "overdue",
		DurationMinutes: 12,
		IsActive:        true,
		StartedAt:       sql.NullTime{Valid: true, Time: time.Now().Add(-20 * time.Minute)},
		ExpectedCompletion: sql.NullTime{
			Valid: true,
			Time:  time.Now().Add(-8 * time.Minute),
		},
	}
	require.NoError(t, d.taskRepo.Create(ctx, task))

	status, err := d.GetTimerStatus(ctx, &model.GetTimerStatusRequest{ID: task.ID})
	require.NoError(t, err)
	require.True(t, status.IsCompleted)
	require.InDelta(t, 1.0, status.PointsEarned, 1e-9)

	user, err := d.userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.InDelta(t, 1.0, user.TotalPoints, 1e-9)
}

func Test_taskDomain_ForeignTaskIsNotFound(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestTaskDomain()

	created, err := d.Create(ctx, &model.CreateTaskRequest{Title: "mine", DurationMinutes: 30})
	require.NoError(t, err)

	ctxUser2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = d.Complete(ctxUser2, &model.CompleteTaskRequest{ID: created.ID})
	require.Error(t, err)
	require.Equal(t, "Not found task", err.Error())

	_, err = d.Delete(ctxUser2, &model.DeleteTaskRequest{ID: created.ID})
	require.Error(t, err)
	require.Equal(t, "Not found task", err.Error())
}

func Test_taskDomain_StartDeactivatesOtherTimers(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestTaskDomain()

	first, err := d.Create(ctx, &model.CreateTaskRequest{Title: "first", DurationMinutes: 30})
	require.NoError(t, err)
	second, err := d.Create(ctx, &model.CreateTaskRequest{Title: "second", DurationMinutes: 30})
	require.NoError(t, err)

	_, err = d.StartTimer(ctx, &model.StartTimerRequest{ID: first.ID})
	require.NoError(t, err)
	_, err = d.StartTimer(ctx, &model.StartTimerRequest{ID: second.ID})
	require.NoError(t, err)

	firstTask, err := d.taskRepo.GetOfUser(ctx, first.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.False(t, firstTask.IsActive)

	secondTask, err := d.taskRepo.GetOfUser(ctx, second.ID, testutil.User1.ID)
	require.NoError(t, err)
	require.True(t, secondTask.IsActive)
}
