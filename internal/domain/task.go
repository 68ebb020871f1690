package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shuuuu87/DarkFocus/internal/domain/notification"
	"github.com/shuuuu87/DarkFocus/internal/domain/points"
	"github.com/shuuuu87/DarkFocus/internal/domain/statistic"
	"github.com/shuuuu87/DarkFocus/internal/domain/streak"
	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/internal/model"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"gorm.io/gorm"
)

type TaskDomain interface {
	Create(ctx context.Context, req *model.CreateTaskRequest) (*model.CreateTaskResponse, error)
	Delete(ctx context.Context, req *model.DeleteTaskRequest) (*model.DeleteTaskResponse, error)
	GetList(ctx context.Context, req *model.GetTasksRequest) (*model.GetTasksResponse, error)
	StartTimer(ctx context.Context, req *model.StartTimerRequest) (*model.StartTimerResponse, error)
	PauseTimer(ctx context.Context, req *model.PauseTimerRequest) (*model.PauseTimerResponse, error)
	GetTimerStatus(ctx context.Context, req *model.GetTimerStatusRequest) (*model.GetTimerStatusResponse, error)
	Complete(ctx context.Context, req *model.CompleteTaskRequest) (*model.CompleteTaskResponse, error)

	// CompleteTask runs the award pipeline for a task known to be due. It is
	// shared between the interactive endpoint and the timer sweeper, so both
	// actors race on the same guarded completion flip.
	CompleteTask(ctx context.Context, task *entity.Task) (float64, error)
}

type taskDomain struct {
	taskRepo       repository.TaskRepository
	userRepo       repository.UserRepository
	challengeRepo  repository.ChallengeRepository
	dailyStatsRepo repository.DailyStatsRepository
	leaderboard    statistic.Leaderboard
	notifyEngine   *notification.Engine
}

func NewTaskDomain(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	challengeRepo repository.ChallengeRepository,
	dailyStatsRepo repository.DailyStatsRepository,
	leaderboard statistic.Leaderboard,
	notifyEngine *notification.Engine,
) *taskDomain {
	return &taskDomain{
		taskRepo:       taskRepo,
		userRepo:       userRepo,
		challengeRepo:  challengeRepo,
		dailyStatsRepo: dailyStatsRepo,
		leaderboard:    leaderboard,
		notifyEngine:   notifyEngine,
	}
}

func (d *taskDomain) Create(
	ctx context.Context, req *model.CreateTaskRequest,
) (*model.CreateTaskResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty title")
	}

	if req.DurationMinutes <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Duration must be positive")
	}

	task := &entity.Task{
		Base:            entity.Base{ID: uuid.NewString()},
		UserID:          xcontext.RequestUserID(ctx),
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
	}

	if err := d.taskRepo.Create(ctx, task); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTaskResponse{ID: task.ID}, nil
}

func (d *taskDomain) Delete(
	ctx context.Context, req *model.DeleteTaskRequest,
) (*model.DeleteTaskResponse, error) {
	task, err := d.getOwnedTask(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if err := d.taskRepo.Delete(ctx, task.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete task: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteTaskResponse{}, nil
}

func (d *taskDomain) GetList(
	ctx context.Context, req *model.GetTasksRequest,
) (*model.GetTasksResponse, error) {
	tasks, err := d.taskRepo.GetIncompleteByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tasks: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()
	resp := &model.GetTasksResponse{Tasks: []model.Task{}}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, model.Task{
			ID:               t.ID,
			Title:            t.Title,
			DurationMinutes:  t.DurationMinutes,
			IsCompleted:      t.IsCompleted,
			IsActive:         t.IsActive,
			RemainingSeconds: t.RemainingSeconds(now),
		})
	}

	return resp, nil
}

func (d *taskDomain) StartTimer(
	ctx context.Context, req *model.StartTimerRequest,
) (*model.StartTimerResponse, error) {
	task, err := d.getOwnedTask(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if task.IsCompleted {
		return nil, errorx.New(errorx.Unavailable, "Task is already completed")
	}

	now := time.Now()
	expected := now.Add(time.Duration(task.DurationMinutes) * time.Minute)

	// One running timer per user. Stopping the others and starting this one
	// must be a single atomic step.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.taskRepo.DeactivateAllOfUser(ctx, task.UserID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot deactivate running timers: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.taskRepo.StartTimer(ctx, task.ID, now, expected); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot start timer: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.StartTimerResponse{
		ExpectedCompletion: expected.Format(time.RFC3339),
		RemainingSeconds:   task.DurationMinutes * 60,
	}, nil
}

func (d *taskDomain) PauseTimer(
	ctx context.Context, req *model.PauseTimerRequest,
) (*model.PauseTimerResponse, error) {
	task, err := d.getOwnedTask(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if !task.IsActive || !task.StartedAt.Valid {
		return nil, errorx.New(errorx.Unavailable, "Timer is not running")
	}

	elapsed := int(time.Since(task.StartedAt.Time).Minutes())
	remaining := task.DurationMinutes - elapsed
	if remaining < 0 {
		remaining = 0
	}

	if err := d.taskRepo.PauseTimer(ctx, task.ID, remaining); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pause timer: %v", err)
		return nil, errorx.Unknown
	}

	return &model.PauseTimerResponse{RemainingSeconds: remaining * 60}, nil
}

func (d *taskDomain) GetTimerStatus(
	ctx context.Context, req *model.GetTimerStatusRequest,
) (*model.GetTimerStatusResponse, error) {
	task, err := d.getOwnedTask(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	// An expired countdown completes on observation, the same award path
	// the sweeper takes.
	if task.IsExpired(time.Now()) {
		pointsEarned, err := d.CompleteTask(ctx, task)
		if err != nil {
			return nil, err
		}

		return &model.GetTimerStatusResponse{
			IsCompleted:  true,
			PointsEarned: pointsEarned,
		}, nil
	}

	return &model.GetTimerStatusResponse{
		IsActive:         task.IsActive,
		IsCompleted:      task.IsCompleted,
		RemainingSeconds: task.RemainingSeconds(time.Now()),
	}, nil
}

func (d *taskDomain) Complete(
	ctx context.Context, req *model.CompleteTaskRequest,
) (*model.CompleteTaskResponse, error) {
	task, err := d.getOwnedTask(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	pointsEarned, err := d.CompleteTask(ctx, task)
	if err != nil {
		return nil, err
	}

	if pointsEarned == 0 && task.IsCompleted {
		return &model.CompleteTaskResponse{Message: "Task was already completed"}, nil
	}

	return &model.CompleteTaskResponse{
		PointsEarned: pointsEarned,
		Message:      "Task completed",
	}, nil
}

func (d *taskDomain) CompleteTask(ctx context.Context, task *entity.Task) (float64, error) {
	if task.IsCompleted {
		return 0, nil
	}

	before, err := d.userRepo.GetByID(ctx, task.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user of task: %v", err)
		return 0, errorx.Unknown
	}

	completedAt := time.Now()

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	won, err := d.taskRepo.MarkCompleted(ctx, task.ID, completedAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot mark task completed: %v", err)
		return 0, errorx.Unknown
	}

	// Someone else (the sweeper or a duplicate request) completed it first.
	// Their completion already awarded everything.
	if !won {
		return 0, nil
	}

	pointsEarned := points.For(task.DurationMinutes)
	err = d.userRepo.IncreaseTotals(ctx, task.UserID, pointsEarned, task.DurationMinutes)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase user totals: %v", err)
		return 0, errorx.Unknown
	}

	stats, err := d.dailyStatsRepo.AddCompletion(
		ctx, task.UserID, dateutil.DateOf(completedAt), task.DurationMinutes, pointsEarned)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot record daily stats: %v", err)
		return 0, errorx.Unknown
	}

	user, err := d.userRepo.GetByID(ctx, task.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload user: %v", err)
		return 0, errorx.Unknown
	}

	// The streak sees the whole day's minutes, so a day crosses the
	// threshold on whichever completion pushes the total over it.
	if streak.Record(user, stats.MinutesStudied) {
		err = d.userRepo.UpdateStreak(ctx, user.ID,
			user.CurrentStreak, user.MaxStreak, user.GraceDaysUsed, user.LastStudyDate)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update streak: %v", err)
			return 0, errorx.Unknown
		}
	}

	challenges, err := d.challengeRepo.GetActiveByUserID(ctx, task.UserID, completedAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active challenges: %v", err)
		return 0, errorx.Unknown
	}

	for _, c := range challenges {
		err := d.challengeRepo.AddPoints(ctx, c.ID, c.ChallengerID == task.UserID, pointsEarned)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot add challenge points: %v", err)
			return 0, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	task.IsCompleted = true
	task.IsActive = false

	// Everything past the commit is observational. Failures must not undo
	// or fail the completion.
	d.leaderboard.ChangePoints(ctx, task.UserID, pointsEarned)
	d.notifyEngine.TaskCompleted(ctx, *before, *user)

	return pointsEarned, nil
}

func (d *taskDomain) getOwnedTask(ctx context.Context, id string) (*entity.Task, error) {
	task, err := d.taskRepo.GetOfUser(ctx, id, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get task: %v", err)
		return nil, errorx.Unknown
	}

	return task, nil
}
