package domain

import (
	"context"
	"errors"

	"github.com/shuuuu87/DarkFocus/internal/domain/rank"
	"github.com/shuuuu87/DarkFocus/internal/domain/statistic"
	"github.com/shuuuu87/DarkFocus/internal/entity"
	"github.com/shuuuu87/DarkFocus/internal/model"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.CreateUserResponse, error)
	GetUser(ctx context.Context, req *model.GetUserRequest) (*model.GetUserResponse, error)
	DeleteUser(ctx context.Context, req *model.DeleteUserRequest) (*model.DeleteUserResponse, error)
}

type userDomain struct {
	userRepo       repository.UserRepository
	taskRepo       repository.TaskRepository
	dailyStatsRepo repository.DailyStatsRepository
	leaderboard    statistic.Leaderboard
}

func NewUserDomain(
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	dailyStatsRepo repository.DailyStatsRepository,
	leaderboard statistic.Leaderboard,
) *userDomain {
	return &userDomain{
		userRepo:       userRepo,
		taskRepo:       taskRepo,
		dailyStatsRepo: dailyStatsRepo,
		leaderboard:    leaderboard,
	}
}

// CreateUser provisions the profile row for an identity established
// upstream. The row id is the request user id, so the first call after
// sign-up is enough.
func (d *userDomain) CreateUser(
	ctx context.Context, req *model.CreateUserRequest,
) (*model.CreateUserResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty name")
	}

	if _, err := d.userRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This name is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check name availability: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base: entity.Base{ID: xcontext.RequestUserID(ctx)},
		Name: req.Name,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateUserResponse{}, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	id := req.ID
	if id == "" {
		id = xcontext.RequestUserID(ctx)
	}

	user, err := d.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	minutesToday := 0
	if today, err := d.dailyStatsRepo.Get(ctx, user.ID, dateutil.Today()); err == nil {
		minutesToday = today.MinutesStudied
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get today stats: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserResponse{User: model.User{
		ID:             user.ID,
		Name:           user.Name,
		TotalPoints:    user.TotalPoints,
		CurrentStreak:  user.CurrentStreak,
		MaxStreak:      user.MaxStreak,
		GraceDaysUsed:  user.GraceDaysUsed,
		TotalStudyTime: user.TotalStudyTime,
		Rank:           string(rank.Of(user.TotalPoints)),
		RankProgress:   rank.Progress(user.TotalPoints),
		MinutesToday:   minutesToday,
	}}, nil
}

func (d *userDomain) DeleteUser(
	ctx context.Context, req *model.DeleteUserRequest,
) (*model.DeleteUserResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	// Dependent rows go first, explicitly. Nothing relies on database-level
	// cascades.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.taskRepo.DeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete tasks of user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.dailyStatsRepo.DeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete stats of user: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.userRepo.Delete(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete user: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	d.leaderboard.Remove(ctx, userID)

	return &model.DeleteUserResponse{}, nil
}
