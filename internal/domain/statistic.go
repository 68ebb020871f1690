package domain

import (
	"context"

	"github.com/shuuuu87/DarkFocus/internal/domain/statistic"
	"github.com/shuuuu87/DarkFocus/internal/model"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

const (
	defaultProgressDays    = 30
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

type StatisticDomain interface {
	GetProgress(ctx context.Context, req *model.GetProgressRequest) (*model.GetProgressResponse, error)
	GetLeaderboard(ctx context.Context, req *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type statisticDomain struct {
	userRepo       repository.UserRepository
	dailyStatsRepo repository.DailyStatsRepository
	leaderboard    statistic.Leaderboard
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	dailyStatsRepo repository.DailyStatsRepository,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{
		userRepo:       userRepo,
		dailyStatsRepo: dailyStatsRepo,
		leaderboard:    leaderboard,
	}
}

// GetProgress returns one entry per calendar day over the requested window,
// zero-filled for days without completions so charts get a dense series.
func (d *statisticDomain) GetProgress(
	ctx context.Context, req *model.GetProgressRequest,
) (*model.GetProgressResponse, error) {
	days := req.Days
	if days <= 0 || days > 365 {
		days = defaultProgressDays
	}

	today := dateutil.Today()
	from := today.AddDate(0, 0, -(days - 1))

	rows, err := d.dailyStatsRepo.GetRange(ctx, xcontext.RequestUserID(ctx), from, today)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get stats range: %v", err)
		return nil, errorx.Unknown
	}

	// Key by formatted date; drivers differ in the location they attach to
	// loaded timestamps.
	byDate := map[string]*model.DailyProgress{}
	for i := range rows {
		date := rows[i].Date.UTC().Format("2006-01-02")
		byDate[date] = &model.DailyProgress{
			Date:           date,
			MinutesStudied: rows[i].MinutesStudied,
			PointsEarned:   rows[i].PointsEarned,
			TasksCompleted: rows[i].TasksCompleted,
		}
	}

	resp := &model.GetProgressResponse{Days: []model.DailyProgress{}}
	for day := from; !day.After(today); day = day.AddDate(0, 0, 1) {
		if p, ok := byDate[day.Format("2006-01-02")]; ok {
			resp.Days = append(resp.Days, *p)
		} else {
			resp.Days = append(resp.Days, model.DailyProgress{
				Date: day.Format("2006-01-02"),
			})
		}
	}

	return resp, nil
}

func (d *statisticDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	entries, err := d.leaderboard.GetLeaderboard(ctx, 0, limit)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		user, err := d.userRepo.GetByID(ctx, entries[i].UserID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot resolve leaderboard user %s: %v", entries[i].UserID, err)
			continue
		}

		entries[i].Name = user.Name
	}

	myRank, err := d.leaderboard.GetRank(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardResponse{Entries: entries, MyRank: myRank}, nil
}
