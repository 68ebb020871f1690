package statistic

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/shuuuu87/DarkFocus/internal/model"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/errorx"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"github.com/shuuuu87/DarkFocus/pkg/xredis"
)

const leaderboardKey = "leaderboard:points"

type Leaderboard interface {
	GetLeaderboard(ctx context.Context, offset, limit int) ([]model.LeaderboardEntry, error)
	GetRank(ctx context.Context, userID string) (uint64, error)
	ChangePoints(ctx context.Context, userID string, value float64) error
	Remove(ctx context.Context, userID string) error
}

type leaderboard struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func NewLeaderboard(
	userRepo repository.UserRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{userRepo: userRepo, redisClient: redisClient}
}

func (l *leaderboard) GetLeaderboard(
	ctx context.Context, offset, limit int,
) ([]model.LeaderboardEntry, error) {
	ok, err := l.redisClient.Exist(ctx, leaderboardKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, leaderboardKey, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for _, z := range results {
		entries = append(entries, model.LeaderboardEntry{
			UserID: z.Member.(string),
			Points: z.Score,
		})
	}

	return entries, nil
}

func (l *leaderboard) GetRank(ctx context.Context, userID string) (uint64, error) {
	ok, err := l.redisClient.Exist(ctx, leaderboardKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return 0, errorx.Unknown
	}

	if !ok {
		if err := l.loadFromDB(ctx); err != nil {
			return 0, err
		}
	}

	rank, err := l.redisClient.ZRevRank(ctx, leaderboardKey, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangePoints(ctx context.Context, userID string, value float64) error {
	ok, err := l.redisClient.Exist(ctx, leaderboardKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, no need to update. The next read
	// backfills from database with the new totals included.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, leaderboardKey, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
	}

	return nil
}

func (l *leaderboard) Remove(ctx context.Context, userID string) error {
	if err := l.redisClient.ZRem(ctx, leaderboardKey, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZRem redis: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *leaderboard) loadFromDB(ctx context.Context) error {
	users, err := l.userRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load users from database: %v", err)
		return errorx.Unknown
	}

	for _, u := range users {
		err := l.redisClient.ZAdd(ctx, leaderboardKey,
			redis.Z{Member: u.ID, Score: u.TotalPoints})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
