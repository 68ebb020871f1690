package domain

import (
	"testing"

	"github.com/shuuuu87/DarkFocus/internal/domain/statistic"
	"github.com/shuuuu87/DarkFocus/internal/model"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/dateutil"
	"github.com/shuuuu87/DarkFocus/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestStatisticDomain() *statisticDomain {
	userRepo := repository.NewUserRepository()
	return &statisticDomain{
		userRepo:       userRepo,
		dailyStatsRepo: repository.NewDailyStatsRepository(),
		leaderboard:    statistic.NewLeaderboard(userRepo, testutil.NewMockRedisClient()),
	}
}

func Test_statisticDomain_GetProgressZeroFills(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestStatisticDomain()

	today := dateutil.Today()
	_, err := d.dailyStatsRepo.AddCompletion(ctx, testutil.User1.ID, today, 60, 5)
	require.NoError(t, err)
	_, err = d.dailyStatsRepo.AddCompletion(
		ctx, testutil.User1.ID, today.AddDate(0, 0, -2), 30, 2.5)
	require.NoError(t, err)

	resp, err := d.GetProgress(ctx, &model.GetProgressRequest{Days: 7})
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)

	last := resp.Days[6]
	require.Equal(t, today.Format("2006-01-02"), last.Date)
	require.Equal(t, 60, last.MinutesStudied)
	require.Equal(t, 1, last.TasksCompleted)

	require.Equal(t, 30, resp.Days[4].MinutesStudied)
	require.Zero(t, resp.Days[5].MinutesStudied)
	require.Zero(t, resp.Days[0].MinutesStudied)
}

func Test_statisticDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.InsertFixtureUsers(ctx)

	d := newTestStatisticDomain()

	require.NoError(t, d.userRepo.IncreaseTotals(ctx, testutil.User1.ID, 12, 144))
	require.NoError(t, d.userRepo.IncreaseTotals(ctx, testutil.User2.ID, 30, 360))

	resp, err := d.GetLeaderboard(ctx, &model.GetLeaderboardRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	require.Equal(t, "bob", resp.Entries[0].Name)
	require.Equal(t, "alice", resp.Entries[1].Name)
	require.EqualValues(t, 2, resp.MyRank)
}
