package main

import (
	"context"
	"net/http"

	"github.com/shuuuu87/DarkFocus/config"
	"github.com/shuuuu87/DarkFocus/internal/domain"
	"github.com/shuuuu87/DarkFocus/internal/domain/notification"
	"github.com/shuuuu87/DarkFocus/internal/domain/statistic"
	"github.com/shuuuu87/DarkFocus/internal/repository"
	"github.com/shuuuu87/DarkFocus/pkg/logger"
	"github.com/shuuuu87/DarkFocus/pkg/router"
	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
	"github.com/shuuuu87/DarkFocus/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient xredis.Client

	userRepo       repository.UserRepository
	taskRepo       repository.TaskRepository
	challengeRepo  repository.ChallengeRepository
	dailyStatsRepo repository.DailyStatsRepository

	leaderboard  statistic.Leaderboard
	notifyEngine *notification.Engine

	userDomain      domain.UserDomain
	taskDomain      domain.TaskDomain
	challengeDomain domain.ChallengeDomain
	statisticDomain domain.StatisticDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	var err error
	s.configs, err = config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), s.configs)
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(logger.ParseLevel(s.configs.LogLevel))
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.Open(s.configs.Database.ConnectionString()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.taskRepo = repository.NewTaskRepository()
	s.challengeRepo = repository.NewChallengeRepository()
	s.dailyStatsRepo = repository.NewDailyStatsRepository()
}

func (s *srv) loadDomains() {
	s.leaderboard = statistic.NewLeaderboard(s.userRepo, s.redisClient)
	s.notifyEngine = notification.NewEngine(notification.NewLogNotifier())

	s.userDomain = domain.NewUserDomain(
		s.userRepo, s.taskRepo, s.dailyStatsRepo, s.leaderboard)
	s.taskDomain = domain.NewTaskDomain(
		s.taskRepo, s.userRepo, s.challengeRepo, s.dailyStatsRepo, s.leaderboard, s.notifyEngine)
	s.challengeDomain = domain.NewChallengeDomain(
		s.challengeRepo, s.userRepo, s.leaderboard, s.notifyEngine)
	s.statisticDomain = domain.NewStatisticDomain(
		s.userRepo, s.dailyStatsRepo, s.leaderboard)
}
