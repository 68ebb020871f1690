package main

import (
	"github.com/shuuuu87/DarkFocus/internal/domain/cron"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(
		cron.NewExpiredTimerCronJob(s.configs.Cron, s.taskRepo, s.taskDomain))
	cronJobManager.Register(
		cron.NewExpiredChallengeCronJob(s.configs.Cron, s.challengeRepo, s.challengeDomain))
	cronJobManager.Register(
		cron.NewStreakCheckCronJob(s.configs.Cron, s.userRepo))

	cronJobManager.Start(s.ctx)

	return nil
}
