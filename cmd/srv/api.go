package main

import (
	"fmt"
	"net/http"

	"github.com/shuuuu87/DarkFocus/internal/middleware"
	"github.com/shuuuu87/DarkFocus/pkg/router"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", s.configs.Server.Host, s.configs.Server.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port %s", s.configs.Server.Port)
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.AddCloser(middleware.Logger())

	authRouter := s.router.Branch()
	authRouter.Before(middleware.Authenticate())
	{
		// User API
		router.POST(authRouter, "/createUser", s.userDomain.CreateUser)
		router.GET(authRouter, "/getUser", s.userDomain.GetUser)
		router.POST(authRouter, "/deleteUser", s.userDomain.DeleteUser)

		// Task API
		router.POST(authRouter, "/addTask", s.taskDomain.Create)
		router.POST(authRouter, "/deleteTask", s.taskDomain.Delete)
		router.GET(authRouter, "/getTasks", s.taskDomain.GetList)
		router.POST(authRouter, "/startTimer", s.taskDomain.StartTimer)
		router.POST(authRouter, "/pauseTimer", s.taskDomain.PauseTimer)
		router.GET(authRouter, "/getTimerStatus", s.taskDomain.GetTimerStatus)
		router.POST(authRouter, "/completeTask", s.taskDomain.Complete)

		// Challenge API
		router.POST(authRouter, "/createChallenge", s.challengeDomain.Propose)
		router.POST(authRouter, "/acceptChallenge", s.challengeDomain.Accept)
		router.POST(authRouter, "/declineChallenge", s.challengeDomain.Decline)
		router.GET(authRouter, "/getChallenges", s.challengeDomain.GetList)

		// Statistic API
		router.GET(authRouter, "/getProgress", s.statisticDomain.GetProgress)
		router.GET(authRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	}
}
