package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "DarkFocus"
	app.Usage = "Study tracking backend"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path of the configuration file",
			Value: "config.toml",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Description: `The main service with all http apis.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start the background sweeper",
			Description: `Auto-completes expired timers, resolves expired challenges and re-checks streaks on a fixed interval.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Description: `Brings the database schema to the latest version and exits.`,
		},
	}

	s.app = app
}
