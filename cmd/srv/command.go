package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Enqueter"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Category:    "Api",
			Description: `Serves all public and authenticated apis.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start the cron service",
			Category:    "Worker",
			Description: `Runs the periodic statistics aggregation.`,
		},
		{
			Action:      server.startAggregate,
			Name:        "aggregate",
			Usage:       "Run one statistics aggregation and exit",
			Category:    "Worker",
			Description: `Rebuilds the point and response statistics snapshots once.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate the database schema",
			Category:    "Database",
			Description: `Creates or updates all tables.`,
		},
	}

	s.app = app
}
