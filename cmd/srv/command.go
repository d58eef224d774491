package main

import "github.com/urfave/cli/v2"

// loadApp creates an app with sane defaults.
func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "unisubs"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, the main service included all apis.`,
		},
		{
			Action:      server.startSearchRPC,
			Name:        "search",
			Usage:       "Start the search index rpc server",
			Category:    "Search",
			Description: `Used to serve the full-text index of teams and videos.`,
		},
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start background cron jobs",
			Category:    "Worker",
			Description: `Used to run periodic jobs like task expiration and search reindexing.`,
		},
		{
			Action:      server.startSubscriber,
			Name:        "subscriber",
			Usage:       "Start the notification subscriber",
			Category:    "Worker",
			Description: `Used to consume workflow events from the message queue.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Apply pending database migrations",
			Category:    "Database",
			Description: `Used to bring the database schema to the latest version.`,
		},
	}

	s.app = app
}
