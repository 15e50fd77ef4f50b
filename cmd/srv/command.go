package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Spacebirdz"
	app.Usage = ""
	app.Commands = []*cli.Command{
		{
			Action:      server.startApi,
			Name:        "api",
			Usage:       "Start the api service",
			Flags:       []cli.Flag{},
			Category:    "Api",
			Description: `Starts the main service with all quest and reward apis.`,
		},
		{
			Action:   server.startMigrate,
			Name:     "migrate",
			Usage:    "Migrate the database schema",
			Category: "Database",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "admin",
					Usage: "user id seeded as the ledger admin on first migration",
				},
			},
			Description: `Creates or updates all tables and seeds the ledger state.`,
		},
	}

	s.app = app
}
