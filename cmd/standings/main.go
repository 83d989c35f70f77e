package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sam-maryland/nfl-standings/internal/config"
	"github.com/sam-maryland/nfl-standings/internal/handlers"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := newApp(logger, os.Stdout).Run(os.Args); err != nil {
		logger.WithError(err).Fatal("Command failed")
	}
}

func newApp(logger *logrus.Logger, out io.Writer) *cli.App {
	var settings *config.Settings

	return &cli.App{
		Name:   "standings",
		Usage:  "rank NFL divisions and conferences with the official tiebreakers",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the settings file",
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			settings, err = config.Load(c.String("config"))
			if err != nil {
				return err
			}
			return configureLogger(logger, settings.Logging)
		},
		Commands: []*cli.Command{
			{
				Name:  "rank",
				Usage: "rank every team in a season file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "season", Usage: "path to a YAML or JSON season file", Required: true},
					&cli.StringFlag{Name: "conference", Usage: "only rank this conference"},
					&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a table"},
				},
				Action: func(c *cli.Context) error {
					handler := handlers.NewStandingsHandler(handlers.FileLoader{}, logger, settings)
					result, err := handler.HandleRank(handlers.RankArgs{
						SeasonPath: c.String("season"),
						Conference: c.String("conference"),
					})
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return handlers.WriteJSON(c.App.Writer, result)
					}
					return handlers.WriteStandingsTable(c.App.Writer, result)
				},
			},
			{
				Name:  "rules",
				Usage: "list the tiebreakers applied to a tie",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "scope", Usage: "division or conference", Value: "division"},
					&cli.IntFlag{Name: "size", Usage: "number of tied teams", Value: 2},
					&cli.BoolFlag{Name: "json", Usage: "print JSON instead of a list"},
				},
				Action: func(c *cli.Context) error {
					handler := handlers.NewStandingsHandler(handlers.FileLoader{}, logger, settings)
					result, err := handler.HandleRules(handlers.RulesArgs{
						Scope: c.String("scope"),
						Size:  c.Int("size"),
					})
					if err != nil {
						return err
					}
					if c.Bool("json") {
						return handlers.WriteJSON(c.App.Writer, result)
					}
					return handlers.WriteRules(c.App.Writer, result)
				},
			},
		},
	}
}

func configureLogger(logger *logrus.Logger, s config.LoggingSettings) error {
	level, err := logrus.ParseLevel(s.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	if s.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}
