/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/rohankumardubey/xviz"
	"github.com/rohankumardubey/xviz/config"
)

func main() {
	app := &cli.App{
		Name:        "xvizreplay",
		Usage:       "replay a decoded XVIZ feed through the object registry",
		Description: "Applies every frame of a YAML feed, prints the objects of each frame and optionally exports snapshots to DynamoDB",
		Version:     xviz.Version,

		Commands: []*cli.Command{
			replayCommand(),
			{
				Name:  "version",
				Usage: "print version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, xviz.GetVersionInfo())
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

// setupLogging configures the global logger from cfg.
func setupLogging(cfg config.LogConfig) {
	if cfg.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
