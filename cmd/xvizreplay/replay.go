/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/rohankumardubey/xviz"
	"github.com/rohankumardubey/xviz/config"
	"github.com/rohankumardubey/xviz/datastore"
	"github.com/rohankumardubey/xviz/datastore/ddb"
	"github.com/rohankumardubey/xviz/export"
	"github.com/rohankumardubey/xviz/ingest"
	"github.com/rohankumardubey/xviz/metric"
	"github.com/rohankumardubey/xviz/object"
)

func replayCommand() *cli.Command {
	return &cli.Command{
		Name:  "replay",
		Usage: "apply a YAML feed and print the objects of each frame",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "feed",
				Usage:    "YAML feed file",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file",
			},
			&cli.IntFlag{
				Name:  "frame",
				Value: -1,
				Usage: "only print objects of this frame",
			},
			&cli.BoolFlag{
				Name:  "export",
				Usage: "export snapshots to DynamoDB",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "print collected metrics when done",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.Bool("export") {
				cfg.Export.Enabled = true
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			setupLogging(cfg.Log)

			f, err := os.Open(c.String("feed"))
			if err != nil {
				return fmt.Errorf("open feed: %w", err)
			}
			defer f.Close()

			frames, err := ingest.DecodeFeed(f)
			if err != nil {
				return err
			}

			var store datastore.DataStore
			if cfg.Export.Enabled {
				client, err := ddb.NewDynamoDBClient(c.Context,
					cfg.Export.AccessKey, cfg.Export.SecretKey, cfg.Export.Region, cfg.Export.Endpoint)
				if err != nil {
					return err
				}
				store, err = ddb.New(client, cfg.Export.Table, ddb.WithLogger(log.Logger))
				if err != nil {
					return err
				}
			}

			reg := prometheus.NewRegistry()
			r, err := newReplayer(cfg, store, reg, log.Logger, c.App.Writer)
			if err != nil {
				return err
			}
			defer r.session.Close()

			r.only = c.Int("frame")
			if err := r.run(c.Context, frames); err != nil {
				return err
			}
			if c.Bool("metrics") {
				return printMetrics(c.App.Writer, reg)
			}
			return nil
		},
	}
}

// replayer drives one session through a decoded feed.
type replayer struct {
	session  *xviz.Session
	pipeline *ingest.Pipeline
	exporter *export.Exporter
	logger   zerolog.Logger
	out      io.Writer

	everyFrame bool
	only       int
}

func newReplayer(cfg *config.Config, store datastore.DataStore, reg prometheus.Registerer, logger zerolog.Logger, out io.Writer) (*replayer, error) {
	m := metric.NewMetrics(cfg.Metrics.Namespace)
	if err := m.Register(reg); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	session := xviz.NewSession(xviz.WithLogger(logger), xviz.WithMetrics(m))
	r := &replayer{
		session:    session,
		pipeline:   ingest.New(session.Registry, ingest.WithLogger(logger), ingest.WithMetrics(m)),
		logger:     logger.With().Str("session", session.ID).Logger(),
		out:        out,
		everyFrame: cfg.Session.ExportEveryFrame,
		only:       -1,
	}
	if store != nil {
		r.exporter = export.New(store, session, export.WithLogger(logger), export.WithMetrics(m))
	}
	return r, nil
}

func (r *replayer) run(ctx context.Context, frames []ingest.Frame) error {
	r.logger.Info().Int("frames", len(frames)).Msg("replay started")

	var exportErrs []error
	for _, frame := range frames {
		result, err := r.pipeline.ApplyFrame(frame)
		if err != nil {
			r.logger.Warn().Err(err).Int("frame", frame.Index).Int("dropped", result.Dropped).Msg("frame applied with dropped updates")
		}

		if r.only < 0 || r.only == frame.Index {
			r.printFrame(frame.Index, r.session.Registry.GetAllInCurrentFrame(frame.Index))
		}

		if r.exporter != nil && r.everyFrame {
			if _, err := r.exporter.ExportFrame(ctx, frame.Index); err != nil {
				exportErrs = append(exportErrs, err)
			}
		}
	}

	if r.exporter != nil && !r.everyFrame {
		n, err := r.exporter.ExportAll(ctx)
		if err != nil {
			exportErrs = append(exportErrs, err)
		}
		r.logger.Info().Int("records", n).Msg("snapshot exported")
	}

	r.logger.Info().Int("objects", r.session.Registry.Len()).Msg("replay finished")
	return stderrors.Join(exportErrs...)
}

func (r *replayer) printFrame(index int, views []object.View) {
	fmt.Fprintf(r.out, "frame %d: %d objects\n", index, len(views))
	for _, v := range views {
		pos := "-"
		if v.Position != nil {
			pos = fmt.Sprintf("(%g, %g, %g)", v.Position.X(), v.Position.Y(), v.Position.Z())
		}
		fmt.Fprintf(r.out, "  %s position=%s time=[%g, %g] streams=%s\n",
			v.ID, pos, v.StartTime, v.EndTime, strings.Join(v.Streams, ","))
	}
}

// printMetrics writes counter and gauge values gathered from reg.
func printMetrics(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetGauge().GetValue()))
			}
		}
	}

	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}
