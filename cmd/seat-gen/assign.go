// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/someonegg/seatmatch"
	"github.com/someonegg/seatmatch/exam"
)

func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log matching details",
	}
}

func eligibilityFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "eligibility",
		Usage: "specify the eligibility rules (yaml), default every student fits every bench",
	}
}

func assignCmd() *cli.Command {
	return &cli.Command{
		Name:      "assign",
		Usage:     "Seat as many students as possible, one per bench",
		Aliases:   []string{"a"},
		ArgsUsage: "[students.json halls.json]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "students",
				Usage: "specify the input students.json",
			},
			&cli.StringFlag{
				Name:  "halls",
				Usage: "specify the input halls.json",
			},
			eligibilityFlag(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "specify the output seats file, default stdout",
			},
			&cli.StringFlag{
				Name:    "config",
				EnvVars: []string{"SEATGEN_CONFIG"},
				Usage:   "specify the config.yaml",
			},
			&cli.StringFlag{
				Name:  "algorithm",
				Usage: "specify the algorithm (hopcroft-karp, greedy)",
			},
			&cli.BoolFlag{
				Name:  "warm-start",
				Usage: "seed hopcroft-karp with a greedy matching",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "check the matching is maximum before writing it",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "specify the output format (json, cbor)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "write run metrics in prometheus text format",
			},
			verboseFlag(),
		},
		Action: func(ctx *cli.Context) error {
			var (
				studentFile     = ctx.String("students")
				hallFile        = ctx.String("halls")
				eligibilityFile = ctx.String("eligibility")
				outputFile      = ctx.String("output")
			)
			if ctx.NArg() > 0 {
				if ctx.NArg() != 2 || studentFile != "" || hallFile != "" {
					return cli.Exit("give either --students and --halls or two file arguments", exitFailure)
				}
				studentFile, hallFile = ctx.Args().Get(0), ctx.Args().Get(1)
			}
			if studentFile == "" || hallFile == "" {
				return cli.Exit("students and halls files are required", exitFailure)
			}

			cfg, err := assignConfig(ctx)
			if err != nil {
				return cli.Exit(err.Error(), exitFailure)
			}

			return doAssign(ctx, cfg, studentFile, hallFile, eligibilityFile, outputFile)
		},
	}
}

func assignConfig(ctx *cli.Context) (*Config, error) {
	cfg, err := LoadConfig(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if ctx.IsSet("algorithm") {
		cfg.Algorithm = ctx.String("algorithm")
	}
	if ctx.IsSet("warm-start") {
		cfg.WarmStart = ctx.Bool("warm-start")
	}
	if ctx.IsSet("verify") {
		cfg.Verify = ctx.Bool("verify")
	}
	if ctx.IsSet("format") {
		cfg.Format = ctx.String("format")
	}
	if ctx.IsSet("metrics-file") {
		cfg.MetricsFile = ctx.String("metrics-file")
	}

	return cfg, cfg.validate()
}

func newLogger(ctx *cli.Context) *log.Logger {
	logger := log.New()
	logger.SetOutput(ctx.App.ErrWriter)
	if ctx.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// exitError picks the process exit code for err.
func exitError(err error) error {
	code := exitFailure
	switch {
	case errors.Is(err, exam.ErrInvalidInput):
		code = exitInvalidInput
	case errors.Is(err, exam.ErrMismatch),
		errors.Is(err, seatmatch.ErrShape),
		errors.Is(err, seatmatch.ErrNotInjective),
		errors.Is(err, seatmatch.ErrNotEdge),
		errors.Is(err, seatmatch.ErrNotMaximum):
		code = exitVerify
	}
	return cli.Exit(err.Error(), code)
}

func doAssign(ctx *cli.Context, cfg *Config,
	studentFile, hallFile, eligibilityFile, outputFile string) error {

	logger := newLogger(ctx)

	students, halls, table, err := loadInput(studentFile, hallFile, eligibilityFile)
	if err != nil {
		return exitError(err)
	}

	assigner := &exam.Assigner{
		Algorithm:   cfg.Algorithm,
		WarmStart:   cfg.WarmStart,
		Verify:      cfg.Verify,
		Eligibility: table,
		Logger:      logger,
	}

	var registry *prometheus.Registry
	if cfg.MetricsFile != "" {
		registry = prometheus.NewRegistry()
		assigner.Metrics = exam.NewMetrics(registry)
	}

	seats, summ, err := assigner.Assign(students, halls)
	if err != nil {
		return exitError(err)
	}

	logger.WithFields(log.Fields{
		"students":   summ.Students,
		"halls":      summ.Halls,
		"benches":    summ.Benches,
		"matched":    summ.Matched,
		"unassigned": summ.UnassignedStudents,
		"free":       summ.FreeBenches,
		"phases":     summ.Phases,
		"algorithm":  summ.Algorithm,
		"digest":     summ.Digest,
	}).Info("assignment done")

	if err := writeSeats(ctx.App.Writer, outputFile, seats, cfg); err != nil {
		return cli.Exit("write seats failed: "+err.Error(), exitFailure)
	}

	if registry != nil {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			return cli.Exit("write metrics failed: "+err.Error(), exitFailure)
		}
	}

	return nil
}
