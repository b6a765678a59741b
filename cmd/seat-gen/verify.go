// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/someonegg/seatmatch"
	"github.com/someonegg/seatmatch/exam"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check a seats file is a valid maximum assignment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "students",
				Required: true,
				Usage:    "specify the input students.json",
			},
			&cli.StringFlag{
				Name:     "halls",
				Required: true,
				Usage:    "specify the input halls.json",
			},
			&cli.StringFlag{
				Name:     "seats",
				Required: true,
				Usage:    "specify the seats file to check (json, yaml, or .cbor)",
			},
			eligibilityFlag(),
			verboseFlag(),
		},
		Action: func(ctx *cli.Context) error {
			return doVerify(ctx, ctx.String("students"), ctx.String("halls"),
				ctx.String("seats"), ctx.String("eligibility"))
		},
	}
}

func doVerify(ctx *cli.Context, studentFile, hallFile, seatFile, eligibilityFile string) error {
	logger := newLogger(ctx)

	students, halls, table, err := loadInput(studentFile, hallFile, eligibilityFile)
	if err != nil {
		return exitError(err)
	}

	var seats []exam.Seat
	if err := decodeFile(seatFile, &seats); err != nil {
		return exitError(errors.Wrap(err, "load seat file failed"))
	}

	layout, err := exam.Build(students, halls, table)
	if err != nil {
		return exitError(err)
	}

	m, err := exam.Unmap(layout, students, seats)
	if err != nil {
		return exitError(err)
	}
	logger.WithField("seats", m.Size).Debug("seats loaded")

	if err := seatmatch.Verify(layout.Graph, m); err != nil {
		return exitError(err)
	}

	fmt.Fprintln(ctx.App.Writer, "ok")
	return nil
}
