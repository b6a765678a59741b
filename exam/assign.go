// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exam

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/someonegg/seatmatch"
)

func (a *Assigner) init() (algorithm string, logger logrus.FieldLogger, matcher seatmatch.Matcher, err error) {
	algorithm = a.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmHopcroftKarp
	}

	logger = a.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	switch algorithm {
	case AlgorithmHopcroftKarp:
		matcher = seatmatch.HopcroftKarpMatcher(a.WarmStart, logger)
	case AlgorithmGreedy:
		matcher = seatmatch.GreedyMatcher()
	default:
		err = errors.Wrapf(ErrUnknownAlgorithm, "%q", algorithm)
	}
	return
}

// Assign seats as many students as possible, at most one per bench. Seats
// are ordered by hall, then bench number.
func (a *Assigner) Assign(students []Student, halls []Hall) (seats []Seat, summary Summary, err error) {
	algorithm, logger, matcher, err := a.init()
	if err != nil {
		return nil, summary, err
	}

	layout, err := Build(students, halls, a.Eligibility)
	if err != nil {
		return nil, summary, err
	}

	var summ Summary
	summ.Algorithm = algorithm
	summ.Students = len(students)
	summ.Halls = len(halls)
	summ.Benches = len(layout.Benches)
	summ.Digest, err = Fingerprint(students, halls)
	if err != nil {
		return nil, summary, errors.Wrap(err, "fingerprint input")
	}

	logger.WithFields(logrus.Fields{
		"students": summ.Students,
		"benches":  summ.Benches,
		"complete": layout.Graph.Complete(),
		"digest":   summ.Digest,
	}).Debug("graph built")

	m, stats := matcher.Match(layout.Graph)

	if a.Verify {
		if err := seatmatch.Verify(layout.Graph, m); err != nil {
			return nil, summary, errors.Wrap(err, "verify matching")
		}
		logger.Debug("matching verified")
	}

	summ.Matched = m.Size
	summ.UnassignedStudents = summ.Students - m.Size
	summ.FreeBenches = summ.Benches - m.Size
	summ.Phases = stats.Phases
	summ.Augmentations = stats.Augmentations
	summ.FastPath = stats.FastPath

	if a.Metrics != nil {
		a.Metrics.Observe(summ)
	}

	return MapSeats(m, students, layout.Benches), summ, nil
}
