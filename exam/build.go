// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exam

import (
	"github.com/pkg/errors"

	"github.com/someonegg/seatmatch"
	"github.com/someonegg/seatmatch/eligibility"
)

// Layout is the matching problem built from a roster and a hall list.
// Graph's right vertex j is Benches[j].
type Layout struct {
	Graph   *seatmatch.Graph
	Benches []Bench
}

// Build flattens the halls into benches, in hall order and then bench
// number order, and builds the student/bench graph. A nil table leaves the
// graph complete without materializing its edges.
func Build(students []Student, halls []Hall, table eligibility.Table) (*Layout, error) {
	total := 0
	for i, hall := range halls {
		if hall.ID.IsZero() {
			return nil, errors.Wrapf(ErrInvalidInput, "hall #%d has no hall_id", i+1)
		}
		if hall.Benches < 0 {
			return nil, errors.Wrapf(ErrInvalidInput, "hall %s has %d benches", hall.ID, hall.Benches)
		}
		total += hall.Benches
	}

	if b, ok := table.(eligibility.Bounded); ok {
		if max := b.MaxStudent(); max >= len(students) {
			return nil, errors.Wrapf(ErrInvalidInput,
				"eligibility refers to student %d, only %d students", max, len(students))
		}
	}

	benches := make([]Bench, 0, total)
	for _, hall := range halls {
		for n := 1; n <= hall.Benches; n++ {
			benches = append(benches, Bench{
				Hall:   hall.ID,
				Number: n,
				Seat:   len(benches) + 1,
			})
		}
	}

	g := seatmatch.CompleteGraph(len(students), total)

	if table != nil && table != eligibility.Allow {
		keys := make([]eligibility.Bench, len(benches))
		for j, bench := range benches {
			keys[j] = bench.key()
		}

		g.Adj = make([][]int, len(students))
		for i := range students {
			adj := []int{}
			for j, key := range keys {
				if table.Eligible(i, key) {
					adj = append(adj, j)
				}
			}
			g.Adj[i] = adj
		}
	}

	return &Layout{Graph: g, Benches: benches}, nil
}

// MapSeats turns a matching over a layout's graph into seats, ordered by
// bench. Unmatched students and benches do not appear.
func MapSeats(m *seatmatch.Matching, students []Student, benches []Bench) []Seat {
	seats := make([]Seat, 0, m.Size)
	for _, pair := range m.Pairs() {
		bench := benches[pair.Right]
		seats = append(seats, Seat{
			Hall:    bench.Hall,
			Bench:   bench.Number,
			Seat:    bench.Seat,
			Student: students[pair.Left],
		})
	}
	return seats
}
