// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exam

import (
	"github.com/pkg/errors"

	"github.com/someonegg/seatmatch"
)

// ErrMismatch is returned when seats refer to benches or students that are
// not part of the input.
var ErrMismatch = errors.New("seats do not match input")

type benchKey struct {
	hall   HallID
	number int
}

// Unmap rebuilds the matching described by seats over layout, the reverse of
// MapSeats. Benches are found by seat number; records without one are found
// by hall and bench number. Students are recognized by content, so two
// identical records are interchangeable.
func Unmap(layout *Layout, students []Student, seats []Seat) (*seatmatch.Matching, error) {
	benchIndex := make(map[benchKey][]int, len(layout.Benches))
	for j, bench := range layout.Benches {
		key := benchKey{bench.Hall, bench.Number}
		benchIndex[key] = append(benchIndex[key], j)
	}

	studentIndex := make(map[string][]int, len(students))
	for i, student := range students {
		key, err := student.MarshalCBOR()
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidInput, "student %d: %v", i, err)
		}
		studentIndex[string(key)] = append(studentIndex[string(key)], i)
	}

	m := seatmatch.NewMatching(len(students), len(layout.Benches))
	last := 0
	for k, seat := range seats {
		j, err := findBench(layout.Benches, benchIndex, seat, last)
		if err != nil {
			return nil, errors.Wrapf(err, "seat #%d", k+1)
		}
		last = layout.Benches[j].Seat

		key, err := seat.Student.MarshalCBOR()
		if err != nil {
			return nil, errors.Wrapf(ErrMismatch, "seat #%d: %v", k+1, err)
		}
		candidates := studentIndex[string(key)]
		if len(candidates) == 0 {
			return nil, errors.Wrapf(ErrMismatch, "seat #%d: student not in roster", k+1)
		}
		i := seatmatch.Unmatched
		for _, c := range candidates {
			if m.LeftToRight[c] == seatmatch.Unmatched {
				i = c
				break
			}
		}
		if i == seatmatch.Unmatched {
			return nil, errors.Wrapf(seatmatch.ErrNotInjective, "seat #%d: student seated twice", k+1)
		}

		m.Add(i, j)
	}

	return m, nil
}

// findBench returns the bench index seat refers to. Seats must come after
// the seat numbered last.
func findBench(benches []Bench, index map[benchKey][]int, seat Seat, last int) (int, error) {
	if seat.Seat != 0 {
		if seat.Seat < 0 || seat.Seat > len(benches) {
			return 0, errors.Wrapf(ErrMismatch, "no seat %d", seat.Seat)
		}
		bench := benches[seat.Seat-1]
		if bench.Hall != seat.Hall || bench.Number != seat.Bench {
			return 0, errors.Wrapf(ErrMismatch, "seat %d is hall %s bench %d, not hall %s bench %d",
				seat.Seat, bench.Hall, bench.Number, seat.Hall, seat.Bench)
		}
		if bench.Seat <= last {
			return 0, errors.Wrap(ErrMismatch, "out of bench order")
		}
		return seat.Seat - 1, nil
	}

	candidates := index[benchKey{seat.Hall, seat.Bench}]
	if len(candidates) == 0 {
		return 0, errors.Wrapf(ErrMismatch, "hall %s has no bench %d", seat.Hall, seat.Bench)
	}
	for _, j := range candidates {
		if benches[j].Seat > last {
			return j, nil
		}
	}
	return 0, errors.Wrap(ErrMismatch, "out of bench order")
}
