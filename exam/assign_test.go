// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exam

import (
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/someonegg/seatmatch"
	"github.com/someonegg/seatmatch/eligibility"
)

func TestAssigner_Assign(t *testing.T) {
	t.Run("ThreeStudentsTwoBenches", func(t *testing.T) {
		students := []Student{
			Student(`{"name":"s0"}`),
			Student(`{"name":"s1"}`),
			Student(`{"name":"s2"}`),
		}
		a := &Assigner{}
		seats, summ, err := a.Assign(students, []Hall{makeHall("A", 2)})
		require.NoError(t, err)

		out, err := json.Marshal(seats)
		require.NoError(t, err)
		assert.JSONEq(t, `[
			{"hall_id":"A","bench":1,"seat":1,"student":{"name":"s0"}},
			{"hall_id":"A","bench":2,"seat":2,"student":{"name":"s1"}}
		]`, string(out))

		assert.Equal(t, 2, summ.Matched)
		assert.Equal(t, 1, summ.UnassignedStudents)
		assert.Equal(t, 0, summ.FreeBenches)
		assert.True(t, summ.FastPath)
		assert.Equal(t, AlgorithmHopcroftKarp, summ.Algorithm)
		assert.Empty(t, a.Algorithm, "the assigner is left as configured")
		assert.Len(t, summ.Digest, 64)
	})

	t.Run("Restricted", func(t *testing.T) {
		// student 0 may only take bench 1.
		table := eligibility.NewRuleTable(nil, []eligibility.Rule{
			{Students: []int{0}, Benches: []int{2}, Allow: false},
		})
		students := makeStudents(2)
		a := &Assigner{Eligibility: table, Verify: true}
		seats, summ, err := a.Assign(students, []Hall{makeHall("A", 2)})
		require.NoError(t, err)

		require.Len(t, seats, 2)
		assert.Equal(t, students[0], seats[0].Student)
		assert.Equal(t, 1, seats[0].Bench)
		assert.Equal(t, students[1], seats[1].Student)
		assert.Equal(t, 2, seats[1].Bench)
		assert.False(t, summ.FastPath)
		assert.Equal(t, 1, summ.Phases)
	})

	t.Run("GreedyTrap", func(t *testing.T) {
		// student 1 may only take bench 1; first-fit gives it to student 0.
		table := eligibility.NewRuleTable(nil, []eligibility.Rule{
			{Students: []int{1}, Benches: []int{2}, Allow: false},
		})
		halls := []Hall{makeHall("A", 2)}

		seats, _, err := (&Assigner{Eligibility: table, Verify: true}).Assign(makeStudents(2), halls)
		require.NoError(t, err)
		assert.Len(t, seats, 2)

		seats, _, err = (&Assigner{Eligibility: table, Algorithm: AlgorithmGreedy}).Assign(makeStudents(2), halls)
		require.NoError(t, err)
		assert.Len(t, seats, 1)

		_, _, err = (&Assigner{Eligibility: table, Algorithm: AlgorithmGreedy, Verify: true}).Assign(makeStudents(2), halls)
		assert.ErrorIs(t, err, seatmatch.ErrNotMaximum)
	})

	t.Run("Empty", func(t *testing.T) {
		for _, c := range []struct {
			students []Student
			halls    []Hall
		}{
			{nil, []Hall{makeHall("A", 3)}},
			{makeStudents(3), nil},
			{makeStudents(3), []Hall{makeHall("A", 0)}},
			{nil, nil},
		} {
			seats, summ, err := (&Assigner{Verify: true}).Assign(c.students, c.halls)
			require.NoError(t, err)
			assert.Empty(t, seats)
			assert.Equal(t, 0, summ.Matched)

			out, err := json.Marshal(seats)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(out))
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		seats, _, err := (&Assigner{}).Assign(makeStudents(2), []Hall{makeHall("A", -2)})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, seats)
	})

	t.Run("UnknownAlgorithm", func(t *testing.T) {
		_, _, err := (&Assigner{Algorithm: "simplex"}).Assign(makeStudents(2), []Hall{makeHall("A", 2)})
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	})

	t.Run("Deterministic", func(t *testing.T) {
		table := eligibility.NewRuleTable(nil, []eligibility.Rule{
			{Halls: []string{"B"}, Allow: false},
			{Students: []int{3, 5, 7, 11, 13}, Halls: []string{"B"}, Allow: true},
			{Students: []int{0, 1, 2}, Halls: []string{"A"}, Benches: []int{1, 2, 3}, Allow: false},
		})
		students := makeStudents(40)
		halls := []Hall{makeHall("A", 20), makeHall("B", 15), makeHall("C", 2)}

		a := &Assigner{Eligibility: table, Verify: true}
		seats1, summ1, err := a.Assign(students, halls)
		require.NoError(t, err)
		seats2, summ2, err := a.Assign(students, halls)
		require.NoError(t, err)

		out1, _ := json.Marshal(seats1)
		out2, _ := json.Marshal(seats2)
		assert.Equal(t, string(out1), string(out2))
		assert.Equal(t, summ1, summ2)
		assert.Equal(t, 27, summ1.Matched)
	})

	t.Run("Metrics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics := NewMetrics(reg)
		a := &Assigner{Metrics: metrics}

		_, _, err := a.Assign(makeStudents(5), []Hall{makeHall("A", 3)})
		require.NoError(t, err)
		_, _, err = a.Assign(makeStudents(2), []Hall{makeHall("A", 3)})
		require.NoError(t, err)

		assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Students))
		assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Benches))
		assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Matched))
		assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Runs.WithLabelValues(AlgorithmHopcroftKarp)))
	})

	t.Run("Logging", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		table := eligibility.NewRuleTable(nil, []eligibility.Rule{
			{Students: []int{0}, Benches: []int{1}, Allow: false},
		})

		_, _, err := (&Assigner{Eligibility: table, Logger: logger}).Assign(makeStudents(2), []Hall{makeHall("A", 2)})
		require.NoError(t, err)

		var messages []string
		for _, e := range hook.AllEntries() {
			messages = append(messages, e.Message)
		}
		assert.Contains(t, messages, "graph built")
		assert.Contains(t, messages, "phase done")
	})
}

func TestFingerprint(t *testing.T) {
	halls := []Hall{makeHall("A", 2)}

	a, err := Fingerprint([]Student{Student(`{"a":1,"b":[1,2.5,"x"]}`)}, halls)
	require.NoError(t, err)
	b, err := Fingerprint([]Student{Student(`{ "b": [1, 2.5, "x"], "a": 1 }`)}, halls)
	require.NoError(t, err)
	assert.Equal(t, a, b, "key order and spacing do not matter")

	c, err := Fingerprint([]Student{Student(`{"a":2,"b":[1,2.5,"x"]}`)}, halls)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	d, err := Fingerprint([]Student{Student(`{"a":1,"b":[1,2.5,"x"]}`)}, []Hall{makeHall("A", 3)})
	require.NoError(t, err)
	assert.NotEqual(t, a, d)

	t.Run("LargeNumbers", func(t *testing.T) {
		for _, pair := range [][2]string{
			{`{"id":100000000000000000001}`, `{"id":100000000000000000002}`},
			{`{"id":-100000000000000000001}`, `{"id":-100000000000000000002}`},
			{`{"id":1e400}`, `{"id":2e400}`},
		} {
			x, err := Student(pair[0]).MarshalCBOR()
			require.NoError(t, err)
			y, err := Student(pair[1]).MarshalCBOR()
			require.NoError(t, err)
			assert.NotEqual(t, x, y, "%s and %s", pair[0], pair[1])
		}

		x, err := Student(`{"id":12}`).MarshalCBOR()
		require.NoError(t, err)
		y, err := Student(`{"id":12.0}`).MarshalCBOR()
		require.NoError(t, err)
		assert.NotEqual(t, x, y)
	})
}
