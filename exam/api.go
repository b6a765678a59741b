// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exam uses seatmatch to seat students on the benches of exam halls.
package exam

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/someonegg/seatmatch/eligibility"
)

var (
	// ErrInvalidInput is returned for structurally invalid rosters or hall
	// layouts, before any matching work is done.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

const (
	AlgorithmHopcroftKarp = "hopcroft-karp"
	AlgorithmGreedy       = "greedy"
)

// Student is an opaque student record, kept as the JSON it was read from.
type Student []byte

func (s Student) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return s, nil
}

func (s *Student) UnmarshalJSON(data []byte) error {
	*s = append((*s)[0:0], data...)
	return nil
}

// HallID is an opaque hall identifier. JSON strings and numbers are both
// accepted and written back the way they were read.
type HallID struct {
	text    string
	numeric bool
}

func NewHallID(text string) HallID {
	return HallID{text: text}
}

func (h HallID) String() string {
	return h.text
}

func (h HallID) IsZero() bool {
	return h.text == ""
}

func (h HallID) MarshalJSON() ([]byte, error) {
	if h.numeric {
		return []byte(h.text), nil
	}
	return json.Marshal(h.text)
}

func (h *HallID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*h = HallID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*h = HallID{text: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("hall_id must be a string or a number, got %s", data)
	}
	*h = HallID{text: n.String(), numeric: true}
	return nil
}

type Hall struct {
	ID      HallID `json:"hall_id"`
	Benches int    `json:"benches"`
}

// Bench is one position of the flattened bench sequence.
type Bench struct {
	Hall   HallID
	Number int // 1-based within the hall
	Seat   int // 1-based across all halls
}

func (b Bench) key() eligibility.Bench {
	return eligibility.Bench{Hall: b.Hall.String(), Number: b.Number}
}

// Seat is one output record: a bench and the student sitting on it.
type Seat struct {
	Hall    HallID  `json:"hall_id"`
	Bench   int     `json:"bench"`
	Seat    int     `json:"seat"`
	Student Student `json:"student"`
}

type Assigner struct {
	// Algorithm is AlgorithmHopcroftKarp (the default when empty) or
	// AlgorithmGreedy.
	Algorithm string

	// WarmStart seeds Hopcroft-Karp with a greedy matching.
	WarmStart bool

	// When set, the matching is checked to be valid and maximum before it
	// is mapped to seats.
	Verify bool

	// Eligibility restricts the benches each student may take. Nil lets
	// every student sit anywhere.
	Eligibility eligibility.Table

	Metrics *Metrics // can be nil
	Logger  logrus.FieldLogger
}

type Summary struct {
	Students           int    `json:"students"`
	Halls              int    `json:"halls"`
	Benches            int    `json:"benches"`
	Matched            int    `json:"matched"`
	UnassignedStudents int    `json:"unassigned_students"`
	FreeBenches        int    `json:"free_benches"`
	Phases             int    `json:"phases"`
	Augmentations      int    `json:"augmentations"`
	Algorithm          string `json:"algorithm"`
	FastPath           bool   `json:"fast_path"`
	Digest             string `json:"digest"`
}
