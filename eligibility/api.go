// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package eligibility restricts which benches a student may be seated on.
package eligibility

type Bench struct {
	Hall   string
	Number int // 1-based within the hall
}

type Table interface {
	Eligible(student int, bench Bench) bool
}

// Bounded is implemented by tables that refer to students by index, so the
// caller can reject references beyond the roster.
type Bounded interface {
	MaxStudent() int // -1 when no student is named
}

type constTable bool

func (c constTable) Eligible(student int, bench Bench) bool {
	return bool(c)
}

var (
	Allow Table = constTable(true)
	Deny  Table = constTable(false)
)
