// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eligibility

// Rule allows or denies a set of (student, bench) pairs. An empty list
// matches everything on its axis; Benches are bench numbers within the
// matched halls.
type Rule struct {
	Students []int    `yaml:"students,omitempty"`
	Halls    []string `yaml:"halls,omitempty"`
	Benches  []int    `yaml:"benches,omitempty"`
	Allow    bool     `yaml:"allow"`
}

type ruleSet struct {
	students map[int]struct{}
	halls    map[string]struct{}
	benches  map[int]struct{}
	allow    bool
}

func (r *ruleSet) match(student int, bench Bench) bool {
	if r.students != nil {
		if _, ok := r.students[student]; !ok {
			return false
		}
	}
	if r.halls != nil {
		if _, ok := r.halls[bench.Hall]; !ok {
			return false
		}
	}
	if r.benches != nil {
		if _, ok := r.benches[bench.Number]; !ok {
			return false
		}
	}
	return true
}

type ruleTable struct {
	orig       Table
	rules      []ruleSet
	maxStudent int
}

// NewRuleTable returns a table where later rules override earlier ones and
// orig decides the pairs no rule matches. A nil orig allows them.
func NewRuleTable(orig Table, rules []Rule) Table {
	if orig == nil {
		orig = Allow
	}
	t := &ruleTable{
		orig:       orig,
		rules:      make([]ruleSet, len(rules)),
		maxStudent: -1,
	}
	for i, rule := range rules {
		rs := &t.rules[i]
		rs.allow = rule.Allow
		if len(rule.Students) > 0 {
			rs.students = make(map[int]struct{}, len(rule.Students))
			for _, s := range rule.Students {
				rs.students[s] = struct{}{}
				if s > t.maxStudent {
					t.maxStudent = s
				}
			}
		}
		if len(rule.Halls) > 0 {
			rs.halls = make(map[string]struct{}, len(rule.Halls))
			for _, h := range rule.Halls {
				rs.halls[h] = struct{}{}
			}
		}
		if len(rule.Benches) > 0 {
			rs.benches = make(map[int]struct{}, len(rule.Benches))
			for _, b := range rule.Benches {
				rs.benches[b] = struct{}{}
			}
		}
	}
	return t
}

func (t *ruleTable) Eligible(student int, bench Bench) bool {
	for i := len(t.rules) - 1; i >= 0; i-- {
		if t.rules[i].match(student, bench) {
			return t.rules[i].allow
		}
	}
	return t.orig.Eligible(student, bench)
}

func (t *ruleTable) MaxStudent() int {
	max := t.maxStudent
	if b, ok := t.orig.(Bounded); ok {
		if m := b.MaxStudent(); m > max {
			max = m
		}
	}
	return max
}
