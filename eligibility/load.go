// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package eligibility

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrBadDefault is returned for a default other than "allow" or "deny".
	ErrBadDefault = errors.New("invalid default")

	// ErrBadRule is returned for negative student indexes or bench numbers
	// below 1.
	ErrBadRule = errors.New("invalid rule")
)

// Rules is the on-disk form of a rule table:
//
//	default: allow
//	rules:
//	  - halls: [B]
//	    allow: false
//	  - students: [4, 9]
//	    halls: [B]
//	    benches: [1, 2]
//	    allow: true
type Rules struct {
	Default string `yaml:"default"`
	Rules   []Rule `yaml:"rules"`
}

func (r *Rules) Table() (Table, error) {
	var orig Table
	switch r.Default {
	case "", "allow":
		orig = Allow
	case "deny":
		orig = Deny
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadDefault, r.Default)
	}

	for i, rule := range r.Rules {
		for _, s := range rule.Students {
			if s < 0 {
				return nil, fmt.Errorf("%w: rule %d: student %d", ErrBadRule, i, s)
			}
		}
		for _, b := range rule.Benches {
			if b < 1 {
				return nil, fmt.Errorf("%w: rule %d: bench %d", ErrBadRule, i, b)
			}
		}
	}

	return NewRuleTable(orig, r.Rules), nil
}

func Parse(data []byte) (Table, error) {
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing eligibility rules: %w", err)
	}
	return rules.Table()
}

func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}
