// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seatmatch

import (
	"errors"
	"fmt"
)

var (
	// ErrShape is returned when a matching does not fit the graph's sides.
	ErrShape = errors.New("matching does not fit graph")

	// ErrNotInjective is returned when a vertex is used twice or the two
	// directions of a matching disagree.
	ErrNotInjective = errors.New("matching is not injective")

	// ErrNotEdge is returned when a matched pair is not an edge of the graph.
	ErrNotEdge = errors.New("matched pair is not an edge")

	// ErrNotMaximum is returned when an augmenting path still exists.
	ErrNotMaximum = errors.New("matching is not maximum")
)

// Verify checks that m is a valid matching of g and that no augmenting path
// is left, which proves it maximum.
func Verify(g *Graph, m *Matching) error {
	if len(m.LeftToRight) != g.Left || len(m.RightToLeft) != g.Right {
		return fmt.Errorf("%w: %dx%d matching for %dx%d graph", ErrShape,
			len(m.LeftToRight), len(m.RightToLeft), g.Left, g.Right)
	}

	size := 0
	for u, v := range m.LeftToRight {
		if v == Unmatched {
			continue
		}
		if v < 0 || v >= g.Right || m.RightToLeft[v] != u {
			return fmt.Errorf("%w: left %d -> right %d", ErrNotInjective, u, v)
		}
		if !g.HasEdge(u, v) {
			return fmt.Errorf("%w: left %d -> right %d", ErrNotEdge, u, v)
		}
		size++
	}
	for v, u := range m.RightToLeft {
		if u == Unmatched {
			continue
		}
		if u < 0 || u >= g.Left || m.LeftToRight[u] != v {
			return fmt.Errorf("%w: right %d -> left %d", ErrNotInjective, v, u)
		}
	}
	if size != m.Size {
		return fmt.Errorf("%w: size %d, %d pairs", ErrNotInjective, m.Size, size)
	}

	if u, v, ok := findAugmentingPath(g, m); ok {
		return fmt.Errorf("%w: left %d reaches free right %d", ErrNotMaximum, u, v)
	}
	return nil
}

// findAugmentingPath returns the endpoints of some augmenting path.
func findAugmentingPath(g *Graph, m *Matching) (from, to int, ok bool) {
	if g.Complete() {
		if m.Size >= minInt(g.Left, g.Right) {
			return 0, 0, false
		}
		for u, v := range m.LeftToRight {
			if v == Unmatched {
				from = u
				break
			}
		}
		for v, u := range m.RightToLeft {
			if u == Unmatched {
				to = v
				break
			}
		}
		return from, to, true
	}

	seen := make([]bool, g.Left)
	origin := make([]int, g.Left)
	queue := make([]int, 0, g.Left)
	for u, v := range m.LeftToRight {
		if v == Unmatched {
			seen[u] = true
			origin[u] = u
			queue = append(queue, u)
		}
	}

	for head := 0; head < len(queue); head++ {
		u := queue[head]
		for _, v := range g.Adj[u] {
			w := m.RightToLeft[v]
			if w == Unmatched {
				return origin[u], v, true
			}
			if !seen[w] {
				seen[w] = true
				origin[w] = origin[u]
				queue = append(queue, w)
			}
		}
	}
	return 0, 0, false
}
