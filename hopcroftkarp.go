// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seatmatch

import (
	"math"

	"github.com/sirupsen/logrus"
)

const infinity = math.MaxInt32

type hopcroftKarpMatcher struct {
	warmStart bool
	logger    logrus.FieldLogger
}

// HopcroftKarpMatcher returns a matcher computing a maximum matching in
// O(E·sqrt(V)). Free students are searched in ascending order and their
// neighbors in ascending order, so the same graph always yields the same
// matching.
//
// With warmStart the search starts from GreedyMatcher's matching instead of
// the empty one. A complete graph is always answered directly with student i
// on bench i. The logger may be nil.
func HopcroftKarpMatcher(warmStart bool, logger logrus.FieldLogger) Matcher {
	return hopcroftKarpMatcher{warmStart, logger}
}

// hkSearch holds the per-run state. dist is the BFS layer of every left
// vertex, bound the layer at which the phase's shortest augmenting paths end,
// next the per-vertex edge cursor used by the DFS.
type hkSearch struct {
	g     *Graph
	m     *Matching
	dist  []int
	next  []int
	queue []int
	bound int
}

func (h hopcroftKarpMatcher) Match(g *Graph) (m *Matching, stats Stats) {
	m = newMatching(g.Left, g.Right)

	if g.Complete() {
		greedyFill(g, m)
		stats.FastPath = true
		if h.logger != nil {
			h.logger.WithFields(logrus.Fields{
				"left": g.Left, "right": g.Right, "size": m.Size,
			}).Debug("complete graph, direct assignment")
		}
		return
	}

	if h.warmStart {
		greedyFill(g, m)
		stats.WarmStart = true
		if h.logger != nil {
			h.logger.WithField("size", m.Size).Debug("greedy warm start")
		}
	}

	s := &hkSearch{
		g:     g,
		m:     m,
		dist:  make([]int, g.Left),
		next:  make([]int, g.Left),
		queue: make([]int, 0, g.Left),
	}

	for s.layer() {
		for u := range s.next {
			s.next[u] = 0
		}

		augmented := 0
		for u := 0; u < g.Left; u++ {
			if m.LeftToRight[u] == Unmatched && s.augment(u) {
				augmented++
			}
		}
		m.Size += augmented

		stats.Phases++
		stats.Augmentations += augmented

		if h.logger != nil {
			h.logger.WithFields(logrus.Fields{
				"phase":     stats.Phases,
				"bound":     s.bound,
				"augmented": augmented,
				"size":      m.Size,
			}).Debug("phase done")
		}

		if augmented == 0 {
			break
		}
	}

	return
}

// layer runs the BFS from every free left vertex and reports whether some
// free right vertex is reachable along an alternating path.
func (s *hkSearch) layer() bool {
	s.queue = s.queue[:0]
	for u := 0; u < s.g.Left; u++ {
		if s.m.LeftToRight[u] == Unmatched {
			s.dist[u] = 0
			s.queue = append(s.queue, u)
		} else {
			s.dist[u] = infinity
		}
	}

	s.bound = infinity
	for head := 0; head < len(s.queue); head++ {
		u := s.queue[head]
		if s.dist[u] >= s.bound {
			break
		}
		for k, n := 0, s.g.degree(u); k < n; k++ {
			v := s.g.neighbor(u, k)
			w := s.m.RightToLeft[v]
			if w == Unmatched {
				if s.bound == infinity {
					s.bound = s.dist[u] + 1
				}
			} else if s.dist[w] == infinity {
				s.dist[w] = s.dist[u] + 1
				s.queue = append(s.queue, w)
			}
		}
	}

	return s.bound != infinity
}

// augment searches a layered augmenting path starting at u and flips it.
// A vertex that fails is dropped from the layering until the next phase.
func (s *hkSearch) augment(u int) bool {
	for n := s.g.degree(u); s.next[u] < n; s.next[u]++ {
		v := s.g.neighbor(u, s.next[u])
		w := s.m.RightToLeft[v]
		if w == Unmatched {
			if s.dist[u]+1 != s.bound {
				continue
			}
		} else if s.dist[w] != s.dist[u]+1 || !s.augment(w) {
			continue
		}
		s.m.match(u, v)
		return true
	}
	s.dist[u] = infinity
	return false
}
