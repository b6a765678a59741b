// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package seatmatch

type greedyMatcher struct{}

// GreedyMatcher returns a first-fit matcher: students are visited in
// ascending order and each one takes the lowest free neighbor. The result is
// maximal but not necessarily maximum.
func GreedyMatcher() Matcher {
	return greedyMatcher{}
}

func (greedyMatcher) Match(g *Graph) (m *Matching, stats Stats) {
	m = newMatching(g.Left, g.Right)
	greedyFill(g, m)
	return m, stats
}

func greedyFill(g *Graph, m *Matching) {
	if g.Complete() {
		n := minInt(g.Left, g.Right)
		for i := 0; i < n; i++ {
			m.match(i, i)
		}
		m.Size = n
		return
	}

	for u := 0; u < g.Left; u++ {
		if m.LeftToRight[u] != Unmatched {
			continue
		}
		for _, v := range g.Adj[u] {
			if m.RightToLeft[v] == Unmatched {
				m.match(u, v)
				m.Size++
				break
			}
		}
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
