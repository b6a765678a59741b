// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seatmatch provides maximum-cardinality bipartite matching for
// assigning students (left side) to benches (right side).
package seatmatch

// Unmatched marks a vertex without a partner in a Matching.
const Unmatched = -1

type Matcher interface {
	Match(g *Graph) (m *Matching, stats Stats)
}

// Graph is a bipartite graph with left vertices 0..Left-1 and right vertices
// 0..Right-1. A nil Adj means every left vertex is adjacent to every right
// vertex; otherwise Adj[u] lists the neighbors of u in ascending order.
type Graph struct {
	Left  int
	Right int
	Adj   [][]int
}

func CompleteGraph(left, right int) *Graph {
	return &Graph{Left: left, Right: right}
}

func (g *Graph) Complete() bool {
	return g.Adj == nil
}

func (g *Graph) degree(u int) int {
	if g.Adj == nil {
		return g.Right
	}
	return len(g.Adj[u])
}

func (g *Graph) neighbor(u, k int) int {
	if g.Adj == nil {
		return k
	}
	return g.Adj[u][k]
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.Left || v < 0 || v >= g.Right {
		return false
	}
	if g.Adj == nil {
		return true
	}
	adj := g.Adj[u]
	lo, hi := 0, len(adj)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if adj[mid] < v {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(adj) && adj[lo] == v
}

type Matching struct {
	LeftToRight []int
	RightToLeft []int
	Size        int
}

// NewMatching returns an empty matching for a graph with the given sides.
func NewMatching(left, right int) *Matching {
	return newMatching(left, right)
}

func newMatching(left, right int) *Matching {
	m := &Matching{
		LeftToRight: make([]int, left),
		RightToLeft: make([]int, right),
	}
	for i := range m.LeftToRight {
		m.LeftToRight[i] = Unmatched
	}
	for i := range m.RightToLeft {
		m.RightToLeft[i] = Unmatched
	}
	return m
}

func (m *Matching) match(u, v int) {
	m.LeftToRight[u] = v
	m.RightToLeft[v] = u
}

// Add records the pair u-v. Both must be unmatched.
func (m *Matching) Add(u, v int) {
	m.match(u, v)
	m.Size++
}

type Pair struct {
	Left  int
	Right int
}

// Pairs returns the matched pairs ordered by ascending right vertex.
func (m *Matching) Pairs() []Pair {
	pairs := make([]Pair, 0, m.Size)
	for v, u := range m.RightToLeft {
		if u != Unmatched {
			pairs = append(pairs, Pair{Left: u, Right: v})
		}
	}
	return pairs
}

type Stats struct {
	Phases        int
	Augmentations int
	FastPath      bool
	WarmStart     bool
}
