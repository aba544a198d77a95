package libqed

import (
	"slices"
	"sort"
)

// Incidence codes, as seen from the vertex owning a half edge.
const (
	incUndirected = 0 // skeleton
	incFermionOut = 1 // fermion leaving the vertex
	incFermionIn  = 2 // fermion entering the vertex
	incBoson      = 3
	incSelfLoop   = 8 // + EdgeKind
)

// halfEdge is one end of an edge, packed as (incidence code << 8 | neighbor).
type halfEdge = int

// refiner partitions vertices into cells of equal color, splitting cells until every vertex in a cell sees
// the same multiset of (incidence code, neighbor color) pairs.
type refiner struct {
	adj   [][]halfEdge // neighbor VtxIDs (not colors) by VtxID
	sigs  [][]int      // scratch signatures by VtxID
	order []int        // scratch vertex order
}

func newRefiner(X *Graph) *refiner {
	Nv := len(X.vtx)
	rf := &refiner{
		adj:   make([][]halfEdge, Nv),
		sigs:  make([][]int, Nv),
		order: make([]int, Nv),
	}
	for e, edge := range X.edges {
		a, b := int(edge.A), int(edge.B)
		kind := X.kinds[e]
		if a == b {
			rf.adj[a] = append(rf.adj[a], (incSelfLoop+int(kind))<<8|a)
			continue
		}
		codeA, codeB := incUndirected, incUndirected
		switch kind {
		case Fermion:
			codeA, codeB = incFermionOut, incFermionIn
		case Boson:
			codeA, codeB = incBoson, incBoson
		}
		rf.adj[a] = append(rf.adj[a], codeA<<8|b)
		rf.adj[b] = append(rf.adj[b], codeB<<8|a)
	}
	return rf
}

// refine returns the coarsest equitable coloring finer than the given one.
//
// Colors of the result are dense (0..k-1) and keep the relative order of the input colors.
func (rf *refiner) refine(color []int) []int {
	Nv := len(color)
	if Nv == 0 {
		return color
	}
	numCells := countCells(color)

	for {
		for v := 0; v < Nv; v++ {
			sig := append(rf.sigs[v][:0], color[v])
			start := len(sig)
			for _, he := range rf.adj[v] {
				code, to := he>>8, he&0xFF
				sig = append(sig, code<<8|color[to])
			}
			sort.Ints(sig[start:])
			rf.sigs[v] = sig
			rf.order[v] = v
		}

		sort.Slice(rf.order, func(i, j int) bool {
			return slices.Compare(rf.sigs[rf.order[i]], rf.sigs[rf.order[j]]) < 0
		})

		next := make([]int, Nv)
		rank := 0
		for i, v := range rf.order {
			if i > 0 && slices.Compare(rf.sigs[rf.order[i-1]], rf.sigs[v]) != 0 {
				rank++
			}
			next[v] = rank
		}
		color = next

		if rank+1 == numCells {
			return color
		}
		numCells = rank + 1
	}
}

// individualize returns a copy of color where v is placed in its own cell just before the rest of its cell.
func individualize(color []int, v int) []int {
	next := make([]int, len(color))
	for u, c := range color {
		next[u] = 2*c + 1
	}
	next[v] = 2 * color[v]
	return next
}

// targetCell returns the lowest color shared by two or more vertices, or -1 if the coloring is discrete.
func targetCell(color []int) int {
	counts := make([]int, len(color))
	for _, c := range color {
		counts[c]++
	}
	for c, n := range counts {
		if n > 1 {
			return c
		}
	}
	return -1
}

func countCells(color []int) int {
	seen := make(map[int]struct{}, len(color))
	for _, c := range color {
		seen[c] = struct{}{}
	}
	return len(seen)
}
