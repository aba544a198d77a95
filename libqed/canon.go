package libqed

import (
	"bytes"
	"slices"
	"sort"
)

// Canonize returns the canonical representative of X's isomorphism class.
//
// Two graphs are isomorphic (a vertex relabeling that maps external to external, internal to internal, and each
// edge to an edge of the same kind, keeping fermion direction) iff their canonical forms are Equal.
// External vertices are labeled before internal ones and edges are sorted.
// Canonizing a canonical graph returns it unchanged.
func (X *Graph) Canonize() *Graph {
	if X.key != nil {
		return X
	}

	cz := canonizer{
		X:  X,
		rf: newRefiner(X),
	}

	color := make([]int, len(X.vtx))
	for v, kind := range X.vtx {
		color[v] = int(kind)
	}
	cz.search(cz.rf.refine(color), nil)

	return cz.exportBest()
}

// CanonicKey returns a byte encoding of X's canonical form.
//
// Two graphs have equal keys iff they are isomorphic.  The caller must not modify the returned slice.
func (X *Graph) CanonicKey() []byte {
	return X.Canonize().key
}

// IsCanonic returns true if X was returned from Canonize().
func (X *Graph) IsCanonic() bool {
	return X.key != nil
}

type edgeTriple [3]byte // A, B, EdgeKind

type canonizer struct {
	X        *Graph
	rf       *refiner
	triples  []edgeTriple
	leaf     []byte
	best     []byte  // best (least) leaf edge encoding so far
	bestPerm []int   // labeling that produced best
	autos    [][]int // automorphisms found so far, as VtxID maps
}

// search walks the individualize-refine tree below color, where fixed lists the vertices individualized so far.
//
// Children whose vertex shares an orbit with an earlier sibling under the automorphisms fixing each vertex in
// fixed are skipped: their subtrees yield the same leaf encodings.
func (cz *canonizer) search(color []int, fixed []int) {
	target := targetCell(color)
	if target < 0 {
		cz.visitLeaf(color)
		return
	}

	var tried []int
	for v, c := range color {
		if c != target {
			continue
		}
		if len(tried) > 0 {
			orbit := cz.orbits(fixed)
			if slices.ContainsFunc(tried, func(u int) bool { return orbit[u] == orbit[v] }) {
				continue
			}
		}
		tried = append(tried, v)
		cz.search(cz.rf.refine(individualize(color, v)), append(fixed[:len(fixed):len(fixed)], v))
	}
}

// orbits returns an orbit id for each vertex under the found automorphisms that fix every vertex in fixed.
func (cz *canonizer) orbits(fixed []int) []int {
	Nv := len(cz.X.vtx)
	orbit := make([]int, Nv)
	for v := range orbit {
		orbit[v] = v
	}
	find := func(v int) int {
		for orbit[v] != v {
			orbit[v] = orbit[orbit[v]]
			v = orbit[v]
		}
		return v
	}

	for _, gamma := range cz.autos {
		if slices.ContainsFunc(fixed, func(v int) bool { return gamma[v] != v }) {
			continue
		}
		for v, w := range gamma {
			if rv, rw := find(v), find(w); rv != rw {
				orbit[rw] = rv
			}
		}
	}
	for v := range orbit {
		orbit[v] = find(v)
	}
	return orbit
}

func (cz *canonizer) visitLeaf(perm []int) {
	cz.triples = cz.triples[:0]
	for e, edge := range cz.X.edges {
		kind := cz.X.kinds[e]
		a, b := byte(perm[edge.A]), byte(perm[edge.B])
		if !kind.IsDirected() && a > b {
			a, b = b, a
		}
		cz.triples = append(cz.triples, edgeTriple{a, b, byte(kind)})
	}
	sort.Slice(cz.triples, func(i, j int) bool {
		return bytes.Compare(cz.triples[i][:], cz.triples[j][:]) < 0
	})

	cz.leaf = cz.leaf[:0]
	for _, t := range cz.triples {
		cz.leaf = append(cz.leaf, t[:]...)
	}
	switch {
	case cz.best == nil || bytes.Compare(cz.leaf, cz.best) < 0:
		cz.best = append(cz.best[:0], cz.leaf...)
		cz.bestPerm = append(cz.bestPerm[:0], perm...)
	case bytes.Equal(cz.leaf, cz.best):
		// Both labelings give the same graph, so v -> perm^-1(bestPerm(v)) is an automorphism.
		inv := make([]int, len(perm))
		for v, label := range perm {
			inv[label] = v
		}
		gamma := make([]int, len(perm))
		for v, label := range cz.bestPerm {
			gamma[v] = inv[label]
		}
		cz.autos = append(cz.autos, gamma)
	}
}

func (cz *canonizer) exportBest() *Graph {
	X := cz.X
	Nv := len(X.vtx)
	Ne := len(X.edges)

	// Vertex colors start as VtxKind so every leaf puts externals first.
	Nx := X.vtx.Count(External)
	Xc := &Graph{
		vtx:   NewVtxList(Nx, Nv-Nx),
		edges: make(EdgeList, Ne),
		kinds: make([]EdgeKind, Ne),
		inc:   make([]EdgeSet, Nv),
	}
	for e := 0; e < Ne; e++ {
		t := cz.best[3*e:]
		edge := Edge{A: VtxID(t[0]), B: VtxID(t[1])}
		Xc.edges[e] = edge
		Xc.kinds[e] = EdgeKind(t[2])
		Xc.inc[edge.A] = Xc.inc[edge.A].With(e)
		Xc.inc[edge.B] = Xc.inc[edge.B].With(e)
		if edge.IsSelfLoop() {
			Xc.loops = Xc.loops.With(e)
		}
	}
	Xc.key = Xc.AppendEncoding(make([]byte, 0, 2+Nv+3*Ne))
	return Xc
}
