package libqed

import (
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
)

// Graph is an immutable multigraph whose vertices are external legs or internal vertices and whose edges are
// skeleton, fermion, or boson lines.
//
// A Graph is both the skeleton consumed by the QED search and the weighted QED graph it produces.
type Graph struct {
	vtx   VtxList
	edges EdgeList
	kinds []EdgeKind
	inc   []EdgeSet // incident edges, by VtxID
	loops EdgeSet   // self-loop edges
	key   []byte    // canonic key; non-nil only for graphs returned from Canonize()
}

// NewGraph returns a graph with the given vertices and edges.
//
// If kinds is nil, all edges are SkeletonEdge edges.  The given slices are copied.
func NewGraph(vtx VtxList, edges EdgeList, kinds []EdgeKind) (*Graph, error) {
	Nv := len(vtx)
	Ne := len(edges)
	if err := validVtxCount(Nv); err != nil {
		return nil, errors.Wrapf(err, "%d vertices exceeds %d", Nv, qedgen.MaxVtxCount)
	}
	if Ne > qedgen.MaxEdges {
		return nil, errors.Wrapf(qedgen.ErrTooManyEdges, "%d edges exceeds %d", Ne, qedgen.MaxEdges)
	}
	if kinds != nil && len(kinds) != Ne {
		return nil, errors.Wrapf(qedgen.ErrBadEdge, "%d edges but %d edge kinds", Ne, len(kinds))
	}

	X := &Graph{
		vtx:   append(VtxList(nil), vtx...),
		edges: append(EdgeList(nil), edges...),
		kinds: make([]EdgeKind, Ne),
		inc:   make([]EdgeSet, Nv),
	}
	copy(X.kinds, kinds)

	for _, v := range X.vtx {
		if v != External && v != Internal {
			return nil, errors.Wrapf(qedgen.ErrBadVtxID, "unknown vertex kind %d", v)
		}
	}
	for e, edge := range X.edges {
		if int(edge.A) >= Nv || int(edge.B) >= Nv {
			return nil, errors.Wrapf(qedgen.ErrBadVtxID, "edge %d (%d, %d) in a graph with %d vertices", e, edge.A, edge.B, Nv)
		}
		if X.kinds[e] > Boson {
			return nil, errors.Wrapf(qedgen.ErrBadEdgeKind, "edge %d has kind %d", e, X.kinds[e])
		}
		X.inc[edge.A] = X.inc[edge.A].With(e)
		X.inc[edge.B] = X.inc[edge.B].With(e)
		if edge.IsSelfLoop() {
			X.loops = X.loops.With(e)
		}
	}

	return X, nil
}

// MustNewGraph is NewGraph but panics on error.
func MustNewGraph(vtx VtxList, edges EdgeList, kinds []EdgeKind) *Graph {
	X, err := NewGraph(vtx, edges, kinds)
	if err != nil {
		panic(err)
	}
	return X
}

// VertexCount returns the number of vertices.
func (X *Graph) VertexCount() int {
	return len(X.vtx)
}

// EdgeCount returns the number of edges.
func (X *Graph) EdgeCount() int {
	return len(X.edges)
}

// Vtx returns the kind of each vertex.  The caller must not modify the returned slice.
func (X *Graph) Vtx() VtxList {
	return X.vtx
}

// Edges returns the edge list in stored endpoint order.  The caller must not modify the returned slice.
func (X *Graph) Edges() []Edge {
	return X.edges
}

// Kinds returns the kind of each edge.  The caller must not modify the returned slice.
func (X *Graph) Kinds() []EdgeKind {
	return X.kinds
}

// Weights returns the output weight of each edge (1 = fermion, 2 = boson, 0 = skeleton).
func (X *Graph) Weights() []int {
	w := make([]int, len(X.kinds))
	for i, k := range X.kinds {
		w[i] = k.Weight()
	}
	return w
}

func (X *Graph) VtxKind(v VtxID) VtxKind {
	return X.vtx[v]
}

func (X *Graph) EdgeKind(e int) EdgeKind {
	return X.kinds[e]
}

// ExternalVtx returns the external vertices in ascending order.
func (X *Graph) ExternalVtx() []VtxID {
	return X.vtxOfKind(External)
}

// InternalVtx returns the internal vertices in ascending order.
func (X *Graph) InternalVtx() []VtxID {
	return X.vtxOfKind(Internal)
}

func (X *Graph) vtxOfKind(kind VtxKind) []VtxID {
	out := make([]VtxID, 0, len(X.vtx))
	for i, vi := range X.vtx {
		if vi == kind {
			out = append(out, VtxID(i))
		}
	}
	return out
}

// IsSelfLoop returns true if edge e starts and ends at the same vertex.
func (X *Graph) IsSelfLoop(e int) bool {
	return X.loops.Has(e)
}

// SelfLoops returns the set of self-loop edges.
func (X *Graph) SelfLoops() EdgeSet {
	return X.loops
}

// AllEdges returns the set of all edge indices.
func (X *Graph) AllEdges() EdgeSet {
	return FullEdgeSet(len(X.edges))
}

// IncidentEdges returns the edges in subset that have v as an endpoint.
func (X *Graph) IncidentEdges(v VtxID, subset EdgeSet) EdgeSet {
	return X.inc[v] & subset
}

// EdgesOfKind returns the set of edges of the given kind.
func (X *Graph) EdgesOfKind(kind EdgeKind) EdgeSet {
	var s EdgeSet
	for e, k := range X.kinds {
		if k == kind {
			s = s.With(e)
		}
	}
	return s
}

// Degree returns the number of edge ends at v (a self-loop counts twice).
func (X *Graph) Degree(v VtxID) int {
	return X.inc[v].Len() + (X.inc[v] & X.loops).Len()
}

// Valence returns the number of edge ends of the given kind at v (a self-loop counts twice).
func (X *Graph) Valence(v VtxID, kind EdgeKind) int {
	adj := X.inc[v] & X.EdgesOfKind(kind)
	return adj.Len() + (adj & X.loops).Len()
}

// NetFlow returns the signed sum of fermion directions at v: +1 for each fermion edge leaving v and -1 for each
// one entering it.  Fermion self-loops contribute nothing.
func (X *Graph) NetFlow(v VtxID) int {
	flow := 0
	adj := X.inc[v] & X.EdgesOfKind(Fermion) &^ X.loops
	for e := range adj.All() {
		flow += X.edges[e].Dir(v)
	}
	return flow
}

// LegCounts returns the number of fermion and boson edge ends at external vertices.
func (X *Graph) LegCounts() (fermions, bosons int) {
	for _, v := range X.ExternalVtx() {
		for e := range X.inc[v].All() {
			switch X.kinds[e] {
			case Fermion:
				fermions++
			case Boson:
				bosons++
			}
		}
	}
	return
}

// Components returns a component number for each vertex and the number of components.
func (X *Graph) Components() (comp []int, count int) {
	return X.ComponentsWithout(-1, -1)
}

// ComponentsWithout is Components with the given edge removed, and the given vertex and its edges removed.
// Pass -1 to keep all edges or all vertices.  A removed vertex gets component -1.
func (X *Graph) ComponentsWithout(skipEdge int, skipVtx int) (comp []int, count int) {
	Nv := len(X.vtx)
	parent := make([]int, Nv)
	for i := range parent {
		parent[i] = i
	}
	var find func(i int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for e, edge := range X.edges {
		if e == skipEdge || int(edge.A) == skipVtx || int(edge.B) == skipVtx {
			continue
		}
		ra, rb := find(int(edge.A)), find(int(edge.B))
		if ra != rb {
			parent[rb] = ra
		}
	}

	comp = make([]int, Nv)
	ids := make(map[int]int, Nv)
	for v := range comp {
		if v == skipVtx {
			comp[v] = -1
			continue
		}
		r := find(v)
		id, exists := ids[r]
		if !exists {
			id = len(ids)
			ids[r] = id
		}
		comp[v] = id
	}
	return comp, len(ids)
}

// InternalSubgraph returns the graph induced by X's internal vertices (renumbered in order) and the edges joining them.
func (X *Graph) InternalSubgraph() *Graph {
	newID := make([]VtxID, len(X.vtx))
	Ni := 0
	for v, kind := range X.vtx {
		if kind == Internal {
			newID[v] = VtxID(Ni)
			Ni++
		}
	}
	var edges EdgeList
	var kinds []EdgeKind
	for e, edge := range X.edges {
		if X.vtx[edge.A] == Internal && X.vtx[edge.B] == Internal {
			edges = append(edges, Edge{A: newID[edge.A], B: newID[edge.B]})
			kinds = append(kinds, X.kinds[e])
		}
	}
	return MustNewGraph(NewVtxList(0, Ni), edges, kinds)
}

// LoopNumber returns the number of independent cycles: edges - vertices + components.
func (X *Graph) LoopNumber() int {
	_, Nc := X.Components()
	return len(X.edges) - len(X.vtx) + Nc
}

// Equal returns true if X and Y have the same vertex kinds and the same edges in the same order.
//
// Isomorphic graphs are Equal once both are canonized.
func (X *Graph) Equal(Y *Graph) bool {
	if len(X.vtx) != len(Y.vtx) || len(X.edges) != len(Y.edges) {
		return false
	}
	for i := range X.vtx {
		if X.vtx[i] != Y.vtx[i] {
			return false
		}
	}
	for i := range X.edges {
		if X.edges[i] != Y.edges[i] || X.kinds[i] != Y.kinds[i] {
			return false
		}
	}
	return true
}

// IsQED returns true if every edge is a fermion or boson edge.
func (X *Graph) IsQED() bool {
	for _, k := range X.kinds {
		if k == SkeletonEdge {
			return false
		}
	}
	return true
}

// GetInfo returns info about this graph
func (X *Graph) GetInfo() qedgen.GraphInfo {
	_, Nc := X.Components()
	fermions, bosons := X.LegCounts()
	return qedgen.GraphInfo{
		NumVerts:     byte(len(X.vtx)),
		NumExternal:  byte(X.vtx.Count(External)),
		NumEdges:     byte(len(X.edges)),
		FermionEdges: byte(X.EdgesOfKind(Fermion).Len()),
		BosonEdges:   byte(X.EdgesOfKind(Boson).Len()),
		SelfLoops:    byte(X.loops.Len()),
		Loops:        byte(len(X.edges) - len(X.vtx) + Nc),
		Components:   byte(Nc),
		FermionLegs:  byte(fermions),
		BosonLegs:    byte(bosons),
	}
}

// ValidateQED checks the rules every generated QED graph obeys: at each internal vertex one boson end, two fermion
// ends, and zero net fermion flow; and the given number of external fermion and boson legs.
func (X *Graph) ValidateQED(fermionLegs, bosonLegs int) error {
	if !X.IsQED() {
		return errors.Wrap(qedgen.ErrViolatesQED, "graph has unlabeled edges")
	}
	for _, v := range X.InternalVtx() {
		if val := X.Valence(v, Boson); val != 1 {
			return errors.Wrapf(qedgen.ErrViolatesQED, "vertex %d has boson valence %d", v, val)
		}
		if val := X.Valence(v, Fermion); val != 2 {
			return errors.Wrapf(qedgen.ErrViolatesQED, "vertex %d has fermion valence %d", v, val)
		}
		if flow := X.NetFlow(v); flow != 0 {
			return errors.Wrapf(qedgen.ErrViolatesQED, "vertex %d has net fermion flow %d", v, flow)
		}
	}
	fermions, bosons := X.LegCounts()
	if fermions != fermionLegs || bosons != bosonLegs {
		return errors.Wrapf(qedgen.ErrViolatesQED, "graph has %d fermion and %d boson legs, expected %d and %d", fermions, bosons, fermionLegs, bosonLegs)
	}
	return nil
}
