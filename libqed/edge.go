package libqed

import (
	"iter"
	"math/bits"
)

// Edge connects two vertices.  For a fermion edge, flow runs from A to B.
type Edge struct {
	A VtxID
	B VtxID
}

// Flip returns the given edge with its endpoints swapped.
func Flip(e Edge) Edge {
	return Edge{A: e.B, B: e.A}
}

// IsSelfLoop returns true if both ends of this edge are the same vertex.
func (e Edge) IsSelfLoop() bool {
	return e.A == e.B
}

// Dir returns +1 if v is the first endpoint of e, -1 if v is the second, and 0 otherwise.
func (e Edge) Dir(v VtxID) int {
	switch v {
	case e.A:
		return 1
	case e.B:
		return -1
	}
	return 0
}

// Sorted returns e with A <= B.
func (e Edge) Sorted() Edge {
	if e.A > e.B {
		return Flip(e)
	}
	return e
}

// EdgeKind names the type of edge, and its value is the output weight of the edge.
type EdgeKind byte

const (
	SkeletonEdge EdgeKind = 0 // unlabeled phi^k edge
	Fermion      EdgeKind = 1 // matter line, directed
	Boson        EdgeKind = 2 // force carrier, undirected
)

// Weight returns the output weight of this edge kind (1 = fermion, 2 = boson).
func (k EdgeKind) Weight() int {
	return int(k)
}

// IsDirected returns true if edges of this kind carry a direction.
func (k EdgeKind) IsDirected() bool {
	return k == Fermion
}

// Op returns the graph expression operator for this kind.
func (k EdgeKind) Op() string {
	return [...]string{"-", "->", "~"}[k]
}

func (k EdgeKind) String() string {
	switch k {
	case SkeletonEdge:
		return "skeleton"
	case Fermion:
		return "fermion"
	case Boson:
		return "boson"
	}
	return "?"
}

// EdgeList is an ordered sequence of edges, indexed 0..Ne-1.
type EdgeList []Edge

// EdgeSet is a subset of a graph's edge indices (bit e set means edge e is present).
type EdgeSet uint64

// FullEdgeSet returns the set {0, 1, .., Ne-1}.
func FullEdgeSet(Ne int) EdgeSet {
	if Ne >= 64 {
		return ^EdgeSet(0)
	}
	return EdgeSet(1)<<Ne - 1
}

func (s EdgeSet) Has(e int) bool {
	return s&(1<<e) != 0
}

func (s EdgeSet) With(e int) EdgeSet {
	return s | (1 << e)
}

func (s EdgeSet) Without(e int) EdgeSet {
	return s &^ (1 << e)
}

// Len returns the number of edges in this set.
func (s EdgeSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

// All iterates over the edge indices in this set in ascending order.
func (s EdgeSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for rest := uint64(s); rest != 0; rest &= rest - 1 {
			if !yield(bits.TrailingZeros64(rest)) {
				return
			}
		}
	}
}

// Indices returns the edge indices in this set in ascending order.
func (s EdgeSet) Indices() []int {
	idx := make([]int, 0, s.Len())
	for e := range s.All() {
		idx = append(idx, e)
	}
	return idx
}
