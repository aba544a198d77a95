package libqed

import (
	"iter"

	"github.com/fine-structures/qedgen/qedgen"
)

// vtxFlow holds the fermions leaving and entering an internal vertex, as bits over the oriented fermion list.
type vtxFlow struct {
	out uint64
	in  uint64
}

// ResolveFermionFlow yields a QED graph for each orientation of lab's fermion edges that conserves fermion flow
// at every internal vertex.
//
// An orientation gives each fermion edge a sign: +1 keeps its stored direction and -1 reverses it (see Flip).
// At each internal vertex, the signed sum of sign(e) * dir(e, v) must be zero, where dir is +1 if v is the
// first stored endpoint of e and -1 otherwise.  Fermion self-loops contribute nothing to any sum and keep
// their stored direction.  Boson edges are unchanged.
func ResolveFermionFlow(sk Skeleton, lab Labeling) iter.Seq[*Graph] {
	return resolveFermionFlow(sk, lab, nil)
}

func resolveFermionFlow(sk Skeleton, lab Labeling, metrics *qedgen.Metrics) iter.Seq[*Graph] {
	return func(yield func(*Graph) bool) {
		edges := sk.Edges()

		var oriented []int // fermion edges that are not self-loops
		for e := range lab.Fermions.All() {
			if !sk.IsSelfLoop(e) {
				oriented = append(oriented, e)
			}
		}

		internal := sk.InternalVtx()
		flows := make([]vtxFlow, len(internal))
		for i, v := range internal {
			for bit, e := range oriented {
				switch edges[e].Dir(v) {
				case 1:
					flows[i].out |= 1 << bit
				case -1:
					flows[i].in |= 1 << bit
				}
			}
		}

		vtx, dense := skeletonLayout(sk)
		Nf := len(oriented)

		// A set bit in neg means that fermion has sign -1.
		for neg := uint64(0); neg < 1<<Nf; neg++ {
			if !metrics.ObserveIf(qedgen.StageFlow, conservesFlow(flows, neg)) {
				continue
			}

			flipped := make(EdgeList, len(dense))
			copy(flipped, dense)
			for bit, e := range oriented {
				if neg&(1<<bit) != 0 {
					flipped[e] = Flip(flipped[e])
				}
			}
			kinds := make([]EdgeKind, len(edges))
			for e := range kinds {
				kinds[e] = lab.KindOf(e)
			}

			if !yield(MustNewGraph(vtx, flipped, kinds)) {
				return
			}
		}
	}
}

func conservesFlow(flows []vtxFlow, neg uint64) bool {
	for _, f := range flows {
		// sum = (|out| - 2|out & neg|) - (|in| - 2|in & neg|)
		outs := EdgeSet(f.out).Len() - 2*EdgeSet(f.out&neg).Len()
		ins := EdgeSet(f.in).Len() - 2*EdgeSet(f.in&neg).Len()
		if outs != ins {
			return false
		}
	}
	return true
}

// skeletonLayout returns the vertex kinds and edges of sk with VtxIDs renumbered 0..n-1 in ascending order.
// Vertices named only by an edge are taken as external.
func skeletonLayout(sk Skeleton) (VtxList, EdgeList) {
	if X, ok := sk.(*Graph); ok {
		return X.vtx, X.edges
	}

	isInternal := make(map[VtxID]bool)
	var maxID int
	for _, v := range sk.ExternalVtx() {
		maxID = max(maxID, int(v))
	}
	for _, v := range sk.InternalVtx() {
		isInternal[v] = true
		maxID = max(maxID, int(v))
	}
	edges := sk.Edges()
	for _, edge := range edges {
		maxID = max(maxID, int(edge.A), int(edge.B))
	}

	used := make([]bool, maxID+1)
	for _, v := range sk.ExternalVtx() {
		used[v] = true
	}
	for v := range isInternal {
		used[v] = true
	}
	for _, edge := range edges {
		used[edge.A] = true
		used[edge.B] = true
	}

	newID := make([]VtxID, len(used))
	var vtx VtxList
	for v, ok := range used {
		if !ok {
			continue
		}
		newID[v] = VtxID(len(vtx))
		kind := External
		if isInternal[VtxID(v)] {
			kind = Internal
		}
		vtx = append(vtx, kind)
	}

	dense := make(EdgeList, len(edges))
	for e, edge := range edges {
		dense[e] = Edge{A: newID[edge.A], B: newID[edge.B]}
	}
	return vtx, dense
}
