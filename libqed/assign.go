package libqed

import (
	"iter"

	"github.com/fine-structures/qedgen/qedgen"
)

// AssignEdgeWeights yields every labeling of sk's edges where each internal vertex meets exactly one boson end and
// two fermion ends.  A self-loop contributes two ends to its vertex.
//
// All 2^E boson subsets are tried in ascending order; labelings violating the rule are skipped silently.
func AssignEdgeWeights(sk Skeleton) iter.Seq[Labeling] {
	return assignEdgeWeights(sk, nil)
}

func assignEdgeWeights(sk Skeleton, metrics *qedgen.Metrics) iter.Seq[Labeling] {
	return func(yield func(Labeling) bool) {
		Ne := len(sk.Edges())
		all := FullEdgeSet(Ne)

		var loops EdgeSet
		for e := 0; e < Ne; e++ {
			if sk.IsSelfLoop(e) {
				loops = loops.With(e)
			}
		}

		internal := sk.InternalVtx()
		adj := make([]EdgeSet, len(internal))
		for i, v := range internal {
			adj[i] = sk.IncidentEdges(v, all)
		}

		for bosons := EdgeSet(0); ; bosons++ {
			lab := Labeling{
				Bosons:   bosons,
				Fermions: all &^ bosons,
			}
			if metrics.ObserveIf(qedgen.StageValence, meetsValence(adj, loops, lab)) {
				if !yield(lab) {
					return
				}
			}
			if bosons == all {
				break
			}
		}
	}
}

func meetsValence(adj []EdgeSet, loops EdgeSet, lab Labeling) bool {
	for _, inc := range adj {
		b := inc & lab.Bosons
		if b.Len()+(b&loops).Len() != 1 {
			return false
		}
		f := inc & lab.Fermions
		if f.Len()+(f&loops).Len() != 2 {
			return false
		}
	}
	return true
}

// CountLegs returns the number of fermion and boson edges meeting the external vertices of sk.
//
// An edge joining two external vertices is counted at both ends.
func CountLegs(sk Skeleton, lab Labeling) (fermions, bosons int) {
	for _, v := range sk.ExternalVtx() {
		fermions += sk.IncidentEdges(v, lab.Fermions).Len()
		bosons += sk.IncidentEdges(v, lab.Bosons).Len()
	}
	return
}

// AcceptLegs returns true if lab gives sk exactly the given number of external fermion and boson legs.
func AcceptLegs(sk Skeleton, lab Labeling, fermionLegs, bosonLegs int) bool {
	fermions, bosons := CountLegs(sk, lab)
	return fermions == fermionLegs && bosons == bosonLegs
}
