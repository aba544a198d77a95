package skeleton

import (
	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/qedgen"
)

// IsConnected returns true if X has at most one component.
func IsConnected(X *libqed.Graph) bool {
	_, Nc := X.Components()
	return Nc <= 1
}

// isBridge returns true if removing edge e increases the number of components.
func isBridge(X *libqed.Graph, e int, Nc int) (comp []int, bridge bool) {
	if X.IsSelfLoop(e) {
		return nil, false
	}
	comp, count := X.ComponentsWithout(e, -1)
	return comp, count > Nc
}

// HasTadpole returns true if X has an edge whose removal leaves a component without external vertices attached
// to the rest of the graph only through that edge.  A self-loop on a cubic vertex always implies such an edge.
func HasTadpole(X *libqed.Graph) bool {
	_, Nc := X.Components()
	for e, edge := range X.Edges() {
		comp, bridge := isBridge(X, e, Nc)
		if !bridge {
			continue
		}
		hasExt := make(map[int]bool, 2)
		for _, v := range X.ExternalVtx() {
			hasExt[comp[v]] = true
		}
		if !hasExt[comp[edge.A]] || !hasExt[comp[edge.B]] {
			return true
		}
	}
	return false
}

// IsEdge2Connected returns true if no edge joining two internal vertices is a bridge (i.e. X is 1PI).
func IsEdge2Connected(X *libqed.Graph) bool {
	_, Nc := X.Components()
	for e, edge := range X.Edges() {
		if X.VtxKind(edge.A) != libqed.Internal || X.VtxKind(edge.B) != libqed.Internal {
			continue
		}
		if _, bridge := isBridge(X, e, Nc); bridge {
			return false
		}
	}
	return true
}

// IsVertex2Connected returns true if removing any one internal vertex leaves the internal subgraph with no more
// components than it had.
func IsVertex2Connected(X *libqed.Graph) bool {
	Xi := X.InternalSubgraph()
	_, Nc := Xi.Components()
	for v := 0; v < Xi.VertexCount(); v++ {
		if _, count := Xi.ComponentsWithout(-1, v); count > Nc {
			return false
		}
	}
	return true
}

// Accepts returns true if X meets the connectivity and tadpole requirements of opts.
func Accepts(opts *qedgen.SkeletonOpts, X *libqed.Graph) bool {
	if opts.Connected && !IsConnected(X) {
		return false
	}
	if opts.NoTadpoles && HasTadpole(X) {
		return false
	}
	if opts.EdgeConnectivity >= 2 && !IsEdge2Connected(X) {
		return false
	}
	if opts.VertexConnectivity >= 2 && !IsVertex2Connected(X) {
		return false
	}
	return true
}
