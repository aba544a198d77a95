package libqed

import (
	"github.com/fine-structures/qedgen/qedgen"
)

// Skeleton is the read-only view of an undirected cubic graph that the QED search labels.
//
// Edge indices are 0..len(Edges())-1 and edge subsets are EdgeSets over those indices.  VtxIDs need not be
// dense; generated graphs renumber them in ascending order.
type Skeleton interface {

	// Edges returns the edges in stored endpoint order.
	Edges() []Edge

	// ExternalVtx returns the degree 1 vertices.
	ExternalVtx() []VtxID

	// InternalVtx returns the interaction vertices.
	InternalVtx() []VtxID

	// IsSelfLoop returns true if edge e starts and ends at the same vertex.
	IsSelfLoop(e int) bool

	// IncidentEdges returns the edges in subset that have v as an endpoint.
	IncidentEdges(v VtxID, subset EdgeSet) EdgeSet
}

// Labeling assigns every skeleton edge to be a fermion or a boson.
type Labeling struct {
	Bosons   EdgeSet
	Fermions EdgeSet
}

// KindOf returns the EdgeKind this labeling gives edge e.
func (lab Labeling) KindOf(e int) EdgeKind {
	switch {
	case lab.Bosons.Has(e):
		return Boson
	case lab.Fermions.Has(e):
		return Fermion
	}
	return SkeletonEdge
}

// GraphAdder is a sink that accepts graphs it has not seen before.
type GraphAdder interface {

	// TryAddGraph adds X if no graph isomorphic to X has been added, returning true if X was added.
	TryAddGraph(X *Graph) bool

	// Close releases resources and forgets all previously added graphs.
	Close()
}

// OnGraphHit is a callback proc used to return graphs meeting a set of selection criteria.
type OnGraphHit chan<- *Graph

// Catalog wraps a database of canonical QED graphs, keyed by GraphClass.
type Catalog interface {
	GraphAdder

	// IsReadOnly returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	// NumGraphs returns the number of graphs added for the given class.
	NumGraphs(class qedgen.GraphClass) int64

	// Select sends each graph meeting the selection criteria to onHit.
	Select(sel qedgen.GraphSelector, onHit OnGraphHit)
}

// SelectsGraph is a convenience function used to see if a Graph is selected according to a GraphSelector.
func SelectsGraph(sel *qedgen.GraphSelector, X *Graph) bool {
	return sel.SelectsInfo(X.GetInfo())
}
