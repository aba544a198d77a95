package libqed

import (
	"github.com/fine-structures/qedgen/libqed/expr"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
)

// ParseExpr returns the graph described by a graph expression (see WriteAsExpr).
//
// External vertices get VtxIDs 0..Nx-1 in index order, followed by internal vertices.
// Printing a graph whose external vertices come first and parsing it back yields an Equal graph.
func ParseExpr(str string) (*Graph, error) {
	ex, err := expr.Parse(str)
	if err != nil {
		return nil, errors.Wrap(qedgen.ErrBadExpr, err.Error())
	}

	for _, ei := range ex.Edges {
		for _, v := range [2]*expr.Vtx{ei.A, ei.B} {
			if v.Index >= qedgen.MaxVtxCount {
				return nil, errors.Wrapf(qedgen.ErrBadExpr, "vertex index %d exceeds %d", v.Index, qedgen.MaxVtxCount-1)
			}
		}
	}

	Nx, Ni := ex.NumVerts()
	if Nx+Ni > qedgen.MaxVtxCount {
		return nil, errors.Wrapf(qedgen.ErrBadExpr, "%d vertices exceeds %d", Nx+Ni, qedgen.MaxVtxCount)
	}
	vtxID := func(v *expr.Vtx) VtxID {
		if v.External {
			return VtxID(v.Index)
		}
		return VtxID(Nx + v.Index)
	}

	edges := make(EdgeList, len(ex.Edges))
	kinds := make([]EdgeKind, len(ex.Edges))
	for i, ei := range ex.Edges {
		edge := Edge{A: vtxID(ei.A), B: vtxID(ei.B)}
		switch ei.Op {
		case expr.OpSkeleton:
			kinds[i] = SkeletonEdge
		case expr.OpFermion:
			kinds[i] = Fermion
		case expr.OpFermionReversed:
			kinds[i] = Fermion
			edge = Flip(edge)
		case expr.OpBoson:
			kinds[i] = Boson
		default:
			return nil, errors.Wrapf(qedgen.ErrBadExpr, "unknown edge op %q", ei.Op)
		}
		edges[i] = edge
	}

	X, err := NewGraph(NewVtxList(Nx, Ni), edges, kinds)
	if err != nil {
		return nil, errors.Wrap(qedgen.ErrBadExpr, err.Error())
	}
	return X, nil
}

// MustParseExpr is ParseExpr but panics on error.
func MustParseExpr(str string) *Graph {
	X, err := ParseExpr(str)
	if err != nil {
		panic(err)
	}
	return X
}
