package libqed_test

import (
	"testing"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	vertexExpr      = "x0->0, 0->x1, 0~x2"
	photonSelfExpr  = "x0~0, 0->1, 1->0, 1~x1"
	electronSelfExp = "x0->0, 0->1, 1->x1, 0~1"
)

func TestNewGraph(t *testing.T) {
	vtx := libqed.NewVtxList(2, 1)
	edges := libqed.EdgeList{{0, 2}, {2, 1}, {2, 2}}

	X, err := libqed.NewGraph(vtx, edges, nil)
	require.NoError(t, err)
	require.Equal(t, 3, X.VertexCount())
	require.Equal(t, 3, X.EdgeCount())
	require.Equal(t, []libqed.VtxID{0, 1}, X.ExternalVtx())
	require.Equal(t, []libqed.VtxID{2}, X.InternalVtx())
	require.True(t, X.IsSelfLoop(2))
	require.False(t, X.IsSelfLoop(0))
	require.Equal(t, 4, X.Degree(2))
	require.Equal(t, libqed.SkeletonEdge, X.EdgeKind(1))
	require.False(t, X.IsQED())

	_, err = libqed.NewGraph(vtx, libqed.EdgeList{{0, 3}}, nil)
	require.True(t, errors.Is(err, qedgen.ErrBadVtxID))

	_, err = libqed.NewGraph(vtx, edges, []libqed.EdgeKind{libqed.Boson})
	require.True(t, errors.Is(err, qedgen.ErrBadEdge))

	_, err = libqed.NewGraph(vtx, edges[:1], []libqed.EdgeKind{7})
	require.True(t, errors.Is(err, qedgen.ErrBadEdgeKind))

	tooMany := make(libqed.EdgeList, qedgen.MaxEdges+1)
	_, err = libqed.NewGraph(libqed.NewVtxList(0, 1), tooMany, nil)
	require.True(t, errors.Is(err, qedgen.ErrTooManyEdges))
}

func TestEdgeSet(t *testing.T) {
	s := libqed.EdgeSet(0).With(1).With(4).With(63)
	require.Equal(t, 3, s.Len())
	require.True(t, s.Has(4))
	require.False(t, s.Has(0))
	require.Equal(t, []int{1, 4, 63}, s.Indices())
	require.Equal(t, []int{1, 63}, s.Without(4).Indices())
	require.Equal(t, 5, libqed.FullEdgeSet(5).Len())
	require.Equal(t, 64, libqed.FullEdgeSet(64).Len())
}

func TestEdge(t *testing.T) {
	e := libqed.Edge{A: 3, B: 5}
	require.Equal(t, libqed.Edge{A: 5, B: 3}, libqed.Flip(e))
	require.Equal(t, e, libqed.Flip(libqed.Flip(e)))
	require.Equal(t, 1, e.Dir(3))
	require.Equal(t, -1, e.Dir(5))
	require.Equal(t, 0, e.Dir(4))
	require.Equal(t, e, libqed.Flip(e).Sorted())
}

func TestValidateQED(t *testing.T) {
	X := libqed.MustParseExpr(vertexExpr)
	require.NoError(t, X.ValidateQED(2, 1))
	require.Equal(t, 0, X.NetFlow(3))
	require.Equal(t, 2, X.Valence(3, libqed.Fermion))
	require.Equal(t, 1, X.Valence(3, libqed.Boson))

	err := X.ValidateQED(2, 0)
	require.True(t, errors.Is(err, qedgen.ErrViolatesQED))

	// fermion flow into the vertex from both sides
	X = libqed.MustParseExpr("x0->0, x1->0, 0~x2")
	require.Equal(t, -2, X.NetFlow(3))
	require.True(t, errors.Is(X.ValidateQED(2, 1), qedgen.ErrViolatesQED))

	// two bosons at a vertex
	X = libqed.MustParseExpr("x0~0, 0->x1, 0~x2")
	require.True(t, errors.Is(X.ValidateQED(1, 2), qedgen.ErrViolatesQED))

	// a fermion self-loop counts twice toward valence and zero toward flow
	X = libqed.MustParseExpr("x0~0, 0->0")
	require.Equal(t, 2, X.Valence(1, libqed.Fermion))
	require.Equal(t, 0, X.NetFlow(1))
	require.NoError(t, X.ValidateQED(0, 1))

	X = libqed.MustParseExpr(photonSelfExpr)
	require.NoError(t, X.ValidateQED(0, 2))
	X = libqed.MustParseExpr(electronSelfExp)
	require.NoError(t, X.ValidateQED(2, 0))
}

func TestGetInfo(t *testing.T) {
	X := libqed.MustParseExpr(photonSelfExpr)
	info := X.GetInfo()
	require.EqualValues(t, 4, info.NumVerts)
	require.EqualValues(t, 2, info.NumExternal)
	require.EqualValues(t, 2, info.NumInternal())
	require.EqualValues(t, 4, info.NumEdges)
	require.EqualValues(t, 2, info.FermionEdges)
	require.EqualValues(t, 2, info.BosonEdges)
	require.EqualValues(t, 1, info.Loops)
	require.EqualValues(t, 1, info.Components)
	require.Equal(t, qedgen.GraphClass{Loops: 1, BosonLegs: 2}, info.Class())
	require.Equal(t, 1, X.LoopNumber())

	// two disjoint tree vertices
	X = libqed.MustParseExpr("x0->0, 0->x1, 0~x2, x3->1, 1->x4, 1~x5")
	_, Nc := X.Components()
	require.Equal(t, 2, Nc)
	require.Equal(t, 0, X.LoopNumber())
}
