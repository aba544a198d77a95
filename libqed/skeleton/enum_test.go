package skeleton

import (
	"testing"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func enumAll(t *testing.T, opts qedgen.SkeletonOpts) []*libqed.Graph {
	var out []*libqed.Graph
	for X, err := range EnumSkeletons(opts) {
		require.NoError(t, err)
		out = append(out, X)
	}
	return out
}

func TestEnumSkeletons(t *testing.T) {
	cases := []struct {
		loops, ext int
		edgeCntd   int
		vtxCntd    int
		tadpoles   bool
		want       int
	}{
		{0, 1, 0, 0, false, 0},
		{0, 2, 0, 0, false, 1},
		{0, 3, 0, 0, false, 1},
		{0, 4, 0, 0, false, 1},
		{1, 0, 0, 0, false, 0},
		{1, 1, 0, 0, false, 0},
		{1, 2, 0, 0, false, 1},
		{1, 2, 0, 0, true, 2},
		{1, 3, 0, 0, false, 2},
		{1, 3, 2, 0, false, 1},
		{1, 4, 0, 0, false, 4},
		{1, 4, 2, 0, false, 1},
		{2, 0, 0, 0, false, 1},
		{2, 0, 0, 0, true, 2},
		{2, 1, 0, 0, true, 3},
		{2, 2, 0, 0, false, 3},
		{2, 2, 2, 0, false, 2},
		{2, 2, 2, 2, false, 2},
		{3, 0, 0, 0, false, 2},
	}

	for _, c := range cases {
		opts := qedgen.SkeletonOpts{
			Loops:              c.loops,
			VertexDegree:       3,
			ExternalCount:      c.ext,
			Connected:          true,
			EdgeConnectivity:   c.edgeCntd,
			VertexConnectivity: c.vtxCntd,
			NoTadpoles:         !c.tadpoles,
		}
		graphs := enumAll(t, opts)
		require.Len(t, graphs, c.want, "%+v", c)

		for _, X := range graphs {
			require.True(t, X.IsCanonic())
			require.Equal(t, c.loops, X.LoopNumber(), X.ExprString())
			require.Len(t, X.ExternalVtx(), c.ext)
			for _, v := range X.ExternalVtx() {
				require.Equal(t, 1, X.Degree(v))
			}
			for _, v := range X.InternalVtx() {
				require.Equal(t, 3, X.Degree(v))
			}
			require.True(t, Accepts(&opts, X))
		}
	}
}

func TestEnumDisconnected(t *testing.T) {
	opts := qedgen.SkeletonOpts{Loops: 1, VertexDegree: 3, ExternalCount: 2}
	graphs := enumAll(t, opts)
	require.Len(t, graphs, 5)

	disconnected := 0
	for _, X := range graphs {
		if !IsConnected(X) {
			disconnected++
		}
	}
	require.Equal(t, 3, disconnected)
}

func TestEnumErrors(t *testing.T) {
	for _, opts := range []qedgen.SkeletonOpts{
		{Loops: 1, VertexDegree: 2, ExternalCount: 2},
		{Loops: 1, VertexDegree: 3, ExternalCount: 2, EdgeConnectivity: 3},
		{Loops: -1, VertexDegree: 3, ExternalCount: 2},
		{Loops: 40, VertexDegree: 3, ExternalCount: 2},
	} {
		count := 0
		for X, err := range EnumSkeletons(opts) {
			require.Nil(t, X)
			require.Error(t, err)
			count++
		}
		require.Equal(t, 1, count, "%+v", opts)
	}

	for _, err := range EnumSkeletons(qedgen.SkeletonOpts{Loops: 1, VertexDegree: 2, ExternalCount: 2}) {
		require.True(t, errors.Is(err, qedgen.ErrUnsupportedDegree))
	}
	for _, err := range EnumSkeletons(qedgen.SkeletonOpts{Loops: 40, VertexDegree: 3, ExternalCount: 2}) {
		require.True(t, errors.Is(err, qedgen.ErrTooManyEdges))
	}
}

func TestEnumStopsEarly(t *testing.T) {
	opts := qedgen.SkeletonOpts{Loops: 2, VertexDegree: 3, ExternalCount: 2, Connected: true}
	count := 0
	for range EnumSkeletons(opts) {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestPredicates(t *testing.T) {
	bubble := libqed.MustParseExpr("x0-0, 0-1, 0-1, 1-x1")
	tadpole := libqed.MustParseExpr("x0-0, 0-x1, 0-1, 1-1")
	chain := libqed.MustParseExpr("x0-0, 0-1, 0-1, 1-2, 2-3, 2-3, 3-x1")
	bowtie := libqed.MustParseExpr("x0-1, 0-1, 1-2, 2-0, 0-3, 3-4, 4-0, x1-3")
	vacuum := libqed.MustParseExpr("0-1, 0-1, 0-1, 2-3, 2-3, 2-3")

	require.True(t, IsConnected(bubble))
	require.False(t, IsConnected(vacuum))

	require.False(t, HasTadpole(bubble))
	require.True(t, HasTadpole(tadpole))
	require.False(t, HasTadpole(chain))
	require.False(t, HasTadpole(vacuum))

	require.True(t, IsEdge2Connected(bubble))
	require.False(t, IsEdge2Connected(chain))
	require.False(t, IsEdge2Connected(tadpole))

	require.True(t, IsVertex2Connected(bubble))
	require.False(t, IsVertex2Connected(chain))
	require.True(t, IsEdge2Connected(bowtie))
	require.False(t, IsVertex2Connected(bowtie))

	// vacuously true without internal vertices
	edge := libqed.MustParseExpr("x0-x1")
	require.True(t, IsEdge2Connected(edge))
	require.True(t, IsVertex2Connected(edge))
	require.False(t, HasTadpole(edge))
}
