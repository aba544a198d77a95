package libqed

import (
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
)

// AppendEncoding appends X's binary encoding to dst and returns the extended buffer.
//
// Layout: Nv, Ne, then Nv vertex kinds, then (A, B, kind) for each edge.
func (X *Graph) AppendEncoding(dst []byte) []byte {
	dst = append(dst, byte(len(X.vtx)), byte(len(X.edges)))
	for _, vi := range X.vtx {
		dst = append(dst, byte(vi))
	}
	for e, edge := range X.edges {
		dst = append(dst, byte(edge.A), byte(edge.B), byte(X.kinds[e]))
	}
	return dst
}

// NewGraphFromEncoding is the inverse of AppendEncoding.
func NewGraphFromEncoding(buf []byte) (*Graph, error) {
	if len(buf) < 2 {
		return nil, errors.Wrap(qedgen.ErrBadEncoding, "missing header")
	}
	Nv, Ne := int(buf[0]), int(buf[1])
	if len(buf) != 2+Nv+3*Ne {
		return nil, errors.Wrapf(qedgen.ErrBadEncoding, "%d bytes for %d vertices and %d edges", len(buf), Nv, Ne)
	}

	vtx := make(VtxList, Nv)
	for i := range vtx {
		vtx[i] = VtxKind(buf[2+i])
	}
	edges := make(EdgeList, Ne)
	kinds := make([]EdgeKind, Ne)
	for e := range edges {
		t := buf[2+Nv+3*e:]
		edges[e] = Edge{A: VtxID(t[0]), B: VtxID(t[1])}
		kinds[e] = EdgeKind(t[2])
	}

	X, err := NewGraph(vtx, edges, kinds)
	if err != nil {
		return nil, errors.Wrap(qedgen.ErrBadEncoding, err.Error())
	}
	return X, nil
}
