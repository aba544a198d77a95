package libqed

import "github.com/fine-structures/qedgen/qedgen"

// VtxID is a zero-based index that identifies a vertex in a given graph (0..MaxVtxCount-1)
type VtxID byte

// VtxKind tells external legs apart from interaction vertices.
//
// External sorts before Internal, so canonical graphs list their external vertices first.
type VtxKind byte

const (
	External VtxKind = 0 // degree 1; an incoming or outgoing particle
	Internal VtxKind = 1 // an interaction point
)

func (k VtxKind) String() string {
	switch k {
	case External:
		return "ext"
	case Internal:
		return "int"
	}
	return "?"
}

// VtxList is an ordered sequence of VtxKinds indexed by VtxID
type VtxList []VtxKind

// NewVtxList returns numExternal External kinds followed by numInternal Internal kinds.
func NewVtxList(numExternal, numInternal int) VtxList {
	vtx := make(VtxList, numExternal+numInternal)
	for i := numExternal; i < len(vtx); i++ {
		vtx[i] = Internal
	}
	return vtx
}

// Count returns the number of vertices of the given kind.
func (V VtxList) Count(kind VtxKind) int {
	n := 0
	for _, vi := range V {
		if vi == kind {
			n++
		}
	}
	return n
}

func validVtxCount(Nv int) error {
	if Nv > qedgen.MaxVtxCount {
		return qedgen.ErrBadVtxID
	}
	return nil
}
