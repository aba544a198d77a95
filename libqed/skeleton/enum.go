// Package skeleton enumerates the undirected skeleton graphs that QED graphs are built on: external vertices of
// degree 1 and internal vertices of a fixed degree, one graph per isomorphism class.
package skeleton

import (
	"iter"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// EnumSkeletons yields the canonical form of every skeleton with the given loop number and external vertex count
// that meets the connectivity and tadpole requirements of opts.
//
// The internal vertex count follows from counting half edges (see SkeletonOpts.InternalCount).  If there is no
// such count, or the graph would have no vertices at all, the sequence is empty.  Invalid opts yield a single
// error.
func EnumSkeletons(opts qedgen.SkeletonOpts) iter.Seq2[*libqed.Graph, error] {
	return func(yield func(*libqed.Graph, error) bool) {
		if err := opts.Validate(); err != nil {
			yield(nil, err)
			return
		}
		Ni, ok := opts.InternalCount()
		Nx := opts.ExternalCount
		if !ok || Ni+Nx == 0 {
			return
		}
		if Ne := opts.EdgeCount(Ni); Ne > qedgen.MaxEdges {
			yield(nil, errors.Wrapf(qedgen.ErrTooManyEdges, "L=%d with %d legs needs %d edges", opts.Loops, Nx, Ne))
			return
		}
		if Nx+Ni > qedgen.MaxVtxCount {
			yield(nil, errors.Wrapf(qedgen.ErrBadParam, "%d vertices exceeds %d", Nx+Ni, qedgen.MaxVtxCount))
			return
		}

		en := newEnumerator(&opts, Nx, Ni, yield)
		defer en.seen.Close()
		en.placeVtx(0)

		klog.V(2).Infof("L=%d n=%d k=%d: %d labeled skeletons, %d unique", opts.Loops, Nx, opts.VertexDegree, en.numLabeled, en.numUnique)
	}
}

// enumerator builds labeled multigraphs row by row: for each vertex in turn, its self-loops and then its edge
// multiplicities to each later vertex.
type enumerator struct {
	opts  *qedgen.SkeletonOpts
	vtx   libqed.VtxList
	rem   []int           // unplaced degree, by VtxID
	edges libqed.EdgeList // edges placed so far
	extTo []int           // internal neighbor of each external vertex, or -1
	seen  libqed.GraphAdder
	yield func(*libqed.Graph, error) bool

	numLabeled int
	numUnique  int
}

func newEnumerator(opts *qedgen.SkeletonOpts, Nx, Ni int, yield func(*libqed.Graph, error) bool) *enumerator {
	en := &enumerator{
		opts:  opts,
		vtx:   libqed.NewVtxList(Nx, Ni),
		rem:   make([]int, Nx+Ni),
		extTo: make([]int, Nx),
		seen:  libqed.NewDropDupes(libqed.DropDupeOpts{}),
		yield: yield,
	}
	for v := range en.extTo {
		en.extTo[v] = -1
	}
	for v := range en.rem {
		if v < Nx {
			en.rem[v] = 1
		} else {
			en.rem[v] = opts.VertexDegree
		}
	}
	return en
}

// placeVtx places the edges of vertex i and all later vertices, returning false if the consumer stopped.
func (en *enumerator) placeVtx(i int) bool {
	if i == len(en.vtx) {
		return en.emit()
	}
	if en.vtx[i] == libqed.External {
		return en.placeEdges(i, i+1)
	}

	for loops := en.rem[i] / 2; loops >= 0; loops-- {
		n := len(en.edges)
		for range loops {
			en.edges = append(en.edges, libqed.Edge{A: libqed.VtxID(i), B: libqed.VtxID(i)})
		}
		en.rem[i] -= 2 * loops
		ok := en.placeEdges(i, i+1)
		en.rem[i] += 2 * loops
		en.edges = en.edges[:n]
		if !ok {
			return false
		}
	}
	return true
}

// placeEdges places the remaining edges of vertex i to vertices j and later.
func (en *enumerator) placeEdges(i, j int) bool {
	if en.rem[i] == 0 {
		return en.placeVtx(i + 1)
	}

	avail := 0
	for k := j; k < len(en.rem); k++ {
		avail += en.rem[k]
	}
	if avail < en.rem[i] {
		return true
	}

	for m := min(en.rem[i], en.rem[j]); m >= 0; m-- {
		if m > 0 && !en.extOrdered(i, j) {
			continue
		}
		n := len(en.edges)
		for range m {
			en.edges = append(en.edges, libqed.Edge{A: libqed.VtxID(i), B: libqed.VtxID(j)})
		}
		en.rem[i] -= m
		en.rem[j] -= m
		en.setExtTo(i, j, m)
		ok := en.placeEdges(i, j+1)
		en.setExtTo(i, -1, m)
		en.rem[i] += m
		en.rem[j] += m
		en.edges = en.edges[:n]
		if !ok {
			return false
		}
	}
	return true
}

// extOrdered returns false if joining external vertex i to internal vertex j would give i a lower internal
// neighbor than the previous external vertex.  External vertices are interchangeable, so every skeleton has a
// labeling where the internal neighbors of consecutive externals never decrease.
func (en *enumerator) extOrdered(i, j int) bool {
	if en.vtx[i] != libqed.External || en.vtx[j] != libqed.Internal || i == 0 {
		return true
	}
	prev := en.extTo[i-1]
	return prev < 0 || prev <= j
}

func (en *enumerator) setExtTo(i, j, m int) {
	if m > 0 && en.vtx[i] == libqed.External && (j < 0 || en.vtx[j] == libqed.Internal) {
		en.extTo[i] = j
	}
}

func (en *enumerator) emit() bool {
	en.numLabeled++

	X := libqed.MustNewGraph(en.vtx, en.edges, nil)
	if !Accepts(en.opts, X) {
		return true
	}

	Xc := X.Canonize()
	if !en.seen.TryAddGraph(Xc) {
		return true
	}
	en.numUnique++
	return en.yield(Xc, nil)
}
