package qedgen

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Validate checks that these GenOpts describe a search that can be run.
//
// Leg counts that no skeleton can satisfy are not an error -- they simply generate nothing.
func (opts *GenOpts) Validate() error {
	if opts.Loops < 0 || opts.FermionLegs < 0 || opts.BosonLegs < 0 {
		return errors.Wrapf(ErrBadParam, "loops (%d), fermions (%d), and bosons (%d) must be >= 0", opts.Loops, opts.FermionLegs, opts.BosonLegs)
	}
	sk := opts.SkeletonOpts()
	return sk.Validate()
}

// Validate checks the skeleton enumeration params.
func (opts *SkeletonOpts) Validate() error {
	if opts.Loops < 0 || opts.ExternalCount < 0 {
		return errors.Wrapf(ErrBadParam, "loops (%d) and external count (%d) must be >= 0", opts.Loops, opts.ExternalCount)
	}
	if opts.VertexDegree < 3 {
		return errors.Wrapf(ErrUnsupportedDegree, "vertex degree %d", opts.VertexDegree)
	}
	if opts.EdgeConnectivity < 0 || opts.EdgeConnectivity > 2 {
		return errors.Wrapf(ErrUnsupportedConnectivity, "edge connectivity %d", opts.EdgeConnectivity)
	}
	if opts.VertexConnectivity < 0 || opts.VertexConnectivity > 2 {
		return errors.Wrapf(ErrUnsupportedConnectivity, "vertex connectivity %d", opts.VertexConnectivity)
	}
	return nil
}

// InternalCount returns the number of internal vertices every skeleton with these params has.
//
// Counting half edges gives k*V + n = 2*E and the loop number gives L = E - (V + n) + 1, so (k-2)*V = 2*L + n - 2.
// If there is no such V, ok is false.
func (opts *SkeletonOpts) InternalCount() (count int, ok bool) {
	num := 2*opts.Loops + opts.ExternalCount - 2
	den := opts.VertexDegree - 2
	if num < 0 || den <= 0 || num%den != 0 {
		return 0, false
	}
	return num / den, true
}

// EdgeCount returns the number of edges of a skeleton with the given internal vertex count.
func (opts *SkeletonOpts) EdgeCount(numInternal int) int {
	return (opts.VertexDegree*numInternal + opts.ExternalCount) / 2
}

// SelectsInfo is a convenience function used to see if a graph is selected according to a GraphSelector.
func (sel *GraphSelector) SelectsInfo(info GraphInfo) bool {
	if info.NumVerts < sel.Min.NumVerts || info.NumExternal < sel.Min.NumExternal || info.NumEdges < sel.Min.NumEdges ||
		info.FermionEdges < sel.Min.FermionEdges || info.BosonEdges < sel.Min.BosonEdges || info.SelfLoops < sel.Min.SelfLoops ||
		info.Loops < sel.Min.Loops || info.Components < sel.Min.Components ||
		info.FermionLegs < sel.Min.FermionLegs || info.BosonLegs < sel.Min.BosonLegs {
		return false
	}
	if info.NumVerts > sel.Max.NumVerts || info.NumExternal > sel.Max.NumExternal || info.NumEdges > sel.Max.NumEdges ||
		info.FermionEdges > sel.Max.FermionEdges || info.BosonEdges > sel.Max.BosonEdges || info.SelfLoops > sel.Max.SelfLoops ||
		info.Loops > sel.Max.Loops || info.Components > sel.Max.Components ||
		info.FermionLegs > sel.Max.FermionLegs || info.BosonLegs > sel.Max.BosonLegs {
		return false
	}
	return true
}

// SelectClass returns a GraphSelector that selects exactly the graphs of the given class.
func SelectClass(class GraphClass) GraphSelector {
	sel := DefaultGraphSelector
	sel.Min.Loops, sel.Max.Loops = class.Loops, class.Loops
	sel.Min.FermionLegs, sel.Max.FermionLegs = class.FermionLegs, class.FermionLegs
	sel.Min.BosonLegs, sel.Max.BosonLegs = class.BosonLegs, class.BosonLegs
	return sel
}

// LoadGenOpts reads YAML generation params from the given file into opts.
// Fields absent from the file keep their current value.
func LoadGenOpts(pathname string, opts *GenOpts) error {
	buf, err := os.ReadFile(pathname)
	if err != nil {
		return errors.Wrapf(ErrBadConfig, "reading %q: %v", pathname, err)
	}
	if err = yaml.Unmarshal(buf, opts); err != nil {
		return errors.Wrapf(ErrBadConfig, "parsing %q: %v", pathname, err)
	}
	return opts.Validate()
}
