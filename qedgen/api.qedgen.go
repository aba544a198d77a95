package qedgen

const (

	// MaxEdges is the max number of edges a graph may have, bounded by the width of an edge bit set.
	MaxEdges = 63

	// MaxVtxCount is the max number of vertices a graph may have (a VtxID is a byte).
	MaxVtxCount = 2 * MaxEdges

	// VertexDegree is the degree of every internal vertex of a QED skeleton (phi^3 type).
	VertexDegree = 3
)

// GenOpts specifies what QED graphs to generate.
type GenOpts struct {
	Loops              int  `yaml:"loops"`               // loop number L
	FermionLegs        int  `yaml:"fermions"`            // number of external fermion legs
	BosonLegs          int  `yaml:"bosons"`              // number of external boson legs
	Connected          bool `yaml:"connected"`           // only connected graphs
	EdgeConnectivity   int  `yaml:"edge_connectivity"`   // 2 selects 1PI graphs, 0 or 1 imposes nothing
	VertexConnectivity int  `yaml:"vertex_connectivity"` // 2 selects vertex 2-connected graphs, 0 or 1 imposes nothing
	NoTadpoles         bool `yaml:"no_tadpoles"`         // drop graphs with tadpoles
	Workers            int  `yaml:"workers"`             // used by GenParallel; <= 0 denotes GOMAXPROCS

	Metrics *Metrics `yaml:"-"` // optional stage counters
}

// DefaultGenOpts is the tree level electron-photon vertex.
var DefaultGenOpts = GenOpts{
	Loops:       0,
	FermionLegs: 2,
	BosonLegs:   1,
	Connected:   true,
	NoTadpoles:  true,
}

// SkeletonOpts specifies the cubic (or generally k-regular) skeletons to enumerate.
type SkeletonOpts struct {
	Loops              int
	VertexDegree       int
	ExternalCount      int
	Connected          bool
	EdgeConnectivity   int
	VertexConnectivity int
	NoTadpoles         bool
}

// SkeletonOpts returns the skeleton params implied by these GenOpts.
func (opts *GenOpts) SkeletonOpts() SkeletonOpts {
	return SkeletonOpts{
		Loops:              opts.Loops,
		VertexDegree:       VertexDegree,
		ExternalCount:      opts.FermionLegs + opts.BosonLegs,
		Connected:          opts.Connected,
		EdgeConnectivity:   opts.EdgeConnectivity,
		VertexConnectivity: opts.VertexConnectivity,
		NoTadpoles:         opts.NoTadpoles,
	}
}

// Class returns the GraphClass of the graphs these opts generate.
func (opts *GenOpts) Class() GraphClass {
	return GraphClass{
		Loops:       byte(opts.Loops),
		FermionLegs: byte(opts.FermionLegs),
		BosonLegs:   byte(opts.BosonLegs),
	}
}

// GraphClass names the generation params a graph belongs to.
type GraphClass struct {
	Loops       byte
	FermionLegs byte
	BosonLegs   byte
}

// GraphInfo summarizes a skeleton or QED graph.
type GraphInfo struct {
	NumVerts     byte
	NumExternal  byte
	NumEdges     byte
	FermionEdges byte
	BosonEdges   byte
	SelfLoops    byte
	Loops        byte // loop number: edges - verts + components
	Components   byte
	FermionLegs  byte
	BosonLegs    byte
}

// Class returns the GraphClass of the graph this info describes.
func (info *GraphInfo) Class() GraphClass {
	return GraphClass{
		Loops:       info.Loops,
		FermionLegs: info.FermionLegs,
		BosonLegs:   info.BosonLegs,
	}
}

// NumInternal returns the number of internal vertices.
func (info *GraphInfo) NumInternal() byte {
	return info.NumVerts - info.NumExternal
}

// GraphSelector is an operator that either selects a given graph or not.
type GraphSelector struct {
	Min GraphInfo // lower select bounds
	Max GraphInfo // upper select bounds
}

// DefaultGraphSelector selects all graphs.
var DefaultGraphSelector = GraphSelector{
	Max: GraphInfo{
		NumVerts:     MaxVtxCount,
		NumExternal:  MaxVtxCount,
		NumEdges:     MaxEdges,
		FermionEdges: MaxEdges,
		BosonEdges:   MaxEdges,
		SelfLoops:    MaxEdges,
		Loops:        MaxEdges,
		Components:   MaxVtxCount,
		FermionLegs:  MaxVtxCount,
		BosonLegs:    MaxVtxCount,
	},
}

// CatalogOpts specifies params for opening a graph Catalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// PrintOpts specifies what is printed when printing a graph
type PrintOpts struct {
	Label string // Prefix label
	Expr  bool   // If set, prints the graph expression
	Info  bool   // If set, prints vertex / edge / leg counts
	Key   bool   // If set, prints the canonic key as hex
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Expr: true,
	Info: true,
}
