// Package expr parses graph expressions such as "x0->0, 0->x1, 0~x2".
//
// A vertex "x<n>" is the nth external vertex and "<n>" is the nth internal vertex.  Edge operators:
//
//	"-"   skeleton edge
//	"->"  fermion flowing from left to right
//	"<-"  fermion flowing from right to left
//	"~"   boson
package expr

// Expr is a comma separated list of edges.
type Expr struct {
	Edges []*Edge `parser:"(@@ (\",\" @@)*)?"`
}

// Edge joins two vertices with an edge operator.
type Edge struct {
	A  *Vtx   `parser:"@@"`
	Op string `parser:"@Op"`
	B  *Vtx   `parser:"@@"`
}

// Vtx names a vertex.
type Vtx struct {
	External bool `parser:"@\"x\"?"`
	Index    int  `parser:"@Int"`
}

// Edge operators
const (
	OpSkeleton        = "-"
	OpFermion         = "->"
	OpFermionReversed = "<-"
	OpBoson           = "~"
)
