package libqed

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fine-structures/qedgen/qedgen"
)

var (
	comma = []byte(",")
)

// vtxNames returns the expression name of each vertex: "x<n>" for the nth external vertex and "<n>" for the
// nth internal vertex.
func (X *Graph) vtxNames() []string {
	names := make([]string, len(X.vtx))
	ext, in := 0, 0
	for v, kind := range X.vtx {
		if kind == External {
			names[v] = "x" + strconv.Itoa(ext)
			ext++
		} else {
			names[v] = strconv.Itoa(in)
			in++
		}
	}
	return names
}

// WriteAsExpr writes X as a graph expression, such as "x0->0, 0->x1, 0~x2".
//
// Fermion edges are written in their direction of flow.  Vertices with no edges are not written.
func (X *Graph) WriteAsExpr(out io.Writer) {
	names := X.vtxNames()
	for e, edge := range X.edges {
		if e > 0 {
			io.WriteString(out, ", ")
		}
		io.WriteString(out, names[edge.A])
		io.WriteString(out, X.kinds[e].Op())
		io.WriteString(out, names[edge.B])
	}
}

// ExprString returns X as a graph expression (see WriteAsExpr).
func (X *Graph) ExprString() string {
	b := strings.Builder{}
	X.WriteAsExpr(&b)
	return b.String()
}

func (X *Graph) String() string {
	return X.ExprString()
}

// WriteAsString writes a one line CSV description of X.
func (X *Graph) WriteAsString(out io.Writer, opts qedgen.PrintOpts) {
	if opts.Info {
		info := X.GetInfo()
		fmt.Fprintf(out, "L=%d,f=%d,b=%d,v=%d,e=%d,", info.Loops, info.FermionLegs, info.BosonLegs, info.NumVerts, info.NumEdges)
	}
	if opts.Expr {
		fmt.Fprintf(out, "%q", X.ExprString())
		out.Write(comma)
	}
	if opts.Key {
		io.WriteString(out, hex.EncodeToString(X.CanonicKey()))
		out.Write(comma)
	}
}

// Println prints X to stdout with the given prefix.
func (X *Graph) Println(prefix string) {
	b := strings.Builder{}
	b.WriteString(prefix)
	X.WriteAsString(&b, qedgen.DefaultPrintOpts)
	fmt.Println(b.String())
}
