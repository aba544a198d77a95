// Package pyqed registers the _pyqed gpython module, which exposes QED graph generation and catalogs to scripts.
package pyqed

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	walker "github.com/fine-structures/qedgen/fine/qed-walker"
	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/libqed/catalog"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

const (
	READ_ONLY = 0x01
)

var (
	pyGraphType       = py.NewType("Graph", "a QED graph: external legs, fermion lines and photon lines")
	pyGraphStreamType = py.NewType("GraphStream", "libqed.GraphStream")
	pyCatalogType     = py.NewType("Catalog", "libqed.Catalog")
)

type pyGraph struct {
	*libqed.Graph
}

func (X pyGraph) Type() *py.Type {
	return pyGraphType
}

func (X pyGraph) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	X.WriteAsString(&writer, qedgen.DefaultPrintOpts)
	return py.String(writer.String()), nil
}

func (X pyGraph) M__repr__() (py.Object, error) {
	return X.M__str__()
}

func getGraph(obj py.Object) (pyGraph, error) {
	switch v := obj.(type) {
	case pyGraph:
		return v, nil
	case py.String:
		X, err := libqed.ParseExpr(string(v))
		if err != nil {
			return pyGraph{}, py.ExceptionNewf(py.ValueError, "%v", err)
		}
		return pyGraph{X}, nil
	}
	return pyGraph{}, py.ExceptionNewf(py.TypeError, "expected Graph or str (got %v)", obj.Type().Name)
}

func loadClass(args py.Tuple) (qedgen.GraphClass, error) {
	var loops, fermions, bosons int32
	if err := py.LoadTuple(args, []interface{}{&loops, &fermions, &bosons}); err != nil {
		return qedgen.GraphClass{}, err
	}
	if loops < 0 || fermions < 0 || bosons < 0 || loops > qedgen.MaxEdges || fermions+bosons > qedgen.MaxVtxCount {
		return qedgen.GraphClass{}, py.ExceptionNewf(py.ValueError, "bad graph class (%d, %d, %d)", loops, fermions, bosons)
	}
	return qedgen.GraphClass{
		Loops:       byte(loops),
		FermionLegs: byte(fermions),
		BosonLegs:   byte(bosons),
	}, nil
}

func kwBool(kwargs py.StringDict, name string, dst *bool) error {
	v, ok := kwargs[name]
	if !ok {
		return nil
	}
	b, err := py.MakeBool(v)
	if err != nil {
		return err
	}
	*dst = b == py.True
	return nil
}

func kwString(kwargs py.StringDict, name string, dst *string) {
	if v, ok := kwargs[name].(py.String); ok {
		*dst = string(v)
	}
}

// Arg 1 (int): loop number
// Arg 2 (int): fermion legs
// Arg 3 (int): boson legs
// kwargs: connected, edge_cntd, vtx_cntd, tadpoles (bools)
func py_GenGraphs(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	class, err := loadClass(args)
	if err != nil {
		return nil, err
	}

	opts := qedgen.DefaultGenOpts
	opts.Loops = int(class.Loops)
	opts.FermionLegs = int(class.FermionLegs)
	opts.BosonLegs = int(class.BosonLegs)

	edgeCntd, vtxCntd, tadpoles := false, false, false
	for _, kw := range []struct {
		name string
		dst  *bool
	}{
		{"connected", &opts.Connected},
		{"edge_cntd", &edgeCntd},
		{"vtx_cntd", &vtxCntd},
		{"tadpoles", &tadpoles},
	} {
		if err = kwBool(kwargs, kw.name, kw.dst); err != nil {
			return nil, err
		}
	}
	if edgeCntd {
		opts.EdgeConnectivity = 2
	}
	if vtxCntd {
		opts.VertexConnectivity = 2
	}
	opts.NoTadpoles = !tadpoles

	if err = opts.Validate(); err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	stream := walker.GenStream(context.Background(), opts)
	return wrapGraphStream(stream), nil
}

func py_NewGraph(module py.Object, args py.Tuple) (py.Object, error) {
	var expr string
	if err := py.LoadTuple(args, []interface{}{&expr}); err != nil {
		return nil, err
	}
	X, err := getGraph(py.String(expr))
	if err != nil {
		return nil, err
	}
	return py.Object(X), nil
}

func py_Graph_Canonize(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Object(pyGraph{X.Canonize()}), nil
}

func py_Graph_Expr(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.String(X.ExprString()), nil
}

func py_Graph_Key(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.String(hex.EncodeToString(X.CanonicKey())), nil
}

func py_Graph_NumVerts(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(X.VertexCount()), nil
}

func py_Graph_NumEdges(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(X.EdgeCount()), nil
}

func py_Graph_Loops(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	return py.Int(X.LoopNumber()), nil
}

func py_Graph_Legs(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	fermions, bosons := X.LegCounts()
	return py.Tuple{py.Int(fermions), py.Int(bosons)}, nil
}

func py_Graph_IsIsomorphic(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "IsIsomorphic takes 1 argument")
	}
	Y, err := getGraph(args[0])
	if err != nil {
		return nil, err
	}
	return py.NewBool(X.Canonize().Equal(Y.Canonize())), nil
}

func py_Graph_Stream(self py.Object, args py.Tuple) (py.Object, error) {
	X := self.(pyGraph)
	next := libqed.StreamGraph(X.Graph)
	return wrapGraphStream(next), nil
}

func py_CatalogExists(module py.Object, args py.Tuple) (py.Object, error) {
	var pathname string
	err := py.LoadTuple(args, []interface{}{&pathname})
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(pathname)
	if os.IsNotExist(err) {
		return py.False, nil
	}
	return py.True, nil
}

// Arg 1 (str): db pathname ("" for in-memory)
// Arg 2 (int): flags (READ_ONLY)
func py_OpenCatalog(module py.Object, args py.Tuple) (py.Object, error) {
	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}

	opts := qedgen.CatalogOpts{
		ReadOnly:   (flags & READ_ONLY) != 0,
		DbPathName: pathname,
	}
	cat, err := catalog.OpenCatalog(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Object(&pyCatalog{cat}), nil
}

type pyCatalog struct {
	libqed.Catalog
}

func (cat *pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(*pyCatalog)
	if cat.Catalog != nil {
		cat.Close()
		cat.Catalog = nil
	}
	return py.None, nil
}

func py_Catalog_Select(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(*pyCatalog)
	sel := qedgen.DefaultGraphSelector
	if len(args) > 0 {
		class, err := loadClass(args)
		if err != nil {
			return nil, err
		}
		sel = qedgen.SelectClass(class)
	}
	next := libqed.SelectFromCatalog(cat, sel)
	return wrapGraphStream(next), nil
}

func py_Catalog_NumGraphs(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(*pyCatalog)
	class, err := loadClass(args)
	if err != nil {
		return nil, err
	}
	return py.Int(cat.NumGraphs(class)), nil
}

type graphStream struct {
	*libqed.GraphStream
}

func (stream graphStream) Type() *py.Type {
	return pyGraphStreamType
}

func wrapGraphStream(stream *libqed.GraphStream) py.Object {
	return py.Object(graphStream{stream})
}

func py_GraphStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	count := stream.PullAll()
	if err := stream.Err(); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Int(count), nil
}

func py_GraphStream_List(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	graphs := stream.Collect()
	if err := stream.Err(); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	out := make(py.Tuple, len(graphs))
	for i, X := range graphs {
		out[i] = pyGraph{X}
	}
	return out, nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// Print(label="", expr=True, info=True, key=False, file="")
func py_GraphStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(graphStream)
	var pathname string

	opts := qedgen.DefaultPrintOpts

	py.LoadTuple(args, []interface{}{&opts.Label})
	if opts.Label == "" {
		kwString(kwargs, "label", &opts.Label)
	}

	outCount := atomic.AddInt32(&gOutCount, 1)
	if opts.Label == "" {
		opts.Label = fmt.Sprintf("out[%d]", outCount)
	}

	for name, dst := range map[string]*bool{"expr": &opts.Expr, "info": &opts.Info, "key": &opts.Key} {
		if err := kwBool(kwargs, name, dst); err != nil {
			return nil, err
		}
	}
	kwString(kwargs, "file", &pathname)

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	}

	next := stream.Print(writer, opts)
	return wrapGraphStream(next), nil
}

func py_GraphStream_AddTo(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	if len(args) != 1 {
		return nil, py.ExceptionNewf(py.TypeError, "AddTo takes 1 argument")
	}
	cat, ok := args[0].(*pyCatalog)
	if !ok || cat.Catalog == nil {
		return nil, py.ExceptionNewf(py.TypeError, "expected an open Catalog")
	}
	if cat.IsReadOnly() {
		return nil, py.ExceptionNewf(py.PermissionError, "%v", qedgen.ErrReadOnly)
	}

	next := stream.AddTo(cat.Catalog, libqed.AddGraphOpts{})
	return wrapGraphStream(next), nil
}

func py_GraphStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	return wrapGraphStream(stream.DropDupes()), nil
}

func py_GraphStream_Canonize(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	return wrapGraphStream(stream.Canonize()), nil
}

func py_GraphStream_Sorted(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	return wrapGraphStream(stream.Sorted()), nil
}

func py_GraphStream_Select(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(graphStream)
	class, err := loadClass(args)
	if err != nil {
		return nil, err
	}
	next := stream.SelectFromStream(qedgen.SelectClass(class))
	return wrapGraphStream(next), nil
}

func init() {

	/////////////////////////////////
	// Graph
	{
		pyGraphType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_Graph_Canonize, 0, "returns the canonical form of this Graph")
		pyGraphType.Dict["Expr"] = py.MustNewMethod("Expr", py_Graph_Expr, 0, "returns this Graph as an expression string")
		pyGraphType.Dict["Key"] = py.MustNewMethod("Key", py_Graph_Key, 0, "returns the canonic key as hex")
		pyGraphType.Dict["NumVerts"] = py.MustNewMethod("NumVerts", py_Graph_NumVerts, 0, "")
		pyGraphType.Dict["NumEdges"] = py.MustNewMethod("NumEdges", py_Graph_NumEdges, 0, "")
		pyGraphType.Dict["Loops"] = py.MustNewMethod("Loops", py_Graph_Loops, 0, "")
		pyGraphType.Dict["Legs"] = py.MustNewMethod("Legs", py_Graph_Legs, 0, "returns (fermion legs, boson legs)")
		pyGraphType.Dict["IsIsomorphic"] = py.MustNewMethod("IsIsomorphic", py_Graph_IsIsomorphic, 0, "")
		pyGraphType.Dict["Stream"] = py.MustNewMethod("Stream", py_Graph_Stream, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["Select"] = py.MustNewMethod("Select", py_Catalog_Select, 0, "streams all graphs or those of the given (loops, fermions, bosons)")
		pyCatalogType.Dict["NumGraphs"] = py.MustNewMethod("NumGraphs", py_Catalog_NumGraphs, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	/////////////////////////////////
	// GraphStream
	{
		pyGraphStreamType.Dict["Go"] = py.MustNewMethod("Go", py_GraphStream_Go, 0, "counts the number of graphs output from the GraphStream")
		pyGraphStreamType.Dict["List"] = py.MustNewMethod("List", py_GraphStream_List, 0, "returns the graphs output from the GraphStream")
		pyGraphStreamType.Dict["Print"] = py.MustNewMethod("Print", py_GraphStream_Print, 0, "prints each graph from the GraphStream")
		pyGraphStreamType.Dict["AddTo"] = py.MustNewMethod("AddTo", py_GraphStream_AddTo, 0, "")
		pyGraphStreamType.Dict["Canonize"] = py.MustNewMethod("Canonize", py_GraphStream_Canonize, 0, "")
		pyGraphStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_GraphStream_DropDupes, 0, "")
		pyGraphStreamType.Dict["Sorted"] = py.MustNewMethod("Sorted", py_GraphStream_Sorted, 0, "")
		pyGraphStreamType.Dict["Select"] = py.MustNewMethod("Select", py_GraphStream_Select, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("GenGraphs", py_GenGraphs, 0, "streams the QED graphs with the given (loops, fermions, bosons)"),
			py.MustNewMethod("NewGraph", py_NewGraph, 0, "parses a graph expression"),
			py.MustNewMethod("OpenCatalog", py_OpenCatalog, 0, ""),
			py.MustNewMethod("CatalogExists", py_CatalogExists, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION": py.String(LIB_VERSION),
			"READ_ONLY":   py.Int(READ_ONLY),
			"MAX_EDGES":   py.Int(qedgen.MaxEdges),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pyqed",
				Doc:  "QED graph generation gpython module",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
