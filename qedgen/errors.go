package qedgen

import "errors"

// Errors
var (
	ErrBadParam                = errors.New("bad generation param")
	ErrUnsupportedDegree       = errors.New("unsupported vertex degree")
	ErrUnsupportedConnectivity = errors.New("unsupported connectivity bound")
	ErrTooManyEdges            = errors.New("graph has too many edges")
	ErrBadExpr                 = errors.New("bad graph expression")
	ErrBadEncoding             = errors.New("bad graph encoding")
	ErrBadVtxID                = errors.New("bad graph vertex ID")
	ErrBadEdge                 = errors.New("bad graph edge")
	ErrBadEdgeKind             = errors.New("bad graph edge kind")
	ErrViolatesQED             = errors.New("graph is not a valid QED graph")
	ErrNilGraph                = errors.New("nil graph")
	ErrBadCatalogParam         = errors.New("bad catalog param")
	ErrReadOnly                = errors.New("catalog is in read-only mode")
	ErrUnmarshal               = errors.New("unmarshal failed")
	ErrBadConfig               = errors.New("bad config file")
)
