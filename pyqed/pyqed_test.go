package pyqed

import (
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"
)

func TestGenGraphs(t *testing.T) {
	obj, err := py_GenGraphs(nil, py.Tuple{py.Int(1), py.Int(2), py.Int(1)}, py.StringDict{})
	require.NoError(t, err)
	count, err := py_GraphStream_Go(obj, nil)
	require.NoError(t, err)
	require.Equal(t, py.Int(4), count)

	obj, err = py_GenGraphs(nil, py.Tuple{py.Int(1), py.Int(0), py.Int(2)}, py.StringDict{})
	require.NoError(t, err)
	obj, err = py_GraphStream_List(obj, nil)
	require.NoError(t, err)
	graphs := obj.(py.Tuple)
	require.Len(t, graphs, 1)

	legs, err := py_Graph_Legs(graphs[0], nil)
	require.NoError(t, err)
	require.Equal(t, py.Tuple{py.Int(0), py.Int(2)}, legs)

	obj, err = py_GenGraphs(nil, py.Tuple{py.Int(1), py.Int(2), py.Int(1)}, py.StringDict{"edge_cntd": py.True})
	require.NoError(t, err)
	count, err = py_GraphStream_Go(obj, nil)
	require.NoError(t, err)
	require.Equal(t, py.Int(1), count)

	_, err = py_GenGraphs(nil, py.Tuple{py.Int(-1), py.Int(2), py.Int(1)}, py.StringDict{})
	require.Error(t, err)
}

func TestGraph(t *testing.T) {
	obj, err := py_NewGraph(nil, py.Tuple{py.String("x1->1, 1->0, 0->x0, 1~0")})
	require.NoError(t, err)

	iso, err := py_Graph_IsIsomorphic(obj, py.Tuple{py.String("x0->0, 0->1, 1->x1, 0~1")})
	require.NoError(t, err)
	require.Equal(t, py.True, iso)

	iso, err = py_Graph_IsIsomorphic(obj, py.Tuple{py.String("x0~0, 0->1, 1->0, 1~x1")})
	require.NoError(t, err)
	require.Equal(t, py.False, iso)

	loops, err := py_Graph_Loops(obj, nil)
	require.NoError(t, err)
	require.Equal(t, py.Int(1), loops)

	Xc, err := py_Graph_Canonize(obj, nil)
	require.NoError(t, err)
	expr, err := py_Graph_Expr(Xc, nil)
	require.NoError(t, err)
	again, err := py_NewGraph(nil, py.Tuple{expr})
	require.NoError(t, err)
	key1, _ := py_Graph_Key(Xc, nil)
	key2, _ := py_Graph_Key(again, nil)
	require.Equal(t, key1, key2)

	_, err = py_NewGraph(nil, py.Tuple{py.String("x0->")})
	require.Error(t, err)
}

func TestCatalog(t *testing.T) {
	obj, err := py_OpenCatalog(nil, py.Tuple{py.String(""), py.Int(0)})
	require.NoError(t, err)
	defer py_Catalog_Close(obj, nil)

	stream, err := py_GenGraphs(nil, py.Tuple{py.Int(2), py.Int(0), py.Int(2)}, py.StringDict{})
	require.NoError(t, err)
	stream, err = py_GraphStream_AddTo(stream, py.Tuple{obj})
	require.NoError(t, err)
	count, err := py_GraphStream_Go(stream, nil)
	require.NoError(t, err)
	require.Equal(t, py.Int(3), count)

	num, err := py_Catalog_NumGraphs(obj, py.Tuple{py.Int(2), py.Int(0), py.Int(2)})
	require.NoError(t, err)
	require.Equal(t, py.Int(3), num)

	sel, err := py_Catalog_Select(obj, nil)
	require.NoError(t, err)
	count, err = py_GraphStream_Go(sel, nil)
	require.NoError(t, err)
	require.Equal(t, py.Int(3), count)

	_, err = py_OpenCatalog(nil, py.Tuple{py.String(""), py.Int(READ_ONLY)})
	require.Error(t, err)
}
