package walker

import (
	"bytes"
	"context"
	"testing"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

func genAll(t *testing.T, opts qedgen.GenOpts) []*libqed.Graph {
	var out []*libqed.Graph
	for X, err := range GenGraphs(opts) {
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, X)
	}
	return out
}

// sameGraphs fails unless got and want hold the same canonical graphs in the same order.
func sameGraphs(t *testing.T, got, want []*libqed.Graph) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d graphs, expected %d", len(got), len(want))
	}
	for i := range want {
		if !bytes.Equal(want[i].CanonicKey(), got[i].CanonicKey()) {
			t.Fatalf("graph %d: got %q, expected %q", i, got[i].ExprString(), want[i].ExprString())
		}
	}
}

func TestTreeLevel(t *testing.T) {
	graphs := genAll(t, qedgen.DefaultGenOpts)
	if len(graphs) != 1 {
		t.Fatalf("got %d tree level vertices", len(graphs))
	}
	X := graphs[0]
	if err := X.ValidateQED(2, 1); err != nil {
		t.Fatal(err)
	}
	if X.EdgeCount() != 3 || len(X.InternalVtx()) != 1 {
		t.Fatalf("unexpected vertex %q", X.ExprString())
	}
	if X.EdgesOfKind(libqed.Fermion).Len() != 2 || X.EdgesOfKind(libqed.Boson).Len() != 1 {
		t.Fatalf("unexpected edge kinds in %q", X.ExprString())
	}

	// a single fermion leg cannot conserve flow
	if graphs := genAll(t, qedgen.GenOpts{FermionLegs: 1, Connected: true, NoTadpoles: true}); len(graphs) != 0 {
		t.Fatalf("got %d graphs with one fermion leg", len(graphs))
	}

	// vacuum polarization
	graphs = genAll(t, qedgen.GenOpts{Loops: 1, BosonLegs: 2, Connected: true, NoTadpoles: true})
	if len(graphs) != 1 {
		t.Fatalf("got %d vacuum polarization graphs", len(graphs))
	}
	X = graphs[0]
	if err := X.ValidateQED(0, 2); err != nil {
		t.Fatal(err)
	}
	if len(X.InternalVtx()) != 2 || X.EdgesOfKind(libqed.Fermion).Len() != 2 || X.LoopNumber() != 1 {
		t.Fatalf("unexpected vacuum polarization %q", X.ExprString())
	}
}

func TestGraphCounts(t *testing.T) {
	cases := []struct {
		loops, f, b int
		edgeCntd    int
		unconnected bool
		tadpoles    bool
		want        int
	}{
		{0, 2, 1, 0, false, false, 1},
		{0, 1, 0, 0, false, false, 0},
		{0, 2, 0, 0, false, false, 1},
		{0, 0, 2, 0, false, false, 1},
		{0, 2, 2, 0, false, false, 1},
		{0, 4, 0, 0, false, false, 1},
		{0, 0, 4, 0, false, false, 0},
		{1, 0, 2, 0, false, false, 1},
		{1, 2, 0, 0, false, false, 1},
		{1, 2, 1, 0, false, false, 4},
		{1, 2, 1, 2, false, false, 1},
		{1, 0, 3, 0, false, false, 1},
		{1, 0, 4, 2, false, false, 1},
		{1, 0, 1, 0, false, true, 1},
		{1, 0, 2, 0, true, true, 4},
		{2, 0, 0, 0, false, false, 1},
		{2, 0, 0, 0, false, true, 2},
		{2, 0, 2, 0, false, false, 3},
		{2, 0, 2, 2, false, false, 2},
		{2, 2, 0, 2, false, false, 3},
	}

	for _, c := range cases {
		opts := qedgen.GenOpts{
			Loops:            c.loops,
			FermionLegs:      c.f,
			BosonLegs:        c.b,
			Connected:        !c.unconnected,
			EdgeConnectivity: c.edgeCntd,
			NoTadpoles:       !c.tadpoles,
		}
		graphs := genAll(t, opts)
		if len(graphs) != c.want {
			t.Fatalf("%+v: got %d graphs, expected %d", c, len(graphs), c.want)
		}

		keys := map[string]bool{}
		for _, X := range graphs {
			if !X.IsCanonic() {
				t.Fatalf("%q is not canonic", X.ExprString())
			}
			if err := X.ValidateQED(c.f, c.b); err != nil {
				t.Fatalf("%q: %v", X.ExprString(), err)
			}
			if !c.unconnected && X.LoopNumber() != c.loops {
				t.Fatalf("%q has %d loops", X.ExprString(), X.LoopNumber())
			}
			key := string(X.CanonicKey())
			if keys[key] {
				t.Fatalf("%q emitted twice", X.ExprString())
			}
			keys[key] = true
		}
	}
}

func TestDeterministic(t *testing.T) {
	opts := qedgen.GenOpts{Loops: 2, FermionLegs: 2, Connected: true, EdgeConnectivity: 2, NoTadpoles: true}
	first := genAll(t, opts)
	second := genAll(t, opts)
	if len(first) != len(second) {
		t.Fatalf("runs gave %d and %d graphs", len(first), len(second))
	}
	for i := range first {
		if first[i].ExprString() != second[i].ExprString() {
			t.Fatalf("graph %d: %q != %q", i, first[i].ExprString(), second[i].ExprString())
		}
	}

	// regenerating from the output changes nothing
	for _, X := range first {
		Y := libqed.MustParseExpr(X.ExprString()).Canonize()
		if !bytes.Equal(X.CanonicKey(), Y.CanonicKey()) || !X.Equal(Y) {
			t.Fatalf("%q does not reparse to itself", X.ExprString())
		}
	}
}

func TestGenParallel(t *testing.T) {
	ctx := context.Background()
	for _, opts := range []qedgen.GenOpts{
		{Loops: 1, FermionLegs: 2, BosonLegs: 1, Connected: true, NoTadpoles: true, Workers: 3},
		{Loops: 2, BosonLegs: 2, Connected: true, NoTadpoles: true, Workers: 1},
		{Loops: 2, FermionLegs: 2, Connected: true, NoTadpoles: true},
		{Loops: 2, FermionLegs: 2, Connected: true, Workers: 2},
	} {
		got, err := GenParallel(ctx, opts)
		if err != nil {
			t.Fatalf("%+v: %v", opts, err)
		}
		want := libqed.SortGraphs(genAll(t, opts))
		if len(want) == 0 {
			t.Fatalf("%+v: no graphs to compare", opts)
		}
		sameGraphs(t, got, want)
	}

	// repeated runs on a live context keep succeeding
	for range 3 {
		got, err := GenParallel(ctx, qedgen.DefaultGenOpts)
		if err != nil {
			t.Fatal(err)
		}
		sameGraphs(t, got, genAll(t, qedgen.DefaultGenOpts))
	}

	if _, err := GenParallel(ctx, qedgen.GenOpts{Loops: -1}); !errors.Is(err, qedgen.ErrBadParam) {
		t.Fatalf("bad loops: %v", err)
	}

	// only a cancelled caller context is an error
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	got, err := GenParallel(cancelled, qedgen.GenOpts{Loops: 2, FermionLegs: 2, Connected: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled context: %v", err)
	}
	if got != nil {
		t.Fatalf("cancelled context returned %d graphs", len(got))
	}
}

func TestGenStream(t *testing.T) {
	opts := qedgen.GenOpts{Loops: 1, FermionLegs: 2, BosonLegs: 1, Connected: true, NoTadpoles: true}
	stream := GenStream(context.Background(), opts)
	graphs := stream.Sorted().Collect()
	if err := stream.Err(); err != nil {
		t.Fatal(err)
	}
	if len(graphs) != 4 {
		t.Fatalf("got %d graphs", len(graphs))
	}

	stream = GenStream(context.Background(), qedgen.GenOpts{VertexConnectivity: 5})
	if n := stream.PullAll(); n != 0 {
		t.Fatalf("got %d graphs from bad opts", n)
	}
	if !errors.Is(stream.Err(), qedgen.ErrUnsupportedConnectivity) {
		t.Fatalf("bad opts: %v", stream.Err())
	}
}

func TestGenErrors(t *testing.T) {
	count := 0
	for X, err := range GenGraphs(qedgen.GenOpts{FermionLegs: -2}) {
		if X != nil || !errors.Is(err, qedgen.ErrBadParam) {
			t.Fatalf("got %v, %v", X, err)
		}
		count++
	}
	if count != 1 {
		t.Fatalf("got %d errors", count)
	}
}

func TestGenMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := qedgen.GenOpts{Loops: 1, FermionLegs: 2, BosonLegs: 1, Connected: true, NoTadpoles: true, Metrics: qedgen.NewMetrics(reg)}
	graphs := genAll(t, opts)

	m := opts.Metrics
	if n := m.Count(qedgen.StageSkeleton, qedgen.Accepted); n != 2 {
		t.Fatalf("got %v skeletons", n)
	}
	if n := m.Count(qedgen.StageDedup, qedgen.Accepted); int(n) != len(graphs) {
		t.Fatalf("dedup accepted %v, emitted %d", n, len(graphs))
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) != 1 || families[0].GetName() != "qedgen_candidates_total" {
		t.Fatalf("unexpected metric families %v", families)
	}
}
