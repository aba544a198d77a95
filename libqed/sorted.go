package libqed

import (
	"bytes"

	"github.com/emirpasic/gods/trees/redblacktree"
)

func byCanonicKey(a, b interface{}) int {
	return bytes.Compare(a.([]byte), b.([]byte))
}

// graphTree orders canonical graphs by canonic key, so smaller graphs come first.
type graphTree struct {
	tree *redblacktree.Tree
}

func newGraphTree() graphTree {
	return graphTree{
		tree: redblacktree.NewWith(byCanonicKey),
	}
}

// Put adds the canonical form of X, replacing any isomorphic graph already present.
func (gt graphTree) Put(X *Graph) {
	Xc := X.Canonize()
	gt.tree.Put(Xc.key, Xc)
}

func (gt graphTree) Graphs() []*Graph {
	out := make([]*Graph, 0, gt.tree.Size())
	for it := gt.tree.Iterator(); it.Next(); {
		out = append(out, it.Value().(*Graph))
	}
	return out
}

// SortGraphs returns the canonical forms of the given graphs in canonic key order, with isomorphic graphs removed.
func SortGraphs(graphs []*Graph) []*Graph {
	gt := newGraphTree()
	for _, X := range graphs {
		gt.Put(X)
	}
	return gt.Graphs()
}
