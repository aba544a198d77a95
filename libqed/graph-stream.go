package libqed

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/fine-structures/qedgen/qedgen"
)

type AddGraphOpts struct {
	AutoCloseCatalog bool
}

// GraphStream is a stage of a graph pipeline.  Each stage reads from the previous stage's Outlet in its own
// goroutine and closes its own Outlet when its input is exhausted.
type GraphStream struct {
	Outlet chan *Graph
	state  *streamState
}

// streamState is shared by all stages of a pipeline.
type streamState struct {
	err error // set by the source before it closes its Outlet
}

func NewGraphStream() *GraphStream {
	stream := &GraphStream{
		Outlet: make(chan *Graph),
		state:  &streamState{},
	}
	return stream
}

func (stream *GraphStream) next() *GraphStream {
	return &GraphStream{
		Outlet: make(chan *Graph, 1),
		state:  stream.state,
	}
}

// StreamGraph returns a stream that outputs X and closes.
func StreamGraph(X *Graph) *GraphStream {
	next := NewGraphStream()

	go func() {
		next.Outlet <- X
		next.Close()
	}()

	return next
}

// StreamGraphs returns a stream that outputs each graph from seq.
//
// The stream closes when seq is exhausted, when seq yields an error (see Err), or when ctx is done.
func StreamGraphs(ctx context.Context, seq iter.Seq2[*Graph, error]) *GraphStream {
	next := NewGraphStream()

	go func() {
		defer next.Close()
		for X, err := range seq {
			if err != nil {
				next.state.err = err
				return
			}
			if err = ctx.Err(); err != nil {
				next.state.err = err
				return
			}
			select {
			case next.Outlet <- X:
			case <-ctx.Done():
				next.state.err = ctx.Err()
				return
			}
		}
	}()

	return next
}

// Err returns the error that ended this pipeline's source, if any.
//
// Only valid once this stream's Outlet has been drained.
func (stream *GraphStream) Err() error {
	return stream.state.err
}

func (stream *GraphStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

func (stream *GraphStream) PushGraph(X *Graph) {
	stream.Outlet <- X
}

func (stream *GraphStream) PullGraph() *Graph {
	X := <-stream.Outlet
	return X
}

// PullAll drains this stream and returns the number of graphs read.
func (stream *GraphStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains this stream and returns the graphs read, in order.
func (stream *GraphStream) Collect() []*Graph {
	var graphs []*Graph
	for X := range stream.Outlet {
		graphs = append(graphs, X)
	}
	return graphs
}

func (stream *GraphStream) Print(
	out io.WriteCloser,
	opts qedgen.PrintOpts) *GraphStream {

	next := stream.next()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for X := range stream.Outlet {
			if len(opts.Label) > 0 {
				buf.WriteString(opts.Label)
				buf.WriteByte(',')
			}

			count++
			fmt.Fprintf(&buf, "%06d,", count)
			X.WriteAsString(&buf, opts)
			buf.WriteByte('\n')
			out.Write([]byte(buf.String()))
			buf.Reset()
			next.Outlet <- X
		}
		out.Close()
		next.Close()
	}()

	return next
}

func (stream *GraphStream) AddTo(target GraphAdder, opts AddGraphOpts) *GraphStream {
	next := stream.next()

	go func() {
		for X := range stream.Outlet {
			if target.TryAddGraph(X) {
				next.Outlet <- X
			}
		}
		if opts.AutoCloseCatalog {
			target.Close()
		}
		next.Close()
	}()

	return next
}

// DropDupes passes on the first graph of each isomorphism class.
func (stream *GraphStream) DropDupes() *GraphStream {
	return stream.AddTo(NewDropDupes(DropDupeOpts{}), AddGraphOpts{
		AutoCloseCatalog: true,
	})
}

func SelectFromCatalog(cat Catalog, sel qedgen.GraphSelector) *GraphStream {
	next := NewGraphStream()

	onHit := make(chan *Graph, 4)

	go func() {
		cat.Select(sel, onHit)
		close(onHit)
	}()

	go func() {
		for X := range onHit {
			if SelectsGraph(&sel, X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

func (stream *GraphStream) SelectFromStream(sel qedgen.GraphSelector) *GraphStream {
	next := stream.next()

	go func() {
		for X := range stream.Outlet {
			if SelectsGraph(&sel, X) {
				next.Outlet <- X
			}
		}
		next.Close()
	}()

	return next
}

func (stream *GraphStream) Canonize() *GraphStream {
	next := stream.next()

	go func() {
		for X := range stream.Outlet {
			next.Outlet <- X.Canonize()
		}
		next.Close()
	}()

	return next
}

// Sorted reads the entire stream and then outputs the canonical form of each unique graph in canonic key order.
func (stream *GraphStream) Sorted() *GraphStream {
	next := stream.next()

	go func() {
		gt := newGraphTree()
		for X := range stream.Outlet {
			gt.Put(X)
		}
		for _, X := range gt.Graphs() {
			next.Outlet <- X
		}
		next.Close()
	}()

	return next
}
