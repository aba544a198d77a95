// Package walker is the primary entry point for QED graph generation: it walks every cubic skeleton with the
// requested loop number and leg count and emits each QED graph that can be built on it, once per isomorphism class.
package walker

import (
	"context"
	"iter"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/libqed/skeleton"
	"github.com/fine-structures/qedgen/qedgen"
)

// GenGraphs yields the canonical form of every QED graph with the given loop number and external legs that meets
// the connectivity requirements of opts.  Each isomorphism class is yielded exactly once and the order is
// deterministic for given opts.
//
// Invalid opts yield a single error.  Leg counts no skeleton can carry yield nothing.
func GenGraphs(opts qedgen.GenOpts) iter.Seq2[*libqed.Graph, error] {
	return func(yield func(*libqed.Graph, error) bool) {
		if err := opts.Validate(); err != nil {
			yield(nil, err)
			return
		}
		set := libqed.NewDropDupes(libqed.DropDupeOpts{})
		defer set.Close()

		for X, err := range libqed.GenQED(skeleton.EnumSkeletons(opts.SkeletonOpts()), &opts, set) {
			if !yield(X, err) || err != nil {
				return
			}
		}
	}
}

// GenStream is GenGraphs as a GraphStream source so that it can be chained with other stages.
func GenStream(ctx context.Context, opts qedgen.GenOpts) *libqed.GraphStream {
	return libqed.StreamGraphs(ctx, GenGraphs(opts))
}

// GenParallel generates the same graphs as GenGraphs, spreading skeletons over opts.Workers goroutines, and returns
// them in canonic key order.
func GenParallel(ctx context.Context, opts qedgen.GenOpts) ([]*libqed.Graph, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return genParallel(ctx, &opts)
}
