package walker

import (
	"context"
	"runtime"
	"sync"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/libqed/skeleton"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"
)

// qedWalker collects the graphs found by a pool of workers, each working through one skeleton at a time.
type qedWalker struct {
	opts *qedgen.GenOpts
	set  libqed.GraphAdder

	mu     sync.Mutex
	graphs []*libqed.Graph
}

func genParallel(ctx context.Context, opts *qedgen.GenOpts) ([]*libqed.Graph, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	gw := &qedWalker{
		opts: opts,
		set:  libqed.NewSyncAdder(libqed.NewDropDupes(libqed.DropDupeOpts{})),
	}
	defer gw.set.Close()

	// gctx is cancelled once Wait returns, so only ctx is checked afterwards
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	numSkeletons := 0
	for sk, err := range skeleton.EnumSkeletons(opts.SkeletonOpts()) {
		if err != nil {
			grp.Wait()
			return nil, err
		}
		if gctx.Err() != nil {
			break
		}
		numSkeletons++
		opts.Metrics.Observe(qedgen.StageSkeleton, qedgen.Accepted)
		grp.Go(func() error {
			return gw.walkSkeleton(gctx, sk)
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	klog.V(2).Infof("L=%d f=%d b=%d: %d skeletons, %d graphs (%d workers)", opts.Loops, opts.FermionLegs, opts.BosonLegs, numSkeletons, len(gw.graphs), workers)
	return libqed.SortGraphs(gw.graphs), nil
}

func (gw *qedWalker) walkSkeleton(ctx context.Context, sk *libqed.Graph) error {
	metrics := gw.opts.Metrics
	for X := range libqed.GenFromSkeleton(sk, gw.opts.FermionLegs, gw.opts.BosonLegs, metrics) {
		if err := ctx.Err(); err != nil {
			return err
		}
		Xc := X.Canonize()
		if !metrics.ObserveIf(qedgen.StageDedup, gw.set.TryAddGraph(Xc)) {
			continue
		}
		gw.mu.Lock()
		gw.graphs = append(gw.graphs, Xc)
		gw.mu.Unlock()
	}
	return nil
}
