package libqed

import (
	"iter"

	"github.com/fine-structures/qedgen/qedgen"
	"github.com/plan-systems/klog"
)

// GenFromSkeleton yields every QED graph obtainable from sk with the given external leg counts.
//
// Candidates pass through the valence, leg, and flow checks in that order, and each yielded graph satisfies
// ValidateQED(fermionLegs, bosonLegs).  The same graph may be yielded more than once (in different labelings).
// If metrics is non-nil, every candidate is counted at each stage it reaches.
func GenFromSkeleton(sk Skeleton, fermionLegs, bosonLegs int, metrics *qedgen.Metrics) iter.Seq[*Graph] {
	return func(yield func(*Graph) bool) {
		for lab := range assignEdgeWeights(sk, metrics) {
			if !metrics.ObserveIf(qedgen.StageLegs, AcceptLegs(sk, lab, fermionLegs, bosonLegs)) {
				continue
			}
			for X := range resolveFermionFlow(sk, lab, metrics) {
				if !yield(X) {
					return
				}
			}
		}
	}
}

// GenQED canonizes every QED graph generated from the given skeletons and yields each isomorphism class once,
// as soon as it is first added to set.
//
// An error from skeletons is passed through and ends the sequence.  The caller owns set and must Close() it.
func GenQED(skeletons iter.Seq2[*Graph, error], opts *qedgen.GenOpts, set GraphAdder) iter.Seq2[*Graph, error] {
	return func(yield func(*Graph, error) bool) {
		metrics := opts.Metrics
		numSkeletons := 0
		numEmitted := 0

		for sk, err := range skeletons {
			if err != nil {
				yield(nil, err)
				return
			}
			numSkeletons++
			metrics.Observe(qedgen.StageSkeleton, qedgen.Accepted)

			emitted := 0
			for X := range GenFromSkeleton(sk, opts.FermionLegs, opts.BosonLegs, metrics) {
				Xc := X.Canonize()
				if !metrics.ObserveIf(qedgen.StageDedup, set.TryAddGraph(Xc)) {
					continue
				}
				emitted++
				if !yield(Xc, nil) {
					return
				}
			}
			numEmitted += emitted
			klog.V(3).Infof("skeleton %d %q: %d new graphs", numSkeletons, sk.ExprString(), emitted)
		}

		klog.V(2).Infof("L=%d f=%d b=%d: %d skeletons, %d graphs", opts.Loops, opts.FermionLegs, opts.BosonLegs, numSkeletons, numEmitted)
	}
}
