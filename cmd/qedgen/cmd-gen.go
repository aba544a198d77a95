package main

import (
	"fmt"
	"os"

	walker "github.com/fine-structures/qedgen/fine/qed-walker"
	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/libqed/catalog"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/plan-systems/klog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate QED graphs",
	Long: `Generates every QED graph with the given loop number and legs and prints one line per graph:
	[label,]index,[L=..,f=..,b=..,v=..,e=..,]"expr",[key,]`,
	Example: `  qedgen gen -L 1 -f 2 -b 1
  qedgen gen -L 2 -f 2 --edge-cntd --sorted --db ./qed.db`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

func init() {
	flags := genCmd.Flags()
	addGenFlags(flags)
	addPrintFlags(flags)
	flags.Int("workers", 0, "generate with this many workers (results are sorted); 0 generates sequentially")
	flags.Bool("sorted", false, "output graphs in canonic key order")
	flags.String("db", "", "also add the graphs to the catalog at this path")
	flags.Bool("metrics", false, "print per-stage candidate counts to stderr")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	opts, err := loadGenOpts(flags)
	if err != nil {
		return err
	}
	if on, _ := flags.GetBool("metrics"); on {
		opts.Metrics = qedgen.NewMetrics(prometheus.NewRegistry())
	}

	var stream *libqed.GraphStream
	if opts.Workers > 0 {
		graphs, err := walker.GenParallel(ctx, opts)
		if err != nil {
			return err
		}
		stream = libqed.StreamGraphs(ctx, func(yield func(*libqed.Graph, error) bool) {
			for _, X := range graphs {
				if !yield(X, nil) {
					return
				}
			}
		})
	} else {
		stream = walker.GenStream(ctx, opts)
	}
	source := stream

	if sorted, _ := flags.GetBool("sorted"); sorted {
		stream = stream.Sorted()
	}

	if dbPath, _ := flags.GetString("db"); dbPath != "" {
		cat, err := catalog.OpenCatalog(qedgen.CatalogOpts{DbPathName: dbPath})
		if err != nil {
			return err
		}
		numBefore := cat.NumGraphs(opts.Class())
		defer func() {
			klog.Infof("catalog %q: %d new graphs for L=%d f=%d b=%d", dbPath, cat.NumGraphs(opts.Class())-numBefore, opts.Loops, opts.FermionLegs, opts.BosonLegs)
			cat.Close()
		}()

		// the catalog drops graphs it already has, so print ahead of it
		stream = stream.Print(nopCloser{os.Stdout}, loadPrintOpts(flags)).AddTo(cat, libqed.AddGraphOpts{})
	} else {
		stream = stream.Print(nopCloser{os.Stdout}, loadPrintOpts(flags))
	}

	count := stream.PullAll()
	if err = source.Err(); err != nil {
		return err
	}

	if opts.Metrics != nil {
		for _, stage := range qedgen.AllStages {
			fmt.Fprintf(os.Stderr, "%-10s accepted: %-10d rejected: %d\n", stage,
				opts.Metrics.Count(stage, qedgen.Accepted), opts.Metrics.Count(stage, qedgen.Rejected))
		}
	}
	klog.V(1).Infof("%d graphs", count)
	return nil
}
