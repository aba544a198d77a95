package main

import (
	"os"

	"github.com/fine-structures/qedgen/qedgen"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "qedgen",
	Short: "qedgen generates QED Feynman graphs",
	Long: `qedgen enumerates every QED graph with a given loop number and external fermion and photon legs,
one graph per isomorphism class, by labeling and orienting the edges of cubic skeleton graphs.`,
	SilenceUsage: true,
}

// addGenFlags adds the flags that specify a generation run.
func addGenFlags(flags *pflag.FlagSet) {
	def := qedgen.DefaultGenOpts
	flags.IntP("loops", "L", def.Loops, "loop number")
	flags.IntP("fermions", "f", def.FermionLegs, "number of external fermion legs")
	flags.IntP("bosons", "b", def.BosonLegs, "number of external photon legs")
	flags.Bool("connected", def.Connected, "only connected graphs")
	flags.Bool("edge-cntd", false, "only 1PI (edge 2-connected) graphs")
	flags.Bool("vtx-cntd", false, "only vertex 2-connected graphs")
	flags.Bool("tadpoles", !def.NoTadpoles, "keep graphs with tadpoles")
	flags.String("config", "", "YAML file of generation params (flags override it)")
}

// loadGenOpts reads the generation params from the config file (if any) and then from any flags that were set.
func loadGenOpts(flags *pflag.FlagSet) (qedgen.GenOpts, error) {
	opts := qedgen.DefaultGenOpts

	if pathname, _ := flags.GetString("config"); pathname != "" {
		if err := qedgen.LoadGenOpts(pathname, &opts); err != nil {
			return opts, err
		}
	}

	if flags.Changed("loops") {
		opts.Loops, _ = flags.GetInt("loops")
	}
	if flags.Changed("fermions") {
		opts.FermionLegs, _ = flags.GetInt("fermions")
	}
	if flags.Changed("bosons") {
		opts.BosonLegs, _ = flags.GetInt("bosons")
	}
	if flags.Changed("connected") {
		opts.Connected, _ = flags.GetBool("connected")
	}
	if on, _ := flags.GetBool("edge-cntd"); on {
		opts.EdgeConnectivity = 2
	}
	if on, _ := flags.GetBool("vtx-cntd"); on {
		opts.VertexConnectivity = 2
	}
	if flags.Changed("tadpoles") {
		tadpoles, _ := flags.GetBool("tadpoles")
		opts.NoTadpoles = !tadpoles
	}
	if flags.Lookup("workers") != nil && flags.Changed("workers") {
		opts.Workers, _ = flags.GetInt("workers")
	}

	return opts, opts.Validate()
}

func addPrintFlags(flags *pflag.FlagSet) {
	flags.String("label", "", "label prefixed to each output line")
	flags.Bool("info", true, "print loop, leg, vertex and edge counts")
	flags.Bool("key", false, "print the canonic key as hex")
}

func loadPrintOpts(flags *pflag.FlagSet) qedgen.PrintOpts {
	opts := qedgen.PrintOpts{Expr: true}
	opts.Label, _ = flags.GetString("label")
	opts.Info, _ = flags.GetBool("info")
	opts.Key, _ = flags.GetBool("key")
	return opts
}

type nopCloser struct {
	*os.File
}

func (nopCloser) Close() error {
	return nil
}
