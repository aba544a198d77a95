package main

import (
	"fmt"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/libqed/skeleton"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <expr>...",
	Short: "Check that graph expressions are valid QED graphs",
	Long: `Checks the QED vertex rules (one photon end, two fermion ends, zero net fermion flow at every internal
vertex) and reports each graph's legs, loop number and connectivity.  If --fermions or --bosons is given, the leg
counts must also match.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	flags := checkCmd.Flags()
	flags.IntP("fermions", "f", -1, "expected number of external fermion legs")
	flags.IntP("bosons", "b", -1, "expected number of external photon legs")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	wantF, _ := flags.GetInt("fermions")
	wantB, _ := flags.GetInt("bosons")

	numBad := 0
	for _, str := range args {
		X, err := libqed.ParseExpr(str)
		if err != nil {
			return err
		}

		f, b := X.LegCounts()
		if wantF >= 0 {
			f = wantF
		}
		if wantB >= 0 {
			b = wantB
		}

		status := "ok"
		if err = X.ValidateQED(f, b); err != nil {
			status = err.Error()
			numBad++
		}

		info := X.GetInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "%q: L=%d,f=%d,b=%d,connected=%v,1PI=%v,tadpoles=%v: %s\n",
			str, info.Loops, info.FermionLegs, info.BosonLegs,
			skeleton.IsConnected(X), skeleton.IsEdge2Connected(X), skeleton.HasTadpole(X), status)
	}

	if numBad > 0 {
		return errors.Wrapf(qedgen.ErrViolatesQED, "%d of %d graphs failed", numBad, len(args))
	}
	return nil
}
