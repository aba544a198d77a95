package main

import (
	"fmt"
	"os"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/libqed/catalog"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List or count the graphs in a catalog",
	Long:  `Opens a catalog written by "qedgen gen --db" read-only and prints its graphs, optionally only those of one class.`,
	Example: `  qedgen catalog --db ./qed.db
  qedgen catalog --db ./qed.db -L 2 -f 2 -b 0 --count`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	flags := catalogCmd.Flags()
	flags.String("db", "", "catalog pathname")
	flags.IntP("loops", "L", -1, "only graphs with this loop number")
	flags.IntP("fermions", "f", 0, "with --loops, the number of external fermion legs")
	flags.IntP("bosons", "b", 0, "with --loops, the number of external photon legs")
	flags.Bool("count", false, "only print the number of graphs in the class")
	addPrintFlags(flags)
	catalogCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	dbPath, _ := flags.GetString("db")
	if _, err := os.Stat(dbPath); err != nil {
		return err
	}

	cat, err := catalog.OpenCatalog(qedgen.CatalogOpts{
		DbPathName: dbPath,
		ReadOnly:   true,
	})
	if err != nil {
		return err
	}
	defer cat.Close()

	sel := qedgen.DefaultGraphSelector
	if loops, _ := flags.GetInt("loops"); loops >= 0 {
		f, _ := flags.GetInt("fermions")
		b, _ := flags.GetInt("bosons")
		class := qedgen.GraphClass{Loops: byte(loops), FermionLegs: byte(f), BosonLegs: byte(b)}
		if count, _ := flags.GetBool("count"); count {
			fmt.Fprintln(cmd.OutOrStdout(), cat.NumGraphs(class))
			return nil
		}
		sel = qedgen.SelectClass(class)
	}

	libqed.SelectFromCatalog(cat, sel).Print(nopCloser{os.Stdout}, loadPrintOpts(flags)).PullAll()
	return nil
}
