package main

import (
	"fmt"
	"strings"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/spf13/cobra"
)

var canonCmd = &cobra.Command{
	Use:   "canon <expr>...",
	Short: "Print the canonical form of graph expressions",
	Long: `Parses each graph expression and prints its canonical form.  Isomorphic graphs print identically.

Expression syntax: comma separated edges "A op B" where A and B are x<n> (external) or <n> (internal) and op is
'-' (skeleton), '->' or '<-' (fermion), or '~' (photon).`,
	Example: `  qedgen canon "x1->1, 1->0, 0->x0, 1~0"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCanon,
}

func init() {
	addPrintFlags(canonCmd.Flags())
	rootCmd.AddCommand(canonCmd)
}

func runCanon(cmd *cobra.Command, args []string) error {
	opts := loadPrintOpts(cmd.Flags())

	buf := strings.Builder{}
	for _, str := range args {
		X, err := libqed.ParseExpr(str)
		if err != nil {
			return err
		}
		if len(opts.Label) > 0 {
			buf.WriteString(opts.Label)
			buf.WriteByte(',')
		}
		X.Canonize().WriteAsString(&buf, opts)
		fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		buf.Reset()
	}
	return nil
}
