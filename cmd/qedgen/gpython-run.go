package main

import (
	"fmt"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/spf13/cobra"

	_ "github.com/fine-structures/qedgen/pyqed"
	_ "github.com/go-python/gpython/stdlib"
)

var runCmd = &cobra.Command{
	Use:   "run [script.py]",
	Short: "Run a gpython script, or start a REPL, with the _pyqed module available",
	Example: `  qedgen run
  qedgen run scripts/self-energy.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pathname := ""
		if len(args) > 0 {
			pathname = args[0]
		}
		return runGPython(pathname)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runGPython(pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())

	var err error
	if len(pathname) == 0 {
		replCtx := repl.New(ctx)
		cli.RunREPL(replCtx)
	} else {
		startTime := time.Now()
		fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", pathname)

		_, err = py.RunFile(ctx, pathname, py.CompileOpts{}, nil)

		if err == nil {
			fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", time.Since(startTime))
		}
	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
	}
	return err
}
