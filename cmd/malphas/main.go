// Command malphas is the Malphas compiler driver: build, run, and format
// subcommands over a shared parse/typecheck/lower/SSA pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	dumpMIR  bool
	dumpSSA  bool
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "malphas",
		Short:         "Malphas compiler driver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().BoolVar(&dumpMIR, "dump-mir", false, "pretty-print the tree MIR before the SSA pass")
	root.PersistentFlags().BoolVar(&dumpSSA, "dump-ssa", false, "pretty-print the tree MIR after the SSA pass")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		return nil
	}

	root.AddCommand(newBuildCommand(), newRunCommand(), newFmtCommand())
	return root
}

func newBuildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build <file>",
		Short: "Compile a Malphas source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer recoverToDiagnostic(&err, args[0])
			mod, diagErr := compile(args[0])
			if diagErr != nil {
				return diagErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "compiled %s: %d global(s), %d function(s)\n",
				args[0], len(mod.Globals), len(mod.Funcs))
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Compile and run a Malphas source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer recoverToDiagnostic(&err, args[0])
			if _, diagErr := compile(args[0]); diagErr != nil {
				return diagErr
			}
			return fmt.Errorf("run: interpretation/codegen is out of scope for this pipeline; use build --dump-ssa to inspect the compiled form")
		},
	}
}

func newFmtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt <file>",
		Short: "Format a Malphas source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer recoverToDiagnostic(&err, args[0])
			return fmt.Errorf("fmt: no source-level pretty-printer is implemented; only MIR has one (see --dump-mir/--dump-ssa)")
		},
	}
}

// recoverToDiagnostic is the single place in the repo that turns an
// *ssa.InternalError panic into an ordinary returned error instead of
// crashing the process; every other frame lets it propagate.
func recoverToDiagnostic(err *error, filename string) {
	r := recover()
	if r == nil {
		return
	}
	logrus.WithField("file", filename).Errorf("internal compiler error: %v", r)
	*err = fmt.Errorf("internal compiler error in %s: %v", filename, r)
}
