package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cpplint/internal/version"
)

// exitError carries a process exit status without a message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// app is the environment the commands run in.
type app struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	args   []string // os.Args, recorded in SARIF output
}

// main builds the command tree and maps the returned error to the exit
// status: 1 when errors were found or the invocation was invalid.
func main() {
	a := &app{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		args:   os.Args,
	}
	root := a.newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) newRootCmd() *cobra.Command {
	f := &lintFlags{}
	root := &cobra.Command{
		Use:   "cpplint [flags] files...",
		Short: "Style checker for C/C++ source files",
		Long: `cpplint checks C/C++ files for style issues following Google's C++ style guide.

Every problem found is printed with a confidence score from 1 to 5; a 5
means the problem is certain. Per-directory CPPLINT.cfg files and a
cpplint.toml manifest found above the working directory can set the same
options as the flags below.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Current().Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLint(cmd, f, args)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	// Глобальные флаги
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("log-level", "warning", "log level (panic|fatal|error|warning|info|debug|trace)")
	root.PersistentFlags().String("cache", "", "directory of the per-file result cache (disabled when empty)")
	root.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	root.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	root.PersistentFlags().String("runtime-trace", "", "write runtime trace to file")

	f.register(root)

	root.AddCommand(a.newVersionCmd())
	root.AddCommand(a.newCleanCmd())
	return root
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
