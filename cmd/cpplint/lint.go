package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"cpplint/internal/config"
	"cpplint/internal/diag"
	"cpplint/internal/diagfmt"
	"cpplint/internal/driver"
	"cpplint/internal/linter"
	"cpplint/internal/observ"
	"cpplint/internal/project"
	"cpplint/internal/source"
	"cpplint/internal/state"
	"cpplint/internal/ui"
	"cpplint/internal/version"
)

func (a *app) runLint(cmd *cobra.Command, f *lintFlags, args []string) (err error) {
	log, err := a.newLogger(cmd)
	if err != nil {
		return err
	}
	if err := a.setupColor(cmd); err != nil {
		return err
	}
	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if stopErr := stopProfiling(); stopErr != nil && err == nil {
			err = stopErr
		}
	}()

	// --filter= and --threads= only print information.
	if cmd.Flags().Changed("filter") && f.filter == "" {
		a.printCategories()
		return nil
	}
	if cmd.Flags().Changed("threads") && strings.TrimSpace(f.threads) == "" {
		io.WriteString(a.stdout, numThreadsMessage())
		return nil
	}

	opts, run, err := a.loadSettings(cmd, f, log)
	if err != nil {
		return a.usageError(cmd, err)
	}
	if opts.Repository != "" {
		if _, statErr := a.fs.Stat(opts.Repository); statErr != nil {
			return a.usageError(cmd, fmt.Errorf("Repository path does not exist.(--repository=%s)", opts.Repository))
		}
	}
	pathMode, err := f.parsePathMode()
	if err != nil {
		return a.usageError(cmd, err)
	}
	format, _ := diagfmt.ParseFormat(run.Output)

	useUI, err := f.wantsUI(a, format)
	if err != nil {
		return a.usageError(cmd, err)
	}
	stdout, stderr := a.stdout, a.stderr
	var bufOut, bufErr bytes.Buffer
	if useUI {
		// вывод копится, пока рисуется прогресс
		stdout, stderr = &bufOut, &bufErr
	}
	st := state.New(format, run.Counting, stdout, stderr)

	files, err := driver.ExpandInputs(a.fs, args, driver.ExpandOptions{
		Recursive:  run.Recursive,
		Excludes:   run.Excludes,
		Extensions: opts.AllExtensions(),
	}, st)
	if err != nil {
		a.flushBuffered(&bufOut, &bufErr)
		if errors.Is(err, config.ErrNoFiles) {
			return a.usageError(cmd, err)
		}
		return fmt.Errorf("failed to expand inputs: %w", err)
	}
	log.WithField("files", len(files)).Debug("inputs expanded")

	fileSet := source.NewFileSet(a.fs)
	fileSet.SetStdin(a.stdin)
	lcfg := linter.Config{
		Files:   fileSet,
		Cfg:     config.NewCache(a.fs, log, st),
		Options: opts,
		Verbose: run.Verbose,
		Quiet:   run.Quiet,
		Timing:  run.Timing,
		Log:     log,
	}
	if dir, _ := cmd.Flags().GetString("cache"); dir != "" {
		cache, cacheErr := driver.OpenDiskCache(a.fs, dir, log)
		if cacheErr != nil {
			log.WithError(cacheErr).Warn("result cache disabled")
		} else {
			lcfg.Results = cache.Results()
		}
	}

	var timings *observ.Aggregate
	if run.Timing {
		timings = observ.NewAggregate()
	}
	runner := &driver.Runner{
		Linter:  linter.New(lcfg),
		State:   st,
		Workers: run.Workers(),
		Timings: timings,
		Log:     log,
	}

	var sum driver.Summary
	if useUI {
		sum, err = a.runWithUI(contextOf(cmd), runner, files)
		a.flushBuffered(&bufOut, &bufErr)
	} else {
		sum, err = runner.Run(contextOf(cmd), files)
	}
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	// --quiet keeps the counts only when something was found.
	if !run.Quiet || st.ErrorCount() > 0 {
		st.PrintErrorCounts()
	}
	if run.Timing {
		st.PrintInfo(fmt.Sprintf("Runtime: %f(s)\n", sum.Elapsed.Seconds()))
		io.WriteString(a.stderr, timings.Totals().Summary())
	}

	cwd, _ := os.Getwd()
	docErr := st.WriteDocument(state.DocumentOptions{
		JSON: diagfmt.JSONOpts{PathMode: pathMode, BaseDir: cwd},
		Sarif: diagfmt.SarifRunMeta{
			ToolName:       "cpplint",
			ToolVersion:    version.Current().Version,
			InvocationArgs: a.args,
			PathMode:       pathMode,
			BaseDir:        cwd,
		},
	})
	if docErr != nil {
		return docErr
	}

	if st.ErrorCount() > 0 {
		return exitError{code: 1}
	}
	return nil
}

// loadSettings layers the cpplint.toml manifest and the command-line flags.
func (a *app) loadSettings(cmd *cobra.Command, f *lintFlags, log logrus.FieldLogger) (*config.Options, config.Run, error) {
	opts := config.Default()
	run := config.DefaultRun()

	path, ok, err := project.FindManifest(a.fs, ".")
	if err != nil {
		return nil, run, err
	}
	if ok {
		m, err := config.LoadManifest(a.fs, path)
		if err != nil {
			return nil, run, err
		}
		if err := m.Apply(opts, &run); err != nil {
			return nil, run, err
		}
		log.WithField("manifest", path).Debug("config loaded")
	}

	if err := f.apply(cmd, opts, &run); err != nil {
		return nil, run, err
	}
	return opts, run, nil
}

// usageError prints the short usage followed by the problem, like the
// classic tool, and fails with status 1.
func (a *app) usageError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(a.stderr, "Usage: %s\n\nFATAL ERROR: %s\n", cmd.UseLine(), err)
	return exitError{code: 1}
}

func (a *app) printCategories() {
	var b strings.Builder
	for _, c := range diag.Categories {
		b.WriteString("  " + c + "\n")
	}
	io.WriteString(a.stderr, b.String())
}

func (a *app) flushBuffered(out, errOut *bytes.Buffer) {
	if out.Len() > 0 {
		a.stdout.Write(out.Bytes())
		out.Reset()
	}
	if errOut.Len() > 0 {
		a.stderr.Write(errOut.Bytes())
		errOut.Reset()
	}
}

func (a *app) newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	levelStr, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	log := logrus.New()
	log.SetOutput(a.stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(level)
	return log, nil
}

func (a *app) setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		color.NoColor = !isTerminal(a.stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}

// runWithUI lints in the background while a Bubble Tea program renders the
// progress on stderr.
func (a *app) runWithUI(ctx context.Context, runner *driver.Runner, files []string) (driver.Summary, error) {
	type outcome struct {
		sum driver.Summary
		err error
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan outcome, 1)

	go func() {
		r := *runner
		r.Progress = driver.ChannelSink{Ch: events}
		sum, err := r.Run(ctx, files)
		outcomeCh <- outcome{sum: sum, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("cpplint", files, events)
	teaOpts := []tea.ProgramOption{tea.WithOutput(a.stderr)}
	if slices.Contains(files, source.StdinName) {
		// stdin принадлежит линтеру
		teaOpts = append(teaOpts, tea.WithInput(nil))
	}
	_, uiErr := tea.NewProgram(model, teaOpts...).Run()
	// после выхода из UI события всё равно нужно вычитать, иначе воркеры встанут
	go func() {
		for range events {
		}
	}()
	res := <-outcomeCh
	if uiErr != nil && res.err == nil {
		return res.sum, uiErr
	}
	return res.sum, res.err
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
