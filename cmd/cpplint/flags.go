package main

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cpplint/internal/config"
	"cpplint/internal/diagfmt"
)

// lintFlags are the flags of the root command. Only flags set on the
// command line override the manifest.
type lintFlags struct {
	verbose      int
	output       string
	quiet        bool
	filter       string
	counting     string
	root         string
	repository   string
	lineLength   int
	excludes     []string
	extensions   string
	headers      string
	recursive    bool
	includeOrder string
	config       string
	timing       bool
	threads      string
	ui           string
	pathMode     string
}

func (f *lintFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVarP(&f.verbose, "verbose", "v", 1, "only report errors with confidence >= `level` (0-5)")
	fl.StringVar(&f.output, "output", "emacs", "output format (emacs|vs7|eclipse|junit|sed|gsed|json|sarif)")
	fl.BoolVar(&f.quiet, "quiet", false, "don't print anything if no errors are found")
	fl.StringVar(&f.filter, "filter", "", "comma separated category filters, e.g. -whitespace,+whitespace/braces; empty lists the categories")
	fl.StringVar(&f.counting, "counting", "total", "error count report (total|toplevel|detailed)")
	fl.StringVar(&f.root, "root", "", "directory header guards are derived from")
	fl.StringVar(&f.repository, "repository", "", "top level directory of the repository")
	fl.IntVar(&f.lineLength, "linelength", config.DefaultLineLength, "allowed line length")
	fl.StringArrayVar(&f.excludes, "exclude", nil, "exclude a path or glob; repeatable")
	fl.StringVar(&f.extensions, "extensions", "", "comma separated list of linted file extensions")
	fl.StringVar(&f.headers, "headers", "", "comma separated list of header file extensions")
	fl.BoolVar(&f.recursive, "recursive", false, "search directories for files to lint")
	fl.StringVar(&f.includeOrder, "includeorder", "default", "include ordering (default|standardcfirst)")
	fl.StringVar(&f.config, "config", config.DefaultConfigName, "per-directory configuration file name")
	fl.BoolVar(&f.timing, "timing", false, "print the run time and per-phase timings")
	fl.StringVar(&f.threads, "threads", "0", "number of workers, 0 or -1 for one per CPU; empty prints the CPU count")
	fl.StringVar(&f.ui, "ui", "off", "progress view (auto|on|off)")
	fl.StringVar(&f.pathMode, "path-mode", "as-is", "file paths in json and sarif output (as-is|absolute|relative|basename)")
}

// apply copies the flags set on the command line onto opts and run.
func (f *lintFlags) apply(cmd *cobra.Command, opts *config.Options, run *config.Run) error {
	changed := cmd.Flags().Changed

	if changed("verbose") {
		run.Verbose = f.verbose
	}
	if changed("output") {
		run.Output = f.output
	}
	if changed("quiet") {
		run.Quiet = f.quiet
	}
	if changed("counting") {
		run.Counting = f.counting
	}
	if changed("filter") {
		if err := opts.AddFilters(f.filter); err != nil {
			return fmt.Errorf("Every filter in --filters must start with + or - (%s)", f.filter)
		}
	}
	if changed("root") {
		opts.Root = f.root
	}
	if changed("repository") {
		opts.Repository = f.repository
	}
	if changed("linelength") {
		if f.lineLength <= 0 {
			return errors.New("Line length must be digits.")
		}
		opts.LineLength = f.lineLength
	}
	if changed("exclude") {
		run.Excludes = append(run.Excludes, f.excludes...)
	}
	if changed("extensions") {
		opts.SetExtensions(f.extensions)
	}
	if changed("headers") {
		opts.SetHeaders(f.headers)
	}
	if changed("recursive") {
		run.Recursive = f.recursive
	}
	if changed("includeorder") {
		if err := opts.SetIncludeOrder(f.includeOrder); err != nil {
			return err
		}
	}
	if changed("config") {
		if strings.ContainsAny(f.config, `/\`) {
			return errors.New("Config file name must not include directory components.")
		}
		opts.ConfigName = f.config
	}
	if changed("timing") {
		run.Timing = f.timing
	}
	if changed("threads") {
		n, err := parseThreads(f.threads)
		if err != nil {
			return err
		}
		run.Threads = n
	}
	return run.Validate()
}

// parseThreads accepts a positive count, or 0 and -1 for one worker per CPU.
func parseThreads(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < -1 {
		return 0, fmt.Errorf("Number of threads should be a positive integer. (--threads=%s)", v)
	}
	if n == -1 {
		n = 0
	}
	return n, nil
}

func numThreadsMessage() string {
	return "Number of threads: " + strconv.Itoa(runtime.NumCPU()) + "\n"
}

func (f *lintFlags) parsePathMode() (diagfmt.PathMode, error) {
	mode, ok := diagfmt.ParsePathMode(f.pathMode)
	if !ok {
		return 0, fmt.Errorf("invalid --path-mode value %q (expected as-is|absolute|relative|basename)", f.pathMode)
	}
	return mode, nil
}
