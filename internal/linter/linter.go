// Package linter runs the style checks over one file at a time.
//
// A Linter is shared by the workers of a run; every call to ProcessFile
// builds its own per-file state (options after CPPLINT.cfg overrides,
// suppressions, nesting and include trackers), so files can be processed
// concurrently.
package linter

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"cpplint/internal/config"
	"cpplint/internal/diag"
	"cpplint/internal/observ"
	"cpplint/internal/project"
	"cpplint/internal/source"
)

// Sink receives what a file produces. state.FileOutput implements it.
type Sink interface {
	Error(d diag.Diagnostic)
	PrintInfo(msg string)
	PrintError(msg string)
}

// ResultCache stores the diagnostics of a file under a key derived from its
// content and the options it was checked with.
type ResultCache interface {
	Get(key project.Digest) ([]diag.Diagnostic, bool)
	Put(key project.Digest, diags []diag.Diagnostic)
}

// Config is shared by every file of a run.
type Config struct {
	Files   *source.FileSet
	Cfg     *config.Cache
	Options *config.Options // cloned per file before overrides
	Verbose int
	Quiet   bool
	Timing  bool
	Results ResultCache // optional
	Log     logrus.FieldLogger
}

// Linter processes files with a fixed run configuration.
type Linter struct {
	cfg Config
	fs  afero.Fs
	log logrus.FieldLogger
}

// New creates a Linter. A nil Files means the OS filesystem.
func New(cfg Config) *Linter {
	if cfg.Files == nil {
		cfg.Files = source.NewFileSet(nil)
	}
	if cfg.Options == nil {
		cfg.Options = config.Default()
	}
	log := cfg.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	if cfg.Cfg == nil {
		cfg.Cfg = config.NewCache(cfg.Files.Fs(), log, discardNotifier{})
	}
	return &Linter{cfg: cfg, fs: cfg.Files.Fs(), log: log}
}

type discardNotifier struct{}

func (discardNotifier) PrintInfo(string)  {}
func (discardNotifier) PrintError(string) {}

// Result summarizes one processed file.
type Result struct {
	File    string
	Errors  int  // diagnostics that passed the filters
	Skipped bool // excluded, unreadable or not a lintable extension
	Cached  bool // replayed from the ResultCache
	Timing  *observ.Report
}

// ProcessFile checks filename ("-" for stdin) and writes everything it
// produces to sink.
func (l *Linter) ProcessFile(filename string, sink Sink) (res Result) {
	res = Result{File: filename}
	log := l.log.WithField("file", filename)

	var timer *observ.Timer
	if l.cfg.Timing {
		timer = observ.NewTimer()
		defer func() {
			report := timer.Report()
			res.Timing = &report
		}()
	}

	opts := l.cfg.Options.Clone()
	abs := filename
	if a, err := filepath.Abs(filename); err == nil {
		abs = a
	}
	if !opts.ApplyOverrides(l.cfg.Cfg, abs, l.cfg.Quiet) {
		log.Debug("file excluded by config")
		res.Skipped = true
		return res
	}

	phase := begin(timer, "read")
	file, err := l.cfg.Files.Load(filename)
	end(timer, phase, "")
	if err != nil {
		log.WithError(err).Debug("read failed")
		sink.PrintError(fmt.Sprintf("Skipping input '%s': Can't open for reading\n", filename))
		res.Skipped = true
		return res
	}

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	all := opts.AllExtensions()
	if filename != source.StdinName && !all.Has(ext) {
		sink.PrintError(fmt.Sprintf("Ignoring %s; not a valid file name (%s)\n", filename, all.Join(", ")))
		res.Skipped = true
		return res
	}

	key := project.Combine(project.Digest(file.Hash), filename, opts.Fingerprint(), strconv.Itoa(l.cfg.Verbose))
	if l.cfg.Results != nil {
		if diags, ok := l.cfg.Results.Get(key); ok {
			log.WithField("diagnostics", len(diags)).Debug("result cache hit")
			for _, d := range diags {
				sink.Error(d)
			}
			res.Errors = len(diags)
			res.Cached = true
			l.done(filename, res.Errors, sink)
			return res
		}
	}

	f := newFileLinter(l, opts, filename, abs, ext, sink)
	f.timer = timer
	f.processFileData(slices.Clone(file.Lines))
	f.reportEncoding(file)
	res.Errors = f.emitted.Len()

	if l.cfg.Results != nil {
		l.cfg.Results.Put(key, f.emitted.Items())
	}
	log.WithField("errors", res.Errors).Debug("file linted")
	l.done(filename, res.Errors, sink)
	return res
}

func (l *Linter) done(filename string, errors int, sink Sink) {
	// quiet keeps the note only for files that reported something
	if !l.cfg.Quiet || errors > 0 {
		sink.PrintInfo("Done processing " + filename + "\n")
	}
}

func begin(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func end(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}
