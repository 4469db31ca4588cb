// Package driver expands the inputs of a run and lints them on a pool of
// workers.
package driver

import (
	"context"
	"fmt"
	"time"

	"fortio.org/safecast"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"cpplint/internal/linter"
	"cpplint/internal/observ"
	"cpplint/internal/state"
)

// Runner lints a list of files with a fixed number of workers.
type Runner struct {
	Linter   *linter.Linter
	State    *state.State
	Workers  int
	Progress ProgressSink      // optional
	Timings  *observ.Aggregate // optional, filled when the linter times files
	Log      logrus.FieldLogger
}

// Summary describes a finished run.
type Summary struct {
	Files   int
	Linted  int
	Cached  int
	Skipped int
	Errors  int
	Elapsed time.Duration
}

// Run processes files. Every file's output is flushed to the state in one
// piece as soon as the file is done. Cancellation stops files that have not
// started yet; a started file always runs to completion.
func (r *Runner) Run(ctx context.Context, files []string) (Summary, error) {
	start := time.Now()
	sum := Summary{Files: len(files)}
	if len(files) == 0 {
		return sum, nil
	}

	progress := r.Progress
	if progress == nil {
		progress = nopSink{}
	}
	log := r.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}

	for _, f := range files {
		progress.OnEvent(Event{File: f, Status: StatusQueued})
	}

	workers, err := safecast.Conv[uint16](max(r.Workers, 1))
	if err != nil {
		return sum, fmt.Errorf("invalid worker count %d: %w", r.Workers, err)
	}
	log.WithFields(logrus.Fields{"files": len(files), "workers": workers}).Debug("run started")

	// Результаты по индексам уникальны для каждой горутины, мьютекс не нужен.
	results := make([]linter.Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(int(workers), len(files)))

	for i, file := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			progress.OnEvent(Event{File: file, Status: StatusWorking})
			began := time.Now()

			out := r.State.NewFile()
			res := r.Linter.ProcessFile(file, out)
			out.Flush()
			r.Timings.Merge(res.Timing)
			results[i] = res

			status := StatusDone
			switch {
			case res.Skipped:
				status = StatusSkipped
			case res.Cached:
				status = StatusCached
			}
			progress.OnEvent(Event{File: file, Status: status, Errors: res.Errors, Elapsed: time.Since(began)})
			return nil
		})
	}

	err = g.Wait()
	for _, res := range results {
		switch {
		case res.File == "":
			// не запускался
		case res.Skipped:
			sum.Skipped++
		case res.Cached:
			sum.Cached++
			sum.Errors += res.Errors
		default:
			sum.Linted++
			sum.Errors += res.Errors
		}
	}
	sum.Elapsed = time.Since(start)
	progress.OnEvent(Event{Status: StatusDone, Errors: sum.Errors, Elapsed: sum.Elapsed})
	log.WithFields(logrus.Fields{
		"linted":  sum.Linted,
		"cached":  sum.Cached,
		"skipped": sum.Skipped,
		"errors":  sum.Errors,
	}).Debug("run finished")
	return sum, err
}
