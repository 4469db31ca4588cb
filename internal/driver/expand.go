package driver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"cpplint/internal/config"
	"cpplint/internal/source"
	"cpplint/internal/strutil"
)

// ExpandOptions controls how command-line paths become the file list.
type ExpandOptions struct {
	Recursive  bool
	Excludes   []string    // paths or glob patterns
	Extensions strutil.Set // lintable extensions for the directory walk
}

// ErrorPrinter receives the per-input problems found while expanding.
type ErrorPrinter interface {
	PrintError(msg string)
}

// ExpandInputs turns the command-line paths into the sorted, deduplicated
// list of files to lint. Missing inputs are reported and skipped; an empty
// result is config.ErrNoFiles.
func ExpandInputs(fsys afero.Fs, args []string, opts ExpandOptions, printer ErrorPrinter) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if arg == source.StdinName {
			inputs = append(inputs, arg)
			continue
		}
		if _, err := fsys.Stat(arg); err != nil {
			printer.PrintError("Skipping input '" + arg + "': Path not found.\n")
			continue
		}
		inputs = append(inputs, filepath.Clean(arg))
	}
	if len(inputs) == 0 {
		return nil, config.ErrNoFiles
	}

	files := inputs
	if opts.Recursive {
		var err error
		files, err = expandDirectories(fsys, inputs, opts.Extensions)
		if err != nil {
			return nil, err
		}
	}

	if len(opts.Excludes) > 0 {
		excludes := resolveExcludes(fsys, opts.Excludes)
		files = slices.DeleteFunc(files, func(f string) bool {
			return isExcluded(f, excludes)
		})
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// expandDirectories walks every directory input and keeps the files with a
// lintable extension. File inputs go through the same extension filter.
func expandDirectories(fsys afero.Fs, inputs []string, exts strutil.Set) ([]string, error) {
	var out []string
	keep := func(path string) {
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		if ext != "" && exts.Has(ext) {
			out = append(out, path)
		}
	}
	for _, input := range inputs {
		info, err := fsys.Stat(input)
		if err != nil || !info.IsDir() {
			if input == source.StdinName {
				out = append(out, input)
				continue
			}
			keep(input)
			continue
		}
		err = afero.Walk(fsys, input, func(path string, info fs.FileInfo, err error) error {
			if err != nil {
				if errors.Is(err, os.ErrPermission) {
					return filepath.SkipDir
				}
				return err
			}
			if !info.IsDir() {
				keep(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// resolveExcludes expands glob patterns and makes every exclude absolute.
// A pattern without matches is kept literally.
func resolveExcludes(fsys afero.Fs, patterns []string) []string {
	var out []string
	for _, p := range patterns {
		if p == "" {
			continue
		}
		matches, err := afero.Glob(fsys, p)
		if err != nil || len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			out = append(out, absPath(m))
		}
	}
	return out
}

// isExcluded reports whether file is one of the excludes or lies below one.
func isExcluded(file string, excludes []string) bool {
	if file == source.StdinName {
		return false
	}
	abs := absPath(file)
	for _, exc := range excludes {
		if abs == exc {
			return true
		}
		prefix := exc
		if !strings.HasSuffix(prefix, string(filepath.Separator)) {
			prefix += string(filepath.Separator)
		}
		if strings.HasPrefix(abs, prefix) {
			return true
		}
	}
	return false
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}
