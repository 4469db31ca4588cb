// Package config holds lint options and the three layers that set them:
// the cpplint.toml manifest, command-line flags and per-directory
// CPPLINT.cfg files.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"cpplint/internal/includes"
	"cpplint/internal/strutil"
)

// DefaultConfigName is the per-directory configuration file.
const DefaultConfigName = "CPPLINT.cfg"

// DefaultLineLength is the line length used when nothing overrides it.
const DefaultLineLength = 80

var (
	defaultHeaders    = []string{"h", "hh", "hpp", "hxx", "h++", "cuh"}
	defaultNonHeaders = []string{"c", "cc", "cpp", "cxx", "c++", "cu"}
)

// Options configure how one file is checked. Per-directory configuration
// files modify a clone, so the run-wide value stays untouched.
type Options struct {
	Root         string
	Repository   string
	LineLength   int
	ConfigName   string
	Extensions   strutil.Set // empty means the defaults
	Headers      strutil.Set // empty means derived from Extensions
	IncludeOrder includes.Order
	Filters      []Filter
}

// Default returns options with the built-in defaults.
func Default() *Options {
	return &Options{
		LineLength: DefaultLineLength,
		ConfigName: DefaultConfigName,
		Extensions: strutil.NewSet(),
		Headers:    strutil.NewSet(),
		Filters:    slices.Clone(DefaultFilters),
	}
}

// Clone returns a deep copy.
func (o *Options) Clone() *Options {
	c := *o
	c.Extensions = strutil.NewSet(o.Extensions.Sorted()...)
	c.Headers = strutil.NewSet(o.Headers.Sorted()...)
	c.Filters = slices.Clone(o.Filters)
	return &c
}

// AddFilters appends a comma separated filter list.
func (o *Options) AddFilters(list string) error {
	fs, err := ParseFilters(list)
	o.Filters = append(o.Filters, fs...)
	return err
}

// SetExtensions replaces the set of linted extensions.
func (o *Options) SetExtensions(list string) {
	o.Extensions = strutil.ParseSet(list)
}

// SetHeaders replaces the set of header extensions.
func (o *Options) SetHeaders(list string) {
	o.Headers = strutil.ParseSet(list)
}

// SetIncludeOrder parses and applies an includeorder value.
func (o *Options) SetIncludeOrder(v string) error {
	order, ok := includes.ParseOrder(v)
	if !ok {
		return fmt.Errorf("%w %s. Expected default|standardcfirst", ErrBadIncludeOrder, v)
	}
	o.IncludeOrder = order
	return nil
}

// HeaderExtensions returns the extensions treated as headers.
func (o *Options) HeaderExtensions() strutil.Set {
	if len(o.Headers) > 0 {
		return o.Headers
	}
	if len(o.Extensions) > 0 {
		out := strutil.NewSet()
		for e := range o.Extensions {
			if strings.Contains(e, "h") {
				out.Add(e)
			}
		}
		return out
	}
	return strutil.NewSet(defaultHeaders...)
}

// AllExtensions returns every extension that gets linted.
func (o *Options) AllExtensions() strutil.Set {
	out := strutil.NewSet(o.HeaderExtensions().Sorted()...)
	if len(o.Extensions) > 0 {
		out.Add(o.Extensions.Sorted()...)
	} else {
		out.Add(defaultNonHeaders...)
	}
	return out
}

// NonHeaderExtensions returns AllExtensions minus HeaderExtensions.
func (o *Options) NonHeaderExtensions() strutil.Set {
	headers := o.HeaderExtensions()
	out := strutil.NewSet()
	for e := range o.AllExtensions() {
		if !headers.Has(e) {
			out.Add(e)
		}
	}
	return out
}

// Classifier returns the include classifier for these options.
func (o *Options) Classifier() includes.Classifier {
	return includes.Classifier{
		HeaderExtensions:    o.HeaderExtensions().Sorted(),
		NonHeaderExtensions: o.NonHeaderExtensions().Sorted(),
		Order:               o.IncludeOrder,
	}
}

// ShouldPrintError applies the filter list to a diagnostic.
func (o *Options) ShouldPrintError(category, file string, line int) bool {
	return ShouldPrint(o.Filters, category, file, line)
}

// Fingerprint identifies the options in cache keys.
func (o *Options) Fingerprint() string {
	var b strings.Builder
	fmt.Fprintf(&b, "root=%s\nrepo=%s\nlen=%d\ncfg=%s\n", o.Root, o.Repository, o.LineLength, o.ConfigName)
	fmt.Fprintf(&b, "ext=%s\nhdr=%s\norder=%s\n", o.Extensions.Join(","), o.Headers.Join(","), o.IncludeOrder)
	for _, f := range o.Filters {
		b.WriteString(f.String())
		b.WriteByte(',')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
