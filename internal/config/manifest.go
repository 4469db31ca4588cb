package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// ManifestName is the project-level configuration file.
const ManifestName = "cpplint.toml"

// Manifest mirrors the command-line flags. Keys absent from the file leave
// the defaults alone.
type Manifest struct {
	Path string `toml:"-"`

	LineLength   int      `toml:"linelength"`
	Filter       []string `toml:"filter"`
	Extensions   []string `toml:"extensions"`
	Headers      []string `toml:"headers"`
	Root         string   `toml:"root"`
	Repository   string   `toml:"repository"`
	IncludeOrder string   `toml:"includeorder"`
	Exclude      []string `toml:"exclude"`
	Counting     string   `toml:"counting"`
	Output       string   `toml:"output"`
	Threads      int      `toml:"threads"`
	Quiet        bool     `toml:"quiet"`
	Verbose      int      `toml:"verbose"`
	Recursive    bool     `toml:"recursive"`
	Config       string   `toml:"config"`

	meta toml.MetaData
}

// LoadManifest reads and decodes a manifest.
func LoadManifest(fs afero.Fs, path string) (*Manifest, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var m Manifest
	meta, err := toml.Decode(string(content), &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Path = path
	m.meta = meta
	return &m, nil
}

func (m *Manifest) has(key string) bool {
	return m.meta.IsDefined(key)
}

// Apply copies the keys present in the manifest onto opts and run.
func (m *Manifest) Apply(opts *Options, run *Run) error {
	if m.has("linelength") {
		if m.LineLength <= 0 {
			return fmt.Errorf("%s: linelength must be positive", m.Path)
		}
		opts.LineLength = m.LineLength
	}
	if m.has("filter") {
		if err := opts.AddFilters(strings.Join(m.Filter, ",")); err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
	}
	if m.has("extensions") {
		opts.SetExtensions(strings.Join(m.Extensions, ","))
	}
	if m.has("headers") {
		opts.SetHeaders(strings.Join(m.Headers, ","))
	}
	if m.has("root") {
		opts.Root = m.Root
	}
	if m.has("repository") {
		opts.Repository = m.Repository
	}
	if m.has("includeorder") {
		if err := opts.SetIncludeOrder(m.IncludeOrder); err != nil {
			return fmt.Errorf("%s: %w", m.Path, err)
		}
	}
	if m.has("config") {
		if strings.ContainsAny(m.Config, `/\`) {
			return fmt.Errorf("%s: config file name must not include directory components", m.Path)
		}
		opts.ConfigName = m.Config
	}

	if m.has("exclude") {
		run.Excludes = append(run.Excludes, m.Exclude...)
	}
	if m.has("counting") {
		run.Counting = m.Counting
	}
	if m.has("output") {
		run.Output = m.Output
	}
	if m.has("threads") {
		run.Threads = m.Threads
	}
	if m.has("quiet") {
		run.Quiet = m.Quiet
	}
	if m.has("verbose") {
		run.Verbose = m.Verbose
	}
	if m.has("recursive") {
		run.Recursive = m.Recursive
	}
	return run.Validate()
}
