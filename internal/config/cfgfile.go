package config

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"cpplint/internal/regex"
	"cpplint/internal/strutil"
)

// Notifier receives user-facing messages produced while applying
// configuration files.
type Notifier interface {
	PrintInfo(msg string)
	PrintError(msg string)
}

// CfgFile is one parsed CPPLINT.cfg.
type CfgFile struct {
	Path         string
	NoParent     bool
	Filters      []Filter
	ExcludeFiles []*regex.Regexp
	LineLength   int // 0 when unset
	Extensions   strutil.Set
	Headers      strutil.Set
	IncludeOrder string
	Root         string // already joined with the directory of the file
}

// ParseCfg parses the content of a configuration file. Problems are
// returned as messages; the entries that parsed are kept.
func ParseCfg(path string, content []byte) (*CfgFile, []string) {
	cfg := &CfgFile{Path: path}
	var problems []string

	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strutil.Strip(line)
		if line == "" {
			continue
		}
		name, val := line, ""
		if i := strings.IndexByte(line, '='); i >= 0 {
			name, val = strutil.Strip(line[:i]), strutil.Strip(line[i+1:])
		}

		switch name {
		case "set noparent":
			cfg.NoParent = true
		case "filter":
			fs, err := ParseFilters(val)
			cfg.Filters = append(cfg.Filters, fs...)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: Every filter must start with + or - (%s)", path, val))
			}
		case "exclude_files":
			re, err := regex.Compile(val)
			if err != nil {
				problems = append(problems, fmt.Sprintf("%s: invalid exclude_files pattern %q: %v", path, val, err))
				continue
			}
			cfg.ExcludeFiles = append(cfg.ExcludeFiles, re)
		case "linelength":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				problems = append(problems, fmt.Sprintf("Line length must be numeric in file (%s)", path))
				continue
			}
			cfg.LineLength = n
		case "extensions":
			cfg.Extensions = strutil.ParseSet(val)
		case "headers":
			cfg.Headers = strutil.ParseSet(val)
		case "includeorder":
			cfg.IncludeOrder = val
		case "root":
			// relative to the directory holding the file
			cfg.Root = filepath.Join(filepath.Dir(path), val)
		default:
			problems = append(problems, fmt.Sprintf("Invalid configuration option (%s) in file %s", name, path))
		}
	}
	return cfg, problems
}

// Cache loads each configuration file once per run. It is safe for
// concurrent use; a file is read under the lock, so its problems are
// reported only once.
type Cache struct {
	fs     afero.Fs
	log    logrus.FieldLogger
	notify Notifier

	mu    sync.Mutex
	files map[string]*CfgFile
}

// NewCache creates a cache reading through fs.
func NewCache(fs afero.Fs, log logrus.FieldLogger, notify Notifier) *Cache {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Cache{fs: fs, log: log, notify: notify, files: make(map[string]*CfgFile)}
}

// Get returns the parsed file at path. A file that can not be read yields an
// empty configuration.
func (c *Cache) Get(path string) *CfgFile {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cfg, ok := c.files[path]; ok {
		c.log.WithField("path", path).Debug("config cache hit")
		return cfg
	}

	content, err := afero.ReadFile(c.fs, path)
	if err != nil {
		c.notify.PrintError(fmt.Sprintf("Skipping config file '%s': Can't open for reading\n", path))
		cfg := &CfgFile{Path: path}
		c.files[path] = cfg
		return cfg
	}
	cfg, problems := ParseCfg(path, content)
	for _, p := range problems {
		c.notify.PrintError(p + "\n")
	}
	c.log.WithFields(logrus.Fields{"path": path, "filters": len(cfg.Filters)}).Debug("config loaded")
	c.files[path] = cfg
	return cfg
}

// ApplyOverrides walks up from filename applying every configuration file
// until one says "set noparent". It returns false when the file is excluded
// by an exclude_files pattern. filename should be absolute.
func (o *Options) ApplyOverrides(c *Cache, filename string, quiet bool) bool {
	path := filename
	for {
		dir := filepath.Dir(path)
		if dir == path {
			break
		}
		cfgPath := filepath.Join(dir, o.ConfigName)
		if info, err := c.fs.Stat(cfgPath); err != nil || !info.Mode().IsRegular() {
			path = dir
			continue
		}

		cfg := c.Get(cfgPath)

		// Patterns see the name of the component directly below the
		// directory holding the file: for /foo/bar/baz.cc and /foo/CPPLINT.cfg
		// that is "bar".
		base := filepath.Base(path)
		for _, re := range cfg.ExcludeFiles {
			if re.MatchesStart(base) {
				if !quiet {
					c.notify.PrintInfo(fmt.Sprintf("Ignoring \"%s\": file excluded by \"%s\". File path component %s matches pattern %s\n",
						filename, cfgPath, base, re.String()))
				}
				return false
			}
		}

		o.Filters = append(o.Filters, cfg.Filters...)
		if cfg.LineLength > 0 {
			o.LineLength = cfg.LineLength
		}
		if len(cfg.Extensions) > 0 {
			o.Extensions = cfg.Extensions
		}
		if len(cfg.Headers) > 0 {
			o.Headers = cfg.Headers
		}
		if cfg.IncludeOrder != "" {
			if err := o.SetIncludeOrder(cfg.IncludeOrder); err != nil {
				c.notify.PrintError(fmt.Sprintf("%s: %v\n", cfgPath, err))
			}
		}
		if cfg.Root != "" {
			o.Root = cfg.Root
		}

		if cfg.NoParent {
			break
		}
		path = dir
	}
	return true
}
