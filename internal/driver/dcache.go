package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"

	"cpplint/internal/diag"
	"cpplint/internal/project"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps the diagnostics of linted files on disk, keyed by a
// digest of the file content and the options it was checked with.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	fs  afero.Fs
	dir string
	log logrus.FieldLogger
}

// DiskPayload is the record stored per file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	File        string
	Diagnostics []DiskDiagnostic
	Stored      int64 // unix seconds
}

// DiskDiagnostic is the compact form of a diag.Diagnostic. The file name is
// taken from the payload.
type DiskDiagnostic struct {
	Line       uint32
	Category   string
	Confidence uint8
	Message    string
}

// DefaultCacheDir returns $XDG_CACHE_HOME/app, or ~/.cache/app.
func DefaultCacheDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// OpenDiskCache creates dir if needed and returns a cache stored in it.
func OpenDiskCache(fsys afero.Fs, dir string, log logrus.FieldLogger) (*DiskCache, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &DiskCache{fs: fsys, dir: dir, log: log.WithField("cache", dir)}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог по первым двум символам, чтобы не складывать всё в одну папку.
	return filepath.Join(c.dir, "files", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := c.fs.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := afero.TempFile(c.fs, filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// после успешного Rename файла уже нет
		if rmErr := c.fs.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			c.log.WithError(rmErr).Debug("failed to remove temp file")
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return c.fs.Rename(tmp, p)
}

// Get reads and deserializes a payload from the disk cache. A payload of
// another schema version is a miss.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := c.fs.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached record. Writers wait on the lock, so no
// record is half-written while the directory goes away.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fs.RemoveAll(c.dir)
}

// Results adapts the cache to linter.ResultCache. Read and write failures
// are logged and treated as misses.
func (c *DiskCache) Results() *ResultStore {
	return &ResultStore{cache: c}
}

// ResultStore implements linter.ResultCache on top of a DiskCache.
type ResultStore struct {
	cache *DiskCache
}

func (s *ResultStore) Get(key project.Digest) ([]diag.Diagnostic, bool) {
	var payload DiskPayload
	ok, err := s.cache.Get(key, &payload)
	if err != nil {
		s.cache.log.WithError(err).Debug("cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return payloadToDiagnostics(&payload), true
}

func (s *ResultStore) Put(key project.Digest, diags []diag.Diagnostic) {
	payload, err := diagnosticsToPayload(diags)
	if err != nil {
		s.cache.log.WithError(err).Debug("diagnostics not cacheable")
		return
	}
	if err := s.cache.Put(key, payload); err != nil {
		s.cache.log.WithError(err).Warn("cache write failed")
	}
}

// diagnosticsToPayload converts the diagnostics of one file for storage.
func diagnosticsToPayload(diags []diag.Diagnostic) (*DiskPayload, error) {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Diagnostics: make([]DiskDiagnostic, len(diags)),
		Stored:      time.Now().Unix(),
	}
	for i, d := range diags {
		if i == 0 {
			payload.File = d.File
		}
		line, err := safecast.Conv[uint32](d.Line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", d.Line, err)
		}
		conf, err := safecast.Conv[uint8](d.Confidence)
		if err != nil {
			return nil, fmt.Errorf("confidence %d: %w", d.Confidence, err)
		}
		payload.Diagnostics[i] = DiskDiagnostic{
			Line:       line,
			Category:   d.Category,
			Confidence: conf,
			Message:    d.Message,
		}
	}
	return payload, nil
}

func payloadToDiagnostics(payload *DiskPayload) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(payload.Diagnostics))
	for i, d := range payload.Diagnostics {
		out[i] = diag.Diagnostic{
			File:       payload.File,
			Line:       int(d.Line),
			Category:   d.Category,
			Confidence: int(d.Confidence),
			Message:    d.Message,
		}
	}
	return out
}
