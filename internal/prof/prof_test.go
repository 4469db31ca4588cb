package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSession(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUProfile: filepath.Join(dir, "cpu.out"),
		MemProfile: filepath.Join(dir, "mem.out"),
		Trace:      filepath.Join(dir, "trace.out"),
	}
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop should be a no-op, got %v", err)
	}
	for _, p := range []string{cfg.CPUProfile, cfg.MemProfile, cfg.Trace} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("Expected %s to exist: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("Expected %s to be non-empty", p)
		}
	}
}

func TestStartFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := Start(Config{CPUProfile: filepath.Join(dir, "missing", "cpu.out")})
	if err == nil {
		t.Fatal("Expected error for unwritable path")
	}
	// профиль не должен остаться включённым
	s, err := Start(Config{CPUProfile: filepath.Join(dir, "cpu.out")})
	if err != nil {
		t.Fatalf("Start after failure: %v", err)
	}
	_ = s.Stop()
}

func TestEmptyConfig(t *testing.T) {
	s, err := Start(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
