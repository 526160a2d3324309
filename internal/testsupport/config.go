package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"speakerline/internal/config"
)

// ConfigOption adjusts a test configuration after its directories exist.
type ConfigOption func(t testing.TB, cfg *config.Config)

// NewConfig returns defaults rooted in a fresh temp directory: outputs under
// output/, logs under logs/, pretty JSON, and two batch workers.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(root, "output")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Output.Pretty = true
	cfg.Pipeline.Concurrency = 2

	for _, opt := range opts {
		opt(t, &cfg)
	}
	return &cfg
}

// BaseDir returns the temp directory that NewConfig rooted cfg in.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}

func WithFormats(formats ...string) ConfigOption {
	return func(_ testing.TB, cfg *config.Config) { cfg.Output.Formats = formats }
}

func WithGzip(enabled bool) ConfigOption {
	return func(_ testing.TB, cfg *config.Config) { cfg.Output.Gzip = enabled }
}

func WithConcurrency(n int) ConfigOption {
	return func(_ testing.TB, cfg *config.Config) { cfg.Pipeline.Concurrency = n }
}

// WithStubbedBinaries puts no-op executables named ffmpeg and uvx (or the
// given names) first on PATH for the rest of the test.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(t testing.TB, cfg *config.Config) {
		t.Helper()
		if len(names) == 0 {
			names = []string{"ffmpeg", "uvx"}
		}
		bin := filepath.Join(BaseDir(cfg), "bin")
		if err := os.MkdirAll(bin, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", bin, err)
		}
		for _, name := range names {
			stub := filepath.Join(bin, name)
			if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
				t.Fatalf("write stub %s: %v", name, err)
			}
		}
		t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}
