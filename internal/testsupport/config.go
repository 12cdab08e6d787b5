package testsupport

import (
	"path/filepath"
	"testing"

	"gordiva/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	cfg.Paths.CSVDir = filepath.Join(base, "csv")
	cfg.Paths.DBDir = filepath.Join(base, "db")
	cfg.Paths.XMLCheckinDir = filepath.Join(base, "xml")
	cfg.Paths.ProxyStoreDir = filepath.Join(base, "proxies")
	cfg.Paths.DaletTmpDir = filepath.Join(base, "tmp_checkin")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithCheckinLimits overrides the descriptor batch limits on the test config.
func WithCheckinLimits(defaultLimit, maxLimit int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Checkin.DefaultLimit = defaultLimit
		cfg.Checkin.MaxLimit = maxLimit
	}
}

// WithWatchFolderRoot overrides the Dalet watch folder root.
func WithWatchFolderRoot(root string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Checkin.WatchFolderRoot = root
	}
}
