package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"gordiva/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCSV := filepath.Join(tempHome, ".local", "share", "gordiva", "csv")
	if cfg.Paths.CSVDir != wantCSV {
		t.Fatalf("unexpected csv dir: got %q want %q", cfg.Paths.CSVDir, wantCSV)
	}
	wantDB := filepath.Join(tempHome, ".local", "share", "gordiva", "db")
	if cfg.Paths.DBDir != wantDB {
		t.Fatalf("unexpected db dir: got %q want %q", cfg.Paths.DBDir, wantDB)
	}
	if cfg.Paths.ProxyStoreDir != "/mnt/gorilla/proxies" {
		t.Fatalf("unexpected proxy store dir: %q", cfg.Paths.ProxyStoreDir)
	}
	if cfg.Checkin.WatchFolderRoot != "T://DaletStorage/Video_Watch_Folder" {
		t.Fatalf("unexpected watch folder root: %q", cfg.Checkin.WatchFolderRoot)
	}
	if cfg.Checkin.DefaultLimit != config.Default().Checkin.DefaultLimit {
		t.Fatalf("unexpected default limit: %d", cfg.Checkin.DefaultLimit)
	}
	if cfg.Checkin.MaxLimit != config.Default().Checkin.MaxLimit {
		t.Fatalf("unexpected max limit: %d", cfg.Checkin.MaxLimit)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}

	if cfg.DatabasePath() != filepath.Join(wantDB, "assets.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
	if cfg.LockPath() != filepath.Join(wantDB, "gordiva.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.ExportDir, cfg.Paths.CSVDir, cfg.Paths.DBDir, cfg.Paths.XMLCheckinDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "gordiva.toml")

	type payload struct {
		Paths struct {
			CSVDir        string `toml:"csv_dir"`
			ProxyStoreDir string `toml:"proxy_store_dir"`
		} `toml:"paths"`
		Checkin struct {
			WatchFolderRoot string `toml:"watch_folder_root"`
			DefaultLimit    int    `toml:"default_limit"`
		} `toml:"checkin"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.CSVDir = filepath.Join(tempDir, "csv")
	custom.Paths.ProxyStoreDir = filepath.Join(tempDir, "proxies")
	custom.Checkin.WatchFolderRoot = "T://DaletStorage/Alt_Watch_Folder"
	custom.Checkin.DefaultLimit = 25
	custom.Logging.Format = "json"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.CSVDir != custom.Paths.CSVDir {
		t.Fatalf("expected csv dir override, got %q", cfg.Paths.CSVDir)
	}
	if cfg.Paths.ProxyStoreDir != custom.Paths.ProxyStoreDir {
		t.Fatalf("expected proxy store override, got %q", cfg.Paths.ProxyStoreDir)
	}
	if cfg.Checkin.WatchFolderRoot != "T://DaletStorage/Alt_Watch_Folder" {
		t.Fatalf("expected watch folder override, got %q", cfg.Checkin.WatchFolderRoot)
	}
	if cfg.Checkin.DefaultLimit != 25 {
		t.Fatalf("expected default limit 25, got %d", cfg.Checkin.DefaultLimit)
	}
	if cfg.Checkin.MaxLimit != config.Default().Checkin.MaxLimit {
		t.Fatalf("expected max limit to keep default, got %d", cfg.Checkin.MaxLimit)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
	// Paths written into a DB dir left at defaults still expand.
	if strings.HasPrefix(cfg.Paths.DBDir, "~") {
		t.Fatalf("expected expanded db dir, got %q", cfg.Paths.DBDir)
	}
}

func TestLoadMissingCustomPathReturnsDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "absent.toml")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists to be false")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Checkin.DefaultLimit != config.Default().Checkin.DefaultLimit {
		t.Fatalf("expected default limit, got %d", cfg.Checkin.DefaultLimit)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "watch_folder_root") {
		t.Fatalf("sample config missing watch_folder_root: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.CSVDir, "gordiva") {
		t.Fatalf("expected csv dir to contain gordiva, got %q", cfg.Paths.CSVDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	t.Run("missing csv dir", func(t *testing.T) {
		cfg := config.Default()
		cfg.Paths.CSVDir = ""
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for empty csv_dir")
		}
	})

	t.Run("missing db dir", func(t *testing.T) {
		cfg := config.Default()
		cfg.Paths.DBDir = ""
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for empty db_dir")
		}
	})

	t.Run("default limit above max", func(t *testing.T) {
		cfg := config.Default()
		cfg.Checkin.DefaultLimit = 100
		cfg.Checkin.MaxLimit = 10
		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected error for default_limit above max_limit")
		}
		if !strings.Contains(err.Error(), "default_limit") {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("bad log format", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Format = "xml"
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for unsupported log format")
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := config.Default()
		cfg.Logging.Level = "verbose"
		if err := cfg.Validate(); err == nil {
			t.Fatal("expected error for unsupported log level")
		}
	})
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "gordiva.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nformat = \"yaml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected validation error for bad format")
	}
}
