package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for the migration workspace.
type Paths struct {
	ExportDir     string `toml:"export_dir"`
	CSVDir        string `toml:"csv_dir"`
	DBDir         string `toml:"db_dir"`
	XMLCheckinDir string `toml:"xml_checkin_dir"`
	ProxyStoreDir string `toml:"proxy_store_dir"`
	DaletTmpDir   string `toml:"dalet_tmp_dir"`
	LogDir        string `toml:"log_dir"`
}

// Checkin contains settings for descriptor generation.
type Checkin struct {
	// WatchFolderRoot is prefixed to the OC component name to build the
	// Dalet folder path written into each descriptor.
	WatchFolderRoot string `toml:"watch_folder_root"`
	// DefaultLimit caps how many descriptors one batch writes when no
	// explicit limit is given.
	DefaultLimit int `toml:"default_limit"`
	// MaxLimit is the upper bound accepted from flags or the prompt.
	MaxLimit int `toml:"max_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration for the migration toolkit.
//
// Sections by subsystem:
//   - Paths: workspace directories (exports, CSVs, datastore, descriptors,
//     proxy storage, Dalet tmp, logs)
//   - Checkin: descriptor generation settings
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Checkin Checkin `toml:"checkin"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/gordiva/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("gordiva.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the workspace directories a batch run needs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.ExportDir,
		c.Paths.CSVDir,
		c.Paths.DBDir,
		c.Paths.XMLCheckinDir,
		c.Paths.DaletTmpDir,
		c.Paths.LogDir,
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the assets datastore.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DBDir, "assets.db")
}

// LockPath returns the location of the batch lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DBDir, "gordiva.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
