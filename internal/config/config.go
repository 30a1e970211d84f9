package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"

	applog "github.com/Tiliavir/workhours/internal/log"
)

// Config is the root configuration for wh, stored in ~/.workhours/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	Storage  StorageConfig `json:"storage"`
	LogLevel string        `json:"log_level"`
}

// StorageConfig selects and locates the persistence backend.
type StorageConfig struct {
	// Backend is "json" or "sqlite".
	Backend string `json:"backend"`
	// DataFile is the JSON data file. Relative paths resolve against the base directory.
	DataFile string `json:"data_file"`
	// SQLitePath is the SQLite database file. Relative paths resolve against the base directory.
	SQLitePath string `json:"sqlite_path"`
}

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultDataFile   = "work_hours_data.json"
	DefaultSQLitePath = "workhours.db"
	DefaultLogLevel   = "warn"
)

// Environment variables that override file settings. They may also be set in
// a .env file in the working directory.
const (
	EnvBackend    = "WORKHOURS_BACKEND"
	EnvDataFile   = "WORKHOURS_DATA_FILE"
	EnvSQLitePath = "WORKHOURS_SQLITE_PATH"
	EnvLogLevel   = "WORKHOURS_LOG_LEVEL"
)

var validBackends = []string{BackendJSON, BackendSQLite}

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:    BackendJSON,
			DataFile:   DefaultDataFile,
			SQLitePath: DefaultSQLitePath,
		},
		LogLevel: DefaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// wh configuration – ~/.workhours/config.json
//
// All settings are optional. Environment variables (WORKHOURS_BACKEND,
// WORKHOURS_DATA_FILE, WORKHOURS_SQLITE_PATH, WORKHOURS_LOG_LEVEL) or a .env
// file in the working directory override the values below.
{
  "storage": {
    // Where entries, categories and rates are kept.
    // • "json"   – a single human-readable file (default)
    // • "sqlite" – an SQLite database
    "backend": "json",

    // JSON data file. Relative paths are resolved against ~/.workhours.
    "data_file": "work_hours_data.json",

    // SQLite database file. Relative paths are resolved against ~/.workhours.
    "sqlite_path": "workhours.db"
  },

  // One of debug, info, warn, error. Diagnostics about malformed entries are
  // logged at warn.
  "log_level": "warn"
}
`

// BaseDir returns the root data directory (~/.workhours).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".workhours"), nil
}

// DefaultPath returns the path to ~/.workhours/config.json.
func DefaultPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config file at path (DefaultPath when empty), creating it
// with annotated defaults on first run, then applies environment overrides
// and resolves relative storage paths against the file's directory.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return defaultConfig(), err
		}
		path = p
	}
	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentConfig)

	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			logger.Warn("could not create config file", applog.FieldPath, path, applog.FieldError, writeErr)
		}
	case err != nil:
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
			return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	cfg.fillDefaults()
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Storage.Backend = getEnv(EnvBackend, c.Storage.Backend)
	c.Storage.DataFile = getEnv(EnvDataFile, c.Storage.DataFile)
	c.Storage.SQLitePath = getEnv(EnvSQLitePath, c.Storage.SQLitePath)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
}

// fillDefaults replaces zero-value fields with built-in defaults so callers
// always get a usable Config even if the user only partially fills in the file.
func (c *Config) fillDefaults() {
	def := defaultConfig()
	if c.Storage.Backend == "" {
		c.Storage.Backend = def.Storage.Backend
	}
	if c.Storage.DataFile == "" {
		c.Storage.DataFile = def.Storage.DataFile
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = def.Storage.SQLitePath
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

func (c *Config) resolvePaths(base string) {
	if !filepath.IsAbs(c.Storage.DataFile) {
		c.Storage.DataFile = filepath.Join(base, c.Storage.DataFile)
	}
	if !filepath.IsAbs(c.Storage.SQLitePath) {
		c.Storage.SQLitePath = filepath.Join(base, c.Storage.SQLitePath)
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.Storage.Backend) {
		errors = append(errors, fmt.Sprintf("invalid storage backend '%s': must be one of %v", c.Storage.Backend, validBackends))
	}
	if c.Storage.Backend == BackendJSON && c.Storage.DataFile == "" {
		errors = append(errors, "data file cannot be empty when using json backend")
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLitePath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}
	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
