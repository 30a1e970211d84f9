package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendJSON)
	}
	if want := filepath.Join(dir, "nested", DefaultDataFile); cfg.Storage.DataFile != want {
		t.Errorf("data file = %q, want %q", cfg.Storage.DataFile, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config template not written: %v", err)
	}

	// The template itself must parse once comments are stripped.
	var parsed Config
	if err := json.Unmarshal(stripLineComments([]byte(configTemplate)), &parsed); err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if parsed != defaultConfig() {
		t.Errorf("template = %+v, want %+v", parsed, defaultConfig())
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `// my settings
{
  "storage": {
    // use sqlite
    "backend": "sqlite",
    "sqlite_path": "/var/lib/wh.db"
  }
}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.SQLitePath != "/var/lib/wh.db" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("log level = %q, want default %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Storage.DataFile != filepath.Join(dir, DefaultDataFile) {
		t.Errorf("data file = %q", cfg.Storage.DataFile)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("err = %v, want parse error", err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv(EnvBackend, "sqlite")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDataFile, "/tmp/custom.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.LogLevel != "debug" || cfg.Storage.DataFile != "/tmp/custom.json" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid json backend",
			config: Config{Storage: StorageConfig{Backend: "json", DataFile: "/tmp/a.json"}, LogLevel: "info"},
		},
		{
			name:   "valid sqlite backend",
			config: Config{Storage: StorageConfig{Backend: "sqlite", SQLitePath: "/tmp/a.db"}, LogLevel: "warn"},
		},
		{
			name:        "unknown backend",
			config:      Config{Storage: StorageConfig{Backend: "csv"}, LogLevel: "info"},
			wantErr:     true,
			errorString: "invalid storage backend 'csv'",
		},
		{
			name:        "sqlite without path",
			config:      Config{Storage: StorageConfig{Backend: "sqlite"}, LogLevel: "info"},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "bad log level",
			config:      Config{Storage: StorageConfig{Backend: "json", DataFile: "x"}, LogLevel: "chatty"},
			wantErr:     true,
			errorString: "invalid log level 'chatty'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := Config{Storage: StorageConfig{Backend: "nope"}, LogLevel: "nope"}
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if got := strings.Count(err.Error(), "\n- "); got != 2 {
		t.Errorf("error lists %d problems, want 2: %v", got, err)
	}
}

func TestStripLineComments(t *testing.T) {
	in := "// header\n{\n  // note\n  \"a\": \"http://x\"\n}"
	got := string(stripLineComments([]byte(in)))
	if strings.Contains(got, "header") || strings.Contains(got, "note") {
		t.Errorf("comments not stripped: %q", got)
	}
	if !strings.Contains(got, "http://x") {
		t.Errorf("inline // in values must survive: %q", got)
	}
}
