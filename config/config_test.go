package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			APIKey:  "valid-api-key",
			BaseURL: "https://www.omdbapi.com/",
			Timeout: 30 * time.Second,
		},
		Output: OutputConfig{Format: "table"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "missing api key",
			mutate:  func(cfg *Config) { cfg.OMDb.APIKey = "" },
			wantErr: true,
		},
		{
			name:    "placeholder api key",
			mutate:  func(cfg *Config) { cfg.OMDb.APIKey = "your-api-key-here" },
			wantErr: true,
		},
		{
			name:    "missing base url",
			mutate:  func(cfg *Config) { cfg.OMDb.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.OMDb.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "logfmt" },
			wantErr: true,
		},
		{
			name:    "invalid output format",
			mutate:  func(cfg *Config) { cfg.Output.Format = "csv" },
			wantErr: true,
		},
		{
			name:    "json output format",
			mutate:  func(cfg *Config) { cfg.Output.Format = "json" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `omdb:
  api_key: file-key
  timeout: 5s
filter:
  default: Year >= 2000
  presets:
    recent: Year >= 2020
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OMDb.APIKey != "file-key" {
		t.Errorf("OMDb.APIKey = %q, want %q", cfg.OMDb.APIKey, "file-key")
	}
	if cfg.OMDb.Timeout != 5*time.Second {
		t.Errorf("OMDb.Timeout = %v, want 5s", cfg.OMDb.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if got := cfg.Filter.Presets["recent"]; got != "Year >= 2020" {
		t.Errorf("Filter.Presets[recent] = %q, want %q", got, "Year >= 2020")
	}

	// Values absent from the file keep their defaults.
	if cfg.OMDb.BaseURL != "https://www.omdbapi.com/" {
		t.Errorf("OMDb.BaseURL = %q, want default", cfg.OMDb.BaseURL)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("Output.Format = %q, want table", cfg.Output.Format)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for a missing explicit config file")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("omdb:\n  api_key: file-key\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CINEDEX_OMDB_API_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OMDb.APIKey != "env-key" {
		t.Errorf("OMDb.APIKey = %q, want environment override", cfg.OMDb.APIKey)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "omdb:\n  api_key: file-key\nlogging:\n  level: loud\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load() expected validation error for bad logging level")
	}
}
