package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./moviemaze.db" {
			t.Errorf("expected database path ./moviemaze.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Catalog.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("expected TMDB base URL, got %s", config.Catalog.BaseURL)
		}

		if config.Catalog.CacheTTL.Duration != 24*time.Hour {
			t.Errorf("expected cache ttl 24h, got %v", config.Catalog.CacheTTL.Duration)
		}

		if config.Catalog.APIKey != "your_tmdb_api_key" {
			t.Errorf("expected placeholder api key, got %s", config.Catalog.APIKey)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[storage]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080

[catalog]
api_key = "test_api_key"
rate_limit = 4.5
cache_ttl = "90m"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		if config.Catalog.APIKey != "test_api_key" {
			t.Errorf("expected api key test_api_key, got %s", config.Catalog.APIKey)
		}
		if config.Catalog.RateLimit != 4.5 {
			t.Errorf("expected rate limit 4.5, got %v", config.Catalog.RateLimit)
		}
		if config.Catalog.CacheTTL.Duration != 90*time.Minute {
			t.Errorf("expected cache ttl 90m, got %v", config.Catalog.CacheTTL.Duration)
		}

		// Keys missing from the file keep their defaults.
		if config.Catalog.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("expected default base URL to survive, got %s", config.Catalog.BaseURL)
		}
		if config.Database.MaxOpenConns != DefaultConfig().Database.MaxOpenConns {
			t.Errorf("expected default max_open_conns, got %d", config.Database.MaxOpenConns)
		}
	})

	t.Run("LoadConfig With Invalid Duration", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[catalog]\ncache_ttl = \"soon\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error for invalid duration")
		}
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("LoadConfigOrDefault", func(t *testing.T) {
		config, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Database.Path != "./moviemaze.db" {
			t.Errorf("expected defaults, got %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig With Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server\nport = "), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("Addr", func(t *testing.T) {
		tests := []struct {
			host string
			port int
			want string
		}{
			{"127.0.0.1", 3000, "127.0.0.1:3000"},
			{"::1", 3000, "[::1]:3000"},
			{"", 8080, ":8080"},
		}
		for _, tt := range tests {
			if got := (ServerConfig{Host: tt.host, Port: tt.port}).Addr(); got != tt.want {
				t.Errorf("Addr(%q, %d) = %q, want %q", tt.host, tt.port, got, tt.want)
			}
		}
	})

	t.Run("HasCredentials", func(t *testing.T) {
		if (CatalogConfig{}).HasCredentials() {
			t.Error("empty catalog config should not have credentials")
		}
		if !(CatalogConfig{ReadAccessToken: "tok"}).HasCredentials() {
			t.Error("read access token should count as credentials")
		}
	})
}
