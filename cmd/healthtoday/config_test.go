package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/healthtoday/healthtoday/internal/api"
	"github.com/healthtoday/healthtoday/internal/httpserver"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.ExercisePageSize != 10 || cfg.NewsPageSize != 4 {
		t.Errorf("page sizes = %d/%d, want 10/4", cfg.ExercisePageSize, cfg.NewsPageSize)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("request timeout = %s", cfg.RequestTimeout)
	}
	if cfg.ExerciseAPIURL != api.DefaultExerciseURL || cfg.NutritionAPIURL != api.DefaultNutritionURL {
		t.Errorf("default urls not applied: %+v", cfg)
	}
	if cfg.ExerciseAPIKey != "" || cfg.NutritionAPIKey != "" {
		t.Error("credentials should have no default")
	}
	if cfg.APIEnabled || cfg.APIAddr != httpserver.DefaultAddr {
		t.Errorf("api = %v %q", cfg.APIEnabled, cfg.APIAddr)
	}
	if !strings.HasSuffix(cfg.DBPath, filepath.Join(".local", "share", "healthtoday", "healthtoday.duckdb")) {
		t.Errorf("db path = %q", cfg.DBPath)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("HEALTHTODAY_NUTRITION_API_KEY", "from-env")

	path := writeConfig(t, `
db-path: ~/data/ht.duckdb
exercise-api-key: file-key
exercise-page-size: 20
cache-ttl: 0s
log-level: debug
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DBPath != filepath.Join(home, "data", "ht.duckdb") {
		t.Errorf("db path = %q", cfg.DBPath)
	}
	if cfg.ExerciseAPIKey != "file-key" {
		t.Errorf("exercise key = %q", cfg.ExerciseAPIKey)
	}
	if cfg.NutritionAPIKey != "from-env" {
		t.Errorf("nutrition key = %q", cfg.NutritionAPIKey)
	}
	if cfg.ExercisePageSize != 20 || cfg.CacheTTL != 0 {
		t.Errorf("page size %d ttl %s", cfg.ExercisePageSize, cfg.CacheTTL)
	}
	if cfg.ConfigPath != path {
		t.Errorf("config path = %q", cfg.ConfigPath)
	}

	ac := cfg.apiConfig()
	if ac.ExerciseKey != "file-key" || ac.NutritionKey != "from-env" || ac.CacheTTL != 0 {
		t.Errorf("apiConfig = %+v", ac)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"page size", "exercise-page-size: 0\n", "exercise-page-size"},
		{"news page size", "news-page-size: -1\n", "news-page-size"},
		{"timeout", "request-timeout: 0s\n", "request-timeout"},
		{"ttl", "cache-ttl: -1m\n", "cache-ttl"},
		{"level", "log-level: loud\n", "log-level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			_, err := loadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}
