package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/healthtoday/healthtoday/internal/api"
	"github.com/healthtoday/healthtoday/internal/httpserver"
	"github.com/healthtoday/healthtoday/internal/model"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	defaultExercisePageSize = model.DefaultExercisePageSize
	defaultNewsPageSize     = model.DefaultNewsPageSize
	defaultRequestTimeout   = model.DefaultRequestTimeout
	defaultCacheTTL         = model.DefaultCacheTTL
	defaultQueryTimeout     = 10 * time.Second
	defaultLogLevel         = "info"
)

// appConfig is internal runtime configuration.
type appConfig struct {
	DBPath             string        `mapstructure:"db-path"`
	QueryTimeout       time.Duration `mapstructure:"query-timeout"`
	RequestTimeout     time.Duration `mapstructure:"request-timeout"`
	ExerciseAPIURL     string        `mapstructure:"exercise-api-url"`
	ExerciseAPIHost    string        `mapstructure:"exercise-api-host"`
	ExerciseAPIKey     string        `mapstructure:"exercise-api-key"`
	NewsAPIURL         string        `mapstructure:"news-api-url"`
	NutritionAPIURL    string        `mapstructure:"nutrition-api-url"`
	NutritionAPIKey    string        `mapstructure:"nutrition-api-key"`
	ExercisePageSize   int           `mapstructure:"exercise-page-size"`
	NewsPageSize       int           `mapstructure:"news-page-size"`
	CacheTTL           time.Duration `mapstructure:"cache-ttl"`
	APIEnabled         bool          `mapstructure:"api-enabled"`
	APIAddr            string        `mapstructure:"api-addr"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	LogLevel           string        `mapstructure:"log-level"`
	ConfigPath         string        `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("HEALTHTODAY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("db-path", filepath.Join(home, ".local", "share", "healthtoday", "healthtoday.duckdb"))
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("request-timeout", defaultRequestTimeout)
	v.SetDefault("exercise-api-url", api.DefaultExerciseURL)
	v.SetDefault("exercise-api-host", api.DefaultExerciseHost)
	v.SetDefault("exercise-api-key", "")
	v.SetDefault("news-api-url", api.DefaultNewsURL)
	v.SetDefault("nutrition-api-url", api.DefaultNutritionURL)
	v.SetDefault("nutrition-api-key", "")
	v.SetDefault("exercise-page-size", defaultExercisePageSize)
	v.SetDefault("news-page-size", defaultNewsPageSize)
	v.SetDefault("cache-ttl", defaultCacheTTL)
	v.SetDefault("api-enabled", false)
	v.SetDefault("api-addr", httpserver.DefaultAddr)
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("log-level", defaultLogLevel)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "healthtoday", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.ExercisePageSize <= 0 {
		return cfg, fmt.Errorf("invalid exercise-page-size: %d", cfg.ExercisePageSize)
	}
	if cfg.NewsPageSize <= 0 {
		return cfg, fmt.Errorf("invalid news-page-size: %d", cfg.NewsPageSize)
	}
	if cfg.RequestTimeout <= 0 {
		return cfg, fmt.Errorf("invalid request-timeout: %s", cfg.RequestTimeout)
	}
	if cfg.CacheTTL < 0 {
		return cfg, fmt.Errorf("invalid cache-ttl: %s", cfg.CacheTTL)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("invalid log-level %q: %w", cfg.LogLevel, err)
	}

	// Expand ~ in db-path
	if strings.HasPrefix(cfg.DBPath, "~/") {
		cfg.DBPath = filepath.Join(home, cfg.DBPath[2:])
	}

	return cfg, nil
}

func (cfg appConfig) apiConfig() api.Config {
	return api.Config{
		ExerciseURL:  cfg.ExerciseAPIURL,
		ExerciseHost: cfg.ExerciseAPIHost,
		ExerciseKey:  cfg.ExerciseAPIKey,
		NewsURL:      cfg.NewsAPIURL,
		NutritionURL: cfg.NutritionAPIURL,
		NutritionKey: cfg.NutritionAPIKey,
		Timeout:      cfg.RequestTimeout,
		CacheTTL:     cfg.CacheTTL,
		UserAgent:    "healthtoday/" + version,
	}
}
