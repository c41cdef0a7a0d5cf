package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	CatalogBaseURL            string        `koanf:"catalog_base_url"`
	CatalogFetchTimeout       time.Duration `koanf:"catalog_fetch_timeout"`
	CatalogRefreshInterval    time.Duration `koanf:"catalog_refresh_interval"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	FrontendURL               string        `koanf:"frontend_url"`
	Hostname                  string        `koanf:"-"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"
	envPrefix      = "BLEND_"
)

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		CatalogFetchTimeout:       10 * time.Second,
		CatalogRefreshInterval:    15 * time.Minute,
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        3,
		Hostname:                  hostname,
		ServerPort:                3690,
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	// Overlay the optional config file and BLEND_-prefixed environment
	// variables on top of the environment defaults.
	k := koanf.New(".")

	if path := os.Getenv(configFileENV); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file: %s", path)
		}
	}

	err = k.Load(env.Provider(envPrefix, ".", envTransform), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	return cfg, nil
}
