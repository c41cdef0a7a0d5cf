package config

import "time"

func loadTestConfig(cfg *Config) {
	cfg.CatalogBaseURL = "http://localhost:6061/assets"
	cfg.CatalogRefreshInterval = time.Hour
	cfg.DatabaseConnectRetryDelay = 0
	cfg.DatabaseFilePath = "file::memory:?cache=shared"
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
}
