package config

func loadProductionConfig(cfg *Config) {
	cfg.CatalogBaseURL = "http://localhost:8080/assets"
	cfg.DatabaseFilePath = "/data/blend.sqlite"
	cfg.ServerHost = "0.0.0.0"
}
