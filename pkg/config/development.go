package config

func loadDevelopmentConfig(cfg *Config) {
	cfg.CatalogBaseURL = "http://localhost:6060/assets"
	cfg.DatabaseDebug = true
	cfg.DatabaseFilePath = "./tmp/data.sqlite"
	cfg.FrontendURL = "http://localhost:6060"
	cfg.ServerHost = "127.0.0.1"
}
