package config

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	// Port 0 lets the listener pick a free port so tests can run in parallel.
	cfg.ServerPort = 0
}
