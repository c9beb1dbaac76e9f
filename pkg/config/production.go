package config

import (
	"os"
	"path/filepath"
	"strconv"
)

func loadProductionConfig(cfg *Config) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err == nil {
		cfg.ServerPort = port
	}

	dataDir := os.Getenv("DATA_DIRECTORY")
	if dataDir == "" {
		dataDir = "/data"
	}

	cfg.DatabaseDebug = false
	cfg.DatabaseFilePath = filepath.Join(dataDir, "readlog.sqlite")
	cfg.ServerHost = "0.0.0.0"
}
