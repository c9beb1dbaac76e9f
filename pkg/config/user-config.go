package config

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// UserConfig holds settings the user can change without rebuilding, stored as
// a JSON file next to the database.
type UserConfig struct {
	DefaultPageSize int    `json:"default_page_size"`
	BackupDirectory string `json:"backup_directory"`
}

func userConfigFilePath() string {
	configDir := os.Getenv("CONFIG_DIRECTORY")
	if configDir == "" {
		configDir = "./tmp"
	}

	return filepath.Join(configDir, "config.json")
}

func loadUserConfig(configFilePath string) (*UserConfig, error) {
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return loadDefaultUserConfig(), nil
		}
		return nil, errors.WithStack(err)
	}

	userConfig := loadDefaultUserConfig()
	if err := json.Unmarshal(data, userConfig); err != nil {
		return nil, errors.WithStack(err)
	}

	return userConfig, nil
}

func loadDefaultUserConfig() *UserConfig {
	return &UserConfig{
		DefaultPageSize: 20,
		BackupDirectory: "./tmp/backups",
	}
}

func saveUserConfigFile(userConfig *UserConfig, configFilePath string) error {
	if err := os.MkdirAll(filepath.Dir(configFilePath), 0755); err != nil {
		return errors.WithStack(err)
	}

	data, err := json.MarshalIndent(userConfig, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(configFilePath, data, 0644) //nolint:gosec
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Save persists the current user settings back to disk.
func (cfg *Config) Save() error {
	return errors.WithStack(saveUserConfigFile(cfg.User, userConfigFilePath()))
}
