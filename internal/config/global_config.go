package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/aleister1102/urlchecker/internal/logger"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	LogConfig          logger.FileLogConfig `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	FetchConfig        FetchConfig          `json:"fetch_config,omitempty" yaml:"fetch_config,omitempty"`
	StorageConfig      StorageConfig        `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	DiffReporterConfig DiffReporterConfig   `json:"diff_reporter_config,omitempty" yaml:"diff_reporter_config,omitempty"`
	NotificationConfig NotificationConfig   `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:          logger.NewDefaultFileLogConfig(),
		FetchConfig:        NewDefaultFetchConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		DiffReporterConfig: NewDefaultDiffReporterConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations,
// then overlays secrets from the environment. YAML is used for .yaml/.yml
// files, JSON otherwise. No file at all yields the defaults.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath != "" && !fileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath != "" {
		data, err := loadConfigFileContent(filePath)
		if err != nil {
			return nil, common.WrapError(err, "failed to load config file content")
		}

		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, common.WrapError(err, "failed to parse config content")
		}
		logger.Debug().Str("path", filePath).Msg("Configuration file loaded")
	}

	ApplyEnvOverrides(cfg)
	return cfg, nil
}

func loadConfigFileContent(filePath string) ([]byte, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxConfigFileSize {
		return nil, common.NewValidationError("config_file", filePath, "config file exceeds 10MB")
	}
	return os.ReadFile(filePath)
}

func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
