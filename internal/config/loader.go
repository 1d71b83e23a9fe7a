package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. --config command-line flag
// 2. URLCHECKER_CONFIG_PATH environment variable
// 3. config.yaml in the current working directory
// 4. config.json in the current working directory
// An empty string means no config file was found.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" && fileExists(configFilePathFlag) {
		return configFilePathFlag
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" && fileExists(envPath) {
		return envPath
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	for _, file := range []string{"config.yaml", "config.json"} {
		path := filepath.Join(cwd, file)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files into the
// process environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if fileExists(p) {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnvOverrides copies secrets from the environment into cfg.
// Non-empty environment values replace anything read from the file.
func ApplyEnvOverrides(cfg *GlobalConfig) {
	overrideFromEnv(&cfg.NotificationConfig.TelegramBotToken, EnvTelegramBotToken)
	overrideFromEnv(&cfg.NotificationConfig.TelegramChatID, EnvTelegramChatID)
	overrideFromEnv(&cfg.NotificationConfig.DiscordWebhookURL, EnvDiscordWebhook)
	overrideFromEnv(&cfg.FetchConfig.BearerToken, EnvBearerToken)
}

func overrideFromEnv(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
