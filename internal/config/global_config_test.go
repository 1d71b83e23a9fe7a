package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/urlchecker/internal/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches into dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func clearSecretEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvConfigPath, EnvTelegramBotToken, EnvTelegramChatID, EnvDiscordWebhook, EnvBearerToken} {
		t.Setenv(key, "")
	}
}

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	assert.Equal(t, DefaultFetchTimeoutSecs, cfg.FetchConfig.TimeoutSeconds)
	assert.Equal(t, StorageBackendFile, cfg.StorageConfig.Backend)
	assert.Equal(t, DefaultDiffContextLines, cfg.DiffReporterConfig.ContextLines)
	assert.Equal(t, ProviderTelegram, cfg.NotificationConfig.Provider)
	assert.Equal(t, "info", cfg.LogConfig.LogLevel)
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	clearSecretEnv(t)
	chdir(t, t.TempDir())

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, NewDefaultGlobalConfig(), cfg)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	assert.Nil(t, cfg)
	var validationErr *common.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	clearSecretEnv(t)
	configFile := filepath.Join(t.TempDir(), "config.json")

	configData := `{
		"log_config": {"log_level": "debug"},
		"fetch_config": {"timeout_seconds": 30, "user_agent": "test-agent"},
		"storage_config": {"backend": "sqlite", "sqlite_path": "x.db"}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, 30, cfg.FetchConfig.TimeoutSeconds)
	assert.Equal(t, "test-agent", cfg.FetchConfig.UserAgent)
	assert.Equal(t, StorageBackendSQLite, cfg.StorageConfig.Backend)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultDiffReportDir, cfg.DiffReporterConfig.ReportDir)
}

func TestLoadGlobalConfig_YAMLFileWithEnvOverrides(t *testing.T) {
	clearSecretEnv(t)
	t.Setenv(EnvTelegramBotToken, "env-token")
	t.Setenv(EnvBearerToken, "bearer")
	configFile := filepath.Join(t.TempDir(), "urlchecker.yaml")

	configData := `
notification_config:
  provider: telegram
  telegram_bot_token: file-token
  telegram_chat_id: "12345"
diff_reporter_config:
  context_lines: -1
  save_reports: true
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.NotificationConfig.TelegramBotToken)
	assert.Equal(t, "12345", cfg.NotificationConfig.TelegramChatID)
	assert.Equal(t, "bearer", cfg.FetchConfig.BearerToken)
	assert.Equal(t, -1, cfg.DiffReporterConfig.ContextLines)
	assert.True(t, cfg.DiffReporterConfig.SaveReports)
	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	clearSecretEnv(t)
	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("log_config: [unclosed"), 0644))

	_, err := LoadGlobalConfig(configFile, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestGetConfigPath(t *testing.T) {
	clearSecretEnv(t)
	chdir(t, t.TempDir())
	dir, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "", GetConfigPath(""))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(dir, "config.json"), GetConfigPath(""))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{}"), 0644))
	assert.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigPath(""))

	envFile := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(envFile, []byte("{}"), 0644))
	t.Setenv(EnvConfigPath, envFile)
	assert.Equal(t, envFile, GetConfigPath(""))

	flagFile := filepath.Join(t.TempDir(), "flag.yaml")
	require.NoError(t, os.WriteFile(flagFile, []byte("{}"), 0644))
	assert.Equal(t, flagFile, GetConfigPath(flagFile))
}

func TestLoadDotEnv(t *testing.T) {
	clearSecretEnv(t)
	require.NoError(t, os.Unsetenv(EnvTelegramChatID))
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TELEGRAM_CHAT_ID=999\nTELEGRAM_BOT_TOKEN=from-file\n"), 0644))
	t.Setenv(EnvTelegramBotToken, "already-set")

	require.NoError(t, LoadDotEnv(envFile))
	t.Cleanup(func() { _ = os.Unsetenv(EnvTelegramChatID) })

	assert.Equal(t, "999", os.Getenv(EnvTelegramChatID))
	assert.Equal(t, "already-set", os.Getenv(EnvTelegramBotToken))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
