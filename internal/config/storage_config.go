package config

// StorageConfig defines where last known content and check history live
type StorageConfig struct {
	Backend       string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,backend"`
	CacheDir      string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
	SQLitePath    string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	HistoryDir    string `json:"history_dir,omitempty" yaml:"history_dir,omitempty"`
	EnableHistory bool   `json:"enable_history" yaml:"enable_history"`
	// HistoryMaxRecords caps the rows kept per resource; 0 keeps everything.
	HistoryMaxRecords int `json:"history_max_records,omitempty" yaml:"history_max_records,omitempty" validate:"min=0"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend:           DefaultStorageBackend,
		CacheDir:          DefaultStorageCacheDir,
		SQLitePath:        DefaultStorageSQLitePath,
		HistoryDir:        DefaultStorageHistoryDir,
		EnableHistory:     true,
		HistoryMaxRecords: DefaultHistoryMaxRecords,
	}
}
