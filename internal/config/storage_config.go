package config

// StorageConfig defines configuration for fingerprint storage.
type StorageConfig struct {
	SQLiteDBPath string `json:"sqlite_db_path,omitempty" yaml:"sqlite_db_path,omitempty" validate:"required"`
	// StoreContent retains the last observed content per target so change
	// notifications can include a diff summary.
	StoreContent bool `json:"store_content" yaml:"store_content"`
}

// NewDefaultStorageConfig creates default storage configuration.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		SQLiteDBPath: DefaultSQLiteDBPath,
		StoreContent: true,
	}
}
