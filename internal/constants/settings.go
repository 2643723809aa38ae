package constants

const (
	// Config keys
	SettingStore         = "store"
	SettingTimezone      = "timezone"
	SettingNotifications = "notifications"
	SettingDebug         = "debug"
	SettingBackupOnStart = "backup_on_start"

	// Default config values
	DefaultTimezone      = "Local" // Use system local timezone by default
	DefaultNotifications = true
	DefaultBackupOnStart = true

	// StoreKeyring selects the PostgreSQL connection string saved in the OS keyring
	StoreKeyring = "keyring"

	// Environment override for the PostgreSQL connection string
	EnvDBConnection = "TRACKLIT_DB_CONNECTION"
)
