package constants

import "time"

const (
	AppName            = "tracklit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/tracklit"
	DefaultConfigFile  = "config.yaml"
	DefaultStorePath   = "~/.config/tracklit/tracklit.db"
	Version            = "v0.3.0"

	// DateFormat is the calendar-day key format used for checks and reports (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the clock format used for entry input and display (HH:MM)
	TimeFormat = "15:04"

	// DateTimeFormat is accepted for manual entry boundaries
	DateTimeFormat = "2006-01-02 15:04"

	// StreakLookbackDays bounds the backward walk of the streak calculator
	StreakLookbackDays = 365

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tracklit-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "tracklit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.tracklit"
	TrayExecutablePrefix   = "tracklit-tray"

	// Units reported by goal evaluation
	UnitMinutes     = "minutes"
	UnitCompletions = "completions"
	UnitDays        = "days"
	UnitUnknown     = "unknown"

	// Watcher debounce for external store changes
	WatchDebounce = 200 * time.Millisecond
)
