package constants

const (
	AppName            = "taskflow"
	DefaultKeyringUser = "database-connection"
	DefaultUserID      = "local"
	DefaultConfigPath  = "~/.config/taskflow/taskflow.db"
	ConnectionEnvVar   = "TASKFLOW_DB_CONNECTION"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "taskflow-"
	BackupFileSuffix = ".db"

	// Server constants
	DefaultServerAddr = "127.0.0.1:8080"
	PidfileName       = "taskflow-serve.pid"

	// Theme defaults
	DefaultThemeMode      = "light"
	DefaultPrimaryColor   = "#3b82f6"
	DefaultSecondaryColor = "#8b5cf6"
	DefaultAccentColor    = "#ec4899"
	DefaultCustomName     = "User"

	// Progress window sizes
	DailyWindowDays     = 7
	WeeklyWindowWeeks   = 4
	MonthlyWindowMonths = 3
)
