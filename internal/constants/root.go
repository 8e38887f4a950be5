package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "daytrack"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daytrack/daytrack.db"
	Version            = "v0.3.0"

	// KeyringConfig selects the PostgreSQL connection string stored in the OS keyring
	KeyringConfig = "keyring"
	// MemoryConfig selects a throwaway in-process store
	MemoryConfig = ":memory:"

	// Storage keys. The names match the entries written by the web version so
	// exported data can be loaded without renaming.
	KeyTasks          = "tasks"
	KeyHistory        = "taskHistory"
	KeyLastAccessDate = "lastAccessDate"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daytrack-"

	// Lock constants
	LockfileName = "daytrack.lock"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "daytrack.log"

	// API constants
	DefaultAPIAddr = "127.0.0.1:8080"
)

// Session States. The first TabCount states are the navigable tabs.
const (
	StateDaily SessionState = iota
	StateSpecificDay
	StateHistory
	StateAddTask
	StatePickDate
)

// TabCount is the number of navigable tabs in the TUI
const TabCount = 3
