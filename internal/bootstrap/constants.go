package bootstrap

// Directory permission for created runtime directories
const DirPermission = 0755

// Log messages for application startup
const (
	LogMsgLoggingInitialized         = "Logging initialized"
	LogMsgStartingApp                = "Starting StriderQuest"
	LogMsgConfigurationLoaded        = "Configuration loaded"
	LogMsgUsingPostgresStores        = "Using PostgreSQL stores"
	LogMsgUsingMemoryStores          = "DATABASE_URL not reachable, using in-memory stores"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
)

// Log messages for application shutdown
const (
	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgServerStopped         = "Server stopped"
)
