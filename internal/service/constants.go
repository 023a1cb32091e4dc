package service

// Sync state keys
const (
	lastSyncKey = "last_activity_sync"
)

// DefaultAnalysisWorkers bounds concurrent goal analyses when the config
// doesn't say otherwise
const DefaultAnalysisWorkers = 4

// Only running activities feed goal analysis
const activityTypeRun = "Run"
