package atlas

// Activity type tags emitted by the Atlas API. The set is closed upstream;
// anything else is treated as an unknown event.
const (
	TypeScalingOperation = "SCALING_OPERATION"
	TypePlayerSurge      = "PLAYER_SURGE"
	TypePlayerDrop       = "PLAYER_DROP"
	TypeCapacityReached  = "CAPACITY_REACHED"
	TypeServerRestart    = "SERVER_RESTART"
	TypeAtlasLifecycle   = "ATLAS_LIFECYCLE"
	TypeBackupOperation  = "BACKUP_OPERATION"
)

// Activity is one recorded system event as returned by the Atlas API.
// Metadata is loosely typed; its shape depends on ActivityType and is only
// trusted for the fields relevant to that type.
type Activity struct {
	ID           string                 `json:"id"`
	ActivityType string                 `json:"activityType"`
	Metadata     map[string]interface{} `json:"metadata"`
	Timestamp    string                 `json:"timestamp"`
	GroupName    string                 `json:"groupName"`
	TriggeredBy  string                 `json:"triggeredBy"`
	Description  string                 `json:"description"`
}

// Group is a named scaling group whose activities are being tracked.
type Group struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}
