package model

import "time"

// AuditAction identifies what happened to an asset.
type AuditAction string

const (
	ActionCreated  AuditAction = "Created"
	ActionUpdated  AuditAction = "Updated"
	ActionDeleted  AuditAction = "Deleted"
	ActionDisposed AuditAction = "Disposed"
)

// AllActions lists every audit action.
var AllActions = []AuditAction{ActionCreated, ActionUpdated, ActionDeleted, ActionDisposed}

// UnknownUser is recorded as the actor when no session is active.
const UnknownUser = "Unknown User"

// AuditLogEntry is a single immutable line in an asset's audit trail.
//
// AssetName and AssetTag are snapshots taken when the entry was written.
// Entries written by older versions do not carry them.
type AuditLogEntry struct {
	ID        string      `json:"id"`
	Date      string      `json:"date"`
	Action    AuditAction `json:"action"`
	Details   string      `json:"details"`
	User      string      `json:"user"`
	AssetName string      `json:"assetName,omitempty"`
	AssetTag  string      `json:"assetTag,omitempty"`
}

// Time parses Date. Unparseable dates yield the zero time.
func (e AuditLogEntry) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HashValue is a SHA-256 hash stored as hex string.
type HashValue string

// JournalRecord is a single line in the audit journal (JSONL format).
type JournalRecord struct {
	Timestamp  time.Time     `json:"timestamp"`
	AssetID    string        `json:"asset_id"`
	Entry      AuditLogEntry `json:"entry"`
	PrevHash   HashValue     `json:"prev_hash"`
	RecordHash HashValue     `json:"record_hash"`
}
