// Package audit derives audit trail entries and the flattened, searchable
// log view across assets, and keeps the hash-chained audit journal.
package audit

import (
	"fmt"
	"time"

	"github.com/nexa-assets/nexa/pkg/idgen"
	"github.com/nexa-assets/nexa/pkg/model"
)

// Standard details text for lifecycle entries.
const (
	DetailsCreated = "Asset created initially"
	DetailsDeleted = "Asset deleted"
)

// UpdatedDetails summarizes an update by the asset's resulting status.
func UpdatedDetails(status model.AssetStatus) string {
	return fmt.Sprintf("Asset updated. Status: %s", status)
}

// NewEntry builds an entry for an action on asset by actor at now.
// The asset's current name and tag are captured in the entry.
func NewEntry(action model.AuditAction, details, actor string, asset *model.Asset, now time.Time) model.AuditLogEntry {
	if actor == "" {
		actor = model.UnknownUser
	}
	e := model.AuditLogEntry{
		ID:      idgen.NewLogID(),
		Date:    now.UTC().Format(time.RFC3339Nano),
		Action:  action,
		Details: details,
		User:    actor,
	}
	if asset != nil {
		e.AssetName = asset.Name
		e.AssetTag = asset.AssetTag
	}
	return e
}

// Prepend returns a new log with entry at the front. The existing entries are
// copied, never modified.
func Prepend(entry model.AuditLogEntry, log []model.AuditLogEntry) []model.AuditLogEntry {
	out := make([]model.AuditLogEntry, 0, len(log)+1)
	out = append(out, entry)
	return append(out, log...)
}
