package audit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-assets/nexa/internal/audit"
	"github.com/nexa-assets/nexa/pkg/model"
)

func entryAt(id string, at time.Time, action model.AuditAction, details, user string) model.AuditLogEntry {
	return model.AuditLogEntry{
		ID:      id,
		Date:    at.UTC().Format(time.RFC3339Nano),
		Action:  action,
		Details: details,
		User:    user,
	}
}

func sampleAssets() []model.Asset {
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	return []model.Asset{
		{
			ID: "asset-a", AssetTag: "TAG-1001", Name: "Dell Laptop",
			AuditLog: []model.AuditLogEntry{
				entryAt("a2", base.Add(48*time.Hour), model.ActionUpdated, "Asset updated. Status: Assigned", "Admin"),
				entryAt("a1", base, model.ActionCreated, "Asset created initially", "Admin"),
			},
		},
		{
			ID: "asset-b", AssetTag: "TAG-1002", Name: "Office License",
			AuditLog: []model.AuditLogEntry{
				entryAt("b1", base.Add(24*time.Hour), model.ActionCreated, "Asset created initially", "Staff Member"),
			},
		},
		{ID: "asset-c", AssetTag: "TAG-1003", Name: "Monitor"},
	}
}

func TestFlattenLogs_CountAndOrder(t *testing.T) {
	flat := audit.FlattenLogs(sampleAssets())

	require.Len(t, flat, 3)
	assert.Equal(t, "a2", flat[0].ID)
	assert.Equal(t, "b1", flat[1].ID)
	assert.Equal(t, "a1", flat[2].ID)

	assert.Equal(t, "asset-b", flat[1].AssetID)
	assert.Equal(t, "Office License", flat[1].AssetName)
	assert.Equal(t, "TAG-1002", flat[1].AssetTag)
}

func TestFlattenLogs_Empty(t *testing.T) {
	assert.Empty(t, audit.FlattenLogs(nil))
	assert.Empty(t, audit.FlattenLogs([]model.Asset{{ID: "x"}}))
}

func TestFlattenLogs_StableForEqualDates(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assets := []model.Asset{
		{ID: "one", AuditLog: []model.AuditLogEntry{
			entryAt("1a", at, model.ActionUpdated, "", "u"),
			entryAt("1b", at, model.ActionUpdated, "", "u"),
		}},
		{ID: "two", AuditLog: []model.AuditLogEntry{
			entryAt("2a", at, model.ActionUpdated, "", "u"),
		}},
	}

	flat := audit.FlattenLogs(assets)
	require.Len(t, flat, 3)
	assert.Equal(t, []string{"1a", "1b", "2a"}, []string{flat[0].ID, flat[1].ID, flat[2].ID})
}

func TestFlattenLogs_SnapshotWinsOverLiveName(t *testing.T) {
	e := entryAt("s1", time.Now(), model.ActionCreated, "", "u")
	e.AssetName = "Old Name"
	e.AssetTag = "TAG-0001"
	assets := []model.Asset{{ID: "a", Name: "New Name", AssetTag: "TAG-9999", AuditLog: []model.AuditLogEntry{e}}}

	flat := audit.FlattenLogs(assets)
	require.Len(t, flat, 1)
	assert.Equal(t, "Old Name", flat[0].AssetName)
	assert.Equal(t, "TAG-0001", flat[0].AssetTag)
}

func TestFilterLogs(t *testing.T) {
	flat := audit.FlattenLogs(sampleAssets())

	tests := []struct {
		term string
		want int
	}{
		{"", 3},
		{"dell", 2},
		{"tag-1002", 1},
		{"STAFF", 1},
		{"status: assigned", 1},
		{"  created  ", 2},
		{"nothing-matches", 0},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Len(t, audit.FilterLogs(flat, tt.term), tt.want)
		})
	}
}

func TestFind_Options(t *testing.T) {
	flat := audit.FlattenLogs(sampleAssets())
	base := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	got := audit.Find(flat, audit.FilterOptions{Action: model.ActionCreated})
	assert.Len(t, got, 2)

	got = audit.Find(flat, audit.FilterOptions{AssetID: "asset-a"})
	assert.Len(t, got, 2)

	got = audit.Find(flat, audit.FilterOptions{Since: base.Add(time.Hour)})
	assert.Len(t, got, 2)

	got = audit.Find(flat, audit.FilterOptions{Until: base.Add(time.Hour)})
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)

	got = audit.Find(flat, audit.FilterOptions{Limit: 1})
	require.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].ID)
}
