package audit_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-assets/nexa/internal/audit"
	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/model"
)

func TestJournal_HashChain(t *testing.T) {
	j := audit.NewJournal(filepath.Join(t.TempDir(), audit.JournalFileName))
	asset := &model.Asset{ID: "asset-1", Name: "Laptop", AssetTag: "TAG-1111"}

	require.NoError(t, j.Append(asset.ID, audit.NewEntry(model.ActionCreated, audit.DetailsCreated, "Admin", asset, time.Now())))
	require.NoError(t, j.Append(asset.ID, audit.NewEntry(model.ActionDeleted, audit.DetailsDeleted, "Admin", asset, time.Now())))

	records, err := j.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, model.HashValue(""), records[0].PrevHash)
	assert.Equal(t, records[0].RecordHash, records[1].PrevHash)
	assert.NotEmpty(t, records[1].RecordHash)
	assert.Equal(t, "asset-1", records[1].AssetID)
	assert.Equal(t, model.ActionDeleted, records[1].Entry.Action)

	res, err := j.Verify()
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 2, res.Records)
	assert.Equal(t, string(records[1].RecordHash), res.LastHash)
}

func TestJournal_MissingFile(t *testing.T) {
	j := audit.NewJournal(filepath.Join(t.TempDir(), "none", audit.JournalFileName))

	records, err := j.Records()
	require.NoError(t, err)
	assert.Empty(t, records)

	res, err := j.Verify()
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Zero(t, res.Records)
}

func TestJournal_DetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), audit.JournalFileName)
	j := audit.NewJournal(path)
	for i := 0; i < 3; i++ {
		require.NoError(t, j.Append("asset-1", audit.NewEntry(model.ActionUpdated, "Asset updated. Status: In Stock", "Admin", nil, time.Now())))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), "Status: In Stock", "Status: Disposed", 1)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0600))

	res, err := j.Verify()
	require.Error(t, err)
	assert.ErrorIs(t, err, errclass.ErrAuditChainBroken)
	assert.False(t, res.Valid)
	assert.Equal(t, 1, res.BrokenAt)
}

func TestJournal_DetectsRemovedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), audit.JournalFileName)
	j := audit.NewJournal(path)
	for i := 0; i < 3; i++ {
		require.NoError(t, j.Append("asset-1", audit.NewEntry(model.ActionUpdated, "x", "Admin", nil, time.Now())))
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.SplitAfter(string(data), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	require.NoError(t, os.WriteFile(path, []byte(lines[0]+lines[2]), 0600))

	res, err := j.Verify()
	assert.ErrorIs(t, err, errclass.ErrAuditChainBroken)
	assert.Equal(t, 2, res.BrokenAt)
}

func TestJournal_ConcurrentAppends(t *testing.T) {
	j := audit.NewJournal(filepath.Join(t.TempDir(), audit.JournalFileName))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, j.Append("asset-x", audit.NewEntry(model.ActionUpdated, "x", "Admin", nil, time.Now())))
		}()
	}
	wg.Wait()

	records, err := j.Records()
	require.NoError(t, err)
	assert.Len(t, records, 10)

	_, err = j.Verify()
	assert.NoError(t, err)
}

func TestFlattenJournal_NewestFirst(t *testing.T) {
	j := audit.NewJournal(filepath.Join(t.TempDir(), audit.JournalFileName))
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	asset := &model.Asset{ID: "asset-9", Name: "Gone", AssetTag: "TAG-9000"}

	require.NoError(t, j.Append(asset.ID, audit.NewEntry(model.ActionCreated, audit.DetailsCreated, "Admin", asset, base)))
	require.NoError(t, j.Append(asset.ID, audit.NewEntry(model.ActionDeleted, audit.DetailsDeleted, "Admin", asset, base.Add(time.Hour))))

	records, err := j.Records()
	require.NoError(t, err)

	flat := audit.FlattenJournal(records)
	require.Len(t, flat, 2)
	assert.Equal(t, model.ActionDeleted, flat[0].Action)
	assert.Equal(t, "Gone", flat[0].AssetName)
	assert.Equal(t, "TAG-9000", flat[0].AssetTag)
	assert.Equal(t, "asset-9", flat[0].AssetID)
}
