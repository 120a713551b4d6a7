// Package inventory owns the asset and user collections and keeps them in
// sync with the key-value store.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nexa-assets/nexa/internal/audit"
	"github.com/nexa-assets/nexa/internal/auth"
	"github.com/nexa-assets/nexa/internal/kvstore"
	"github.com/nexa-assets/nexa/internal/report"
	"github.com/nexa-assets/nexa/pkg/logging"
	"github.com/nexa-assets/nexa/pkg/metrics"
	"github.com/nexa-assets/nexa/pkg/model"
)

// Storage keys for the persisted documents.
const (
	AssetsKey  = "nexa-assets-v3"
	UsersKey   = "nexa-users-v1"
	SessionKey = auth.SessionKey
)

// Options configures an Inventory.
type Options struct {
	Store   kvstore.Store
	Journal *audit.Journal // optional
	Logger  *logging.Logger
	Metrics *metrics.Registry
	Now     func() time.Time
}

// Inventory is the application state: assets, users and the acting user.
// It is not safe for concurrent use.
type Inventory struct {
	store   kvstore.Store
	journal *audit.Journal
	log     *logging.Logger
	metrics *metrics.Registry
	now     func() time.Time

	assets     []model.Asset
	users      []model.AppUser
	actor      string
	memoryOnly bool
}

// New creates an empty inventory. Call Load to populate it.
func New(opts Options) *Inventory {
	inv := &Inventory{
		store:   opts.Store,
		journal: opts.Journal,
		log:     opts.Logger,
		metrics: opts.Metrics,
		now:     opts.Now,
	}
	if inv.store == nil {
		inv.store = kvstore.NewMemoryStore()
	}
	if inv.log == nil {
		inv.log = logging.Global()
	}
	if inv.metrics == nil {
		inv.metrics = metrics.Default()
	}
	if inv.now == nil {
		inv.now = time.Now
	}
	return inv
}

// Load reads both collections. A missing or unreadable document is replaced
// by seed data. If the store cannot be reached at all, the inventory runs on
// seed data in memory-only mode.
func (inv *Inventory) Load(ctx context.Context) {
	inv.assets = loadDocument(ctx, inv, AssetsKey, SeedAssets)
	inv.users = loadDocument(ctx, inv, UsersKey, SeedUsers)
	inv.refreshGauges()
}

func loadDocument[T any](ctx context.Context, inv *Inventory, key string, seed func() []T) []T {
	data, err := inv.store.Get(ctx, key)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		inv.log.Debug("document not found, using seed data", map[string]any{"key": key})
		return seed()
	case err != nil:
		inv.degrade(key, err)
		return seed()
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil || out == nil {
		inv.log.Warn("document unreadable, using seed data", map[string]any{"key": key, "error": fmt.Sprint(err)})
		return seed()
	}
	return out
}

// MemoryOnly reports whether writes are no longer reaching the store.
func (inv *Inventory) MemoryOnly() bool {
	return inv.memoryOnly
}

// SetActor sets the display name recorded in audit entries. An empty name
// records "Unknown User".
func (inv *Inventory) SetActor(name string) {
	inv.actor = name
}

// Actor returns the current acting user name.
func (inv *Inventory) Actor() string {
	return inv.actor
}

func (inv *Inventory) degrade(key string, err error) {
	inv.metrics.RecordPersistenceFailure(key)
	if !inv.memoryOnly {
		inv.log.Warn("persistence unavailable, continuing in memory only", map[string]any{
			"key":   key,
			"error": err.Error(),
		})
	}
	inv.memoryOnly = true
}

// persist writes v under key. Failures switch the inventory to memory-only
// mode instead of surfacing to the caller.
func (inv *Inventory) persist(ctx context.Context, key string, v any) {
	if inv.memoryOnly {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		inv.degrade(key, err)
		return
	}
	if err := inv.store.Put(ctx, key, data); err != nil {
		inv.degrade(key, err)
	}
}

func (inv *Inventory) remove(ctx context.Context, key string) {
	if inv.memoryOnly {
		return
	}
	if err := inv.store.Delete(ctx, key); err != nil {
		inv.degrade(key, err)
	}
}

// journalAppend records entry in the journal. Changes made after the
// inventory went memory-only were never stored, so they are not journaled.
func (inv *Inventory) journalAppend(assetID string, entry model.AuditLogEntry) {
	if inv.journal == nil || inv.memoryOnly {
		return
	}
	err := inv.journal.Append(assetID, entry)
	inv.metrics.RecordJournalAppend(err == nil)
	if err != nil {
		inv.log.Warn("audit journal append failed", map[string]any{
			"asset_id": assetID,
			"error":    err.Error(),
		})
	}
}

func (inv *Inventory) refreshGauges() {
	inv.metrics.UpdateAssetCounts(report.CountByStatus(inv.assets))
}

// ClearAll empties the asset collection, drops the stored user list so it is
// reseeded on next load, and ends the session.
func (inv *Inventory) ClearAll(ctx context.Context) {
	inv.assets = []model.Asset{}
	inv.persist(ctx, AssetsKey, inv.assets)
	inv.remove(ctx, UsersKey)
	inv.remove(ctx, SessionKey)
	inv.actor = ""
	inv.refreshGauges()
	inv.log.Info("all data cleared")
}
