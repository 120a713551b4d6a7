package inventory

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/nexa-assets/nexa/internal/audit"
	"github.com/nexa-assets/nexa/pkg/errclass"
	"github.com/nexa-assets/nexa/pkg/idgen"
	"github.com/nexa-assets/nexa/pkg/model"
)

// List returns a copy of all assets, most recently created first.
func (inv *Inventory) List() []model.Asset {
	out := make([]model.Asset, len(inv.assets))
	for i := range inv.assets {
		out[i] = inv.assets[i].Clone()
	}
	return out
}

// Get returns the asset whose id equals ref or, failing that, whose tag
// equals ref ignoring case.
func (inv *Inventory) Get(ref string) (model.Asset, error) {
	if i := inv.indexOf(ref); i >= 0 {
		return inv.assets[i].Clone(), nil
	}
	for i := range inv.assets {
		if strings.EqualFold(inv.assets[i].AssetTag, ref) {
			return inv.assets[i].Clone(), nil
		}
	}
	return model.Asset{}, errclass.ErrNotFound.WithMessagef("asset %q", ref)
}

func (inv *Inventory) indexOf(id string) int {
	for i := range inv.assets {
		if inv.assets[i].ID == id {
			return i
		}
	}
	return -1
}

// Create adds draft as a new asset with a fresh id and a single "Created"
// entry. Any id or audit log on the draft is ignored.
func (inv *Inventory) Create(ctx context.Context, draft model.Asset) (model.Asset, error) {
	start := time.Now()
	if err := Validate(&draft); err != nil {
		inv.metrics.RecordOperation("create", false, time.Since(start))
		return model.Asset{}, err
	}

	a := draft.Clone()
	a.ID = idgen.NewAssetID()
	if strings.TrimSpace(a.AssetTag) == "" {
		a.AssetTag = idgen.NewAssetTag()
	}
	entry := audit.NewEntry(model.ActionCreated, audit.DetailsCreated, inv.actor, &a, inv.now())
	a.AuditLog = []model.AuditLogEntry{entry}

	assets := make([]model.Asset, 0, len(inv.assets)+1)
	assets = append(assets, a)
	inv.assets = append(assets, inv.assets...)

	inv.persist(ctx, AssetsKey, inv.assets)
	inv.journalAppend(a.ID, entry)
	inv.refreshGauges()
	inv.metrics.RecordOperation("create", true, time.Since(start))
	inv.log.Info("asset created", map[string]any{"id": a.ID, "tag": a.AssetTag})
	return a.Clone(), nil
}

// Update replaces every field of asset id except its id and audit log, and
// prepends an "Updated" entry naming the resulting status.
func (inv *Inventory) Update(ctx context.Context, id string, draft model.Asset) (model.Asset, error) {
	start := time.Now()
	i := inv.indexOf(id)
	if i < 0 {
		inv.metrics.RecordOperation("update", false, time.Since(start))
		return model.Asset{}, errclass.ErrNotFound.WithMessagef("asset %q", id)
	}
	if err := Validate(&draft); err != nil {
		inv.metrics.RecordOperation("update", false, time.Since(start))
		return model.Asset{}, err
	}

	prev := inv.assets[i]
	a := draft.Clone()
	a.ID = prev.ID
	entry := audit.NewEntry(model.ActionUpdated, audit.UpdatedDetails(a.Status), inv.actor, &a, inv.now())
	a.AuditLog = audit.Prepend(entry, prev.AuditLog)
	inv.assets[i] = a

	inv.persist(ctx, AssetsKey, inv.assets)
	inv.journalAppend(a.ID, entry)
	inv.refreshGauges()
	inv.metrics.RecordOperation("update", true, time.Since(start))
	inv.log.Info("asset updated", map[string]any{"id": a.ID, "status": string(a.Status)})
	return a.Clone(), nil
}

// Delete removes asset id. Deleting an absent asset does nothing. The journal,
// when configured, keeps a "Deleted" entry.
func (inv *Inventory) Delete(ctx context.Context, id string) {
	start := time.Now()
	i := inv.indexOf(id)
	if i < 0 {
		return
	}
	gone := inv.assets[i]
	inv.assets = append(inv.assets[:i:i], inv.assets[i+1:]...)

	inv.persist(ctx, AssetsKey, inv.assets)
	inv.journalAppend(gone.ID, audit.NewEntry(model.ActionDeleted, audit.DetailsDeleted, inv.actor, &gone, inv.now()))
	inv.refreshGauges()
	inv.metrics.RecordOperation("delete", true, time.Since(start))
	inv.log.Info("asset deleted", map[string]any{"id": gone.ID, "tag": gone.AssetTag})
}

// Validate checks a draft asset. Whitespace around the tag is trimmed.
func Validate(a *model.Asset) error {
	a.AssetTag = strings.TrimSpace(a.AssetTag)
	switch {
	case math.IsNaN(a.Value) || math.IsInf(a.Value, 0):
		return errclass.ErrInvalidAsset.WithMessage("value must be a finite number")
	case a.Value < 0:
		return errclass.ErrInvalidAsset.WithMessage("value must not be negative")
	case !a.Category.Valid():
		return errclass.ErrInvalidAsset.WithMessagef("unknown category %q", a.Category)
	case !a.Status.Valid():
		return errclass.ErrInvalidAsset.WithMessagef("unknown status %q", a.Status)
	case !model.ValidDate(a.PurchaseDate):
		return errclass.ErrInvalidAsset.WithMessagef("purchase date %q is not YYYY-MM-DD", a.PurchaseDate)
	case !model.ValidDate(a.ReimageDate):
		return errclass.ErrInvalidAsset.WithMessagef("re-image date %q is not YYYY-MM-DD", a.ReimageDate)
	}
	return nil
}
