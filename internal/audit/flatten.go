package audit

import (
	"sort"
	"time"

	"github.com/nexa-assets/nexa/internal/search"
	"github.com/nexa-assets/nexa/pkg/model"
)

// FlatEntry is one audit entry joined with its owning asset.
type FlatEntry struct {
	model.AuditLogEntry
	AssetID   string `json:"assetId"`
	AssetName string `json:"assetName"`
	AssetTag  string `json:"assetTag"`

	at time.Time
}

// Time returns the parsed entry date.
func (f FlatEntry) Time() time.Time {
	return f.at
}

// FlattenLogs produces one record per audit entry across all assets, newest
// first. Entries with the same date keep traversal order (asset order, then
// entry order). The name and tag captured at write time win over the asset's
// current values; older entries without a snapshot use the current ones.
func FlattenLogs(assets []model.Asset) []FlatEntry {
	var n int
	for i := range assets {
		n += len(assets[i].AuditLog)
	}
	out := make([]FlatEntry, 0, n)
	for i := range assets {
		a := &assets[i]
		for _, e := range a.AuditLog {
			name, tag := e.AssetName, e.AssetTag
			if name == "" {
				name = a.Name
			}
			if tag == "" {
				tag = a.AssetTag
			}
			out = append(out, FlatEntry{
				AuditLogEntry: e,
				AssetID:       a.ID,
				AssetName:     name,
				AssetTag:      tag,
				at:            e.Time(),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].at.After(out[j].at)
	})
	return out
}

// FilterLogs keeps entries whose asset name, asset tag, details or user
// contain term, ignoring case. An empty term keeps everything.
func FilterLogs(logs []FlatEntry, term string) []FlatEntry {
	m := search.NewMatcher(term)
	out := make([]FlatEntry, 0, len(logs))
	for _, l := range logs {
		if m.MatchAny(l.AssetName, l.AssetTag, l.Details, l.User) {
			out = append(out, l)
		}
	}
	return out
}

// FilterOptions narrows the flattened view.
type FilterOptions struct {
	Term    string
	Action  model.AuditAction
	AssetID string
	Since   time.Time
	Until   time.Time
	Limit   int
}

// Find applies every non-zero option to logs, preserving order.
func Find(logs []FlatEntry, opts FilterOptions) []FlatEntry {
	var result []FlatEntry
	for _, l := range FilterLogs(logs, opts.Term) {
		if !matchesFilter(l, opts) {
			continue
		}
		result = append(result, l)
		if opts.Limit > 0 && len(result) == opts.Limit {
			break
		}
	}
	return result
}

func matchesFilter(l FlatEntry, opts FilterOptions) bool {
	if opts.Action != "" && l.Action != opts.Action {
		return false
	}
	if opts.AssetID != "" && l.AssetID != opts.AssetID {
		return false
	}
	if !opts.Since.IsZero() && l.at.Before(opts.Since) {
		return false
	}
	if !opts.Until.IsZero() && l.at.After(opts.Until) {
		return false
	}
	return true
}
