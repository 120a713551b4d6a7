// Package report aggregates assets into breakdowns, maintenance schedules,
// chart data and dashboard totals.
package report

import (
	"sort"

	"github.com/nexa-assets/nexa/pkg/model"
)

// CountByStatus tallies assets per status. Statuses with no assets are absent.
func CountByStatus(assets []model.Asset) map[model.AssetStatus]int {
	counts := make(map[model.AssetStatus]int)
	for i := range assets {
		counts[assets[i].Status]++
	}
	return counts
}

// Row is one line of a breakdown table.
type Row struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Breakdown is a tally over one asset attribute.
type Breakdown struct {
	Total int   `json:"total"`
	Rows  []Row `json:"rows"`
}

// StatusBreakdown tallies assets by status, largest first.
func StatusBreakdown(assets []model.Asset) Breakdown {
	return tally(assets, func(a *model.Asset) string { return string(a.Status) })
}

// CategoryBreakdown tallies assets by category, largest first.
func CategoryBreakdown(assets []model.Asset) Breakdown {
	return tally(assets, func(a *model.Asset) string { return string(a.Category) })
}

// tally counts keys in first-seen order, then stable-sorts by count so ties
// keep that order.
func tally(assets []model.Asset, key func(*model.Asset) string) Breakdown {
	index := make(map[string]int)
	var rows []Row
	for i := range assets {
		k := key(&assets[i])
		pos, ok := index[k]
		if !ok {
			pos = len(rows)
			index[k] = pos
			rows = append(rows, Row{Name: k})
		}
		rows[pos].Count++
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	total := len(assets)
	for i := range rows {
		rows[i].Percent = Percent(rows[i].Count, total)
	}
	return Breakdown{Total: total, Rows: rows}
}

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
