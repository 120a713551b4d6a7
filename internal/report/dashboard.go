package report

import "github.com/nexa-assets/nexa/pkg/model"

// StatusCount pairs a status with its asset count.
type StatusCount struct {
	Status model.AssetStatus `json:"status"`
	Count  int               `json:"count"`
}

// Summary holds the dashboard headline figures.
type Summary struct {
	TotalAssets   int           `json:"totalAssets"`
	TotalValue    float64       `json:"totalValue"`
	AssignedCount int           `json:"assignedCount"`
	ByStatus      []StatusCount `json:"byStatus"`
}

// Dashboard computes headline totals. Every known status appears in ByStatus,
// with zero when no asset has it, followed by any unknown statuses found.
func Dashboard(assets []model.Asset) Summary {
	counts := CountByStatus(assets)
	s := Summary{TotalAssets: len(assets), AssignedCount: counts[model.StatusAssigned]}
	for i := range assets {
		s.TotalValue += assets[i].Value
	}
	for _, st := range model.AllStatuses {
		s.ByStatus = append(s.ByStatus, StatusCount{Status: st, Count: counts[st]})
	}
	for _, st := range orderedStatuses(counts) {
		if !st.Valid() {
			s.ByStatus = append(s.ByStatus, StatusCount{Status: st, Count: counts[st]})
		}
	}
	return s
}
