package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexa-assets/nexa/internal/report"
	"github.com/nexa-assets/nexa/pkg/model"
)

func assetsWith(statuses ...model.AssetStatus) []model.Asset {
	out := make([]model.Asset, len(statuses))
	for i, s := range statuses {
		out[i] = model.Asset{ID: string(rune('a' + i)), Status: s, Category: model.CategoryLaptop}
	}
	return out
}

func TestCountByStatus_SumsToLen(t *testing.T) {
	assets := assetsWith(model.StatusAssigned, model.StatusInStock, model.StatusAssigned, model.StatusDisposed)
	counts := report.CountByStatus(assets)

	sum := 0
	for _, n := range counts {
		sum += n
	}
	assert.Equal(t, len(assets), sum)
	assert.Equal(t, 2, counts[model.StatusAssigned])
	_, ok := counts[model.StatusInRepair]
	assert.False(t, ok, "statuses with no assets are absent")
}

func TestCountByStatus_Empty(t *testing.T) {
	assert.Empty(t, report.CountByStatus(nil))
}

func TestStatusBreakdown_OrderAndPercent(t *testing.T) {
	assets := assetsWith(model.StatusInRepair, model.StatusAssigned, model.StatusAssigned, model.StatusInStock)
	b := report.StatusBreakdown(assets)

	require.Len(t, b.Rows, 3)
	assert.Equal(t, 4, b.Total)
	assert.Equal(t, "Assigned", b.Rows[0].Name)
	assert.InDelta(t, 50.0, b.Rows[0].Percent, 1e-9)
	// ties keep first-seen order
	assert.Equal(t, "In Repair", b.Rows[1].Name)
	assert.Equal(t, "In Stock", b.Rows[2].Name)
	assert.InDelta(t, 25.0, b.Rows[2].Percent, 1e-9)
}

func TestCategoryBreakdown(t *testing.T) {
	assets := []model.Asset{
		{Category: model.CategoryMonitor},
		{Category: model.CategoryLaptop},
		{Category: model.CategoryLaptop},
	}
	b := report.CategoryBreakdown(assets)
	require.Len(t, b.Rows, 2)
	assert.Equal(t, "Laptop", b.Rows[0].Name)
	assert.Equal(t, 2, b.Rows[0].Count)
}

func TestBreakdown_Empty(t *testing.T) {
	b := report.StatusBreakdown(nil)
	assert.Zero(t, b.Total)
	assert.Empty(t, b.Rows)
	assert.Zero(t, report.Percent(3, 0))
}

func TestDashboard(t *testing.T) {
	assets := []model.Asset{
		{Status: model.StatusAssigned, Value: 1200.50},
		{Status: model.StatusAssigned, Value: 300},
		{Status: model.StatusInStock, Value: 99.5},
	}
	s := report.Dashboard(assets)

	assert.Equal(t, 3, s.TotalAssets)
	assert.InDelta(t, 1600.0, s.TotalValue, 1e-9)
	assert.Equal(t, 2, s.AssignedCount)
	require.Len(t, s.ByStatus, len(model.AllStatuses))
	for i, sc := range s.ByStatus {
		assert.Equal(t, model.AllStatuses[i], sc.Status)
	}
	assert.Equal(t, 0, s.ByStatus[2].Count)
}

func TestDashboard_UnknownStatusAppended(t *testing.T) {
	s := report.Dashboard([]model.Asset{{Status: "Retired"}})
	require.Len(t, s.ByStatus, len(model.AllStatuses)+1)
	last := s.ByStatus[len(s.ByStatus)-1]
	assert.Equal(t, model.AssetStatus("Retired"), last.Status)
	assert.Equal(t, 1, last.Count)
}
