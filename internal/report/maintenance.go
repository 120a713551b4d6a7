package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/nexa-assets/nexa/pkg/model"
)

// DefaultMaintenanceWindow is how far ahead re-image dates are considered due.
const DefaultMaintenanceWindow = 90

// Urgency classifies how soon a maintenance date falls.
type Urgency string

const (
	UrgencyDueToday Urgency = "Due Today"
	UrgencyUrgent   Urgency = "Urgent"
	UrgencyWarning  Urgency = "Warning"
	UrgencyRoutine  Urgency = "Routine"
)

// Due is an asset with an upcoming re-image date.
type Due struct {
	Asset     model.Asset `json:"asset"`
	Date      time.Time   `json:"date"`
	DaysUntil int         `json:"daysUntil"`
	Urgency   Urgency     `json:"urgency"`
}

// UpcomingMaintenance returns assets whose re-image date falls within
// [today, today+windowDays], comparing calendar dates only. Assets without a
// parseable date are skipped. The result is ascending by date; assets on the
// same date keep input order. A non-positive window uses the default.
func UpcomingMaintenance(assets []model.Asset, today time.Time, windowDays int) []Due {
	if windowDays <= 0 {
		windowDays = DefaultMaintenanceWindow
	}
	var out []Due
	for i := range assets {
		a := &assets[i]
		if a.ReimageDate == "" {
			continue
		}
		date, err := model.ParseDate(a.ReimageDate, today.Location())
		if err != nil {
			continue
		}
		days := DaysUntil(date, today)
		if days < 0 || days > windowDays {
			continue
		}
		out = append(out, Due{
			Asset:     a.Clone(),
			Date:      date,
			DaysUntil: days,
			Urgency:   ClassifyUrgency(days),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// DaysUntil returns the number of calendar days from today to date. Both are
// reduced to their calendar date first, so time of day and DST shifts do not
// affect the result.
func DaysUntil(date, today time.Time) int {
	return int(civil(date).Sub(civil(today)).Hours() / 24)
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClassifyUrgency maps days remaining to an urgency level.
func ClassifyUrgency(days int) Urgency {
	switch {
	case days <= 0:
		return UrgencyDueToday
	case days <= 7:
		return UrgencyUrgent
	case days <= 30:
		return UrgencyWarning
	default:
		return UrgencyRoutine
	}
}

// FormatDaysUntil renders days remaining for display.
func FormatDaysUntil(days int) string {
	switch {
	case days <= 0:
		return "Due Today"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
