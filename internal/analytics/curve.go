package analytics

import (
	"sort"
	"time"

	"github.com/zillafan80/inarbit-console/internal/models"
)

const timeLabelFormat = "01-02 15:04:05"

// CurvePoint is one step of the cumulative equity curve. Drawdown is the gap
// between the running peak and the current equity, never negative.
type CurvePoint struct {
	TimeLabel string  `json:"time_label"`
	Equity    float64 `json:"equity"`
	Drawdown  float64 `json:"drawdown"`
}

// EquityCurve sorts records ascending by resolved time and accumulates profit
// into equity, tracking the running peak. Records without any timestamp sort
// as now, i.e. last; ordering among equal instants is unspecified but stable.
func EquityCurve(records []models.PnLRecord, now time.Time) []CurvePoint {
	if len(records) == 0 {
		return []CurvePoint{}
	}

	ordered := make([]models.PnLRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ResolvedTime(now).Before(ordered[j].ResolvedTime(now))
	})

	points := make([]CurvePoint, 0, len(ordered))
	var equity, peak float64
	for i, r := range ordered {
		equity += r.Profit.InexactFloat64()
		if i == 0 || equity > peak {
			peak = equity
		}
		points = append(points, CurvePoint{
			TimeLabel: r.ResolvedTime(now).Format(timeLabelFormat),
			Equity:    equity,
			Drawdown:  peak - equity,
		})
	}
	return points
}
