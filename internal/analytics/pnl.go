package analytics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/zillafan80/inarbit-console/internal/models"
)

// Summary is the headline PnL card: count, total, average and win rate.
type Summary struct {
	Count     int     `json:"count"`
	Total     float64 `json:"total"`
	Average   float64 `json:"average"`
	WinRate   float64 `json:"win_rate"`
	WinCount  int     `json:"win_count"`
	LossCount int     `json:"loss_count"`
}

// profits extracts the signed profit column as float64s.
func profits(records []models.PnLRecord) []float64 {
	out := make([]float64, 0, len(records))
	for _, r := range records {
		out = append(out, r.Profit.InexactFloat64())
	}
	return out
}

// Summarize computes the headline statistics. An empty input yields the zero
// Summary, never an error.
func Summarize(records []models.PnLRecord) Summary {
	s := Summary{Count: len(records)}
	if s.Count == 0 {
		return s
	}
	p := profits(records)
	s.Total, _ = stats.Sum(p)
	s.Average, _ = stats.Mean(p)
	for _, v := range p {
		if v > 0 {
			s.WinCount++
		} else {
			s.LossCount++
		}
	}
	s.WinRate = float64(s.WinCount) / float64(s.Count)
	return s
}

// Quantiles are nearest-rank profit quantiles.
type Quantiles struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
}

// Quantile returns the nearest-rank quantile of an ascending-sorted sample:
// the value at index floor(p×(n−1)), clamped to the valid range. This matches
// the operator UI exactly; it is deliberately not the interpolated estimator.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(p * float64(n-1))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

// ProfitQuantiles computes p10/p50/p90 over the profit column.
func ProfitQuantiles(records []models.PnLRecord) Quantiles {
	if len(records) == 0 {
		return Quantiles{}
	}
	p := profits(records)
	sort.Float64s(p)
	return Quantiles{
		P10: Quantile(p, 0.10),
		P50: Quantile(p, 0.50),
		P90: Quantile(p, 0.90),
	}
}

// RiskMetrics are the per-trade range and the curve's maximum drawdown.
type RiskMetrics struct {
	ProfitRange float64 `json:"profit_range"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// Risk computes range = max(profit) − min(profit) and the maximum drawdown
// observed on the equity curve. now anchors records without any timestamp.
func Risk(records []models.PnLRecord, now time.Time) RiskMetrics {
	if len(records) == 0 {
		return RiskMetrics{}
	}
	p := profits(records)
	maxP, _ := stats.Max(p)
	minP, _ := stats.Min(p)

	var maxDD float64
	for _, pt := range EquityCurve(records, now) {
		if pt.Drawdown > maxDD {
			maxDD = pt.Drawdown
		}
	}
	return RiskMetrics{ProfitRange: maxP - minP, MaxDrawdown: maxDD}
}
