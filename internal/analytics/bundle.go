package analytics

import (
	"time"

	"github.com/zillafan80/inarbit-console/internal/models"
)

// Bundle is the full analytics payload handed to presentation or export.
type Bundle struct {
	Summary    Summary        `json:"summary"`
	Quantiles  Quantiles      `json:"quantiles"`
	Risk       RiskMetrics    `json:"risk"`
	Curve      []CurvePoint   `json:"curve"`
	Buckets    []Bucket       `json:"buckets"`
	BySymbol   []BreakdownRow `json:"by_symbol"`
	ByExchange []BreakdownRow `json:"by_exchange"`
	Histogram  Histogram      `json:"histogram"`
}

// Compute derives the whole bundle in one call. Pure; safe to recompute on
// every refresh tick.
func Compute(records []models.PnLRecord, bucketWidth time.Duration, now time.Time) Bundle {
	return Bundle{
		Summary:    Summarize(records),
		Quantiles:  ProfitQuantiles(records),
		Risk:       Risk(records, now),
		Curve:      EquityCurve(records, now),
		Buckets:    WindowedBuckets(records, bucketWidth, now),
		BySymbol:   BySymbol(records),
		ByExchange: ByExchange(records),
		Histogram:  Distribution(records),
	}
}
