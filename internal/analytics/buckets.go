package analytics

import (
	"sort"
	"time"

	"github.com/zillafan80/inarbit-console/internal/models"
)

// Window widths offered by the console's time-bucket selector.
const (
	Window5m  = 5 * time.Minute
	Window15m = 15 * time.Minute
	Window1h  = time.Hour
)

// Bucket is the summed profit of one time window.
type Bucket struct {
	Start     time.Time `json:"start"`
	TimeLabel string    `json:"time_label"`
	Profit    float64   `json:"profit"`
	Count     int       `json:"count"`
}

// WindowedBuckets floors each record's resolved timestamp to the window
// boundary (floor(t/width)×width on unix seconds) and sums profit per bucket.
// Buckets come back sorted by boundary ascending; empty input yields an empty
// slice.
func WindowedBuckets(records []models.PnLRecord, width time.Duration, now time.Time) []Bucket {
	if len(records) == 0 || width <= 0 {
		return []Bucket{}
	}

	w := int64(width / time.Second)
	byStart := map[int64]*Bucket{}
	for _, r := range records {
		sec := r.ResolvedTime(now).Unix()
		start := (sec / w) * w
		b, ok := byStart[start]
		if !ok {
			t := time.Unix(start, 0).UTC()
			b = &Bucket{Start: t, TimeLabel: t.Format(timeLabelFormat)}
			byStart[start] = b
		}
		b.Profit += r.Profit.InexactFloat64()
		b.Count++
	}

	out := make([]Bucket, 0, len(byStart))
	for _, b := range byStart {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// Sentinel labels for records missing a grouping key.
const (
	MultiCurrencyLabel  = "multi-currency"
	UnknownExchangeLabel = "unknown"
)

// BreakdownRow is one group's summed profit.
type BreakdownRow struct {
	Label  string  `json:"label"`
	Profit float64 `json:"profit"`
	Count  int     `json:"count"`
}

// BySymbol group-sums profit per symbol, descending by profit. Records with no
// symbol land under the multi-currency sentinel.
func BySymbol(records []models.PnLRecord) []BreakdownRow {
	return breakdown(records, func(r models.PnLRecord) string {
		if r.Symbol == "" {
			return MultiCurrencyLabel
		}
		return r.Symbol
	})
}

// ByExchange group-sums profit per exchange id, descending by profit.
func ByExchange(records []models.PnLRecord) []BreakdownRow {
	return breakdown(records, func(r models.PnLRecord) string {
		if r.ExchangeID == "" {
			return UnknownExchangeLabel
		}
		return r.ExchangeID
	})
}

// Top returns at most n leading rows; callers typically show 6–8.
func Top(rows []BreakdownRow, n int) []BreakdownRow {
	if n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

func breakdown(records []models.PnLRecord, key func(models.PnLRecord) string) []BreakdownRow {
	if len(records) == 0 {
		return []BreakdownRow{}
	}
	byKey := map[string]*BreakdownRow{}
	for _, r := range records {
		k := key(r)
		row, ok := byKey[k]
		if !ok {
			row = &BreakdownRow{Label: k}
			byKey[k] = row
		}
		row.Profit += r.Profit.InexactFloat64()
		row.Count++
	}
	out := make([]BreakdownRow, 0, len(byKey))
	for _, row := range byKey {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Profit != out[j].Profit {
			return out[i].Profit > out[j].Profit
		}
		return out[i].Label < out[j].Label
	})
	return out
}
