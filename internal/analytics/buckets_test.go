package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zillafan80/inarbit-console/internal/models"
)

func recAt(t time.Time, profit float64, symbol, exchange string) models.PnLRecord {
	return models.PnLRecord{
		Profit:     decimal.NewFromFloat(profit),
		Symbol:     symbol,
		ExchangeID: exchange,
		CreatedAt:  &t,
	}
}

func TestWindowedBucketBoundaries(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []models.PnLRecord{
		recAt(day.Add(10*time.Hour+7*time.Minute), 1, "", ""),
		recAt(day.Add(10*time.Hour+14*time.Minute), 2, "", ""),
		recAt(day.Add(10*time.Hour+16*time.Minute), 4, "", ""),
	}

	buckets := WindowedBuckets(records, Window15m, time.Now())
	if len(buckets) != 2 {
		t.Fatalf("want 2 buckets, got %d", len(buckets))
	}
	if !buckets[0].Start.Equal(day.Add(10 * time.Hour)) {
		t.Fatalf("10:07 and 10:14 belong to the 10:00 bucket, got %v", buckets[0].Start)
	}
	if buckets[0].Profit != 3 {
		t.Fatalf("10:00 bucket sum: %f", buckets[0].Profit)
	}
	if !buckets[1].Start.Equal(day.Add(10*time.Hour + 15*time.Minute)) {
		t.Fatalf("10:16 belongs to the 10:15 bucket, got %v", buckets[1].Start)
	}
	if buckets[1].Profit != 4 {
		t.Fatalf("10:15 bucket sum: %f", buckets[1].Profit)
	}
}

func TestWindowedBucketsSortedAscending(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []models.PnLRecord{
		recAt(day.Add(3*time.Hour), 1, "", ""),
		recAt(day.Add(1*time.Hour), 1, "", ""),
		recAt(day.Add(2*time.Hour), 1, "", ""),
	}
	buckets := WindowedBuckets(records, Window1h, time.Now())
	for i := 1; i < len(buckets); i++ {
		if !buckets[i-1].Start.Before(buckets[i].Start) {
			t.Fatalf("buckets out of order at %d", i)
		}
	}
}

func TestBySymbolSentinelAndOrder(t *testing.T) {
	now := time.Now()
	records := []models.PnLRecord{
		recAt(now, 5, "BTC/USDT", ""),
		recAt(now, 2, "", ""),
		recAt(now, 3, "BTC/USDT", ""),
		recAt(now, 9, "ETH/USDT", ""),
	}

	rows := BySymbol(records)
	if rows[0].Label != "ETH/USDT" || rows[0].Profit != 9 {
		t.Fatalf("descending by profit, got %+v", rows)
	}
	if rows[1].Label != "BTC/USDT" || rows[1].Profit != 8 {
		t.Fatalf("group sum wrong: %+v", rows[1])
	}
	if rows[2].Label != MultiCurrencyLabel {
		t.Fatalf("missing symbol must use the multi-currency sentinel: %+v", rows[2])
	}
}

func TestByExchangeSentinel(t *testing.T) {
	rows := ByExchange([]models.PnLRecord{recAt(time.Now(), 1, "", "")})
	if len(rows) != 1 || rows[0].Label != UnknownExchangeLabel {
		t.Fatalf("missing exchange must use the unknown sentinel: %+v", rows)
	}
}

func TestTopPrefix(t *testing.T) {
	rows := []BreakdownRow{{Label: "a"}, {Label: "b"}, {Label: "c"}}
	if got := Top(rows, 2); len(got) != 2 {
		t.Fatalf("top 2: %+v", got)
	}
	if got := Top(rows, 8); len(got) != 3 {
		t.Fatalf("top beyond length returns all: %+v", got)
	}
}

func TestDistribution(t *testing.T) {
	h := Distribution(recs(0, 1, 2, 3, 4, 5, 6, 7, 8))
	if h.Min != 0 || h.Max != 8 {
		t.Fatalf("bounds: %+v", h)
	}
	if h.Width != 1 {
		t.Fatalf("width (8-0)/8=1: %f", h.Width)
	}
	// max value clamps into the last bin
	if h.Counts[7] != 2 {
		t.Fatalf("7 and 8 both land in bin 7: %+v", h.Counts)
	}
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	if total != 9 {
		t.Fatalf("every record must be binned: %d", total)
	}
}

func TestDistributionAllEqualDefaultsWidth(t *testing.T) {
	h := Distribution(recs(2.5, 2.5, 2.5))
	if h.Width != 1 {
		t.Fatalf("equal profits default width to 1, got %f", h.Width)
	}
	if h.Counts[0] != 3 {
		t.Fatalf("all records in bin 0: %+v", h.Counts)
	}
}
