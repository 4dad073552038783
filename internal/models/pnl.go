package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PnLRecord is one realized profit/loss observation from the history endpoint.
type PnLRecord struct {
	ID         int64            `json:"id"`
	ExchangeID string           `json:"exchange_id,omitempty"`
	Symbol     string           `json:"symbol,omitempty"`
	Profit     decimal.Decimal  `json:"profit"`
	ProfitRate *decimal.Decimal `json:"profit_rate,omitempty"`
	Quantity   decimal.Decimal  `json:"quantity"`
	CreatedAt  *time.Time       `json:"created_at,omitempty"`
	ExitTime   *time.Time       `json:"exit_time,omitempty"`
	EntryTime  *time.Time       `json:"entry_time,omitempty"`
}

// ResolvedTime picks the record's timestamp: created_at, then exit_time, then
// entry_time. Records lacking all three sort as now, i.e. last.
func (r PnLRecord) ResolvedTime(now time.Time) time.Time {
	switch {
	case r.CreatedAt != nil:
		return *r.CreatedAt
	case r.ExitTime != nil:
		return *r.ExitTime
	case r.EntryTime != nil:
		return *r.EntryTime
	default:
		return now
	}
}
