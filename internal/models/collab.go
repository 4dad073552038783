package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fill is one execution fill row from the fills endpoint.
type Fill struct {
	OrderID  string           `json:"order_id"`
	Symbol   string           `json:"symbol"`
	Side     OrderSide        `json:"side"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Quantity *decimal.Decimal `json:"quantity,omitempty"`
	Fee      *decimal.Decimal `json:"fee,omitempty"`
	FilledAt *time.Time       `json:"filled_at,omitempty"`
}

// Alert is one operator alert row.
type Alert struct {
	ID        string     `json:"id"`
	Level     string     `json:"level"`
	Message   string     `json:"message"`
	PlanID    *string    `json:"plan_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Opportunity is one detected arbitrage opportunity row.
type Opportunity struct {
	ID           string           `json:"id"`
	Kind         PlanKind         `json:"kind"`
	Symbol       string           `json:"symbol,omitempty"`
	ExpectedEdge *decimal.Decimal `json:"expected_edge,omitempty"`
	CreatedAt    *time.Time       `json:"created_at,omitempty"`
}
