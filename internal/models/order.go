package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderStatus is the canonical order lifecycle state. Upstream feeds disagree on
// naming (new/open/submitted, canceled/cancelled, partial/partially_filled), so
// every status string is normalized to this set at the ingestion boundary.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusFilled    OrderStatus = "filled"
	StatusCancelled OrderStatus = "cancelled"
	StatusRejected  OrderStatus = "rejected"
	StatusPartial   OrderStatus = "partial"
	StatusUnknown   OrderStatus = "unknown"
)

// NormalizeStatus maps a raw upstream status string to the canonical set.
func NormalizeStatus(raw string) OrderStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending", "new", "open", "submitted", "accepted", "created":
		return StatusPending
	case "filled", "closed", "done", "executed":
		return StatusFilled
	case "cancelled", "canceled":
		return StatusCancelled
	case "rejected", "expired", "failed":
		return StatusRejected
	case "partial", "partially_filled", "partial_fill", "partfilled":
		return StatusPartial
	default:
		return StatusUnknown
	}
}

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NormalizeStatus(raw)
	return nil
}

// OrderSide is the canonical order direction.
type OrderSide string

const (
	SideBuy     OrderSide = "buy"
	SideSell    OrderSide = "sell"
	SideUnknown OrderSide = "unknown"
)

// NormalizeSide maps a raw upstream side string to the canonical set.
func NormalizeSide(raw string) OrderSide {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy", "bid", "long":
		return SideBuy
	case "sell", "ask", "short":
		return SideSell
	default:
		return SideUnknown
	}
}

func (s *OrderSide) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NormalizeSide(raw)
	return nil
}

// OrderUpdateEvent is one push-channel message about an order's lifecycle.
// OrderID is unique only within a trading mode + plan scope. Numeric fields are
// nullable because partial payloads are normal, not an error.
type OrderUpdateEvent struct {
	OrderID        string           `json:"order_id"`
	Status         OrderStatus      `json:"status"`
	Symbol         string           `json:"symbol"`
	Side           OrderSide        `json:"side"`
	PlanID         *string          `json:"plan_id,omitempty"`
	FilledQuantity *decimal.Decimal `json:"filled_quantity,omitempty"`
	AveragePrice   *decimal.Decimal `json:"average_price,omitempty"`
	Fee            *decimal.Decimal `json:"fee,omitempty"`
}

func (e *OrderUpdateEvent) UnmarshalJSON(b []byte) error {
	type alias OrderUpdateEvent
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	// Absent status/side fields skip the enum unmarshalers entirely.
	if a.Status == "" {
		a.Status = StatusUnknown
	}
	if a.Side == "" {
		a.Side = SideUnknown
	}
	*e = OrderUpdateEvent(a)
	return nil
}
