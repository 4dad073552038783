package transport

import (
	"net/url"
	"strconv"
	"time"
)

// Topic identifies one push-channel subscription. Every parameter is part of
// the subscription identity: changing any of them means closing the old
// subscription and opening a new one, never reconfiguring in place.
type Topic struct {
	Channel     string
	TradingMode string
	Symbol      string
	PlanID      string
	Since       time.Time
	Until       time.Time
	Limit       int
	Offset      int
	Interval    string // server-side aggregation hint
}

// URL builds the subscription endpoint for a websocket base URL such as
// "ws://host:port".
func (t Topic) URL(base string) string {
	u := base + "/stream/" + t.Channel
	q := url.Values{}
	if t.TradingMode != "" {
		q.Set("trading_mode", t.TradingMode)
	}
	if t.Symbol != "" {
		q.Set("symbol", t.Symbol)
	}
	if t.PlanID != "" {
		q.Set("plan_id", t.PlanID)
	}
	if !t.Since.IsZero() {
		q.Set("since", t.Since.UTC().Format(time.RFC3339))
	}
	if !t.Until.IsZero() {
		q.Set("until", t.Until.UTC().Format(time.RFC3339))
	}
	if t.Limit > 0 {
		q.Set("limit", strconv.Itoa(t.Limit))
	}
	if t.Offset > 0 {
		q.Set("offset", strconv.Itoa(t.Offset))
	}
	if t.Interval != "" {
		q.Set("interval", t.Interval)
	}
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// Key is the canonical topic identity string. Two topics with equal keys may
// share a subscription; unequal keys never do.
func (t Topic) Key() string {
	return t.URL("")
}
