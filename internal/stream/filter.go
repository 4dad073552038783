package stream

import (
	"strings"

	"github.com/zillafan80/inarbit-console/internal/models"
)

// StatusAll disables the status predicate.
const StatusAll = "all"

// Criteria is the operator's filter selection. Status is "all" or one exact
// canonical status; OrderID is a case-insensitive substring match. Both
// predicates are ANDed.
type Criteria struct {
	Status  string
	OrderID string
}

// Match reports whether a single order update passes the criteria.
func (c Criteria) Match(ev models.OrderUpdateEvent) bool {
	if c.Status != "" && c.Status != StatusAll && string(ev.Status) != c.Status {
		return false
	}
	if c.OrderID != "" && !strings.Contains(strings.ToLower(ev.OrderID), strings.ToLower(c.OrderID)) {
		return false
	}
	return true
}

// Project computes the filtered view of a log snapshot. Pure: the input slice
// is never mutated, and recomputing on every change is cheap at the volumes
// the console buffers.
func Project(entries []Entry, c Criteria) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if c.Match(e.Event) {
			out = append(out, e)
		}
	}
	return out
}

// FilterOrders applies the same criteria to a polled order list.
func FilterOrders(orders []models.OrderUpdateEvent, c Criteria) []models.OrderUpdateEvent {
	out := make([]models.OrderUpdateEvent, 0, len(orders))
	for _, o := range orders {
		if c.Match(o) {
			out = append(out, o)
		}
	}
	return out
}
