package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// PlanKind identifies the arbitrage strategy a plan executes.
type PlanKind string

const (
	PlanTriangular PlanKind = "triangular"
	PlanCashCarry  PlanKind = "cashcarry"
	PlanGraph      PlanKind = "graph"
	PlanMulti      PlanKind = "multi"
)

// ExecutionPlan is a server-owned execution unit for one opportunity. Legs is an
// ordered, append-only history; later legs supersede earlier ones of the same kind.
type ExecutionPlan struct {
	PlanID        string    `json:"plan_id"`
	Status        string    `json:"status"`
	Kind          PlanKind  `json:"kind"`
	OpportunityID *string   `json:"opportunity_id,omitempty"`
	ErrorMessage  *string   `json:"error_message,omitempty"`
	Legs          []PlanLeg `json:"legs"`
}

// LegKind discriminates the recognized plan leg variants. Anything else is
// carried as LegOpaque so unknown kinds survive a round trip untouched.
type LegKind string

const (
	LegExecutionSummary   LegKind = "execution_summary"
	LegReconcileSuggested LegKind = "reconcile_suggested_request"
	LegPnLSummary         LegKind = "pnl_summary"
	LegOpaque             LegKind = "opaque"
)

// ExecutionSummary is the payload of an execution_summary leg. The embedded
// suggestion, when present, outranks a standalone reconcile_suggested_request leg.
type ExecutionSummary struct {
	Status             string                          `json:"status,omitempty"`
	Message            string                          `json:"message,omitempty"`
	FilledLegs         *int                            `json:"filled_legs,omitempty"`
	TotalLegs          *int                            `json:"total_legs,omitempty"`
	ReconcileSuggested *SuggestedReconciliationRequest `json:"reconcile_suggested_request,omitempty"`
}

// PnLSummary is the payload of a pnl_summary leg.
type PnLSummary struct {
	Symbol     string  `json:"symbol,omitempty"`
	Profit     *string `json:"profit,omitempty"`
	ProfitRate *string `json:"profit_rate,omitempty"`
}

// PlanLeg is one record in a plan's leg history. Exactly one of Summary,
// Request and PnL is populated for the recognized kinds; Raw always holds the
// original payload for export.
type PlanLeg struct {
	Kind    LegKind
	RawKind string
	At      *time.Time
	Summary *ExecutionSummary
	Request *SuggestedReconciliationRequest
	PnL     *PnLSummary
	Raw     json.RawMessage
}

func (l *PlanLeg) UnmarshalJSON(b []byte) error {
	var shadow struct {
		Kind      string                          `json:"kind"`
		CreatedAt json.RawMessage                 `json:"created_at"`
		Timestamp json.RawMessage                 `json:"timestamp"`
		Ts        json.RawMessage                 `json:"ts"`
		Time      json.RawMessage                 `json:"time"`
		Request   *SuggestedReconciliationRequest `json:"request"`
		Summary   json.RawMessage                 `json:"summary"`
	}
	if err := json.Unmarshal(b, &shadow); err != nil {
		return err
	}

	leg := PlanLeg{RawKind: shadow.Kind, Raw: append(json.RawMessage(nil), b...)}
	leg.At = firstLegTime(shadow.CreatedAt, shadow.Timestamp, shadow.Ts, shadow.Time)

	switch LegKind(shadow.Kind) {
	case LegExecutionSummary:
		leg.Kind = LegExecutionSummary
		var s ExecutionSummary
		if len(shadow.Summary) > 0 {
			_ = json.Unmarshal(shadow.Summary, &s)
		} else {
			_ = json.Unmarshal(b, &s)
		}
		leg.Summary = &s
	case LegReconcileSuggested:
		leg.Kind = LegReconcileSuggested
		if shadow.Request != nil {
			leg.Request = shadow.Request
		} else {
			var r SuggestedReconciliationRequest
			_ = json.Unmarshal(b, &r)
			leg.Request = &r
		}
	case LegPnLSummary:
		leg.Kind = LegPnLSummary
		var p PnLSummary
		if len(shadow.Summary) > 0 {
			_ = json.Unmarshal(shadow.Summary, &p)
		} else {
			_ = json.Unmarshal(b, &p)
		}
		leg.PnL = &p
	default:
		leg.Kind = LegOpaque
	}

	*l = leg
	return nil
}

func (l PlanLeg) MarshalJSON() ([]byte, error) {
	if len(l.Raw) > 0 {
		return l.Raw, nil
	}
	return json.Marshal(map[string]any{"kind": string(l.Kind)})
}

// firstLegTime resolves a leg timestamp from the candidate fields in priority
// order. Values may be RFC3339 strings or unix seconds/milliseconds.
func firstLegTime(candidates ...json.RawMessage) *time.Time {
	for _, c := range candidates {
		if t, ok := parseFlexibleTime(c); ok {
			return &t
		}
	}
	return nil
}

func parseFlexibleTime(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}
	n, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || n <= 0 {
		return time.Time{}, false
	}
	// Values this large cannot be unix seconds; treat them as milliseconds.
	if n > 1e12 {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	return time.Unix(int64(n), 0).UTC(), true
}
