package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestPlanLegUnmarshalRecognizedKinds(t *testing.T) {
	raw := `[
		{"kind":"execution_summary","created_at":"2025-06-01T10:00:00Z","summary":{"status":"partial","filled_legs":2,"total_legs":3}},
		{"kind":"reconcile_suggested_request","request":{"limit":15,"confirm_live":false}},
		{"kind":"pnl_summary","summary":{"symbol":"BTC/USDT","profit":"1.25"}},
		{"kind":"robot_heartbeat","seq":19}
	]`
	var legs []PlanLeg
	if err := json.Unmarshal([]byte(raw), &legs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if legs[0].Kind != LegExecutionSummary || legs[0].Summary == nil || legs[0].Summary.Status != "partial" {
		t.Fatalf("execution summary: %+v", legs[0])
	}
	if legs[0].At == nil || !legs[0].At.Equal(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("created_at: %+v", legs[0].At)
	}
	if legs[1].Kind != LegReconcileSuggested || legs[1].Request == nil || *legs[1].Request.Limit != 15 {
		t.Fatalf("reconcile request: %+v", legs[1])
	}
	if legs[2].Kind != LegPnLSummary || legs[2].PnL == nil || legs[2].PnL.Symbol != "BTC/USDT" {
		t.Fatalf("pnl summary: %+v", legs[2])
	}
	if legs[3].Kind != LegOpaque || legs[3].RawKind != "robot_heartbeat" {
		t.Fatalf("unknown kind must be opaque: %+v", legs[3])
	}
	if len(legs[3].Raw) == 0 {
		t.Fatalf("opaque legs keep their raw payload")
	}
}

func TestPlanLegTimestampFieldPriority(t *testing.T) {
	raw := `{"kind":"pnl_summary","timestamp":"2025-06-01T11:00:00Z","ts":1748775600,"time":"2025-06-01T13:00:00Z"}`
	var leg PlanLeg
	if err := json.Unmarshal([]byte(raw), &leg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	// created_at absent: timestamp is the first present candidate.
	if leg.At == nil || !leg.At.Equal(time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("timestamp field priority: %+v", leg.At)
	}
}

func TestPlanLegUnixTimestamps(t *testing.T) {
	var leg PlanLeg
	if err := json.Unmarshal([]byte(`{"kind":"pnl_summary","ts":1748772000}`), &leg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if leg.At == nil || leg.At.Unix() != 1748772000 {
		t.Fatalf("unix seconds: %+v", leg.At)
	}

	var legMs PlanLeg
	if err := json.Unmarshal([]byte(`{"kind":"pnl_summary","ts":1748772000000}`), &legMs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if legMs.At == nil || legMs.At.Unix() != 1748772000 {
		t.Fatalf("unix milliseconds: %+v", legMs.At)
	}
}

func TestPlanLegMissingTimestamp(t *testing.T) {
	var leg PlanLeg
	if err := json.Unmarshal([]byte(`{"kind":"execution_summary"}`), &leg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if leg.At != nil {
		t.Fatalf("no timestamp candidates means nil: %+v", leg.At)
	}
}

func TestExecutionPlanUnmarshal(t *testing.T) {
	raw := `{"plan_id":"plan-1","status":"failed","kind":"triangular","error_message":"leg 3 unfilled","legs":[{"kind":"execution_summary"}]}`
	var p ExecutionPlan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Kind != PlanTriangular || p.OpportunityID != nil {
		t.Fatalf("plan fields: %+v", p)
	}
	if p.ErrorMessage == nil || *p.ErrorMessage != "leg 3 unfilled" {
		t.Fatalf("error message: %+v", p.ErrorMessage)
	}
	if len(p.Legs) != 1 || p.Legs[0].Kind != LegExecutionSummary {
		t.Fatalf("legs: %+v", p.Legs)
	}
}
