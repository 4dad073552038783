package plan

import (
	"encoding/json"
	"testing"

	"github.com/zillafan80/inarbit-console/internal/models"
)

func legsFromJSON(t *testing.T, raw string) []models.PlanLeg {
	t.Helper()
	var legs []models.PlanLeg
	if err := json.Unmarshal([]byte(raw), &legs); err != nil {
		t.Fatalf("unmarshal legs: %v", err)
	}
	return legs
}

func TestClassifyLastOfEachKindWins(t *testing.T) {
	legs := legsFromJSON(t, `[
		{"kind":"execution_summary","summary":{"status":"running"}},
		{"kind":"pnl_summary","summary":{"symbol":"BTC/USDT"}},
		{"kind":"execution_summary","summary":{"status":"failed"}}
	]`)

	c := Classify(legs)
	if c.ExecutionSummary == nil || c.ExecutionSummary.Summary.Status != "failed" {
		t.Fatalf("later execution_summary must supersede earlier, got %+v", c.ExecutionSummary)
	}
	if c.PnLSummary == nil || c.PnLSummary.PnL.Symbol != "BTC/USDT" {
		t.Fatalf("pnl_summary not classified: %+v", c.PnLSummary)
	}
	if c.ReconcileSuggested != nil {
		t.Fatalf("no reconcile leg present, got %+v", c.ReconcileSuggested)
	}
}

func TestClassifyIgnoresOpaqueKinds(t *testing.T) {
	legs := legsFromJSON(t, `[
		{"kind":"agent_note","detail":"whatever"},
		{"kind":"execution_summary","summary":{"status":"done"}},
		{"kind":"future_kind_v2","payload":{"a":1}}
	]`)

	c := Classify(legs)
	if c.ExecutionSummary == nil || c.ExecutionSummary.Summary.Status != "done" {
		t.Fatalf("recognized leg lost among opaque ones")
	}
	if legs[0].Kind != models.LegOpaque || legs[2].Kind != models.LegOpaque {
		t.Fatalf("unrecognized kinds must parse as opaque")
	}
}

func TestClassifyEmpty(t *testing.T) {
	c := Classify(nil)
	if c.ExecutionSummary != nil || c.ReconcileSuggested != nil || c.PnLSummary != nil {
		t.Fatalf("empty legs must classify to all-nil")
	}
}
