package plan

import (
	"testing"

	"github.com/zillafan80/inarbit-console/internal/models"
)

func intp(v int) *int { return &v }

func TestResolveEmbeddedSuggestionOutranksLeg(t *testing.T) {
	c := Classification{
		ExecutionSummary: &models.PlanLeg{
			Kind: models.LegExecutionSummary,
			Summary: &models.ExecutionSummary{
				ReconcileSuggested: &models.SuggestedReconciliationRequest{Limit: intp(5)},
			},
		},
		ReconcileSuggested: &models.PlanLeg{
			Kind:    models.LegReconcileSuggested,
			Request: &models.SuggestedReconciliationRequest{Limit: intp(9)},
		},
	}

	got := Resolve(c)
	if got == nil || got.Limit == nil || *got.Limit != 5 {
		t.Fatalf("embedded suggestion must win, got %+v", got)
	}
}

func TestResolveFallsBackToReconcileLeg(t *testing.T) {
	c := Classification{
		ExecutionSummary: &models.PlanLeg{
			Kind:    models.LegExecutionSummary,
			Summary: &models.ExecutionSummary{Status: "failed"},
		},
		ReconcileSuggested: &models.PlanLeg{
			Kind:    models.LegReconcileSuggested,
			Request: &models.SuggestedReconciliationRequest{Limit: intp(9)},
		},
	}

	got := Resolve(c)
	if got == nil || got.Limit == nil || *got.Limit != 9 {
		t.Fatalf("want reconcile leg request, got %+v", got)
	}
}

func TestResolveNilWhenNothingSuggested(t *testing.T) {
	if got := Resolve(Classification{}); got != nil {
		t.Fatalf("no suggestion available must resolve to nil, got %+v", got)
	}
}

func TestResolveIntoPartialMerge(t *testing.T) {
	mode := "live"
	auto := true
	c := Classification{
		ReconcileSuggested: &models.PlanLeg{
			Kind: models.LegReconcileSuggested,
			Request: &models.SuggestedReconciliationRequest{
				TradingMode: &mode,
				Limit:       intp(7),
				AutoCancel:  &auto,
			},
		},
	}

	current := models.ReconcileParams{
		TradingMode: "paper",
		Limit:       20,
		MaxRounds:   3,
		SleepMs:     500,
	}
	merged, ok := ResolveInto(c, current)
	if !ok {
		t.Fatalf("suggestion exists, ok must be true")
	}
	if merged.TradingMode != "live" || merged.Limit != 7 || !merged.AutoCancel {
		t.Fatalf("suggested fields not applied: %+v", merged)
	}
	if merged.MaxRounds != 3 || merged.SleepMs != 500 {
		t.Fatalf("missing fields must keep current values: %+v", merged)
	}
}

func TestResolveIntoWithoutSuggestionKeepsCurrent(t *testing.T) {
	current := models.ReconcileParams{TradingMode: "paper", Limit: 20}
	merged, ok := ResolveInto(Classification{}, current)
	if ok || merged != current {
		t.Fatalf("no suggestion must not change params: %+v ok=%v", merged, ok)
	}
}
