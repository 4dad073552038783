package plan

import (
	"github.com/zillafan80/inarbit-console/internal/models"
)

// Resolve picks the suggested reconciliation request from a classification.
// Precedence, highest first: the suggestion embedded in the execution summary,
// then the standalone reconcile_suggested_request leg. When neither is present
// the result is nil and the caller must not fabricate defaults.
func Resolve(c Classification) *models.SuggestedReconciliationRequest {
	if c.ExecutionSummary != nil && c.ExecutionSummary.Summary != nil &&
		c.ExecutionSummary.Summary.ReconcileSuggested != nil {
		return c.ExecutionSummary.Summary.ReconcileSuggested
	}
	if c.ReconcileSuggested != nil && c.ReconcileSuggested.Request != nil {
		return c.ReconcileSuggested.Request
	}
	return nil
}

// ResolveInto resolves the suggestion and partially merges it into the
// operator's working parameter set. Fields absent from the suggestion keep
// their current values. The bool reports whether a suggestion existed.
func ResolveInto(c Classification, current models.ReconcileParams) (models.ReconcileParams, bool) {
	s := Resolve(c)
	if s == nil {
		return current, false
	}
	return s.ApplyTo(current), true
}
