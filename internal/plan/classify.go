package plan

import (
	"github.com/zillafan80/inarbit-console/internal/models"
)

// Classification holds the latest leg of each recognized kind found in a
// plan's history. Nil fields mean the plan has no leg of that kind yet.
type Classification struct {
	ExecutionSummary   *models.PlanLeg
	ReconcileSuggested *models.PlanLeg
	PnLSummary         *models.PlanLeg
}

// Classify scans the ordered leg history and keeps, per recognized kind, the
// highest-index leg: a plan accrues legs chronologically and later legs are
// corrections or updates, so the last one wins. Opaque kinds are skipped, not
// an error. Single O(n) pass; the input is not mutated.
func Classify(legs []models.PlanLeg) Classification {
	var c Classification
	for i := range legs {
		switch legs[i].Kind {
		case models.LegExecutionSummary:
			c.ExecutionSummary = &legs[i]
		case models.LegReconcileSuggested:
			c.ReconcileSuggested = &legs[i]
		case models.LegPnLSummary:
			c.PnLSummary = &legs[i]
		}
	}
	return c
}
