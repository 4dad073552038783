package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zillafan80/inarbit-console/internal/models"
	"github.com/zillafan80/inarbit-console/internal/stubs"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newClient(t *testing.T) (*ConsoleAPI, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(stubs.NewServer(time.Hour).Handler())
	t.Cleanup(srv.Close)
	return NewConsoleAPI(srv.URL, time.Second, 100, quietLogger()), srv
}

func TestPlansAndPlan(t *testing.T) {
	api, _ := newClient(t)
	ctx := context.Background()

	plans, err := api.Plans(ctx, "paper")
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, models.PlanTriangular, plans[0].Kind)

	p, err := api.Plan(ctx, plans[0].PlanID)
	require.NoError(t, err)
	assert.Equal(t, "failed", p.Status)
	require.NotEmpty(t, p.Legs)
	// The stub's last execution_summary carries an embedded suggestion.
	last := p.Legs[len(p.Legs)-1]
	require.Equal(t, models.LegExecutionSummary, last.Kind)
	require.NotNil(t, last.Summary.ReconcileSuggested)
	assert.Equal(t, 10, *last.Summary.ReconcileSuggested.Limit)
}

func TestPlanNotFound(t *testing.T) {
	api, _ := newClient(t)
	_, err := api.Plan(context.Background(), "no-such-plan")
	require.Error(t, err)
}

func TestHistoryOrdersFills(t *testing.T) {
	api, _ := newClient(t)
	ctx := context.Background()

	history, err := api.History(ctx, HistoryQuery{TradingMode: "paper"})
	require.NoError(t, err)
	assert.NotEmpty(t, history)
	assert.NotNil(t, history[0].CreatedAt)

	orders, err := api.Orders(ctx, ListQuery{Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, orders)
	assert.Equal(t, models.StatusFilled, orders[0].Status)

	fills, err := api.Fills(ctx, ListQuery{})
	require.NoError(t, err)
	assert.NotEmpty(t, fills)
}

func TestEmptyCollectionsDecodeCleanly(t *testing.T) {
	api, _ := newClient(t)
	ctx := context.Background()

	alerts, err := api.Alerts(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	opps, err := api.Opportunities(ctx)
	require.NoError(t, err)
	assert.Empty(t, opps)
}

func TestFetchFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := NewConsoleAPI(srv.URL, time.Second, 100, quietLogger())
	_, err := api.Orders(context.Background(), ListQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
