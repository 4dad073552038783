package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/zillafan80/inarbit-console/internal/models"
	"github.com/zillafan80/inarbit-console/internal/observ"
)

// ConsoleAPI is the client for the REST collaborators. Every getter returns an
// error on failure and nothing else: callers keep their previously fetched
// data, so a failed refresh never corrupts what the operator is looking at.
type ConsoleAPI struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
	log     *logrus.Entry
}

// NewConsoleAPI builds a client with a request budget of roughly rps requests
// per second (burst of 5), matching what the collaborator tolerates.
func NewConsoleAPI(base string, timeout time.Duration, rps float64, log *logrus.Logger) *ConsoleAPI {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if rps <= 0 {
		rps = 10
	}
	return &ConsoleAPI{
		base:    base,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), 5),
		log:     log.WithField("component", "console_api"),
	}
}

// ListQuery bounds a polled list fetch.
type ListQuery struct {
	TradingMode string
	Symbol      string
	PlanID      string
	Limit       int
	Offset      int
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.TradingMode != "" {
		v.Set("trading_mode", q.TradingMode)
	}
	if q.Symbol != "" {
		v.Set("symbol", q.Symbol)
	}
	if q.PlanID != "" {
		v.Set("plan_id", q.PlanID)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// HistoryQuery bounds a PnL history fetch.
type HistoryQuery struct {
	TradingMode string
	Symbol      string
	Since       time.Time
	Until       time.Time
	Limit       int
}

func (q HistoryQuery) values() url.Values {
	v := url.Values{}
	if q.TradingMode != "" {
		v.Set("trading_mode", q.TradingMode)
	}
	if q.Symbol != "" {
		v.Set("symbol", q.Symbol)
	}
	if !q.Since.IsZero() {
		v.Set("since", q.Since.UTC().Format(time.RFC3339))
	}
	if !q.Until.IsZero() {
		v.Set("until", q.Until.UTC().Format(time.RFC3339))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Plans lists execution plans for a trading mode.
func (c *ConsoleAPI) Plans(ctx context.Context, tradingMode string) ([]models.ExecutionPlan, error) {
	var body struct {
		Plans []models.ExecutionPlan `json:"plans"`
	}
	v := url.Values{}
	if tradingMode != "" {
		v.Set("trading_mode", tradingMode)
	}
	if err := c.getJSON(ctx, "/api/plans", v, &body); err != nil {
		return nil, err
	}
	return body.Plans, nil
}

// Plan fetches one plan with its full leg history.
func (c *ConsoleAPI) Plan(ctx context.Context, planID string) (*models.ExecutionPlan, error) {
	var body struct {
		Plan *models.ExecutionPlan `json:"plan"`
	}
	if err := c.getJSON(ctx, "/api/plans/"+url.PathEscape(planID), nil, &body); err != nil {
		return nil, err
	}
	if body.Plan == nil {
		return nil, fmt.Errorf("plan %s: empty response", planID)
	}
	return body.Plan, nil
}

// History fetches realized PnL records.
func (c *ConsoleAPI) History(ctx context.Context, q HistoryQuery) ([]models.PnLRecord, error) {
	var body struct {
		History []models.PnLRecord `json:"history"`
	}
	if err := c.getJSON(ctx, "/api/history", q.values(), &body); err != nil {
		return nil, err
	}
	return body.History, nil
}

// Orders fetches the polled order list.
func (c *ConsoleAPI) Orders(ctx context.Context, q ListQuery) ([]models.OrderUpdateEvent, error) {
	var body struct {
		Orders []models.OrderUpdateEvent `json:"orders"`
	}
	if err := c.getJSON(ctx, "/api/orders", q.values(), &body); err != nil {
		return nil, err
	}
	return body.Orders, nil
}

// Fills fetches the polled fill list.
func (c *ConsoleAPI) Fills(ctx context.Context, q ListQuery) ([]models.Fill, error) {
	var body struct {
		Fills []models.Fill `json:"fills"`
	}
	if err := c.getJSON(ctx, "/api/fills", q.values(), &body); err != nil {
		return nil, err
	}
	return body.Fills, nil
}

// Alerts fetches operator alerts.
func (c *ConsoleAPI) Alerts(ctx context.Context) ([]models.Alert, error) {
	var body struct {
		Alerts []models.Alert `json:"alerts"`
	}
	if err := c.getJSON(ctx, "/api/alerts", nil, &body); err != nil {
		return nil, err
	}
	return body.Alerts, nil
}

// Opportunities fetches detected opportunities.
func (c *ConsoleAPI) Opportunities(ctx context.Context) ([]models.Opportunity, error) {
	var body struct {
		Opportunities []models.Opportunity `json:"opportunities"`
	}
	if err := c.getJSON(ctx, "/api/opportunities", nil, &body); err != nil {
		return nil, err
	}
	return body.Opportunities, nil
}

func (c *ConsoleAPI) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	correlationID := uuid.NewString()
	req.Header.Set("X-Request-ID", correlationID)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		observ.IncCounter("api_fetch_errors_total", map[string]string{"path": path})
		c.log.WithError(err).WithField("request_id", correlationID).Warn("fetch failed")
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()
	observ.RecordDuration("api_fetch_latency", time.Since(start), map[string]string{"path": path})

	if resp.StatusCode != http.StatusOK {
		observ.IncCounter("api_fetch_errors_total", map[string]string{"path": path})
		return fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		observ.IncCounter("api_fetch_errors_total", map[string]string{"path": path})
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
