package console

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zillafan80/inarbit-console/internal/adapters"
	"github.com/zillafan80/inarbit-console/internal/analytics"
	"github.com/zillafan80/inarbit-console/internal/models"
	"github.com/zillafan80/inarbit-console/internal/observ"
	"github.com/zillafan80/inarbit-console/internal/plan"
	"github.com/zillafan80/inarbit-console/internal/stream"
	"github.com/zillafan80/inarbit-console/internal/transport"
)

// Monitor owns the console's live state: the bounded event log, exactly one
// push-channel subscription, the polled lists, and the currently selected
// plan. All mutation goes through the monitor; everything it exposes outward
// is plain copied data safe to hand to presentation or export.
//
// Overlapping fetches of the same kind are not serialized: whichever response
// commits last wins. That is an accepted race, not a freshness guarantee.
type Monitor struct {
	api            *adapters.ConsoleAPI
	wsBase         string
	reconnectDelay time.Duration
	log            *logrus.Entry

	events *stream.EventLog

	mu            sync.Mutex
	sub           *transport.Subscription
	pollers       map[string]context.CancelFunc
	wg            sync.WaitGroup
	closed        bool
	orders        []models.OrderUpdateEvent
	fills         []models.Fill
	history       []models.PnLRecord
	plans         []models.ExecutionPlan
	alerts        []models.Alert
	opportunities []models.Opportunity
	current       *models.ExecutionPlan
}

// New builds a monitor. wsBase is the websocket endpoint of the push channel,
// keep the event log retention.
func New(api *adapters.ConsoleAPI, wsBase string, keep int, reconnectDelay time.Duration, log *logrus.Logger) *Monitor {
	return &Monitor{
		api:            api,
		wsBase:         wsBase,
		reconnectDelay: reconnectDelay,
		log:            log.WithField("component", "monitor"),
		events:         stream.NewEventLog(keep),
		pollers:        map[string]context.CancelFunc{},
	}
}

// Events exposes the bounded event log (single owner: this monitor).
func (m *Monitor) Events() *stream.EventLog { return m.events }

// SetTopic points the subscription at a new topic. Identical topics are left
// alone; any parameter change closes the old subscription and opens a fresh
// one. There is no in-place reconfiguration.
func (m *Monitor) SetTopic(t transport.Topic) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if m.sub != nil && m.sub.Topic().Key() == t.Key() {
		return
	}
	if m.sub != nil {
		m.sub.Close()
	}
	m.sub = transport.Subscribe(m.wsBase, t, m.ingest, m.reconnectDelay, m.log.Logger)
}

// ingest is the push-channel callback: decode, normalize, append. Malformed
// frames are counted and dropped; the stream keeps flowing.
func (m *Monitor) ingest(payload json.RawMessage) {
	var ev models.OrderUpdateEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		observ.IncCounter("monitor_bad_frames_total", nil)
		m.log.WithError(err).Debug("dropping undecodable frame")
		return
	}
	m.events.Append(ev)
}

// FilteredEvents projects the event log through the operator's criteria.
func (m *Monitor) FilteredEvents(c stream.Criteria) []stream.Entry {
	return stream.Project(m.events.Snapshot(), c)
}

// RefreshOrders polls the order list. On failure the previous list stays.
func (m *Monitor) RefreshOrders(ctx context.Context, q adapters.ListQuery) error {
	orders, err := m.api.Orders(ctx, q)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.orders = orders
	m.mu.Unlock()
	return nil
}

// RefreshFills polls the fill list.
func (m *Monitor) RefreshFills(ctx context.Context, q adapters.ListQuery) error {
	fills, err := m.api.Fills(ctx, q)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.fills = fills
	m.mu.Unlock()
	return nil
}

// RefreshHistory polls the PnL history.
func (m *Monitor) RefreshHistory(ctx context.Context, q adapters.HistoryQuery) error {
	history, err := m.api.History(ctx, q)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.history = history
	m.mu.Unlock()
	return nil
}

// RefreshPlans polls the plan list.
func (m *Monitor) RefreshPlans(ctx context.Context, tradingMode string) error {
	plans, err := m.api.Plans(ctx, tradingMode)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.plans = plans
	m.mu.Unlock()
	return nil
}

// RefreshAlerts polls operator alerts.
func (m *Monitor) RefreshAlerts(ctx context.Context) error {
	alerts, err := m.api.Alerts(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.alerts = alerts
	m.mu.Unlock()
	return nil
}

// RefreshOpportunities polls detected opportunities.
func (m *Monitor) RefreshOpportunities(ctx context.Context) error {
	opps, err := m.api.Opportunities(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.opportunities = opps
	m.mu.Unlock()
	return nil
}

// SelectPlan fetches one plan's full leg history and makes it current. The
// fetched plan replaces the previous one wholesale; there is no merging.
func (m *Monitor) SelectPlan(ctx context.Context, planID string) error {
	p, err := m.api.Plan(ctx, planID)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.current = p
	m.mu.Unlock()
	return nil
}

// Orders returns a copy of the last polled order list.
func (m *Monitor) Orders() []models.OrderUpdateEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.OrderUpdateEvent(nil), m.orders...)
}

// Fills returns a copy of the last polled fill list.
func (m *Monitor) Fills() []models.Fill {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Fill(nil), m.fills...)
}

// History returns a copy of the last polled PnL records.
func (m *Monitor) History() []models.PnLRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PnLRecord(nil), m.history...)
}

// Plans returns a copy of the last polled plan list.
func (m *Monitor) Plans() []models.ExecutionPlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ExecutionPlan(nil), m.plans...)
}

// Alerts returns a copy of the last polled alerts.
func (m *Monitor) Alerts() []models.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Alert(nil), m.alerts...)
}

// Opportunities returns a copy of the last polled opportunities.
func (m *Monitor) Opportunities() []models.Opportunity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Opportunity(nil), m.opportunities...)
}

// CurrentPlan returns the selected plan, or nil.
func (m *Monitor) CurrentPlan() *models.ExecutionPlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// PlanView classifies the selected plan's legs and resolves the suggestion.
func (m *Monitor) PlanView() (plan.Classification, *models.SuggestedReconciliationRequest) {
	m.mu.Lock()
	current := m.current
	m.mu.Unlock()
	if current == nil {
		return plan.Classification{}, nil
	}
	c := plan.Classify(current.Legs)
	return c, plan.Resolve(c)
}

// SuggestedParams merges the resolved suggestion into the operator's working
// parameters. The bool reports whether any suggestion existed.
func (m *Monitor) SuggestedParams(current models.ReconcileParams) (models.ReconcileParams, bool) {
	c, _ := m.PlanView()
	return plan.ResolveInto(c, current)
}

// Analytics computes the full analytics bundle over the polled PnL history.
func (m *Monitor) Analytics(bucketWidth time.Duration) analytics.Bundle {
	return analytics.Compute(m.History(), bucketWidth, time.Now().UTC())
}

// StartPolling runs fetch on a fixed interval under a dedicated name. Starting
// a poller under the same name cancels its predecessor; the returned stop
// function cancels just this poller. All pollers stop on Close.
func (m *Monitor) StartPolling(name string, interval time.Duration, fetch func(context.Context) error) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		cancel()
		return func() {}
	}
	if prev, ok := m.pollers[name]; ok {
		prev()
	}
	m.pollers[name] = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := fetch(ctx); err != nil && ctx.Err() == nil {
					observ.IncCounter("monitor_poll_errors_total", map[string]string{"poller": name})
					m.log.WithError(err).WithField("poller", name).Warn("poll failed")
				}
			}
		}
	}()
	return cancel
}

// Close stops all pollers and the subscription. A monitor left running after
// its view is gone keeps polling against discarded state, so callers must
// Close on teardown.
func (m *Monitor) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	for _, cancel := range m.pollers {
		cancel()
	}
	m.pollers = map[string]context.CancelFunc{}
	sub := m.sub
	m.sub = nil
	m.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
	m.wg.Wait()
	m.log.Debug("monitor closed")
}
