package stubs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/zillafan80/inarbit-console/internal/models"
)

// Server is a local stand-in for the trading engine's console API: a
// websocket push channel plus the REST collaborators, fed with synthetic
// data. It exists to exercise the client side in development and tests.
type Server struct {
	mu       sync.Mutex
	seq      int
	interval time.Duration
	upgrader websocket.Upgrader

	orders  []models.OrderUpdateEvent
	fills   []models.Fill
	history []models.PnLRecord
	plans   []models.ExecutionPlan
}

// NewServer seeds a stub with deterministic synthetic data. interval is the
// cadence of push-channel frames.
func NewServer(interval time.Duration) *Server {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	s := &Server{
		interval: interval,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
	s.seed()
	return s
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (s *Server) seed() {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	planID := "plan-0001"

	s.orders = []models.OrderUpdateEvent{
		{OrderID: "ord-001", Status: models.StatusFilled, Symbol: "BTC/USDT", Side: models.SideBuy, PlanID: &planID, FilledQuantity: dec("0.5"), AveragePrice: dec("64000.5")},
		{OrderID: "ord-002", Status: models.StatusPartial, Symbol: "ETH/USDT", Side: models.SideSell, FilledQuantity: dec("2.25")},
		{OrderID: "ord-003", Status: models.StatusPending, Symbol: "BTC/USDT", Side: models.SideSell},
	}
	s.fills = []models.Fill{
		{OrderID: "ord-001", Symbol: "BTC/USDT", Side: models.SideBuy, Price: dec("64000.5"), Quantity: dec("0.5"), Fee: dec("3.2")},
	}
	for i := 0; i < 24; i++ {
		t := base.Add(time.Duration(i) * 7 * time.Minute)
		profit := decimal.NewFromFloat(float64((i%5)-2) * 1.75)
		s.history = append(s.history, models.PnLRecord{
			ID:         int64(i + 1),
			ExchangeID: []string{"binance", "okx", ""}[i%3],
			Symbol:     []string{"BTC/USDT", "ETH/USDT", ""}[i%3],
			Profit:     profit,
			Quantity:   decimal.NewFromInt(1),
			CreatedAt:  &t,
		})
	}

	legs := []byte(fmt.Sprintf(`[
		{"kind":"execution_summary","created_at":%q,"summary":{"status":"partial","filled_legs":2,"total_legs":3}},
		{"kind":"agent_note","detail":"unrecognized"},
		{"kind":"reconcile_suggested_request","created_at":%q,"request":{"trading_mode":"paper","limit":20,"max_rounds":3,"sleep_ms":500}},
		{"kind":"execution_summary","created_at":%q,"summary":{"status":"failed","filled_legs":2,"total_legs":3,"reconcile_suggested_request":{"limit":10,"auto_cancel":true}}}
	]`, base.Format(time.RFC3339), base.Add(time.Minute).Format(time.RFC3339), base.Add(2*time.Minute).Format(time.RFC3339)))

	var parsed []models.PlanLeg
	_ = json.Unmarshal(legs, &parsed)
	oppID := "opp-42"
	errMsg := "leg 3 unfilled after 3 rounds"
	s.plans = []models.ExecutionPlan{{
		PlanID:        planID,
		Status:        "failed",
		Kind:          models.PlanTriangular,
		OpportunityID: &oppID,
		ErrorMessage:  &errMsg,
		Legs:          parsed,
	}}
}

// Handler routes both the push channel and the REST endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/stream/", s.handleStream)
	mux.HandleFunc("/api/plans", func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, map[string]any{"plans": s.plans})
	})
	mux.HandleFunc("/api/plans/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/plans/")
		for _, p := range s.plans {
			if p.PlanID == id {
				s.respond(w, map[string]any{"plan": p})
				return
			}
		}
		http.NotFound(w, r)
	})
	mux.HandleFunc("/api/history", func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, map[string]any{"history": s.history})
	})
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, map[string]any{"orders": s.orders})
	})
	mux.HandleFunc("/api/fills", func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, map[string]any{"fills": s.fills})
	})
	mux.HandleFunc("/api/alerts", func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, map[string]any{"alerts": []models.Alert{}})
	})
	mux.HandleFunc("/api/opportunities", func(w http.ResponseWriter, r *http.Request) {
		s.respond(w, map[string]any{"opportunities": []models.Opportunity{}})
	})
	return mux
}

func (s *Server) respond(w http.ResponseWriter, body any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

// handleStream upgrades to websocket and emits one synthetic order update per
// interval, cycling statuses, until the client disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	statuses := []models.OrderStatus{models.StatusPending, models.StatusPartial, models.StatusFilled, models.StatusCancelled}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		s.seq++
		n := s.seq
		s.mu.Unlock()

		ev := models.OrderUpdateEvent{
			OrderID: fmt.Sprintf("ord-%03d", n%7),
			Status:  statuses[n%len(statuses)],
			Symbol:  []string{"BTC/USDT", "ETH/USDT"}[n%2],
			Side:    []models.OrderSide{models.SideBuy, models.SideSell}[n%2],
		}
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}
}
