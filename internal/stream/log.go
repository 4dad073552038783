package stream

import (
	"sync"
	"time"

	"github.com/zillafan80/inarbit-console/internal/models"
	"github.com/zillafan80/inarbit-console/internal/observ"
)

// Entry is one buffered order update together with its ingestion timestamp
// (client clock). Entries are immutable once stored: they are only ever
// evicted, never rewritten.
type Entry struct {
	ReceivedAt time.Time               `json:"received_at"`
	Event      models.OrderUpdateEvent `json:"payload"`
}

// KeepOptions are the retention sizes the console offers. Any other requested
// value still works but is floored at MinKeep.
var KeepOptions = []int{50, 100, 200, 500, 1000}

// MinKeep is the retention floor, enforced regardless of the requested keep so
// a mistyped setting cannot produce a pathological tiny buffer.
const MinKeep = 10

// EventLog is a bounded, most-recent-first journal of order updates. It is an
// event journal, not a snapshot table: repeated updates for the same order id
// each get their own slot, and no deduplication is attempted. The log is owned
// by exactly one consumer; the mutex only guards against reads from other
// goroutines (projections, exports).
type EventLog struct {
	mu      sync.Mutex
	entries []Entry
	keep    int
	paused  bool
	now     func() time.Time
}

// NewEventLog creates a log retaining up to max(MinKeep, keep) entries.
func NewEventLog(keep int) *EventLog {
	return &EventLog{keep: keep, now: time.Now}
}

func (l *EventLog) capacity() int {
	if l.keep < MinKeep {
		return MinKeep
	}
	return l.keep
}

// Append records an event at the front of the log and evicts from the tail
// past capacity. While paused it drops the event outright; nothing is queued.
func (l *EventLog) Append(ev models.OrderUpdateEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.paused {
		observ.IncCounter("eventlog_dropped_total", map[string]string{"reason": "paused"})
		return
	}

	l.entries = append([]Entry{{ReceivedAt: l.now().UTC(), Event: ev}}, l.entries...)
	if limit := l.capacity(); len(l.entries) > limit {
		evicted := len(l.entries) - limit
		l.entries = l.entries[:limit]
		observ.IncCounterBy("eventlog_evicted_total", nil, float64(evicted))
	}
	observ.SetGauge("eventlog_size", float64(len(l.entries)), nil)
}

// SetKeep changes the retention size and trims immediately if the log already
// exceeds the new capacity.
func (l *EventLog) SetKeep(keep int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keep = keep
	if limit := l.capacity(); len(l.entries) > limit {
		l.entries = l.entries[:limit]
	}
}

// Keep returns the configured retention size (before the floor is applied).
func (l *EventLog) Keep() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keep
}

// SetPaused toggles ingestion. Pausing drops incoming events instead of
// buffering them; unpausing resumes from whatever arrives next.
func (l *EventLog) SetPaused(paused bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = paused
}

// Paused reports whether ingestion is currently paused.
func (l *EventLog) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// Clear empties the log unconditionally, paused or not.
func (l *EventLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	observ.SetGauge("eventlog_size", 0, nil)
}

// Len returns the number of buffered entries.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Snapshot returns a copy of the buffered entries, most recent first. The
// copy is safe to hand to pure projections without further locking.
func (l *EventLog) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
