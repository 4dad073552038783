package transport

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/zillafan80/inarbit-console/internal/observ"
)

// MessageFunc receives one whole push-channel frame. It is invoked
// synchronously from the subscription's read loop, unconditionally: filtering
// and eviction belong to the receiver, not the channel.
type MessageFunc func(payload json.RawMessage)

// Subscription is a single reconnecting push-channel subscription. On
// connection loss it redials after a fixed delay, indefinitely. Close
// terminates the read loop and cancels any pending reconnect wait.
type Subscription struct {
	id      string
	url     string
	topic   Topic
	handler MessageFunc
	delay   time.Duration
	log     *logrus.Entry

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool
	done   chan struct{}
}

// Subscribe opens a subscription for the topic and starts its read loop. The
// returned Subscription is live immediately; the first dial happens in the
// background so a dead endpoint does not block the caller.
func Subscribe(base string, topic Topic, handler MessageFunc, reconnectDelay time.Duration, log *logrus.Logger) *Subscription {
	if reconnectDelay <= 0 {
		reconnectDelay = 3 * time.Second
	}
	s := &Subscription{
		id:      uuid.NewString(),
		url:     topic.URL(base),
		topic:   topic,
		handler: handler,
		delay:   reconnectDelay,
		done:    make(chan struct{}),
	}
	s.log = log.WithFields(logrus.Fields{
		"component":       "transport",
		"subscription_id": s.id,
		"topic":           topic.Key(),
	})
	go s.run()
	return s
}

// ID returns the subscription's correlation id.
func (s *Subscription) ID() string { return s.id }

// Topic returns the topic this subscription was opened with.
func (s *Subscription) Topic() Topic { return s.topic }

// Close terminates the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.done)
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn != nil {
		_ = conn.Close()
	}
	s.log.Debug("subscription closed")
}

func (s *Subscription) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Subscription) run() {
	for {
		if s.isClosed() {
			return
		}

		conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
		if err != nil {
			s.log.WithError(err).Warn("channel dial failed")
			observ.IncCounter("channel_dial_errors_total", map[string]string{"channel": s.topic.Channel})
			if !s.waitReconnect() {
				return
			}
			continue
		}
		conn.SetReadLimit(2 << 20)

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.conn = conn
		s.mu.Unlock()

		s.log.Debug("channel connected")
		observ.SetGauge("channel_connected", 1, map[string]string{"channel": s.topic.Channel})

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				break
			}
			observ.IncCounter("channel_messages_total", map[string]string{"channel": s.topic.Channel})
			s.handler(data)
		}
		_ = conn.Close()
		observ.SetGauge("channel_connected", 0, map[string]string{"channel": s.topic.Channel})

		if s.isClosed() {
			return
		}
		s.log.Warn("channel dropped, reconnecting")
		observ.IncCounter("channel_reconnects_total", map[string]string{"channel": s.topic.Channel})
		if !s.waitReconnect() {
			return
		}
	}
}

// waitReconnect sleeps for the fixed reconnect delay. Returns false when the
// subscription was closed during the wait, which also cancels the timer.
func (s *Subscription) waitReconnect() bool {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-s.done:
		return false
	}
}
