package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"storefront-service/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ConnState tracks where a subscription stands.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateSubscribed
	StateError
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateSubscribed:
		return "SUBSCRIBED"
	case StateError:
		return "ERROR"
	}
	return "DISCONNECTED"
}

// PedidoTopic builds the push topic for a sucursal's staff queue view.
func PedidoTopic(sucursalID int64, rolView string) string {
	return fmt.Sprintf("/topic/pedidos/sucursal/%d/%s", sucursalID, rolView)
}

// Subscriber dials the push endpoint and maintains one websocket connection
// per subscription.
type Subscriber struct {
	baseURL string
	dialer  *websocket.Dialer
	log     *zap.Logger

	// Reconnect policy: capped exponential backoff. MaxRetries 0 disables
	// reconnection, matching the source behavior of log-and-stay-down.
	MaxRetries int
	BaseDelay  time.Duration
}

func NewSubscriber(baseURL string, log *zap.Logger) *Subscriber {
	return &Subscriber{
		baseURL:    baseURL,
		dialer:     websocket.DefaultDialer,
		log:        log,
		MaxRetries: 5,
		BaseDelay:  time.Second,
	}
}

// pushMessage is the slice of the pushed pedido payload this layer trusts:
// only estado decides whether to reload. Everything else is re-fetched from
// the authoritative REST source.
type pushMessage struct {
	Estado models.Estado `json:"estado"`
}

// Subscription is one live topic subscription. Close tears down the
// connection; it is safe to call more than once.
type Subscription struct {
	topic  string
	cancel context.CancelFunc
	done   chan struct{}
	state  atomic.Int32
	once   sync.Once

	connMu sync.Mutex
	conn   *websocket.Conn
}

func (s *Subscription) getConn() *websocket.Conn {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.conn
}

func (s *Subscription) setConn(c *websocket.Conn) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.conn = c
}

func (s *Subscription) closeConn() {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

// State returns the subscription's connection state.
func (s *Subscription) State() ConnState {
	return ConnState(s.state.Load())
}

// Done is closed when the read loop has fully stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close tears down the subscription and the underlying connection. Callers
// must close the previous subscription before opening a new one for another
// topic: no orphaned subscriptions, no duplicate delivery.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cancel()
		s.closeConn()
	})
	<-s.done
	s.state.Store(int32(StateDisconnected))
}

// Subscribe opens a connection to the topic and invokes reload for every
// pushed pedido whose estado matches filter (an empty filter matches all).
// The pushed payload only triggers the reload; it is never delivered as data.
func (s *Subscriber) Subscribe(ctx context.Context, topic string, filter models.Estado, reload func()) (*Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		topic:  topic,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	sub.state.Store(int32(StateConnecting))
	conn, err := s.dial(ctx, topic)
	if err != nil {
		sub.state.Store(int32(StateError))
		cancel()
		close(sub.done)
		return nil, err
	}
	sub.setConn(conn)
	sub.state.Store(int32(StateSubscribed))
	s.log.Info("subscribed to pedido topic", zap.String("topic", topic))

	go s.readLoop(ctx, sub, topic, filter, reload)
	return sub, nil
}

func (s *Subscriber) dial(ctx context.Context, topic string) (*websocket.Conn, error) {
	conn, _, err := s.dialer.DialContext(ctx, s.baseURL+topic, nil)
	return conn, err
}

func (s *Subscriber) readLoop(ctx context.Context, sub *Subscription, topic string, filter models.Estado, reload func()) {
	defer close(sub.done)

	retries := 0
	for {
		_, raw, err := sub.getConn().ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return // explicit teardown
			}
			sub.state.Store(int32(StateError))
			s.log.Warn("push connection error", zap.String("topic", topic), zap.Error(err))

			if retries >= s.MaxRetries {
				return
			}
			retries++
			delay := s.BaseDelay << (retries - 1)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}

			sub.state.Store(int32(StateConnecting))
			conn, derr := s.dial(ctx, topic)
			if derr != nil {
				s.log.Warn("push reconnect failed", zap.String("topic", topic), zap.Error(derr))
				sub.state.Store(int32(StateError))
				continue
			}
			sub.setConn(conn)
			if ctx.Err() != nil {
				_ = conn.Close()
				return
			}
			sub.state.Store(int32(StateSubscribed))
			s.log.Info("resubscribed to pedido topic", zap.String("topic", topic))
			continue
		}
		retries = 0

		var msg pushMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.log.Warn("unparseable push message", zap.String("topic", topic), zap.Error(err))
			continue
		}
		if filter != "" && msg.Estado != filter {
			continue
		}
		reload()
	}
}
