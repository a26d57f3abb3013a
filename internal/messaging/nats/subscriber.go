package nats

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"foxbuy-watchdog/internal/domain"
)

const drainPollInterval = 50 * time.Millisecond

// AdEventHandler is satisfied by watchdog.Service.
type AdEventHandler interface {
	OnAdEvent(ctx context.Context, event domain.AdEvent) error
}

// Subscriber consumes ad events from a queue group and evaluates each one on
// its own worker. Events for different ads run in parallel; when every worker
// is busy the NATS delivery callback blocks, which applies backpressure.
type Subscriber struct {
	conn    *nats.Conn
	sub     *nats.Subscription
	handler AdEventHandler
	log     *zap.Logger
	timeout time.Duration

	sem chan struct{}
	wg  sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

func NewSubscriber(conn *nats.Conn, handler AdEventHandler, log *zap.Logger, workers int, timeout time.Duration) *Subscriber {
	if workers < 1 {
		workers = 1
	}
	return &Subscriber{
		conn:    conn,
		handler: handler,
		log:     log,
		timeout: timeout,
		sem:     make(chan struct{}, workers),
	}
}

func (s *Subscriber) Start(subject, queue string) error {
	if s.conn == nil {
		return errors.New("nats connection is not configured")
	}

	sub, err := s.conn.QueueSubscribe(subject, queue, s.handle)
	if err != nil {
		return err
	}
	s.sub = sub

	s.log.Info("subscribed to ad events", zap.String("subject", subject), zap.String("queue", queue))
	return nil
}

func (s *Subscriber) handle(msg *nats.Msg) {
	var event domain.AdEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		s.log.Warn("discarding malformed ad event", zap.String("subject", msg.Subject), zap.Error(err))
		return
	}
	if err := event.Validate(); err != nil {
		s.log.Warn("discarding invalid ad event", zap.String("subject", msg.Subject), zap.Error(err))
		return
	}

	if !s.track() {
		s.log.Warn("discarding ad event received after stop",
			zap.String("kind", string(event.Kind)), zap.Int64("ad_id", event.Ad.ID))
		return
	}

	s.sem <- struct{}{}
	go func() {
		defer s.wg.Done()
		defer func() { <-s.sem }()

		// Accepted events run to completion regardless of the subscriber's lifecycle.
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.handler.OnAdEvent(ctx, event); err != nil {
			s.log.Error("ad event processing failed",
				zap.String("kind", string(event.Kind)),
				zap.Int64("ad_id", event.Ad.ID),
				zap.Error(err))
		}
	}()
}

// track registers an event with the WaitGroup unless Stop has begun waiting.
func (s *Subscriber) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}
	s.wg.Add(1)
	return true
}

// Stop drains the subscription and waits for in-flight events, including
// those still queued for a worker. Events delivered after that are dropped.
func (s *Subscriber) Stop() {
	if s.sub != nil {
		if err := s.sub.Drain(); err != nil {
			s.log.Warn("failed to drain ad event subscription", zap.Error(err))
		}
		// Drain is asynchronous; delivery callbacks may still be running.
		deadline := time.Now().Add(s.timeout)
		for s.sub.IsValid() && time.Now().Before(deadline) {
			time.Sleep(drainPollInterval)
		}
	}

	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.wg.Wait()
}
