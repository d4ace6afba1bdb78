package live

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Feed keeps one websocket open to the backend's live endpoint and publishes
// what arrives to the hub.
type Feed struct {
	url      string
	hub      *Hub
	dialer   *websocket.Dialer
	logger   *zap.Logger
	onEvent  func(Event)
	delay    time.Duration
	maxDelay time.Duration
}

func NewFeed(url string, hub *Hub, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		url:      url,
		hub:      hub,
		dialer:   &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		logger:   logger,
		delay:    time.Second,
		maxDelay: 30 * time.Second,
	}
}

// OnEvent registers fn to run after each event is published.
func (f *Feed) OnEvent(fn func(Event)) {
	f.onEvent = fn
}

// Run connects and reconnects until ctx ends. It returns nil on
// cancellation.
func (f *Feed) Run(ctx context.Context) error {
	if f.url == "" {
		f.logger.Info("Live feed disabled, no backend live URL configured")
		return nil
	}

	for {
		conn, err := f.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		f.logger.Info("Live feed connected", zap.String("url", f.url))

		err = f.consume(ctx, conn)
		if ctx.Err() != nil {
			return nil
		}
		f.logger.Warn("Live feed disconnected", zap.Error(err))
	}
}

// connect retries with backoff until it succeeds or ctx ends.
func (f *Feed) connect(ctx context.Context) (*websocket.Conn, error) {
	var conn *websocket.Conn
	err := retry.Do(
		func() error {
			c, _, err := f.dialer.DialContext(ctx, f.url, nil)
			if err != nil {
				return err
			}
			conn = c
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.Delay(f.delay),
		retry.MaxDelay(f.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("Live feed dial failed, retrying",
				zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
	return conn, err
}

func (f *Feed) consume(ctx context.Context, conn *websocket.Conn) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			f.logger.Warn("Discarding malformed live event", zap.Error(err))
			continue
		}
		if err := f.hub.Publish(ev); err != nil {
			f.logger.Warn("Discarding live event", zap.Error(err))
			continue
		}
		if f.onEvent != nil {
			f.onEvent(ev)
		}
	}
}
