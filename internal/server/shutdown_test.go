package server

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/domain/live"
	"github.com/FACorreiaa/go-sportsmeet/internal/pkg/config"
)

func TestGracefulShutdownStopsFeedAndClients(t *testing.T) {
	cfg := &config.Config{
		ServerPort: "0",
		Backend: config.BackendConfig{
			BaseURL: "http://127.0.0.1:1",
			LiveURL: "ws://127.0.0.1:1/live",
			Timeout: time.Second,
			Retries: 1,
		},
		Session: config.SessionConfig{Secret: strings.Repeat("s", 32)},
	}
	srv, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	srv.StartLiveFeed()

	srv.hub.Join(live.OverviewRoom)
	srv.hub.Join(live.MatchRoom("m1"))
	require.Equal(t, 1, srv.hub.Count(live.OverviewRoom))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go GracefulShutdown(ctx, &http.Server{Addr: ":0"}, srv, done)

	select {
	case <-done:
		t.Fatal("shutdown ran before the context ended")
	case <-time.After(20 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not finish")
	}

	assert.Equal(t, 0, srv.hub.Count(live.OverviewRoom))
	assert.Equal(t, 0, srv.hub.Count(live.MatchRoom("m1")))
	select {
	case <-srv.feedDone:
	default:
		t.Fatal("live feed still running")
	}
}
