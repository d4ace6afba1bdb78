package live

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversOnlyToRoom(t *testing.T) {
	hub := NewHub(nil)
	a := hub.Join(MatchRoom("1"))
	b := hub.Join(MatchRoom("2"))
	over := hub.Join(OverviewRoom)

	require.NoError(t, hub.Publish(Event{Type: EventScoreUpdate, MatchID: "1", Data: json.RawMessage(`{"scoreA":1}`)}))

	assert.Len(t, a.send, 1)
	assert.Len(t, b.send, 0)
	assert.Len(t, over.send, 1)

	var ev Event
	require.NoError(t, json.Unmarshal(<-a.send, &ev))
	assert.Equal(t, EventScoreUpdate, ev.Type)
	assert.Equal(t, "1", ev.MatchID)
}

func TestHubScheduleUpdateWithoutMatchGoesToOverview(t *testing.T) {
	hub := NewHub(nil)
	m := hub.Join(MatchRoom("1"))
	over := hub.Join(OverviewRoom)

	require.NoError(t, hub.Publish(Event{Type: EventScheduleUpdate}))
	assert.Len(t, m.send, 0)
	assert.Len(t, over.send, 1)

	assert.Error(t, hub.Publish(Event{}))
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(nil)
	slow := hub.Join(OverviewRoom)
	for i := 0; i < sendBuffer; i++ {
		assert.Equal(t, 1, hub.Broadcast(OverviewRoom, []byte("x")))
	}

	assert.Equal(t, 0, hub.Broadcast(OverviewRoom, []byte("overflow")))
	assert.Equal(t, 0, hub.Count(OverviewRoom))

	n := 0
	for range slow.send {
		n++
	}
	assert.Equal(t, sendBuffer, n, "queue is closed after the buffered messages")
}

func TestHubLeaveIsIdempotent(t *testing.T) {
	hub := NewHub(nil)
	c := hub.Join("room")
	hub.Leave(c)
	hub.Leave(c)
	assert.Zero(t, hub.Count("room"))
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketRelay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := NewHub(nil)
	r := gin.New()
	r.GET("/ws/live", NewLiveHandler(hub, nil).HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	matchConn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/live?match=7"), nil)
	require.NoError(t, err)
	defer matchConn.Close()
	overConn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/live"), nil)
	require.NoError(t, err)
	defer overConn.Close()

	waitFor(t, func() bool { return hub.Count(MatchRoom("7")) == 1 && hub.Count(OverviewRoom) == 1 })

	require.NoError(t, hub.Publish(Event{Type: EventScoreUpdate, MatchID: "7", Data: json.RawMessage(`{"scoreA":3,"scoreB":2}`)}))

	for _, conn := range []*websocket.Conn{matchConn, overConn} {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev Event
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, "7", ev.MatchID)
		assert.JSONEq(t, `{"scoreA":3,"scoreB":2}`, string(ev.Data))
	}

	matchConn.Close()
	waitFor(t, func() bool { return hub.Count(MatchRoom("7")) == 0 })
}

func TestWebSocketRejectsBadMatchID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/live", NewLiveHandler(NewHub(nil), nil).HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/live?match=../etc"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws/live", NewLiveHandler(NewHub(nil), nil).HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/live"), http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// backendFeed accepts connections and sends each one the given frames, then
// closes it.
func backendFeed(t *testing.T, frames ...string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var conns atomic.Int32
	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns.Add(1)
		for _, f := range frames {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(f))
		}
		conn.Close()
	}))
	t.Cleanup(srv.Close)
	return srv, &conns
}

func TestFeedPublishesAndReconnects(t *testing.T) {
	srv, conns := backendFeed(t,
		`{"type":"score-update","matchId":"9","data":{"scoreA":1}}`,
		`not json`,
		`{"type":"schedule-update"}`,
	)

	hub := NewHub(nil)
	over := hub.Join(OverviewRoom)

	var seen atomic.Int32
	feed := NewFeed(wsURL(srv, "/"), hub, nil)
	feed.delay = 5 * time.Millisecond
	feed.maxDelay = 20 * time.Millisecond
	feed.OnEvent(func(Event) { seen.Add(1) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Run(ctx) }()

	waitFor(t, func() bool { return conns.Load() >= 2 })
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not stop after cancel")
	}

	assert.GreaterOrEqual(t, seen.Load(), int32(2))
	var first Event
	require.NoError(t, json.Unmarshal(<-over.send, &first))
	assert.Equal(t, EventScoreUpdate, first.Type)
}

func TestFeedStopsWhileBackendIsDown(t *testing.T) {
	feed := NewFeed("ws://127.0.0.1:1/live", NewHub(nil), nil)
	feed.delay = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, feed.Run(ctx))
}

func TestFeedDisabledWithoutURL(t *testing.T) {
	assert.NoError(t, NewFeed("", NewHub(nil), nil).Run(context.Background()))
}
