// Package live relays score and schedule events from the backend to browsers
// over websockets.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-sportsmeet/internal/app/observability/metrics"
)

const (
	EventScoreUpdate    = "score-update"
	EventScheduleUpdate = "schedule-update"

	// OverviewRoom receives every event.
	OverviewRoom = "overview"

	sendBuffer = 16
)

// Event is the message format shared by the backend feed and browsers.
type Event struct {
	Type    string          `json:"type"`
	MatchID string          `json:"matchId,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// MatchRoom is the room for one match.
func MatchRoom(matchID string) string {
	return "match:" + matchID
}

// Client is one browser connection. Messages queue in send until the
// connection's writer drains them.
type Client struct {
	room string
	send chan []byte
	once sync.Once
}

func newClient(room string) *Client {
	return &Client{room: room, send: make(chan []byte, sendBuffer)}
}

func (c *Client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub tracks clients per room. Broadcasting never blocks: a client whose
// buffer is full is dropped.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{rooms: make(map[string]map[*Client]struct{}), logger: logger}
}

// Join creates a client in room.
func (h *Hub) Join(room string) *Client {
	c := newClient(room)
	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	h.mu.Unlock()

	metrics.Get().LiveConnections.Add(context.Background(), 1)
	return c
}

// Leave removes c and closes its queue. Safe to call more than once.
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	members, ok := h.rooms[c.room]
	_, present := members[c]
	if ok && present {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, c.room)
		}
	}
	h.mu.Unlock()

	if present {
		metrics.Get().LiveConnections.Add(context.Background(), -1)
	}
	c.close()
}

// Count returns the number of clients in room.
func (h *Hub) Count(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Broadcast queues msg for every client in room and returns how many took it.
func (h *Hub) Broadcast(room string, msg []byte) int {
	var slow []*Client
	delivered := 0

	h.mu.RLock()
	for c := range h.rooms[room] {
		select {
		case c.send <- msg:
			delivered++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("Dropping slow live client", zap.String("room", room))
		h.Leave(c)
	}
	return delivered
}

// Publish sends ev to its match room, when it has one, and to the overview.
func (h *Hub) Publish(ev Event) error {
	if ev.Type == "" {
		return fmt.Errorf("live event without type")
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode live event: %w", err)
	}

	metrics.Get().LiveEventsTotal.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("type", ev.Type)))

	if ev.MatchID != "" {
		h.Broadcast(MatchRoom(ev.MatchID), msg)
	}
	h.Broadcast(OverviewRoom, msg)
	return nil
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[string]map[*Client]struct{})
	h.mu.Unlock()

	for _, members := range rooms {
		for c := range members {
			metrics.Get().LiveConnections.Add(context.Background(), -1)
			c.close()
		}
	}
}
