// Package hub implements the broadcast fan-out: a registry of live
// subscriber connections that every accepted notification is pushed to,
// best-effort, with failure isolation between subscribers.
package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quayside/shipbell/internal/notify"
)

// Frame types on the wire. Each frame is a single JSON object; the stream
// transport delivers one frame per line.
const (
	FrameConnected    = "connected"
	FrameHistory      = "history"
	FrameNotification = "notification"
	FramePing         = "ping"
)

// KeepAliveInterval is how often every registered subscriber receives a ping
// frame, independent of publish activity, to defeat idle-connection timeouts
// in intermediary proxies.
const KeepAliveInterval = 30 * time.Second

// historyDepth is how many recent notifications a new subscriber is replayed
// so a freshly opened dashboard is not empty.
const historyDepth = 5

// sendBuffer is the per-subscriber channel depth. A subscriber that falls
// this far behind is treated as disconnected and pruned.
const sendBuffer = 32

type connectedFrame struct {
	Type    string `json:"type"`
	Clients int    `json:"clients"`
}

type historyFrame struct {
	Type          string                `json:"type"`
	Notifications []notify.Notification `json:"notifications"`
}

type notificationFrame struct {
	Type         string              `json:"type"`
	Notification notify.Notification `json:"notification"`
}

type pingFrame struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub owns the set of subscribed connections. Each subscriber is a buffered
// channel of marshaled frames; the hub is the only component holding
// references to them.
type Hub struct {
	store  *notify.Store
	logger *slog.Logger

	mu   sync.Mutex
	subs map[uuid.UUID]chan []byte
}

// New creates a Hub replaying history from store on subscribe.
func New(store *notify.Store, logger *slog.Logger) *Hub {
	return &Hub{
		store:  store,
		logger: logger,
		subs:   make(map[uuid.UUID]chan []byte),
	}
}

// Subscribe registers a new connection and returns its handle and frame
// channel. The connected frame (with the current client count) and the
// history frame are queued before return, so a subscriber always observes
// them ahead of any subsequently published notification.
func (h *Hub) Subscribe() (uuid.UUID, <-chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := uuid.New()
	ch := make(chan []byte, sendBuffer)
	h.subs[id] = ch

	// Both frames fit the empty buffer; never blocks.
	ch <- marshalFrame(connectedFrame{Type: FrameConnected, Clients: len(h.subs)})
	ch <- marshalFrame(historyFrame{Type: FrameHistory, Notifications: h.store.Recent(historyDepth)})

	h.logger.Info("client subscribed", "clients", len(h.subs))
	return id, ch
}

// Unsubscribe removes a connection. Idempotent: unknown or already-removed
// handles are a no-op.
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
		close(ch)
	}
	remaining := len(h.subs)
	h.mu.Unlock()

	if ok {
		h.logger.Info("client unsubscribed", "clients", remaining)
	}
}

// Publish pushes a notification frame to every subscriber and returns how
// many were notified. Delivery failures are local to the failing subscriber:
// it is pruned, the rest still receive the frame, and no error reaches the
// caller.
func (h *Hub) Publish(n notify.Notification) int {
	return h.broadcast(marshalFrame(notificationFrame{Type: FrameNotification, Notification: n}))
}

// ClientCount returns the number of registered subscribers.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Run drives the keep-alive loop until ctx is cancelled, then closes every
// remaining subscriber channel. Unsubscribed connections stop receiving
// pings because they leave the registry; there is no per-connection timer
// to leak.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case now := <-ticker.C:
			h.ping(now)
		}
	}
}

func (h *Hub) ping(now time.Time) {
	h.broadcast(marshalFrame(pingFrame{Type: FramePing, Timestamp: now.UTC()}))
}

// broadcast performs a non-blocking send to a snapshot of the registry.
// A full channel means the client stopped draining; that subscriber is
// removed as an implicit disconnect.
func (h *Hub) broadcast(line []byte) int {
	h.mu.Lock()
	notified := 0
	var dead []uuid.UUID
	for id, ch := range h.subs {
		select {
		case ch <- line:
			notified++
		default:
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		if ch, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	remaining := len(h.subs)
	h.mu.Unlock()

	if len(dead) > 0 {
		h.logger.Warn("pruned unresponsive clients", "pruned", len(dead), "clients", remaining)
	}
	return notified
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
}

func marshalFrame(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		// Frames are plain structs; this cannot fail at runtime.
		return []byte(`{}`)
	}
	return b
}
