package websocket

import (
	"encoding/json"
	"sync"

	"github.com/dom/alliance-dashboard/internal/snapshot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func wsLog() *zerolog.Logger {
	l := log.With().Str("module", "websocket").Logger()
	return &l
}

// Hub fans refresh events out to every connected dashboard. It implements
// snapshot.Listener.
type Hub struct {
	store      *snapshot.Store
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	seq        uint64
	mu         sync.RWMutex
}

func NewHub(store *snapshot.Store) *Hub {
	return &Hub{
		store:      store,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			stopped := h.stopped
			if !stopped {
				h.clients[client] = true
			}
			h.mu.Unlock()
			if stopped {
				client.Close()
				continue
			}
			client.sendStatus()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.trySend(data) {
					// Slow consumer; it will resync with SYNC_STATUS on reconnect.
					delete(h.clients, client)
					client.Close()
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop shuts the hub down and closes every client. It blocks until Run exits.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) publish(msgType MessageType, payload interface{}) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		wsLog().Error().Err(err).Str("type", string(msgType)).Msg("Failed to build message")
		return
	}

	h.mu.Lock()
	h.seq++
	msg.Seq = h.seq
	h.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		wsLog().Error().Err(err).Str("type", string(msgType)).Msg("Failed to marshal message")
		return
	}

	select {
	case h.broadcast <- data:
	case <-h.done:
	}
}

func (h *Hub) SnapshotUpdated(snap *snapshot.Snapshot) {
	h.publish(MessageTypeSnapshotUpdated, snapshotPayload(snap))
}

func (h *Hub) RefreshFailed(generation uint64, err error) {
	h.publish(MessageTypeRefreshFailed, RefreshFailedPayload{Generation: generation, Error: err.Error()})
}

func (h *Hub) RefreshDiscarded(generation uint64) {
	h.publish(MessageTypeRefreshDiscarded, RefreshDiscardedPayload{Generation: generation})
}

func snapshotPayload(snap *snapshot.Snapshot) SnapshotPayload {
	return SnapshotPayload{
		SnapshotID: snap.ID.String(),
		Generation: snap.Generation,
		LoadedAt:   snap.LoadedAt,
		Counts:     Counts(snap.Counts),
	}
}
