package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/retailhub/retailhub-backend/internal/app/service"
	"github.com/retailhub/retailhub-backend/pkg/logger"
	"github.com/retailhub/retailhub-backend/pkg/metrics"
)

// Client is one change feed subscriber.
type Client struct {
	Hub  *Hub
	Conn *Conn
	ID   string
	Send chan []byte

	closeOnce sync.Once
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// Hub fans retailer change events out to every connected client.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	// done is closed when Run returns; later Register/Unregister calls are no-ops.
	done chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan []byte, 1024),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			metrics.ChangeFeedClients.Set(float64(total))
			logger.Info("Change feed client registered", logger.Fields{
				"client_id": client.ID,
				"total":     total,
			})

		case client := <-h.unregister:
			h.remove(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer, drop it rather than block the feed
					go h.Unregister(client)
					logger.Warn("Client send buffer full, disconnecting", logger.Fields{
						"client_id": client.ID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.ChangeFeedClients.Set(float64(total))
	logger.Info("Change feed client unregistered", logger.Fields{
		"client_id": client.ID,
		"remaining": total,
	})
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for client := range h.clients {
		delete(h.clients, client)
		client.closeSend()
	}
	h.mu.Unlock()
	metrics.ChangeFeedClients.Set(0)
}

// Register queues client for registration. After Run has stopped the
// client's Send channel is closed instead so its write pump exits.
func (h *Hub) Register(client *Client) {
	if h.stopped() {
		client.closeSend()
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

func (h *Hub) Unregister(client *Client) {
	if h.stopped() {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements service.EventPublisher. It never blocks the caller;
// events are dropped when the broadcast queue is full.
func (h *Hub) Publish(event service.RetailerEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal change event", err, logger.Fields{
			"type": event.Type,
			"id":   event.ID,
		})
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		logger.Warn("Change feed queue full, dropping event", logger.Fields{
			"type": event.Type,
			"id":   event.ID,
		})
	}
}
