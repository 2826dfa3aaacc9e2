// Package realtime empuja los recordatorios vencidos a los clientes
// conectados por websocket.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"petcare-tracker/internal/platform/logger"
	"petcare-tracker/internal/ports/notifications"
)

var ErrBroadcastFull = errors.New("broadcast channel full")

const TypeReminderDue = "reminder.due"

// Message es el sobre de todo lo que se manda por el socket.
type Message struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

type reminderDuePayload struct {
	Handle     string    `json:"handle"`
	ReminderID string    `json:"reminder_id"`
	PetID      string    `json:"pet_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message,omitempty"`
	FireAt     time.Time `json:"fire_at"`
	Repeat     string    `json:"repeat"`
}

// Hub mantiene los clientes conectados y difunde mensajes.
type Hub struct {
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
	log        logger.Logger

	mu sync.RWMutex
}

type client struct {
	send chan []byte
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        logger.OrNop(log).With(logger.Fields{"component": "realtime"}),
	}
}

// Run es el loop del hub; termina cuando ctx se cancela.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client connected", logger.Fields{"clients": n})

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client disconnected", logger.Fields{"clients": n})

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// buffer lleno: se corta al cliente lento
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// add y remove no bloquean si el hub ya terminó.
func (h *Hub) add(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(msg []byte) error {
	select {
	case h.broadcast <- msg:
		return nil
	default:
		return ErrBroadcastFull
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Deliver implementa notifications.Sink.
func (h *Hub) Deliver(_ context.Context, d notifications.Delivery) error {
	b, err := json.Marshal(Message{
		Type:      TypeReminderDue,
		Timestamp: d.FiredAt.UTC(),
		Payload: reminderDuePayload{
			Handle:     d.Handle,
			ReminderID: d.Notification.ReminderID,
			PetID:      d.Notification.PetID,
			Title:      d.Notification.Title,
			Message:    d.Notification.Message,
			FireAt:     d.Notification.FireAt,
			Repeat:     d.Notification.Repeat,
		},
	})
	if err != nil {
		return err
	}
	return h.Broadcast(b)
}
