package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

// Event names broadcast to clients
const (
	EventCompanySaved      = "company.saved"
	EventCompanyDeleted    = "company.deleted"
	EventQuarterSaved      = "quarter.saved"
	EventQuarterDeleted    = "quarter.deleted"
	EventQuarterImported   = "quarter.imported"
	EventDefinitionSaved   = "definition.saved"
	EventDefinitionDeleted = "definition.deleted"
)

// Message is the envelope of every broadcast
type Message struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Broker fans events out to Server-Sent Events and WebSocket clients
type Broker struct {
	clients    map[chan []byte]bool
	register   chan chan []byte
	unregister chan chan []byte
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.RWMutex
}

// NewBroker creates a new broker
func NewBroker() *Broker {
	return &Broker{
		clients:    make(map[chan []byte]bool),
		register:   make(chan chan []byte),
		unregister: make(chan chan []byte),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the broker loop. It returns after Stop.
func (b *Broker) Run() {
	for {
		select {
		case <-b.done:
			b.mu.Lock()
			for client := range b.clients {
				delete(b.clients, client)
				close(client)
			}
			b.mu.Unlock()
			return

		case client := <-b.register:
			b.mu.Lock()
			b.clients[client] = true
			n := len(b.clients)
			b.mu.Unlock()
			log.Debug().Int("clients", n).Msg("Realtime client connected")

		case client := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[client]; ok {
				delete(b.clients, client)
				close(client)
			}
			n := len(b.clients)
			b.mu.Unlock()
			log.Debug().Int("clients", n).Msg("Realtime client disconnected")

		case msg := <-b.broadcast:
			b.mu.RLock()
			for client := range b.clients {
				select {
				case client <- msg:
				default:
					// slow client, drop
				}
			}
			b.mu.RUnlock()
		}
	}
}

// Stop ends Run and closes every client channel
func (b *Broker) Stop() {
	select {
	case <-b.done:
	default:
		close(b.done)
	}
}

// ClientCount returns the number of connected clients
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// subscribe registers a client channel; ok is false once the broker stopped
func (b *Broker) subscribe() (chan []byte, bool) {
	ch := make(chan []byte, 16)
	select {
	case b.register <- ch:
		return ch, true
	case <-b.done:
		return nil, false
	}
}

func (b *Broker) unsubscribe(ch chan []byte) {
	select {
	case b.unregister <- ch:
	case <-b.done:
	}
}

// ServeHTTP handles the SSE endpoint
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan, ok := b.subscribe()
	if !ok {
		http.Error(w, "broker stopped", http.StatusServiceUnavailable)
		return
	}
	flusher.Flush()

	notify := r.Context().Done()
	for {
		select {
		case <-notify:
			b.unsubscribe(clientChan)
			return
		case msg, open := <-clientChan:
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// Broadcast sends an event to all connected clients
func (b *Broker) Broadcast(event string, payload interface{}) {
	jsonBytes, err := json.Marshal(Message{Event: event, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Error marshalling broadcast message")
		return
	}
	b.BroadcastRaw(jsonBytes)
}

// BroadcastRaw sends an already encoded message to all connected clients
func (b *Broker) BroadcastRaw(msg []byte) {
	select {
	case b.broadcast <- msg:
	default:
		log.Warn().Msg("Broadcast buffer full, dropping message")
	}
}
