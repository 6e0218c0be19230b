package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"
)

// LiveReloadPath is where pages subscribe for reload events while serving
const LiveReloadPath = "/__livereload"

const defaultHeartbeat = 25 * time.Second

// Broker fans reload events out to connected SSE clients
type Broker struct {
	mu        sync.Mutex
	clients   map[chan string]struct{}
	heartbeat time.Duration
	done      chan struct{}
	closeOnce sync.Once
}

// NewBroker creates an empty broker
func NewBroker() *Broker {
	return &Broker{
		clients:   make(map[chan string]struct{}),
		heartbeat: defaultHeartbeat,
		done:      make(chan struct{}),
	}
}

// ServeHTTP streams events until the client goes away
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "stream unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		delete(b.clients, ch)
		b.mu.Unlock()
	}()

	ticker := time.NewTicker(b.heartbeat)
	defer ticker.Stop()

	fmt.Fprint(w, ":ok\n\n")
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-b.done:
			return
		case <-ticker.C:
			fmt.Fprint(w, ":hb\n\n")
			flusher.Flush()
		case msg := <-ch:
			fmt.Fprintf(w, "event: reload\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// Broadcast sends msg to every client without blocking; a client that has
// not consumed the previous event misses this one
func (b *Broker) Broadcast(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Clients returns the number of connected clients
func (b *Broker) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close ends every stream; later subscribers return immediately
func (b *Broker) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}
