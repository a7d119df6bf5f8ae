// Package telemetry streams choreography snapshots to websocket clients.
//
// The frame loop publishes without blocking; a single writer goroutine
// fans snapshots out to clients. Snapshots published while the writer is
// busy are dropped.
package telemetry

import (
	"context"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"particle-globe/internal/choreo"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const writeTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local debugging tool
	},
}

// Hub broadcasts snapshots to connected websocket clients.
type Hub struct {
	logger *log.Logger
	queue  chan choreo.Snapshot

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
	latest  *choreo.Snapshot

	done chan struct{}
	wg   sync.WaitGroup
}

// NewHub returns a hub buffering up to depth pending snapshots.
func NewHub(depth int, logger *log.Logger) *Hub {
	if depth <= 0 {
		depth = 4
	}
	if logger == nil {
		logger = log.Default()
	}
	h := &Hub{
		logger:  logger,
		queue:   make(chan choreo.Snapshot, depth),
		clients: make(map[*websocket.Conn]*sync.Mutex),
		done:    make(chan struct{}),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Publish queues a snapshot. It never blocks; it reports false when the
// snapshot was dropped.
func (h *Hub) Publish(s choreo.Snapshot) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.queue <- s:
		return true
	default:
		return false
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler returns the HTTP routes: /ws for the stream and /healthz.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// Serve listens on addr until ctx is cancelled, then gives open
// connections up to shutdownTimeout to finish.
func (h *Hub) Serve(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "telemetry listen %s", addr)
	}
	srv := &http.Server{Handler: h.Handler(), ReadHeaderTimeout: 5 * time.Second}
	if shutdownTimeout <= 0 {
		shutdownTimeout = time.Second
	}
	served := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-served:
			return
		case <-ctx.Done():
		}
		shutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			h.logger.Printf("telemetry: shutdown: %v", err)
		}
	}()
	h.logger.Printf("telemetry: streaming on ws://%s/ws", ln.Addr())
	err = srv.Serve(ln)
	close(served)
	<-stopped
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "telemetry serve")
	}
	return nil
}

// Close stops the writer and disconnects every client.
func (h *Hub) Close() {
	select {
	case <-h.done:
		return
	default:
	}
	close(h.done)
	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("telemetry: upgrade: %v", err)
		return
	}
	connMu := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = connMu
	latest := h.latest
	h.mu.Unlock()

	if latest != nil {
		connMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := conn.WriteJSON(latest)
		connMu.Unlock()
		if err != nil {
			h.logger.Printf("telemetry: write: %v", err)
			h.drop(conn)
			return
		}
	}

	// Drain reads so close frames are processed; clients send nothing else.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.drop(conn)
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return
		case s := <-h.queue:
			h.broadcast(s)
		}
	}
}

func (h *Hub) broadcast(s choreo.Snapshot) {
	h.mu.Lock()
	h.latest = &s
	targets := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for conn, mu := range h.clients {
		targets[conn] = mu
	}
	h.mu.Unlock()

	for conn, mu := range targets {
		mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		err := conn.WriteJSON(s)
		mu.Unlock()
		if err != nil {
			h.logger.Printf("telemetry: write: %v", err)
			h.drop(conn)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}
