package telemetry

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"particle-globe/internal/choreo"

	"github.com/gorilla/websocket"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(8, log.New(&bytes.Buffer{}, "", 0))
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv)
	waitFor(t, "client registration", func() bool { return hub.Clients() == 1 })

	if !hub.Publish(choreo.Snapshot{Frame: 7, Phase: "scattered"}) {
		t.Fatal("publish to an empty queue should succeed")
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got choreo.Snapshot
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Frame != 7 || got.Phase != "scattered" {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestLatestSnapshotSentOnConnect(t *testing.T) {
	hub, srv := newTestHub(t)
	hub.Publish(choreo.Snapshot{Frame: 3, Phase: "converging"})
	waitFor(t, "snapshot broadcast", func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return hub.latest != nil
	})

	conn := dial(t, srv)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got choreo.Snapshot
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Frame != 3 || got.Phase != "converging" {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestClientDisconnectIsDropped(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, srv)
	waitFor(t, "client registration", func() bool { return hub.Clients() == 1 })
	conn.Close()
	waitFor(t, "client removal", func() bool { return hub.Clients() == 0 })
}

func TestPublishAfterClose(t *testing.T) {
	hub := NewHub(1, log.New(&bytes.Buffer{}, "", 0))
	hub.Close()
	hub.Close()
	if hub.Publish(choreo.Snapshot{}) {
		t.Fatal("publish after close should be dropped")
	}
}

func TestHealthz(t *testing.T) {
	_, srv := newTestHub(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeStopsOnCancel(t *testing.T) {
	logs := &syncBuffer{}
	hub := NewHub(1, log.New(logs, "", 0))
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Serve(ctx, "127.0.0.1:0", 200*time.Millisecond) }()

	waitFor(t, "listener", func() bool { return strings.Contains(logs.String(), "streaming on") })
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeReportsListenError(t *testing.T) {
	hub := NewHub(1, log.New(&bytes.Buffer{}, "", 0))
	defer hub.Close()
	if err := hub.Serve(context.Background(), "127.0.0.1:-1", time.Second); err == nil {
		t.Fatal("expected a listen error for an invalid port")
	}
}
