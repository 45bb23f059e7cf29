package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

type frame struct {
	Tick uint64  `json:"tick"`
	Y    float64 `json:"y"`
}

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(8, nil)
	go h.Run(ctx)
	srv := httptest.NewServer(h.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Clients() = %d, expected %d", h.Clients(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHubBroadcast(t *testing.T) {
	h, srv := startHub(t)
	a := dial(t, srv)
	b := dial(t, srv)
	waitClients(t, h, 2)

	if !h.Publish(frame{Tick: 42, Y: 310.5}) {
		t.Fatal("Publish() = false, expected the frame to be queued")
	}

	for i, conn := range []*websocket.Conn{a, b} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg struct {
			Type    string `json:"type"`
			Payload frame  `json:"payload"`
			Sender  string `json:"sender"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("client %d ReadJSON() failed: %v", i, err)
		}
		if msg.Type != "telemetry" || msg.Sender != "sim" {
			t.Errorf("client %d envelope = %q/%q, expected telemetry/sim", i, msg.Type, msg.Sender)
		}
		if msg.Payload.Tick != 42 || msg.Payload.Y != 310.5 {
			t.Errorf("client %d payload = %+v, expected tick 42 y 310.5", i, msg.Payload)
		}
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	h, srv := startHub(t)
	conn := dial(t, srv)
	waitClients(t, h, 1)

	conn.Close()
	waitClients(t, h, 0)
}

func TestPublishDropsWhenFull(t *testing.T) {
	h := NewHub(2, nil) // Run not started, nothing drains

	for i := 0; i < 2; i++ {
		if !h.Publish(frame{Tick: uint64(i)}) {
			t.Fatalf("Publish(%d) = false, expected room in the buffer", i)
		}
	}
	if h.Publish(frame{Tick: 2}) {
		t.Error("Publish() = true on a full buffer, expected a drop")
	}
	if h.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", h.Dropped())
	}
}

func TestPublishEncodeError(t *testing.T) {
	h := NewHub(1, nil)
	if h.Publish(make(chan int)) {
		t.Error("Publish() = true for an unencodable payload")
	}
}

func TestHandlerRejectsPlainHTTP(t *testing.T) {
	_, srv := startHub(t)

	resp, err := http.Get(srv.URL + "/ws")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, expected %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp, err = http.Get(srv.URL + "/other")
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, expected %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestMessageJSON(t *testing.T) {
	data, err := json.Marshal(Message{Type: "telemetry", Payload: frame{Tick: 1}, Sender: "sim"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"telemetry","payload":{"tick":1,"y":0},"sender":"sim"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, expected %s", data, want)
	}
}
