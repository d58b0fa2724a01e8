package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmarkov/payment-engine/internal/model"
)

// mockFeed creates a test WebSocket server that sends the given records
// and then closes the connection.
func mockFeed(t *testing.T, records []string) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Logf("upgrade error: %v", err)
			return
		}
		defer conn.Close()

		for _, rec := range records {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(rec)); err != nil {
				return
			}
		}

		deadline := time.Now().Add(time.Second)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			deadline,
		)
	}))
}

func feedURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestStreamDeliversTransactions(t *testing.T) {
	server := mockFeed(t, []string{
		`{"type":"deposit","client":1,"tx":1,"amount":25.50}`,
		`{"type":"withdrawal","client":1,"tx":2,"amount":10.00}`,
		`{"type":"dispute","client":1,"tx":2}`,
	})
	defer server.Close()

	stream := NewStream(StreamConfig{
		URL:         feedURL(server),
		BufferSize:  16,
		ReadTimeout: 5 * time.Second,
	}, nil)

	if err := stream.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer stream.Close()

	if !stream.IsConnected() {
		t.Error("expected IsConnected after Connect")
	}

	var txs []model.Transaction
	for tx := range stream.Transactions() {
		txs = append(txs, tx)
	}

	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	if txs[0].Kind != model.KindDeposit || txs[0].Amount != 255000 {
		t.Errorf("record 0 = %+v, want deposit of 25.5000", txs[0])
	}
	if txs[2].Kind != model.KindDispute || txs[2].AmountSet {
		t.Errorf("record 2 = %+v, want amountless dispute", txs[2])
	}
}

func TestStreamSkipsMalformedRecords(t *testing.T) {
	server := mockFeed(t, []string{
		`not json`,
		`{"type":"transfer","client":1,"tx":1,"amount":5}`,
		`{"type":"deposit","client":1,"tx":1}`,
		`{"type":"deposit","client":1,"tx":2,"amount":5.00}`,
	})
	defer server.Close()

	stream := NewStream(StreamConfig{
		URL:         feedURL(server),
		BufferSize:  16,
		ReadTimeout: 5 * time.Second,
	}, nil)

	if err := stream.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer stream.Close()

	var txs []model.Transaction
	for tx := range stream.Transactions() {
		txs = append(txs, tx)
	}

	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if txs[0].TX != 2 {
		t.Errorf("surviving tx id = %d, want 2", txs[0].TX)
	}
	if stream.Skipped() != 3 {
		t.Errorf("Skipped() = %d, want 3", stream.Skipped())
	}
}

func TestStreamConnectFailure(t *testing.T) {
	stream := NewStream(StreamConfig{
		URL: "ws://127.0.0.1:1/nope",
	}, nil)

	if err := stream.Connect(context.Background()); err == nil {
		t.Fatal("Connect should fail against a closed port")
	}
}

func TestStreamCloseIsIdempotentGuarded(t *testing.T) {
	server := mockFeed(t, nil)
	defer server.Close()

	stream := NewStream(StreamConfig{
		URL:         feedURL(server),
		ReadTimeout: 5 * time.Second,
	}, nil)

	if err := stream.Connect(context.Background()); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	if err := stream.Close(); err != nil && err != ErrStreamClosed {
		t.Errorf("first Close: %v", err)
	}
	if err := stream.Close(); err != ErrStreamClosed {
		t.Errorf("second Close = %v, want ErrStreamClosed", err)
	}
}
