package source

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmarkov/payment-engine/internal/metrics"
	"github.com/dmarkov/payment-engine/internal/model"
)

// Stream errors.
var (
	ErrStreamClosed = errors.New("stream already closed")
)

// StreamConfig configures a WebSocket transaction feed.
type StreamConfig struct {
	URL              string
	BufferSize       int
	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	PingInterval     time.Duration
}

// wireRecord is one JSON record on the feed. Numbers are kept raw so
// the same field validation applies as for CSV input.
type wireRecord struct {
	Type   string      `json:"type"`
	Client json.Number `json:"client"`
	TX     json.Number `json:"tx"`
	Amount json.Number `json:"amount,omitempty"`
}

// Stream reads transaction records from a WebSocket feed and delivers
// them in arrival order over a channel. A single stream per run;
// multi-stream ingestion is out of scope.
type Stream struct {
	cfg     StreamConfig
	logger  *slog.Logger
	metrics *metrics.Metrics

	conn *websocket.Conn
	txs  chan model.Transaction
	wg   sync.WaitGroup

	mu        sync.Mutex
	connected bool
	closed    bool
	skipped   int64
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithStreamMetrics counts skipped records in the given metrics set.
func WithStreamMetrics(m *metrics.Metrics) StreamOption {
	return func(s *Stream) { s.metrics = m }
}

// NewStream creates a stream source for the given feed URL.
func NewStream(cfg StreamConfig, logger *slog.Logger, opts ...StreamOption) *Stream {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = 10 * time.Second
	}

	s := &Stream{
		cfg:    cfg,
		logger: logger,
		txs:    make(chan model.Transaction, cfg.BufferSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect dials the feed and starts the read and keepalive loops. The
// transaction channel closes when the feed ends or the context is
// canceled.
func (s *Stream) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamClosed
	}
	s.mu.Unlock()

	dialer := websocket.Dialer{
		HandshakeTimeout: s.cfg.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, s.cfg.URL, nil)
	if err != nil {
		return err
	}

	conn.SetPongHandler(func(string) error {
		return s.extendReadDeadline(conn)
	})

	s.mu.Lock()
	s.conn = conn
	s.connected = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.readLoop(ctx, conn)

	if s.cfg.PingInterval > 0 {
		s.wg.Add(1)
		go s.pingLoop(ctx, conn)
	}

	s.logger.Info("transaction stream connected", "url", s.cfg.URL)
	return nil
}

// Transactions returns the channel of well-formed transactions.
func (s *Stream) Transactions() <-chan model.Transaction {
	return s.txs
}

// IsConnected reports whether the feed connection is up.
func (s *Stream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected && !s.closed
}

// Skipped returns the number of malformed records dropped so far.
func (s *Stream) Skipped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

// Close tears the connection down and waits for the loops to exit.
func (s *Stream) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamClosed
	}
	s.closed = true
	s.connected = false
	conn := s.conn
	s.mu.Unlock()

	var err error
	if conn != nil {
		err = conn.Close()
	}
	s.wg.Wait()
	return err
}

// readLoop delivers records until the feed closes.
func (s *Stream) readLoop(ctx context.Context, conn *websocket.Conn) {
	defer s.wg.Done()
	defer close(s.txs)

	for {
		if err := s.extendReadDeadline(conn); err != nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			if !s.isClosed() && !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				s.logger.Warn("stream read error", "error", err)
			}
			return
		}

		tx, err := s.parse(data)
		if err != nil {
			s.skip(err)
			continue
		}

		select {
		case <-ctx.Done():
			return
		case s.txs <- tx:
		}
	}
}

// pingLoop keeps the connection alive.
func (s *Stream) pingLoop(ctx context.Context, conn *websocket.Conn) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}

func (s *Stream) parse(data []byte) (model.Transaction, error) {
	var rec wireRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.Transaction{}, err
	}
	return buildTransaction(rec.Type, rec.Client.String(), rec.TX.String(), rec.Amount.String())
}

func (s *Stream) extendReadDeadline(conn *websocket.Conn) error {
	if s.cfg.ReadTimeout <= 0 {
		return nil
	}
	return conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
}

func (s *Stream) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Stream) skip(err error) {
	s.mu.Lock()
	s.skipped++
	s.mu.Unlock()
	if s.metrics != nil {
		s.metrics.ParseErrors.Inc()
	}
	s.logger.Warn("malformed stream record", "error", err)
}
