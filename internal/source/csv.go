package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dmarkov/payment-engine/internal/metrics"
	"github.com/dmarkov/payment-engine/internal/model"
)

// CSV reads transaction records from a CSV stream with a
// type,client,tx,amount header. Column order follows the header, and
// surrounding whitespace in fields is tolerated.
type CSV struct {
	r       *csv.Reader
	logger  *slog.Logger
	metrics *metrics.Metrics

	// Column indices resolved from the header row.
	typeIdx, clientIdx, txIdx, amountIdx int

	headerRead bool
	skipped    int64
}

// CSVOption configures a CSV source.
type CSVOption func(*CSV)

// WithCSVMetrics counts skipped rows in the given metrics set.
func WithCSVMetrics(m *metrics.Metrics) CSVOption {
	return func(c *CSV) { c.metrics = m }
}

// NewCSV creates a CSV source over the reader.
func NewCSV(r io.Reader, logger *slog.Logger, opts ...CSVOption) *CSV {
	if logger == nil {
		logger = slog.Default()
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Reference rows leave the amount column empty or omit it entirely.
	cr.FieldsPerRecord = -1

	c := &CSV{r: cr, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Next returns the next well-formed transaction. Malformed rows are
// logged, counted and skipped. Returns io.EOF when the input is drained.
func (c *CSV) Next() (model.Transaction, error) {
	if !c.headerRead {
		if err := c.readHeader(); err != nil {
			return model.Transaction{}, err
		}
	}

	for {
		row, err := c.r.Read()
		if errors.Is(err, io.EOF) {
			return model.Transaction{}, io.EOF
		}
		if err != nil {
			c.skip("unreadable row", err)
			continue
		}

		tx, err := buildTransaction(
			field(row, c.typeIdx),
			field(row, c.clientIdx),
			field(row, c.txIdx),
			field(row, c.amountIdx),
		)
		if err != nil {
			c.skip("malformed record", err)
			continue
		}
		return tx, nil
	}
}

// Skipped returns the number of malformed rows dropped so far.
func (c *CSV) Skipped() int64 {
	return c.skipped
}

// readHeader resolves column positions from the header row.
func (c *CSV) readHeader() error {
	header, err := c.r.Read()
	if err != nil {
		return fmt.Errorf("read csv header: %w", err)
	}

	c.typeIdx, c.clientIdx, c.txIdx, c.amountIdx = -1, -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "type":
			c.typeIdx = i
		case "client":
			c.clientIdx = i
		case "tx":
			c.txIdx = i
		case "amount":
			c.amountIdx = i
		}
	}
	if c.typeIdx < 0 || c.clientIdx < 0 || c.txIdx < 0 {
		return fmt.Errorf("csv header missing required columns: %v", header)
	}

	c.headerRead = true
	return nil
}

func (c *CSV) skip(msg string, err error) {
	c.skipped++
	if c.metrics != nil {
		c.metrics.ParseErrors.Inc()
	}
	c.logger.Warn(msg, "error", err)
}

// field safely extracts a column that may be absent on short rows.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
