package engine

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/dmarkov/payment-engine/internal/metrics"
	"github.com/dmarkov/payment-engine/internal/model"
)

// RegistryStats contains processing counters for one registry.
type RegistryStats struct {
	Received int64
	Applied  int64
	Failed   int64
}

// Registry routes transactions to per-client accounts, creating an
// account on first sight of a client id. It is an explicitly owned
// container: callers construct one per run (or one per shard) and there
// is no ambient global. A registry is not safe for concurrent use; in
// sharded mode each worker owns its own.
type Registry struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	accounts map[model.ClientID]*Account
	stats    RegistryStats
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithMetrics mirrors the registry counters to Prometheus collectors.
func WithMetrics(m *metrics.Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		logger:   logger,
		accounts: make(map[model.ClientID]*Account),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route delivers one transaction to the owning account, creating it if
// this is the first transaction for the client. Account errors are
// non-fatal: they are logged with full context and counted, and the run
// continues with the next transaction. The error is also returned for
// callers that want to inspect it.
func (r *Registry) Route(tx model.Transaction) error {
	r.stats.Received++
	if r.metrics != nil {
		r.metrics.TransactionsReceived.WithLabelValues(tx.Kind.String()).Inc()
	}

	acct, ok := r.accounts[tx.Client]
	if !ok {
		acct = NewAccount(tx.Client)
		r.accounts[tx.Client] = acct
		if r.metrics != nil {
			r.metrics.AccountsCreated.Inc()
		}
	}

	wasLocked := acct.Locked()

	if err := acct.Apply(tx); err != nil {
		r.stats.Failed++
		if r.metrics != nil {
			r.metrics.TransactionsFailed.WithLabelValues(failureReason(err)).Inc()
		}
		r.logger.Warn("transaction rejected",
			"client", tx.Client,
			"tx", tx.TX,
			"type", tx.Kind.String(),
			"error", err,
		)
		return err
	}

	r.stats.Applied++
	if r.metrics != nil {
		r.metrics.TransactionsApplied.WithLabelValues(tx.Kind.String()).Inc()
		if !wasLocked && acct.Locked() {
			r.metrics.LockedAccounts.Inc()
		}
	}
	return nil
}

// Lookup returns the account for a client id, if one exists.
func (r *Registry) Lookup(client model.ClientID) (*Account, bool) {
	acct, ok := r.accounts[client]
	return acct, ok
}

// Accounts returns all known accounts in ascending client order. Row
// order in the report is not contractual, but a stable enumeration
// keeps runs diffable.
func (r *Registry) Accounts() []*Account {
	out := make([]*Account, 0, len(r.accounts))
	for _, acct := range r.accounts {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Client() < out[j].Client()
	})
	return out
}

// Stats returns a snapshot of the processing counters.
func (r *Registry) Stats() RegistryStats {
	return r.stats
}

// failureReason maps an account error to a stable metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingAmount):
		return "missing_amount"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrTxNotFound):
		return "tx_not_found"
	case errors.Is(err, ErrAlreadyDisputed):
		return "already_disputed"
	case errors.Is(err, ErrNotDisputed):
		return "not_disputed"
	case errors.Is(err, ErrIneligibleResolve):
		return "ineligible_resolve"
	case errors.Is(err, ErrIneligibleChargeback):
		return "ineligible_chargeback"
	default:
		return "other"
	}
}
