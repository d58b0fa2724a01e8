package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's Prometheus collectors. Each Metrics value
// owns its registry so tests and sharded workers never collide on the
// global default registry.
type Metrics struct {
	registry *prometheus.Registry

	// TransactionsReceived counts incoming transactions by type.
	TransactionsReceived *prometheus.CounterVec

	// TransactionsApplied counts successfully applied transactions by type.
	TransactionsApplied *prometheus.CounterVec

	// TransactionsFailed counts rejected transactions by failure reason.
	TransactionsFailed *prometheus.CounterVec

	// ParseErrors counts malformed input records skipped at the source.
	ParseErrors prometheus.Counter

	// AccountsCreated counts accounts created on first sight of a client.
	AccountsCreated prometheus.Counter

	// LockedAccounts tracks accounts locked by a chargeback.
	LockedAccounts prometheus.Gauge
}

// New creates a Metrics set backed by a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		TransactionsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_transactions_received_total",
			Help: "Transactions received by the registry, by type.",
		}, []string{"type"}),
		TransactionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_transactions_applied_total",
			Help: "Transactions successfully applied, by type.",
		}, []string{"type"}),
		TransactionsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "engine_transactions_failed_total",
			Help: "Transactions rejected by the account state machine, by reason.",
		}, []string{"reason"}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_parse_errors_total",
			Help: "Malformed input records skipped before reaching the core.",
		}),
		AccountsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "engine_accounts_created_total",
			Help: "Accounts created on first sight of a client id.",
		}),
		LockedAccounts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "engine_locked_accounts",
			Help: "Accounts permanently locked by a chargeback.",
		}),
	}

	reg.MustRegister(
		m.TransactionsReceived,
		m.TransactionsApplied,
		m.TransactionsFailed,
		m.ParseErrors,
		m.AccountsCreated,
		m.LockedAccounts,
	)

	return m
}

// Handler returns an HTTP handler serving this metrics set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
