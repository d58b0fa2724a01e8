package engine

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dmarkov/payment-engine/internal/model"
)

// Dispatcher shards transaction processing by client id. Every
// transaction for a given client is routed to the same worker, so
// per-client arrival order is preserved and each worker's registry needs
// no locking. One shard degenerates to the single-threaded reference
// behavior.
type Dispatcher struct {
	logger *slog.Logger
	shards []*shard
}

type shard struct {
	in       chan model.Transaction
	registry *Registry
}

// NewDispatcher creates a dispatcher with n shard workers. queueSize is
// the per-shard channel capacity.
func NewDispatcher(n, queueSize int, logger *slog.Logger, opts ...RegistryOption) *Dispatcher {
	if n < 1 {
		n = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{
			in:       make(chan model.Transaction, queueSize),
			registry: NewRegistry(logger.With("shard", i), opts...),
		}
	}
	return &Dispatcher{logger: logger, shards: shards}
}

// Run consumes the transaction stream until it is closed or the context
// is canceled, fanning each transaction out to its owning shard.
func (d *Dispatcher) Run(ctx context.Context, txs <-chan model.Transaction) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, s := range d.shards {
		s := s
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case tx, ok := <-s.in:
					if !ok {
						return nil
					}
					// Rejections are logged and counted by the
					// registry; they never stop the run.
					_ = s.registry.Route(tx)
				}
			}
		})
	}

	g.Go(func() error {
		defer func() {
			for _, s := range d.shards {
				close(s.in)
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case tx, ok := <-txs:
				if !ok {
					return nil
				}
				s := d.shards[int(tx.Client)%len(d.shards)]
				select {
				case <-ctx.Done():
					return ctx.Err()
				case s.in <- tx:
				}
			}
		}
	})

	return g.Wait()
}

// Accounts merges the shard registries into one stable enumeration,
// ascending by client id. Call only after Run has returned.
func (d *Dispatcher) Accounts() []*Account {
	var out []*Account
	for _, s := range d.shards {
		out = append(out, s.registry.Accounts()...)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Client() < out[j].Client()
	})
	return out
}

// Lookup returns the account for a client id, if one exists. Call only
// after Run has returned.
func (d *Dispatcher) Lookup(client model.ClientID) (*Account, bool) {
	return d.shards[int(client)%len(d.shards)].registry.Lookup(client)
}

// Stats sums the counters across shards. Call only after Run has returned.
func (d *Dispatcher) Stats() RegistryStats {
	var total RegistryStats
	for _, s := range d.shards {
		st := s.registry.Stats()
		total.Received += st.Received
		total.Applied += st.Applied
		total.Failed += st.Failed
	}
	return total
}
