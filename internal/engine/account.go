package engine

import (
	"fmt"

	"github.com/dmarkov/payment-engine/internal/model"
)

// storedTx is a referenceable transaction in the account history,
// together with its dispute flag. Only deposits and withdrawals are
// stored; disputes/resolves/chargebacks are looked up, never stored.
type storedTx struct {
	disputed bool
	tx       model.Transaction
}

// Account owns one client's balances, lock flag and transaction history.
// All mutation goes through Apply; each call is a pure synchronous state
// transition that either fully applies or leaves the account untouched.
type Account struct {
	client model.ClientID
	held   model.Amount
	total  model.Amount
	locked bool
	txs    map[model.TxID]storedTx
}

// NewAccount returns a zero-balance, unlocked account for the client.
func NewAccount(client model.ClientID) *Account {
	return &Account{
		client: client,
		txs:    make(map[model.TxID]storedTx),
	}
}

// Client returns the owning client id.
func (a *Account) Client() model.ClientID { return a.client }

// Held returns the amount held against active disputes.
func (a *Account) Held() model.Amount { return a.held }

// Total returns the total balance, held funds included.
func (a *Account) Total() model.Amount { return a.total }

// Locked reports whether a chargeback has permanently locked the account.
func (a *Account) Locked() bool { return a.locked }

// Available returns the spendable balance, total minus held. Held can
// exceed total after a withdrawal dispute; the difference is floored at
// zero for reporting rather than exposed as a negative balance.
func (a *Account) Available() model.Amount {
	if a.held > a.total {
		return 0
	}
	return a.total - a.held
}

// Apply applies one transaction to the account. A returned error means
// the transaction had no effect. Locked accounts still accept
// transactions; the lock only marks the account in the final report.
func (a *Account) Apply(tx model.Transaction) error {
	switch tx.Kind {
	case model.KindDeposit:
		return a.deposit(tx)
	case model.KindWithdrawal:
		return a.withdraw(tx)
	case model.KindDispute:
		return a.dispute(tx)
	case model.KindResolve:
		return a.resolve(tx)
	case model.KindChargeback:
		return a.chargeback(tx)
	default:
		return fmt.Errorf("client %d tx %d: unknown transaction kind", tx.Client, tx.TX)
	}
}

// deposit credits the amount to total. The sign of the amount is not
// validated, only its presence. A reused tx id overwrites the earlier
// stored record.
func (a *Account) deposit(tx model.Transaction) error {
	if !tx.AmountSet {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrMissingAmount)
	}
	a.total += tx.Amount
	a.txs[tx.TX] = storedTx{tx: tx}
	return nil
}

// withdraw debits the amount from total if covered.
func (a *Account) withdraw(tx model.Transaction) error {
	if !tx.AmountSet {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrMissingAmount)
	}
	if a.total < tx.Amount {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrInsufficientBalance)
	}
	a.total -= tx.Amount
	a.txs[tx.TX] = storedTx{tx: tx}
	return nil
}

// dispute places a hold for the referenced transaction's amount. Total
// is unchanged; the hold only moves funds out of available. Any stored
// kind may be disputed.
func (a *Account) dispute(tx model.Transaction) error {
	rec, ok := a.txs[tx.TX]
	if !ok {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrTxNotFound)
	}
	if rec.disputed {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrAlreadyDisputed)
	}
	rec.disputed = true
	a.txs[tx.TX] = rec
	a.held += rec.tx.Amount
	return nil
}

// resolve unwinds an active dispute. A disputed deposit releases the
// hold back to available; a disputed withdrawal additionally restores
// the withdrawn amount to total, reversing the withdrawal.
func (a *Account) resolve(tx model.Transaction) error {
	rec, ok := a.txs[tx.TX]
	if !ok {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrTxNotFound)
	}
	if !rec.disputed {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrNotDisputed)
	}

	switch rec.tx.Kind {
	case model.KindDeposit:
		a.held -= rec.tx.Amount
	case model.KindWithdrawal:
		a.held -= rec.tx.Amount
		a.total += rec.tx.Amount
	default:
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrIneligibleResolve)
	}

	rec.disputed = false
	a.txs[tx.TX] = rec
	return nil
}

// chargeback reverses a disputed deposit and locks the account for good.
// Disputed withdrawals cannot be charged back. The dispute flag on the
// stored record stays set on this path; the lock makes that inert, and
// the asymmetry with resolve is intentional.
func (a *Account) chargeback(tx model.Transaction) error {
	rec, ok := a.txs[tx.TX]
	if !ok {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrTxNotFound)
	}
	if !rec.disputed {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrNotDisputed)
	}
	if rec.tx.Kind != model.KindDeposit {
		return fmt.Errorf("client %d tx %d: %w", tx.Client, tx.TX, ErrIneligibleChargeback)
	}

	a.held -= rec.tx.Amount
	a.total -= rec.tx.Amount
	a.locked = true
	return nil
}
