package engine

import "errors"

// Account-local errors. All are recoverable: the registry reports them
// and continues with the next transaction, and the failing transaction
// leaves no state change behind.
var (
	// ErrMissingAmount indicates a deposit or withdrawal without an amount.
	ErrMissingAmount = errors.New("amount required but missing")

	// ErrInsufficientBalance indicates a withdrawal exceeding the total balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrTxNotFound indicates a dispute/resolve/chargeback referencing an
	// unknown transaction id.
	ErrTxNotFound = errors.New("referenced transaction not found")

	// ErrAlreadyDisputed indicates a dispute on a transaction that is
	// already under dispute.
	ErrAlreadyDisputed = errors.New("transaction already under dispute")

	// ErrNotDisputed indicates a resolve or chargeback on a transaction
	// with no active dispute.
	ErrNotDisputed = errors.New("transaction not under dispute")

	// ErrIneligibleResolve indicates a resolve against a stored kind that
	// cannot be resolved. Stored transactions are always deposits or
	// withdrawals in practice, so this is a defensive branch.
	ErrIneligibleResolve = errors.New("transaction kind not eligible for resolve")

	// ErrIneligibleChargeback indicates a chargeback against a disputed
	// withdrawal. Withdrawals are not reversible via chargeback: the
	// funds already left the account.
	ErrIneligibleChargeback = errors.New("transaction kind not eligible for chargeback")
)
