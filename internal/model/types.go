package model

import (
	"fmt"
	"strings"
)

// ClientID identifies a client account.
type ClientID uint16

// TxID identifies a deposit or withdrawal transaction.
type TxID uint32

// Kind is the transaction type.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDeposit
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

// ParseKind parses a wire-format type token (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return KindDeposit, nil
	case "withdrawal":
		return KindWithdrawal, nil
	case "dispute":
		return KindDispute, nil
	case "resolve":
		return KindResolve, nil
	case "chargeback":
		return KindChargeback, nil
	default:
		return KindUnknown, fmt.Errorf("unknown transaction type %q", s)
	}
}

// String returns the wire-format token for the kind.
func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// HasAmount reports whether this kind carries an amount on the wire.
// Disputes, resolves and chargebacks only reference an earlier tx.
func (k Kind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Transaction is one immutable record from the input stream.
//
// AmountSet mirrors the optionality of the wire field: it is true only
// for deposits and withdrawals built through NewDeposit/NewWithdrawal.
// Handlers check it once instead of guessing from a zero value (a zero
// deposit is legal).
type Transaction struct {
	Kind      Kind
	Client    ClientID
	TX        TxID
	Amount    Amount
	AmountSet bool
}

// NewDeposit builds a deposit transaction.
func NewDeposit(client ClientID, tx TxID, amount Amount) Transaction {
	return Transaction{Kind: KindDeposit, Client: client, TX: tx, Amount: amount, AmountSet: true}
}

// NewWithdrawal builds a withdrawal transaction.
func NewWithdrawal(client ClientID, tx TxID, amount Amount) Transaction {
	return Transaction{Kind: KindWithdrawal, Client: client, TX: tx, Amount: amount, AmountSet: true}
}

// NewDispute builds a dispute referencing an earlier transaction.
func NewDispute(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindDispute, Client: client, TX: tx}
}

// NewResolve builds a resolve referencing a disputed transaction.
func NewResolve(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindResolve, Client: client, TX: tx}
}

// NewChargeback builds a chargeback referencing a disputed transaction.
func NewChargeback(client ClientID, tx TxID) Transaction {
	return Transaction{Kind: KindChargeback, Client: client, TX: tx}
}
