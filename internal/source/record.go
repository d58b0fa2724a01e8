package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmarkov/payment-engine/internal/model"
)

// buildTransaction converts raw wire fields into a model.Transaction,
// enforcing the amount-presence rule per kind. Reference kinds
// (dispute/resolve/chargeback) ignore a populated amount field rather
// than rejecting it; the amount of the referenced transaction is what
// counts.
func buildTransaction(typ, clientField, txField, amountField string) (model.Transaction, error) {
	kind, err := model.ParseKind(typ)
	if err != nil {
		return model.Transaction{}, err
	}

	clientVal, err := strconv.ParseUint(strings.TrimSpace(clientField), 10, 16)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad client id %q: %w", clientField, err)
	}
	client := model.ClientID(clientVal)

	txVal, err := strconv.ParseUint(strings.TrimSpace(txField), 10, 32)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad tx id %q: %w", txField, err)
	}
	tx := model.TxID(txVal)

	switch kind {
	case model.KindDeposit, model.KindWithdrawal:
		amountField = strings.TrimSpace(amountField)
		if amountField == "" {
			return model.Transaction{}, fmt.Errorf("%s tx %d: amount required", kind, tx)
		}
		amount, err := model.ParseAmount(amountField)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("%s tx %d: %w", kind, tx, err)
		}
		if kind == model.KindDeposit {
			return model.NewDeposit(client, tx, amount), nil
		}
		return model.NewWithdrawal(client, tx, amount), nil
	case model.KindDispute:
		return model.NewDispute(client, tx), nil
	case model.KindResolve:
		return model.NewResolve(client, tx), nil
	default:
		return model.NewChargeback(client, tx), nil
	}
}
