// Package report renders final account summaries to an output sink.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dmarkov/payment-engine/internal/engine"
)

// header is the literal column order of the summary.
var header = []string{"client", "available", "held", "total", "locked"}

// WriteCSV writes one summary row per account, amounts rendered with
// 4-digit rounding. Callers pass engine.Registry.Accounts() output, so
// rows arrive in ascending client order.
func WriteCSV(w io.Writer, accounts []*engine.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	for _, acct := range accounts {
		row := []string{
			strconv.FormatUint(uint64(acct.Client()), 10),
			acct.Available().String(),
			acct.Held().String(),
			acct.Total().String(),
			strconv.FormatBool(acct.Locked()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write report row for client %d: %w", acct.Client(), err)
		}
	}

	cw.Flush()
	return cw.Error()
}
