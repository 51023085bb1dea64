package model

import "github.com/shopspring/decimal"

const (
	KindDebit  = "Debit"
	KindCredit = "Credit"
)

// Transaction is a display record. Date stays a string: it is never parsed
// or compared, only shown.
type Transaction struct {
	ID       string          `json:"id"`
	Merchant string          `json:"merchant"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
}

func (t *Transaction) Kind() string {
	if t.Amount.IsNegative() {
		return KindDebit
	}
	return KindCredit
}

type LedgerRow struct {
	Transaction
	Kind    string          `json:"type"`
	Running decimal.Decimal `json:"running"`
}
