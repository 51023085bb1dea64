package model

import (
	"errors"
	"fmt"

	"github.com/Evgen-Mutagen/online-banking/internal/util/luhn"
	"github.com/shopspring/decimal"
)

var ErrInvalidAccountNumber = errors.New("invalid account number")

type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Number  string          `json:"-"`
	Balance decimal.Decimal `json:"balance"`
}

// Masked renders the number the way the dashboard shows it: only the last
// four digits are visible.
func (a *Account) Masked() string {
	if len(a.Number) <= 4 {
		return "••• " + a.Number
	}
	return "••• " + a.Number[len(a.Number)-4:]
}

func (a *Account) Validate() error {
	if !luhn.Validate(a.Number) {
		return fmt.Errorf("account %q: %w", a.ID, ErrInvalidAccountNumber)
	}
	return nil
}
