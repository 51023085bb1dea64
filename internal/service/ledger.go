package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/Evgen-Mutagen/online-banking/internal/repository"
	"github.com/shopspring/decimal"
)

// MaxRecentTransactions caps the recent transactions panel.
const MaxRecentTransactions = 20

// RunningBalance projects a running balance over txs in the order given:
// row i carries start plus the amounts of rows 0..i. Only the first
// MaxRecentTransactions rows are produced.
func RunningBalance(start decimal.Decimal, txs []*model.Transaction) []model.LedgerRow {
	n := len(txs)
	if n > MaxRecentTransactions {
		n = MaxRecentTransactions
	}

	rows := make([]model.LedgerRow, 0, n)
	running := start
	for _, t := range txs[:n] {
		running = running.Add(t.Amount)
		rows = append(rows, model.LedgerRow{
			Transaction: *t,
			Kind:        t.Kind(),
			Running:     running,
		})
	}
	return rows
}

type LedgerService struct {
	accounts     repository.AccountRepository
	transactions repository.TransactionRepository
}

func NewLedgerService(accounts repository.AccountRepository, transactions repository.TransactionRepository) *LedgerService {
	return &LedgerService{accounts: accounts, transactions: transactions}
}

func (s *LedgerService) Accounts(ctx context.Context) ([]*model.Account, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *LedgerService) Account(ctx context.Context, id string) (*model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

// Ledger returns the recent transactions with running balances seeded from
// the account's balance. An unknown account seeds from zero.
func (s *LedgerService) Ledger(ctx context.Context, accountID string) ([]model.LedgerRow, error) {
	start := decimal.Zero
	account, err := s.accounts.GetByID(ctx, accountID)
	switch {
	case err == nil:
		start = account.Balance
	case errors.Is(err, repository.ErrAccountNotFound):
	default:
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	txs, err := s.transactions.Recent(ctx, MaxRecentTransactions)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return RunningBalance(start, txs), nil
}
