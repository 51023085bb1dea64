package repository

import (
	"context"
	"fmt"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
	"github.com/shopspring/decimal"
)

// MemoryStore serves a fixed data set. It implements both repositories.
type MemoryStore struct {
	accounts     []*model.Account
	transactions []*model.Transaction
}

func NewMemoryStore(accounts []*model.Account, transactions []*model.Transaction) (*MemoryStore, error) {
	seen := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("duplicate account id %q", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return &MemoryStore{accounts: accounts, transactions: transactions}, nil
}

// NewSeededStore returns the demo accounts and transactions.
func NewSeededStore() *MemoryStore {
	s, err := NewMemoryStore(SeedAccounts(), SeedTransactions())
	if err != nil {
		panic(fmt.Sprintf("invalid seed data: %v", err))
	}
	return s
}

func SeedAccounts() []*model.Account {
	return []*model.Account{
		{ID: "chk", Name: "Checking", Number: "4000123456071234", Balance: decimal.RequireFromString("3287.42")},
		{ID: "sav", Name: "Savings", Number: "4000123456789876", Balance: decimal.RequireFromString("12045.13")},
	}
}

func SeedTransactions() []*model.Transaction {
	return []*model.Transaction{
		{ID: "t1", Merchant: "Grocery Mart", Date: "2025-10-05", Amount: decimal.RequireFromString("-54.23")},
		{ID: "t2", Merchant: "Salary", Date: "2025-10-04", Amount: decimal.RequireFromString("2300.00")},
		{ID: "t3", Merchant: "Electric Co", Date: "2025-10-03", Amount: decimal.RequireFromString("-89.12")},
	}
}

func (s *MemoryStore) List(ctx context.Context) ([]*model.Account, error) {
	out := make([]*model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		acc := *a
		out = append(out, &acc)
	}
	return out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id string) (*model.Account, error) {
	for _, a := range s.accounts {
		if a.ID == id {
			acc := *a
			return &acc, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]*model.Transaction, error) {
	n := len(s.transactions)
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]*model.Transaction, 0, n)
	for _, t := range s.transactions[:n] {
		tx := *t
		out = append(out, &tx)
	}
	return out, nil
}
