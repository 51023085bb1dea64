package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
)

// The Postgres store is read-only: rows come from the seed migration.

type accountRepository struct {
	db *Database
}

func NewAccountRepository(db *Database) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) List(ctx context.Context) ([]*model.Account, error) {
	query := `SELECT id, name, number, balance FROM accounts ORDER BY position`
	rows, err := r.db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Number, &a.Balance); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		if err := a.Validate(); err != nil {
			return nil, err
		}
		accounts = append(accounts, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	var a model.Account
	query := `SELECT id, name, number, balance FROM accounts WHERE id = $1`
	err := r.db.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Number, &a.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

type transactionRepository struct {
	db *Database
}

func NewTransactionRepository(db *Database) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Recent(ctx context.Context, limit int) ([]*model.Transaction, error) {
	query := `SELECT id, merchant, to_char(posted_on, 'YYYY-MM-DD'), amount
              FROM transactions
              ORDER BY position
              LIMIT $1`
	rows, err := r.db.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var txs []*model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Merchant, &t.Date, &t.Amount); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		txs = append(txs, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return txs, nil
}
