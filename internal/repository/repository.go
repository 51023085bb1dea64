package repository

import (
	"context"
	"errors"

	"github.com/Evgen-Mutagen/online-banking/internal/model"
)

var ErrAccountNotFound = errors.New("account not found")

type AccountRepository interface {
	List(ctx context.Context) ([]*model.Account, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
}

// TransactionRepository returns transactions in display order.
type TransactionRepository interface {
	Recent(ctx context.Context, limit int) ([]*model.Transaction, error)
}
