package repository

import (
	"context"
	"errors"

	"github.com/fikadu-bingo/bingo-server/internal/model"
)

// ErrUserNotFound is returned when a balance lookup hits a missing account.
// Settlement treats it as fatal for the whole batch.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the ledger store contract. Implementations must honor an
// ambient transaction carried in ctx so that a batch of balance updates can
// be committed or rolled back as one unit.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetBalance(ctx context.Context, id string) (int, error)
	UpdateBalance(ctx context.Context, id string, amount int) error
}

// TransactionRepository records audit rows for balance movements.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
}
