package user_repo

import (
	"context"
	"errors"

	"github.com/fikadu-bingo/bingo-server/internal/model"
	"github.com/fikadu-bingo/bingo-server/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table         = "users"
	colID         = "id"
	colTelegramID = "telegram_id"
	colPhone      = "phone_number"
	colUsername   = "username"
	colBalance    = "balance"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetByID returns the full user row, or repository.ErrUserNotFound.
func (r *repo) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := sq.Select(colID, colTelegramID, colPhone, colUsername, colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).
		QueryRow(ctx, sqlStr, args...).
		Scan(&user.ID, &user.TelegramID, &user.PhoneNumber, &user.Username, &user.Balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

// GetBalance returns the balance for id. A missing row is an error here, not
// a zero balance: settlement must never move money for a phantom user.
func (r *repo) GetBalance(ctx context.Context, id string) (int, error) {
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).
		QueryRow(ctx, sqlStr, args...).
		Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, repository.ErrUserNotFound
		}
		return 0, err
	}

	return balance, nil
}

// UpdateBalance sets the balance for id to amount.
func (r *repo) UpdateBalance(ctx context.Context, id string, amount int) error {
	query := sq.Update(table).
		Set(colBalance, amount).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}
