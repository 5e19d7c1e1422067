package transaction_repo

import (
	"context"

	"github.com/fikadu-bingo/bingo-server/internal/model"
	"github.com/fikadu-bingo/bingo-server/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table     = "transactions"
	colUserID = "user_id"
	colType   = "type"
	colAmount = "amount"
	colStatus = "status"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewTransactionRepository(dbc *pgxpool.Pool) repository.TransactionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) Create(ctx context.Context, tx *model.Transaction) error {
	query := sq.Insert(table).
		Columns(colUserID, colType, colAmount, colStatus).
		Values(tx.UserID, tx.Type, tx.Amount, tx.Status).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}
