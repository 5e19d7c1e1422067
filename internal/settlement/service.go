// Package settlement executes the balance transfer that follows a validated
// win: the winner's balance becomes balance - stake + prize, every other
// round member is charged the stake (clamped at zero). All reads and writes
// happen inside one database transaction; a partial payout is the failure
// mode this package exists to rule out.
package settlement

import (
	"context"
	"fmt"
	"log"

	"github.com/fikadu-bingo/bingo-server/internal/model"
	"github.com/fikadu-bingo/bingo-server/internal/repository"
	"github.com/fikadu-bingo/bingo-server/internal/room"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// Notifier delivers balance updates to a user's private channel only.
type Notifier interface {
	ToUser(userID string, action string, data interface{})
}

type Service struct {
	txManager trm.Manager
	users     repository.UserRepository
	txRepo    repository.TransactionRepository
	notifier  Notifier
}

func NewService(txManager trm.Manager, users repository.UserRepository, txRepo repository.TransactionRepository) *Service {
	return &Service{
		txManager: txManager,
		users:     users,
		txRepo:    txRepo,
	}
}

// SetNotifier wires the transport after construction; the hub and the
// settlement service reference each other through the registry.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Settle applies one round's payout atomically. On any error the whole batch
// rolls back and no notification is sent; the caller logs the failure for
// manual reconciliation and never retries.
func (s *Service) Settle(ctx context.Context, req room.SettleRequest) error {
	newBalances := make(map[string]int, len(req.LoserIDs)+1)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.users.GetBalance(txCtx, req.WinnerID)
		if err != nil {
			return fmt.Errorf("winner %s: %w", req.WinnerID, err)
		}
		winnerBalance := balance - req.Stake + req.Prize
		if err := s.users.UpdateBalance(txCtx, req.WinnerID, winnerBalance); err != nil {
			return fmt.Errorf("credit winner %s: %w", req.WinnerID, err)
		}
		newBalances[req.WinnerID] = winnerBalance

		for _, id := range req.LoserIDs {
			balance, err := s.users.GetBalance(txCtx, id)
			if err != nil {
				return fmt.Errorf("loser %s: %w", id, err)
			}
			charged := balance - req.Stake
			if charged < 0 {
				charged = 0
			}
			if err := s.users.UpdateBalance(txCtx, id, charged); err != nil {
				return fmt.Errorf("charge loser %s: %w", id, err)
			}
			newBalances[id] = charged
		}

		return s.txRepo.Create(txCtx, &model.Transaction{
			UserID: req.WinnerID,
			Type:   model.TransactionWin,
			Amount: req.Prize,
			Status: model.TransactionCompleted,
		})
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		for id, balance := range newBalances {
			s.notifier.ToUser(id, "balanceChanged", map[string]interface{}{"newBalance": balance})
		}
	}
	log.Printf("settlement: stake %d, winner %s paid %d, %d losers charged",
		req.Stake, req.WinnerID, req.Prize, len(req.LoserIDs))
	return nil
}
