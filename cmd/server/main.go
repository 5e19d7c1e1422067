package main

import (
	"context"
	"log"

	httpapi "github.com/fikadu-bingo/bingo-server/internal/api/http"
	"github.com/fikadu-bingo/bingo-server/internal/api/ws"
	"github.com/fikadu-bingo/bingo-server/internal/config"
	"github.com/fikadu-bingo/bingo-server/internal/repository/transaction_repo"
	"github.com/fikadu-bingo/bingo-server/internal/repository/user_repo"
	"github.com/fikadu-bingo/bingo-server/internal/room"
	"github.com/fikadu-bingo/bingo-server/internal/settlement"
	"github.com/fikadu-bingo/bingo-server/internal/store"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	txManager, err := manager.New(trmpgx.NewDefaultFactory(pool))
	if err != nil {
		log.Fatalf("create tx manager: %v", err)
	}

	userRepo := user_repo.NewUserRepository(pool)
	txRepo := transaction_repo.NewTransactionRepository(pool)
	settler := settlement.NewService(txManager, userRepo, txRepo)

	registry, err := room.NewRegistry(cfg.StakeTiers, room.Options{
		CountdownSeconds:  cfg.CountdownSeconds,
		CallInterval:      cfg.CallInterval,
		WinResetDelay:     cfg.WinResetDelay,
		ExhaustResetDelay: cfg.ExhaustResetDelay,
		HouseCutPercent:   cfg.HouseCutPercent,
	}, settler)
	if err != nil {
		log.Fatalf("build room registry: %v", err)
	}

	sessions := store.NewSessionStore()
	hub := ws.NewHub(registry, sessions)
	registry.SetBroadcaster(hub)
	settler.SetNotifier(hub)

	r := httpapi.NewRouter(registry, hub, cfg)

	log.Printf("bingo server listening on %s, stakes %v", cfg.HTTPAddr, cfg.StakeTiers)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
