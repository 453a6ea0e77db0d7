package main

import (
	"context"
	"time"

	auction "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionService"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/config"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository/postgres"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/server"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/pkg/db"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/utils"

	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.Fatal("failed to load configuration", map[string]any{"error": err.Error()})
	}

	ledger, err := buildLedger(cfg)
	if err != nil {
		utils.Fatal("failed to initialize ledger", map[string]any{"error": err.Error()})
	}

	auctionSvc := auction.NewAuctionService(ledger)

	go runSweepLoop(auctionSvc, cfg.SweepInterval)

	router := server.SetupRouter(auctionSvc)

	utils.Info("starting auction marketplace server", map[string]any{
		"port":    cfg.Port,
		"backend": cfg.LedgerBackend,
	})
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.Fatal("server stopped", map[string]any{"error": err.Error()})
	}
}

// buildLedger picks the configured backend: Postgres for real deployments,
// the in-memory ledger (seeded with demo actors) for local runs.
func buildLedger(cfg *config.AppConfig) (repository.Ledger, error) {
	if cfg.LedgerBackend == config.BackendPostgres {
		conn, err := db.NewPostgresDB(cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(context.Background(), conn); err != nil {
			return nil, err
		}
		return postgres.NewLedger(conn), nil
	}

	ledger := repository.NewMemoryLedger()
	seedDemoUsers(ledger)
	return ledger, nil
}

// seedDemoUsers populates the in-memory ledger with a working set of actors
// so the API is usable out of the box.
func seedDemoUsers(ledger *repository.MemoryLedger) {
	users := []model.User{
		{UserID: "admin", Role: model.RoleSuperAdmin, IsApproved: true, Amount: decimal.Zero},
		{UserID: "seller1", Role: model.RoleSeller, IsApproved: true, Amount: decimal.Zero},
		{UserID: "buyer1", Role: model.RoleBuyer, IsApproved: true, Amount: decimal.NewFromInt(1000)},
		{UserID: "buyer2", Role: model.RoleBuyer, IsApproved: true, Amount: decimal.NewFromInt(500)},
	}
	for _, u := range users {
		ledger.AddUser(u)
	}
}

// runSweepLoop settles ended auctions on a fixed interval. Sweeps are
// idempotent, so overlapping with a manual admin trigger is harmless.
func runSweepLoop(svc *auction.AuctionService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := svc.Sweep(context.Background()); err != nil {
			utils.Error("scheduled settlement sweep failed", map[string]any{"error": err.Error()})
		}
	}
}
