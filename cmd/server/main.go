package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	handler "github.com/shoevote/api/internal/adapters/handler/http"
	repo "github.com/shoevote/api/internal/adapters/repository/postgres"
	"github.com/shoevote/api/internal/config"
	"github.com/shoevote/api/internal/core/services"
	"github.com/shoevote/api/internal/metrics"
)

func main() {
	cfg := config.Load()
	metrics.Register()

	db, err := sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	itemRepo := repo.NewItemRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	rankRepo := repo.NewRankingRepository(db)
	exportRepo := repo.NewExportRepository(db)

	ledger := services.NewLedgerService(voteRepo)
	catalog := services.NewCatalogService(itemRepo, ledger)
	ranking := services.NewRankingService(rankRepo)
	export := services.NewExportService(exportRepo)
	sessions := services.NewSessionService(cfg.SessionSecret)

	sessionHandler := handler.NewSessionHandler(sessions)
	voteHandler := handler.NewVoteHandler(ledger)
	rankingHandler := handler.NewRankingHandler(ranking)
	catalogHandler := handler.NewCatalogHandler(catalog, ledger)
	exportHandler := handler.NewExportHandler(export)

	mux := handler.NewHandler(
		sessionHandler, voteHandler, rankingHandler, catalogHandler, exportHandler,
		sessions, cfg.AdminSecret,
	)

	server := &stdhttp.Server{Addr: "0.0.0.0:" + cfg.Port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
