package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	repo "github.com/shoevote/api/internal/adapters/repository/postgres"
	"github.com/shoevote/api/internal/config"
	"github.com/shoevote/api/internal/core/services"
)

// voteexport dumps all vote records and per-voter summaries as JSON on
// stdout, for offline reporting.
func main() {
	cfg := config.LoadDB()

	db, err := sql.Open("postgres", cfg.DBConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	exportRepo := repo.NewExportRepository(db)
	exportService := services.NewExportService(exportRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting vote export job...")

	records, err := exportService.Records(ctx)
	if err != nil {
		log.Fatalf("Error exporting vote records: %v", err)
	}

	summaries, err := exportService.VoterSummaries(ctx)
	if err != nil {
		log.Fatalf("Error exporting voter summaries: %v", err)
	}

	out := map[string]interface{}{
		"records":         records,
		"voter_summaries": summaries,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Error encoding export: %v", err)
	}

	log.Println("Vote export completed successfully.")
}
