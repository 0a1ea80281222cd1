package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ghana-rentals/config"
	"ghana-rentals/models"
	"ghana-rentals/query"
	"ghana-rentals/scraper/meqasa"
	"ghana-rentals/services"
	"ghana-rentals/storage"
	"ghana-rentals/utils"
)

const defaultQuery = "show me rent for 2 bedroom apartment in Osu"

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	queryText := strings.Join(os.Args[1:], " ")
	if strings.TrimSpace(queryText) == "" {
		queryText = defaultQuery
		logger.Info("No query given — using sample query")
	}

	logger.Info("=== Ghana Rental Price Agent starting ===")
	logger.Info("Config — concurrency: %d | rate: %dms | timeout: %ds | rate USD→GHS: %.2f",
		cfg.MaxConcurrency, cfg.RateLimitMs, cfg.FetchTimeoutSec, cfg.USDToGHSRate)

	var rawWriter storage.RawRecordWriter
	if csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath); err != nil {
		logger.Warn("Raw CSV output unavailable: %v", err)
	} else {
		rawWriter = csvWriter
		defer csvWriter.Close()
	}

	var store storage.DatasetStore
	if pg, err := storage.NewPostgresStore(cfg.DSN()); err != nil {
		logger.Warn("Persistence unavailable — continuing without it: %v", err)
	} else {
		store = pg
		defer pg.Close()
	}

	scraper := meqasa.New(cfg, logger)
	pipeline := services.NewPipeline(cfg, logger,
		query.NewParser(logger), scraper, scraper, rawWriter, store)

	result := pipeline.Run(context.Background(), queryText)

	fmt.Println()
	if result.Status == models.StatusError {
		fmt.Printf("  %s\n\n", result.ErrorMessage)
		os.Exit(1)
	}

	fmt.Printf("  %s\n", result.Report)
	for namespace, handle := range result.Handles {
		fmt.Printf("  Stored %s → %s\n", namespace, handle)
	}
	fmt.Println()
}
